package logs

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// EncodingType определяет формат вывода логов.
type EncodingType string

// EncodingTypeText Форматирование для консоли.
// EncodingTypeJSON Форматирование в JSON.
const (
	EncodingTypeText EncodingType = "text"
	EncodingTypeJSON EncodingType = "json"
)

// LoggerOptions настройки логгера.
type LoggerOptions struct {
	Level         string         // Уровень логирования
	Encoding      EncodingType   // Формат вывода
	Output        io.Writer      // Куда пишем логи
	InitialFields map[string]any // Поля, которые добавляются в каждую запись
}

// WithLevel задает уровень логирования.
func WithLevel(level string) func(*LoggerOptions) {
	return func(o *LoggerOptions) {
		if level != "" {
			o.Level = level
		}
	}
}

// WithOutput подменяет вывод логгера.
func WithOutput(w io.Writer) func(*LoggerOptions) {
	return func(o *LoggerOptions) {
		o.Output = w
	}
}

// New создает новый логгер с указанными настройками.
// В release режиме gin логи пишутся в JSON, иначе в текстовом виде с уровнем debug.
//
// Параметры:
//   - opts: функции для настройки логгера
//
// Возвращает:
//   - *logrus.Logger: настроенный логгер
//   - error: ошибка создания логгера
func New(opts ...func(*LoggerOptions)) (*logrus.Logger, error) {
	isProduction := os.Getenv("GIN_MODE") == "release"

	options := LoggerOptions{
		Level:    logrus.DebugLevel.String(),
		Encoding: EncodingTypeText,
		Output:   os.Stdout,
	}
	if isProduction {
		options.Level = logrus.InfoLevel.String()
		options.Encoding = EncodingTypeJSON
	}

	for _, opt := range opts {
		opt(&options)
	}

	if !isProduction {
		// вне продакшн окружения всегда пишем всё
		options.Level = logrus.DebugLevel.String()
	}

	lvl, err := logrus.ParseLevel(options.Level)
	if err != nil {
		return nil, fmt.Errorf("parse level: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(options.Output)
	logger.SetLevel(lvl)

	switch options.Encoding {
	case EncodingTypeJSON:
		logger.SetFormatter(new(logrus.JSONFormatter))
	case EncodingTypeText:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("unknown encoding: %s", options.Encoding)
	}

	if len(options.InitialFields) > 0 {
		logger.AddHook(&fieldsHook{fields: options.InitialFields})
	}

	return logger, nil
}

// MustNew создает новый логгер с указанными настройками.
// В случае ошибки вызывает panic.
func MustNew(opts ...func(*LoggerOptions)) *logrus.Logger {
	log, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return log
}

// fieldsHook добавляет постоянные поля в каждую запись.
type fieldsHook struct {
	fields map[string]any
}

func (h *fieldsHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *fieldsHook) Fire(entry *logrus.Entry) error {
	for k, v := range h.fields {
		if _, ok := entry.Data[k]; !ok {
			entry.Data[k] = v
		}
	}
	return nil
}

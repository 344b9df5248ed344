package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"

	"github.com/fsdevblog/tinyurl/internal/models"
)

type DBType string

const (
	DBTypeSQLite   DBType = "sqlite"
	DBTypePostgres DBType = "postgres"
	DBTypeInMemory DBType = "inMemory"
)

type GeneratorType string

const (
	GeneratorTypeRandom    GeneratorType = "random"
	GeneratorTypeSnowflake GeneratorType = "snowflake"
)

const maxSnowflakeNode = 1023

const (
	defaultServerAddress = "localhost:8080"
	defaultSQLitePath    = "./tinyurl.sqlite3"
	defaultCodeLength    = 6
)

type Config struct {
	// Адрес, на котором запустится сервер
	ServerAddress string `env:"SERVER_ADDRESS"`
	// Тип хранилища
	DBType DBType `env:"DB"`
	// Путь к файлу SQLite
	SQLitePath string `env:"SQLITE_PATH"`
	// Строка подключения к PostgreSQL
	DatabaseDSN string `env:"DATABASE_DSN"`
	// Адрес Redis для кеша редиректов. Пустая строка отключает кеш
	RedisAddr string `env:"REDIS_ADDR"`
	// Время жизни записи в кеше
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"1h"`
	// Длина генерируемого кода (только для random)
	CodeLength int `env:"CODE_LENGTH"`
	// Генератор кодов: random или snowflake
	CodeGenerator GeneratorType `env:"CODE_GENERATOR"`
	// Номер ноды для snowflake генератора
	SnowflakeNode int64 `env:"SNOWFLAKE_NODE"`
	// Время на корректное завершение сервера
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	// Уровень логирования в release режиме
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func LoadConfig() (*Config, error) {
	return loadConfig(os.Args[1:])
}

// MustLoadConfig вызывает панику если конфиг не удалось загрузить.
func MustLoadConfig() *Config {
	conf, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return conf
}

func loadConfig(args []string) (*Config, error) {
	var flagsConfig, envConfig Config

	if err := env.Parse(&envConfig); err != nil {
		return nil, errors.Wrapf(err, "parse ENV config error")
	}

	if err := loadFlags(&flagsConfig, args); err != nil {
		return nil, errors.Wrap(err, "parse flags error")
	}

	conf := mergeConfig(&envConfig, &flagsConfig)
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// loadFlags парсит флаги командной строки.
func loadFlags(flagsConfig *Config, args []string) error {
	fs := flag.NewFlagSet("tinyurl", flag.ContinueOnError)

	fs.StringVar(&flagsConfig.ServerAddress, "a", defaultServerAddress, "Адрес сервера")
	fs.StringVar((*string)(&flagsConfig.DBType), "t", string(DBTypeSQLite), "Тип хранилища: sqlite, postgres, inMemory")
	fs.StringVar(&flagsConfig.SQLitePath, "s", defaultSQLitePath, "Путь к файлу SQLite")
	fs.StringVar(&flagsConfig.DatabaseDSN, "d", "", "Строка подключения к PostgreSQL")
	fs.StringVar(&flagsConfig.RedisAddr, "r", "", "Адрес Redis (кеш редиректов)")
	fs.IntVar(&flagsConfig.CodeLength, "l", defaultCodeLength, "Длина короткого кода")
	fs.StringVar((*string)(&flagsConfig.CodeGenerator), "g", string(GeneratorTypeRandom), "Генератор кодов: random, snowflake")
	fs.Int64Var(&flagsConfig.SnowflakeNode, "n", 0, "Номер ноды snowflake (0..1023)")

	return fs.Parse(args) //nolint:wrapcheck
}

// mergeConfig сливает структуры для env и флагов. Значения из окружения приоритетнее.
func mergeConfig(envConfig, flagsConfig *Config) *Config {
	return &Config{
		ServerAddress:   defaultIfBlank(envConfig.ServerAddress, flagsConfig.ServerAddress),
		DBType:          defaultIfBlank(envConfig.DBType, flagsConfig.DBType),
		SQLitePath:      defaultIfBlank(envConfig.SQLitePath, flagsConfig.SQLitePath),
		DatabaseDSN:     defaultIfBlank(envConfig.DatabaseDSN, flagsConfig.DatabaseDSN),
		RedisAddr:       defaultIfBlank(envConfig.RedisAddr, flagsConfig.RedisAddr),
		CodeLength:      defaultIfBlank(envConfig.CodeLength, flagsConfig.CodeLength),
		CodeGenerator:   defaultIfBlank(envConfig.CodeGenerator, flagsConfig.CodeGenerator),
		SnowflakeNode:   defaultIfBlank(envConfig.SnowflakeNode, flagsConfig.SnowflakeNode),
		CacheTTL:        envConfig.CacheTTL,
		ShutdownTimeout: envConfig.ShutdownTimeout,
		LogLevel:        envConfig.LogLevel,
	}
}

func defaultIfBlank[T comparable](value T, defaultValue T) T {
	var zero T
	if value == zero {
		return defaultValue
	}
	return value
}

// Validate проверяет согласованность настроек.
func (c *Config) Validate() error {
	switch c.DBType {
	case DBTypeSQLite:
		if c.SQLitePath == "" {
			return errors.New("sqlite path is empty")
		}
	case DBTypePostgres:
		if c.DatabaseDSN == "" {
			return errors.New("postgres storage requires DATABASE_DSN")
		}
	case DBTypeInMemory:
	default:
		return fmt.Errorf("unknown storage type: %s", c.DBType)
	}

	switch c.CodeGenerator {
	case GeneratorTypeRandom, "":
		if c.CodeLength < 1 || c.CodeLength > models.MaxCodeLength {
			return fmt.Errorf("code length must be in 1..%d, got %d", models.MaxCodeLength, c.CodeLength)
		}
	case GeneratorTypeSnowflake:
		if c.SnowflakeNode < 0 || c.SnowflakeNode > maxSnowflakeNode {
			return fmt.Errorf("snowflake node must be in 0..%d, got %d", maxSnowflakeNode, c.SnowflakeNode)
		}
	default:
		return fmt.Errorf("unknown code generator: %s", c.CodeGenerator)
	}
	return nil
}

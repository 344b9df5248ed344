package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fsdevblog/tinyurl/internal/models"
	"github.com/fsdevblog/tinyurl/internal/repositories"
	"github.com/sirupsen/logrus"
)

const (
	DefaultMaxCreateAttempts   = 10
	DefaultMaxGenerateAttempts = 100
)

// URLServiceOptions настройки сервиса.
type URLServiceOptions struct {
	Generator           Generator // Источник кодов, по умолчанию RandomGenerator
	Cache               LinkCache // Кеш редиректов, nil отключает кеш
	MaxCreateAttempts   int       // Попыток вставки при коллизиях на уровне хранилища
	MaxGenerateAttempts int       // Попыток подобрать свободный код
}

// WithGenerator подменяет генератор кодов.
func WithGenerator(g Generator) func(*URLServiceOptions) {
	return func(o *URLServiceOptions) {
		o.Generator = g
	}
}

// WithCache включает кеш редиректов.
func WithCache(c LinkCache) func(*URLServiceOptions) {
	return func(o *URLServiceOptions) {
		o.Cache = c
	}
}

// URLService выделяет короткие коды и обслуживает редиректы.
type URLService struct {
	repo   URLRepository
	gen    Generator
	cache  LinkCache
	logger *logrus.Entry

	maxCreateAttempts   int
	maxGenerateAttempts int
}

func NewURLService(repo URLRepository, logger *logrus.Logger, opts ...func(*URLServiceOptions)) *URLService {
	options := URLServiceOptions{
		Generator:           NewRandomGenerator(DefaultCodeLength),
		MaxCreateAttempts:   DefaultMaxCreateAttempts,
		MaxGenerateAttempts: DefaultMaxGenerateAttempts,
	}
	for _, opt := range opts {
		opt(&options)
	}

	return &URLService{
		repo:                repo,
		gen:                 options.Generator,
		cache:               options.Cache,
		logger:              logger.WithField("module", "services/url"),
		maxCreateAttempts:   max(options.MaxCreateAttempts, 1),
		maxGenerateAttempts: max(options.MaxGenerateAttempts, 1),
	}
}

// Validate проверяет, что ссылка начинается с http:// или https:// (с учетом регистра).
// Пробелы по краям игнорируются, остальная структура URL не проверяется.
func Validate(rawURL string) bool {
	trimmed := strings.TrimSpace(rawURL)
	return strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://")
}

// Create возвращает короткую ссылку для rawURL. Если ссылка уже сокращалась, возвращается
// существующая запись без изменений. URL сохраняется в том виде, в котором был передан.
//
// Проверка существования здесь только оптимизация: гонки разрешаются уникальными индексами хранилища.
// При ErrDuplicateKey сначала ищется запись конкурента по URL, иначе это коллизия кода
// и вставка повторяется с новым кодом.
func (u *URLService) Create(ctx context.Context, rawURL string) (*models.ShortLink, error) {
	if !Validate(rawURL) {
		return nil, ErrInvalidURL
	}

	existing, found, err := u.findByURL(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if found {
		return existing, nil
	}

	for attempt := 1; attempt <= u.maxCreateAttempts; attempt++ {
		code, genErr := u.GenerateUniqueCode(ctx)
		if genErr != nil {
			return nil, genErr
		}

		link := &models.ShortLink{OriginalURL: rawURL, Code: code}
		createErr := u.repo.Create(ctx, link)
		if createErr == nil {
			u.remember(ctx, link)
			return link, nil
		}
		if !errors.Is(createErr, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: create: %w", ErrUnknown, createErr)
		}

		winner, won, findErr := u.findByURL(ctx, rawURL)
		if findErr != nil {
			return nil, findErr
		}
		if won {
			return winner, nil
		}
		u.logger.WithFields(logrus.Fields{"code": code, "attempt": attempt}).
			Debug("code collision on insert, retrying")
	}

	return nil, fmt.Errorf("%w: %d insert attempts for %s", ErrCodeExhausted, u.maxCreateAttempts, rawURL)
}

// GenerateUniqueCode запрашивает у генератора коды, пока не встретится отсутствующий в хранилище.
func (u *URLService) GenerateUniqueCode(ctx context.Context) (string, error) {
	for range u.maxGenerateAttempts {
		code := u.gen.Next()
		_, err := u.repo.GetByCode(ctx, code)
		if errors.Is(err, repositories.ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", fmt.Errorf("%w: check code %s: %w", ErrUnknown, code, err)
		}
	}
	return "", fmt.Errorf("%w: %d draws", ErrCodeExhausted, u.maxGenerateAttempts)
}

func (u *URLService) GetByCode(ctx context.Context, code string) (*models.ShortLink, error) {
	link, err := u.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: code %s", ErrRecordNotFound, code)
		}
		return nil, fmt.Errorf("%w: get by code: %w", ErrUnknown, err)
	}
	return link, nil
}

// Resolve находит оригинальный URL и учитывает переход. Отмена контекста клиентом не прерывает
// операцию: поиск и инкремент выполняются целиком.
func (u *URLService) Resolve(ctx context.Context, code string) (string, error) {
	ctx = context.WithoutCancel(ctx)

	target, err := u.lookupTarget(ctx, code)
	if err != nil {
		return "", err
	}

	if incErr := u.repo.IncrementHits(ctx, code); incErr != nil {
		if errors.Is(incErr, repositories.ErrNotFound) {
			// запись удалили между поиском и инкрементом
			u.forget(ctx, code)
			return "", fmt.Errorf("%w: code %s", ErrRecordNotFound, code)
		}
		return "", fmt.Errorf("%w: increment hits: %w", ErrUnknown, incErr)
	}
	return target, nil
}

func (u *URLService) List(ctx context.Context) ([]models.ShortLink, error) {
	links, err := u.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list: %w", ErrUnknown, err)
	}
	return links, nil
}

// Delete удаляет ссылку по коду. false означает, что ссылки не было.
func (u *URLService) Delete(ctx context.Context, code string) (bool, error) {
	deleted, err := u.repo.DeleteByCode(ctx, code)
	if err != nil {
		return false, fmt.Errorf("%w: delete: %w", ErrUnknown, err)
	}
	if deleted {
		u.forget(ctx, code)
	}
	return deleted, nil
}

func (u *URLService) findByURL(ctx context.Context, rawURL string) (*models.ShortLink, bool, error) {
	link, err := u.repo.GetByURL(ctx, rawURL)
	if err == nil {
		return link, true, nil
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, false, nil
	}
	return nil, false, fmt.Errorf("%w: get by url: %w", ErrUnknown, err)
}

func (u *URLService) lookupTarget(ctx context.Context, code string) (string, error) {
	if u.cache != nil {
		target, ok, err := u.cache.Get(ctx, code)
		if err != nil {
			u.logger.WithError(err).WithField("code", code).Warn("cache get failed")
		} else if ok {
			return target, nil
		}
	}

	link, err := u.GetByCode(ctx, code)
	if err != nil {
		return "", err
	}
	u.remember(ctx, link)
	return link.OriginalURL, nil
}

func (u *URLService) remember(ctx context.Context, link *models.ShortLink) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Set(ctx, link.Code, link.OriginalURL); err != nil {
		u.logger.WithError(err).WithField("code", link.Code).Warn("cache set failed")
	}
}

func (u *URLService) forget(ctx context.Context, code string) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Delete(ctx, code); err != nil {
		u.logger.WithError(err).WithField("code", code).Warn("cache delete failed")
	}
}

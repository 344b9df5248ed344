package memstore

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/fsdevblog/tinyurl/internal/db"
	"github.com/fsdevblog/tinyurl/internal/db/memory"
	"github.com/fsdevblog/tinyurl/internal/models"
	"github.com/fsdevblog/tinyurl/internal/repositories"
	"github.com/sirupsen/logrus"
)

// URLRepo представляет собой репозиторий для работы с короткими ссылками в памяти.
// Записи хранятся по коду, byURL играет роль уникального индекса по оригинальному URL.
type URLRepo struct {
	s      *db.MemoryStorage
	logger *logrus.Entry

	// mu сериализует операции, затрагивающие оба индекса.
	mu     sync.Mutex
	byURL  map[string]string
	lastID uint
}

// NewURLRepo создает новый экземпляр репозитория.
//
// Параметры:
//   - store: экземпляр хранилища в памяти
//   - logger: логгер
//
// Возвращает:
//   - *URLRepo: инициализированный репозиторий
func NewURLRepo(store *db.MemoryStorage, logger *logrus.Logger) *URLRepo {
	return &URLRepo{
		s:      store,
		logger: logger.WithField("module", "repository/memstore/url"),
		byURL:  make(map[string]string),
	}
}

// Create сохраняет новую запись, назначая ей ID и CreatedAt.
//
// Параметры:
//   - ctx: контекст выполнения
//   - link: данные для создания; ID и CreatedAt заполняются при успехе
//
// Возвращает:
//   - error: repositories.ErrDuplicateKey если код или URL уже заняты
func (u *URLRepo) Create(ctx context.Context, link *models.ShortLink) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if _, exists := u.byURL[link.OriginalURL]; exists {
		return fmt.Errorf("failed to create record: %w", convertErrorType(memory.ErrDuplicateKey))
	}

	record := *link
	record.ID = u.lastID + 1
	record.CreatedAt = time.Now().UTC()
	record.Hits = 0

	if err := memory.Set[models.ShortLink](ctx, record.Code, &record, u.s.MStorage); err != nil {
		return fmt.Errorf("failed to create record: %w", convertErrorType(err))
	}
	u.lastID = record.ID
	u.byURL[record.OriginalURL] = record.Code
	*link = record
	return nil
}

// GetByCode получает запись по короткому коду.
func (u *URLRepo) GetByCode(ctx context.Context, code string) (*models.ShortLink, error) {
	link, err := memory.Get[models.ShortLink](ctx, code, u.s.MStorage)
	if err != nil {
		return nil, fmt.Errorf("failed to get record by code %s: %w", code, convertErrorType(err))
	}
	return link, nil
}

// GetByURL получает запись по оригинальному URL.
func (u *URLRepo) GetByURL(ctx context.Context, rawURL string) (*models.ShortLink, error) {
	u.mu.Lock()
	code, ok := u.byURL[rawURL]
	u.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("failed to get record by url %s: %w", rawURL, convertErrorType(memory.ErrNotFound))
	}
	return u.GetByCode(ctx, code)
}

// IncrementHits атомарно увеличивает счетчик переходов.
func (u *URLRepo) IncrementHits(ctx context.Context, code string) error {
	_, err := memory.Update[models.ShortLink](ctx, code, u.s.MStorage, func(link *models.ShortLink) error {
		link.Hits++
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to increment hits for code %s: %w", code, convertErrorType(err))
	}
	return nil
}

// List возвращает все записи, новые первыми.
func (u *URLRepo) List(ctx context.Context) ([]models.ShortLink, error) {
	links, err := memory.GetAll[models.ShortLink](ctx, u.s.MStorage)
	if err != nil {
		u.logger.WithError(err).Error("failed to list records")
		return nil, fmt.Errorf("failed to list records: %w", convertErrorType(err))
	}
	slices.SortFunc(links, func(a, b models.ShortLink) int {
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		default:
			return 0
		}
	})
	return links, nil
}

// DeleteByCode удаляет запись. Возвращает false без ошибки, если записи нет.
func (u *URLRepo) DeleteByCode(ctx context.Context, code string) (bool, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	link, err := memory.Get[models.ShortLink](ctx, code, u.s.MStorage)
	if err != nil {
		converted := convertErrorType(err)
		if errors.Is(converted, repositories.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete record by code %s: %w", code, converted)
	}
	if delErr := memory.Delete(ctx, code, u.s.MStorage); delErr != nil {
		return false, fmt.Errorf("failed to delete record by code %s: %w", code, convertErrorType(delErr))
	}
	delete(u.byURL, link.OriginalURL)
	return true, nil
}

// Ping хранилище в памяти доступно всегда.
func (u *URLRepo) Ping(ctx context.Context) error {
	return ctx.Err() //nolint:wrapcheck
}

package services

import (
	"context"

	"github.com/fsdevblog/tinyurl/internal/models"
)

// URLRepository описывает хранилище коротких ссылок.
type URLRepository interface {
	// Create сохраняет новую запись. При нарушении уникальности code или original_url
	// возвращает repositories.ErrDuplicateKey.
	Create(ctx context.Context, link *models.ShortLink) error
	// GetByCode находит запись по короткому коду.
	GetByCode(ctx context.Context, code string) (*models.ShortLink, error)
	// GetByURL находит запись по оригинальному URL.
	GetByURL(ctx context.Context, rawURL string) (*models.ShortLink, error)
	// IncrementHits атомарно увеличивает счетчик переходов на 1.
	IncrementHits(ctx context.Context, code string) error
	// List возвращает все записи, новые первыми.
	List(ctx context.Context) ([]models.ShortLink, error)
	// DeleteByCode удаляет запись и сообщает, была ли она.
	DeleteByCode(ctx context.Context, code string) (bool, error)
	Pinger
}

// LinkCache кеш соответствия код -> оригинальный URL. Используется только для чтения при редиректе,
// счетчик переходов всегда обновляется в хранилище.
type LinkCache interface {
	Get(ctx context.Context, code string) (string, bool, error)
	Set(ctx context.Context, code, originalURL string) error
	Delete(ctx context.Context, code string) error
}

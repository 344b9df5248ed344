package controllers

import (
	"context"

	"github.com/fsdevblog/tinyurl/internal/models"
)

type ConnectionChecker interface {
	CheckConnection(ctx context.Context) error
}

// URLShortener сервис коротких ссылок, с которым работают контроллеры.
type URLShortener interface {
	// Create возвращает существующую или новую короткую ссылку для rawURL.
	Create(ctx context.Context, rawURL string) (*models.ShortLink, error)
	// Resolve возвращает оригинальный URL и учитывает переход.
	Resolve(ctx context.Context, code string) (string, error)
	List(ctx context.Context) ([]models.ShortLink, error)
	Delete(ctx context.Context, code string) (bool, error)
}

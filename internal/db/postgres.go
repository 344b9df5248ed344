package db

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewPostgres создает новый пул подключений к PostgreSQL и мигрирует схему.
//
// Параметры:
//   - ctx: контекст выполнения
//   - dsn: строка подключения к базе данных (Data Source Name)
//   - logger: логгер для запросов gorm, может быть nil
//
// Возвращает:
//   - *gorm.DB: подключение к PostgreSQL
//   - error: ошибка создания подключения
func NewPostgres(ctx context.Context, dsn string, logger *logrus.Logger) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(dsn), gormConfig(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	if migrateErr := migrate(ctx, conn); migrateErr != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", migrateErr)
	}
	return conn, nil
}

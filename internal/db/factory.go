package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type StorageType string

const (
	StorageTypeSQLite   StorageType = "sqlite"
	StorageTypePostgres StorageType = "postgres"
	StorageTypeInMemory StorageType = "inMemory"
)

type FactoryConfig struct {
	StorageType  StorageType
	PostgresDSN  *string
	SqliteDBPath *string
	Logger       *logrus.Logger
}

// NewConnectionFactory открывает хранилище нужного типа и мигрирует схему.
// Возвращает *gorm.DB для sql хранилищ и *MemoryStorage для хранилища в памяти.
func NewConnectionFactory(ctx context.Context, config FactoryConfig) (any, error) {
	switch config.StorageType {
	case StorageTypeSQLite:
		if config.SqliteDBPath == nil || *config.SqliteDBPath == "" {
			return nil, errors.New("sqlite db path is empty")
		}
		conn, err := NewSQLite(ctx, *config.SqliteDBPath, config.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create sqlite connection: %w", err)
		}
		return conn, nil
	case StorageTypePostgres:
		if config.PostgresDSN == nil || *config.PostgresDSN == "" {
			return nil, errors.New("postgres dsn is empty")
		}
		conn, err := NewPostgres(ctx, *config.PostgresDSN, config.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create postgres connection: %w", err)
		}
		return conn, nil
	case StorageTypeInMemory:
		return NewMemStorage(), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", config.StorageType)
	}
}

// Close закрывает соединение, созданное NewConnectionFactory.
func Close(conn any) error {
	switch c := conn.(type) {
	case *gorm.DB:
		sqlDB, err := c.DB()
		if err != nil {
			return fmt.Errorf("get sql.DB: %w", err)
		}
		if closeErr := sqlDB.Close(); closeErr != nil {
			return fmt.Errorf("close sql.DB: %w", closeErr)
		}
		return nil
	case *MemoryStorage:
		return nil
	default:
		return fmt.Errorf("unknown connection type %T", conn)
	}
}

package db

import (
	"context"
	"fmt"
	"time"

	"github.com/fsdevblog/tinyurl/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// gormConfig общая конфигурация gorm. TranslateError нужен для получения gorm.ErrDuplicatedKey
// при нарушении уникальных индексов независимо от драйвера.
func gormConfig(logger *logrus.Logger) *gorm.Config {
	conf := &gorm.Config{TranslateError: true}
	if logger != nil {
		conf.Logger = gormlogger.New(logger, gormlogger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		})
	} else {
		conf.Logger = gormlogger.Discard
	}
	return conf
}

func migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&models.ShortLink{}); err != nil {
		return fmt.Errorf("migrating sql: %w", err)
	}
	return nil
}

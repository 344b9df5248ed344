package services

import (
	"errors"
	"fmt"

	"github.com/fsdevblog/tinyurl/internal/db"
	"github.com/fsdevblog/tinyurl/internal/repositories/memstore"
	"github.com/fsdevblog/tinyurl/internal/repositories/sql"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ServiceType string

const (
	ServiceTypeSQL      ServiceType = "sql"
	ServiceTypeInMemory ServiceType = "inMemory"
)

type Services struct {
	URLService  *URLService
	PingService *PingService
}

// Factory собирает сервисный слой поверх соединения, созданного db.NewConnectionFactory.
func Factory(
	conn any,
	sType ServiceType,
	logger *logrus.Logger,
	opts ...func(*URLServiceOptions),
) (*Services, error) {
	switch sType {
	case ServiceTypeSQL:
		gormDB, ok := conn.(*gorm.DB)
		if !ok {
			return nil, errors.New("invalid connection type. expected *gorm.DB")
		}
		return newServices(sql.NewURLRepo(gormDB, logger), logger, opts...), nil
	case ServiceTypeInMemory:
		store, ok := conn.(*db.MemoryStorage)
		if !ok {
			return nil, errors.New("invalid connection type. expected *db.MemoryStorage")
		}
		return newServices(memstore.NewURLRepo(store, logger), logger, opts...), nil
	default:
		return nil, fmt.Errorf("unknown service type: %s", sType)
	}
}

func newServices(repo URLRepository, logger *logrus.Logger, opts ...func(*URLServiceOptions)) *Services {
	return &Services{
		URLService:  NewURLService(repo, logger, opts...),
		PingService: NewPingService(repo),
	}
}

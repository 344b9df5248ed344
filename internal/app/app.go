package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/tinyurl/internal/cache"
	"github.com/fsdevblog/tinyurl/internal/config"
	"github.com/fsdevblog/tinyurl/internal/controllers"
	"github.com/fsdevblog/tinyurl/internal/db"
	"github.com/fsdevblog/tinyurl/internal/logs"
	"github.com/fsdevblog/tinyurl/internal/metrics"
	"github.com/fsdevblog/tinyurl/internal/services"
)

const (
	startupTimeout    = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
)

type App struct {
	config     config.Config
	conn       any
	cache      *cache.RedisCache
	dbServices *services.Services
	Logger     *logrus.Logger
}

func New(appConf config.Config) (*App, error) {
	logger, logErr := logs.New(logs.WithLevel(appConf.LogLevel))
	if logErr != nil {
		return nil, fmt.Errorf("init logger: %w", logErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	conn, connErr := db.NewConnectionFactory(ctx, db.FactoryConfig{
		StorageType:  whatIsDBStorageType(&appConf),
		PostgresDSN:  &appConf.DatabaseDSN,
		SqliteDBPath: &appConf.SQLitePath,
		Logger:       logger,
	})
	if connErr != nil {
		return nil, fmt.Errorf("init storage: %w", connErr)
	}

	gen, genErr := newGenerator(&appConf)
	if genErr != nil {
		_ = db.Close(conn)
		return nil, fmt.Errorf("init code generator: %w", genErr)
	}
	opts := []func(*services.URLServiceOptions){services.WithGenerator(gen)}

	var linkCache *cache.RedisCache
	if appConf.RedisAddr != "" {
		c, cacheErr := cache.NewRedisCache(ctx, appConf.RedisAddr, appConf.CacheTTL)
		if cacheErr != nil {
			_ = db.Close(conn)
			return nil, fmt.Errorf("init cache: %w", cacheErr)
		}
		linkCache = c
		opts = append(opts, services.WithCache(linkCache))
	}

	dbServices, servErr := services.Factory(conn, whatIsServiceType(&appConf), logger, opts...)
	if servErr != nil {
		_ = db.Close(conn)
		return nil, fmt.Errorf("init services: %w", servErr)
	}

	return &App{
		config:     appConf,
		conn:       conn,
		cache:      linkCache,
		dbServices: dbServices,
		Logger:     logger,
	}, nil
}

// Must вызывает панику если произошла ошибка.
func Must(a *App, err error) *App {
	if err != nil {
		panic(err)
	}
	return a
}

// Run запускает web сервер и блокируется до SIGINT/SIGTERM или ошибки сервера.
// После остановки сервера закрывает кеш и хранилище.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	router := controllers.SetupRouter(controllers.RouterParams{
		URLService:  a.dbServices.URLService,
		PingService: a.dbServices.PingService,
		Metrics:     metrics.NewHTTPMetrics(),
		Logger:      a.Logger,
	})

	server := &http.Server{
		Addr:              a.config.ServerAddress,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case <-ctx.Done():
		a.Logger.Info("Shutdown command received")
	case serverErr = <-errChan:
		a.Logger.WithError(serverErr).Error("server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		a.Logger.WithError(err).Error("graceful shutdown failed")
		serverErr = errors.Join(serverErr, err)
	}

	if err := a.close(); err != nil {
		a.Logger.WithError(err).Error("release resources")
		serverErr = errors.Join(serverErr, err)
	}

	a.Logger.Info("Server stopped")
	return serverErr
}

// close закрывает кеш и соединение с хранилищем.
func (a *App) close() error {
	var errs []error
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close cache: %w", err))
		}
	}
	if err := db.Close(a.conn); err != nil {
		errs = append(errs, fmt.Errorf("close storage: %w", err))
	}
	return errors.Join(errs...)
}

func newGenerator(appConf *config.Config) (services.Generator, error) {
	if appConf.CodeGenerator == config.GeneratorTypeSnowflake {
		gen, err := services.NewSnowflakeGenerator(appConf.SnowflakeNode)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}
		return gen, nil
	}
	return services.NewRandomGenerator(appConf.CodeLength), nil
}

func whatIsDBStorageType(appConf *config.Config) db.StorageType {
	switch appConf.DBType {
	case config.DBTypePostgres:
		return db.StorageTypePostgres
	case config.DBTypeInMemory:
		return db.StorageTypeInMemory
	default:
		return db.StorageTypeSQLite
	}
}

func whatIsServiceType(appConf *config.Config) services.ServiceType {
	if appConf.DBType == config.DBTypeInMemory {
		return services.ServiceTypeInMemory
	}
	return services.ServiceTypeSQL
}

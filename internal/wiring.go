package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"exhome-listing-service/internal/adapters/auth_api_client"
	"exhome-listing-service/internal/adapters/authtransport"
	logger_adapter "exhome-listing-service/internal/adapters/logger"
	session_adapter "exhome-listing-service/internal/adapters/session"
	"exhome-listing-service/internal/adapters/warehouse_api_client"
	"exhome-listing-service/internal/configs"
	"exhome-listing-service/internal/contextkeys"
	"exhome-listing-service/internal/core/port"
	fluentlogger "exhome-listing-service/pkg/fluent_logger"
	"exhome-listing-service/pkg/postgres"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// NewBaseLogger собирает stdout-логгер и, если включен, Fluent Bit.
// Возвращенный fluent-клиент (может быть nil) нужно закрыть при завершении.
func NewBaseLogger(appConfig *configs.AppConfig) (port.LoggerPort, *fluent.Fluent, error) {
	var activeLoggers []port.LoggerPort

	slogCfg := logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false, // текстовый формат
		UseColor: true,
	}
	stdoutLogger := logger_adapter.NewSlogAdapter(slogCfg)
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		var err error
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})
	baseLogger.WithFields(port.Fields{"component": "app"}).Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})
	return baseLogger, fluentClient, nil
}

// BackendClients - клиенты внешнего backend.
// Warehouse ходит через auth-транспорт, auth-клиент - напрямую.
type BackendClients struct {
	Auth      *auth_api_client.Client
	Warehouse *warehouse_api_client.Client
}

func NewBackendClients(appConfig *configs.AppConfig, sessions port.SessionStorePort) *BackendClients {
	authClient := auth_api_client.NewClient(appConfig.Backend.URL, &http.Client{Timeout: appConfig.Backend.Timeout})

	warehouseHTTP := &http.Client{
		Timeout:   appConfig.Backend.Timeout,
		Transport: authtransport.New(http.DefaultTransport, authClient, sessions, appConfig.Auth.RefreshSkew),
	}
	return &BackendClients{
		Auth:      authClient,
		Warehouse: warehouse_api_client.NewClient(appConfig.Backend.URL, warehouseHTTP),
	}
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}

// NewSessionStore выбирает хранилище сессий по SESSION_STORE.
// closeFn освобождает ресурсы хранилища и всегда не nil.
func NewSessionStore(ctx context.Context, appConfig *configs.AppConfig, logger port.LoggerPort) (port.SessionStorePort, func(), error) {
	switch appConfig.Session.Store {
	case "postgres":
		dbPool, err := postgres.NewClient(ctx, postgres.Config{DatabaseURL: appConfig.Database.URL, PingTimeout: 5 * time.Second})
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL", err, nil)
			return nil, nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		store, err := session_adapter.NewPostgresStore(dbPool)
		if err != nil {
			dbPool.Close()
			return nil, nil, err
		}
		if err := store.Migrate(contextkeys.ContextWithLogger(ctx, logger)); err != nil {
			dbPool.Close()
			return nil, nil, fmt.Errorf("failed to migrate sessions table: %w", err)
		}
		logger.Info("Session store initialized", port.Fields{"store": "postgres"})
		return store, dbPool.Close, nil
	case "sqlite":
		store, err := session_adapter.NewSQLiteStore(appConfig.Session.SQLitePath)
		if err != nil {
			logger.Error("Failed to open SQLite session store", err, port.Fields{"path": appConfig.Session.SQLitePath})
			return nil, nil, err
		}
		logger.Info("Session store initialized", port.Fields{"store": "sqlite", "path": appConfig.Session.SQLitePath})
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Error("Error closing SQLite session store", err, nil)
			}
		}, nil
	default:
		logger.Info("Session store initialized", port.Fields{"store": "memory"})
		return session_adapter.NewMemoryStore(), func() {}, nil
	}
}

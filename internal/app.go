package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	rabbitmq_adapter "exhome-listing-service/internal/adapters/rabbitmq"
	"exhome-listing-service/internal/adapters/redis_cache"
	"exhome-listing-service/internal/adapters/rest"
	"exhome-listing-service/internal/configs"
	"exhome-listing-service/internal/constants"
	"exhome-listing-service/internal/core/domain"
	"exhome-listing-service/internal/core/port"
	"exhome-listing-service/internal/core/usecase"
	"exhome-listing-service/pkg/rabbitmq/rabbitmq_common"
	"exhome-listing-service/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config    *configs.AppConfig
	apiServer *rest.Server

	closeSessions func()
	redisClient   *redis.Client
	connManager   *rabbitmq_common.ConnectionManager
	eventProducer *rabbitmq_producer.Publisher
	logger        port.LoggerPort
	fluentClient  *fluent.Fluent
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	baseLogger, fluentClient, err := NewBaseLogger(appConfig)
	if err != nil {
		return nil, err
	}
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})

	application := &App{
		config:       appConfig,
		logger:       appLogger,
		fluentClient: fluentClient,
	}
	// при ошибке ниже освобождаем то, что уже успели открыть
	ok := false
	defer func() {
		if !ok {
			application.release()
		}
	}()

	profiles, err := configs.LoadProfiles(appConfig.ProfilesPath)
	if err != nil {
		appLogger.Error("Failed to load listing profiles", err, port.Fields{"path": appConfig.ProfilesPath})
		return nil, fmt.Errorf("failed to load listing profiles: %w", err)
	}
	registry, err := domain.NewProfileRegistry(profiles)
	if err != nil {
		return nil, err
	}
	appLogger.Info("Listing profiles loaded", port.Fields{"count": len(profiles)})

	ctx := context.Background()

	sessions, closeSessions, err := NewSessionStore(ctx, appConfig, baseLogger.WithFields(port.Fields{"component": "session_store"}))
	if err != nil {
		return nil, err
	}
	application.closeSessions = closeSessions

	backend := NewBackendClients(appConfig, sessions)
	appLogger.Info("Backend clients initialized", port.Fields{"backend_url": appConfig.Backend.URL})

	var listingCache port.ListingCachePort
	if appConfig.Redis.Enabled {
		redisClient, err := redis_cache.NewClient(ctx, appConfig.Redis.Address, appConfig.Redis.Password, appConfig.Redis.DB)
		if err != nil {
			appLogger.Error("Failed to connect to Redis", err, port.Fields{"address": appConfig.Redis.Address})
			return nil, err
		}
		application.redisClient = redisClient
		listingCache = redis_cache.NewListingCache(redisClient, appConfig.Redis.TTL)
		appLogger.Info("Redis listing cache initialized", port.Fields{"ttl": appConfig.Redis.TTL.String()})
	}

	var searchEvents port.SearchEventsPort
	if appConfig.RabbitMQ.Enabled {
		connManagerBridge := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"}))
		connManager, err := rabbitmq_common.NewConnectionManager(rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL}, connManagerBridge)
		if err != nil {
			appLogger.Error("Failed to create connection manager", err, nil)
			return nil, fmt.Errorf("failed to create connection manager: %w", err)
		}
		application.connManager = connManager

		producerCfg := rabbitmq_producer.PublisherConfig{
			ExchangeName:             appConfig.RabbitMQ.Exchange,
			ExchangeType:             constants.ListingEventsExchangeType,
			DurableExchange:          true,
			DeclareExchangeIfMissing: true,
			Logger:                   rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})),
		}
		eventProducer, err := rabbitmq_producer.NewPublisher(producerCfg, connManager)
		if err != nil {
			return nil, fmt.Errorf("failed to create event producer: %w", err)
		}
		application.eventProducer = eventProducer

		publisher, err := rabbitmq_adapter.NewSearchEventsPublisher(eventProducer, constants.RoutingKeySearchPerformed)
		if err != nil {
			return nil, err
		}
		searchEvents = publisher
		appLogger.Info("RabbitMQ search events publisher initialized", port.Fields{"exchange": appConfig.RabbitMQ.Exchange})
	}

	// ИНИЦИАЛИЗАЦИЯ USE CASES
	listProjectsUseCase := usecase.NewListProjectsUseCase(backend.Warehouse)
	loadListingsUseCase := usecase.NewLoadListingsUseCase(backend.Warehouse, listingCache, searchEvents)
	parseFiltersUseCase := usecase.NewParseFiltersUseCase()
	applyFiltersUseCase := usecase.NewApplyFiltersUseCase(listProjectsUseCase)
	loginUseCase := usecase.NewLoginUseCase(backend.Auth, sessions)
	logoutUseCase := usecase.NewLogoutUseCase(sessions)
	currentUserUseCase := usecase.NewCurrentUserUseCase(sessions)
	appLogger.Info("All use cases initialized", nil)

	cookie := rest.CookieConfig{
		Name:   appConfig.Session.CookieName,
		TTL:    appConfig.Session.CookieTTL,
		Secure: appConfig.Session.CookieSecure,
	}
	listingHandlers := rest.NewListingHandlers(registry, loadListingsUseCase, parseFiltersUseCase, applyFiltersUseCase, listProjectsUseCase)
	authHandlers := rest.NewAuthHandlers(loginUseCase, logoutUseCase, currentUserUseCase, cookie)
	router := rest.NewRouter(listingHandlers, authHandlers, cookie, appConfig.Rest.AllowedOrigins, baseLogger)
	application.apiServer = rest.NewServer(appConfig.Rest.PORT, router, baseLogger)

	ok = true
	return application, nil
}

// Run запускает HTTP-сервер и ждет сигнала завершения.
func (a *App) Run() error {
	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.apiServer.Stop(shutdownCtx); err != nil {
			a.logger.Error("Error during API server shutdown", err, nil)
		}

		a.release()
	}()

	a.logger.Info("Application is starting...", nil)

	serverErrors := make(chan error, 1)
	go func() {
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrors <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", port.Fields{"port": a.config.Rest.PORT})
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
		return nil
	case err := <-serverErrors:
		a.logger.Error("HTTP server failed, shutting down", err, nil)
		return err
	}
}

// release закрывает внешние ресурсы в обратном порядке создания
func (a *App) release() {
	if a.eventProducer != nil {
		if err := a.eventProducer.Close(); err != nil {
			a.logger.Error("Error closing event producer", err, nil)
		}
	}
	if a.connManager != nil {
		if err := a.connManager.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Error("Error closing Redis client", err, nil)
		}
	}
	if a.closeSessions != nil {
		a.closeSessions()
	}

	a.logger.Info("Application shut down gracefully.", nil)

	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			// fluent может быть уже недоступен
			fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
	}
}

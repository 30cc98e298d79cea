package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"exhome-listing-service/internal"
	session_adapter "exhome-listing-service/internal/adapters/session"
	"exhome-listing-service/internal/analyzer"
	"exhome-listing-service/internal/configs"
	"exhome-listing-service/internal/contextkeys"
	"exhome-listing-service/internal/core/domain"
	"exhome-listing-service/internal/core/port"
	"exhome-listing-service/internal/core/usecase"
)

func main() {
	listingType := flag.String("type", "sale", "listing type: sale, rental, CAN_BAN or CAN_CHO_THUE")
	path := flag.String("path", "", "filter path, e.g. /mua-ban-can-ho,gia-tu-2-ty (default: profile root)")
	pages := flag.Int("pages", 1, "number of pages to walk")
	pageSize := flag.Int("page-size", domain.DefaultPageSize, "page size")
	envFile := flag.String("env", "", "optional .env file")
	flag.Parse()

	var (
		appConfig *configs.AppConfig
		err       error
	)
	if *envFile != "" {
		appConfig, err = configs.LoadConfig(*envFile)
	} else {
		appConfig, err = configs.LoadConfig()
	}
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	appConfig.FluentBit.Enabled = false

	baseLogger, _, err := internal.NewBaseLogger(appConfig)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger := baseLogger.WithFields(port.Fields{"component": "listing-analyzer"})

	profiles, err := configs.LoadProfiles(appConfig.ProfilesPath)
	if err != nil {
		log.Fatalf("Failed to load listing profiles: %v", err)
	}
	registry, err := domain.NewProfileRegistry(profiles)
	if err != nil {
		log.Fatalf("Invalid listing profiles: %v", err)
	}
	profile, err := registry.Lookup(*listingType)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if *path == "" {
		*path = "/" + profile.RoutePath
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, traceID := contextkeys.EnsureTraceID(ctx)
	logger = logger.WithFields(port.Fields{"trace_id": traceID})
	ctx = contextkeys.ContextWithLogger(ctx, baseLogger.WithFields(port.Fields{"trace_id": traceID}))

	sessions := session_adapter.NewMemoryStore()
	backend := internal.NewBackendClients(appConfig, sessions)

	if appConfig.Backend.Username != "" {
		s, err := usecase.NewLoginUseCase(backend.Auth, sessions).Execute(ctx, appConfig.Backend.Username, appConfig.Backend.Password)
		if err != nil {
			logger.Error("Login failed", err, port.Fields{"username": appConfig.Backend.Username})
			os.Exit(1)
		}
		ctx = contextkeys.ContextWithSessionID(ctx, s.ID)
		logger.Info("Logged in", port.Fields{"username": appConfig.Backend.Username})
	}

	loader := usecase.NewLoadListingsUseCase(backend.Warehouse, nil, nil)
	controller := usecase.NewListingController(profile, loader)

	report, err := analyzer.Run(ctx, controller, analyzer.Options{Path: *path, Pages: *pages, PageSize: *pageSize})
	if err != nil {
		logger.Error("Analysis failed", err, nil)
		os.Exit(1)
	}
	if err := analyzer.Print(os.Stdout, report); err != nil {
		log.Fatalf("Failed to print report: %v", err)
	}
}

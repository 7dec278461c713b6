// Package main initializes and starts the card server, setting up
// configuration, logging, storage, services, handlers and the optional
// expired card sweep.
package main

import (
	"cmp"
	"context"
	"fmt"
	"os/signal"
	"syscall"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/GophCards/internal/config"
	"github.com/atinyakov/GophCards/internal/db"
	"github.com/atinyakov/GophCards/internal/logger"
	"github.com/atinyakov/GophCards/internal/repository"
	"github.com/atinyakov/GophCards/internal/server/handler/http"
	"github.com/atinyakov/GophCards/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	options := config.Parse()

	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	if options.JWTSecret == "" {
		zapLogger.Fatal("jwt secret is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		cardRepo    service.CardRepository
		profileRepo service.ProfileRepository
	)
	if options.DatabaseDSN == "" {
		zapLogger.Warn("no database configured, cards are kept in memory")
		cardRepo = repository.NewMemoryCardRepository(nil)
		profileRepo = repository.NewMemoryProfileRepository()
	} else {
		postgresDB, err := db.InitPostgres(options.DatabaseDSN)
		if err != nil {
			zapLogger.Fatal("cannot init database", zap.Error(err))
		}
		defer func() { _ = postgresDB.Close() }()
		cardRepo = repository.NewPostgresCardRepository(postgresDB)
		profileRepo = repository.NewPostgresProfileRepository(postgresDB)
	}

	cardService := service.NewCardService(cardRepo, service.WithLogger(zapLogger))
	profileService := service.NewProfileService(profileRepo, zapLogger)

	db.StartSoftDeleteCleaner(ctx, cardService,
		options.PurgeInterval,
		options.PurgeRetention,
		zapLogger,
	)

	router := http.NewRouter(
		&http.CardHandler{Cards: cardService, Profiles: profileService},
		&http.ProfileHandler{Profiles: profileService},
		[]byte(options.JWTSecret),
		zapLogger,
	)

	server := &nethttp.Server{
		Addr:    options.Port,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	var err error
	if options.TLSCert != "" && options.TLSKey != "" {
		zapLogger.Info("starting HTTPS server", zap.String("addr", options.Port))
		err = server.ListenAndServeTLS(options.TLSCert, options.TLSKey)
	} else {
		zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
		err = server.ListenAndServe()
	}
	if err != nil && err != nethttp.ErrServerClosed {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}

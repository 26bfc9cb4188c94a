package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/yogeshkhant77/Booksy/internal/adapter/email"
	"github.com/yogeshkhant77/Booksy/internal/adapter/googlebooks"
	mongoadapter "github.com/yogeshkhant77/Booksy/internal/adapter/mongo"
	natsadapter "github.com/yogeshkhant77/Booksy/internal/adapter/nats"
	redisadapter "github.com/yogeshkhant77/Booksy/internal/adapter/redis"
	"github.com/yogeshkhant77/Booksy/internal/app/config"
	"github.com/yogeshkhant77/Booksy/internal/handler"
	"github.com/yogeshkhant77/Booksy/internal/platform/logger"
	"github.com/yogeshkhant77/Booksy/internal/platform/metrics"
	"github.com/yogeshkhant77/Booksy/internal/platform/tracer"
	"github.com/yogeshkhant77/Booksy/internal/router"
	"github.com/yogeshkhant77/Booksy/internal/service"
)

// Run wires the application together and blocks until shutdown.
func Run(cfg *config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := tracer.Init(ctx, "booksy", cfg.Tracing.OTLPEndpoint)
	if err != nil {
		return err
	}
	if tp != nil {
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				log.Errorf("failed to shut down tracer: %v", err)
			}
		}()
	}

	mongoClient, err := mongoadapter.NewClient(ctx, cfg.MongoDB)
	if err != nil {
		return err
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Errorf("failed to disconnect mongo client: %v", err)
		}
	}()
	db := mongoClient.Database(cfg.MongoDB.Database)

	redisClient, err := redisadapter.NewClient(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	publisher, err := natsadapter.NewPublisher(cfg.NATS, log)
	if err != nil {
		return err
	}
	defer publisher.Close()

	m := metrics.NewManager("booksy")
	go func() {
		if err := m.StartServer(cfg.Metrics.Port, log); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("metrics server failed: %v", err)
		}
	}()

	userRepo := mongoadapter.NewUserRepository(db, log)
	bookRepo := mongoadapter.NewBookRepository(db, log)
	shelfRepo := mongoadapter.NewShelfRepository(db, log)
	bookCache := redisadapter.NewBookCacheRepository(redisClient)
	searchCache := redisadapter.NewSearchCacheRepository(redisClient)
	mailer := email.NewGomailSender(cfg.SMTP, log)
	gbooks := googlebooks.NewClient(cfg.GoogleBooks, log)

	tokens := service.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authSvc := service.NewAuthService(userRepo, mailer, tokens, publisher, m, cfg.Auth.OTPTTL, cfg.Auth.AdminEmails, log)
	librarySvc := service.NewLibraryService(userRepo, bookRepo, bookCache, cfg.BookCache.TTL, m, log)
	shelfSvc := service.NewShelfService(shelfRepo, bookRepo, log)
	catalogSvc := service.NewCatalogService(bookRepo, bookCache, cfg.BookCache.TTL, publisher, m, log)
	adminSvc := service.NewAdminService(userRepo, bookRepo, log)
	discoverySvc := service.NewDiscoveryService(gbooks, searchCache, cfg.GoogleBooks.CacheTTL, log)

	mux := router.New(router.Handlers{
		Auth:      handler.NewAuthHandler(authSvc, log),
		Book:      handler.NewBookHandler(catalogSvc, log),
		Library:   handler.NewLibraryHandler(librarySvc, log),
		Shelf:     handler.NewShelfHandler(shelfSvc, log),
		Admin:     handler.NewAdminHandler(adminSvc, log),
		Discovery: handler.NewDiscoveryHandler(discoverySvc, log),
	}, authSvc, m, log)

	server := &http.Server{
		Addr:         ":" + cfg.HTTPServer.Port,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Infof("HTTP server listening on %s", server.Addr)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info("server stopped")
	return nil
}

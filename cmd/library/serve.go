package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/forgo/library/internal/aggregate"
	"github.com/forgo/library/internal/config"
	"github.com/forgo/library/internal/database"
	"github.com/forgo/library/internal/handler"
	"github.com/forgo/library/internal/middleware"
	"github.com/forgo/library/internal/model"
	"github.com/forgo/library/internal/repository"
	"github.com/forgo/library/internal/service"
	"github.com/forgo/library/internal/view"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the catalog web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

func runServer(ctx context.Context) error {
	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	h, err := buildHandler(cfg, db, logger)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      h,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			zap.String("port", cfg.Server.Port),
			zap.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("server error", zap.Error(err))
			return err
		}
		return nil
	case <-quit:
	}

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		return err
	}

	logger.Info("server exited")
	return nil
}

// openStore connects to SurrealDB with the loaded configuration
func openStore(ctx context.Context) (*database.SurrealDB, error) {
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	}, logger)

	if err := db.Connect(ctx); err != nil {
		logger.Error("failed to connect to database", zap.Error(err))
		return nil, err
	}

	logger.Info("connected to database",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Database),
	)
	return db, nil
}

// buildHandler wires repositories, services and handlers over db
func buildHandler(cfg *config.Config, db database.Database, logger *zap.Logger) (http.Handler, error) {
	renderer, err := view.New()
	if err != nil {
		return nil, err
	}

	// Initialize repositories
	authorRepo := repository.NewAuthorRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	bookRepo := repository.NewBookRepository(db)
	bookInstanceRepo := repository.NewBookInstanceRepository(db)

	runner := aggregate.NewRunner(aggregate.Options{Timeout: cfg.Aggregate.Timeout})

	// Initialize services
	indexService := service.NewIndexService(service.IndexServiceConfig{
		AuthorRepo:       authorRepo,
		BookRepo:         bookRepo,
		GenreRepo:        genreRepo,
		BookInstanceRepo: bookInstanceRepo,
		Runner:           runner,
	})
	authorService := service.NewAuthorService(service.AuthorServiceConfig{
		AuthorRepo: authorRepo,
		BookRepo:   bookRepo,
		Runner:     runner,
	})
	genreService := service.NewGenreService(service.GenreServiceConfig{
		GenreRepo: genreRepo,
		BookRepo:  bookRepo,
		Runner:    runner,
	})
	bookService := service.NewBookService(service.BookServiceConfig{
		BookRepo:         bookRepo,
		AuthorRepo:       authorRepo,
		GenreRepo:        genreRepo,
		BookInstanceRepo: bookInstanceRepo,
		Runner:           runner,
	})
	bookInstanceService := service.NewBookInstanceService(service.BookInstanceServiceConfig{
		BookInstanceRepo: bookInstanceRepo,
		BookRepo:         bookRepo,
		Runner:           runner,
		Now:              time.Now,
	})

	// Initialize handlers
	resp := handler.NewResponder(renderer, logger)
	mux := handler.Routes(handler.RoutesConfig{
		Index:  handler.NewIndexHandler(indexService, resp),
		Health: handler.NewHealthHandler(db),
		Catalog: []*handler.CatalogHandler{
			handler.NewCatalogHandler("author", authorService, resp),
			handler.NewCatalogHandler("genre", genreService, resp),
			handler.NewCatalogHandler("book", bookService, resp),
			handler.NewCatalogHandler("bookinstance", bookInstanceService, resp),
		},
	})

	errorPage := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp.WriteError(w, r, model.NewInternalError(""))
	})

	// Apply global middleware
	return middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger, errorPage),
		middleware.Compress,
	), nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notebook/config"
	"notebook/handler"
	"notebook/repository"
	"notebook/repository/memory"
	"notebook/services"
	"notebook/usecase"
	"notebook/utils"

	"github.com/gin-gonic/gin"
)

type stores struct {
	accounts usecase.AccountStore
	notes    usecase.NoteStore
	feedback usecase.FeedbackStore
	health   map[string]handler.Pinger
	close    func(context.Context) error
}

func openStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*stores, error) {
	if cfg.Store == config.StoreMemory {
		logger.Warn("using in-memory store, data is lost on restart")
		return &stores{
			accounts: memory.NewAccountStore(),
			notes:    memory.NewNoteStore(),
			feedback: memory.NewFeedbackStore(),
			health:   map[string]handler.Pinger{},
			close:    func(context.Context) error { return nil },
		}, nil
	}

	client, err := repository.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.Database.DatabaseName)
	if err := repository.SetupIndexes(ctx, db, cfg.Database); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("creating indexes: %w", err)
	}
	logger.Info("connected to MongoDB", "database", cfg.Database.DatabaseName)

	timeout := cfg.Database.OperationTimeout
	return &stores{
		accounts: repository.NewUsersRepo(db, cfg.Database.UsersCollection, timeout),
		notes:    repository.NewNotesRepo(db, cfg.Database.NotesCollection, timeout),
		feedback: repository.NewFeedbackRepo(db, cfg.Database.FeedbackCollection, timeout),
		health:   map[string]handler.Pinger{"mongo": repository.MongoPinger{Client: client}},
		close:    client.Disconnect,
	}, nil
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := utils.NewLogger(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)
	gin.SetMode(cfg.Server.GinMode)
	utils.InitValidator()

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.close(closeCtx); err != nil {
			logger.Error("closing store", "error", err)
		}
	}()

	tokens, err := services.NewTokenManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.Issuer)
	if err != nil {
		return err
	}

	accounts := &usecase.AccountService{
		Accounts: st.accounts,
		Tokens:   tokens,
		Hasher:   services.DefaultPasswordHasher(),
		Logger:   logger,
	}

	if cfg.Redis.URL != "" {
		cache, err := services.NewRedisTokenVersionCache(ctx, cfg.Redis.URL, cfg.Redis.CacheTTL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer cache.Close()
		accounts.Versions = cache
		st.health["redis"] = cache
		logger.Info("token version cache enabled")
	}

	router := handler.NewRouter(handler.RouterConfig{
		Accounts:       accounts,
		Notes:          &usecase.NotesService{Notes: st.notes, Logger: logger},
		Feedback:       &usecase.FeedbackService{Feedback: st.feedback, Accounts: st.accounts},
		HealthChecks:   st.health,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr, "store", cfg.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server shutdown complete")
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

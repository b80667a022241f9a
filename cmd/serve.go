package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/aihub/internal/api"
	"github.com/example/aihub/internal/database"
	"github.com/example/aihub/internal/scheduler"
	"github.com/example/aihub/internal/telegram"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	gin.SetMode(cfg.GinMode)

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	router := api.NewRouter(api.Deps{
		DB:          a.db,
		Progress:    a.progress,
		Quiz:        a.quiz,
		Content:     a.content,
		Quizzes:     database.NewQuizRepository(a.db),
		Prompts:     database.NewArticleRepository(a.db, database.PromptTable),
		BaseContent: database.NewArticleRepository(a.db, database.BaseContentTable),
		Terms:       a.terms,
		Importer:    a.importer,
		Metrics:     a.metrics,
		Logger:      logger,
		CORSOrigins: cfg.CORSAllowOrigins,
		Version:     Version,
	})

	if cfg.DigestEnabled() {
		notifier, err := telegram.NewNotifier(cfg.TelegramBotToken, cfg.TelegramChannelID)
		if err != nil {
			return err
		}
		sched := scheduler.New(a.content, notifier, scheduler.Options{
			Hour:     cfg.DigestHour,
			Location: cfg.Location,
			Logger:   logger,
			Recorder: a.metrics,
		})
		if err := sched.Start(); err != nil {
			return err
		}
		defer sched.Stop()
	} else {
		logger.Info("telegram digest disabled")
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", "addr", cfg.HTTPAddr, "db_type", cfg.DBType, "version", Version)
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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

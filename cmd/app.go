package cmd

import (
	"fmt"
	"log/slog"

	"github.com/example/aihub/internal/config"
	"github.com/example/aihub/internal/content"
	"github.com/example/aihub/internal/database"
	"github.com/example/aihub/internal/excel"
	"github.com/example/aihub/internal/metrics"
	"github.com/example/aihub/internal/progress"
	"github.com/example/aihub/internal/quizgen"
	"github.com/jmoiron/sqlx"
)

// app is the wired set of services shared by the commands.
type app struct {
	db       *sqlx.DB
	metrics  *metrics.Metrics
	content  *content.Service
	progress *progress.Service
	quiz     *quizgen.Service
	terms    *database.TermRepository
	importer *excel.Importer
}

func newApp(cfg *config.Config, logger *slog.Logger) (*app, error) {
	db, err := database.Connect(cfg.DBType, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	terms := database.NewTermRepository(db)
	lessons, err := content.NewService(database.NewAIInfoRepository(db), terms, cfg.ContentCacheSize, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create content service: %w", err)
	}
	prog := progress.NewService(database.NewProgressRepository(db), progress.Options{
		Location: cfg.Location,
		Logger:   logger,
		Recorder: m,
	})

	return &app{
		db:       db,
		metrics:  m,
		content:  lessons,
		progress: prog,
		quiz:     quizgen.NewService(quizgen.NewGenerator(nil), lessons, prog),
		terms:    terms,
		importer: excel.NewImporter(lessons, excel.DefaultImportConfig()),
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

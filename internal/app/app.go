package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/lib/pq"

	"github.com/Nerikoutchala/glassdoor-analysis/internal/config"
	"github.com/Nerikoutchala/glassdoor-analysis/internal/domain"
	"github.com/Nerikoutchala/glassdoor-analysis/internal/infrastructure/console"
	"github.com/Nerikoutchala/glassdoor-analysis/internal/infrastructure/dataset"
	"github.com/Nerikoutchala/glassdoor-analysis/internal/infrastructure/render"
	"github.com/Nerikoutchala/glassdoor-analysis/internal/infrastructure/storage"
	"github.com/Nerikoutchala/glassdoor-analysis/internal/logging"
	"github.com/Nerikoutchala/glassdoor-analysis/internal/ports"
	"github.com/Nerikoutchala/glassdoor-analysis/internal/tfidf"
	"github.com/Nerikoutchala/glassdoor-analysis/internal/topics"
	"github.com/Nerikoutchala/glassdoor-analysis/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
	db       *sql.DB
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	registry := dataset.NewRegistry()
	registry.Register(dataset.NewParquetReader())
	registry.Register(dataset.NewCSVReader())

	source := dataset.NewFileSource(registry, cfg.Data, baseLogger.With("component", "dataset"))

	var captions ports.CaptionProvider
	if len(cfg.Captions) > 0 {
		captions = console.NewStaticProvider(cfg.Captions)
	} else {
		captions = console.NewPrompter(os.Stdin, os.Stdout)
	}

	renderer, err := render.NewWordCloudRenderer(cfg.Images, baseLogger.With("component", "render"))
	if err != nil {
		return nil, fmt.Errorf("configure renderer: %w", err)
	}

	var db *sql.DB
	var repository ports.SummaryRepository
	if cfg.Database.DSN != "" {
		db, err = sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open summary database: %w", err)
		}
		repository = storage.NewPostgresRepository(db)
	}

	stopWords := tfidf.DefaultStopWords()
	stopWords = append(stopWords, cfg.Model.ExtraStopWords...)

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:     source,
		Captions:   captions,
		Renderer:   renderer,
		Repository: repository,
		Logger:     baseLogger.With("component", "pipeline"),
		Out:        os.Stdout,
		Model: topics.Config{
			MaxFeatures: cfg.Model.MaxFeatures,
			MaxDF:       cfg.Model.MaxDF,
			MinDF:       cfg.Model.MinDF,
			Alpha:       cfg.Model.Alpha,
			L1Ratio:     cfg.Model.L1Ratio,
			Seed:        cfg.Model.Seed,
			Threshold:   cfg.Model.MembershipThreshold,
			StopWords:   stopWords,
		},
		TopWords: cfg.Model.TopWords,
	})

	return &Application{cfg: cfg, pipeline: pipeline, db: db}, nil
}

// Run executes the fixed batch: every configured subcorpus job in order.
// The first failure aborts the whole run.
func (a *Application) Run(ctx context.Context) error {
	defer a.close()

	for _, job := range a.cfg.Jobs {
		err := a.pipeline.Run(ctx, usecase.Job{
			Subcorpus: domain.Subcorpus(job.Subcorpus),
			Topics:    job.Topics,
		})
		if err != nil {
			return fmt.Errorf("subcorpus %s: %w", job.Subcorpus, err)
		}
	}
	return nil
}

func (a *Application) close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/scry-study/internal/config"
	"github.com/phrazzld/scry-study/internal/deck"
	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/domain/srs"
	"github.com/phrazzld/scry-study/internal/events"
	"github.com/phrazzld/scry-study/internal/ingest"
	"github.com/phrazzld/scry-study/internal/schedule"
	"github.com/phrazzld/scry-study/internal/study"
)

// application holds the dependencies shared by the command loop.
type application struct {
	config *config.Config
	logger *slog.Logger

	decks   *deck.Store
	rejects []*domain.ValidationError

	srsService   srs.Service
	eventEmitter events.EventEmitter
	engine       *study.Engine
}

// newApplication loads the configured decks and wires the study engine.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	rows, err := ingest.Read(cfg.Study.DecksPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load decks: %w", err)
	}

	store, rejects := deck.BuildDecks(rows)
	for _, r := range rejects {
		logger.WarnContext(ctx, "skipped invalid row",
			slog.Int("row", r.Row),
			slog.String("field", r.Field),
			slog.String("reason", r.Reason))
	}
	logger.InfoContext(ctx, "decks loaded",
		slog.Int("decks", store.Len()),
		slog.Int("rows", len(rows)),
		slog.Int("rejected", len(rejects)))

	kind, err := schedule.ParseKind(cfg.Study.Policy)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduling policy: %w", err)
	}

	seed := cfg.Study.Seed
	if seed == 0 && kind == schedule.KindRandom {
		seed = uint64(time.Now().UnixNano())
		logger.InfoContext(ctx, "random policy seeded from clock", slog.Uint64("seed", seed))
	}

	srsService := srs.NewServiceWithParams(srs.NewParams(srsParams(cfg.SRS)))

	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(events.LogHandler(logger))

	engine := study.New(store,
		study.WithPolicy(kind),
		study.WithPolicyOptions(schedule.Options{SRS: srsService, Seed: seed}),
		study.WithLogger(logger),
		study.WithEmitter(emitter),
	)

	return &application{
		config:       cfg,
		logger:       logger,
		decks:        store,
		rejects:      rejects,
		srsService:   srsService,
		eventEmitter: emitter,
		engine:       engine,
	}, nil
}

func srsParams(cfg config.SRSConfig) srs.ParamsConfig {
	return srs.ParamsConfig{
		MinEaseFactor:                 cfg.MinEaseFactor,
		MaxEaseFactor:                 cfg.MaxEaseFactor,
		InitialEaseFactor:             cfg.InitialEaseFactor,
		CorrectEaseFactorAdjustment:   cfg.CorrectAdjustment,
		IncorrectEaseFactorAdjustment: cfg.IncorrectAdjustment,
		IncorrectInterval:             cfg.IncorrectInterval,
		GraduationInterval:            cfg.GraduationInterval,
	}
}

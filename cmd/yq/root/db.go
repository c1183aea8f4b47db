package root

import (
	"context"
	"database/sql"

	"yuquest/internal/config"
	"yuquest/internal/engine"
	"yuquest/internal/storage"
)

func openDB(ctx context.Context, cfg *config.Config) (*sql.DB, func(), error) {
	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

func openService(ctx context.Context) (*engine.Service, func(), error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	db, cleanup, err := openDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	svc := engine.NewService(db,
		engine.WithLogger(logger),
		engine.WithRules(cfg.Rules()),
		engine.WithAdjacency(cfg.Adjacency),
		engine.WithEventRingSize(cfg.EventRingSize),
	)
	return svc, cleanup, nil
}

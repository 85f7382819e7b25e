package main

import (
	"context"
	"fmt"
	"io"

	"github.com/SanteonNL/pokedex/cmd/pokedex/catalog"
	"github.com/SanteonNL/pokedex/cmd/pokedex/config"
	"github.com/SanteonNL/pokedex/cmd/pokedex/datasource"
	"github.com/SanteonNL/pokedex/cmd/pokedex/output"
	"github.com/rs/zerolog"
)

// app holds what both commands need: configuration, logger, data source and catalog.
type app struct {
	cfg       config.Config
	log       zerolog.Logger
	source    datasource.Source
	catalog   *catalog.Catalog
	logCloser io.Closer
}

func setup(ctx context.Context, console io.Writer) (*app, error) {
	cfg, warnings, err := config.Load(rootArgs.envFile)
	if err != nil {
		return nil, err
	}

	log, logCloser, err := output.NewLogger(cfg.Log, console)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	for _, w := range warnings {
		log.Warn().Msg(w)
	}

	src, err := datasource.New(ctx, cfg.Source, log)
	if err != nil {
		logCloser.Close()
		return nil, fmt.Errorf("failed to create data source: %w", err)
	}
	log.Debug().Str("source", string(cfg.Source.Kind)).Msg("Data source ready")

	return &app{
		cfg:       cfg,
		log:       log,
		source:    src,
		catalog:   catalog.New(log),
		logCloser: logCloser,
	}, nil
}

func (a *app) Close() {
	if c, ok := a.source.(io.Closer); ok {
		if err := c.Close(); err != nil {
			a.log.Warn().Err(err).Msg("Failed to close data source")
		}
	}
	a.logCloser.Close()
}

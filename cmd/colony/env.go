package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/napolitain/colony-sim/internal/config"
	"github.com/napolitain/colony-sim/internal/engine"
	"github.com/napolitain/colony-sim/internal/loader"
	"github.com/napolitain/colony-sim/internal/models"
	"github.com/napolitain/colony-sim/internal/resolver"
)

// env is everything a command needs to evaluate snapshots
type env struct {
	cfg     config.Config
	logger  *slog.Logger
	catalog *models.Catalog
	steps   []models.TutorialStep
	proc    *engine.Processor
}

func loadEnv(stderr io.Writer) (*env, error) {
	cfg := config.Default()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if quiet {
		cfg.LogLevel = "error"
	}

	if stderr == nil {
		stderr = os.Stderr
	}
	logger := cfg.NewLogger(stderr)

	catalog, steps, err := loader.LoadCatalog(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	proc := engine.NewProcessor(resolver.New(catalog),
		engine.WithRules(cfg.Rules()),
		engine.WithLogger(logger),
	)
	return &env{cfg: cfg, logger: logger, catalog: catalog, steps: steps, proc: proc}, nil
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"

	"github.com/napolitain/colony-sim/internal/config"
	"github.com/napolitain/colony-sim/internal/engine"
	"github.com/napolitain/colony-sim/internal/loader"
	"github.com/napolitain/colony-sim/internal/resolver"
	"github.com/napolitain/colony-sim/internal/server"
)

var (
	port       = flag.Int("port", 50051, "The server port")
	dataDir    = flag.String("data", "", "Path to data directory (overrides config)")
	configFile = flag.String("config", "", "Path to YAML config file")
)

// newGRPCServer loads the catalog and registers the tick service
func newGRPCServer(cfg config.Config, logger *slog.Logger) (*grpc.Server, error) {
	catalog, steps, err := loader.LoadCatalog(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	logger.Info("catalog loaded",
		"buildings", len(catalog.Buildings), "units", len(catalog.Units),
		"techs", len(catalog.Techs), "tutorialSteps", len(steps))

	proc := engine.NewProcessor(resolver.New(catalog),
		engine.WithRules(cfg.Rules()),
		engine.WithLogger(logger),
	)

	s := grpc.NewServer()
	server.Register(s, server.NewService(proc, catalog, steps, server.WithLogger(logger)))
	return s, nil
}

func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	return cfg, nil
}

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := cfg.NewLogger(os.Stderr)

	s, err := newGRPCServer(cfg, logger)
	if err != nil {
		logger.Error("failed to start", "err", err)
		os.Exit(1)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", *port))
	if err != nil {
		logger.Error("failed to listen", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		s.GracefulStop()
	}()

	logger.Info("gRPC server listening", "port", *port)
	if err := s.Serve(lis); err != nil {
		logger.Error("failed to serve", "err", err)
		os.Exit(1)
	}
}

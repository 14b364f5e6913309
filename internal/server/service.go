// Package server exposes the tick processor and progression recalculator over gRPC.
package server

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/napolitain/colony-sim/internal/clock"
	"github.com/napolitain/colony-sim/internal/converter"
	"github.com/napolitain/colony-sim/internal/engine"
	"github.com/napolitain/colony-sim/internal/loader"
	"github.com/napolitain/colony-sim/internal/models"
)

// Option customises the tick service.
type Option func(*Service)

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock sets the clock used when a request carries no timestamp.
func WithClock(clk clock.Clock) Option {
	return func(s *Service) {
		if clk != nil {
			s.clk = clk
		}
	}
}

// Service implements TickServiceServer. It holds no game state: every call
// evaluates the snapshot it is given.
type Service struct {
	proc    *engine.Processor
	catalog *models.Catalog
	steps   []models.TutorialStep
	clk     clock.Clock
	logger  *slog.Logger
}

// NewService wires the processor and static definitions into the transport.
func NewService(proc *engine.Processor, catalog *models.Catalog, steps []models.TutorialStep, opts ...Option) *Service {
	s := &Service{
		proc:    proc,
		catalog: catalog,
		steps:   steps,
		clk:     clock.RealClock{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Tick runs one tick over the snapshot in req and returns the patch and logs.
func (s *Service) Tick(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if s == nil || s.proc == nil {
		return nil, status.Error(codes.Unavailable, "tick service unavailable")
	}
	snap, err := s.snapshot(req)
	if err != nil {
		return nil, err
	}
	now := snap.Now
	if now == 0 {
		now = s.clk.Now().UnixMilli()
	}

	result, err := s.proc.Process(snap.State, now, snap.ActiveWar)
	if err != nil {
		s.logger.Warn("tick rejected", "now", now, "err", err)
		return nil, status.Errorf(codes.Internal, "tick: %v", err)
	}

	out, err := converter.TickResultToStruct(result)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode result: %v", err)
	}
	s.logger.Debug("tick served", "now", now, "logs", len(result.Logs))
	return out, nil
}

// Recalculate returns empire points and tutorial readiness for the snapshot in req.
func (s *Service) Recalculate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if s == nil || s.proc == nil {
		return nil, status.Error(codes.Unavailable, "tick service unavailable")
	}
	snap, err := s.snapshot(req)
	if err != nil {
		return nil, err
	}

	prog := engine.Recalculate(snap.State, s.catalog, s.steps, s.proc.Rules())
	out, err := converter.ProgressionToStruct(prog)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode progression: %v", err)
	}
	return out, nil
}

func (s *Service) snapshot(req *structpb.Struct) (*loader.Snapshot, error) {
	snap, err := converter.StructToSnapshot(req)
	if err != nil {
		if errors.Is(err, loader.ErrInvalidSnapshot) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		return nil, status.Errorf(codes.Internal, "decode snapshot: %v", err)
	}
	return snap, nil
}

var _ TickServiceServer = (*Service)(nil)

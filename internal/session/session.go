// Package session owns a live game state and drives it with the tick processor.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/napolitain/colony-sim/internal/clock"
	"github.com/napolitain/colony-sim/internal/engine"
	"github.com/napolitain/colony-sim/internal/models"
)

// DefaultMaxLogEntries bounds the log journal
const DefaultMaxLogEntries = 200

// ErrInvalidInterval is returned by Run for a non-positive tick interval
var ErrInvalidInterval = errors.New("tick interval must be positive")

// Option configures a Session
type Option func(*Session)

// WithLogger sets the session logger. A nil logger keeps slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxLogEntries sets the journal size. Values below 1 keep the default.
func WithMaxLogEntries(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxLogs = n
		}
	}
}

// WithWar sets the war passed to every tick
func WithWar(war *models.War) Option {
	return func(s *Session) {
		s.war = war
	}
}

// Session serialises ticks over one game state. Patches are merged only when
// a tick succeeds.
type Session struct {
	mu      sync.Mutex
	clk     clock.Clock
	proc    *engine.Processor
	catalog *models.Catalog
	steps   []models.TutorialStep
	logger  *slog.Logger
	maxLogs int

	state   *models.GameState
	war     *models.War
	journal []models.LogEntry
}

// New creates a session over a copy of state
func New(state *models.GameState, proc *engine.Processor, catalog *models.Catalog, steps []models.TutorialStep, clk clock.Clock, opts ...Option) *Session {
	s := &Session{
		clk:     clk,
		proc:    proc,
		catalog: catalog,
		steps:   steps,
		logger:  slog.Default(),
		maxLogs: DefaultMaxLogEntries,
		state:   state.Clone(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tick evaluates the state at the clock's current time. The returned result
// does not share memory with the session state.
func (s *Session) Tick(ctx context.Context) (*engine.TickResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clk.Now().UnixMilli()
	result, err := s.proc.Process(s.state, now, s.war)
	if err != nil {
		return nil, err
	}

	s.state.Apply(result.Updates)
	s.state = s.state.Clone()
	prog := engine.Recalculate(s.state, s.catalog, s.steps, s.proc.Rules())
	s.state.EmpirePoints = prog.EmpirePoints
	s.state.TutorialClaimable = prog.TutorialClaimable

	s.journal = append(s.journal, result.Logs...)
	if over := len(s.journal) - s.maxLogs; over > 0 {
		s.journal = slices.Delete(s.journal, 0, over)
	}

	if len(result.Logs) > 0 {
		s.logger.Info("tick", "now", now, "logs", len(result.Logs), "empirePoints", prog.EmpirePoints)
	}
	return result, nil
}

// CatchUp runs a single tick to settle everything that finished while the
// session was not running
func (s *Session) CatchUp(ctx context.Context) error {
	_, err := s.Tick(ctx)
	return err
}

// Run ticks at a fixed interval until ctx is done. A failed tick is logged
// and retried on the next interval.
func (s *Session) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidInterval, interval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := s.Tick(ctx); err != nil && ctx.Err() == nil {
				s.logger.Error("tick failed", "err", err)
			}
		}
	}
}

// SetWar replaces the war passed to subsequent ticks
func (s *Session) SetWar(war *models.War) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.war = war
}

// Snapshot returns a deep copy of the current state
func (s *Session) Snapshot() *models.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Logs returns the journal, oldest first
func (s *Session) Logs() []models.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.journal)
}

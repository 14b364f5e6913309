package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"reflect"
	"slices"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/napolitain/colony-sim/internal/clock"
	"github.com/napolitain/colony-sim/internal/engine"
	"github.com/napolitain/colony-sim/internal/loader"
	"github.com/napolitain/colony-sim/internal/models"
	"github.com/napolitain/colony-sim/internal/resolver"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	client  *Client
	proc    *engine.Processor
	catalog *models.Catalog
	steps   []models.TutorialStep
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()

	catalog, steps, err := loader.LoadCatalog("../../data")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	proc := engine.NewProcessor(resolver.New(catalog), engine.WithLogger(quietLogger()))

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	Register(srv, NewService(proc, catalog, steps, opts...))
	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	return &fixture{client: NewClient(conn), proc: proc, catalog: catalog, steps: steps}
}

func loadSample(t *testing.T) *loader.Snapshot {
	t.Helper()
	snap, err := loader.LoadSnapshot("../../data/sample_state.json")
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	return snap
}

// normalize compares values through their JSON form
func normalize(t *testing.T, v any) any {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return out
}

// TestTickMatchesDirectProcess verifies that the gRPC Tick endpoint returns
// the same patch and logs as calling the processor directly.
func TestTickMatchesDirectProcess(t *testing.T) {
	f := newFixture(t)
	snap := loadSample(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got, err := f.client.TickState(ctx, snap.State, snap.Now, snap.ActiveWar)
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	want, err := f.proc.Process(snap.State, snap.Now, snap.ActiveWar)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if len(got.Logs) != len(want.Logs) || len(want.Logs) == 0 {
		t.Fatalf("Log count mismatch: gRPC=%d, direct=%d", len(got.Logs), len(want.Logs))
	}
	if !reflect.DeepEqual(normalize(t, got), normalize(t, want)) {
		t.Errorf("Tick result mismatch:\ngRPC=%+v\ndirect=%+v", got, want)
	}
	if got.Updates.TechLevels[models.TechBallistics] != 1 {
		t.Errorf("Expected ballistics researched, got %v", got.Updates.TechLevels)
	}
}

func TestRecalculateMatchesDirect(t *testing.T) {
	f := newFixture(t)
	snap := loadSample(t)

	got, err := f.client.RecalculateState(context.Background(), snap.State)
	if err != nil {
		t.Fatalf("Recalculate failed: %v", err)
	}
	want := engine.Recalculate(snap.State, f.catalog, f.steps, f.proc.Rules())
	if got != want {
		t.Errorf("Progression mismatch: gRPC=%+v, direct=%+v", got, want)
	}
	if got.EmpirePoints <= 0 {
		t.Errorf("Expected positive empire points, got %v", got.EmpirePoints)
	}
}

func TestTickUsesClockWhenNowMissing(t *testing.T) {
	start := time.UnixMilli(5_000)
	f := newFixture(t, WithClock(clock.NewFakeClock(start)))

	state := models.NewGameState()
	state.ActiveConstructions = []models.ConstructionJob{{ID: "c", BuildingType: models.House, Count: 1, EndTime: 5_000}}

	got, err := f.client.TickState(context.Background(), state, 0, nil)
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if got.Updates.Buildings[models.House].Level != 1 {
		t.Errorf("Expected construction due at clock time, got %v", got.Updates.Buildings)
	}
}

func TestTickInvalidArgument(t *testing.T) {
	f := newFixture(t)

	req, err := structpb.NewStruct(map[string]any{"now": 1})
	if err != nil {
		t.Fatalf("NewStruct: %v", err)
	}
	_, err = f.client.Tick(context.Background(), req)
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("Expected InvalidArgument, got %v", err)
	}
}

func TestTickResolverFailureIsInternal(t *testing.T) {
	f := newFixture(t)

	state := models.NewGameState()
	state.ActiveMissions = []models.Mission{{ID: "x", Type: "SPY", Units: models.Units{}, EndTime: 1}}

	_, err := f.client.TickState(context.Background(), state, 10, nil)
	if status.Code(err) != codes.Internal {
		t.Errorf("Expected Internal, got %v", err)
	}
}

func TestNilServiceUnavailable(t *testing.T) {
	var s *Service
	if _, err := s.Tick(context.Background(), &structpb.Struct{}); status.Code(err) != codes.Unavailable {
		t.Errorf("Expected Unavailable, got %v", err)
	}
}

func TestServiceInfo(t *testing.T) {
	srv := grpc.NewServer()
	Register(srv, NewService(nil, nil, nil))

	info, ok := srv.GetServiceInfo()[ServiceName]
	if !ok {
		t.Fatalf("Expected %s registered", ServiceName)
	}
	if info.Metadata != nil {
		t.Errorf("Expected no proto metadata, got %v", info.Metadata)
	}
	var names []string
	for _, m := range info.Methods {
		names = append(names, m.Name)
	}
	slices.Sort(names)
	if want := []string{"Recalculate", "Tick"}; !reflect.DeepEqual(names, want) {
		t.Errorf("Expected methods %v, got %v", want, names)
	}
}

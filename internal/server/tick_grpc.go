package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/napolitain/colony-sim/internal/converter"
	"github.com/napolitain/colony-sim/internal/engine"
	"github.com/napolitain/colony-sim/internal/models"
)

// Service and method names on the wire
const (
	ServiceName           = "colony.v1.TickService"
	TickFullMethod        = "/" + ServiceName + "/Tick"
	RecalculateFullMethod = "/" + ServiceName + "/Recalculate"
)

// TickServiceServer is the server API for the tick service. Requests are
// snapshots shaped as {"now", "activeWar", "state"}.
type TickServiceServer interface {
	Tick(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Recalculate(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// TickServiceDesc describes the tick service for grpc.Server registration.
var TickServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TickServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Tick", Handler: tickHandler},
		{MethodName: "Recalculate", Handler: recalculateHandler},
	},
	Streams: []grpc.StreamDesc{},
}

// Register attaches srv to a gRPC server.
func Register(s grpc.ServiceRegistrar, srv TickServiceServer) {
	s.RegisterService(&TickServiceDesc, srv)
}

func tickHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TickServiceServer).Tick(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: TickFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TickServiceServer).Tick(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func recalculateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TickServiceServer).Recalculate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RecalculateFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TickServiceServer).Recalculate(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// Client calls a remote tick service.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps a client connection
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Tick sends a raw snapshot struct
func (c *Client) Tick(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, TickFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Recalculate sends a raw snapshot struct and returns the progression
func (c *Client) Recalculate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, RecalculateFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// TickState encodes state, calls Tick and decodes the result.
func (c *Client) TickState(ctx context.Context, state *models.GameState, now int64, war *models.War) (*engine.TickResult, error) {
	req, err := converter.SnapshotToStruct(state, now, war)
	if err != nil {
		return nil, err
	}
	resp, err := c.Tick(ctx, req)
	if err != nil {
		return nil, err
	}
	return converter.StructToTickResult(resp)
}

// RecalculateState encodes state, calls Recalculate and decodes the result.
func (c *Client) RecalculateState(ctx context.Context, state *models.GameState) (engine.Progression, error) {
	req, err := converter.SnapshotToStruct(state, 0, nil)
	if err != nil {
		return engine.Progression{}, err
	}
	resp, err := c.Recalculate(ctx, req)
	if err != nil {
		return engine.Progression{}, err
	}
	return converter.StructToProgression(resp)
}

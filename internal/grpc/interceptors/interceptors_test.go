package interceptors

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestRecoveryInterceptor(t *testing.T) {
	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}
	panicking := func(ctx context.Context, req interface{}) (interface{}, error) {
		panic("boom")
	}

	resp, err := RecoveryInterceptor()(context.Background(), nil, info, panicking)
	if resp != nil {
		t.Errorf("Expected nil response, got %v", resp)
	}
	if status.Code(err) != codes.Internal {
		t.Errorf("Expected code %s, got %s", codes.Internal, status.Code(err))
	}
}

func TestLoggingInterceptorPassesThrough(t *testing.T) {
	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}
	want := errors.New("unavailable")

	_, err := LoggingInterceptor()(context.Background(), nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, want
	})
	if !errors.Is(err, want) {
		t.Errorf("Expected handler error unchanged, got %v", err)
	}
}

func TestRequestIDFromMetadata(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("x-request-id", "req-42"))
	if got := requestID(ctx); got != "req-42" {
		t.Errorf("Expected request id 'req-42', got '%s'", got)
	}
	if got := requestID(context.Background()); got == "" {
		t.Error("Expected a generated request id")
	}
}

package server

import (
	"context"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/config"
)

func startServer(t *testing.T, probe ReadinessProbe) healthpb.HealthClient {
	t.Helper()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}

	srv := NewServer(config.Default(), probe)
	go srv.Start(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("Failed to dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return healthpb.NewHealthClient(conn)
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name  string
		probe ReadinessProbe
		want  healthpb.HealthCheckResponse_ServingStatus
	}{
		{"no probe", nil, healthpb.HealthCheckResponse_SERVING},
		{"ready", func(ctx context.Context) bool { return true }, healthpb.HealthCheckResponse_SERVING},
		{"not ready", func(ctx context.Context) bool { return false }, healthpb.HealthCheckResponse_NOT_SERVING},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := startServer(t, tt.probe)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			for _, service := range []string{"", ServiceName} {
				resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: service}, grpc.WaitForReady(true))
				if err != nil {
					t.Fatalf("Check(%q) failed: %v", service, err)
				}
				if resp.Status != tt.want {
					t.Errorf("Check(%q): expected %s, got %s", service, tt.want, resp.Status)
				}
			}
		})
	}
}

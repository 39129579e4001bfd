package server

import (
	"context"
	"net"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/config"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/grpc/interceptors"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/logging"
)

// ServiceName is the health service name reported alongside the overall ("") status
const ServiceName = "jobapp.ResumeService"

// ReadinessProbe reports whether the service can take traffic
type ReadinessProbe func(ctx context.Context) bool

type Server struct {
	cfg      *config.Config
	probe    ReadinessProbe
	interval time.Duration
	logger   logging.Logger

	grpcServer *grpc.Server
	health     *health.Server
	stopOnce   sync.Once
	done       chan struct{}
}

// NewServer builds the gRPC server. A nil probe reports SERVING unconditionally.
func NewServer(cfg *config.Config, probe ReadinessProbe) *Server {
	s := &Server{
		cfg:      cfg,
		probe:    probe,
		interval: 15 * time.Second,
		logger:   logging.GetGlobalLogger().WithField("component", "grpc"),
		health:   health.NewServer(),
		done:     make(chan struct{}),
	}

	s.grpcServer = grpc.NewServer(
		grpc.KeepaliveParams(keepalive.ServerParameters{
			Time:    30 * time.Second,
			Timeout: 5 * time.Second,
		}),
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             5 * time.Second,
			PermitWithoutStream: true,
		}),
		grpc.ChainUnaryInterceptor(
			interceptors.RecoveryInterceptor(),
			interceptors.LoggingInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			interceptors.StreamRecoveryInterceptor(),
			interceptors.StreamLoggingInterceptor(),
		),
	)

	healthpb.RegisterHealthServer(s.grpcServer, s.health)

	// Enable reflection for debugging
	reflection.Register(s.grpcServer)

	return s
}

// Start serves on lis until Stop is called
func (s *Server) Start(lis net.Listener) error {
	s.refresh(context.Background())
	go s.watch()

	s.logger.Info("Starting gRPC server", map[string]interface{}{"address": lis.Addr().String()})
	return s.grpcServer.Serve(lis)
}

func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Shutting down gRPC server...")
		close(s.done)
		s.health.Shutdown()
		s.grpcServer.GracefulStop()
	})
}

func (s *Server) watch() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.refresh(context.Background())
		}
	}
}

// refresh re-runs the readiness probe and publishes the result
func (s *Server) refresh(ctx context.Context) {
	status := healthpb.HealthCheckResponse_SERVING
	if s.probe != nil {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		ok := s.probe(ctx)
		cancel()
		if !ok {
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}

	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

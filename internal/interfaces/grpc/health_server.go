// Package grpc exposes the standard grpc.health.v1 service for orchestrators.
package grpc

import (
	"context"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/turtacn/gdmrisk/pkg/constants"
	"github.com/turtacn/gdmrisk/pkg/logger"
)

// HealthServer serves grpc.health.v1 for the whole process and for the
// gdm-risk-service name.
type HealthServer struct {
	server *grpc.Server
	health *health.Server
	log    logger.Logger
}

// NewHealthServer creates a server reporting SERVING. Artifacts are already
// loaded when it is constructed.
func NewHealthServer(log logger.Logger) *HealthServer {
	chain := NewInterceptorChain(log)
	server := grpc.NewServer(chain.ServerOptions()...)

	hs := health.NewServer()
	healthpb.RegisterHealthServer(server, hs)

	s := &HealthServer{server: server, health: hs, log: log}
	s.SetServing(true)
	return s
}

// SetServing switches every registered service between SERVING and NOT_SERVING.
func (s *HealthServer) SetServing(serving bool) {
	st := healthpb.HealthCheckResponse_SERVING
	if !serving {
		st = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(constants.ServiceName, st)
}

// Serve accepts connections on lis until Stop is called.
func (s *HealthServer) Serve(lis net.Listener) error {
	s.log.Info(context.Background(), "Starting gRPC health server", logger.Fields{"address": lis.Addr().String()})
	return s.server.Serve(lis)
}

// ListenAndServe listens on addr and serves.
func (s *HealthServer) ListenAndServe(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(lis)
}

// Stop drains in-flight RPCs, forcing a stop when ctx expires.
func (s *HealthServer) Stop(ctx context.Context) {
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		s.server.Stop()
	}
	s.log.Info(ctx, "gRPC health server stopped")
}

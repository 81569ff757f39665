package httpapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"civictrack.org/internal/obs"
)

// HealthServer is the standard gRPC health service with its status driven by
// a readiness check. Both the overall ("") and the named service entries are
// kept in step.
type HealthServer struct {
	*health.Server
	readiness readinessChecker
}

// NewHealthServer starts NOT_SERVING until the first Refresh.
func NewHealthServer(r readinessChecker) *HealthServer {
	if r == nil {
		r = StoreReadiness{}
	}
	s := &HealthServer{Server: health.NewServer(), readiness: r}
	s.set(healthpb.HealthCheckResponse_NOT_SERVING)
	return s
}

// Refresh runs the readiness check once and publishes the result. The check
// error is returned so a poller can report it.
func (s *HealthServer) Refresh(ctx context.Context) error {
	if err := s.readiness.Check(ctx); err != nil {
		obs.SetReady(false)
		s.set(healthpb.HealthCheckResponse_NOT_SERVING)
		return err
	}
	obs.SetReady(true)
	s.set(healthpb.HealthCheckResponse_SERVING)
	return nil
}

// Register attaches the health service to srv.
func (s *HealthServer) Register(srv *grpc.Server) {
	healthpb.RegisterHealthServer(srv, s.Server)
}

func (s *HealthServer) set(st healthpb.HealthCheckResponse_ServingStatus) {
	s.SetServingStatus("", st)
	s.SetServingStatus(serviceName, st)
}

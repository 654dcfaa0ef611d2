// Package health реализует стандартный сервис grpc.health.v1.
//
// Статус обслуживания вычисляется теми же проверками зависимостей, что и
// HTTP-эндпоинт /health: пока все зависимости отвечают, сервис SERVING.
package health

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/magabrotheeeer/profile-service/internal/lib/sl"
)

// ServiceName — имя сервиса, под которым публикуется статус.
const ServiceName = "profile.v1.ProfileService"

// Pinger — проверяемая зависимость.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server публикует статус сервиса по результатам проверок.
type Server struct {
	hs       *grpchealth.Server
	checks   map[string]Pinger
	interval time.Duration
	timeout  time.Duration
	log      *slog.Logger
}

// NewServer создает Server. interval — период повторных проверок.
func NewServer(log *slog.Logger, checks map[string]Pinger, interval time.Duration) *Server {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Server{
		hs:       grpchealth.NewServer(),
		checks:   checks,
		interval: interval,
		timeout:  2 * time.Second,
		log:      log.With(slog.String("component", "grpc_health")),
	}
}

// Register регистрирует сервис health на gRPC-сервере.
func (s *Server) Register(gs *grpc.Server) {
	healthpb.RegisterHealthServer(gs, s.hs)
}

// Check выполняет проверки один раз и обновляет статус.
func (s *Server) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	for name, check := range s.checks {
		if err := check.Ping(ctx); err != nil {
			s.log.Warn("dependency is unavailable", slog.String("dependency", name), sl.Err(err))
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}

	s.hs.SetServingStatus("", status)
	s.hs.SetServingStatus(ServiceName, status)
	return status
}

// Watch периодически обновляет статус до отмены ctx, после чего переводит
// сервис в NOT_SERVING.
func (s *Server) Watch(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			s.hs.Shutdown()
			return
		case <-ticker.C:
			s.Check(ctx)
		}
	}
}

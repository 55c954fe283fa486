package grpc

import (
	"fmt"
	"log/slog"
	"net"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/Luyzz22/contract-analyzer-backend/pkg/auth"
	"github.com/Luyzz22/contract-analyzer-backend/pkg/tlsutil"
)

// ServerConfig configures the gRPC server.
type ServerConfig struct {
	// TLS is enabled when both CertFile and KeyFile are set. ClientCAFile
	// additionally requires client certificates.
	CertFile     string
	KeyFile      string
	ClientCAFile string
	Reflection   bool
}

// Server wraps a gRPC server with the contract risk service registered.
type Server struct {
	gs     *grpclib.Server
	health *health.Server
	logger *slog.Logger
}

// NewServer creates and configures the gRPC server.
func NewServer(handler ContractRiskServiceServer, jwtService *auth.JWTService, cfg ServerConfig, logger *slog.Logger) (*Server, error) {
	opts := []grpclib.ServerOption{
		grpclib.ChainUnaryInterceptor(
			auth.UnaryAuthInterceptor(jwtService,
				"/grpc.health.v1.Health/Check",
				"/grpc.health.v1.Health/Watch",
			),
			auth.RequireRoles(map[string][]string{
				MethodAnalyzeContract: auth.WriteRoles,
				MethodAssessContract:  auth.WriteRoles,
				MethodGetAnalysis:     auth.ReadRoles,
				MethodGetDashboard:    auth.ReadRoles,
			}),
		),
	}

	if cfg.CertFile != "" && cfg.KeyFile != "" {
		creds, err := tlsutil.GRPCServerCredentials(cfg.CertFile, cfg.KeyFile, cfg.ClientCAFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load gRPC TLS credentials: %w", err)
		}
		opts = append(opts, grpclib.Creds(creds))
		logger.Info("gRPC TLS enabled", slog.String("cert", cfg.CertFile), slog.Bool("mtls", cfg.ClientCAFile != ""))
	} else {
		logger.Info("gRPC TLS not configured, running without TLS")
	}

	gs := grpclib.NewServer(opts...)

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(gs, healthSrv)
	healthSrv.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	if cfg.Reflection {
		reflection.Register(gs)
	}

	RegisterContractRiskServiceServer(gs, handler)

	return &Server{gs: gs, health: healthSrv, logger: logger}, nil
}

// Serve accepts connections on addr until the server stops.
func (s *Server) Serve(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.ServeListener(lis)
}

// ServeListener accepts connections on lis until the server stops.
func (s *Server) ServeListener(lis net.Listener) error {
	s.logger.Info("gRPC server listening", slog.String("addr", lis.Addr().String()))
	return s.gs.Serve(lis)
}

// GracefulStop marks the service as not serving and drains in-flight calls.
func (s *Server) GracefulStop() {
	s.logger.Info("gRPC server shutting down")
	s.health.Shutdown()
	s.gs.GracefulStop()
}

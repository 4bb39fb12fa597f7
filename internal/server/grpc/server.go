// Package grpc serves the fitcal.v1.FitCal service: account, token and
// backup endpoints over gRPC with the JSON codec from internal/rpc.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/fitcal/internal/logging"
	"github.com/dmitrijs2005/fitcal/internal/rpc"
	"github.com/go-playground/validator/v10"
	"google.golang.org/grpc"
)

type GRPCServer struct {
	rpc.UnimplementedFitCalServer
	address   string
	users     userSvc
	backups   backupSvc
	logger    logging.Logger
	jwtSecret []byte
	validate  *validator.Validate
}

func NewGRPCServer(a string, l logging.Logger, us userSvc, bs backupSvc, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		users:     us,
		backups:   bs,
		jwtSecret: []byte(secretKey),
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *GRPCServer) newGRPCServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		s.loggingInterceptor,
		s.accessTokenInterceptor,
		s.validationInterceptor,
	))
	rpc.RegisterFitCalServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis and stops gracefully when ctx is done.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newGRPCServer()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}
	<-stopped
	return nil
}

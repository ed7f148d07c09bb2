package client

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/travel-journal-sync/internal/logger"
	"github.com/MKhiriev/travel-journal-sync/internal/netmon"
	"github.com/MKhiriev/travel-journal-sync/internal/server"
	"github.com/MKhiriev/travel-journal-sync/internal/service"
)

// App owns the client process lifecycle.
type App struct {
	services *service.Services
	monitor  *netmon.Monitor
	server   server.Server
	logger   *logger.Logger
}

func NewApp(services *service.Services, monitor *netmon.Monitor, srv server.Server, logger *logger.Logger) (*App, error) {
	if services == nil || monitor == nil || srv == nil {
		return nil, errors.New("nil dependency passed to client app")
	}

	return &App{
		services: services,
		monitor:  monitor,
		server:   srv,
		logger:   logger,
	}, nil
}

// Run starts the connectivity monitor, the background sync session, and
// the API server, then blocks until a stop signal arrives and shuts
// everything down in reverse order.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	a.monitor.Start(ctx)
	a.services.Session.Run(ctx)

	go a.server.RunServer()

	<-ctx.Done()

	a.server.Shutdown()
	a.services.Session.Close()
	a.monitor.Close()

	a.logger.Info().Msg("client shut down gracefully")

	return nil
}

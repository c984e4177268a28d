package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roulette_casino/internal/config"
	"roulette_casino/internal/console"
	"roulette_casino/pkg/logger"

	"go.uber.org/multierr"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	ServiceProvider *ServiceProvider
}

func NewApp() *App {
	return &App{}
}

func (s *App) initServiceProvider() {
	s.ServiceProvider = newServiceProvider()
}

func (s *App) Run() (err error) {
	loadErr := config.Load(".env")
	s.initServiceProvider()

	logger.Init(s.ServiceProvider.AppCfg().LogLevel(), os.Stderr)
	if loadErr != nil {
		logger.Warn("Error loading .env file: %v", loadErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	defer func() {
		err = multierr.Append(err, s.shutdown())
	}()

	switch s.ServiceProvider.AppCfg().Mode() {
	case config.AppModeConsole:
		return s.runConsole(ctx)
	default:
		return s.runHTTP(ctx)
	}
}

func (s *App) runConsole(ctx context.Context) error {
	c := console.New(console.Deps{
		Serv: s.ServiceProvider.RouletteService(ctx),
		In:   os.Stdin,
		Out:  os.Stdout,
	})
	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("console closed")
	return nil
}

func (s *App) runHTTP(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.ServiceProvider.HTTPCfg().Address(),
		Handler:           s.ServiceProvider.Router(ctx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server at %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// shutdown дожидается текущего показа и закрывает хранилище
func (s *App) shutdown() error {
	var err error

	if s.ServiceProvider.rouletteServ != nil {
		waitCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		err = multierr.Append(err, s.ServiceProvider.rouletteServ.WaitReveal(waitCtx))
		cancel()
	}

	return multierr.Append(err, s.ServiceProvider.Close())
}

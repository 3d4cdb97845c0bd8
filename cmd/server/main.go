package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/JTonyC/servicenow-entraid-approvals/internal/config"
	"github.com/JTonyC/servicenow-entraid-approvals/server"
	"github.com/JTonyC/servicenow-entraid-approvals/server/authflowrepo"
	"github.com/JTonyC/servicenow-entraid-approvals/server/loginsession"
	"github.com/JTonyC/servicenow-entraid-approvals/servicenow"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

func run() error {
	c := config.New()
	setupLogging(c.GetEnv())

	if err := config.Validate(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	displayAppname(c.GetAppName())

	sessions := loginsession.NewInMemoryRepo()
	authState := authflowrepo.NewInMemoryRepo(c.GetAuthFlowTimeout())
	approvals := servicenow.NewClient(c.GetApprovalsURL(), nil)

	httpServer := &http.Server{
		Addr:    c.GetPort(),
		Handler: server.New(c, sessions, authState, approvals),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", httpServer.Addr).Msg("server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server.ListenAndServe: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-stopSignal():
	}

	return shutdown(httpServer)
}

func stopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(httpServer *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func setupLogging(env string) {
	if env == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}

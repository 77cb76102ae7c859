package main

import (
	"context"
	"errors"
	"fmt"
	stdhttp "net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-login-service/auth"
	"github.com/jrsteele09/go-login-service/hasher"
	"github.com/jrsteele09/go-login-service/internal/config"
	"github.com/jrsteele09/go-login-service/server"
	"github.com/jrsteele09/go-login-service/sessions"
	"github.com/jrsteele09/go-login-service/users/filestore"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatal().Err(err).Msg("Error running server")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	setupLogging(c)
	displayAppname(c.GetAppName())

	srv, err := buildServer(c)
	if err != nil {
		return err
	}

	httpServer := &stdhttp.Server{Addr: c.GetPort(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

func buildServer(c config.Config) (*server.Server, error) {
	store, err := filestore.New(c.GetDataFolder(), c.GetUsersFile())
	if err != nil {
		return nil, fmt.Errorf("filestore.New: %w", err)
	}

	passwords, err := hasher.FromScheme(c.GetHashScheme())
	if err != nil {
		return nil, fmt.Errorf("hasher.FromScheme: %w", err)
	}

	sessionMgr, err := sessions.NewManager(store)
	if err != nil {
		return nil, fmt.Errorf("sessions.NewManager: %w", err)
	}

	authService, err := auth.NewAuthService(store, passwords, sessionMgr)
	if err != nil {
		return nil, fmt.Errorf("auth.NewAuthService: %w", err)
	}

	return server.New(c, authService)
}

func setupLogging(c config.Config) {
	if c.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func listenAndServe(server *stdhttp.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *stdhttp.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}

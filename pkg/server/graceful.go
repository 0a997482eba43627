// Package server wraps net/http with the lifecycle plumbing the strategy
// engine needs: graceful shutdown on SIGINT/SIGTERM, a catalog reload hook
// on SIGHUP, and a debug-logging toggle on SIGUSR1.
package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dd0wney/cluso-strategy/pkg/logging"
)

// ReloadFunc is called when the process receives SIGHUP. The server command
// wires it to a knowledge catalog reload.
type ReloadFunc func() error

// Options adjusts server timeouts and logging. Zero values fall back to
// the defaults below.
type Options struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	Logger          logging.Logger
}

const (
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultIdleTimeout     = 120 * time.Second
	defaultShutdownTimeout = 30 * time.Second
)

// GracefulServer wraps an HTTP server with graceful shutdown and
// signal-driven reload
type GracefulServer struct {
	server          *http.Server
	log             logging.Logger
	shutdownTimeout time.Duration
	shutdownCh      chan struct{}
	shutdownOnce    sync.Once
	reloadFn        ReloadFunc
	reloadMu        sync.RWMutex
}

// NewGracefulServer creates a new graceful HTTP server
func NewGracefulServer(addr string, handler http.Handler, opts Options) *GracefulServer {
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = defaultReadTimeout
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = defaultWriteTimeout
	}
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = defaultIdleTimeout
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewDefaultLogger()
	}

	return &GracefulServer{
		server: &http.Server{
			Addr:           addr,
			Handler:        handler,
			ReadTimeout:    opts.ReadTimeout,
			WriteTimeout:   opts.WriteTimeout,
			IdleTimeout:    opts.IdleTimeout,
			MaxHeaderBytes: 1 << 20,
		},
		log:             opts.Logger,
		shutdownTimeout: opts.ShutdownTimeout,
		shutdownCh:      make(chan struct{}),
	}
}

// Start starts the server and handles shutdown signals. It returns once the
// server has stopped, so callers can run cleanup after it.
func (gs *GracefulServer) Start() error {
	go gs.handleSignals()

	gs.log.Info("Starting HTTP server", logging.String("addr", gs.server.Addr))
	if err := gs.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

// Shutdown initiates a graceful shutdown
func (gs *GracefulServer) Shutdown(timeout time.Duration) error {
	var err error
	gs.shutdownOnce.Do(func() {
		close(gs.shutdownCh)

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		gs.log.Info("Initiating graceful shutdown", logging.Duration("timeout", timeout))

		if shutdownErr := gs.server.Shutdown(ctx); shutdownErr != nil {
			err = shutdownErr
			gs.log.Error("Error during shutdown", logging.Error(shutdownErr))
		} else {
			gs.log.Info("Server shutdown complete")
		}
	})
	return err
}

// handleSignals listens for OS signals and reacts to them
func (gs *GracefulServer) handleSignals() {
	sigCh := make(chan os.Signal, 1)

	signal.Notify(sigCh,
		syscall.SIGINT,  // Ctrl+C
		syscall.SIGTERM, // Termination signal (systemd, docker, k8s)
		syscall.SIGHUP,  // Reload the catalog
		syscall.SIGUSR1, // Toggle debug logging
	)

	for sig := range sigCh {
		switch sig {
		case syscall.SIGINT, syscall.SIGTERM:
			gs.log.Info("Received shutdown signal", logging.String("signal", sig.String()))
			if err := gs.Shutdown(gs.shutdownTimeout); err != nil {
				os.Exit(1)
			}
			// Shutdown unblocks ListenAndServe, so Start returns and main
			// gets to finish normally.
			return

		case syscall.SIGHUP:
			gs.log.Info("Received SIGHUP, reloading")
			if err := gs.Reload(); err != nil {
				gs.log.Error("Reload failed", logging.Error(err))
			}

		case syscall.SIGUSR1:
			gs.toggleDebugLogging()
		}
	}
}

// toggleDebugLogging flips the logger between debug and info level
func (gs *GracefulServer) toggleDebugLogging() {
	if gs.log.GetLevel() == logging.DebugLevel {
		gs.log.SetLevel(logging.InfoLevel)
		gs.log.Info("Debug logging disabled")
	} else {
		gs.log.SetLevel(logging.DebugLevel)
		gs.log.Info("Debug logging enabled")
	}
}

// IsShuttingDown returns true if shutdown has been initiated
func (gs *GracefulServer) IsShuttingDown() bool {
	select {
	case <-gs.shutdownCh:
		return true
	default:
		return false
	}
}

// ShutdownChannel returns a channel that closes when shutdown is initiated
func (gs *GracefulServer) ShutdownChannel() <-chan struct{} {
	return gs.shutdownCh
}

// SetReloadFunc sets the function SIGHUP triggers
func (gs *GracefulServer) SetReloadFunc(fn ReloadFunc) {
	gs.reloadMu.Lock()
	defer gs.reloadMu.Unlock()
	gs.reloadFn = fn
}

// Reload runs the configured reload function
func (gs *GracefulServer) Reload() error {
	gs.reloadMu.RLock()
	reloadFn := gs.reloadFn
	gs.reloadMu.RUnlock()

	if reloadFn == nil {
		gs.log.Warn("Reload requested, but no reload function configured")
		return nil
	}

	if err := reloadFn(); err != nil {
		return err
	}

	gs.log.Info("Reload complete")
	return nil
}

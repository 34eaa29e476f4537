// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Finnovate Africa

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/config"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/fault"
	"github.com/Finnovate-Africa/Finnovate-Africa-backend/internal/logger"
)

// Server is the lifecycle controller. Create it with [NewServer] and drive
// it with [Server.Run].
type Server struct {
	httpServer *httpServer
	connector  Connector
	cfg        config.Server
	logger     *logger.Logger

	state   atomic.Int32
	started atomic.Bool
	crashCh chan error

	addrMu sync.RWMutex
	addr   string

	tasksCtx    context.Context
	cancelTasks context.CancelFunc
}

func NewServer(handler http.Handler, connector Connector, cfg config.Server, log *logger.Logger) *Server {
	log.Info().Msg("creating new server...")
	tasksCtx, cancel := context.WithCancel(context.Background())

	s := &Server{
		httpServer:  newHTTPServer(handler, cfg, log),
		connector:   connector,
		cfg:         cfg,
		logger:      log,
		crashCh:     make(chan error, 1),
		tasksCtx:    tasksCtx,
		cancelTasks: cancel,
	}
	s.state.Store(int32(StateStarting))

	return s
}

// State reports the current lifecycle state.
func (s *Server) State() State {
	return State(s.state.Load())
}

// Addr returns the bound listener address, or "" if nothing is bound.
func (s *Server) Addr() string {
	s.addrMu.RLock()
	defer s.addrMu.RUnlock()
	return s.addr
}

func (s *Server) setAddr(addr string) {
	s.addrMu.Lock()
	s.addr = addr
	s.addrMu.Unlock()
}

func (s *Server) transition(from, to State) bool {
	return s.state.CompareAndSwap(int32(from), int32(to))
}

// Run connects the backends, binds the listener and serves until ctx is
// cancelled (graceful, returns nil) or the server crashes (abrupt, returns
// an error wrapping [ErrCrashed]). Failures before the listener is bound
// return an error wrapping [ErrStartup].
func (s *Server) Run(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	if err := s.connector.Connect(ctx); err != nil {
		s.logger.Err(err).Str("func", "Server.Run").Msg("error connecting storage")
		s.terminate(false)
		return fmt.Errorf("%w: %w", ErrStartup, err)
	}

	ln, err := net.Listen("tcp", s.cfg.Address())
	if err != nil {
		s.logger.Err(err).Str("func", "Server.Run").Msg("error binding listener")
		s.terminate(true)
		return fmt.Errorf("%w: %w", ErrStartup, err)
	}

	s.setAddr(ln.Addr().String())
	if !s.transition(StateStarting, StateListening) {
		_ = ln.Close()
		return s.crashed(<-s.crashCh, nil)
	}

	serveDone := make(chan struct{})
	go func() {
		defer close(serveDone)
		if err := s.httpServer.serve(ln); err != nil {
			s.Crash(fmt.Errorf("http serve: %w", err))
		}
	}()

	select {
	case <-ctx.Done():
		if s.transition(StateListening, StateShuttingDown) {
			return s.shutdown(serveDone)
		}
		return s.crashed(<-s.crashCh, serveDone)
	case err := <-s.crashCh:
		return s.crashed(err, serveDone)
	}
}

// Go runs task under supervision. A task that returns a non-cancellation
// error or panics crashes the server, also while it is draining. The task
// context is cancelled once the server terminates. The storage watchdog
// runs this way.
func (s *Server) Go(task func(ctx context.Context) error) {
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				s.Crash(fault.FromPanic(rec))
			}
		}()

		if err := task(s.tasksCtx); err != nil && !errors.Is(err, context.Canceled) {
			s.Crash(err)
		}
	}()
}

// Crash moves the server to Crashed. Only the first crash counts. A crash
// during a graceful shutdown abandons the drain; calls after termination are
// logged and ignored.
func (s *Server) Crash(err error) {
	if err == nil {
		err = errors.New("crash requested")
	}

	if s.transition(StateListening, StateCrashed) ||
		s.transition(StateStarting, StateCrashed) ||
		s.transition(StateShuttingDown, StateCrashed) {
		s.logger.Error().
			Str("error_type", fmt.Sprintf("%T", err)).
			Err(err).
			Msg("server crashed")
		s.crashCh <- err
		return
	}

	s.logger.Warn().
		Str("state", s.State().String()).
		Err(err).
		Msg("crash ignored")
}

func (s *Server) shutdown(serveDone <-chan struct{}) error {
	s.logger.Info().Msg("shutting down HTTP server")

	ctx := context.Background()
	if s.cfg.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
		defer cancel()
	}

	drained := make(chan error, 1)
	go func() {
		drained <- s.httpServer.shutdown(ctx)
	}()

	select {
	case err := <-drained:
		if err != nil {
			s.logger.Warn().Err(err).Msg("graceful shutdown did not finish, closing connections")
			_ = s.httpServer.close()
		}
	case err := <-s.crashCh:
		return s.crashed(err, serveDone)
	}
	<-serveDone

	if !s.transition(StateShuttingDown, StateTerminated) {
		return s.crashed(<-s.crashCh, serveDone)
	}
	s.terminate(true)
	s.logger.Info().Msg("server shut down gracefully")

	return nil
}

func (s *Server) crashed(cause error, serveDone <-chan struct{}) error {
	if err := s.httpServer.close(); err != nil {
		s.logger.Err(err).Msg("error closing HTTP server")
	}
	if serveDone != nil {
		<-serveDone
	}

	s.terminate(true)
	return fmt.Errorf("%w: %w", ErrCrashed, cause)
}

func (s *Server) terminate(closeConnector bool) {
	s.cancelTasks()
	if closeConnector {
		if err := s.connector.Close(); err != nil {
			s.logger.Err(err).Msg("error closing storage")
		}
	}
	s.setAddr("")
	s.state.Store(int32(StateTerminated))
}

// ExitCode maps the result of [Server.Run] to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

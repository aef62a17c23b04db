// Package emu emulates an AORURA LED: it answers the 2-byte protocol from an
// in-memory state shared by any number of transports.
package emu

import (
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/kelindar/event"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/thiefmaster/aorura/comm"
)

// Server owns the emulated device state.
type Server struct {
	mu    sync.Mutex
	state comm.State

	events *event.Dispatcher
}

type Option func(*Server)

// WithInitialState replaces comm.DefaultState as the starting state. It panics
// if s is not a valid state.
func WithInitialState(s comm.State) Option {
	if !s.Valid() {
		panic(fmt.Sprintf("emu: invalid initial state %v", s))
	}
	return func(srv *Server) {
		srv.state = s
	}
}

// WithEvents publishes a StateChanged on d for every state change.
func WithEvents(d *event.Dispatcher) Option {
	return func(srv *Server) {
		srv.events = d
	}
}

func New(opts ...Option) *Server {
	srv := &Server{state: comm.DefaultState}
	for _, opt := range opts {
		opt(srv)
	}
	return srv
}

func (s *Server) Get() comm.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Set replaces the state. Invalid states are refused with comm.ErrInvalidState.
func (s *Server) Set(state comm.State) error {
	if !state.Valid() {
		return fmt.Errorf("%w: %v", comm.ErrInvalidState, state)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replace(state)
	return nil
}

// Serve answers commands read from rw until the transport fails. Accepted
// commands only change the state when writable is set. The state lock is held
// from decoding a command until its response has been written.
func (s *Server) Serve(rw io.ReadWriter, writable bool) error {
	logger := log.With().Str("transport", uuid.NewString()).Bool("writable", writable).Logger()
	logger.Info().Msg("transport attached")

	transportsActive.Inc()
	defer transportsActive.Dec()

	var cmd comm.Command
	for {
		if _, err := io.ReadFull(rw, cmd[:]); err != nil {
			logger.Info().Err(err).Msg("transport detached")
			return fmt.Errorf("read command: %w", err)
		}
		if err := s.handle(rw, cmd, writable, &logger); err != nil {
			logger.Info().Err(err).Msg("transport detached")
			return err
		}
	}
}

func (s *Server) handle(w io.Writer, cmd comm.Command, writable bool, logger *zerolog.Logger) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cmd == comm.StatusQuery {
		commandsTotal.WithLabelValues(resultStatus).Inc()
		resp := comm.Encode(s.state)
		if err := comm.WriteFull(w, resp[:]); err != nil {
			return fmt.Errorf("write state: %w", err)
		}
		return nil
	}

	resp := comm.Ack
	state, err := comm.Decode(cmd)
	switch {
	case err != nil:
		logger.Warn().Err(err).Msg("rejecting command")
		commandsTotal.WithLabelValues(resultRejected).Inc()
		resp = comm.Nack
	case writable:
		logger.Debug().Stringer("state", state).Msg("accepted command")
		commandsTotal.WithLabelValues(resultAccepted).Inc()
		s.replace(state)
	default:
		logger.Debug().Stringer("state", state).Msg("ignoring command on read-only transport")
		commandsTotal.WithLabelValues(resultIgnored).Inc()
	}

	if err := comm.WriteFull(w, []byte{resp}); err != nil {
		return fmt.Errorf("write acknowledgement: %w", err)
	}
	return nil
}

// replace must be called with s.mu held.
func (s *Server) replace(state comm.State) {
	previous := s.state
	s.state = state
	if previous != state && s.events != nil {
		event.Publish(s.events, StateChanged{Previous: previous, Current: state})
	}
}

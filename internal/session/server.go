// Package session implements the server side of the line-oriented control
// protocol: one TCP connection per client, one command line in, exactly
// one response line out.
package session

import (
	"context"
	"net"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mlevasseur/encore/internal/config"
	"github.com/mlevasseur/encore/internal/player"
	"github.com/mlevasseur/encore/internal/store"
)

// DeviceFactory creates the output device for a new session's player.
type DeviceFactory func() (player.Device, error)

// Server accepts client connections and runs one session per connection.
type Server struct {
	cfg    config.ServerConfig
	store  *store.Store
	device DeviceFactory
	log    zerolog.Logger

	ln net.Listener
	wg sync.WaitGroup

	mu       sync.Mutex
	conns    map[net.Conn]struct{}
	draining bool
}

// NewServer creates a server over the given store and device factory.
func NewServer(cfg config.ServerConfig, st *store.Store, device DeviceFactory, log zerolog.Logger) *Server {
	return &Server{
		cfg:    cfg,
		store:  st,
		device: device,
		log:    log,
		conns:  make(map[net.Conn]struct{}),
	}
}

// ListenAndServe accepts connections until ctx is canceled, then waits
// for running sessions to tear down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()
	s.log.Info().Str("addr", ln.Addr().String()).Msg("listening")

	go func() {
		<-ctx.Done()
		ln.Close()
		// Sessions block on line reads; closing their connections is
		// what unblocks them so wg.Wait can finish.
		s.mu.Lock()
		s.draining = true
		for conn := range s.conns {
			conn.Close()
		}
		s.mu.Unlock()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				s.wg.Wait()
				return nil
			}
			return err
		}
		if !s.track(conn) {
			conn.Close()
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.untrack(conn)
			newSession(s, conn).run()
		}()
	}
}

// track registers a live connection, refusing it when shutdown has begun.
func (s *Server) track(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draining {
		return false
	}
	s.conns[conn] = struct{}{}
	return true
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}

// Addr returns the bound listen address, or nil before ListenAndServe.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Package server owns the listening endpoint and the per-connection workers.
package server

import (
	"fmt"
	"net"
	"sync"

	"ms-teetime/internal/logger"
	"ms-teetime/internal/store"
)

// Server accepts client connections and runs one worker per connection.
// Start and Stop are idempotent and safe to call concurrently.
type Server struct {
	addr  string
	store *store.Store
	log   *logger.Logger

	mu       sync.Mutex
	running  bool
	listener net.Listener
	conns    map[net.Conn]struct{}

	wg sync.WaitGroup
}

func New(addr string, st *store.Store, log *logger.Logger) *Server {
	return &Server{
		addr:  addr,
		store: st,
		log:   log,
		conns: make(map[net.Conn]struct{}),
	}
}

// Start binds the listener and launches the accept loop. It returns
// immediately; a second Start while listening is a no-op.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}
	l, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	s.listener = l
	s.running = true
	s.log.LogServer(fmt.Sprintf("listening on %s", l.Addr()))

	s.wg.Add(1)
	go s.acceptLoop(l)
	return nil
}

func (s *Server) acceptLoop(l net.Listener) {
	defer s.wg.Done()
	for {
		conn, err := l.Accept()
		if err != nil {
			if s.isRunning() {
				s.log.Error("SERVER", fmt.Sprintf("accept failed, shutting down listener: %v", err))
			}
			return
		}
		s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		conn.Close()
		return
	}
	s.conns[conn] = struct{}{}
	s.mu.Unlock()

	s.log.LogConn(conn.RemoteAddr().String(), "connected")

	w := newWorker(conn, s.store, s.log)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.forget(conn)
		w.Run()
	}()
}

func (s *Server) forget(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}

// Stop closes the listener, force-closes every tracked client connection to
// unblock workers stuck on reads, and waits for all of them to finish. Safe
// to call more than once and before Start.
func (s *Server) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.listener.Close()
	for conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()

	s.wg.Wait()
	s.log.LogServer("stopped")
}

// Addr returns the bound listen address, or nil while stopped.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil || !s.running {
		return nil
	}
	return s.listener.Addr()
}

// ConnCount returns the number of live tracked connections.
func (s *Server) ConnCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

func (s *Server) isRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

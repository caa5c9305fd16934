// Package tcp implements the command server: a JSON-over-TCP listener with
// one worker goroutine per connection. Each connection carries at most one
// command, optionally preceded by an auth exchange, and is closed after the
// response is written.
package tcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"gamehub/internal/api/protocol"
	"gamehub/internal/logger"
	"gamehub/internal/security"
)

// Server accepts client connections, runs them through the authentication
// gate and hands decoded commands to the dispatcher.
type Server struct {
	addr        string
	readTimeout time.Duration
	auth        *security.Authenticator // nil disables the gate
	dispatcher  *Dispatcher

	mu       sync.Mutex
	listener net.Listener
	closed   bool
	wg       sync.WaitGroup
}

func NewServer(addr string, readTimeout time.Duration, auth *security.Authenticator, dispatcher *Dispatcher) *Server {
	return &Server{
		addr:        addr,
		readTimeout: readTimeout,
		auth:        auth,
		dispatcher:  dispatcher,
	}
}

// Listen binds the server address. Addr is valid after Listen returns, which
// matters when the configured port is 0.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()
	logger.Info("command server listening", "addr", ln.Addr().String(), "auth_enabled", s.auth != nil)
	return nil
}

// Addr returns the bound listener address.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve runs the accept loop until Shutdown closes the listener. Each
// accepted connection gets its own goroutine; there is no cap on worker
// count and no backpressure.
func (s *Server) Serve() error {
	s.mu.Lock()
	ln := s.listener
	s.mu.Unlock()
	if ln == nil {
		return errors.New("server is not listening; call Listen first")
	}

	for {
		conn, err := ln.Accept()
		if err != nil {
			s.mu.Lock()
			closed := s.closed
			s.mu.Unlock()
			if closed {
				return nil
			}
			logger.Error("accept failed", "error", err)
			return err
		}
		s.wg.Add(1)
		go s.handleConn(conn)
	}
}

// Shutdown stops accepting and waits for in-flight connections to finish or
// the context to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	ln := s.listener
	s.mu.Unlock()
	if ln != nil {
		_ = ln.Close()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	connID := uuid.NewString()
	log := logger.WithConn(connID)

	// A panicking command must not take the server down with it.
	defer func() {
		if r := recover(); r != nil {
			log.Error("connection handler panicked", "panic", r)
			_ = protocol.Write(conn, &protocol.Response{
				Status:  protocol.StatusError,
				Message: "internal server error",
			})
		}
	}()

	if s.readTimeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(s.readTimeout))
	}

	dec := protocol.NewDecoder(conn)

	var req protocol.Request
	if err := dec.Decode(&req); err != nil {
		log.Warn("undecodable request", "remote", conn.RemoteAddr().String(), "error", err)
		_ = protocol.Write(conn, &protocol.Response{
			Status:  protocol.StatusError,
			Message: "invalid request encoding",
		})
		return
	}

	if req.Type == protocol.TypeAuth {
		token, err := s.admit(&req)
		if err != nil {
			log.Warn("authentication rejected", "remote", conn.RemoteAddr().String(), "username", req.Username)
			_ = protocol.Write(conn, &protocol.Response{
				Status:  protocol.StatusError,
				Message: "authentication failed",
			})
			return
		}
		if err := protocol.Write(conn, &protocol.Response{Status: protocol.StatusOK, Token: token}); err != nil {
			return
		}
		req = protocol.Request{}
		if err := dec.Decode(&req); err != nil {
			log.Warn("undecodable request after auth", "error", err)
			_ = protocol.Write(conn, &protocol.Response{
				Status:  protocol.StatusError,
				Message: "invalid request encoding",
			})
			return
		}
	} else if s.auth != nil {
		log.Warn("command without authentication", "remote", conn.RemoteAddr().String())
		_ = protocol.Write(conn, &protocol.Response{
			Status:  protocol.StatusError,
			Message: "authentication required",
		})
		return
	}

	log.Debug("command received", "action", req.Action)
	resp := s.dispatcher.Dispatch(context.Background(), &req)
	if err := protocol.Write(conn, resp); err != nil {
		log.Warn("failed to write response", "error", err)
	}
}

// admit runs the auth exchange: a credential pair or a session token from an
// earlier exchange. With the gate disabled every preamble is admitted, which
// keeps clients that always authenticate working against open servers.
func (s *Server) admit(req *protocol.Request) (string, error) {
	if s.auth == nil {
		return "", nil
	}
	if req.Token != "" {
		_, err := s.auth.ValidateSession(req.Token)
		return req.Token, err
	}
	return s.auth.Authenticate(req.Username, req.Password)
}

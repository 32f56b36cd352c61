package server

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"sync"
	"time"

	"github.com/minaret/minaret/common"
)

// Server manages socket connections from CLI clients. It dispatches
// incoming requests to registered handlers and owns the subscriber pool
// for playback state broadcasts.
type Server struct {
	log      *log.Logger
	pool     *Pool
	ws       *WebServer
	handler  map[common.UpdateType]HandlerFunc
	port     int
	listener net.Listener
	mu       sync.Mutex
}

// NewServer creates a new Server instance with the given logger, web
// server, and TCP fallback port. The server uses a Unix socket as the
// primary transport, falling back to TCP on the specified port if Unix
// socket creation fails. ws may be nil when no web surface is wanted.
func NewServer(l *log.Logger, ws *WebServer, port int) *Server {
	return &Server{
		log:     l,
		pool:    NewPool(l),
		handler: make(map[common.UpdateType]HandlerFunc),
		port:    port,
		ws:      ws,
	}
}

// RegisterHandler associates a handler function with a specific update type
// method. When a request with the given method is received, the
// corresponding handler is invoked.
func (s *Server) RegisterHandler(method common.UpdateType, handler HandlerFunc) {
	s.handler[method] = handler
}

// Pool returns the subscriber pool, so the daemon can broadcast playback
// state transitions to attached clients.
func (s *Server) Pool() *Pool {
	return s.pool
}

// Start begins listening for incoming connections and blocks until the
// context is canceled. The web server runs in a separate goroutine. Each
// accepted connection is handled in its own goroutine.
func (s *Server) Start(ctx context.Context) error {
	if s.ws != nil {
		go func() {
			if err := s.ws.Start(); err != nil {
				s.log.Println("Web server error:", err.Error())
			}
		}()
	}

	l, err := s.createListener()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.listener = l
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.Shutdown()
	}()

	for {
		conn, err := l.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			s.log.Println("Error accepting:", err.Error())
			continue
		}
		go s.handleConnection(conn)
	}
}

// Shutdown gracefully stops the server by closing the listener, stopping
// the web server, and removing the socket file.
func (s *Server) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		if err := s.listener.Close(); err != nil {
			s.log.Printf("Error closing listener: %v", err)
		}
		s.listener = nil
	}

	if s.ws != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.ws.Shutdown(shutdownCtx); err != nil {
			s.log.Printf("Error shutting down web server: %v", err)
		}
	}

	if err := cleanupSocket(); err != nil {
		s.log.Printf("Error removing socket file: %v", err)
	}

	return nil
}

func (s *Server) handleConnection(conn net.Conn) {
	sconn := NewSyncConn(conn)
	defer func() {
		s.pool.Detach(conn)
		conn.Close()
	}()
	for {
		buf, err := sconn.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			s.log.Println("Error reading:", err.Error())
			break
		}
		err = s.handlerWrapper(sconn, buf)
		if err != nil {
			s.log.Println("Error handling:", err.Error())
			break
		}
	}
}

func (s *Server) handlerWrapper(sconn *SyncConn, b []byte) error {
	req, err := ParseRequest(b)
	if err != nil {
		return fmt.Errorf("error parsing request: %s", err.Error())
	}
	rHandler, ok := s.handler[req.Method]
	if !ok {
		err = sconn.Write(CreateError("unknown method: " + string(req.Method)))
		if err != nil {
			return fmt.Errorf("error writing response: %s", err.Error())
		}
		return nil
	}
	utype, msg, err := rHandler(sconn, s.pool, req.Message)
	if err != nil {
		err = sconn.Write(InitError(err))
		if err != nil {
			return fmt.Errorf("error writing response: %s", err.Error())
		}
		return nil
	}
	err = sconn.Write(MakeResult(utype, msg))
	if err != nil {
		return fmt.Errorf("error writing response: %s", err.Error())
	}
	return nil
}

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/spf13/afero"

	"github.com/minaret/minaret/pkg/azanlib"
)

// WebServer exposes the daemon's HTTP surface: the cached azan audio for
// the playback target to stream, a read-only status endpoint, and the
// JSON-RPC bridge with its WebSocket variant.
type WebServer struct {
	port   int
	l      *log.Logger
	sched  *azanlib.Schedule
	rpc    *RPCServer
	media  http.FileSystem
	server *http.Server
	mu     sync.Mutex
}

// NewWebServer assembles the web surface. mediaFs and mediaDir point at
// the audio cache; rpc may be nil to disable the JSON-RPC routes.
func NewWebServer(l *log.Logger, sched *azanlib.Schedule, rpc *RPCServer, mediaFs afero.Fs, mediaDir string, port int) *WebServer {
	return &WebServer{
		port:  port,
		l:     l,
		sched: sched,
		rpc:   rpc,
		media: afero.NewHttpFs(afero.NewBasePathFs(mediaFs, mediaDir)),
	}
}

func (s *WebServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(StatusSnapshot(s.sched)); err != nil {
		s.l.Println("Error writing status:", err.Error())
	}
}

func (s *WebServer) handler() http.Handler {
	r := mux.NewRouter()
	r.PathPrefix("/media/azan/").Handler(
		http.StripPrefix("/media/azan/", http.FileServer(s.media)),
	).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	if s.rpc != nil {
		r.Handle("/jsonrpc", requireToken(s.rpc.secret, s.rpc.bridge)).Methods(http.MethodPost)
		r.Handle("/jsonrpc/ws", requireToken(s.rpc.secret, s.rpc.wsHandler())).Methods(http.MethodGet)
	}
	return r
}

func (s *WebServer) addr() string {
	return fmt.Sprintf(":%d", s.port)
}

func (s *WebServer) Start() error {
	s.mu.Lock()
	s.server = &http.Server{
		Addr:    s.addr(),
		Handler: s.handler(),
	}
	s.mu.Unlock()

	err := s.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the web server.
func (s *WebServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server == nil {
		return nil
	}
	if s.rpc != nil {
		s.rpc.Close()
	}
	return s.server.Shutdown(ctx)
}

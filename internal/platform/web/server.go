// Package web serves Block Blast sessions over WebSocket. Every connection
// owns one session; clients send JSON operations and receive the full state
// plus the events the operation produced.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-blast/internal/blast"
	"github.com/vovakirdan/tui-blast/internal/config"
	"github.com/vovakirdan/tui-blast/internal/games/blockblast"
	"github.com/vovakirdan/tui-blast/internal/storage"
)

// Config holds configuration for the WebSocket server.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// Seed is the dealer seed of the first connection; later connections
	// use Seed+n. Zero seeds from the clock.
	Seed int64

	// Game supplies board sizes, shapes and palette.
	Game config.BlockBlastConfig

	// Store receives one result per finished game. May be nil.
	Store *storage.Store

	// Logger receives connection events. Nil builds a stderr logger.
	Logger *log.Logger
}

// DefaultConfig returns a config listening on :8080 with default game settings.
func DefaultConfig() Config {
	return Config{
		Address: ":8080",
		Game:    config.DefaultBlockBlastConfig(),
	}
}

// Server upgrades HTTP requests to game connections.
type Server struct {
	cfg      Config
	logger   *log.Logger
	upgrader websocket.Upgrader
	conns    atomic.Int64
	http     *http.Server
}

// NewServer creates a server. The game configuration is validated up front so
// a bad catalog fails at startup rather than on the first connection.
func NewServer(cfg Config) (*Server, error) {
	if err := cfg.Game.Validate(); err != nil {
		return nil, fmt.Errorf("web: %w", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "blast-web",
		})
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	s.http = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the routes: /ws for games and /healthz for probes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", s.cfg.Address)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}

// handleWS upgrades the request and runs one game until the client leaves.
// The query parameter mode=mini selects the small board.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	gameID, size := blockblast.IDClassic, s.cfg.Game.Board.GridSize
	if r.URL.Query().Get("mode") == string(blockblast.ModeMini) {
		gameID, size = blockblast.IDMini, s.cfg.Game.Board.MiniGridSize
	}

	n := s.conns.Add(1)
	session, err := s.newSession(size, s.cfg.Seed+n-1)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	start := time.Now()
	s.logger.Info("connection opened", "remote", r.RemoteAddr, "mode", gameID)

	c := newClient(session, gameID, s.cfg.Store, s.logger)
	if err := conn.WriteJSON(c.response(true, nil)); err != nil {
		return
	}
	for {
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("read failed", "remote", r.RemoteAddr, "error", err)
			}
			break
		}
		if err := conn.WriteJSON(c.handle(req)); err != nil {
			s.logger.Debug("write failed", "remote", r.RemoteAddr, "error", err)
			break
		}
	}

	s.logger.Info("connection closed",
		"remote", r.RemoteAddr,
		"score", session.Score(),
		"duration", time.Since(start).Round(time.Second),
	)
}

func (s *Server) newSession(size int, seed int64) (*blast.Session, error) {
	cat, err := s.cfg.Game.Catalog()
	if err != nil {
		return nil, fmt.Errorf("web: %w", err)
	}
	pal, err := s.cfg.Game.Palette()
	if err != nil {
		return nil, fmt.Errorf("web: %w", err)
	}
	session, err := blast.NewSession(blast.Options{
		GridSize: size,
		Seed:     seed,
		Catalog:  cat,
		Palette:  pal,
	})
	if err != nil {
		return nil, fmt.Errorf("web: %w", err)
	}
	return session, nil
}

// Package server exposes the generator over HTTP: a JSON API for the current
// dungeon and the run archive, a websocket feed that pushes each new dungeon
// to connected browsers, and a small built-in explorer page.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/stonelantern/delvegen/internal/config"
	"github.com/stonelantern/delvegen/internal/database"
	"github.com/stonelantern/delvegen/internal/logger"
)

// Server serves the dungeon explorer API.
type Server struct {
	cfg     config.ServerConfig
	manager *Manager
	hub     *Hub
	httpSrv *http.Server
}

// New creates a server around the given manager.
func New(cfg config.ServerConfig, manager *Manager) *Server {
	s := &Server{
		cfg:     cfg,
		manager: manager,
		hub:     newHub(),
	}
	s.httpSrv = &http.Server{
		Addr:    cfg.Addr,
		Handler: s.Handler(),
	}
	return s
}

// Handler builds the route table. Exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/dungeon", s.handleDungeon)
	mux.HandleFunc("/api/regenerate", s.handleRegenerate)
	mux.HandleFunc("/api/runs", s.handleRuns)
	mux.HandleFunc("/api/runs/", s.handleRunByID)
	mux.HandleFunc("/ws", s.handleWebSocketUpgrade)
	return mux
}

// Start listens on the configured address and blocks until shutdown.
func (s *Server) Start() error {
	logger.Info("Explorer listening", "address", s.cfg.Addr)
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and disconnects websocket clients.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.closeAll()
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		// Serve static assets when a directory is configured.
		if s.cfg.StaticDir != "" {
			path := s.cfg.StaticDir + r.URL.Path
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				http.ServeFile(w, r, path)
				return
			}
		}
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

func (s *Server) handleDungeon(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	result := s.manager.Current()
	if result == nil {
		writeError(w, http.StatusNotFound, "no dungeon generated yet")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleRegenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var masterSeed int64
	if raw := r.URL.Query().Get("seed"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "seed must be an integer")
			return
		}
		masterSeed = parsed
	}

	result, err := s.manager.Regenerate(masterSeed)
	if err != nil {
		logger.Error("regeneration failed", "master_seed", masterSeed, "error", err)
		writeError(w, http.StatusInternalServerError, "generation failed")
		return
	}

	s.hub.Broadcast(result)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	archive := s.manager.Archive()
	if archive == nil {
		writeError(w, http.StatusNotFound, "run archive is disabled")
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	runs, err := archive.ListRuns(limit)
	if err != nil {
		logger.Error("failed to list runs", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}
	if runs == nil {
		runs = []database.Run{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleRunByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	archive := s.manager.Archive()
	if archive == nil {
		writeError(w, http.StatusNotFound, "run archive is disabled")
		return
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/api/runs/"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "run id must be an integer")
		return
	}

	run, err := archive.GetRun(id)
	if err != nil {
		if errors.Is(err, database.ErrRunNotFound) {
			writeError(w, http.StatusNotFound, "run not found")
			return
		}
		logger.Error("failed to load run", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load run")
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// handleWebSocketUpgrade upgrades the connection and parks it in the hub.
// Inbound messages are ignored; the read loop only detects disconnects.
func (s *Server) handleWebSocketUpgrade(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			allowed := s.cfg.WebSocket.IsOriginAllowed(origin, r.Host)
			if !allowed {
				logger.Warning("websocket rejected, origin not allowed",
					"origin", origin,
					"host", r.Host,
					"remote_addr", r.RemoteAddr)
			}
			return allowed
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("websocket upgrade failed", "error", err)
		return
	}
	if s.cfg.WebSocket.MaxMessageSize > 0 {
		conn.SetReadLimit(s.cfg.WebSocket.MaxMessageSize)
	}

	clientIP := getRealIP(r)
	logger.Info("websocket client connected", "client_ip", clientIP)
	s.hub.add(conn)

	// Greet new clients with the current dungeon so they don't wait for the
	// next regeneration.
	if result := s.manager.Current(); result != nil {
		if payload, err := json.Marshal(result); err == nil {
			conn.WriteMessage(websocket.TextMessage, payload)
		}
	}

	go func() {
		defer func() {
			s.hub.remove(conn)
			conn.Close()
			logger.Info("websocket client disconnected", "client_ip", clientIP)
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// getRealIP extracts the client IP, honoring reverse proxy headers.
func getRealIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// The first entry is the original client.
		if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
			return ip
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

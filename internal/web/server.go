// Package web hosts the nyxos desktop in a browser. It serves the embedded
// client, a small JSON API and a WebSocket endpoint over which each
// connection drives its own desktop.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"charm.land/log/v2"
	"github.com/gorilla/mux"

	"github.com/Gaurav-Gosain/nyxos/internal/config"
	"github.com/Gaurav-Gosain/nyxos/internal/sysinfo"
	"github.com/Gaurav-Gosain/nyxos/internal/theme"
)

//go:embed static/*
var staticFiles embed.FS

// Package-level logger
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "web",
})

// SetLogLevel sets the logging level for the web package.
func SetLogLevel(level log.Level) {
	logger.SetLevel(level)
}

// Config holds the web server configuration.
type Config struct {
	Host           string   // Host to bind to (default: "localhost")
	Port           string   // Port to listen on (default: "7681")
	ReadOnly       bool     // If true, clients may watch but not mutate
	MaxConnections int      // Maximum concurrent connections (0 = unlimited)
	AllowOrigins   []string // Allowed origins for WebSocket and CORS (empty = all)
	Debug          bool     // Enable debug logging
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Host: "localhost",
		Port: "7681",
	}
}

// ConfigFromUser takes the [server] section of a user config.
func ConfigFromUser(cfg *config.UserConfig) Config {
	return Config{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadOnly:       cfg.Server.ReadOnly,
		MaxConnections: cfg.Server.MaxConnections,
		AllowOrigins:   cfg.Server.AllowedOrigins,
	}
}

// Server represents the web desktop server.
type Server struct {
	config     Config
	user       atomic.Pointer[config.UserConfig]
	router     *mux.Router
	httpServer *http.Server
	sessions   sync.Map // map[string]*Session
	connCount  int32    // atomic counter
}

// NewServer creates a new web desktop server. user seeds every new session;
// a nil user config uses the defaults.
func NewServer(cfg Config, user *config.UserConfig) *Server {
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}
	if cfg.Port == "" {
		cfg.Port = "7681"
	}
	if user == nil {
		user = config.DefaultConfig()
	}

	if cfg.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	logger.Info("creating web server",
		"host", cfg.Host,
		"port", cfg.Port,
		"read_only", cfg.ReadOnly,
		"max_connections", cfg.MaxConnections,
	)

	s := &Server{
		config: cfg,
		router: mux.NewRouter(),
	}
	s.user.Store(user)
	s.setupRoutes()
	return s
}

// SetUserConfig swaps the configuration used for sessions created from now
// on. Existing sessions keep the desktop they started with.
func (s *Server) SetUserConfig(user *config.UserConfig) {
	if user == nil {
		return
	}
	s.user.Store(user)
	logger.Info("configuration reloaded", "apps", len(user.Apps), "theme", user.Appearance.Theme)
}

// UserConfig returns the configuration new sessions are seeded from.
func (s *Server) UserConfig() *config.UserConfig {
	return s.user.Load()
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/apps", s.handleApps).Methods(http.MethodGet)
	api.HandleFunc("/apps/{id}", s.handleApp).Methods(http.MethodGet)
	api.HandleFunc("/system", s.handleSystem).Methods(http.MethodGet)
	api.HandleFunc("/theme", s.handleTheme).Methods(http.MethodGet)

	s.router.HandleFunc("/ws", s.handleWebSocket)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.PathPrefix("/static/").HandlerFunc(s.handleStatic).Methods(http.MethodGet)
	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
}

// Handler returns the HTTP handler with CORS applied.
func (s *Server) Handler() http.Handler {
	return s.enableCORS(s.router)
}

// Start serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	addr := net.JoinHostPort(s.config.Host, s.config.Port)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting",
			"addr", addr,
			"url", fmt.Sprintf("http://%s", addr),
		)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down web server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}

// enableCORS adds CORS headers for the configured origins.
func (s *Server) enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case len(s.config.AllowOrigins) == 0:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && slices.Contains(s.config.AllowOrigins, origin):
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	logger.Debug("serving index", "remote", r.RemoteAddr)

	data, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(data)
}

func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/")
	data, err := staticFiles.ReadFile(path)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	logger.Debug("serving static", "path", path, "size", len(data))

	switch {
	case strings.HasSuffix(path, ".js"):
		w.Header().Set("Content-Type", "application/javascript")
	case strings.HasSuffix(path, ".css"):
		w.Header().Set("Content-Type", "text/css")
	case strings.HasSuffix(path, ".html"):
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	}

	_, _ = w.Write(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) handleApps(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.UserConfig().Apps)
}

func (s *Server) handleApp(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	app, ok := s.UserConfig().FindApp(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": fmt.Sprintf("unknown app %q", id)})
		return
	}
	writeJSON(w, http.StatusOK, app)
}

// SystemResponse is the body of GET /api/system.
type SystemResponse struct {
	System      sysinfo.SystemInfo      `json:"system"`
	Performance sysinfo.PerformanceInfo `json:"performance"`
}

func (s *Server) handleSystem(w http.ResponseWriter, r *http.Request) {
	info, err := sysinfo.Info(r.Context())
	if err != nil {
		logger.Warn("system info unavailable", "err", err)
	}
	perf, err := sysinfo.Performance(r.Context())
	if err != nil {
		logger.Warn("performance info unavailable", "err", err)
	}
	writeJSON(w, http.StatusOK, SystemResponse{System: info, Performance: perf})
}

func (s *Server) handleTheme(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, theme.CurrentPalette())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Debug("response encode failed", "err", err)
	}
}

// checkConnectionLimit returns true if connection is allowed.
func (s *Server) checkConnectionLimit() bool {
	newCount := atomic.AddInt32(&s.connCount, 1)
	if s.config.MaxConnections > 0 && int(newCount) > s.config.MaxConnections {
		atomic.AddInt32(&s.connCount, -1)
		logger.Warn("connection limit reached",
			"current", newCount-1,
			"max", s.config.MaxConnections,
		)
		return false
	}
	logger.Debug("connection accepted", "count", newCount)
	return true
}

func (s *Server) releaseConnection() {
	newCount := atomic.AddInt32(&s.connCount, -1)
	logger.Debug("connection released", "count", newCount)
}

// ConnectionCount returns the number of open WebSocket connections.
func (s *Server) ConnectionCount() int {
	return int(atomic.LoadInt32(&s.connCount))
}

// SessionCount returns the number of live sessions.
func (s *Server) SessionCount() int {
	n := 0
	s.sessions.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

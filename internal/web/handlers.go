package web

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

const (
	readLimit    = 64 * 1024
	pingInterval = 30 * time.Second
	writeTimeout = 5 * time.Second
)

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if !s.checkConnectionLimit() {
		http.Error(w, "Maximum connections reached", http.StatusServiceUnavailable)
		return
	}
	defer s.releaseConnection()

	logger.Info("WebSocket connection attempt",
		"remote", r.RemoteAddr,
		"user_agent", r.UserAgent(),
	)

	opts := &websocket.AcceptOptions{
		OriginPatterns: s.config.AllowOrigins,
	}
	if len(s.config.AllowOrigins) == 0 {
		opts.OriginPatterns = []string{"*"}
	}

	conn, err := websocket.Accept(w, r, opts)
	if err != nil {
		logger.Error("WebSocket accept failed", "err", err, "remote", r.RemoteAddr)
		return
	}
	defer func() { _ = conn.CloseNow() }()
	conn.SetReadLimit(readLimit)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	width := queryFloat(r, "width")
	height := queryFloat(r, "height")

	startTime := time.Now()
	session := s.createSession(ctx, width, height)
	defer func() {
		s.closeSession(session)
		logger.Info("WebSocket session ended",
			"session", session.ID,
			"remote", r.RemoteAddr,
			"duration", time.Since(startTime).Round(time.Second),
		)
	}()

	logger.Info("WebSocket session started",
		"session", session.ID,
		"remote", r.RemoteAddr,
		"read_only", session.ReadOnly,
	)

	if err := writeResponse(ctx, conn, session.Hello()); err != nil {
		logger.Debug("hello write failed", "session", session.ID, "err", err)
		return
	}

	go s.keepAlive(ctx, conn, session)
	s.handleRequests(ctx, conn, session)
}

// handleRequests reads client requests until the connection or session ends.
func (s *Server) handleRequests(ctx context.Context, conn *websocket.Conn, session *Session) {
	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				logger.Debug("client closed connection", "session", session.ID)
			default:
				if !errors.Is(err, context.Canceled) {
					logger.Debug("WebSocket read error", "session", session.ID, "err", err)
				}
			}
			return
		}

		var resp Response
		var req Request
		switch {
		case typ != websocket.MessageText:
			resp = Response{Type: TypeError, Session: session.ID, Error: "expected a text message"}
		case json.Unmarshal(data, &req) != nil:
			resp = Response{Type: TypeError, Session: session.ID, Error: "malformed request"}
		default:
			resp = session.Handle(req)
		}

		if err := writeResponse(ctx, conn, resp); err != nil {
			logger.Debug("WebSocket write error", "session", session.ID, "err", err)
			return
		}
	}
}

// keepAlive pings the client so idle proxies keep the connection open.
func (s *Server) keepAlive(ctx context.Context, conn *websocket.Conn, session *Session) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-session.Done():
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := conn.Ping(pingCtx)
			cancel()
			if err != nil {
				logger.Debug("ping failed", "session", session.ID, "err", err)
				return
			}
		}
	}
}

func writeResponse(ctx context.Context, conn *websocket.Conn, resp Response) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, conn, resp)
}

func queryFloat(r *http.Request, key string) float64 {
	v, err := strconv.ParseFloat(r.URL.Query().Get(key), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

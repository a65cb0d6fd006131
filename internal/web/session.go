package web

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Gaurav-Gosain/nyxos/internal/config"
	"github.com/Gaurav-Gosain/nyxos/internal/desktop"
)

// Session is one browser connection driving its own desktop.
type Session struct {
	ID       string
	ReadOnly bool

	desk       *desktop.Desktop
	viewport   *desktop.MutableViewport
	user       *config.UserConfig
	pending    []desktop.Event
	cancelFunc context.CancelFunc
	ctx        context.Context
	mu         sync.Mutex
	closed     bool
	startTime  time.Time
}

// NewSession creates a session seeded from user. A non-positive or non-finite
// width or height falls back to the configured viewport.
func NewSession(ctx context.Context, user *config.UserConfig, width, height float64, readOnly bool) *Session {
	if user == nil {
		user = config.DefaultConfig()
	}
	if !desktop.PositiveFinite(width) {
		width = user.Desktop.ViewportWidth
	}
	if !desktop.PositiveFinite(height) {
		height = user.Desktop.ViewportHeight
	}

	sessionCtx, cancel := context.WithCancel(ctx)
	s := &Session{
		ID:         uuid.New().String(),
		ReadOnly:   readOnly,
		viewport:   desktop.NewMutableViewport(width, height),
		user:       user,
		cancelFunc: cancel,
		ctx:        sessionCtx,
		startTime:  time.Now(),
	}
	s.desk = desktop.New(user.DesktopOptions(s.viewport))
	s.desk.Subscribe(desktop.LogListener{})
	s.desk.Subscribe(desktop.ListenerFunc(func(ev desktop.Event) {
		s.pending = append(s.pending, ev)
	}))
	return s
}

// Done returns a channel that is closed when the session ends.
func (s *Session) Done() <-chan struct{} {
	return s.ctx.Done()
}

// Snapshot returns the current view state.
func (s *Session) Snapshot() desktop.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.desk.Snapshot()
}

// Hello is the greeting sent when the connection opens.
func (s *Session) Hello() Response {
	snap := s.Snapshot()
	return Response{
		Type:     TypeHello,
		Session:  s.ID,
		ReadOnly: s.ReadOnly,
		State:    &snap,
	}
}

// Handle applies one request and returns the reply. A failed request leaves
// the desktop untouched and yields an error response.
func (s *Session) Handle(req Request) Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = s.pending[:0]
	opened, err := s.apply(req)
	if err != nil {
		logger.Debug("request rejected", "session", s.ID, "op", req.Op, "err", err)
		return Response{Type: TypeError, Op: req.Op, Session: s.ID, Error: err.Error()}
	}

	snap := s.desk.Snapshot()
	resp := Response{
		Type:    TypeState,
		Op:      req.Op,
		Session: s.ID,
		Opened:  opened,
		State:   &snap,
	}
	for _, ev := range s.pending {
		resp.Events = append(resp.Events, EventMessage{
			Kind:     ev.Kind.String(),
			WindowID: ev.WindowID,
			Desktop:  ev.Desktop,
		})
	}
	return resp
}

func (s *Session) apply(req Request) (string, error) {
	if s.ReadOnly && req.Mutates() {
		return "", fmt.Errorf("%s: %w", req.Op, ErrReadOnly)
	}

	switch req.Op {
	case OpState:
		return "", nil
	case OpViewport:
		if !desktop.PositiveFinite(req.Width) || !desktop.PositiveFinite(req.Height) {
			return "", fmt.Errorf("viewport: invalid size %vx%v", req.Width, req.Height)
		}
		s.viewport.Set(req.Width, req.Height)
		return "", nil
	case OpOpen:
		id := s.desk.OpenWindow(req.OpenSpec(s.user))
		if op := s.user.Appearance.DefaultOpacity; op > 0 && op < desktop.MaxOpacity {
			_ = s.desk.SetWindowOpacity(id, op)
		}
		return id, nil
	}

	cmd, err := req.Command(s.user)
	if err != nil {
		return "", err
	}
	if err := s.desk.Apply(cmd); err != nil {
		return "", fmt.Errorf("%s: %w", req.Op, err)
	}
	return "", nil
}

func (s *Server) createSession(ctx context.Context, width, height float64) *Session {
	session := NewSession(ctx, s.UserConfig(), width, height, s.config.ReadOnly)
	s.sessions.Store(session.ID, session)
	logger.Debug("session created", "session", session.ID, "width", width, "height", height)
	return session
}

func (s *Server) closeSession(session *Session) {
	session.mu.Lock()
	if session.closed {
		session.mu.Unlock()
		return
	}
	session.closed = true
	session.mu.Unlock()

	session.cancelFunc()
	s.sessions.Delete(session.ID)

	logger.Debug("session closed",
		"session", session.ID,
		"duration", time.Since(session.startTime).Round(time.Millisecond),
	)
}

// Package desktop implements the nyxos window manager core: the single-writer
// state machine that owns every open window, its geometry, stacking order,
// lifecycle flags, split-screen pairing and virtual desktop assignment.
//
// A Desktop is not safe for concurrent mutation. Callers that share one
// across goroutines must serialize access themselves.
package desktop

import (
	"errors"
	"time"
)

const (
	// BaseZIndex is the first stacking value handed out.
	BaseZIndex int64 = 1000
	// DefaultMaxRecentApps bounds the recent apps list.
	DefaultMaxRecentApps = 10
	// DefaultDesktopCount is the number of virtual desktops a new Desktop starts with.
	DefaultDesktopCount = 1
)

// Errors reported by mutators. A mutator that returns one of these has left
// the state untouched.
var (
	ErrWindowNotFound = errors.New("window not found")
	ErrSelfSplit      = errors.New("cannot split a window with itself")
	ErrLastDesktop    = errors.New("cannot remove the last desktop")
)

// Options configures a new Desktop.
type Options struct {
	Viewport      Viewport         // Queried on every clamp (default: 1280x800 fixed)
	Desktops      int              // Initial virtual desktop count (default: 1)
	MaxRecentApps int              // Recent apps bound (default: 10)
	Clock         func() time.Time // Source for id timestamps (default: time.Now)
}

// Desktop is the window manager state container.
type Desktop struct {
	windows   []*Window          // creation order
	byID      map[string]*Window // lookup index over windows
	focused   string
	nextZ     int64
	instances map[string]int
	recent    []string
	maxRecent int
	split     SplitPair
	current   int
	count     int
	lastStamp int64
	viewport  Viewport
	clock     func() time.Time
	listeners []Listener
}

// New creates an empty Desktop.
func New(opts Options) *Desktop {
	if opts.Viewport == nil {
		opts.Viewport = FixedViewport{Width: 1280, Height: 800}
	}
	if opts.Desktops <= 0 {
		opts.Desktops = DefaultDesktopCount
	}
	if opts.MaxRecentApps <= 0 {
		opts.MaxRecentApps = DefaultMaxRecentApps
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	return &Desktop{
		byID:      make(map[string]*Window),
		nextZ:     BaseZIndex,
		instances: make(map[string]int),
		maxRecent: opts.MaxRecentApps,
		count:     opts.Desktops,
		viewport:  opts.Viewport,
		clock:     opts.Clock,
	}
}

// Clone returns a deep copy of the state. Listeners are not carried over;
// the viewport and clock are shared.
func (d *Desktop) Clone() *Desktop {
	c := &Desktop{
		windows:   make([]*Window, 0, len(d.windows)),
		byID:      make(map[string]*Window, len(d.byID)),
		focused:   d.focused,
		nextZ:     d.nextZ,
		instances: make(map[string]int, len(d.instances)),
		recent:    append([]string(nil), d.recent...),
		maxRecent: d.maxRecent,
		split:     d.split,
		current:   d.current,
		count:     d.count,
		lastStamp: d.lastStamp,
		viewport:  d.viewport,
		clock:     d.clock,
	}
	for _, w := range d.windows {
		wc := w.clone()
		c.windows = append(c.windows, wc)
		c.byID[wc.ID] = wc
	}
	for app, n := range d.instances {
		c.instances[app] = n
	}
	return c
}

// SetViewport replaces the viewport consulted by geometry operations.
func (d *Desktop) SetViewport(vp Viewport) {
	if vp != nil {
		d.viewport = vp
	}
}

// ViewportSize returns the current viewport dimensions.
func (d *Desktop) ViewportSize() Size {
	w, h := viewportSize(d.viewport)
	return Size{Width: w, Height: h}
}

func (d *Desktop) lookup(id string) (*Window, error) {
	w, ok := d.byID[id]
	if !ok {
		return nil, ErrWindowNotFound
	}
	return w, nil
}

// nextStack hands out the next stacking value. The counter only grows, so no
// two windows ever share a value.
func (d *Desktop) nextStack() int64 {
	z := d.nextZ
	d.nextZ++
	return z
}

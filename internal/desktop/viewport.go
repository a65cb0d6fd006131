package desktop

import "sync"

// Viewport reports the current dimensions of the hosting surface. It is read
// at the moment of every clamp; the desktop never caches it.
type Viewport interface {
	Size() (width, height float64)
}

// FixedViewport is a Viewport with constant dimensions.
type FixedViewport struct {
	Width  float64
	Height float64
}

// Size implements Viewport.
func (v FixedViewport) Size() (float64, float64) { return v.Width, v.Height }

// MutableViewport is a Viewport updated from outside, e.g. when a browser
// client reports a resize. Safe for concurrent use.
type MutableViewport struct {
	mu     sync.RWMutex
	width  float64
	height float64
}

// NewMutableViewport creates a viewport with the given initial dimensions.
func NewMutableViewport(width, height float64) *MutableViewport {
	return &MutableViewport{width: width, height: height}
}

// Set replaces the viewport dimensions. Non-positive or non-finite values
// are ignored.
func (v *MutableViewport) Set(width, height float64) {
	if !PositiveFinite(width) || !PositiveFinite(height) {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.width = width
	v.height = height
}

// Size implements Viewport.
func (v *MutableViewport) Size() (float64, float64) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.width, v.height
}

// viewportSize reads vp, reporting unusable dimensions as zero.
func viewportSize(vp Viewport) (float64, float64) {
	if vp == nil {
		return 0, 0
	}
	w, h := vp.Size()
	if !PositiveFinite(w) {
		w = 0
	}
	if !PositiveFinite(h) {
		h = 0
	}
	return w, h
}

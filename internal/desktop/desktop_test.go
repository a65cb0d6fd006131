package desktop

import (
	"encoding/json"
	"errors"
	"math"
	"slices"
	"strings"
	"testing"
	"time"
)

// fixedClock returns the same instant on every call.
func fixedClock() time.Time {
	return time.UnixMilli(1_700_000_000_000)
}

func newTestDesktop(desktops int) *Desktop {
	return New(Options{
		Viewport: FixedViewport{Width: 1280, Height: 800},
		Desktops: desktops,
		Clock:    fixedClock,
	})
}

func mustWindow(t *testing.T, d *Desktop, id string) Window {
	t.Helper()
	w, ok := d.GetWindow(id)
	if !ok {
		t.Fatalf("window %q not found", id)
	}
	return w
}

// =============================================================================
// Lifecycle
// =============================================================================

func TestOpenWindowDefaults(t *testing.T) {
	d := newTestDesktop(1)
	id := d.OpenWindow(WindowSpec{AppID: "chat", Title: "Chat", Component: Component("ChatApp")})

	w := mustWindow(t, d, id)
	if w.AppID != "chat" || w.Title != "Chat" {
		t.Errorf("unexpected identity: %+v", w)
	}
	if w.IsMinimized || w.IsMaximized || w.IsPinned || w.IsFloating {
		t.Errorf("flags should start false: %+v", w)
	}
	if w.Mode != ModeWindowed {
		t.Errorf("Mode = %q, want %q", w.Mode, ModeWindowed)
	}
	if w.Size != (Size{Width: DefaultWidth, Height: DefaultHeight}) {
		t.Errorf("Size = %v, want defaults", w.Size)
	}
	if w.ZIndex != BaseZIndex {
		t.Errorf("first ZIndex = %d, want %d", w.ZIndex, BaseZIndex)
	}
	if w.Opacity != MaxOpacity {
		t.Errorf("Opacity = %v, want %v", w.Opacity, MaxOpacity)
	}
	if w.ComponentName() != "ChatApp" {
		t.Errorf("ComponentName = %q", w.ComponentName())
	}
	if d.FocusedID() != id {
		t.Errorf("opened window should be focused, got %q", d.FocusedID())
	}
}

func TestOpenWindowIDsUniqueWithinSameMillisecond(t *testing.T) {
	d := newTestDesktop(1)
	seen := make(map[string]bool)

	for range 50 {
		id := d.OpenWindow(WindowSpec{AppID: "terminal"})
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
		if !strings.HasPrefix(id, "terminal-") {
			t.Errorf("id %q should start with the app id", id)
		}
	}
	if got := d.InstanceCount("terminal"); got != 50 {
		t.Errorf("InstanceCount = %d, want 50", got)
	}
}

func TestOpenWindowEmptyAppID(t *testing.T) {
	d := newTestDesktop(1)
	id := d.OpenWindow(WindowSpec{})
	if w := mustWindow(t, d, id); w.AppID != "app" {
		t.Errorf("AppID = %q, want %q", w.AppID, "app")
	}
}

func TestOpenWindowRequestedModeAndDesktop(t *testing.T) {
	d := newTestDesktop(3)
	target := 7
	id := d.OpenWindow(WindowSpec{AppID: "video", Mode: ModePIP, Desktop: &target})

	w := mustWindow(t, d, id)
	if w.Mode != ModePIP {
		t.Errorf("Mode = %q, want %q", w.Mode, ModePIP)
	}
	if w.Desktop != 2 {
		t.Errorf("Desktop = %d, want clamped 2", w.Desktop)
	}
}

func TestOpenWindowDefaultsToCurrentDesktop(t *testing.T) {
	d := newTestDesktop(3)
	d.SwitchDesktop(1)

	id := d.OpenWindow(WindowSpec{AppID: "notes"})
	if w := mustWindow(t, d, id); w.Desktop != 1 {
		t.Errorf("Desktop = %d, want current desktop 1", w.Desktop)
	}
}

func TestZIndexStrictlyIncreasingOnOpen(t *testing.T) {
	d := newTestDesktop(1)
	var prev int64 = -1

	for i := range 20 {
		id := d.OpenWindow(WindowSpec{AppID: []string{"a", "b", "c"}[i%3]})
		z := mustWindow(t, d, id).ZIndex
		if z <= prev {
			t.Fatalf("open %d: ZIndex %d not greater than %d", i, z, prev)
		}
		prev = z
	}
}

func TestCloseWindow(t *testing.T) {
	t.Run("focused window drops focus", func(t *testing.T) {
		d := newTestDesktop(1)
		a := d.OpenWindow(WindowSpec{AppID: "a"})
		b := d.OpenWindow(WindowSpec{AppID: "b"})

		if err := d.CloseWindow(b); err != nil {
			t.Fatalf("CloseWindow: %v", err)
		}
		if _, ok := d.GetWindow(b); ok {
			t.Error("closed window still present")
		}
		if d.FocusedID() != "" {
			t.Errorf("focus should be none, got %q", d.FocusedID())
		}
		if _, ok := d.GetWindow(a); !ok {
			t.Error("other window disappeared")
		}
	})

	t.Run("unfocused window keeps focus", func(t *testing.T) {
		d := newTestDesktop(1)
		a := d.OpenWindow(WindowSpec{AppID: "a"})
		b := d.OpenWindow(WindowSpec{AppID: "b"})

		if err := d.CloseWindow(a); err != nil {
			t.Fatalf("CloseWindow: %v", err)
		}
		if d.FocusedID() != b {
			t.Errorf("focus = %q, want %q", d.FocusedID(), b)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		d := newTestDesktop(1)
		d.OpenWindow(WindowSpec{AppID: "a"})
		before := d.Snapshot()

		if err := d.CloseWindow("nope"); !errors.Is(err, ErrWindowNotFound) {
			t.Errorf("err = %v, want ErrWindowNotFound", err)
		}
		after := d.Snapshot()
		if len(after.Windows) != len(before.Windows) {
			t.Error("state changed on unknown id")
		}
	})
}

func TestChatScenario(t *testing.T) {
	d := newTestDesktop(1)
	a := d.OpenWindow(WindowSpec{AppID: "chat"})
	b := d.OpenWindow(WindowSpec{AppID: "chat"})
	zB := mustWindow(t, d, b).ZIndex

	if got := d.InstanceCount("chat"); got != 2 {
		t.Errorf("InstanceCount = %d, want 2", got)
	}
	if got := d.RecentApps(); !slices.Equal(got, []string{"chat"}) {
		t.Errorf("RecentApps = %v, want [chat]", got)
	}
	if got := d.WindowsByApp("chat"); len(got) != 2 || got[0].ID != a || got[1].ID != b {
		t.Errorf("WindowsByApp = %v", got)
	}

	if err := d.CloseWindow(a); err != nil {
		t.Fatal(err)
	}
	if got := d.RecentApps(); !slices.Equal(got, []string{"chat"}) {
		t.Errorf("RecentApps after close = %v, want [chat]", got)
	}
	if got := mustWindow(t, d, b).ZIndex; got != zB {
		t.Errorf("B ZIndex changed from %d to %d", zB, got)
	}
}

func TestRecentAppsOrderAndBound(t *testing.T) {
	d := New(Options{MaxRecentApps: 3, Clock: fixedClock})
	for _, app := range []string{"a", "b", "c", "a", "d"} {
		d.OpenWindow(WindowSpec{AppID: app})
	}

	want := []string{"d", "a", "c"}
	if got := d.RecentApps(); !slices.Equal(got, want) {
		t.Errorf("RecentApps = %v, want %v", got, want)
	}
}

func TestRecentAppsDefaultBound(t *testing.T) {
	d := newTestDesktop(1)
	for i := range 15 {
		d.OpenWindow(WindowSpec{AppID: string(rune('a' + i))})
	}
	if got := len(d.RecentApps()); got != DefaultMaxRecentApps {
		t.Errorf("len(RecentApps) = %d, want %d", got, DefaultMaxRecentApps)
	}
}

func TestTogglesAreInvolutions(t *testing.T) {
	toggles := []struct {
		name string
		fn   func(*Desktop, string) error
		get  func(Window) bool
	}{
		{"minimize", (*Desktop).MinimizeWindow, func(w Window) bool { return w.IsMinimized }},
		{"maximize", (*Desktop).MaximizeWindow, func(w Window) bool { return w.IsMaximized }},
		{"pin", (*Desktop).TogglePin, func(w Window) bool { return w.IsPinned }},
	}

	for _, tt := range toggles {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDesktop(1)
			id := d.OpenWindow(WindowSpec{AppID: "a"})
			orig := mustWindow(t, d, id)

			if err := tt.fn(d, id); err != nil {
				t.Fatal(err)
			}
			if tt.get(mustWindow(t, d, id)) == tt.get(orig) {
				t.Error("first call should flip the flag")
			}
			if err := tt.fn(d, id); err != nil {
				t.Fatal(err)
			}
			after := mustWindow(t, d, id)
			if tt.get(after) != tt.get(orig) {
				t.Error("second call should restore the flag")
			}
			if after.Mode != orig.Mode || after.Position != orig.Position || after.Size != orig.Size {
				t.Errorf("round trip changed the window: %+v -> %+v", orig, after)
			}
		})
	}
}

func TestMaximizeKeepsStoredGeometry(t *testing.T) {
	d := newTestDesktop(1)
	id := d.OpenWindow(WindowSpec{AppID: "a", Position: Point{X: 30, Y: 40}, Size: Size{Width: 500, Height: 400}})

	if err := d.MaximizeWindow(id); err != nil {
		t.Fatal(err)
	}
	w := mustWindow(t, d, id)
	if w.Mode != ModeFullscreen {
		t.Errorf("Mode = %q, want fullscreen", w.Mode)
	}
	if w.Position != (Point{X: 30, Y: 40}) || w.Size != (Size{Width: 500, Height: 400}) {
		t.Errorf("stored geometry changed: %v %v", w.Position, w.Size)
	}
	if f := w.Frame(d.viewport); f != (Rect{Width: 1280, Height: 800}) {
		t.Errorf("Frame = %v, want full viewport", f)
	}
	if w.DisplayState() != StateMaximized {
		t.Errorf("DisplayState = %v", w.DisplayState())
	}

	if err := d.MaximizeWindow(id); err != nil {
		t.Fatal(err)
	}
	w = mustWindow(t, d, id)
	if f := w.Frame(d.viewport); f != (Rect{X: 30, Y: 40, Width: 500, Height: 400}) {
		t.Errorf("restored Frame = %v", f)
	}
}

func TestDisplayStateMinimizedWins(t *testing.T) {
	w := Window{IsMinimized: true, IsMaximized: true}
	if w.DisplayState() != StateMinimized {
		t.Errorf("DisplayState = %v, want minimized", w.DisplayState())
	}
}

func TestMakeFloating(t *testing.T) {
	d := newTestDesktop(1)
	id := d.OpenWindow(WindowSpec{AppID: "a"})

	if err := d.MakeFloating(id, true); err != nil {
		t.Fatal(err)
	}
	if w := mustWindow(t, d, id); !w.IsFloating || w.Mode != ModeFloating {
		t.Errorf("after float: %+v", w)
	}
	if err := d.MakeFloating(id, false); err != nil {
		t.Fatal(err)
	}
	if w := mustWindow(t, d, id); w.IsFloating || w.Mode != ModeWindowed {
		t.Errorf("after unfloat: %+v", w)
	}
}

func TestSetWindowOpacityClamps(t *testing.T) {
	d := newTestDesktop(1)
	id := d.OpenWindow(WindowSpec{AppID: "a"})

	_ = d.SetWindowOpacity(id, 0.01)
	if got := mustWindow(t, d, id).Opacity; got != MinOpacity {
		t.Errorf("Opacity = %v, want %v", got, MinOpacity)
	}
	_ = d.SetWindowOpacity(id, 3)
	if got := mustWindow(t, d, id).Opacity; got != MaxOpacity {
		t.Errorf("Opacity = %v, want %v", got, MaxOpacity)
	}
}

func TestMutatorsOnUnknownID(t *testing.T) {
	mutators := map[string]func(*Desktop) error{
		"close":    func(d *Desktop) error { return d.CloseWindow("x") },
		"focus":    func(d *Desktop) error { return d.FocusWindow("x") },
		"minimize": func(d *Desktop) error { return d.MinimizeWindow("x") },
		"maximize": func(d *Desktop) error { return d.MaximizeWindow("x") },
		"pin":      func(d *Desktop) error { return d.TogglePin("x") },
		"float":    func(d *Desktop) error { return d.MakeFloating("x", true) },
		"opacity":  func(d *Desktop) error { return d.SetWindowOpacity("x", 0.5) },
		"move":     func(d *Desktop) error { return d.MoveWindow("x", Point{}) },
		"resize":   func(d *Desktop) error { return d.ResizeWindow("x", Size{}) },
		"drag":     func(d *Desktop) error { return d.DragWindow("x", Point{}) },
		"split":    func(d *Desktop) error { return d.SetSplitScreen("x", "") },
		"desktop":  func(d *Desktop) error { return d.MoveWindowToDesktop("x", 0) },
	}

	for name, fn := range mutators {
		t.Run(name, func(t *testing.T) {
			d := newTestDesktop(1)
			id := d.OpenWindow(WindowSpec{AppID: "a"})
			before, _ := json.Marshal(d.Snapshot())

			if err := fn(d); !errors.Is(err, ErrWindowNotFound) {
				t.Errorf("err = %v, want ErrWindowNotFound", err)
			}
			after, _ := json.Marshal(d.Snapshot())
			if string(before) != string(after) {
				t.Errorf("state changed:\n%s\n%s", before, after)
			}
			if d.FocusedID() != id {
				t.Error("focus changed")
			}
		})
	}
}

// =============================================================================
// Geometry mutators
// =============================================================================

func TestOpenWindowInvalidSizeDefaults(t *testing.T) {
	tests := []struct {
		name string
		size Size
	}{
		{"Negative", Size{Width: -50, Height: -10}},
		{"NaN", Size{Width: math.NaN(), Height: math.NaN()}},
		{"Inf", Size{Width: math.Inf(1), Height: math.Inf(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDesktop(1)
			id := d.OpenWindow(WindowSpec{AppID: "a", Size: tt.size})
			if got := mustWindow(t, d, id).Size; got != (Size{Width: DefaultWidth, Height: DefaultHeight}) {
				t.Errorf("Size = %v, want defaults", got)
			}
		})
	}
}

func TestMoveAndResize(t *testing.T) {
	d := newTestDesktop(1)
	id := d.OpenWindow(WindowSpec{AppID: "a"})

	_ = d.MoveWindow(id, Point{X: -20, Y: 55})
	if got := mustWindow(t, d, id).Position; got != (Point{X: 0, Y: 55}) {
		t.Errorf("Position = %v", got)
	}

	_ = d.ResizeWindow(id, Size{Width: 50, Height: 900})
	if got := mustWindow(t, d, id).Size; got != (Size{Width: MinWidth, Height: 900}) {
		t.Errorf("Size = %v", got)
	}
}

func TestDragReadsLiveViewport(t *testing.T) {
	vp := NewMutableViewport(1280, 800)
	d := New(Options{Viewport: vp, Clock: fixedClock})
	id := d.OpenWindow(WindowSpec{AppID: "a", Position: Point{X: 100, Y: 100}})

	_ = d.DragWindow(id, Point{X: 5000, Y: 5000})
	if got := mustWindow(t, d, id).Position; got != (Point{X: 1180, Y: 760}) {
		t.Errorf("Position = %v, want (1180,760)", got)
	}

	vp.Set(640, 480)
	_ = d.DragWindow(id, Point{X: 0, Y: 0})
	if got := mustWindow(t, d, id).Position; got != (Point{X: 540, Y: 440}) {
		t.Errorf("Position after resize = %v, want (540,440)", got)
	}
}

func TestNonFiniteViewport(t *testing.T) {
	vp := NewMutableViewport(1280, 800)
	vp.Set(math.NaN(), math.Inf(1))
	if w, h := vp.Size(); w != 1280 || h != 800 {
		t.Errorf("Set(NaN, Inf) changed viewport to %vx%v", w, h)
	}
	vp.Set(-1, 600)
	if w, h := vp.Size(); w != 1280 || h != 800 {
		t.Errorf("Set(-1, 600) changed viewport to %vx%v", w, h)
	}

	d := New(Options{Viewport: FixedViewport{Width: math.NaN(), Height: math.Inf(1)}, Clock: fixedClock})
	id := d.OpenWindow(WindowSpec{AppID: "a"})
	_ = d.MaximizeWindow(id)

	if got := d.ViewportSize(); got != (Size{}) {
		t.Errorf("ViewportSize = %v, want zero", got)
	}
	if _, err := json.Marshal(d.Snapshot()); err != nil {
		t.Errorf("snapshot does not encode: %v", err)
	}
}

// =============================================================================
// Focus
// =============================================================================

func TestFocusRaisesAboveAll(t *testing.T) {
	d := newTestDesktop(1)
	ids := []string{
		d.OpenWindow(WindowSpec{AppID: "a"}),
		d.OpenWindow(WindowSpec{AppID: "b"}),
		d.OpenWindow(WindowSpec{AppID: "c"}),
	}

	for _, target := range []string{ids[0], ids[2], ids[1], ids[0]} {
		if err := d.FocusWindow(target); err != nil {
			t.Fatal(err)
		}
		z := mustWindow(t, d, target).ZIndex
		for _, w := range d.Windows() {
			if w.ID != target && w.ZIndex >= z {
				t.Errorf("%s z=%d not below focused %s z=%d", w.ID, w.ZIndex, target, z)
			}
		}
		if d.FocusedID() != target {
			t.Errorf("FocusedID = %q, want %q", d.FocusedID(), target)
		}
	}
}

func TestCycleFocus(t *testing.T) {
	d := newTestDesktop(1)
	a := d.OpenWindow(WindowSpec{AppID: "a"})
	b := d.OpenWindow(WindowSpec{AppID: "b"})
	c := d.OpenWindow(WindowSpec{AppID: "c"})
	_ = d.MinimizeWindow(b)

	steps := []struct {
		forward bool
		want    string
	}{
		{true, a}, // c wraps to a, b is minimized
		{true, c},
		{false, a},
		{false, c},
	}
	for i, s := range steps {
		got, ok := d.CycleFocus(s.forward)
		if !ok || got != s.want {
			t.Errorf("step %d: got %q,%v want %q", i, got, ok, s.want)
		}
	}

	empty := newTestDesktop(1)
	if _, ok := empty.CycleFocus(true); ok {
		t.Error("CycleFocus on empty desktop should report false")
	}
}

func TestWindowAtReturnsTopmost(t *testing.T) {
	d := newTestDesktop(1)
	bottom := d.OpenWindow(WindowSpec{AppID: "a", Position: Point{X: 0, Y: 0}})
	top := d.OpenWindow(WindowSpec{AppID: "b", Position: Point{X: 100, Y: 100}})

	if w, ok := d.WindowAt(Point{X: 150, Y: 150}); !ok || w.ID != top {
		t.Errorf("WindowAt overlap = %q, want %q", w.ID, top)
	}
	_ = d.FocusWindow(bottom)
	if w, ok := d.WindowAt(Point{X: 150, Y: 150}); !ok || w.ID != bottom {
		t.Errorf("WindowAt after focus = %q, want %q", w.ID, bottom)
	}
	if _, ok := d.WindowAt(Point{X: 1200, Y: 700}); ok {
		t.Error("WindowAt on empty area should miss")
	}
}

// =============================================================================
// Split screen
// =============================================================================

func TestSetSplitScreen(t *testing.T) {
	d := newTestDesktop(1)
	a := d.OpenWindow(WindowSpec{AppID: "a"})
	b := d.OpenWindow(WindowSpec{AppID: "b"})

	if err := d.SetSplitScreen(a, b); err != nil {
		t.Fatal(err)
	}

	wa, wb := mustWindow(t, d, a), mustWindow(t, d, b)
	if wa.Mode != ModeSplitLeft || wb.Mode != ModeSplitRight {
		t.Errorf("modes = %q/%q", wa.Mode, wb.Mode)
	}
	if wa.SplitPartner != b || wb.SplitPartner != a {
		t.Errorf("partners = %q/%q", wa.SplitPartner, wb.SplitPartner)
	}
	if wa.Size != (Size{Width: 640, Height: 680}) || wb.Position != (Point{X: 640, Y: 0}) {
		t.Errorf("geometry = %v %v / %v %v", wa.Position, wa.Size, wb.Position, wb.Size)
	}
	if d.Split() != (SplitPair{Left: a, Right: b}) {
		t.Errorf("Split = %+v", d.Split())
	}
}

func TestSetSplitScreenSinglePane(t *testing.T) {
	d := newTestDesktop(1)
	a := d.OpenWindow(WindowSpec{AppID: "a"})

	if err := d.SetSplitScreen(a, ""); err != nil {
		t.Fatal(err)
	}
	w := mustWindow(t, d, a)
	if w.Mode != ModeSplitLeft || w.SplitPartner != "" {
		t.Errorf("single pane: %+v", w)
	}
	if d.Split() != (SplitPair{Left: a}) {
		t.Errorf("Split = %+v", d.Split())
	}
}

func TestClearSplitScreen(t *testing.T) {
	d := newTestDesktop(1)
	a := d.OpenWindow(WindowSpec{AppID: "a"})
	b := d.OpenWindow(WindowSpec{AppID: "b"})
	_ = d.SetSplitScreen(a, b)

	var unsplits int
	d.Subscribe(ListenerFunc(func(ev Event) {
		if ev.Kind == EventUnsplit {
			unsplits++
		}
	}))

	d.ClearSplitScreen()
	for _, id := range []string{a, b} {
		if w := mustWindow(t, d, id); w.Mode != ModeWindowed || w.SplitPartner != "" {
			t.Errorf("%s after clear: %+v", id, w)
		}
	}
	if !d.Split().Empty() {
		t.Errorf("Split = %+v", d.Split())
	}

	// Clearing with no pairing is silent.
	d.ClearSplitScreen()
	if unsplits != 1 {
		t.Errorf("unsplit events = %d, want 1", unsplits)
	}
}

func TestSplitMaximizedWindow(t *testing.T) {
	d := newTestDesktop(1)
	a := d.OpenWindow(WindowSpec{AppID: "a"})
	b := d.OpenWindow(WindowSpec{AppID: "b"})
	_ = d.MaximizeWindow(b)
	_ = d.MakeFloating(a, true)

	if err := d.SetSplitScreen(a, b); err != nil {
		t.Fatal(err)
	}

	wb := mustWindow(t, d, b)
	if wb.IsMaximized || wb.Mode != ModeSplitRight {
		t.Fatalf("b = maximized %v mode %q", wb.IsMaximized, wb.Mode)
	}
	_, right := SplitFrames(1280, 800)
	if got := wb.Frame(d.viewport); got != right {
		t.Errorf("b frame = %+v, want %+v", got, right)
	}
	if wa := mustWindow(t, d, a); wa.IsFloating || wa.Mode != ModeSplitLeft {
		t.Errorf("a = floating %v mode %q", wa.IsFloating, wa.Mode)
	}

	_ = d.CloseWindow(a)
	wb = mustWindow(t, d, b)
	if wb.Mode != ModeWindowed || wb.IsMaximized {
		t.Errorf("after partner closed: mode %q maximized %v", wb.Mode, wb.IsMaximized)
	}
}

func TestSetSplitScreenRejects(t *testing.T) {
	d := newTestDesktop(1)
	a := d.OpenWindow(WindowSpec{AppID: "a"})

	if err := d.SetSplitScreen(a, a); !errors.Is(err, ErrSelfSplit) {
		t.Errorf("self split err = %v", err)
	}
	if err := d.SetSplitScreen(a, "ghost"); !errors.Is(err, ErrWindowNotFound) {
		t.Errorf("unknown right err = %v", err)
	}
	if w := mustWindow(t, d, a); w.Mode != ModeWindowed {
		t.Errorf("rejected split changed mode to %q", w.Mode)
	}
	if !d.Split().Empty() {
		t.Error("rejected split recorded a pairing")
	}
}

func TestResplitReleasesPreviousPair(t *testing.T) {
	d := newTestDesktop(1)
	a := d.OpenWindow(WindowSpec{AppID: "a"})
	b := d.OpenWindow(WindowSpec{AppID: "b"})
	c := d.OpenWindow(WindowSpec{AppID: "c"})

	_ = d.SetSplitScreen(a, b)
	_ = d.SetSplitScreen(c, a)

	if w := mustWindow(t, d, b); w.Mode != ModeWindowed || w.SplitPartner != "" {
		t.Errorf("previous partner not released: %+v", w)
	}
	if wa := mustWindow(t, d, a); wa.Mode != ModeSplitRight || wa.SplitPartner != c {
		t.Errorf("a = %+v", wa)
	}
}

func TestCloseSplitPartner(t *testing.T) {
	d := newTestDesktop(1)
	a := d.OpenWindow(WindowSpec{AppID: "a"})
	b := d.OpenWindow(WindowSpec{AppID: "b"})
	_ = d.SetSplitScreen(a, b)

	if err := d.CloseWindow(a); err != nil {
		t.Fatal(err)
	}

	wb := mustWindow(t, d, b)
	if wb.Mode != ModeWindowed {
		t.Errorf("B mode = %q, want windowed", wb.Mode)
	}
	if wb.SplitPartner != "" {
		t.Errorf("B partner = %q, want empty", wb.SplitPartner)
	}
	if !d.Split().Empty() {
		t.Errorf("Split = %+v, want empty", d.Split())
	}
}

func TestUnmaximizeSplitWindowReturnsToSplit(t *testing.T) {
	d := newTestDesktop(1)
	a := d.OpenWindow(WindowSpec{AppID: "a"})
	b := d.OpenWindow(WindowSpec{AppID: "b"})
	_ = d.SetSplitScreen(a, b)

	_ = d.MaximizeWindow(b)
	_ = d.MaximizeWindow(b)
	if w := mustWindow(t, d, b); w.Mode != ModeSplitRight {
		t.Errorf("Mode = %q, want split-right", w.Mode)
	}
}

// =============================================================================
// Virtual desktops
// =============================================================================

func TestVisibilityPredicate(t *testing.T) {
	d := newTestDesktop(2)
	one := 1
	onSecond := d.OpenWindow(WindowSpec{AppID: "a", Desktop: &one})
	pinned := d.OpenWindow(WindowSpec{AppID: "b", Desktop: &one})
	_ = d.TogglePin(pinned)

	visibleIDs := func() []string {
		var ids []string
		for _, w := range d.VisibleWindows() {
			ids = append(ids, w.ID)
		}
		return ids
	}

	d.SwitchDesktop(0)
	if ids := visibleIDs(); slices.Contains(ids, onSecond) || !slices.Contains(ids, pinned) {
		t.Errorf("desktop 0 visible = %v", ids)
	}

	d.SwitchDesktop(1)
	if ids := visibleIDs(); !slices.Contains(ids, onSecond) || !slices.Contains(ids, pinned) {
		t.Errorf("desktop 1 visible = %v", ids)
	}
}

func TestVisibleWindowsPaintOrder(t *testing.T) {
	d := newTestDesktop(1)
	a := d.OpenWindow(WindowSpec{AppID: "a"})
	b := d.OpenWindow(WindowSpec{AppID: "b"})
	c := d.OpenWindow(WindowSpec{AppID: "c"})
	_ = d.FocusWindow(a)
	_ = d.MinimizeWindow(b)

	var got []string
	for _, w := range d.VisibleWindows() {
		got = append(got, w.ID)
	}
	if want := []string{c, a}; !slices.Equal(got, want) {
		t.Errorf("paint order = %v, want %v", got, want)
	}
}

func TestSwitchDesktopClamps(t *testing.T) {
	d := newTestDesktop(3)
	tests := []struct {
		in, want int
	}{
		{1, 1},
		{-4, 0},
		{99, 2},
	}
	for _, tt := range tests {
		d.SwitchDesktop(tt.in)
		if got := d.CurrentDesktop(); got != tt.want {
			t.Errorf("SwitchDesktop(%d) -> %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDesktopCycling(t *testing.T) {
	d := newTestDesktop(3)

	d.PrevDesktop()
	if d.CurrentDesktop() != 2 {
		t.Errorf("PrevDesktop from 0 = %d, want 2", d.CurrentDesktop())
	}
	d.NextDesktop()
	if d.CurrentDesktop() != 0 {
		t.Errorf("NextDesktop from 2 = %d, want 0", d.CurrentDesktop())
	}
}

func TestAddDesktopSwitchesToNew(t *testing.T) {
	d := newTestDesktop(1)
	d.AddDesktop()
	if d.DesktopCount() != 2 || d.CurrentDesktop() != 1 {
		t.Errorf("count=%d current=%d", d.DesktopCount(), d.CurrentDesktop())
	}
}

func TestRemoveLastDesktop(t *testing.T) {
	d := newTestDesktop(1)
	if err := d.RemoveCurrentDesktop(); !errors.Is(err, ErrLastDesktop) {
		t.Errorf("err = %v, want ErrLastDesktop", err)
	}
	if d.DesktopCount() != 1 {
		t.Errorf("DesktopCount = %d, want 1", d.DesktopCount())
	}
}

func TestRemoveCurrentDesktopFoldsWindows(t *testing.T) {
	d := newTestDesktop(3)
	zero, one, two := 0, 1, 2
	w0 := d.OpenWindow(WindowSpec{AppID: "a", Desktop: &zero})
	w1 := d.OpenWindow(WindowSpec{AppID: "b", Desktop: &one})
	w2 := d.OpenWindow(WindowSpec{AppID: "c", Desktop: &two})

	d.SwitchDesktop(1)
	if err := d.RemoveCurrentDesktop(); err != nil {
		t.Fatal(err)
	}

	if d.DesktopCount() != 2 || d.CurrentDesktop() != 1 {
		t.Fatalf("count=%d current=%d", d.DesktopCount(), d.CurrentDesktop())
	}
	for id, want := range map[string]int{w0: 0, w1: 1, w2: 1} {
		if got := mustWindow(t, d, id).Desktop; got != want {
			t.Errorf("%s desktop = %d, want %d", id, got, want)
		}
	}

	d.SwitchDesktop(1)
	if err := d.RemoveCurrentDesktop(); err != nil {
		t.Fatal(err)
	}
	if d.CurrentDesktop() != 0 {
		t.Errorf("current = %d, want 0 after removing the last index", d.CurrentDesktop())
	}
	for _, w := range d.Windows() {
		if w.Desktop != 0 {
			t.Errorf("%s desktop = %d, want 0", w.ID, w.Desktop)
		}
	}
}

func TestMoveWindowToDesktop(t *testing.T) {
	d := newTestDesktop(2)
	id := d.OpenWindow(WindowSpec{AppID: "a"})

	_ = d.MoveWindowToDesktop(id, 5)
	if got := mustWindow(t, d, id).Desktop; got != 1 {
		t.Errorf("Desktop = %d, want 1", got)
	}
	if len(d.VisibleWindows()) != 0 {
		t.Error("window moved away should not be visible on desktop 0")
	}
}

// =============================================================================
// Events, reducer, snapshot
// =============================================================================

func TestListenerReceivesEvents(t *testing.T) {
	d := newTestDesktop(1)
	var kinds []EventKind
	d.Subscribe(ListenerFunc(func(ev Event) { kinds = append(kinds, ev.Kind) }))

	id := d.OpenWindow(WindowSpec{AppID: "a"})
	_ = d.MinimizeWindow(id)
	_ = d.MinimizeWindow("missing")
	_ = d.CloseWindow(id)

	want := []EventKind{EventOpened, EventMinimized, EventClosed}
	if !slices.Equal(kinds, want) {
		t.Errorf("events = %v, want %v", kinds, want)
	}
}

func TestReduceIsPure(t *testing.T) {
	state := newTestDesktop(1)
	id := state.OpenWindow(WindowSpec{AppID: "a"})

	next, err := Reduce(state, MoveCmd{ID: id, Position: Point{X: 500, Y: 300}})
	if err != nil {
		t.Fatal(err)
	}
	if got := mustWindow(t, state, id).Position; got != (Point{X: 0, Y: 0}) {
		t.Errorf("input state mutated: %v", got)
	}
	if got := mustWindow(t, next, id).Position; got != (Point{X: 500, Y: 300}) {
		t.Errorf("next Position = %v", got)
	}

	same, err := Reduce(next, CloseCmd{ID: "missing"})
	if !errors.Is(err, ErrWindowNotFound) || same != next {
		t.Errorf("failed reduce should return input state, err=%v", err)
	}
}

func TestApplyCommands(t *testing.T) {
	d := newTestDesktop(1)
	cmds := []Command{
		OpenCmd{Spec: WindowSpec{AppID: "a"}},
		AddDesktopCmd{},
		OpenCmd{Spec: WindowSpec{AppID: "b"}},
		PrevDesktopCmd{},
		NextDesktopCmd{},
		SwitchDesktopCmd{Index: 0},
	}
	for _, c := range cmds {
		if err := d.Apply(c); err != nil {
			t.Fatalf("Apply(%T): %v", c, err)
		}
	}

	if d.DesktopCount() != 2 || d.CurrentDesktop() != 0 {
		t.Errorf("count=%d current=%d", d.DesktopCount(), d.CurrentDesktop())
	}
	if got := len(d.VisibleWindows()); got != 1 {
		t.Errorf("visible on desktop 0 = %d, want 1", got)
	}
	if err := d.Apply(RemoveDesktopCmd{}); err != nil {
		t.Fatal(err)
	}
	if got := len(d.VisibleWindows()); got != 2 {
		t.Errorf("visible after fold = %d, want 2", got)
	}
}

func TestSnapshotJSON(t *testing.T) {
	d := newTestDesktop(1)
	id := d.OpenWindow(WindowSpec{AppID: "chat", Component: Component("Chat"), Props: Props{"room": "general"}})
	_ = d.MaximizeWindow(id)

	data, err := json.Marshal(d.Snapshot())
	if err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		Windows []struct {
			ID        string         `json:"id"`
			AppID     string         `json:"appId"`
			Component string         `json:"component"`
			State     string         `json:"state"`
			Focused   bool           `json:"focused"`
			Frame     Rect           `json:"frame"`
			Props     map[string]any `json:"props"`
		} `json:"windows"`
		Focused      string   `json:"focused"`
		DesktopCount int      `json:"desktopCount"`
		RecentApps   []string `json:"recentApps"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}

	if len(decoded.Windows) != 1 {
		t.Fatalf("windows = %d", len(decoded.Windows))
	}
	w := decoded.Windows[0]
	if w.ID != id || w.AppID != "chat" || w.Component != "Chat" || w.State != "maximized" || !w.Focused {
		t.Errorf("window = %+v", w)
	}
	if w.Frame != (Rect{Width: 1280, Height: 800}) {
		t.Errorf("frame = %v", w.Frame)
	}
	if w.Props["room"] != "general" {
		t.Errorf("props = %v", w.Props)
	}
	if decoded.Focused != id || decoded.DesktopCount != 1 || !slices.Equal(decoded.RecentApps, []string{"chat"}) {
		t.Errorf("snapshot = %s", data)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
		ok   bool
	}{
		{"", ModeWindowed, true},
		{"split-left", ModeSplitLeft, true},
		{"pip", ModePIP, true},
		{"tabbed", ModeWindowed, false},
	}
	for _, tt := range tests {
		got, ok := ParseMode(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseMode(%q) = %q,%v want %q,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

package desktop

import (
	"os"

	"charm.land/log/v2"
)

// EventKind identifies the mutation that produced an Event.
type EventKind int

const (
	EventOpened EventKind = iota
	EventClosed
	EventFocused
	EventMinimized
	EventMaximized
	EventPinned
	EventFloating
	EventOpacity
	EventMoved
	EventResized
	EventSplit
	EventUnsplit
	EventDesktopSwitched
	EventDesktopAdded
	EventDesktopRemoved
	EventMovedToDesktop
)

var eventNames = map[EventKind]string{
	EventOpened:          "opened",
	EventClosed:          "closed",
	EventFocused:         "focused",
	EventMinimized:       "minimized",
	EventMaximized:       "maximized",
	EventPinned:          "pinned",
	EventFloating:        "floating",
	EventOpacity:         "opacity",
	EventMoved:           "moved",
	EventResized:         "resized",
	EventSplit:           "split",
	EventUnsplit:         "unsplit",
	EventDesktopSwitched: "desktop_switched",
	EventDesktopAdded:    "desktop_added",
	EventDesktopRemoved:  "desktop_removed",
	EventMovedToDesktop:  "moved_to_desktop",
}

// String returns the event name.
func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event describes one applied mutation. Listeners receive it after the state
// change is complete.
type Event struct {
	Kind     EventKind
	WindowID string // empty for desktop-wide events
	Desktop  int    // current desktop after the change
}

// Listener is notified synchronously after every successful mutation.
type Listener interface {
	DesktopChanged(ev Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(ev Event)

// DesktopChanged implements Listener.
func (f ListenerFunc) DesktopChanged(ev Event) { f(ev) }

// Subscribe registers a listener.
func (d *Desktop) Subscribe(l Listener) {
	if l != nil {
		d.listeners = append(d.listeners, l)
	}
}

func (d *Desktop) emit(kind EventKind, windowID string) {
	ev := Event{Kind: kind, WindowID: windowID, Desktop: d.current}
	for _, l := range d.listeners {
		l.DesktopChanged(ev)
	}
}

// Package-level logger
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "desktop",
})

// SetLogLevel sets the logging level for the desktop package.
func SetLogLevel(level log.Level) {
	logger.SetLevel(level)
}

// LogListener logs every event at debug level.
type LogListener struct{}

// DesktopChanged implements Listener.
func (LogListener) DesktopChanged(ev Event) {
	logger.Debug("desktop changed",
		"event", ev.Kind,
		"window", ev.WindowID,
		"desktop", ev.Desktop,
	)
}

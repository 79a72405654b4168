package mapview // package mapview models the map surface: viewport, markers, selection overlay

import (
	"strconv"
	"sync"
)

// Default viewport: Gangnam station at a close zoom, matching the map the
// user lands on before any search.
const (
	defaultLat   = 37.4979
	defaultLng   = 127.0276
	DefaultLevel = 3
)

// LatLng is a map coordinate in degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Viewport tracks where the map is looking. Search and list interactions
// move it (pan keeps the zoom, recenter also resets it); it becomes ready
// once the map surface has been created. The viewport carries its own
// lock: a completing search moves it from outside the session's state
// mutex, so every access goes through a synchronized method.
type Viewport struct {
	mu     sync.Mutex
	center LatLng
	level  int
	ready  bool
}

// NewViewport returns a viewport at the default center, not yet ready.
func NewViewport() *Viewport {
	return &Viewport{center: LatLng{Lat: defaultLat, Lng: defaultLng}, level: DefaultLevel}
}

// Create marks the map surface as created. Searches are rejected until
// this has happened.
func (v *Viewport) Create() {
	v.mu.Lock()
	v.ready = true
	v.mu.Unlock()
}

// Ready reports whether the map surface exists.
func (v *Viewport) Ready() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.ready
}

// Center returns the current map center.
func (v *Viewport) Center() LatLng {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.center
}

// Level returns the current zoom level.
func (v *Viewport) Level() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.level
}

// Snapshot is a point-in-time copy of the viewport for rendering.
type Snapshot struct {
	Center LatLng `json:"center"`
	Level  int    `json:"level"`
}

// Snapshot returns a consistent copy of center and level.
func (v *Viewport) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Snapshot{Center: v.center, Level: v.level}
}

// PanTo moves the center to the given coordinate strings, keeping the
// current zoom level. Unparsable coordinates leave the viewport alone.
func (v *Viewport) PanTo(x, y string) {
	if c, ok := parseLatLng(x, y); ok {
		v.mu.Lock()
		v.center = c
		v.mu.Unlock()
	}
}

// Recenter moves the center and sets the zoom level, as the fallback
// search does when it relocates the map to a far-away hit.
func (v *Viewport) Recenter(x, y string, level int) {
	if c, ok := parseLatLng(x, y); ok {
		v.mu.Lock()
		v.center = c
		v.level = level
		v.mu.Unlock()
	}
}

func parseLatLng(x, y string) (LatLng, bool) {
	lng, err := strconv.ParseFloat(x, 64)
	if err != nil {
		return LatLng{}, false
	}
	lat, err := strconv.ParseFloat(y, 64)
	if err != nil {
		return LatLng{}, false
	}
	return LatLng{Lat: lat, Lng: lng}, true
}

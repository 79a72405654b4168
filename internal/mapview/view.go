package mapview

import (
	"errors"

	"github.com/myfoodmap/webclient/internal/model"
)

// ErrNotFound is returned when a selection targets an ID that is not in
// the current review list or search result set.
var ErrNotFound = errors.New("mapview: no such marker")

// View holds the selection and carousel state for the map surface. The
// review list itself is owned by the review store and passed in per call,
// so the carousel always reflects the freshest data after a refetch.
type View struct {
	Viewport  *Viewport
	selection model.Selection
	index     int // carousel position among co-located reviews
}

// NewView builds a view over a fresh viewport.
func NewView() *View {
	return &View{Viewport: NewViewport()}
}

// Selection exposes the current selection.
func (v *View) Selection() model.Selection { return v.selection }

// SelectReview makes the review with the given ID the active selection,
// clearing any place selection, and positions the carousel on it among
// the reviews sharing its exact coordinate.
func (v *View) SelectReview(reviews []model.Review, id int64) error {
	for _, r := range reviews {
		if r.ID == id {
			v.selection = model.SelectReview(r)
			v.index = 0
			for i, co := range reviewsAt(reviews, r.CoordKey()) {
				if co.ID == id {
					v.index = i
					break
				}
			}
			return nil
		}
	}
	return ErrNotFound
}

// SelectPlace makes the search result with the given ID the active
// selection, clearing any review selection.
func (v *View) SelectPlace(results []model.Place, id string) error {
	for _, p := range results {
		if p.ID == id {
			v.selection = model.SelectPlace(p)
			v.index = 0
			return nil
		}
	}
	return ErrNotFound
}

// ClickMap is a click on the base map surface: it clears the selection.
// Actions inside an overlay never route here, so an open overlay is not
// dismissed by its own buttons.
func (v *View) ClickMap() {
	v.selection = model.NoSelection()
	v.index = 0
}

// Next advances the carousel cyclically: from the last co-located review
// it wraps to the first.
func (v *View) Next(reviews []model.Review) {
	v.step(reviews, +1)
}

// Prev steps the carousel backwards cyclically: from the first co-located
// review it wraps to the last.
func (v *View) Prev(reviews []model.Review) {
	v.step(reviews, -1)
}

func (v *View) step(reviews []model.Review, delta int) {
	sel, ok := v.selection.Review()
	if !ok {
		return
	}
	n := len(reviewsAt(reviews, sel.CoordKey()))
	if n == 0 {
		return
	}
	v.index = ((v.index+delta)%n + n) % n
}

// Overlay is the detail bubble for the current selection: either one
// review out of the co-located group, or a search result's metadata.
type Overlay struct {
	Kind     MarkerKind    `json:"kind"`
	Position LatLng        `json:"position"`
	Review   *model.Review `json:"review,omitempty"`
	Index    int           `json:"index,omitempty"` // 1-based position within the group
	Total    int           `json:"total,omitempty"`
	Place    *model.Place  `json:"place,omitempty"`
	Address  string        `json:"address,omitempty"`
}

// Overlay renders the current selection against the given review list.
// It returns nil when nothing is selected, or when the selected review's
// group no longer contains the carousel position (e.g. after a delete).
func (v *View) Overlay(reviews []model.Review) *Overlay {
	switch v.selection.Kind() {
	case model.SelectionReview:
		sel, _ := v.selection.Review()
		group := reviewsAt(reviews, sel.CoordKey())
		if v.index < 0 || v.index >= len(group) {
			return nil
		}
		shown := group[v.index]
		pos, _ := parseLatLng(sel.X, sel.Y)
		return &Overlay{
			Kind:     MarkerReview,
			Position: pos,
			Review:   &shown,
			Index:    v.index + 1,
			Total:    len(group),
		}
	case model.SelectionPlace:
		p, _ := v.selection.Place()
		pos, _ := parseLatLng(p.X, p.Y)
		return &Overlay{
			Kind:     MarkerPlace,
			Position: pos,
			Place:    &p,
			Address:  p.DisplayAddress(),
		}
	default:
		return nil
	}
}

// reviewsAt collects the reviews sharing an exact coordinate, in list
// order, which is the carousel's visiting order.
func reviewsAt(reviews []model.Review, coord string) []model.Review {
	var out []model.Review
	for _, r := range reviews {
		if r.CoordKey() == coord {
			out = append(out, r)
		}
	}
	return out
}

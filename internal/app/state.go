package app // package app composes the per-session stores the way the home screen does

import (
	"sync"
	"time"

	"github.com/myfoodmap/webclient/internal/editor"
	"github.com/myfoodmap/webclient/internal/mapview"
	"github.com/myfoodmap/webclient/internal/model"
	"github.com/myfoodmap/webclient/internal/review"
	"github.com/myfoodmap/webclient/internal/search"
	"github.com/myfoodmap/webclient/internal/sidebar"
)

// State is everything one browser session sees: the review store, the
// search controller, the map view, the sidebar, the review form, and the
// shared bits the top level owns directly: the date filter and the glue
// between components. A single mutex serializes handler access, standing
// in for the browser's single-threaded event loop; the search controller
// and review store keep their own locking for the calls that run outside
// it.
type State struct {
	mu sync.Mutex

	User    model.User
	Reviews *review.Store
	Search  *search.Controller
	Map     *mapview.View
	Sidebar *sidebar.Panel
	Editor  *editor.Form

	StartDate string
	EndDate   string
}

// NewState wires a session's stores together. The map surface is marked
// created immediately: the BFF has no asynchronous SDK bootstrap to wait
// for.
func NewState(gw review.Gateway, searcher search.Searcher, token string, user model.User) *State {
	view := mapview.NewView()
	view.Viewport.Create()
	return &State{
		User:    user,
		Reviews: review.NewStore(gw, token, user.Username),
		Search:  search.NewController(searcher, view.Viewport),
		Map:     view,
		Sidebar: sidebar.NewPanel(),
		Editor:  editor.NewForm(),
	}
}

// Lock/Unlock serialize handler access to the composed state.
func (s *State) Lock()   { s.mu.Lock() }
func (s *State) Unlock() { s.mu.Unlock() }

// Filter returns the active date filter. Callers pass it through to every
// fetch so edits and deletes keep the filter they were issued under.
func (s *State) Filter() (startDate, endDate string) {
	return s.StartDate, s.EndDate
}

// SetFilter installs a new date filter. The caller refetches afterwards.
func (s *State) SetFilter(startDate, endDate string) {
	s.StartDate = startDate
	s.EndDate = endDate
}

// ClearFilter resets the filter together with the sidebar's sort and
// page, mirroring the filter-reset control.
func (s *State) ClearFilter() {
	s.StartDate = ""
	s.EndDate = ""
	s.Sidebar.Reset()
}

// OpenComposeForPlace opens the review form for a search result and
// dismisses any overlay.
func (s *State) OpenComposeForPlace(placeID string) error {
	for _, p := range s.Search.Results() {
		if p.ID == placeID {
			s.Editor.OpenForCreate(p, time.Now())
			s.Map.ClickMap()
			return nil
		}
	}
	return mapview.ErrNotFound
}

// OpenComposeForReview opens the review form for another visit to an
// already-reviewed place. The place target is rebuilt from the review's
// stored snapshot.
func (s *State) OpenComposeForReview(reviewID int64) error {
	for _, r := range s.Reviews.Reviews() {
		if r.ID == reviewID {
			s.Editor.OpenForCreate(model.Place{
				ID:      r.KakaoID,
				Name:    r.Name,
				Address: r.Address,
				X:       r.X,
				Y:       r.Y,
			}, time.Now())
			s.Map.ClickMap()
			return nil
		}
	}
	return mapview.ErrNotFound
}

// OpenEdit opens the review form pre-populated from an existing review.
func (s *State) OpenEdit(reviewID int64) error {
	for _, r := range s.Reviews.Reviews() {
		if r.ID == reviewID {
			s.Editor.OpenForEdit(r, time.Now())
			return nil
		}
	}
	return mapview.ErrNotFound
}

// SelectFromSidebar highlights a review picked in the list: the map pans
// to it, it becomes the selection, and the sidebar closes to reveal the
// map.
func (s *State) SelectFromSidebar(reviewID int64) error {
	reviews := s.Reviews.Reviews()
	if err := s.Map.SelectReview(reviews, reviewID); err != nil {
		return err
	}
	if sel, ok := s.Map.Selection().Review(); ok {
		s.Map.Viewport.PanTo(sel.X, sel.Y)
	}
	s.Sidebar.Close()
	return nil
}

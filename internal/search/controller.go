package search // package search drives keyword place search with nearby-first fallback

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/myfoodmap/webclient/internal/mapview"
	"github.com/myfoodmap/webclient/internal/model"
	"github.com/myfoodmap/webclient/internal/places"
)

// nearbyRadiusMeters scopes the first search attempt to the map's
// surroundings before falling back to an unscoped search.
const nearbyRadiusMeters = 10000

// Validation failures reported before any network call.
var (
	ErrEmptyKeyword = errors.New("enter a search term")
	ErrMapNotReady  = errors.New("map is not ready yet")
)

// Searcher is the slice of the places client the controller needs.
type Searcher interface {
	SearchKeyword(ctx context.Context, query string, opts places.SearchOptions) ([]model.Place, error)
}

// Controller owns the keyword search state for one session: the current
// result set and the viewport it moves. Searches are fenced by a sequence
// number so a slow response can never overwrite the results of a newer
// search (last-write-wins replaced by newest-wins).
type Controller struct {
	mu       sync.Mutex
	searcher Searcher
	viewport *mapview.Viewport
	results  []model.Place
	keyword  string
	seq      uint64
}

// NewController binds a searcher to the session's viewport.
func NewController(s Searcher, vp *mapview.Viewport) *Controller {
	return &Controller{searcher: s, viewport: vp}
}

// Outcome reports what a completed search did.
type Outcome struct {
	Places []model.Place `json:"places"`
	Notice string        `json:"notice,omitempty"` // set when there was nothing to show
	Stale  bool          `json:"-"`                // a newer search superseded this one
}

// Results returns a copy of the current result set.
func (c *Controller) Results() []model.Place {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Place, len(c.results))
	copy(out, c.results)
	return out
}

// Keyword returns the keyword whose results are currently shown.
func (c *Controller) Keyword() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.keyword
}

// Search validates the keyword, searches within nearbyRadiusMeters of the
// current center, and on zero hits automatically retries unscoped. Scoped
// hits pan the map to the top hit; fallback hits recenter it and reset the
// zoom. A transport failure leaves the current result set untouched. The
// network round trips run without the lock so a newer search can start
// meanwhile; stale completions are discarded.
func (c *Controller) Search(ctx context.Context, keyword string) (Outcome, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return Outcome{}, ErrEmptyKeyword
	}

	c.mu.Lock()
	if !c.viewport.Ready() {
		c.mu.Unlock()
		return Outcome{}, ErrMapNotReady
	}
	c.seq++
	seq := c.seq
	center := c.viewport.Center()
	c.mu.Unlock()

	scoped, err := c.searcher.SearchKeyword(ctx, keyword, places.SearchOptions{
		X:      formatCoord(center.Lng),
		Y:      formatCoord(center.Lat),
		Radius: nearbyRadiusMeters,
	})
	if err != nil {
		return Outcome{}, err
	}
	if len(scoped) > 0 {
		return c.apply(seq, keyword, scoped, false), nil
	}

	unscoped, err := c.searcher.SearchKeyword(ctx, keyword, places.SearchOptions{})
	if err != nil {
		return Outcome{}, err
	}
	if len(unscoped) > 0 {
		return c.apply(seq, keyword, unscoped, true), nil
	}
	return Outcome{Places: c.Results(), Notice: "no results found"}, nil
}

// apply installs a completed search's results unless a newer search has
// started since. fallback hits recenter and reset zoom; scoped hits pan.
func (c *Controller) apply(seq uint64, keyword string, results []model.Place, fallback bool) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		return Outcome{Stale: true}
	}
	c.keyword = keyword
	c.results = results
	top := results[0]
	if fallback {
		c.viewport.Recenter(top.X, top.Y, mapview.DefaultLevel)
	} else {
		c.viewport.PanTo(top.X, top.Y)
	}
	out := make([]model.Place, len(results))
	copy(out, results)
	return Outcome{Places: out}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

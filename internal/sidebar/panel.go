package sidebar // package sidebar lists the user's reviews with sorting, paging and summaries

import (
	"sort"

	"github.com/myfoodmap/webclient/internal/model"
)

// PageSize is the fixed number of reviews per sidebar page.
const PageSize = 10

// SortKey selects the active ordering of the review list.
type SortKey string

const (
	SortLatest SortKey = "latest" // by visit date
	SortPrice  SortKey = "price"
	SortRating SortKey = "rating"
)

// Panel holds the sidebar's presentation state: visibility, the active
// sort, and the current page. The review data itself stays in the review
// store; the panel only orders and windows it.
type Panel struct {
	open      bool
	sortKey   SortKey
	ascending bool
	page      int // 1-based
}

// NewPanel starts closed, sorted by latest visit first, on page one.
func NewPanel() *Panel {
	return &Panel{sortKey: SortLatest, ascending: false, page: 1}
}

// Open/Close/IsOpen control visibility.
func (p *Panel) Open()        { p.open = true }
func (p *Panel) Close()       { p.open = false }
func (p *Panel) IsOpen() bool { return p.open }

// Sort reports the active key and direction.
func (p *Panel) Sort() (SortKey, bool) { return p.sortKey, p.ascending }

// Page reports the current 1-based page.
func (p *Panel) Page() int { return p.page }

// ToggleSort applies a click on a sort control: clicking the active key
// flips its direction, clicking a different key switches to it descending.
// Any sort change returns to the first page.
func (p *Panel) ToggleSort(key SortKey) {
	if p.sortKey == key {
		p.ascending = !p.ascending
	} else {
		p.sortKey = key
		p.ascending = false
	}
	p.page = 1
}

// Reset restores the default sort and page, as the filter-clear action
// does.
func (p *Panel) Reset() {
	p.sortKey = SortLatest
	p.ascending = false
	p.page = 1
}

// Sorted returns the reviews ordered by the active sort. The sort is
// stable, so toggling a direction twice restores the original order.
func (p *Panel) Sorted(reviews []model.Review) []model.Review {
	out := make([]model.Review, len(reviews))
	copy(out, reviews)
	less := p.lessFunc(out)
	sort.SliceStable(out, less)
	return out
}

func (p *Panel) lessFunc(rs []model.Review) func(i, j int) bool {
	asc := p.ascending
	switch p.sortKey {
	case SortPrice:
		return func(i, j int) bool {
			if asc {
				return rs[i].Price < rs[j].Price
			}
			return rs[i].Price > rs[j].Price
		}
	case SortRating:
		return func(i, j int) bool {
			if asc {
				return rs[i].Rating < rs[j].Rating
			}
			return rs[i].Rating > rs[j].Rating
		}
	default: // SortLatest; the date format sorts lexicographically
		return func(i, j int) bool {
			if asc {
				return rs[i].Date < rs[j].Date
			}
			return rs[i].Date > rs[j].Date
		}
	}
}

// PageCount is ceil(n / PageSize); an empty list still has one page.
func PageCount(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + PageSize - 1) / PageSize
}

// HasPrev reports whether a previous page exists.
func (p *Panel) HasPrev() bool { return p.page > 1 }

// HasNext reports whether a next page exists for a list of n reviews.
func (p *Panel) HasNext(n int) bool { return p.page < PageCount(n) }

// NextPage advances one page, clamped at the last page.
func (p *Panel) NextPage(n int) {
	if p.HasNext(n) {
		p.page++
	}
}

// PrevPage steps back one page, clamped at the first page.
func (p *Panel) PrevPage() {
	if p.HasPrev() {
		p.page--
	}
}

// ClampPage pulls the page back into range after the list shrank (e.g. a
// delete removed the last item of the last page).
func (p *Panel) ClampPage(n int) {
	if max := PageCount(n); p.page > max {
		p.page = max
	}
}

// PageOf windows an already-sorted list to the current page.
func (p *Panel) PageOf(sorted []model.Review) []model.Review {
	start := (p.page - 1) * PageSize
	if start >= len(sorted) {
		return nil
	}
	end := start + PageSize
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[start:end]
}

// Summary is the sidebar's header line. Spending and rating come from the
// server's stats object so they cover the whole filtered set even when
// only one page is shown; the distinct restaurant count is computed from
// the loaded list.
type Summary struct {
	ReviewCount     int     `json:"reviewCount"`
	RestaurantCount int     `json:"restaurantCount"`
	TotalSpending   int     `json:"totalSpending"`
	AverageRating   float64 `json:"averageRating"`
}

// Summarize builds the summary for the loaded reviews and server stats.
func Summarize(reviews []model.Review, stats model.Stats) Summary {
	names := make(map[string]bool, len(reviews))
	for _, r := range reviews {
		names[r.Name] = true
	}
	return Summary{
		ReviewCount:     len(reviews),
		RestaurantCount: len(names),
		TotalSpending:   stats.TotalSpending,
		AverageRating:   stats.AverageRating,
	}
}

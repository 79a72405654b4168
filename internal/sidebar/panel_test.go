package sidebar

import (
	"fmt"
	"testing"

	"github.com/myfoodmap/webclient/internal/model"
)

func sample() []model.Review {
	return []model.Review{
		{ID: 1, Name: "A", Date: "2025-01-05", Price: 9000, Rating: 3},
		{ID: 2, Name: "B", Date: "2025-03-01", Price: 15000, Rating: 5},
		{ID: 3, Name: "A", Date: "2025-02-10", Price: 7000, Rating: 4},
	}
}

func ids(rs []model.Review) []int64 {
	out := make([]int64, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func TestToggleSortSameKeyFlipsDirection(t *testing.T) {
	p := NewPanel()
	first := ids(p.Sorted(sample())) // latest descending

	p.ToggleSort(SortLatest)
	flipped := ids(p.Sorted(sample()))
	if fmt.Sprint(flipped) == fmt.Sprint(first) {
		t.Error("toggling the active key should flip the order")
	}

	p.ToggleSort(SortLatest)
	restored := ids(p.Sorted(sample()))
	if fmt.Sprint(restored) != fmt.Sprint(first) {
		t.Errorf("toggling twice should restore the order: got %v, want %v", restored, first)
	}
}

func TestToggleSortNewKeyResetsDescendingAndPage(t *testing.T) {
	p := NewPanel()
	p.ToggleSort(SortLatest) // ascending now
	p.NextPage(25)
	if p.Page() != 2 {
		t.Fatalf("page = %d, want 2", p.Page())
	}

	p.ToggleSort(SortPrice)
	key, ascending := p.Sort()
	if key != SortPrice || ascending {
		t.Errorf("sort = %s asc=%v, want price descending", key, ascending)
	}
	if p.Page() != 1 {
		t.Errorf("sort change must reset to page 1, got %d", p.Page())
	}

	sorted := p.Sorted(sample())
	if got := ids(sorted); got[0] != 2 || got[1] != 1 || got[2] != 3 {
		t.Errorf("price descending = %v, want [2 1 3]", got)
	}
}

func TestSortKeys(t *testing.T) {
	p := NewPanel()

	if got := ids(p.Sorted(sample())); got[0] != 2 || got[2] != 1 {
		t.Errorf("latest descending = %v, want [2 3 1]", got)
	}

	p.ToggleSort(SortRating)
	if got := ids(p.Sorted(sample())); got[0] != 2 || got[2] != 1 {
		t.Errorf("rating descending = %v, want [2 3 1]", got)
	}
	p.ToggleSort(SortRating)
	if got := ids(p.Sorted(sample())); got[0] != 1 || got[2] != 2 {
		t.Errorf("rating ascending = %v, want [1 3 2]", got)
	}
}

func TestPageCount(t *testing.T) {
	cases := []struct{ n, want int }{
		{0, 1}, {1, 1}, {10, 1}, {11, 2}, {20, 2}, {21, 3},
	}
	for _, tc := range cases {
		if got := PageCount(tc.n); got != tc.want {
			t.Errorf("PageCount(%d) = %d, want %d", tc.n, got, tc.want)
		}
	}
}

func TestPaginationBoundaries(t *testing.T) {
	p := NewPanel()
	const n = 23 // three pages

	if p.HasPrev() {
		t.Error("page 1 must have no previous page")
	}
	p.PrevPage() // clamped
	if p.Page() != 1 {
		t.Errorf("prev on page 1 moved to %d", p.Page())
	}

	p.NextPage(n)
	p.NextPage(n)
	if p.Page() != 3 || p.HasNext(n) {
		t.Errorf("page = %d hasNext=%v, want 3 false", p.Page(), p.HasNext(n))
	}
	p.NextPage(n) // clamped
	if p.Page() != 3 {
		t.Errorf("next on the last page moved to %d", p.Page())
	}

	p.ClampPage(5) // list shrank to one page
	if p.Page() != 1 {
		t.Errorf("ClampPage(5) left page %d, want 1", p.Page())
	}
}

func TestPageOfWindows(t *testing.T) {
	p := NewPanel()
	var reviews []model.Review
	for i := 1; i <= 12; i++ {
		reviews = append(reviews, model.Review{ID: int64(i), Date: fmt.Sprintf("2025-01-%02d", i)})
	}
	sorted := p.Sorted(reviews) // latest first: 12..1

	page1 := p.PageOf(sorted)
	if len(page1) != PageSize || page1[0].ID != 12 {
		t.Fatalf("page 1 = %d items starting %d", len(page1), page1[0].ID)
	}
	p.NextPage(len(sorted))
	page2 := p.PageOf(sorted)
	if len(page2) != 2 || page2[0].ID != 2 {
		t.Errorf("page 2 = %d items starting %d, want 2 items starting 2", len(page2), page2[0].ID)
	}
}

func TestSummarize(t *testing.T) {
	stats := model.Stats{TotalSpending: 31000, AverageRating: 4.0}
	sum := Summarize(sample(), stats)
	if sum.ReviewCount != 3 {
		t.Errorf("ReviewCount = %d, want 3", sum.ReviewCount)
	}
	if sum.RestaurantCount != 2 {
		t.Errorf("RestaurantCount = %d, want 2 (two distinct names)", sum.RestaurantCount)
	}
	// Spending and rating pass through from the server's stats.
	if sum.TotalSpending != 31000 || sum.AverageRating != 4.0 {
		t.Errorf("stats passthrough = %+v", sum)
	}
}

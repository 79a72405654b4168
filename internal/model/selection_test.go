package model

import "testing"

func TestSelectionMutualExclusion(t *testing.T) {
	place := Place{ID: "p1", Name: "Cafe", X: "127.1", Y: "37.5"}
	rev := Review{ID: 9, Name: "Diner", X: "127.2", Y: "37.6"}

	sel := SelectPlace(place)
	if sel.Kind() != SelectionPlace {
		t.Fatalf("Kind = %v, want SelectionPlace", sel.Kind())
	}
	if _, ok := sel.Review(); ok {
		t.Error("place selection must not expose a review")
	}

	sel = SelectReview(rev)
	if sel.Kind() != SelectionReview {
		t.Fatalf("Kind = %v, want SelectionReview", sel.Kind())
	}
	if _, ok := sel.Place(); ok {
		t.Error("review selection must not expose a place")
	}
	if got, ok := sel.Review(); !ok || got.ID != 9 {
		t.Errorf("Review() = %+v, %v; want id 9, true", got, ok)
	}

	sel = NoSelection()
	if !sel.IsNone() {
		t.Error("NoSelection should report IsNone")
	}
}

func TestStatsFlexibleDecode(t *testing.T) {
	var s Stats
	if err := s.UnmarshalJSON([]byte(`{"totalSpending":"45000","averageRating":4.25}`)); err != nil {
		t.Fatalf("UnmarshalJSON error: %v", err)
	}
	if s.TotalSpending != 45000 || s.AverageRating != 4.25 {
		t.Errorf("got %+v, want {45000 4.25}", s)
	}

	if err := s.UnmarshalJSON([]byte(`{"totalSpending":12000,"averageRating":"3.5"}`)); err != nil {
		t.Fatalf("UnmarshalJSON error: %v", err)
	}
	if s.TotalSpending != 12000 || s.AverageRating != 3.5 {
		t.Errorf("got %+v, want {12000 3.5}", s)
	}

	if err := s.UnmarshalJSON([]byte(`{}`)); err != nil {
		t.Fatalf("UnmarshalJSON error on empty object: %v", err)
	}
	if s.TotalSpending != 0 || s.AverageRating != 0 {
		t.Errorf("missing fields should decode to zero, got %+v", s)
	}
}

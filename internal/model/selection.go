package model

// SelectionKind discriminates the Selection union.
type SelectionKind int

const (
	SelectionNone SelectionKind = iota
	SelectionPlace
	SelectionReview
)

// Selection is the currently highlighted map entity. At most one of a
// place or a review is active at any time; constructing one variant
// discards the other.
type Selection struct {
	kind   SelectionKind
	place  Place
	review Review
}

// NoSelection is the cleared state.
func NoSelection() Selection { return Selection{kind: SelectionNone} }

// SelectPlace returns a selection holding the given place.
func SelectPlace(p Place) Selection { return Selection{kind: SelectionPlace, place: p} }

// SelectReview returns a selection holding the given review.
func SelectReview(r Review) Selection { return Selection{kind: SelectionReview, review: r} }

// Kind reports which variant is active.
func (s Selection) Kind() SelectionKind { return s.kind }

// IsNone reports whether nothing is selected.
func (s Selection) IsNone() bool { return s.kind == SelectionNone }

// Place returns the selected place; ok is false for other variants.
func (s Selection) Place() (Place, bool) {
	if s.kind != SelectionPlace {
		return Place{}, false
	}
	return s.place, true
}

// Review returns the selected review; ok is false for other variants.
func (s Selection) Review() (Review, bool) {
	if s.kind != SelectionReview {
		return Review{}, false
	}
	return s.review, true
}

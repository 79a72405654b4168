package mapview

import "github.com/myfoodmap/webclient/internal/model"

// MarkerKind distinguishes the two marker classes on the map.
type MarkerKind string

const (
	MarkerReview MarkerKind = "review"
	MarkerPlace  MarkerKind = "place"
)

// Marker is one renderable map pin. Exactly one of Review/Place is set,
// matching Kind.
type Marker struct {
	Kind     MarkerKind    `json:"kind"`
	Position LatLng        `json:"position"`
	Review   *model.Review `json:"review,omitempty"`
	Place    *model.Place  `json:"place,omitempty"`
}

// BuildMarkers combines the user's reviews and the current search results
// into one marker list. A coordinate already represented by a review
// marker is never also rendered as a search-result marker: reviews take
// visual precedence at identical coordinates. Several reviews at one
// coordinate share a single marker (the overlay carousel handles the rest).
func BuildMarkers(reviews []model.Review, results []model.Place) []Marker {
	markers := make([]Marker, 0, len(reviews)+len(results))
	reviewed := make(map[string]bool, len(reviews))

	for i := range reviews {
		r := reviews[i]
		if reviewed[r.CoordKey()] {
			continue
		}
		reviewed[r.CoordKey()] = true
		if pos, ok := parseLatLng(r.X, r.Y); ok {
			markers = append(markers, Marker{Kind: MarkerReview, Position: pos, Review: &reviews[i]})
		}
	}
	for i := range results {
		p := results[i]
		if reviewed[p.CoordKey()] {
			continue
		}
		if pos, ok := parseLatLng(p.X, p.Y); ok {
			markers = append(markers, Marker{Kind: MarkerPlace, Position: pos, Place: &results[i]})
		}
	}
	return markers
}

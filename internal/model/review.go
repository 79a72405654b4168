package model

// Review is a user-authored record of one visit to one place. Reviews are
// owned by the authenticated user and are never shared; the client only
// ever holds the current user's set.
//
// Coordinates are kept as the decimal strings the backend and the places
// provider emit. Two reviews (or a review and a place) refer to the same
// map location exactly when both coordinate strings are equal; the client
// never parses them for identity purposes, only for rendering.
//
// Fields:
//  ID       – backend identifier of the review.
//  KakaoID  – external place identifier the review is attached to.
//  Name     – place name at the time of writing.
//  Address  – place address at the time of writing.
//  Rating   – 1..5 star rating.
//  Date     – visit date as "YYYY-MM-DD" in local time.
//  Menu     – name of the ordered menu item.
//  Price    – non-negative price, currency-agnostic.
//  Text     – free-form review text.
//  ImageURL – uploaded photo URL, empty when no photo is attached.
//  X, Y     – longitude/latitude as decimal strings.
type Review struct {
	ID       int64  `json:"id"`
	KakaoID  string `json:"kakaoId"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Rating   int    `json:"rating"`
	Date     string `json:"date"`
	Menu     string `json:"menu"`
	Price    int    `json:"price"`
	Text     string `json:"text"`
	ImageURL string `json:"imageUrl,omitempty"`
	X        string `json:"x"`
	Y        string `json:"y"`
}

// CoordKey returns the exact-coordinate identity used for marker
// deduplication and carousel grouping.
func (r Review) CoordKey() string { return r.X + "," + r.Y }

package model

// Place is a search result from the places provider. Places are ephemeral:
// they live only as long as the search result set that produced them and
// are never persisted by this client.
//
// Fields:
//  ID            – provider identifier of the place.
//  Name          – display name.
//  Address       – lot-number address.
//  RoadAddress   – road-name address (preferred for display when present).
//  Phone         – phone number, may be empty.
//  CategoryGroup – provider category label (e.g. restaurant, cafe).
//  PlaceURL      – provider detail-page URL.
//  X, Y          – longitude/latitude as decimal strings.
type Place struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	RoadAddress   string `json:"roadAddress,omitempty"`
	Phone         string `json:"phone,omitempty"`
	CategoryGroup string `json:"category,omitempty"`
	PlaceURL      string `json:"placeUrl,omitempty"`
	X             string `json:"x"`
	Y             string `json:"y"`
}

// DisplayAddress prefers the road-name address and falls back to the
// lot-number address.
func (p Place) DisplayAddress() string {
	if p.RoadAddress != "" {
		return p.RoadAddress
	}
	return p.Address
}

// CoordKey returns the exact-coordinate identity used for marker
// deduplication against review markers.
func (p Place) CoordKey() string { return p.X + "," + p.Y }

package places // package places queries the Kakao Local keyword-search REST API

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/myfoodmap/webclient/internal/model"
)

const defaultBaseURL = "https://dapi.kakao.com"

// SearchOptions scope a keyword search to a circle around a coordinate.
// A zero Radius means the search is unscoped.
type SearchOptions struct {
	X      string // longitude as a decimal string
	Y      string // latitude as a decimal string
	Radius int    // meters, 0..20000
}

// Client calls the Kakao Local REST API. It replaces the JS map SDK's
// callback-based Places service with a plain awaitable operation.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New builds a Kakao Local client authenticated with a REST API key.
func New(apiKey string) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// NewWithBaseURL is used by tests to point the client at a fake server.
func NewWithBaseURL(apiKey, baseURL string) *Client {
	c := New(apiKey)
	c.baseURL = baseURL
	return c
}

// documentWire mirrors one element of the Kakao response's documents array.
type documentWire struct {
	ID                string `json:"id"`
	PlaceName         string `json:"place_name"`
	CategoryGroupName string `json:"category_group_name"`
	Phone             string `json:"phone"`
	AddressName       string `json:"address_name"`
	RoadAddressName   string `json:"road_address_name"`
	X                 string `json:"x"`
	Y                 string `json:"y"`
	PlaceURL          string `json:"place_url"`
}

type keywordResp struct {
	Documents []documentWire `json:"documents"`
}

// SearchKeyword runs a keyword search, optionally scoped by opts. A search
// with no matches returns an empty slice and no error; errors indicate
// transport or API failures only.
func (c *Client) SearchKeyword(ctx context.Context, query string, opts SearchOptions) ([]model.Place, error) {
	q := url.Values{}
	q.Set("query", query)
	if opts.Radius > 0 && opts.X != "" && opts.Y != "" {
		q.Set("x", opts.X)
		q.Set("y", opts.Y)
		q.Set("radius", strconv.Itoa(opts.Radius))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/v2/local/search/keyword.json?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "KakaoAK "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("places API error (status %d): %s", resp.StatusCode, string(body))
	}

	var kr keywordResp
	if err := json.Unmarshal(body, &kr); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	out := make([]model.Place, 0, len(kr.Documents))
	for _, d := range kr.Documents {
		out = append(out, model.Place{
			ID:            d.ID,
			Name:          d.PlaceName,
			Address:       d.AddressName,
			RoadAddress:   d.RoadAddressName,
			Phone:         d.Phone,
			CategoryGroup: d.CategoryGroupName,
			PlaceURL:      d.PlaceURL,
			X:             d.X,
			Y:             d.Y,
		})
	}
	return out, nil
}

package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/myfoodmap/webclient/internal/model"
)

// flexString decodes a JSON value that may arrive either as a string or as
// a bare number. The backend stores coordinates as decimals and is not
// consistent about quoting them on the way out.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(data)
	return nil
}

// reviewWire mirrors one element of the backend's reviews array.
type reviewWire struct {
	ReviewID  int64      `json:"reviewId"`
	KakaoID   flexString `json:"kakaoId"`
	Name      string     `json:"name"`
	Address   string     `json:"address"`
	Rating    int        `json:"rating"`
	VisitDate string     `json:"visitDate"`
	MenuName  string     `json:"menuName"`
	Price     int        `json:"price"`
	Content   string     `json:"content"`
	ImageURL  string     `json:"imageUrl"`
	X         flexString `json:"x"`
	Y         flexString `json:"y"`
}

type reviewListResp struct {
	Reviews []reviewWire `json:"reviews"`
	Stats   model.Stats  `json:"stats"`
}

// CreatePayload is the body of POST /reviews: the place snapshot plus the
// review fields. ImageURL is a pointer so "no photo" serializes as null,
// which is what the backend expects.
type CreatePayload struct {
	KakaoID   string  `json:"kakaoId"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Category  string  `json:"category"`
	X         string  `json:"x"`
	Y         string  `json:"y"`
	Rating    int     `json:"rating"`
	VisitDate string  `json:"visitDate"`
	Content   string  `json:"content"`
	MenuName  string  `json:"menuName"`
	Price     int     `json:"price"`
	ImageURL  *string `json:"imageUrl"`
}

// UpdatePayload is the body of PUT /reviews/:id. Only the mutable fields
// appear; the place snapshot never changes after creation.
type UpdatePayload struct {
	Rating    int     `json:"rating"`
	Content   string  `json:"content"`
	MenuName  string  `json:"menuName"`
	Price     int     `json:"price"`
	VisitDate string  `json:"visitDate"`
	ImageURL  *string `json:"imageUrl"`
}

// FetchReviews loads the user's reviews and the server-computed aggregates,
// optionally restricted to an inclusive visit-date range. Dates are
// "YYYY-MM-DD"; empty strings mean unbounded.
func (c *Client) FetchReviews(ctx context.Context, token, username, startDate, endDate string) ([]model.Review, model.Stats, error) {
	q := url.Values{}
	if startDate != "" {
		q.Set("startDate", startDate)
	}
	if endDate != "" {
		q.Set("endDate", endDate)
	}
	path := "/reviews/" + url.PathEscape(username)
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}
	var resp reviewListResp
	if err := c.doJSON(ctx, http.MethodGet, path, token, nil, &resp); err != nil {
		return nil, model.Stats{}, err
	}
	reviews := make([]model.Review, 0, len(resp.Reviews))
	for _, w := range resp.Reviews {
		reviews = append(reviews, model.Review{
			ID:       w.ReviewID,
			KakaoID:  string(w.KakaoID),
			Name:     w.Name,
			Address:  w.Address,
			Rating:   w.Rating,
			Date:     localDate(w.VisitDate),
			Menu:     w.MenuName,
			Price:    w.Price,
			Text:     w.Content,
			ImageURL: w.ImageURL,
			X:        string(w.X),
			Y:        string(w.Y),
		})
	}
	return reviews, resp.Stats, nil
}

// CreateReview writes a new review.
func (c *Client) CreateReview(ctx context.Context, token string, p CreatePayload) error {
	return c.doJSON(ctx, http.MethodPost, "/reviews", token, p, nil)
}

// UpdateReview replaces the mutable fields of an existing review.
func (c *Client) UpdateReview(ctx context.Context, token string, id int64, p UpdatePayload) error {
	return c.doJSON(ctx, http.MethodPut, "/reviews/"+strconv.FormatInt(id, 10), token, p, nil)
}

// DeleteReview removes a review.
func (c *Client) DeleteReview(ctx context.Context, token string, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/reviews/"+strconv.FormatInt(id, 10), token, nil, nil)
}

// localDate renders the backend's visit timestamp as a local calendar
// date. Timestamps that do not parse as RFC 3339 fall back to their date
// prefix so a malformed row cannot take the whole list down.
func localDate(visitDate string) string {
	if visitDate == "" {
		return ""
	}
	if t, err := time.Parse(time.RFC3339, visitDate); err == nil {
		return t.Local().Format("2006-01-02")
	}
	if len(visitDate) >= 10 {
		return visitDate[:10]
	}
	return visitDate
}

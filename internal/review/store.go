package review // package review synchronizes the user's review list with the backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/myfoodmap/webclient/internal/model"
	"github.com/myfoodmap/webclient/internal/upstream"
)

var (
	// ErrNoPlace is returned when a create submission has no selected place.
	ErrNoPlace = errors.New("select a place to review")
	// ErrConfirmationRequired is returned when a delete was not confirmed.
	ErrConfirmationRequired = errors.New("confirmation required")
)

// Gateway is the slice of the upstream client the store depends on.
type Gateway interface {
	FetchReviews(ctx context.Context, token, username, startDate, endDate string) ([]model.Review, model.Stats, error)
	CreateReview(ctx context.Context, token string, p upstream.CreatePayload) error
	UpdateReview(ctx context.Context, token string, id int64, p upstream.UpdatePayload) error
	DeleteReview(ctx context.Context, token string, id int64) error
	UploadPhoto(ctx context.Context, token, filename string, r io.Reader) (string, error)
}

// Store holds one session's review list together with the server-computed
// aggregates. List and stats are always replaced together: a fetch either
// installs both or clears both, so stale rows can never sit next to fresh
// aggregates.
type Store struct {
	mu       sync.Mutex
	gw       Gateway
	token    string
	username string
	reviews  []model.Review
	stats    model.Stats
}

// NewStore binds a store to one session's identity.
func NewStore(gw Gateway, token, username string) *Store {
	return &Store{gw: gw, token: token, username: username}
}

// Reviews returns a copy of the current list.
func (s *Store) Reviews() []model.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Review, len(s.reviews))
	copy(out, s.reviews)
	return out
}

// Stats returns the server-computed aggregates for the current filter.
func (s *Store) Stats() model.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Clear drops the list and stats, as on logout.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews = nil
	s.stats = model.Stats{}
}

// Fetch loads the user's reviews and stats for the optional inclusive date
// range. On failure it logs, fails safe to empty, and returns the error;
// it never leaves a stale list behind partial stats.
func (s *Store) Fetch(ctx context.Context, startDate, endDate string) error {
	reviews, stats, err := s.gw.FetchReviews(ctx, s.token, s.username, startDate, endDate)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		log.Printf("review fetch failed for %s: %v", s.username, err)
		s.reviews = nil
		s.stats = model.Stats{}
		return err
	}
	s.reviews = reviews
	s.stats = stats
	return nil
}

// SubmitInput carries one submission from the review form. StartDate and
// EndDate are the caller's current filter; they pass through to the
// refetch unchanged so an active filter survives the write.
type SubmitInput struct {
	Rating    int
	Date      string // visit date, "YYYY-MM-DD"
	Menu      string
	Price     string // raw user input; digits are extracted before sending
	Text      string
	ImageURL  string // already-uploaded photo to keep (edit path)
	Photo     io.Reader
	PhotoName string
	Place     *model.Place // required on the create path
	EditingID int64        // non-zero switches to the update path
	StartDate string
	EndDate   string
}

// Submit performs one create or update. When a photo is attached it is
// uploaded first and the review write is only issued if the upload
// succeeds; a failed upload aborts the whole operation so the caller can
// keep the form populated and retry. On success the list is refetched
// with the caller's filter.
func (s *Store) Submit(ctx context.Context, in SubmitInput) error {
	imageURL := in.ImageURL
	if in.Photo != nil {
		uploaded, err := s.gw.UploadPhoto(ctx, s.token, in.PhotoName, in.Photo)
		if err != nil {
			return fmt.Errorf("uploading photo: %w", err)
		}
		imageURL = uploaded
	}

	var imagePtr *string
	if imageURL != "" {
		imagePtr = &imageURL
	}

	if in.EditingID != 0 {
		err := s.gw.UpdateReview(ctx, s.token, in.EditingID, upstream.UpdatePayload{
			Rating:    in.Rating,
			Content:   in.Text,
			MenuName:  in.Menu,
			Price:     sanitizePrice(in.Price),
			VisitDate: visitTimestamp(in.Date),
			ImageURL:  imagePtr,
		})
		if err != nil {
			return err
		}
	} else {
		if in.Place == nil {
			return ErrNoPlace
		}
		err := s.gw.CreateReview(ctx, s.token, upstream.CreatePayload{
			KakaoID:   in.Place.ID,
			Name:      in.Place.Name,
			Address:   in.Place.DisplayAddress(),
			Category:  in.Place.CategoryGroup,
			X:         in.Place.X,
			Y:         in.Place.Y,
			Rating:    in.Rating,
			VisitDate: visitTimestamp(in.Date),
			Content:   in.Text,
			MenuName:  in.Menu,
			Price:     sanitizePrice(in.Price),
			ImageURL:  imagePtr,
		})
		if err != nil {
			return err
		}
	}
	return s.Fetch(ctx, in.StartDate, in.EndDate)
}

// Delete removes a review after an explicit confirmation and refetches
// with the caller's filter. Without confirmation nothing is issued.
func (s *Store) Delete(ctx context.Context, id int64, confirmed bool, startDate, endDate string) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	if err := s.gw.DeleteReview(ctx, s.token, id); err != nil {
		return err
	}
	return s.Fetch(ctx, startDate, endDate)
}

// sanitizePrice extracts the digits from a price input ("8,000원" → 8000).
// Inputs without digits become zero.
func sanitizePrice(raw string) int {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return 0
	}
	n := 0
	for _, r := range digits {
		n = n*10 + int(r-'0')
	}
	return n
}

// visitTimestamp widens a calendar date to the backend's timestamp format.
// Noon UTC keeps the date stable across the timezones the backend and the
// browser may disagree on.
func visitTimestamp(date string) string {
	return date + "T12:00:00.000Z"
}

package editor // package editor models the write/edit review form's lifecycle

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/myfoodmap/webclient/internal/model"
)

var (
	// ErrBusy guards against duplicate submissions while one is in flight.
	ErrBusy = errors.New("submission already in progress")
	// ErrRequiredFields is the blocking validation for the three mandatory inputs.
	ErrRequiredFields = errors.New("menu, price and review text are required")
	// ErrClosed rejects operations on a form that is not open.
	ErrClosed = errors.New("review form is not open")
)

// Form is the modal's state. One form serves both creation and editing:
// a non-zero editing ID switches the submission to the update path, and
// the place target is only meaningful for creation.
type Form struct {
	open      bool
	busy      bool
	editingID int64
	place     *model.Place
	placeName string

	Rating   int    `json:"rating"`
	Date     string `json:"visitDate"`
	Menu     string `json:"menu"`
	Price    string `json:"price"`
	Text     string `json:"text"`
	ImageURL string `json:"imageUrl,omitempty"` // existing photo shown as preview

	fileName string // newly attached photo, empty when none
}

// NewForm returns a closed form.
func NewForm() *Form { return &Form{} }

// OpenForCreate opens the form for a new review at the given place with
// all fields at their defaults: five stars, today's date, everything else
// empty.
func (f *Form) OpenForCreate(place model.Place, now time.Time) {
	f.reset(now)
	f.open = true
	f.place = &place
	f.placeName = place.Name
}

// OpenForEdit opens the form pre-populated from the target review. The
// existing photo becomes the preview; no file counts as newly selected.
func (f *Form) OpenForEdit(r model.Review, now time.Time) {
	f.reset(now)
	f.open = true
	f.editingID = r.ID
	f.placeName = r.Name
	f.Rating = r.Rating
	f.Date = r.Date
	f.Menu = r.Menu
	f.Price = priceText(r.Price)
	f.Text = r.Text
	f.ImageURL = r.ImageURL
}

// Apply stores the user's field values. A zero rating means the field was
// not submitted and keeps the current value, like an empty date; submitted
// ratings are clamped to the star widget's 1..5 range.
func (f *Form) Apply(rating int, date, menu, price, text string) error {
	if !f.open {
		return ErrClosed
	}
	if rating != 0 {
		if rating < 1 {
			rating = 1
		}
		if rating > 5 {
			rating = 5
		}
		f.Rating = rating
	}
	if date != "" {
		f.Date = date
	}
	f.Menu = menu
	f.Price = price
	f.Text = text
	return nil
}

// AttachFile marks a photo as newly selected for upload.
func (f *Form) AttachFile(name string) error {
	if !f.open {
		return ErrClosed
	}
	f.fileName = name
	return nil
}

// Validate blocks submission until the mandatory fields are non-empty
// after trimming.
func (f *Form) Validate() error {
	if strings.TrimSpace(f.Menu) == "" || strings.TrimSpace(f.Price) == "" || strings.TrimSpace(f.Text) == "" {
		return ErrRequiredFields
	}
	return nil
}

// Begin marks a submission in flight; a second Begin fails until Finish.
func (f *Form) Begin() error {
	if !f.open {
		return ErrClosed
	}
	if f.busy {
		return ErrBusy
	}
	f.busy = true
	return nil
}

// Finish clears the in-flight flag.
func (f *Form) Finish() { f.busy = false }

// Close fully resets all transient form and file state, whether the modal
// was cancelled or submitted.
func (f *Form) Close() { f.reset(time.Now()) }

// IsOpen reports whether the modal is showing.
func (f *Form) IsOpen() bool { return f.open }

// Busy reports an in-flight submission.
func (f *Form) Busy() bool { return f.busy }

// EditingID is non-zero when the form edits an existing review.
func (f *Form) EditingID() int64 { return f.editingID }

// Place is the creation target; nil when editing.
func (f *Form) Place() *model.Place {
	if f.place == nil {
		return nil
	}
	p := *f.place
	return &p
}

// PlaceName is the heading shown above the form.
func (f *Form) PlaceName() string { return f.placeName }

// FileName returns the newly attached photo's name, empty when none.
func (f *Form) FileName() string { return f.fileName }

func (f *Form) reset(now time.Time) {
	*f = Form{
		Rating: 5,
		Date:   now.Format("2006-01-02"),
	}
}

func priceText(price int) string {
	if price == 0 {
		return ""
	}
	return strconv.Itoa(price)
}

package editor

import (
	"errors"
	"testing"
	"time"

	"github.com/myfoodmap/webclient/internal/model"
)

var testNow = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func TestOpenForCreateDefaults(t *testing.T) {
	f := NewForm()
	f.OpenForCreate(model.Place{ID: "p1", Name: "Stew house"}, testNow)

	if !f.IsOpen() {
		t.Fatal("form should be open")
	}
	if f.Rating != 5 {
		t.Errorf("default rating = %d, want 5", f.Rating)
	}
	if f.Date != "2025-06-15" {
		t.Errorf("default date = %q, want today", f.Date)
	}
	if f.Menu != "" || f.Price != "" || f.Text != "" || f.ImageURL != "" {
		t.Errorf("text fields should start empty: %+v", f)
	}
	if f.EditingID() != 0 {
		t.Error("creation must not carry an editing id")
	}
	if p := f.Place(); p == nil || p.ID != "p1" {
		t.Errorf("creation target = %+v, want place p1", p)
	}
	if f.PlaceName() != "Stew house" {
		t.Errorf("heading = %q", f.PlaceName())
	}
}

func TestOpenForEditPrefills(t *testing.T) {
	f := NewForm()
	f.OpenForEdit(model.Review{
		ID: 42, Name: "Stew house", Rating: 3, Date: "2025-05-20",
		Menu: "Soybean stew", Price: 9500, Text: "Salty",
		ImageURL: "https://cdn.example/old.jpg",
	}, testNow)

	if f.EditingID() != 42 {
		t.Fatalf("editing id = %d, want 42", f.EditingID())
	}
	if f.Rating != 3 || f.Date != "2025-05-20" || f.Menu != "Soybean stew" || f.Price != "9500" || f.Text != "Salty" {
		t.Errorf("prefill = %+v", f)
	}
	if f.ImageURL != "https://cdn.example/old.jpg" {
		t.Errorf("existing photo should preview, got %q", f.ImageURL)
	}
	if f.FileName() != "" {
		t.Error("opening an edit must not count a file as selected")
	}
	if f.Place() != nil {
		t.Error("editing has no creation target")
	}
}

func TestApplyClampsRating(t *testing.T) {
	f := NewForm()
	f.OpenForCreate(model.Place{}, testNow)

	if err := f.Apply(-3, "", "Menu", "1000", "text"); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if f.Rating != 1 {
		t.Errorf("rating below range clamped to %d, want 1", f.Rating)
	}
	if err := f.Apply(9, "", "Menu", "1000", "text"); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if f.Rating != 5 {
		t.Errorf("rating above range clamped to %d, want 5", f.Rating)
	}
	if f.Date != "2025-06-15" {
		t.Errorf("empty date must keep the previous value, got %q", f.Date)
	}
}

func TestApplyWithoutRatingKeepsCurrent(t *testing.T) {
	f := NewForm()
	f.OpenForEdit(model.Review{ID: 42, Rating: 3, Date: "2025-05-20", Menu: "Stew", Price: 8000, Text: "x"}, testNow)

	if err := f.Apply(0, "", "Stew", "8000", "saltier"); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if f.Rating != 3 {
		t.Errorf("absent rating overwrote the prefill: %d, want 3", f.Rating)
	}

	f.Close()
	f.OpenForCreate(model.Place{Name: "Cafe"}, testNow)
	if err := f.Apply(0, "", "Latte", "5000", "good"); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if f.Rating != 5 {
		t.Errorf("absent rating overwrote the default: %d, want 5", f.Rating)
	}
}

func TestValidateRequiredFields(t *testing.T) {
	f := NewForm()
	f.OpenForCreate(model.Place{}, testNow)

	if err := f.Apply(4, "", "  ", "8000", "Great"); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if err := f.Validate(); !errors.Is(err, ErrRequiredFields) {
		t.Errorf("blank menu error = %v, want ErrRequiredFields", err)
	}

	if err := f.Apply(4, "", "Kimchi stew", "8000", "Great"); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if err := f.Validate(); err != nil {
		t.Errorf("complete form failed validation: %v", err)
	}
}

func TestBusyGuard(t *testing.T) {
	f := NewForm()
	f.OpenForCreate(model.Place{}, testNow)

	if err := f.Begin(); err != nil {
		t.Fatalf("Begin error: %v", err)
	}
	if err := f.Begin(); !errors.Is(err, ErrBusy) {
		t.Errorf("second Begin error = %v, want ErrBusy", err)
	}
	f.Finish()
	if err := f.Begin(); err != nil {
		t.Errorf("Begin after Finish error: %v", err)
	}
}

func TestClosedFormRejectsOperations(t *testing.T) {
	f := NewForm()
	if err := f.Apply(5, "", "m", "1", "t"); !errors.Is(err, ErrClosed) {
		t.Errorf("Apply on closed form = %v, want ErrClosed", err)
	}
	if err := f.AttachFile("p.jpg"); !errors.Is(err, ErrClosed) {
		t.Errorf("AttachFile on closed form = %v, want ErrClosed", err)
	}
	if err := f.Begin(); !errors.Is(err, ErrClosed) {
		t.Errorf("Begin on closed form = %v, want ErrClosed", err)
	}
}

func TestCloseResetsEverything(t *testing.T) {
	f := NewForm()
	f.OpenForEdit(model.Review{ID: 42, Menu: "Stew", Price: 8000, Text: "x"}, testNow)
	if err := f.AttachFile("new.jpg"); err != nil {
		t.Fatalf("AttachFile error: %v", err)
	}

	f.Close()
	if f.IsOpen() {
		t.Fatal("form should be closed")
	}
	if f.EditingID() != 0 || f.Menu != "" || f.FileName() != "" || f.ImageURL != "" {
		t.Errorf("close left state behind: %+v fileName=%q", f, f.FileName())
	}
}

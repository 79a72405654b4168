package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/myfoodmap/webclient/internal/app"
	"github.com/myfoodmap/webclient/internal/mapview"
	"github.com/myfoodmap/webclient/internal/middleware"
	"github.com/myfoodmap/webclient/internal/session"
)

// MapHandler serves the map surface: markers, selection and the overlay
// carousel.
type MapHandler struct {
	Sessions session.Store
	States   *app.Registry
}

type selectReq struct {
	Type     string `json:"type"` // "review" | "place"
	ReviewID int64  `json:"reviewId,omitempty"`
	PlaceID  string `json:"placeId,omitempty"`
}

type carouselReq struct {
	Dir string `json:"dir"` // "next" | "prev"
}

type composeReq struct {
	Source   string `json:"source"` // "review" | "place"
	ReviewID int64  `json:"reviewId,omitempty"`
	PlaceID  string `json:"placeId,omitempty"`
}

type editReq struct {
	ReviewID int64 `json:"reviewId"`
}

// View renders the whole map state: deduplicated markers from both marker
// classes, the viewport, and the overlay for the current selection.
func (h *MapHandler) View(c echo.Context) error {
	st := middleware.StateFrom(c)
	reviews := st.Reviews.Reviews()
	results := st.Search.Results()

	st.Lock()
	defer st.Unlock()
	return c.JSON(http.StatusOK, echo.Map{
		"markers":  mapview.BuildMarkers(reviews, results),
		"viewport": st.Map.Viewport.Snapshot(),
		"overlay":  st.Map.Overlay(reviews),
	})
}

// Select makes a marker the active selection. Selecting either variant
// clears the other.
func (h *MapHandler) Select(c echo.Context) error {
	st := middleware.StateFrom(c)
	var req selectReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	st.Lock()
	defer st.Unlock()
	switch req.Type {
	case "review":
		if err := st.Map.SelectReview(st.Reviews.Reviews(), req.ReviewID); err != nil {
			return fail(c, h.Sessions, h.States, err)
		}
	case "place":
		if err := st.Map.SelectPlace(st.Search.Results(), req.PlaceID); err != nil {
			return fail(c, h.Sessions, h.States, err)
		}
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "type must be review or place"})
	}
	return c.JSON(http.StatusOK, echo.Map{"overlay": st.Map.Overlay(st.Reviews.Reviews())})
}

// Carousel steps through the co-located reviews of the current selection,
// wrapping at both ends.
func (h *MapHandler) Carousel(c echo.Context) error {
	st := middleware.StateFrom(c)
	var req carouselReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	st.Lock()
	defer st.Unlock()
	reviews := st.Reviews.Reviews()
	switch req.Dir {
	case "next":
		st.Map.Next(reviews)
	case "prev":
		st.Map.Prev(reviews)
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "dir must be next or prev"})
	}
	return c.JSON(http.StatusOK, echo.Map{"overlay": st.Map.Overlay(reviews)})
}

// Click is a click on the base map surface: any active selection clears.
// Overlay-internal actions go through the other endpoints, so they can
// never close their own overlay this way.
func (h *MapHandler) Click(c echo.Context) error {
	st := middleware.StateFrom(c)
	st.Lock()
	st.Map.ClickMap()
	st.Unlock()
	return c.JSON(http.StatusOK, echo.Map{"overlay": nil})
}

// Compose opens the review form for a new review, either at a search
// result or for another visit to an already-reviewed place.
func (h *MapHandler) Compose(c echo.Context) error {
	st := middleware.StateFrom(c)
	var req composeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	st.Lock()
	defer st.Unlock()
	var err error
	switch req.Source {
	case "review":
		err = st.OpenComposeForReview(req.ReviewID)
	case "place":
		err = st.OpenComposeForPlace(req.PlaceID)
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "source must be review or place"})
	}
	if err != nil {
		return fail(c, h.Sessions, h.States, err)
	}
	return c.JSON(http.StatusOK, modalSnapshot(st))
}

// Edit opens the review form pre-populated from an existing review.
func (h *MapHandler) Edit(c echo.Context) error {
	st := middleware.StateFrom(c)
	var req editReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	st.Lock()
	defer st.Unlock()
	if err := st.OpenEdit(req.ReviewID); err != nil {
		return fail(c, h.Sessions, h.States, err)
	}
	return c.JSON(http.StatusOK, modalSnapshot(st))
}

// Modal returns the form's current state.
func (h *MapHandler) Modal(c echo.Context) error {
	st := middleware.StateFrom(c)
	st.Lock()
	defer st.Unlock()
	return c.JSON(http.StatusOK, modalSnapshot(st))
}

// CloseModal cancels the form, fully resetting its transient state.
func (h *MapHandler) CloseModal(c echo.Context) error {
	st := middleware.StateFrom(c)
	st.Lock()
	st.Editor.Close()
	st.Unlock()
	return c.JSON(http.StatusOK, modalSnapshot(st))
}

// modalSnapshot serializes the form for the client. Callers hold the
// state lock.
func modalSnapshot(st *app.State) echo.Map {
	f := st.Editor
	return echo.Map{
		"open":      f.IsOpen(),
		"busy":      f.Busy(),
		"editingId": f.EditingID(),
		"placeName": f.PlaceName(),
		"fileName":  f.FileName(),
		"fields":    f,
	}
}

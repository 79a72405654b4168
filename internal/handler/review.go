package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/myfoodmap/webclient/internal/app"
	"github.com/myfoodmap/webclient/internal/middleware"
	"github.com/myfoodmap/webclient/internal/review"
	"github.com/myfoodmap/webclient/internal/session"
	"github.com/myfoodmap/webclient/internal/upstream"
)

// ReviewHandler serves the review list and the write/edit/delete flow.
type ReviewHandler struct {
	Sessions session.Store
	States   *app.Registry
}

// List applies the optional date filter and fetches the user's reviews
// together with the server-computed stats. A fetch failure (other than an
// expired session) is non-fatal: the list and stats have already failed
// safe to empty, which is what gets returned.
func (h *ReviewHandler) List(c echo.Context) error {
	st := middleware.StateFrom(c)
	startDate := c.QueryParam("startDate")
	endDate := c.QueryParam("endDate")
	if !validDate(startDate) || !validDate(endDate) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "dates must be YYYY-MM-DD"})
	}

	st.Lock()
	st.SetFilter(startDate, endDate)
	st.Unlock()

	if err := st.Reviews.Fetch(c.Request().Context(), startDate, endDate); err != nil {
		if errors.Is(err, upstream.ErrSessionExpired) {
			return fail(c, h.Sessions, h.States, err)
		}
		// Fail-safe: empty list, zero stats, no user-facing error.
	}
	st.Lock()
	st.Sidebar.ClampPage(len(st.Reviews.Reviews()))
	st.Unlock()
	return c.JSON(http.StatusOK, echo.Map{
		"reviews":   st.Reviews.Reviews(),
		"stats":     st.Reviews.Stats(),
		"startDate": startDate,
		"endDate":   endDate,
	})
}

// Submit drives one pass of the review form: apply the submitted fields,
// validate, guard against a double submit, upload the photo first if one
// was attached, then create or update. The form is only cleared on
// success; any failure leaves it populated for a retry.
func (h *ReviewHandler) Submit(c echo.Context) error {
	st := middleware.StateFrom(c)

	rating, _ := strconv.Atoi(c.FormValue("rating"))
	visitDate := c.FormValue("visitDate")
	if visitDate != "" && !validDate(visitDate) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "dates must be YYYY-MM-DD"})
	}

	var file *multipart.FileHeader
	if f, err := c.FormFile("photo"); err == nil {
		file = f
	}

	st.Lock()
	if err := st.Editor.Apply(rating, visitDate, c.FormValue("menu"), c.FormValue("price"), c.FormValue("text")); err != nil {
		st.Unlock()
		return fail(c, h.Sessions, h.States, err)
	}
	if file != nil {
		_ = st.Editor.AttachFile(file.Filename)
	}
	if err := st.Editor.Validate(); err != nil {
		st.Unlock()
		return fail(c, h.Sessions, h.States, err)
	}
	if err := st.Editor.Begin(); err != nil {
		st.Unlock()
		return fail(c, h.Sessions, h.States, err)
	}
	in := review.SubmitInput{
		Rating:    st.Editor.Rating,
		Date:      st.Editor.Date,
		Menu:      st.Editor.Menu,
		Price:     st.Editor.Price,
		Text:      st.Editor.Text,
		ImageURL:  st.Editor.ImageURL,
		Place:     st.Editor.Place(),
		EditingID: st.Editor.EditingID(),
	}
	in.StartDate, in.EndDate = st.Filter()
	st.Unlock()

	if file != nil {
		src, err := file.Open()
		if err != nil {
			st.Lock()
			st.Editor.Finish()
			st.Unlock()
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not read the attached photo"})
		}
		defer src.Close()
		in.Photo = src
		in.PhotoName = file.Filename
	}

	err := st.Reviews.Submit(c.Request().Context(), in)

	st.Lock()
	st.Editor.Finish()
	if err == nil {
		st.Editor.Close()
		st.Sidebar.ClampPage(len(st.Reviews.Reviews()))
	}
	st.Unlock()

	if err != nil {
		return fail(c, h.Sessions, h.States, err)
	}
	message := "review saved"
	if in.EditingID != 0 {
		message = "review updated"
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": message,
		"reviews": st.Reviews.Reviews(),
		"stats":   st.Reviews.Stats(),
	})
}

// Delete removes a review. The interactive confirmation becomes an
// explicit confirm parameter; without it nothing is issued. The active
// date filter is preserved across the refetch.
func (h *ReviewHandler) Delete(c echo.Context) error {
	st := middleware.StateFrom(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review id"})
	}
	confirmed := c.QueryParam("confirm") == "true"

	st.Lock()
	startDate, endDate := st.Filter()
	st.Unlock()

	if err := st.Reviews.Delete(c.Request().Context(), id, confirmed, startDate, endDate); err != nil {
		return fail(c, h.Sessions, h.States, err)
	}

	st.Lock()
	if sel, ok := st.Map.Selection().Review(); ok && sel.ID == id {
		st.Map.ClickMap()
	}
	st.Sidebar.ClampPage(len(st.Reviews.Reviews()))
	st.Unlock()
	return c.JSON(http.StatusOK, echo.Map{
		"message": "review deleted",
		"reviews": st.Reviews.Reviews(),
		"stats":   st.Reviews.Stats(),
	})
}

func validDate(s string) bool {
	if s == "" {
		return true
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

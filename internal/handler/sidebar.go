package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/myfoodmap/webclient/internal/app"
	"github.com/myfoodmap/webclient/internal/middleware"
	"github.com/myfoodmap/webclient/internal/session"
	"github.com/myfoodmap/webclient/internal/sidebar"
	"github.com/myfoodmap/webclient/internal/upstream"
)

// SidebarHandler serves the review list panel: sorting, paging, the date
// filter, and selection back onto the map.
type SidebarHandler struct {
	Sessions session.Store
	States   *app.Registry
}

type sortReq struct {
	Key string `json:"key"` // "latest" | "price" | "rating"
}

type pageReq struct {
	Dir string `json:"dir"` // "next" | "prev"
}

type filterReq struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type sidebarSelectReq struct {
	ReviewID int64 `json:"reviewId"`
}

// View renders the panel: the current page of the sorted list, the
// summary line, and the paging controls' state.
func (h *SidebarHandler) View(c echo.Context) error {
	st := middleware.StateFrom(c)
	reviews := st.Reviews.Reviews()
	stats := st.Reviews.Stats()

	st.Lock()
	defer st.Unlock()
	sorted := st.Sidebar.Sorted(reviews)
	key, ascending := st.Sidebar.Sort()
	startDate, endDate := st.Filter()
	return c.JSON(http.StatusOK, echo.Map{
		"open":      st.Sidebar.IsOpen(),
		"items":     st.Sidebar.PageOf(sorted),
		"summary":   sidebar.Summarize(reviews, stats),
		"sort":      echo.Map{"key": key, "ascending": ascending},
		"page":      st.Sidebar.Page(),
		"pageCount": sidebar.PageCount(len(sorted)),
		"hasPrev":   st.Sidebar.HasPrev(),
		"hasNext":   st.Sidebar.HasNext(len(sorted)),
		"startDate": startDate,
		"endDate":   endDate,
	})
}

// Sort applies a click on a sort control.
func (h *SidebarHandler) Sort(c echo.Context) error {
	st := middleware.StateFrom(c)
	var req sortReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	key := sidebar.SortKey(req.Key)
	if key != sidebar.SortLatest && key != sidebar.SortPrice && key != sidebar.SortRating {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "key must be latest, price or rating"})
	}
	st.Lock()
	st.Sidebar.ToggleSort(key)
	st.Unlock()
	return h.View(c)
}

// Page moves one page forward or back, clamped at the boundaries.
func (h *SidebarHandler) Page(c echo.Context) error {
	st := middleware.StateFrom(c)
	var req pageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	st.Lock()
	n := len(st.Reviews.Reviews())
	switch req.Dir {
	case "next":
		st.Sidebar.NextPage(n)
	case "prev":
		st.Sidebar.PrevPage()
	default:
		st.Unlock()
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "dir must be next or prev"})
	}
	st.Unlock()
	return h.View(c)
}

// Filter installs a new date range and refetches under it. A fetch
// failure is non-fatal (the list fails safe to empty) unless the session
// has expired.
func (h *SidebarHandler) Filter(c echo.Context) error {
	st := middleware.StateFrom(c)
	var req filterReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !validDate(req.StartDate) || !validDate(req.EndDate) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "dates must be YYYY-MM-DD"})
	}

	st.Lock()
	st.SetFilter(req.StartDate, req.EndDate)
	st.Unlock()

	if err := st.Reviews.Fetch(c.Request().Context(), req.StartDate, req.EndDate); err != nil {
		if errors.Is(err, upstream.ErrSessionExpired) {
			return fail(c, h.Sessions, h.States, err)
		}
	}
	st.Lock()
	st.Sidebar.ClampPage(len(st.Reviews.Reviews()))
	st.Unlock()
	return h.View(c)
}

// Clear resets the filter together with the sort and page, then
// refetches the unfiltered list.
func (h *SidebarHandler) Clear(c echo.Context) error {
	st := middleware.StateFrom(c)
	st.Lock()
	st.ClearFilter()
	st.Unlock()

	if err := st.Reviews.Fetch(c.Request().Context(), "", ""); err != nil {
		if errors.Is(err, upstream.ErrSessionExpired) {
			return fail(c, h.Sessions, h.States, err)
		}
	}
	return h.View(c)
}

// Select highlights a review from the list on the map: pan, select,
// close the panel.
func (h *SidebarHandler) Select(c echo.Context) error {
	st := middleware.StateFrom(c)
	var req sidebarSelectReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	st.Lock()
	err := st.SelectFromSidebar(req.ReviewID)
	st.Unlock()
	if err != nil {
		return fail(c, h.Sessions, h.States, err)
	}
	st.Lock()
	defer st.Unlock()
	return c.JSON(http.StatusOK, echo.Map{
		"viewport": st.Map.Viewport.Snapshot(),
		"overlay":  st.Map.Overlay(st.Reviews.Reviews()),
	})
}

// Open and Close toggle the panel's visibility.
func (h *SidebarHandler) Open(c echo.Context) error {
	st := middleware.StateFrom(c)
	st.Lock()
	st.Sidebar.Open()
	st.Unlock()
	return h.View(c)
}

func (h *SidebarHandler) Close(c echo.Context) error {
	st := middleware.StateFrom(c)
	st.Lock()
	st.Sidebar.Close()
	st.Unlock()
	return h.View(c)
}

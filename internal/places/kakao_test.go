package places

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchKeywordScopedRequest(t *testing.T) {
	var gotAuth string
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"documents":[{
			"id":"12345","place_name":"Stew house","category_group_name":"FD6",
			"address_name":"Yeoksam-dong 1","road_address_name":"123 Teheran-ro",
			"phone":"02-123-4567","x":"127.0276","y":"37.4979",
			"place_url":"http://place.map.kakao.com/12345"
		}]}`))
	}))
	defer srv.Close()

	c := NewWithBaseURL("test-key", srv.URL)
	got, err := c.SearchKeyword(context.Background(), "kimchi stew", SearchOptions{
		X: "127.0", Y: "37.5", Radius: 10000,
	})
	if err != nil {
		t.Fatalf("SearchKeyword error: %v", err)
	}

	if gotAuth != "KakaoAK test-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotQuery["query"][0] != "kimchi stew" || gotQuery["radius"][0] != "10000" {
		t.Errorf("query params = %v", gotQuery)
	}
	if len(got) != 1 {
		t.Fatalf("got %d places", len(got))
	}
	p := got[0]
	if p.ID != "12345" || p.Name != "Stew house" || p.RoadAddress != "123 Teheran-ro" || p.CategoryGroup != "FD6" {
		t.Errorf("mapped place = %+v", p)
	}
	if p.X != "127.0276" || p.Y != "37.4979" {
		t.Errorf("coords = %q,%q", p.X, p.Y)
	}
}

func TestSearchKeywordUnscopedOmitsCoords(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"documents":[]}`))
	}))
	defer srv.Close()

	c := NewWithBaseURL("test-key", srv.URL)
	got, err := c.SearchKeyword(context.Background(), "pizza", SearchOptions{})
	if err != nil {
		t.Fatalf("SearchKeyword error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("zero hits should be an empty slice, got %v", got)
	}
	if _, ok := gotQuery["x"]; ok {
		t.Error("unscoped search must not send coordinates")
	}
	if _, ok := gotQuery["radius"]; ok {
		t.Error("unscoped search must not send a radius")
	}
}

func TestSearchKeywordAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errorType":"AccessDeniedError"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewWithBaseURL("bad-key", srv.URL)
	if _, err := c.SearchKeyword(context.Background(), "pizza", SearchOptions{}); err == nil {
		t.Fatal("expected an error for a non-200 response")
	}
}

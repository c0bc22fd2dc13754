package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRouterFirstMatchWins(t *testing.T) {
	router := NewRouter()

	var hit string
	router.Handle(http.MethodGet, "/things", MatchExact, func(w http.ResponseWriter, r *http.Request) {
		hit = "exact"
		w.WriteHeader(http.StatusOK)
	})
	router.Handle(http.MethodGet, "/things", MatchPrefix, func(w http.ResponseWriter, r *http.Request) {
		hit = "prefix"
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/things", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	if hit != "exact" {
		t.Errorf("dispatched to %q, want the first matching entry", hit)
	}
}

func TestRouterExactDoesNotMatchSubpaths(t *testing.T) {
	router := NewRouter()
	router.Handle(http.MethodGet, "/things", MatchExact, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/things/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for a subpath of an exact route", w.Code)
	}
}

func TestRouterPrefixMatchesRemainder(t *testing.T) {
	router := NewRouter()

	var gotPath string
	router.Handle(http.MethodGet, "/things/", MatchPrefix, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	})

	for _, path := range []string{"/things/", "/things/1", "/things/deep/er"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", path, w.Code)
		}
		if gotPath != path {
			t.Errorf("handler saw %q, want %q", gotPath, path)
		}
	}
}

func TestRouterMethodMustMatch(t *testing.T) {
	router := NewRouter()
	router.Handle(http.MethodGet, "/things", MatchExact, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/things", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for a method with no matching entry", w.Code)
	}
}

func TestRouterFallbackEnvelope(t *testing.T) {
	router := NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/anything", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse fallback envelope: %v", err)
	}

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status_code = %d, want 404", resp.StatusCode)
	}
	if resp.Error != "Not Found" {
		t.Errorf("error = %q, want %q", resp.Error, "Not Found")
	}
	if resp.Message != "The requested resource or endpoint was not found on this server." {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestRouterRoutesReturnsCopy(t *testing.T) {
	router := NewRouter()
	router.Handle(http.MethodGet, "/a", MatchExact, func(w http.ResponseWriter, r *http.Request) {})
	router.Handle(http.MethodGet, "/b/", MatchPrefix, func(w http.ResponseWriter, r *http.Request) {})

	routes := router.Routes()
	if len(routes) != 2 {
		t.Fatalf("Routes() returned %d entries, want 2", len(routes))
	}
	if routes[0].Pattern != "/a" || routes[1].Pattern != "/b/" {
		t.Errorf("routes out of registration order: %+v", routes)
	}

	routes[0].Pattern = "/mutated"
	if router.Routes()[0].Pattern != "/a" {
		t.Error("Routes() must return a copy of the table")
	}
}

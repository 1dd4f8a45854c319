package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decodeProblem(t *testing.T, w *httptest.ResponseRecorder) Problem {
	t.Helper()
	if ct := w.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("content-type = %q, want %q", ct, "application/problem+json")
	}
	var p Problem
	if err := json.NewDecoder(w.Body).Decode(&p); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return p
}

func TestWriteProblem(t *testing.T) {
	w := httptest.NewRecorder()

	WriteProblem(w, Problem{
		Type:     ProblemTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   "Review ID not found",
		Instance: "/api/reviews/15",
	})

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	p := decodeProblem(t, w)
	if p.Type != ProblemTypeNotFound {
		t.Errorf("type = %q, want %q", p.Type, ProblemTypeNotFound)
	}
	if p.Title != "Not Found" {
		t.Errorf("title = %q, want %q", p.Title, "Not Found")
	}
	if p.Status != 404 {
		t.Errorf("status = %d, want 404", p.Status)
	}
	if p.Detail != "Review ID not found" {
		t.Errorf("detail = %q, want %q", p.Detail, "Review ID not found")
	}
	if p.Instance != "/api/reviews/15" {
		t.Errorf("instance = %q, want %q", p.Instance, "/api/reviews/15")
	}
}

func TestProblemHelpers(t *testing.T) {
	tests := []struct {
		name       string
		write      func(w http.ResponseWriter)
		wantStatus int
		wantType   string
		wantDetail string
	}{
		{
			name:       "not found",
			write:      func(w http.ResponseWriter) { NotFound(w, "Not found", "/test") },
			wantStatus: http.StatusNotFound,
			wantType:   ProblemTypeNotFound,
			wantDetail: "Not found",
		},
		{
			name:       "bad request",
			write:      func(w http.ResponseWriter) { BadRequest(w, "Invalid query", "/test") },
			wantStatus: http.StatusBadRequest,
			wantType:   ProblemTypeBadRequest,
			wantDetail: "Invalid query",
		},
		{
			name:       "internal",
			write:      func(w http.ResponseWriter) { InternalError(w, "/test") },
			wantStatus: http.StatusInternalServerError,
			wantType:   ProblemTypeInternal,
			wantDetail: DetailInternal,
		},
		{
			name:       "rate limited",
			write:      func(w http.ResponseWriter) { RateLimited(w, "/test") },
			wantStatus: http.StatusTooManyRequests,
			wantType:   ProblemTypeRateLimited,
			wantDetail: DetailRateLimited,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.write(w)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			p := decodeProblem(t, w)
			if p.Type != tt.wantType {
				t.Errorf("type = %q, want %q", p.Type, tt.wantType)
			}
			if p.Detail != tt.wantDetail {
				t.Errorf("detail = %q, want %q", p.Detail, tt.wantDetail)
			}
			if p.Status != tt.wantStatus {
				t.Errorf("body status = %d, want %d", p.Status, tt.wantStatus)
			}
		})
	}
}

func TestWriteProblem_OmitsEmptyOptionalFields(t *testing.T) {
	w := httptest.NewRecorder()

	WriteProblem(w, Problem{
		Type:   ProblemTypeInternal,
		Title:  "Internal Server Error",
		Status: 500,
	})

	var raw map[string]any
	if err := json.NewDecoder(w.Body).Decode(&raw); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if _, ok := raw["detail"]; ok {
		t.Error("expected detail to be omitted when empty")
	}
	if _, ok := raw["instance"]; ok {
		t.Error("expected instance to be omitted when empty")
	}
}

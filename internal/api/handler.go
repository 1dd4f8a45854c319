// Package api provides the HTTP handlers for categories, users, reviews and
// comments, and maps repository and validation errors onto problem responses.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/HerbHall/boardreviews/internal/query"
	"github.com/HerbHall/boardreviews/internal/server"
	"github.com/HerbHall/boardreviews/internal/services"
)

// Handler provides HTTP handlers for the review endpoints.
type Handler struct {
	repos  *services.Repositories
	logger *zap.Logger
}

// NewHandler creates a Handler over repos.
func NewHandler(repos *services.Repositories, logger *zap.Logger) *Handler {
	return &Handler{repos: repos, logger: logger}
}

// RegisterRoutes registers every endpoint under /api on the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api", h.handleEndpoints)
	mux.HandleFunc("GET /api/categories", h.handleListCategories)
	mux.HandleFunc("GET /api/users", h.handleListUsers)
	mux.HandleFunc("GET /api/reviews", h.handleListReviews)
	mux.HandleFunc("GET /api/reviews/{review_id}", h.handleGetReview)
	mux.HandleFunc("PATCH /api/reviews/{review_id}", h.handleUpdateVotes)
	mux.HandleFunc("GET /api/reviews/{review_id}/comments", h.handleListComments)
	mux.HandleFunc("POST /api/reviews/{review_id}/comments", h.handleCreateComment)
	mux.HandleFunc("DELETE /api/comments/{comment_id}", h.handleDeleteComment)
}

// Detail messages for each error class.
const (
	detailInvalidQuery   = "Invalid query"
	detailInvalidID      = "Invalid ID type"
	detailWrongInput     = "Wrong input"
	detailInvalidInput   = "Invalid input"
	detailNotFound       = "Not found"
	detailReviewNotFound = "Review ID not found"
)

// writeError maps err onto a problem response. Anything not recognised is
// logged and reported as a generic 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	instance := r.URL.Path
	switch {
	case errors.Is(err, query.ErrInvalidQuery):
		server.BadRequest(w, detailInvalidQuery, instance)
	case errors.Is(err, query.ErrInvalidID):
		server.BadRequest(w, detailInvalidID, instance)
	case errors.Is(err, query.ErrWrongInput):
		server.BadRequest(w, detailWrongInput, instance)
	case errors.Is(err, query.ErrInvalidInput):
		server.BadRequest(w, detailInvalidInput, instance)
	case errors.Is(err, services.ErrReviewNotFound):
		server.NotFound(w, detailReviewNotFound, instance)
	case errors.Is(err, services.ErrNotFound):
		server.NotFound(w, detailNotFound, instance)
	default:
		h.logger.Error("request failed",
			zap.String("request_id", server.RequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", instance),
			zap.Error(err),
		)
		server.InternalError(w, instance)
		return
	}
	h.logger.Debug("request rejected",
		zap.String("request_id", server.RequestID(r.Context())),
		zap.String("path", instance),
		zap.Error(err),
	)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

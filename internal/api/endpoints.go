package api

import (
	"net/http"
	"strings"

	"github.com/HerbHall/boardreviews/internal/query"
)

// Endpoint describes one route for GET /api.
type Endpoint struct {
	Description string   `json:"description"`
	Queries     []string `json:"queries,omitempty"`
	Body        string   `json:"body,omitempty"`
	Status      int      `json:"status"`
}

// endpoints lists every route this package serves, keyed by "METHOD path".
func endpoints() map[string]Endpoint {
	return map[string]Endpoint{
		"GET /api": {
			Description: "serves this description of every available endpoint",
			Status:      http.StatusOK,
		},
		"GET /api/categories": {
			Description: "serves an array of all categories",
			Status:      http.StatusOK,
		},
		"GET /api/users": {
			Description: "serves an array of all users",
			Status:      http.StatusOK,
		},
		"GET /api/reviews": {
			Description: "serves an array of reviews with comment_count; sort_by accepts " +
				strings.Join(query.SortKeys(), ", ") + ", order accepts asc or desc",
			Queries: []string{"category", "sort_by", "order"},
			Status:  http.StatusOK,
		},
		"GET /api/reviews/:review_id": {
			Description: "serves one review with its comment_count",
			Status:      http.StatusOK,
		},
		"PATCH /api/reviews/:review_id": {
			Description: "adds inc_votes to the review's votes and serves the updated review",
			Body:        `{"inc_votes": 1}`,
			Status:      http.StatusOK,
		},
		"GET /api/reviews/:review_id/comments": {
			Description: "serves the review's comments, newest first",
			Status:      http.StatusOK,
		},
		"POST /api/reviews/:review_id/comments": {
			Description: "posts a comment on the review and serves it",
			Body:        `{"username": "bainesface", "body": "Ah MAZING!"}`,
			Status:      http.StatusCreated,
		},
		"DELETE /api/comments/:comment_id": {
			Description: "deletes the comment and serves no content",
			Status:      http.StatusNoContent,
		},
	}
}

// EndpointsResponse wraps the endpoint description.
type EndpointsResponse struct {
	Endpoints map[string]Endpoint `json:"endpoints"`
}

// handleEndpoints describes every available endpoint.
//
//	@Summary		Describe API
//	@Tags			system
//	@Produce		json
//	@Success		200	{object}	EndpointsResponse
//	@Router			/ [get]
func (h *Handler) handleEndpoints(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, EndpointsResponse{Endpoints: endpoints()})
}

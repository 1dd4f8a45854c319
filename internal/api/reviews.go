package api

import (
	"net/http"

	"github.com/HerbHall/boardreviews/internal/query"
	"github.com/HerbHall/boardreviews/pkg/models"
)

// CategoriesResponse wraps the category listing.
type CategoriesResponse struct {
	Categories []models.Category `json:"categories"`
}

// UsersResponse wraps the user listing.
type UsersResponse struct {
	Users []models.User `json:"users"`
}

// ReviewsResponse wraps a review listing.
type ReviewsResponse struct {
	Reviews []models.ReviewDetail `json:"reviews"`
}

// ReviewResponse wraps a single review with its comment count.
type ReviewResponse struct {
	Review models.ReviewDetail `json:"review"`
}

// UpdatedReviewResponse wraps the row returned by a vote.
type UpdatedReviewResponse struct {
	Review models.Review `json:"review"`
}

// handleListCategories returns every category.
//
//	@Summary		List categories
//	@Tags			categories
//	@Produce		json
//	@Success		200	{object}	CategoriesResponse
//	@Failure		500	{object}	server.Problem	"Internal server error"
//	@Router			/categories [get]
func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.repos.Categories.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, CategoriesResponse{Categories: cats})
}

// handleListUsers returns every user.
//
//	@Summary		List users
//	@Tags			users
//	@Produce		json
//	@Success		200	{object}	UsersResponse
//	@Failure		500	{object}	server.Problem	"Internal server error"
//	@Router			/users [get]
func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.repos.Users.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, UsersResponse{Users: users})
}

// handleListReviews returns reviews with comment counts, optionally filtered
// by category and sorted by an allow-listed column.
//
//	@Summary		List reviews
//	@Tags			reviews
//	@Produce		json
//	@Param			category	query		string	false	"Category slug"
//	@Param			sort_by		query		string	false	"Sort column"	default(created_at)
//	@Param			order		query		string	false	"asc or desc"	default(desc)
//	@Success		200			{object}	ReviewsResponse
//	@Failure		400			{object}	server.Problem	"Invalid query"
//	@Failure		404			{object}	server.Problem	"Not found"
//	@Router			/reviews [get]
func (h *Handler) handleListReviews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	plan, err := query.BuildReviewListQuery(q.Get("category"), q.Get("sort_by"), q.Get("order"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	reviews, err := h.repos.Reviews.List(r.Context(), plan)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ReviewsResponse{Reviews: reviews})
}

// handleGetReview returns one review with its comment count.
//
//	@Summary		Get review
//	@Tags			reviews
//	@Produce		json
//	@Param			review_id	path		int	true	"Review ID"
//	@Success		200			{object}	ReviewResponse
//	@Failure		400			{object}	server.Problem	"Invalid ID type"
//	@Failure		404			{object}	server.Problem	"Review ID not found"
//	@Router			/reviews/{review_id} [get]
func (h *Handler) handleGetReview(w http.ResponseWriter, r *http.Request) {
	id, err := query.ParseID(r.PathValue("review_id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	review, err := h.repos.Reviews.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ReviewResponse{Review: *review})
}

// handleUpdateVotes adds inc_votes to a review's votes.
//
//	@Summary		Vote on review
//	@Tags			reviews
//	@Accept			json
//	@Produce		json
//	@Param			review_id	path		int					true	"Review ID"
//	@Param			request		body		query.VoteRequest	true	"Vote delta"
//	@Success		200			{object}	UpdatedReviewResponse
//	@Failure		400			{object}	server.Problem	"Invalid ID type or wrong input"
//	@Failure		404			{object}	server.Problem	"Review ID not found"
//	@Router			/reviews/{review_id} [patch]
func (h *Handler) handleUpdateVotes(w http.ResponseWriter, r *http.Request) {
	id, err := query.ParseID(r.PathValue("review_id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	req, err := query.DecodeVoteRequest(r.Body)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	delta, err := query.BuildVoteDelta(req.IncVotes)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	review, err := h.repos.Reviews.UpdateVotes(r.Context(), id, delta)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, UpdatedReviewResponse{Review: *review})
}

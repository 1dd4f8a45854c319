package api

import (
	"net/http"

	"github.com/HerbHall/boardreviews/internal/query"
	"github.com/HerbHall/boardreviews/pkg/models"
)

// CommentsResponse wraps a review's comments.
type CommentsResponse struct {
	Comments []models.Comment `json:"comments"`
}

// CommentResponse wraps a created comment.
type CommentResponse struct {
	Comment models.Comment `json:"comment"`
}

// handleListComments returns a review's comments, newest first.
//
//	@Summary		List review comments
//	@Tags			comments
//	@Produce		json
//	@Param			review_id	path		int	true	"Review ID"
//	@Success		200			{object}	CommentsResponse
//	@Failure		400			{object}	server.Problem	"Invalid ID type"
//	@Failure		404			{object}	server.Problem	"Not found"
//	@Router			/reviews/{review_id}/comments [get]
func (h *Handler) handleListComments(w http.ResponseWriter, r *http.Request) {
	id, err := query.ParseID(r.PathValue("review_id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	comments, err := h.repos.Comments.ListByReview(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, CommentsResponse{Comments: comments})
}

// handleCreateComment posts a comment on a review.
//
//	@Summary		Post comment
//	@Tags			comments
//	@Accept			json
//	@Produce		json
//	@Param			review_id	path		int						true	"Review ID"
//	@Param			request		body		query.CommentRequest	true	"Comment"
//	@Success		201			{object}	CommentResponse
//	@Failure		400			{object}	server.Problem	"Invalid ID type or invalid input"
//	@Failure		404			{object}	server.Problem	"Not found"
//	@Router			/reviews/{review_id}/comments [post]
func (h *Handler) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	id, err := query.ParseID(r.PathValue("review_id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	req, err := query.DecodeCommentRequest(r.Body)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	c, err := query.BuildNewComment(req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	comment, err := h.repos.Comments.Create(r.Context(), id, c)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, CommentResponse{Comment: *comment})
}

// handleDeleteComment removes a comment.
//
//	@Summary		Delete comment
//	@Tags			comments
//	@Param			comment_id	path	int	true	"Comment ID"
//	@Success		204
//	@Failure		400	{object}	server.Problem	"Invalid ID type"
//	@Failure		404	{object}	server.Problem	"Not found"
//	@Router			/comments/{comment_id} [delete]
func (h *Handler) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := query.ParseID(r.PathValue("comment_id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.repos.Comments.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

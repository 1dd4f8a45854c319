package models

import "time"

// Comment is a user's comment on a review.
type Comment struct {
	CommentID int       `json:"comment_id"`
	ReviewID  int       `json:"review_id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	Votes     int       `json:"votes"`
	CreatedAt time.Time `json:"created_at"`
}

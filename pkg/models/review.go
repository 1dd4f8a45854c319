package models

import "time"

// Review is a single board-game review row.
type Review struct {
	ReviewID     int       `json:"review_id"`
	Title        string    `json:"title"`
	ReviewBody   string    `json:"review_body"`
	Designer     string    `json:"designer"`
	ReviewImgURL string    `json:"review_img_url"`
	Votes        int       `json:"votes"`
	Category     string    `json:"category"`
	Owner        string    `json:"owner"`
	CreatedAt    time.Time `json:"created_at"`
}

// ReviewDetail is a Review together with the number of comments left on it.
// The count is computed at read time and never stored.
type ReviewDetail struct {
	Review
	CommentCount int `json:"comment_count"`
}

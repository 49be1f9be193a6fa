package domain

import "time"

const EventNewReview = "new_review"

// ReviewEvent is published on the reviews topic after a review is committed.
type ReviewEvent struct {
	EventID   string    `json:"event_id"`
	Type      string    `json:"type"`
	ReviewID  int       `json:"review_id"`
	DishID    int       `json:"dish_id"`
	UserID    int       `json:"user_id"`
	Rating    int       `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

package domain

import (
	"math"
	"time"
)

const EventNewReview = "new_review"

// ReviewEvent mirrors the message dish-svc writes to the reviews topic.
type ReviewEvent struct {
	EventID   string    `json:"event_id"`
	Type      string    `json:"type"`
	ReviewID  int       `json:"review_id"`
	DishID    int       `json:"dish_id"`
	UserID    int       `json:"user_id"`
	Rating    int       `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

type DishRating struct {
	DishID      int     `json:"dish_id"`
	ReviewCount int64   `json:"review_count"`
	RatingSum   int64   `json:"rating_sum"`
	AvgRating   float64 `json:"avg_rating"`
}

// Average is rounded to two decimals; a dish without reviews averages 0.
func Average(sum, count int64) float64 {
	if count <= 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(count)*100) / 100
}

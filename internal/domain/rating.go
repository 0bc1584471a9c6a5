package domain

import "time"

const (
	MinScore int32 = 1
	MaxScore int32 = 5
)

// Rating is immutable once created. There is at most one rating per
// (rater, ratee, ride) triple.
type Rating struct {
	ID        int32     `json:"id"`
	RaterID   int32     `json:"rater_id"`
	RateeID   int32     `json:"ratee_id"`
	RideID    int32     `json:"ride_id"`
	Score     int32     `json:"score"`
	Comment   string    `json:"comment,omitempty"`
	CreatedOn time.Time `json:"created_on"`
}

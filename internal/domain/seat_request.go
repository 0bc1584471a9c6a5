package domain

import "time"

type SeatRequestStatus string

const (
	SeatRequestStatusPending  SeatRequestStatus = "PENDING"
	SeatRequestStatusAccepted SeatRequestStatus = "ACCEPTED"
	SeatRequestStatusDeclined SeatRequestStatus = "DECLINED"
)

// Terminal reports whether the status permits no further transitions.
func (s SeatRequestStatus) Terminal() bool {
	return s == SeatRequestStatusAccepted || s == SeatRequestStatusDeclined
}

type SeatRequest struct {
	ID        int32             `json:"id"`
	RideID    int32             `json:"ride_id"`
	MemberID  int32             `json:"member_id"`
	Member    *Member           `json:"member,omitempty"` // Populated when listing requests on a ride
	Status    SeatRequestStatus `json:"status"`
	CreatedOn time.Time         `json:"created_on"`
	UpdatedOn time.Time         `json:"updated_on"`
}

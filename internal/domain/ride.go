package domain

import "time"

type Ride struct {
	ID          int32      `json:"id"`
	OwnerID     int32      `json:"owner_id"`
	Owner       *Member    `json:"owner,omitempty"` // Populated when fetching ride details
	Origin      string     `json:"origin"`
	Destination string     `json:"destination"`
	Departure   time.Time  `json:"departure"`
	Seats       int32      `json:"seats"`
	Notes       string     `json:"notes,omitempty"`
	Active      bool       `json:"active"`
	CreatedOn   time.Time  `json:"created_on"`
	DeletedOn   *time.Time `json:"deleted_on,omitempty"`
}

// Cancelled reports whether the ride has been soft-deleted by its owner.
func (r *Ride) Cancelled() bool {
	return r.DeletedOn != nil
}

// Departed reports whether the ride's departure time has passed.
func (r *Ride) Departed(now time.Time) bool {
	return r.Departure.Before(now)
}

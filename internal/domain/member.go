package domain

import "time"

type Campus string

const (
	CampusMain  Campus = "MAIN"
	CampusNorth Campus = "NORTH"
	CampusSouth Campus = "SOUTH"
	CampusWest  Campus = "WEST"
)

// ValidCampus reports whether c is one of the known campus affiliations.
func ValidCampus(c Campus) bool {
	switch c {
	case CampusMain, CampusNorth, CampusSouth, CampusWest:
		return true
	}
	return false
}

type Member struct {
	ID           int32     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Campus       Campus    `json:"campus"`
	PasswordHash string    `json:"-"`
	CreatedOn    time.Time `json:"created_on"`
	UpdatedOn    time.Time `json:"updated_on"`
}

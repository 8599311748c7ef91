package models

// Guest represents a meeting guest stored in the google_meet_guests table
type Guest struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

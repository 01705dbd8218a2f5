package models

import "time"

// Official is an elected barangay official shown on the public roster.
type Official struct {
	ID          int64
	Name        string
	Position    string
	ContactInfo string
	CreatedAt   time.Time
}

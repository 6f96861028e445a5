package repository

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a lookup by id matches no row.
var ErrNotFound = errors.New("not found")

// Member represents a member row. SponsorID is nil for network roots.
type Member struct {
	ID        string
	SponsorID *string
	Name      string
	Email     string
	Rank      string
	Active    bool
	JoinedAt  time.Time
	Profile   map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Inquiry represents a contact-form submission.
type Inquiry struct {
	ID        string
	Name      string
	Email     string
	Subject   string
	Body      string
	CreatedAt time.Time
}

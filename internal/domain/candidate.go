package domain

import (
	"time"

	"github.com/google/uuid"
)

// Candidate is a person identified by email. The row is created on the
// first application carrying that email and reused afterwards; the fields
// captured at first submission are never overwritten.
type Candidate struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	LinkedIn  string    `json:"linkedin_profile,omitempty"`
	GitHub    string    `json:"github_profile,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusActive   JobStatus = "active"
	JobStatusInactive JobStatus = "inactive"
)

// Rubric category names. The three categories share one note scale.
const (
	CategoryScreening = "screening"
	CategoryCulture   = "culture"
	CategoryTechnical = "technical"
)

// Criterion is a named, weighted sub-factor within a rubric category.
// Weight is a percentage of the category.
type Criterion struct {
	Name   string `json:"name"`
	Weight int    `json:"weight"`
}

// NoteOption is one labeled numeric value reviewers pick from when
// scoring a criterion.
type NoteOption struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Rubric holds the weighted criteria for the three evaluation categories
// plus the shared note scale. Criterion weights within a category are
// expected to sum to 100, but that is a UI convention: a rubric whose
// weights sum to less simply yields proportionally reduced scores.
type Rubric struct {
	Screening []Criterion  `json:"screening"`
	Culture   []Criterion  `json:"culture"`
	Technical []Criterion  `json:"technical"`
	Notes     []NoteOption `json:"notes"`
}

// Category returns the criteria list for a named category, nil for an
// unknown name.
func (r Rubric) Category(name string) []Criterion {
	switch name {
	case CategoryScreening:
		return r.Screening
	case CategoryCulture:
		return r.Culture
	case CategoryTechnical:
		return r.Technical
	}
	return nil
}

type Job struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Title     string    `json:"title"`
	Status    JobStatus `json:"status"`
	Rubric    Rubric    `json:"rubric"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JobSummary is a job row annotated with its applicant count for the
// dashboard listing. Plan is only populated for admin callers.
type JobSummary struct {
	Job
	ApplicantCount int    `json:"applicant_count"`
	Plan           string `json:"plan,omitempty"`
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// CategoryScores maps a criterion name to the note value the reviewer
// selected for it. A criterion present in the rubric may be absent here:
// partially filled evaluations are valid.
type CategoryScores struct {
	Scores map[string]float64 `json:"scores"`
	Notes  string             `json:"notes,omitempty"`
}

// Evaluation is the per-application record of selected note values per
// criterion plus free-text commentary, one section per rubric category.
// It is overwritten wholesale on save (last write wins).
type Evaluation struct {
	Screening CategoryScores `json:"screening"`
	Culture   CategoryScores `json:"culture"`
	Technical CategoryScores `json:"technical"`
}

// Category returns the recorded scores for a named rubric category.
func (e Evaluation) Category(name string) CategoryScores {
	switch name {
	case CategoryScreening:
		return e.Screening
	case CategoryCulture:
		return e.Culture
	case CategoryTechnical:
		return e.Technical
	}
	return CategoryScores{}
}

// Application links one candidate to one job. FormData is the opaque
// structured payload of the remaining form answers; ResumePath is a stable
// reference into the blob store.
type Application struct {
	ID          uuid.UUID              `json:"id"`
	JobID       uuid.UUID              `json:"job_id"`
	CandidateID uuid.UUID              `json:"candidate_id"`
	ResumePath  string                 `json:"resume_path"`
	FormData    map[string]interface{} `json:"form_data"`
	Evaluation  *Evaluation            `json:"evaluation,omitempty"`
	Hired       bool                   `json:"hired"`
	CreatedAt   time.Time              `json:"created_at"`
}

package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"talentgate/internal/domain"
)

// The three external collaborators (identity, relational store, blob
// store) are consumed through these interfaces and injected into each
// service constructor.

// TokenVerifier verifies an opaque bearer credential and returns the
// verified user id.
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

// BlobStore accepts a named binary object and returns a stable reference
// usable later to produce a time-limited retrieval URL.
type BlobStore interface {
	Put(ctx context.Context, name, contentType string, data []byte) (string, error)
	SignedURL(path string, ttl time.Duration) (string, error)
}

type UserRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type TenantRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
}

type JobRepo interface {
	// CreateForTenant inserts the job atomically with the tenant's job
	// count check; limit <= 0 means unrestricted. Returns a quota error
	// when the tenant already holds limit jobs.
	CreateForTenant(ctx context.Context, job domain.Job, limit int) (*domain.Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	// GetForTenant returns the job only when it belongs to tenantID; a
	// missing row and another tenant's row are the same not-found error.
	GetForTenant(ctx context.Context, tenantID, id uuid.UUID) (*domain.Job, error)
	ListForTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.JobSummary, error)
	UpdateRubric(ctx context.Context, tenantID, id uuid.UUID, rubric domain.Rubric) (*domain.Job, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID) (int, error)
}

type CandidateRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Candidate, error)
	GetByEmail(ctx context.Context, email string) (*domain.Candidate, error)
	Create(ctx context.Context, candidate domain.Candidate) (*domain.Candidate, error)
}

// Applicant is an application joined with its candidate for listings.
type Applicant struct {
	Application domain.Application `json:"application"`
	Candidate   domain.Candidate   `json:"candidate"`
}

type ApplicationRepo interface {
	// CreateForJob inserts the application atomically with the per-job
	// count check; limit <= 0 means unrestricted.
	CreateForJob(ctx context.Context, app domain.Application, limit int) (*domain.Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	ListForJob(ctx context.Context, jobID uuid.UUID) ([]Applicant, error)
	CountForJob(ctx context.Context, jobID uuid.UUID) (int, error)
	SaveEvaluation(ctx context.Context, id uuid.UUID, eval domain.Evaluation) error
	SetHired(ctx context.Context, id uuid.UUID, hired bool) error
}

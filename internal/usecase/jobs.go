package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"talentgate/internal/domain"
)

type JobService struct {
	jobs    JobRepo
	tenants TenantRepo
	quota   *QuotaEnforcer
}

func NewJobService(jobs JobRepo, tenants TenantRepo, quota *QuotaEnforcer) *JobService {
	return &JobService{jobs: jobs, tenants: tenants, quota: quota}
}

// Create makes a new active job for the caller's tenant. The tenant's plan
// ceiling is enforced inside the insert transaction, so two concurrent
// creations cannot both slip under the limit.
func (s *JobService) Create(ctx context.Context, ident domain.Identity, title string, rubric domain.Rubric) (*domain.Job, error) {
	if strings.TrimSpace(title) == "" {
		return nil, domain.NewError(domain.CodeValidation, "job title is required", nil)
	}
	tenant, err := s.tenants.GetByID(ctx, ident.TenantID)
	if err != nil {
		return nil, err
	}
	job := domain.Job{
		ID:       uuid.New(),
		TenantID: ident.TenantID,
		Title:    title,
		Status:   domain.JobStatusActive,
		Rubric:   rubric,
	}
	return s.jobs.CreateForTenant(ctx, job, s.quota.JobLimit(tenant))
}

// List returns the caller's jobs annotated with applicant counts. Admin
// callers additionally see the tenant plan id on every row.
func (s *JobService) List(ctx context.Context, ident domain.Identity) ([]domain.JobSummary, error) {
	summaries, err := s.jobs.ListForTenant(ctx, ident.TenantID)
	if err != nil {
		return nil, err
	}
	if ident.IsAdmin {
		tenant, err := s.tenants.GetByID(ctx, ident.TenantID)
		if err != nil {
			return nil, err
		}
		for i := range summaries {
			summaries[i].Plan = tenant.Plan
		}
	}
	return summaries, nil
}

func (s *JobService) Get(ctx context.Context, ident domain.Identity, jobID uuid.UUID) (*domain.Job, error) {
	return s.jobs.GetForTenant(ctx, ident.TenantID, jobID)
}

// GetPublic returns the fields the public apply page may see.
func (s *JobService) GetPublic(ctx context.Context, jobID uuid.UUID) (*domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return &domain.Job{ID: job.ID, Title: job.Title, Status: job.Status}, nil
}

// UpdateRubric replaces the job's rubric parameters, tenant-scoped.
func (s *JobService) UpdateRubric(ctx context.Context, ident domain.Identity, jobID uuid.UUID, rubric domain.Rubric) (*domain.Job, error) {
	return s.jobs.UpdateRubric(ctx, ident.TenantID, jobID, rubric)
}

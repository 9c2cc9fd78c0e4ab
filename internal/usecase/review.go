package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"talentgate/internal/domain"
	"talentgate/internal/scoring"
)

// ReviewService covers everything an HR reviewer does with recorded
// applications: evaluations, hire decisions, applicant listings, the
// ranked shortlist, and resume access. Every operation verifies that the
// application's job belongs to the caller's tenant.
type ReviewService struct {
	jobs         JobRepo
	candidates   CandidateRepo
	applications ApplicationRepo
	blobs        BlobStore
	resumeTTL    time.Duration
}

func NewReviewService(jobs JobRepo, candidates CandidateRepo, applications ApplicationRepo, blobs BlobStore, resumeTTL time.Duration) *ReviewService {
	return &ReviewService{jobs: jobs, candidates: candidates, applications: applications, blobs: blobs, resumeTTL: resumeTTL}
}

// authorize loads the application and checks its job's tenant against the
// caller. A missing application is a merged not-found; an existing one
// owned by another tenant is forbidden, since at that point the join has
// already confirmed it exists.
func (s *ReviewService) authorize(ctx context.Context, ident domain.Identity, applicationID uuid.UUID) (*domain.Application, *domain.Job, error) {
	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, nil, err
	}
	job, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, nil, err
	}
	if job.TenantID != ident.TenantID {
		return nil, nil, domain.NewError(domain.CodeForbidden, "application belongs to another tenant", nil)
	}
	return app, job, nil
}

// SaveEvaluation overwrites the application's evaluation record wholesale.
// Last write wins; partial category maps and absent note text are valid.
func (s *ReviewService) SaveEvaluation(ctx context.Context, ident domain.Identity, applicationID uuid.UUID, eval domain.Evaluation) error {
	if _, _, err := s.authorize(ctx, ident, applicationID); err != nil {
		return err
	}
	return s.applications.SaveEvaluation(ctx, applicationID, eval)
}

// SetHired flips the hired flag. Idempotent and independent of the
// evaluation state.
func (s *ReviewService) SetHired(ctx context.Context, ident domain.Identity, applicationID uuid.UUID, hired bool) error {
	if _, _, err := s.authorize(ctx, ident, applicationID); err != nil {
		return err
	}
	return s.applications.SetHired(ctx, applicationID, hired)
}

// ApplicationDetail is the full reviewer view of one application.
type ApplicationDetail struct {
	Application domain.Application `json:"application"`
	Candidate   domain.Candidate   `json:"candidate"`
	Job         domain.Job         `json:"job"`
}

func (s *ReviewService) GetDetail(ctx context.Context, ident domain.Identity, applicationID uuid.UUID) (*ApplicationDetail, error) {
	app, job, err := s.authorize(ctx, ident, applicationID)
	if err != nil {
		return nil, err
	}
	candidate, err := s.candidates.GetByID(ctx, app.CandidateID)
	if err != nil {
		return nil, err
	}
	return &ApplicationDetail{Application: *app, Candidate: *candidate, Job: *job}, nil
}

// ListApplicants returns the applications for a job with candidate
// identity, tenant-scoped.
func (s *ReviewService) ListApplicants(ctx context.Context, ident domain.Identity, jobID uuid.UUID) ([]Applicant, error) {
	if _, err := s.jobs.GetForTenant(ctx, ident.TenantID, jobID); err != nil {
		return nil, err
	}
	return s.applications.ListForJob(ctx, jobID)
}

// RankedApplicant is one shortlist entry.
type RankedApplicant struct {
	Applicant
	scoring.ScoreCard
}

// Ranking produces the job's classification: applicants ordered by overall
// weighted score under the job's rubric.
func (s *ReviewService) Ranking(ctx context.Context, ident domain.Identity, jobID uuid.UUID) ([]RankedApplicant, error) {
	job, err := s.jobs.GetForTenant(ctx, ident.TenantID, jobID)
	if err != nil {
		return nil, err
	}
	applicants, err := s.applications.ListForJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]Applicant, len(applicants))
	apps := make([]domain.Application, 0, len(applicants))
	for _, a := range applicants {
		byID[a.Application.ID] = a
		apps = append(apps, a.Application)
	}
	ranked := scoring.Rank(apps, job.Rubric)
	out := make([]RankedApplicant, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, RankedApplicant{Applicant: byID[r.Application.ID], ScoreCard: r.ScoreCard})
	}
	return out, nil
}

// ResumeURL returns a time-limited retrieval URL for the application's
// stored resume.
func (s *ReviewService) ResumeURL(ctx context.Context, ident domain.Identity, applicationID uuid.UUID) (string, error) {
	app, _, err := s.authorize(ctx, ident, applicationID)
	if err != nil {
		return "", err
	}
	if app.ResumePath == "" {
		return "", domain.NewError(domain.CodeNotFound, "application has no resume", nil)
	}
	url, err := s.blobs.SignedURL(app.ResumePath, s.resumeTTL)
	if err != nil {
		return "", domain.NewError(domain.CodeUpstream, "could not sign resume url", err)
	}
	return url, nil
}

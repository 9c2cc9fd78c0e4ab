package usecase

import (
	"context"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"talentgate/internal/domain"
	"talentgate/internal/model"
)

var blobNameUnsafe = regexp.MustCompile(`[^a-zA-Z0-9]`)

// ResumeBlobName derives the storage name for a resume: the candidate's
// email normalized to an identifier-safe form plus the submission
// timestamp, so repeated applications by the same email never collide.
func ResumeBlobName(email, originalFilename string, at time.Time) string {
	ext := filepath.Ext(originalFilename)
	return blobNameUnsafe.ReplaceAllString(email, "_") + "_" + strconv.FormatInt(at.UnixMilli(), 10) + ext
}

// IntakeService accepts public application submissions: it stores the
// resume blob, finds or creates the candidate, and records the
// application, gated by the per-job quota.
type IntakeService struct {
	jobs         JobRepo
	candidates   CandidateRepo
	applications ApplicationRepo
	blobs        BlobStore
	quota        *QuotaEnforcer
	log          *zap.Logger
	now          func() time.Time
}

func NewIntakeService(jobs JobRepo, candidates CandidateRepo, applications ApplicationRepo, blobs BlobStore, quota *QuotaEnforcer, log *zap.Logger) *IntakeService {
	return &IntakeService{
		jobs:         jobs,
		candidates:   candidates,
		applications: applications,
		blobs:        blobs,
		quota:        quota,
		log:          log,
		now:          time.Now,
	}
}

// Resume is the uploaded file of a submission.
type Resume struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Submit records one application. On success exactly one new blob, at most
// one new candidate, and exactly one new application exist. A failure
// after the blob upload leaves the blob behind; that is accepted and
// logged as an anomaly rather than compensated.
func (s *IntakeService) Submit(ctx context.Context, jobID uuid.UUID, sub model.Submission, resume Resume) (*domain.Application, error) {
	if strings.TrimSpace(sub.Name) == "" || strings.TrimSpace(sub.Email) == "" {
		return nil, domain.NewError(domain.CodeValidation, "name and email are required", nil)
	}
	if len(resume.Data) == 0 {
		return nil, domain.NewError(domain.CodeValidation, "resume file is required", nil)
	}
	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		return nil, err
	}

	// Advisory check before touching the blob store; the insert below
	// re-enforces the ceiling transactionally.
	ok, err := s.quota.CanCreateApplication(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NewError(domain.CodeQuotaExceeded, "application limit reached for this job", nil)
	}

	blobName := ResumeBlobName(sub.Email, resume.Filename, s.now())
	resumePath, err := s.blobs.Put(ctx, blobName, resume.ContentType, resume.Data)
	if err != nil {
		return nil, domain.NewError(domain.CodeUpstream, "resume upload failed", err)
	}

	candidate, err := s.findOrCreateCandidate(ctx, sub)
	if err != nil {
		s.log.Warn("orphaned resume blob after candidate failure",
			zap.String("blob", resumePath), zap.Error(err))
		return nil, err
	}

	app := domain.Application{
		ID:          uuid.New(),
		JobID:       jobID,
		CandidateID: candidate.ID,
		ResumePath:  resumePath,
		FormData:    sub.FormData(),
	}
	created, err := s.applications.CreateForJob(ctx, app, s.quota.ApplicationLimit())
	if err != nil {
		s.log.Warn("orphaned resume blob after application failure",
			zap.String("blob", resumePath), zap.Error(err))
		return nil, err
	}
	return created, nil
}

// findOrCreateCandidate matches by exact email. First-submission fields
// win: an existing candidate is reused untouched.
func (s *IntakeService) findOrCreateCandidate(ctx context.Context, sub model.Submission) (*domain.Candidate, error) {
	existing, err := s.candidates.GetByEmail(ctx, sub.Email)
	if err == nil {
		return existing, nil
	}
	if !domain.Is(err, domain.CodeNotFound) {
		return nil, err
	}
	return s.candidates.Create(ctx, domain.Candidate{
		ID:       uuid.New(),
		Name:     sub.Name,
		Email:    sub.Email,
		Phone:    sub.Phone,
		LinkedIn: sub.LinkedIn,
		GitHub:   sub.GitHub,
	})
}

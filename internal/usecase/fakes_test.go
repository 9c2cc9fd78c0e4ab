package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"talentgate/internal/domain"
)

type fakeVerifier struct {
	id  uuid.UUID
	err error
}

func (v *fakeVerifier) Verify(token string) (uuid.UUID, error) {
	if v.err != nil {
		return uuid.Nil, v.err
	}
	return v.id, nil
}

type fakeUsers struct {
	users map[uuid.UUID]*domain.User
}

func (r *fakeUsers) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, domain.NewError(domain.CodeNotFound, "user not found", nil)
}

type fakeTenants struct {
	tenants map[uuid.UUID]*domain.Tenant
}

func (r *fakeTenants) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	if t, ok := r.tenants[id]; ok {
		return t, nil
	}
	return nil, domain.NewError(domain.CodeNotFound, "tenant not found", nil)
}

type fakeJobs struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]*domain.Job
}

func newFakeJobs() *fakeJobs {
	return &fakeJobs{jobs: map[uuid.UUID]*domain.Job{}}
}

func (r *fakeJobs) add(job domain.Job) *domain.Job {
	r.mu.Lock()
	defer r.mu.Unlock()
	j := job
	r.jobs[j.ID] = &j
	return &j
}

func (r *fakeJobs) CreateForTenant(ctx context.Context, job domain.Job, limit int) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if limit > 0 {
		count := 0
		for _, j := range r.jobs {
			if j.TenantID == job.TenantID {
				count++
			}
		}
		if count >= limit {
			return nil, domain.NewError(domain.CodeQuotaExceeded, "job limit reached for this plan", nil)
		}
	}
	j := job
	j.CreatedAt = time.Now()
	r.jobs[j.ID] = &j
	return &j, nil
}

func (r *fakeJobs) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if j, ok := r.jobs[id]; ok {
		return j, nil
	}
	return nil, domain.NewError(domain.CodeNotFound, "job not found", nil)
}

func (r *fakeJobs) GetForTenant(ctx context.Context, tenantID, id uuid.UUID) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if j, ok := r.jobs[id]; ok && j.TenantID == tenantID {
		return j, nil
	}
	return nil, domain.NewError(domain.CodeNotFound, "job not found", nil)
}

func (r *fakeJobs) ListForTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.JobSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.JobSummary{}
	for _, j := range r.jobs {
		if j.TenantID == tenantID {
			out = append(out, domain.JobSummary{Job: *j})
		}
	}
	return out, nil
}

func (r *fakeJobs) UpdateRubric(ctx context.Context, tenantID, id uuid.UUID, rubric domain.Rubric) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok || j.TenantID != tenantID {
		return nil, domain.NewError(domain.CodeNotFound, "job not found", nil)
	}
	j.Rubric = rubric
	return j, nil
}

func (r *fakeJobs) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, j := range r.jobs {
		if j.TenantID == tenantID {
			count++
		}
	}
	return count, nil
}

type fakeCandidates struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*domain.Candidate
	byEmail map[string]*domain.Candidate
}

func newFakeCandidates() *fakeCandidates {
	return &fakeCandidates{byID: map[uuid.UUID]*domain.Candidate{}, byEmail: map[string]*domain.Candidate{}}
}

func (r *fakeCandidates) GetByID(ctx context.Context, id uuid.UUID) (*domain.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.byID[id]; ok {
		return c, nil
	}
	return nil, domain.NewError(domain.CodeNotFound, "candidate not found", nil)
}

func (r *fakeCandidates) GetByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.byEmail[email]; ok {
		return c, nil
	}
	return nil, domain.NewError(domain.CodeNotFound, "candidate not found", nil)
}

func (r *fakeCandidates) Create(ctx context.Context, candidate domain.Candidate) (*domain.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := candidate
	c.CreatedAt = time.Now()
	r.byID[c.ID] = &c
	r.byEmail[c.Email] = &c
	return &c, nil
}

func (r *fakeCandidates) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

type fakeApplications struct {
	mu         sync.Mutex
	apps       map[uuid.UUID]*domain.Application
	candidates *fakeCandidates
}

func newFakeApplications(candidates *fakeCandidates) *fakeApplications {
	return &fakeApplications{apps: map[uuid.UUID]*domain.Application{}, candidates: candidates}
}

func (r *fakeApplications) CreateForJob(ctx context.Context, app domain.Application, limit int) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if limit > 0 {
		count := 0
		for _, a := range r.apps {
			if a.JobID == app.JobID {
				count++
			}
		}
		if count >= limit {
			return nil, domain.NewError(domain.CodeQuotaExceeded, "application limit reached for this job", nil)
		}
	}
	a := app
	a.CreatedAt = time.Now()
	r.apps[a.ID] = &a
	return &a, nil
}

func (r *fakeApplications) GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.apps[id]; ok {
		return a, nil
	}
	return nil, domain.NewError(domain.CodeNotFound, "application not found", nil)
}

func (r *fakeApplications) ListForJob(ctx context.Context, jobID uuid.UUID) ([]Applicant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []Applicant{}
	for _, a := range r.apps {
		if a.JobID != jobID {
			continue
		}
		entry := Applicant{Application: *a}
		if c, ok := r.candidates.byID[a.CandidateID]; ok {
			entry.Candidate = *c
		}
		out = append(out, entry)
	}
	return out, nil
}

func (r *fakeApplications) CountForJob(ctx context.Context, jobID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, a := range r.apps {
		if a.JobID == jobID {
			count++
		}
	}
	return count, nil
}

func (r *fakeApplications) SaveEvaluation(ctx context.Context, id uuid.UUID, eval domain.Evaluation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return domain.NewError(domain.CodeNotFound, "application not found", nil)
	}
	copied := eval
	a.Evaluation = &copied
	return nil
}

func (r *fakeApplications) SetHired(ctx context.Context, id uuid.UUID, hired bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return domain.NewError(domain.CodeNotFound, "application not found", nil)
	}
	a.Hired = hired
	return nil
}

type fakeBlobs struct {
	mu     sync.Mutex
	stored map[string][]byte
	putErr error
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{stored: map[string][]byte{}}
}

func (b *fakeBlobs) Put(ctx context.Context, name, contentType string, data []byte) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.putErr != nil {
		return "", b.putErr
	}
	if _, exists := b.stored[name]; exists {
		return "", errors.New("blob exists")
	}
	b.stored[name] = data
	return name, nil
}

func (b *fakeBlobs) SignedURL(path string, ttl time.Duration) (string, error) {
	return "https://blobs.test/" + path + "?signed=1", nil
}

func (b *fakeBlobs) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.stored)
}

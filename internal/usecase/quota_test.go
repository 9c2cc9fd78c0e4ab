package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"talentgate/internal/domain"
)

func quotaFixture(plan string) (*QuotaEnforcer, *fakeTenants, *fakeJobs, *fakeApplications, uuid.UUID) {
	tenantID := uuid.New()
	tenants := &fakeTenants{tenants: map[uuid.UUID]*domain.Tenant{
		tenantID: {ID: tenantID, Name: "acme", Plan: plan},
	}}
	jobs := newFakeJobs()
	applications := newFakeApplications(newFakeCandidates())
	quota := NewQuotaEnforcer(tenants, jobs, applications, QuotaLimits{FreemiumJobs: 2, ApplicationsPerJob: 3})
	return quota, tenants, jobs, applications, tenantID
}

func TestCanCreateJob_FreemiumCeiling(t *testing.T) {
	quota, _, jobs, _, tenantID := quotaFixture(domain.PlanFreemium)
	ctx := context.Background()

	steps := []struct {
		existing int
		want     bool
	}{
		{existing: 0, want: true},
		{existing: 1, want: true},
		{existing: 2, want: false},
	}
	for _, step := range steps {
		for len(jobs.jobs) < step.existing {
			jobs.add(domain.Job{ID: uuid.New(), TenantID: tenantID})
		}
		got, err := quota.CanCreateJob(ctx, tenantID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != step.want {
			t.Errorf("with %d jobs: CanCreateJob = %v, want %v", step.existing, got, step.want)
		}
	}
}

func TestCanCreateJob_PaidPlanUnrestricted(t *testing.T) {
	quota, _, jobs, _, tenantID := quotaFixture("business")
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		jobs.add(domain.Job{ID: uuid.New(), TenantID: tenantID})
	}
	got, err := quota.CanCreateJob(ctx, tenantID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Error("paid plan should be unrestricted")
	}
}

func TestCanCreateApplication_PerJobCeiling(t *testing.T) {
	quota, _, jobs, applications, tenantID := quotaFixture(domain.PlanFreemium)
	ctx := context.Background()
	job := jobs.add(domain.Job{ID: uuid.New(), TenantID: tenantID})

	for i := 0; i < 2; i++ {
		if _, err := applications.CreateForJob(ctx, domain.Application{ID: uuid.New(), JobID: job.ID}, 3); err != nil {
			t.Fatalf("seed application %d: %v", i, err)
		}
	}
	got, err := quota.CanCreateApplication(ctx, job.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Error("expected room for a third application")
	}

	if _, err := applications.CreateForJob(ctx, domain.Application{ID: uuid.New(), JobID: job.ID}, 3); err != nil {
		t.Fatalf("third application: %v", err)
	}
	got, err = quota.CanCreateApplication(ctx, job.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got {
		t.Error("ceiling of 3 reached, expected false")
	}
}

func TestJobLimit_ZeroConfigMeansUnrestricted(t *testing.T) {
	quota := NewQuotaEnforcer(nil, nil, nil, QuotaLimits{})
	if limit := quota.JobLimit(&domain.Tenant{Plan: domain.PlanFreemium}); limit != 0 {
		t.Errorf("JobLimit = %d, want 0", limit)
	}
	if limit := quota.ApplicationLimit(); limit != 0 {
		t.Errorf("ApplicationLimit = %d, want 0", limit)
	}
}

func TestJobService_CreateRejectsAtCeiling(t *testing.T) {
	quota, tenants, jobs, _, tenantID := quotaFixture(domain.PlanFreemium)
	svc := NewJobService(jobs, tenants, quota)
	ident := domain.Identity{UserID: uuid.New(), TenantID: tenantID}
	ctx := context.Background()

	rubric := domain.Rubric{Notes: []domain.NoteOption{{Label: "Low", Value: 1}}}
	for i := 0; i < 2; i++ {
		if _, err := svc.Create(ctx, ident, "Backend Engineer", rubric); err != nil {
			t.Fatalf("job %d: %v", i, err)
		}
	}

	_, err := svc.Create(ctx, ident, "One Too Many", rubric)
	if !domain.Is(err, domain.CodeQuotaExceeded) {
		t.Fatalf("got %v, want quota_exceeded", err)
	}
	if count, _ := jobs.CountForTenant(ctx, tenantID); count != 2 {
		t.Errorf("job count = %d, want 2 (no row created on rejection)", count)
	}
}

func TestJobService_CreateRequiresTitle(t *testing.T) {
	quota, tenants, jobs, _, tenantID := quotaFixture(domain.PlanFreemium)
	svc := NewJobService(jobs, tenants, quota)

	_, err := svc.Create(context.Background(), domain.Identity{TenantID: tenantID}, "   ", domain.Rubric{})
	if !domain.Is(err, domain.CodeValidation) {
		t.Errorf("got %v, want validation", err)
	}
}

func TestJobService_ListAnnotatesPlanForAdmins(t *testing.T) {
	quota, tenants, jobs, _, tenantID := quotaFixture(domain.PlanFreemium)
	svc := NewJobService(jobs, tenants, quota)
	jobs.add(domain.Job{ID: uuid.New(), TenantID: tenantID, Title: "Go Developer"})
	ctx := context.Background()

	plain, err := svc.List(ctx, domain.Identity{TenantID: tenantID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plain[0].Plan != "" {
		t.Errorf("non-admin saw plan %q", plain[0].Plan)
	}

	admin, err := svc.List(ctx, domain.Identity{TenantID: tenantID, IsAdmin: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if admin[0].Plan != domain.PlanFreemium {
		t.Errorf("admin plan = %q, want %q", admin[0].Plan, domain.PlanFreemium)
	}
}

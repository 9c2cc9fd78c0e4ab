package usecase

import (
	"context"

	"github.com/google/uuid"

	"talentgate/internal/domain"
)

// QuotaLimits holds the configured creation ceilings. Zero or negative
// values mean unrestricted.
type QuotaLimits struct {
	// FreemiumJobs caps jobs per freemium-plan tenant. Paid plans are
	// unrestricted.
	FreemiumJobs int
	// ApplicationsPerJob caps applications per job regardless of plan.
	ApplicationsPerJob int
}

// QuotaEnforcer decides whether a creation operation is permitted under
// the tenant's plan limits. The Can* checks are plain count-then-compare
// reads; the repositories enforce the same ceilings transactionally at
// insert time, so these are advisory but never admit past the limit.
type QuotaEnforcer struct {
	tenants      TenantRepo
	jobs         JobRepo
	applications ApplicationRepo
	limits       QuotaLimits
}

func NewQuotaEnforcer(tenants TenantRepo, jobs JobRepo, applications ApplicationRepo, limits QuotaLimits) *QuotaEnforcer {
	return &QuotaEnforcer{tenants: tenants, jobs: jobs, applications: applications, limits: limits}
}

// JobLimit returns the job-count ceiling for a tenant, 0 for unrestricted.
func (q *QuotaEnforcer) JobLimit(tenant *domain.Tenant) int {
	if tenant.Plan != domain.PlanFreemium {
		return 0
	}
	if q.limits.FreemiumJobs <= 0 {
		return 0
	}
	return q.limits.FreemiumJobs
}

// ApplicationLimit returns the per-job application ceiling, 0 for
// unrestricted. The limit is currently plan-independent.
func (q *QuotaEnforcer) ApplicationLimit() int {
	if q.limits.ApplicationsPerJob <= 0 {
		return 0
	}
	return q.limits.ApplicationsPerJob
}

func (q *QuotaEnforcer) CanCreateJob(ctx context.Context, tenantID uuid.UUID) (bool, error) {
	tenant, err := q.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return false, err
	}
	limit := q.JobLimit(tenant)
	if limit <= 0 {
		return true, nil
	}
	count, err := q.jobs.CountForTenant(ctx, tenantID)
	if err != nil {
		return false, err
	}
	return count < limit, nil
}

func (q *QuotaEnforcer) CanCreateApplication(ctx context.Context, jobID uuid.UUID) (bool, error) {
	limit := q.ApplicationLimit()
	if limit <= 0 {
		return true, nil
	}
	count, err := q.applications.CountForJob(ctx, jobID)
	if err != nil {
		return false, err
	}
	return count < limit, nil
}

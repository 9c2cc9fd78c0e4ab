package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"talentgate/internal/domain"
)

type JobsRepo struct {
	pool *pgxpool.Pool
}

func NewJobsRepo(pool *pgxpool.Pool) *JobsRepo {
	return &JobsRepo{pool: pool}
}

const jobColumns = `id, tenant_id, title, status, rubric, created_at, updated_at`

func scanJob(row pgx.Row) (*domain.Job, error) {
	var j domain.Job
	var rubricRaw []byte
	if err := row.Scan(&j.ID, &j.TenantID, &j.Title, &j.Status, &rubricRaw, &j.CreatedAt, &j.UpdatedAt); err != nil {
		return nil, err
	}
	if len(rubricRaw) > 0 {
		if err := json.Unmarshal(rubricRaw, &j.Rubric); err != nil {
			return nil, err
		}
	}
	return &j, nil
}

// CreateForTenant inserts a job after counting the tenant's existing jobs
// inside one transaction. The tenant row is locked first so two concurrent
// creations cannot both observe a count below the ceiling.
func (r *JobsRepo) CreateForTenant(ctx context.Context, job domain.Job, limit int) (*domain.Job, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, domain.NewError(domain.CodeUpstream, "begin job insert", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var tenantID uuid.UUID
	if err := tx.QueryRow(ctx, `SELECT id FROM tenants WHERE id = $1 FOR UPDATE`, job.TenantID).Scan(&tenantID); err != nil {
		return nil, mapGetErr(err, "tenant")
	}
	if limit > 0 {
		var count int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE tenant_id = $1`, job.TenantID).Scan(&count); err != nil {
			return nil, domain.NewError(domain.CodeUpstream, "count jobs", err)
		}
		if count >= limit {
			return nil, domain.NewError(domain.CodeQuotaExceeded, "job limit reached for this plan", nil)
		}
	}

	rubricRaw, err := json.Marshal(job.Rubric)
	if err != nil {
		return nil, err
	}
	created, err := scanJob(tx.QueryRow(ctx, `
		INSERT INTO jobs (id, tenant_id, title, status, rubric)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+jobColumns,
		job.ID, job.TenantID, job.Title, job.Status, rubricRaw))
	if err != nil {
		return nil, domain.NewError(domain.CodeUpstream, "insert job", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, domain.NewError(domain.CodeUpstream, "commit job insert", err)
	}
	return created, nil
}

func (r *JobsRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	job, err := scanJob(r.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if err != nil {
		return nil, mapGetErr(err, "job")
	}
	return job, nil
}

func (r *JobsRepo) GetForTenant(ctx context.Context, tenantID, id uuid.UUID) (*domain.Job, error) {
	job, err := scanJob(r.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1 AND tenant_id = $2`, id, tenantID))
	if err != nil {
		// absent and not-yours collapse into the same answer
		return nil, mapGetErr(err, "job")
	}
	return job, nil
}

func (r *JobsRepo) ListForTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.JobSummary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT j.id, j.tenant_id, j.title, j.status, j.rubric, j.created_at, j.updated_at,
			(SELECT COUNT(*) FROM applications a WHERE a.job_id = j.id) AS applicant_count
		FROM jobs j
		WHERE j.tenant_id = $1
		ORDER BY j.created_at DESC`, tenantID)
	if err != nil {
		return nil, domain.NewError(domain.CodeUpstream, "list jobs", err)
	}
	defer rows.Close()

	summaries := []domain.JobSummary{}
	for rows.Next() {
		var s domain.JobSummary
		var rubricRaw []byte
		if err := rows.Scan(&s.ID, &s.TenantID, &s.Title, &s.Status, &rubricRaw, &s.CreatedAt, &s.UpdatedAt, &s.ApplicantCount); err != nil {
			return nil, domain.NewError(domain.CodeUpstream, "scan job", err)
		}
		if len(rubricRaw) > 0 {
			if err := json.Unmarshal(rubricRaw, &s.Rubric); err != nil {
				return nil, domain.NewError(domain.CodeUpstream, "decode rubric", err)
			}
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewError(domain.CodeUpstream, "list jobs", err)
	}
	return summaries, nil
}

func (r *JobsRepo) UpdateRubric(ctx context.Context, tenantID, id uuid.UUID, rubric domain.Rubric) (*domain.Job, error) {
	rubricRaw, err := json.Marshal(rubric)
	if err != nil {
		return nil, err
	}
	job, err := scanJob(r.pool.QueryRow(ctx, `
		UPDATE jobs SET rubric = $1, updated_at = now()
		WHERE id = $2 AND tenant_id = $3
		RETURNING `+jobColumns,
		rubricRaw, id, tenantID))
	if err != nil {
		return nil, mapGetErr(err, "job")
	}
	return job, nil
}

func (r *JobsRepo) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE tenant_id = $1`, tenantID).Scan(&count); err != nil {
		return 0, domain.NewError(domain.CodeUpstream, "count jobs", err)
	}
	return count, nil
}

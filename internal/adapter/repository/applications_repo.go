package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"talentgate/internal/domain"
	"talentgate/internal/usecase"
)

type ApplicationsRepo struct {
	pool *pgxpool.Pool
}

func NewApplicationsRepo(pool *pgxpool.Pool) *ApplicationsRepo {
	return &ApplicationsRepo{pool: pool}
}

const applicationColumns = `id, job_id, candidate_id, resume_path, form_data, evaluation, hired, created_at`

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var a domain.Application
	var formRaw, evalRaw []byte
	if err := row.Scan(&a.ID, &a.JobID, &a.CandidateID, &a.ResumePath, &formRaw, &evalRaw, &a.Hired, &a.CreatedAt); err != nil {
		return nil, err
	}
	if len(formRaw) > 0 {
		if err := json.Unmarshal(formRaw, &a.FormData); err != nil {
			return nil, err
		}
	}
	if len(evalRaw) > 0 {
		var eval domain.Evaluation
		if err := json.Unmarshal(evalRaw, &eval); err != nil {
			return nil, err
		}
		a.Evaluation = &eval
	}
	return &a, nil
}

// CreateForJob inserts an application after counting the job's existing
// applications inside one transaction, with the job row locked. This is
// the conditional insert-if-count-below-N the quota design calls for.
func (r *ApplicationsRepo) CreateForJob(ctx context.Context, app domain.Application, limit int) (*domain.Application, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, domain.NewError(domain.CodeUpstream, "begin application insert", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var jobID uuid.UUID
	if err := tx.QueryRow(ctx, `SELECT id FROM jobs WHERE id = $1 FOR UPDATE`, app.JobID).Scan(&jobID); err != nil {
		return nil, mapGetErr(err, "job")
	}
	if limit > 0 {
		var count int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM applications WHERE job_id = $1`, app.JobID).Scan(&count); err != nil {
			return nil, domain.NewError(domain.CodeUpstream, "count applications", err)
		}
		if count >= limit {
			return nil, domain.NewError(domain.CodeQuotaExceeded, "application limit reached for this job", nil)
		}
	}

	formRaw, err := json.Marshal(app.FormData)
	if err != nil {
		return nil, err
	}
	created, err := scanApplication(tx.QueryRow(ctx, `
		INSERT INTO applications (id, job_id, candidate_id, resume_path, form_data)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+applicationColumns,
		app.ID, app.JobID, app.CandidateID, app.ResumePath, formRaw))
	if err != nil {
		return nil, domain.NewError(domain.CodeUpstream, "insert application", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, domain.NewError(domain.CodeUpstream, "commit application insert", err)
	}
	return created, nil
}

func (r *ApplicationsRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	app, err := scanApplication(r.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id))
	if err != nil {
		return nil, mapGetErr(err, "application")
	}
	return app, nil
}

func (r *ApplicationsRepo) ListForJob(ctx context.Context, jobID uuid.UUID) ([]usecase.Applicant, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.job_id, a.candidate_id, a.resume_path, a.form_data, a.evaluation, a.hired, a.created_at,
			c.id, c.name, c.email, COALESCE(c.phone, ''), COALESCE(c.linkedin_profile, ''), COALESCE(c.github_profile, ''), c.created_at
		FROM applications a
		JOIN candidates c ON c.id = a.candidate_id
		WHERE a.job_id = $1
		ORDER BY a.created_at ASC`, jobID)
	if err != nil {
		return nil, domain.NewError(domain.CodeUpstream, "list applications", err)
	}
	defer rows.Close()

	applicants := []usecase.Applicant{}
	for rows.Next() {
		var a domain.Application
		var c domain.Candidate
		var formRaw, evalRaw []byte
		if err := rows.Scan(&a.ID, &a.JobID, &a.CandidateID, &a.ResumePath, &formRaw, &evalRaw, &a.Hired, &a.CreatedAt,
			&c.ID, &c.Name, &c.Email, &c.Phone, &c.LinkedIn, &c.GitHub, &c.CreatedAt); err != nil {
			return nil, domain.NewError(domain.CodeUpstream, "scan application", err)
		}
		if len(formRaw) > 0 {
			if err := json.Unmarshal(formRaw, &a.FormData); err != nil {
				return nil, domain.NewError(domain.CodeUpstream, "decode form data", err)
			}
		}
		if len(evalRaw) > 0 {
			var eval domain.Evaluation
			if err := json.Unmarshal(evalRaw, &eval); err != nil {
				return nil, domain.NewError(domain.CodeUpstream, "decode evaluation", err)
			}
			a.Evaluation = &eval
		}
		applicants = append(applicants, usecase.Applicant{Application: a, Candidate: c})
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewError(domain.CodeUpstream, "list applications", err)
	}
	return applicants, nil
}

func (r *ApplicationsRepo) CountForJob(ctx context.Context, jobID uuid.UUID) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM applications WHERE job_id = $1`, jobID).Scan(&count); err != nil {
		return 0, domain.NewError(domain.CodeUpstream, "count applications", err)
	}
	return count, nil
}

func (r *ApplicationsRepo) SaveEvaluation(ctx context.Context, id uuid.UUID, eval domain.Evaluation) error {
	evalRaw, err := json.Marshal(eval)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `UPDATE applications SET evaluation = $1 WHERE id = $2`, evalRaw, id)
	if err != nil {
		return domain.NewError(domain.CodeUpstream, "save evaluation", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewError(domain.CodeNotFound, "application not found", nil)
	}
	return nil
}

func (r *ApplicationsRepo) SetHired(ctx context.Context, id uuid.UUID, hired bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE applications SET hired = $1 WHERE id = $2`, hired, id)
	if err != nil {
		return domain.NewError(domain.CodeUpstream, "set hired", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewError(domain.CodeNotFound, "application not found", nil)
	}
	return nil
}

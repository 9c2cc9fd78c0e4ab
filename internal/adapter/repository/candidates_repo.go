package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"talentgate/internal/domain"
)

type CandidatesRepo struct {
	pool *pgxpool.Pool
}

func NewCandidatesRepo(pool *pgxpool.Pool) *CandidatesRepo {
	return &CandidatesRepo{pool: pool}
}

const candidateColumns = `id, name, email, COALESCE(phone, ''), COALESCE(linkedin_profile, ''), COALESCE(github_profile, ''), created_at`

func scanCandidate(row pgx.Row) (*domain.Candidate, error) {
	var c domain.Candidate
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.LinkedIn, &c.GitHub, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CandidatesRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Candidate, error) {
	c, err := scanCandidate(r.pool.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id))
	if err != nil {
		return nil, mapGetErr(err, "candidate")
	}
	return c, nil
}

// GetByEmail matches the natural key exactly, case-sensitive.
func (r *CandidatesRepo) GetByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	c, err := scanCandidate(r.pool.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE email = $1`, email))
	if err != nil {
		return nil, mapGetErr(err, "candidate")
	}
	return c, nil
}

func (r *CandidatesRepo) Create(ctx context.Context, candidate domain.Candidate) (*domain.Candidate, error) {
	c, err := scanCandidate(r.pool.QueryRow(ctx, `
		INSERT INTO candidates (id, name, email, phone, linkedin_profile, github_profile)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''))
		RETURNING `+candidateColumns,
		candidate.ID, candidate.Name, candidate.Email, candidate.Phone, candidate.LinkedIn, candidate.GitHub))
	if err != nil {
		return nil, domain.NewError(domain.CodeUpstream, "insert candidate", err)
	}
	return c, nil
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"

	"talentgate/internal/domain"
)

type TenantsRepo struct {
	pool *pgxpool.Pool
}

func NewTenantsRepo(pool *pgxpool.Pool) *TenantsRepo {
	return &TenantsRepo{pool: pool}
}

func (r *TenantsRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	var t domain.Tenant
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, plan, created_at FROM tenants WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &t.Plan, &t.CreatedAt)
	if err != nil {
		return nil, mapGetErr(err, "tenant")
	}
	return &t, nil
}

// UsersRepo reads the user → tenant mapping maintained by the identity
// provider.
type UsersRepo struct {
	pool *pgxpool.Pool
}

func NewUsersRepo(pool *pgxpool.Pool) *UsersRepo {
	return &UsersRepo{pool: pool}
}

func (r *UsersRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, tenant_id, is_admin, created_at FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.TenantID, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		return nil, mapGetErr(err, "user")
	}
	return &u, nil
}

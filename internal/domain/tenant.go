package domain

import (
	"time"

	"github.com/google/uuid"
)

const PlanFreemium = "freemium"

// Tenant is the isolation boundary. Every job belongs to exactly one
// tenant and no cross-tenant read or write is permitted.
type Tenant struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Plan      string    `json:"plan"`
	CreatedAt time.Time `json:"created_at"`
}

// User is a caller identity mapped to its owning tenant. Rows are created
// out-of-band by the identity provider; this service only reads them.
type User struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// Identity is the resolved caller context attached to every tenant-scoped
// operation.
type Identity struct {
	UserID   uuid.UUID
	TenantID uuid.UUID
	IsAdmin  bool
}

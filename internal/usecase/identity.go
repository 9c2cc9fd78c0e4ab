package usecase

import (
	"context"
	"strings"

	"talentgate/internal/domain"
)

// IdentityResolver turns an opaque bearer credential into the caller's
// identity and owning tenant. Resolution precedes every tenant-scoped
// operation and has no side effects.
type IdentityResolver struct {
	verifier TokenVerifier
	users    UserRepo
}

func NewIdentityResolver(verifier TokenVerifier, users UserRepo) *IdentityResolver {
	return &IdentityResolver{verifier: verifier, users: users}
}

// Resolve accepts the raw Authorization header value, with or without the
// "Bearer " prefix.
func (r *IdentityResolver) Resolve(ctx context.Context, credential string) (domain.Identity, error) {
	token := strings.TrimSpace(credential)
	if after, ok := strings.CutPrefix(token, "Bearer "); ok {
		token = strings.TrimSpace(after)
	}
	if token == "" {
		return domain.Identity{}, domain.NewError(domain.CodeUnauthenticated, "no authorization token provided", nil)
	}
	userID, err := r.verifier.Verify(token)
	if err != nil {
		return domain.Identity{}, domain.NewError(domain.CodeUnauthenticated, "invalid authentication token", err)
	}
	user, err := r.users.GetByID(ctx, userID)
	if err != nil {
		if domain.Is(err, domain.CodeNotFound) {
			return domain.Identity{}, domain.NewError(domain.CodeProfileNotFound, "user profile not found", nil)
		}
		return domain.Identity{}, err
	}
	return domain.Identity{UserID: user.ID, TenantID: user.TenantID, IsAdmin: user.IsAdmin}, nil
}

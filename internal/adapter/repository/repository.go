// Package repository implements the relational-store collaborator on top
// of pgx. Row absence is mapped to the merged not-found error so callers
// never learn whether a foreign tenant's resource exists.
package repository

import (
	"errors"

	"github.com/jackc/pgx/v4"

	"talentgate/internal/domain"
)

func mapGetErr(err error, what string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NewError(domain.CodeNotFound, what+" not found", nil)
	}
	return domain.NewError(domain.CodeUpstream, "query "+what, err)
}

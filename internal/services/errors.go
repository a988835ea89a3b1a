package services

import (
	"errors"

	"stockroom/internal/common"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// translate maps a repository error onto the service error taxonomy.
func translate(op, resource string, id uuid.UUID, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return common.NewNotFoundError(resource, id.String())
	}
	return common.NewPersistenceError(op, err)
}

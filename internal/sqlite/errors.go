package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/rpggio/agenda/internal/repository"
)

// requireRowAffected maps a write that matched nothing to ErrNotFound.
func requireRowAffected(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for %s: %w", op, err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

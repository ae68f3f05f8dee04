package service

import (
	"database/sql"
	"errors"

	appErrors "github.com/compralista/shopping-list-platform/internal/errors"
)

// mapRepoError keeps tagged errors from lower layers intact, turns missing
// rows into not-found and everything else into a database error.
func mapRepoError(err error, notFoundMessage, databaseMessage string) error {
	if appErr, ok := appErrors.IsAppError(err); ok {
		return appErr
	}

	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.NotFoundError(notFoundMessage).WithError(err)
	}

	return appErrors.DatabaseError(databaseMessage).WithError(err)
}

package department

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	departmenterrors "hr-admin/internal/department/errors"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return departmenterrors.ErrDepartmentNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return departmenterrors.ErrDepartmentNameTaken
		}
	}

	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return departmenterrors.ErrDepartmentNameTaken
	}

	return err
}

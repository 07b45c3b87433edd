package employee

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	employeeerrors "hr-admin/internal/employee/errors"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "uq_employee_number":
				return employeeerrors.ErrEmployeeNumberAlreadyExists
			default:
				return employeeerrors.ErrEmployeeAlreadyExists
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		if strings.Contains(errMsg, "uq_employee_number") {
			return employeeerrors.ErrEmployeeNumberAlreadyExists
		}
		return employeeerrors.ErrEmployeeAlreadyExists
	}

	return err
}

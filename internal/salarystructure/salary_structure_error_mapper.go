package salarystructure

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	salarystructureerrors "hr-admin/internal/salarystructure/errors"
)

func mapStructureError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return salarystructureerrors.ErrStructureNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return salarystructureerrors.ErrStructureNameTaken
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		return salarystructureerrors.ErrStructureNameTaken
	}

	return err
}

func mapAssignmentError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return salarystructureerrors.ErrAssignmentNotFound
	}

	return err
}

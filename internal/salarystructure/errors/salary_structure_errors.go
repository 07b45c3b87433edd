package salarystructureerrors

import (
	"net/http"

	"hr-admin/internal/shared/apperror"
)

var (
	ErrStructureNotFound = apperror.New(
		apperror.CodeNotFound,
		"salary structure not found",
		http.StatusNotFound,
	)
	ErrAssignmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"salary structure assignment not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrNoActiveAssignment = apperror.New(
		apperror.CodeNotFound,
		"no valid salary structure assignment",
		http.StatusNotFound,
	)
	ErrStructureNameTaken = apperror.New(
		apperror.CodeConflict,
		"a salary structure with this name already exists",
		http.StatusConflict,
	)
	ErrStructureInUse = apperror.New(
		apperror.CodeConflict,
		"salary structure is referenced by assignments and cannot be deleted",
		http.StatusConflict,
	)
	ErrScopeConflict = apperror.New(
		apperror.CodeInvalidInput,
		"employee_id and department_id are mutually exclusive",
		http.StatusBadRequest,
	)
	ErrGlobalMustBeDefault = apperror.New(
		apperror.CodeInvalidInput,
		"an assignment without employee or department scope must be marked as default",
		http.StatusBadRequest,
	)
	ErrNegativeAmount = apperror.New(
		apperror.CodeInvalidInput,
		"salary amounts cannot be negative",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"salary amounts must be valid decimal numbers",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"expiry_date must be on or after effective_date",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid department id",
		http.StatusBadRequest,
	)
	ErrInvalidStructureID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid salary structure id",
		http.StatusBadRequest,
	)
)

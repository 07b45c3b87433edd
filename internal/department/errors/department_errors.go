package departmenterrors

import (
	"net/http"

	"hr-admin/internal/shared/apperror"
)

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"department not found",
		http.StatusNotFound,
	)
	ErrDepartmentNameTaken = apperror.New(
		apperror.CodeConflict,
		"a department with this name already exists",
		http.StatusConflict,
	)
	ErrDepartmentInUse = apperror.New(
		apperror.CodeConflict,
		"department still has employees assigned and cannot be deleted",
		http.StatusConflict,
	)
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"department id must be a valid uuid",
		http.StatusBadRequest,
	)
	ErrInvalidManagerID = apperror.New(
		apperror.CodeInvalidInput,
		"manager id must be a valid uuid",
		http.StatusBadRequest,
	)
)

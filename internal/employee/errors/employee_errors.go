package employeeerrors

import (
	"net/http"

	"hr-admin/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"department not found",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"an employee with this email already exists",
		http.StatusConflict,
	)
	ErrEmployeeNumberAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"an employee with this employee number already exists",
		http.StatusConflict,
	)
	ErrAlreadyResigned = apperror.New(
		apperror.CodeConflict,
		"employee has already resigned",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"employee id must be a valid uuid",
		http.StatusBadRequest,
	)
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"department id must be a valid uuid",
		http.StatusBadRequest,
	)
	ErrInvalidHireDate = apperror.New(
		apperror.CodeInvalidInput,
		"hire_date must use the YYYY-MM-DD format",
		http.StatusBadRequest,
	)
	ErrInvalidEmploymentStatus = apperror.New(
		apperror.CodeInvalidInput,
		"employment_status must be one of active, suspended, resigned",
		http.StatusBadRequest,
	)
)

package payrollerrors

import (
	"net/http"

	"hr-admin/internal/shared/apperror"
)

var (
	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"salary record not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrRecordExists = apperror.New(
		apperror.CodeConflict,
		"salary record already exists for this period",
		http.StatusConflict,
	)
	ErrRecordPaid = apperror.New(
		apperror.CodeConflict,
		"a paid salary record cannot be modified",
		http.StatusConflict,
	)
	ErrAlreadyPaid = apperror.New(
		apperror.CodeConflict,
		"salary record is already marked as paid",
		http.StatusConflict,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"month must be between 1 and 12 and year must be positive",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"amounts must be valid non-negative decimal numbers",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidRecordID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid salary record id",
		http.StatusBadRequest,
	)
	ErrEmptyBatch = apperror.New(
		apperror.CodeInvalidInput,
		"employee_ids must not be empty",
		http.StatusBadRequest,
	)
)

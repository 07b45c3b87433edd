package overtimeerrors

import (
	"net/http"

	"hr-admin/internal/shared/apperror"
)

var (
	ErrOvertimeNotFound = apperror.New(
		apperror.CodeNotFound,
		"overtime request not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"only pending overtime requests can be approved or rejected",
		http.StatusBadRequest,
	)
	ErrOvertimeNotEditable = apperror.New(
		apperror.CodeInvalidState,
		"only pending overtime requests can be modified or deleted",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"employee id must be a valid uuid",
		http.StatusBadRequest,
	)
	ErrInvalidOvertimeID = apperror.New(
		apperror.CodeInvalidInput,
		"overtime id must be a valid uuid",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"approver id must be a valid uuid",
		http.StatusBadRequest,
	)
	ErrInvalidTimeFormat = apperror.New(
		apperror.CodeInvalidInput,
		"times must use the YYYY-MM-DD HH:MM:SS format",
		http.StatusBadRequest,
	)
	ErrInvalidTimeRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_time must be before end_time",
		http.StatusBadRequest,
	)
)

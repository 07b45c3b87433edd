package leaveerrors

import (
	"net/http"

	"hr-admin/internal/shared/apperror"
)

var (
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"a leave request already exists in an overlapping period",
		http.StatusConflict,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"only pending leave requests can be approved, rejected or cancelled",
		http.StatusBadRequest,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"rejection_reason is required when rejecting a leave request",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"leave_type must be one of annual, sick, personal, unpaid",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"employee id must be a valid uuid",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"leave id must be a valid uuid",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"approver id must be a valid uuid",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"dates must use the YYYY-MM-DD format",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal to end_date",
		http.StatusBadRequest,
	)
)

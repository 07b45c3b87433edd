package attendanceerrors

import (
	"net/http"

	"hr-admin/internal/shared/apperror"
)

var (
	ErrRuleNotFound = apperror.New(
		apperror.CodeNotFound,
		"attendance rule not found",
		http.StatusNotFound,
	)
	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"attendance record not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrNoApplicableRule = apperror.New(
		apperror.CodeNotFound,
		"no applicable attendance rule",
		http.StatusNotFound,
	)
	ErrRuleConflict = apperror.New(
		apperror.CodeConflict,
		"a department rule with an overlapping validity window already exists",
		http.StatusConflict,
	)
	ErrDefaultRuleDelete = apperror.New(
		apperror.CodeConflict,
		"the default attendance rule cannot be deleted",
		http.StatusConflict,
	)
	ErrDuplicateRecord = apperror.New(
		apperror.CodeConflict,
		"an attendance record already exists for this employee and date",
		http.StatusConflict,
	)
	ErrAlreadyCheckedIn = apperror.New(
		apperror.CodeConflict,
		"employee has already checked in today",
		http.StatusConflict,
	)
	ErrNotCheckedIn = apperror.New(
		apperror.CodeConflict,
		"employee has not checked in today",
		http.StatusConflict,
	)
	ErrInvalidClockFormat = apperror.New(
		apperror.CodeInvalidInput,
		"work times must use the HH:MM format",
		http.StatusBadRequest,
	)
	ErrInvalidRuleType = apperror.New(
		apperror.CodeInvalidInput,
		"rule_type must be regular, special or temporary",
		http.StatusBadRequest,
	)
	ErrInvalidThreshold = apperror.New(
		apperror.CodeInvalidInput,
		"thresholds must be non-negative minutes",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"effective_end_date must be on or after effective_start_date",
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
	ErrInvalidRuleID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid attendance rule id",
		http.StatusBadRequest,
	)
)

package leaveerrors

import (
	"net/http"

	"go-leaveco/internal/shared/apperror"
)

var (
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrInvalidRequestID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave request id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrNoWorkingDays = apperror.New(
		apperror.CodeInvalidInput,
		"range contains no working days to take leave on",
		http.StatusBadRequest,
	)
	ErrHalfDayNotChangeOff = apperror.New(
		apperror.CodeInvalidInput,
		"half day is only available for change off leave",
		http.StatusBadRequest,
	)
	ErrRejectReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"a reason is required when rejecting a leave request",
		http.StatusBadRequest,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"leave request is not in a state that allows this action",
		http.StatusConflict,
	)
	ErrNotDirectReport = apperror.New(
		apperror.CodeForbidden,
		"leave request does not belong to one of your direct reports",
		http.StatusForbidden,
	)
)

package changeofferrors

import (
	"net/http"

	"go-leaveco/internal/shared/apperror"
)

var (
	ErrClaimNotFound = apperror.New(
		apperror.CodeNotFound,
		"change off claim not found",
		http.StatusNotFound,
	)
	ErrInvalidClaimID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid claim id",
		http.StatusBadRequest,
	)
	ErrZeroValueClaim = apperror.New(
		apperror.CodeInvalidInput,
		"claim yields no change off value and cannot be submitted",
		http.StatusBadRequest,
	)
	ErrInvalidTimeFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid time format, expected HH:MM",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"end date must not be before start date",
		http.StatusBadRequest,
	)
	ErrRejectReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"a reason is required when rejecting a claim",
		http.StatusBadRequest,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"claim is not in a state that allows this action",
		http.StatusConflict,
	)
	ErrNotDirectReport = apperror.New(
		apperror.CodeForbidden,
		"claim does not belong to one of your direct reports",
		http.StatusForbidden,
	)
)

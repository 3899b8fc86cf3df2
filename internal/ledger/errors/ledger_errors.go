package ledgererrors

import (
	"net/http"

	"go-leaveco/internal/shared/apperror"
)

var (
	ErrBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave balance not found",
		http.StatusNotFound,
	)
	ErrNegativeAmount = apperror.New(
		apperror.CodeInvalidInput,
		"amount must be greater than zero",
		http.StatusBadRequest,
	)
	ErrInvalidGranularity = apperror.New(
		apperror.CodeInvalidInput,
		"change off amount must be a multiple of 0.5",
		http.StatusBadRequest,
	)
	ErrInsufficientLeaveBalance = apperror.New(
		apperror.CodeInsufficientBalance,
		"insufficient leave balance",
		http.StatusConflict,
	)
	ErrInsufficientChangeOff = apperror.New(
		apperror.CodeInsufficientBalance,
		"insufficient change off balance",
		http.StatusConflict,
	)
	ErrSickNoDocLimitExceeded = apperror.New(
		apperror.CodeInsufficientBalance,
		"sick (no doc) annual limit of 6 days exceeded",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
)

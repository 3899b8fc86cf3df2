package schedulererrors

import (
	"net/http"

	"go-leaveco/internal/shared/apperror"
)

var (
	// ErrDuplicateExecution signals the expected-skip condition: the period
	// already has an execution row. Never surfaced to clients on automatic
	// runs; only the manual trigger reports it.
	ErrDuplicateExecution = apperror.New(
		apperror.CodeDuplicateJobExecution,
		"job already executed for this period",
		http.StatusConflict,
	)
	ErrAcknowledgmentRequired = apperror.New(
		apperror.CodeInvalidInput,
		"manual rollover requires the ROLLOVER acknowledgment",
		http.StatusBadRequest,
	)
)

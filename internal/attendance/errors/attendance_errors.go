package attendanceerrors

import (
	"net/http"

	"go-personnel/internal/shared/apperror"
)

var (
	ErrInvalidPersonnelID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid personnel id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"begin_date must not be after end_date",
		http.StatusBadRequest,
	)
	ErrReversedInterval = apperror.New(
		apperror.CodeInvalidState,
		"exit time must not precede entry time",
		http.StatusBadRequest,
	)
)

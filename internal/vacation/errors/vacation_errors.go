package vacationerrors

import (
	"net/http"

	"go-personnel/internal/shared/apperror"
)

var (
	ErrVacationNotFound = apperror.New(
		apperror.CodeNotFound,
		"vacation not found",
		http.StatusNotFound,
	)
	ErrInvalidVacationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid vacation id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
)

package personnelerrors

import (
	"net/http"

	"go-personnel/internal/shared/apperror"
)

var (
	ErrPersonnelNotFound = apperror.New(
		apperror.CodeNotFound,
		"personnel not found",
		http.StatusNotFound,
	)
	ErrInvalidPersonnelID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid personnel id",
		http.StatusBadRequest,
	)
	ErrUserNameTaken = apperror.New(
		apperror.CodeConflict,
		"user name is already taken",
		http.StatusConflict,
	)
	ErrEmptyPassword = apperror.New(
		apperror.CodeInvalidInput,
		"password must not be empty",
		http.StatusBadRequest,
	)
)

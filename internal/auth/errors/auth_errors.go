package autherrors

import (
	"net/http"

	"go-personnel/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"user not found",
		http.StatusNotFound,
	)
	ErrInvalidPassword = apperror.New(
		apperror.CodeUnauthorized,
		"invalid password",
		http.StatusUnauthorized,
	)
	ErrUserNotActive = apperror.New(
		apperror.CodeForbidden,
		"user is not active",
		http.StatusForbidden,
	)
	ErrOnVacation = apperror.New(
		apperror.CodeForbidden,
		"you are currently on vacation, access denied",
		http.StatusForbidden,
	)
	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"invalid token",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		apperror.CodeUnauthorized,
		"token expired",
		http.StatusUnauthorized,
	)
	ErrInvalidRefreshToken = apperror.New(
		apperror.CodeUnauthorized,
		"invalid refresh token",
		http.StatusUnauthorized,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"token generation failed",
		http.StatusInternalServerError,
	)
)

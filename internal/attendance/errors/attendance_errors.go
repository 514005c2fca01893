package attendanceerrors

import (
	"go-attendance/internal/shared/apperror"
	"net/http"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)

	ErrInvalidSwipeType = apperror.New(
		apperror.CodeInvalidInput,
		"Swipe type must be IN or OUT",
		http.StatusBadRequest,
	)

	ErrExportFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to build attendance export",
		http.StatusInternalServerError,
	)
)

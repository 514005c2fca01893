package usererrors

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

	ErrManagerNotFound = apperror.New(
		apperror.CodeNotFound,
		"Manager not found",
		http.StatusNotFound,
	)

	ErrUserAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"User with the same email already exists",
		http.StatusConflict,
	)

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)

	ErrMissingRequiredFields = apperror.New(
		apperror.CodeInvalidInput,
		"Email and role are required",
		http.StatusBadRequest,
	)

	ErrManagerRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Employees must be registered with a manager",
		http.StatusBadRequest,
	)

	ErrInvalidManager = apperror.New(
		apperror.CodeInvalidInput,
		"Manager must be an existing user with role MANAGER",
		http.StatusBadRequest,
	)
)

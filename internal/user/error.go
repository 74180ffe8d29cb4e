package user

import "localbite-be/internal/apperror"

var (
	ErrUserNotFound   = apperror.New(apperror.KindNotFound, "user not found")
	ErrEmailExists    = apperror.New(apperror.KindConflict, "email already registered")
	ErrInvalidEmail   = apperror.Validation("email is invalid")
	ErrNothingToApply = apperror.Validation("no fields to update")
	ErrAdminOnly      = apperror.New(apperror.KindPermissionDenied, "admin only")
	ErrUnauthorized   = apperror.New(apperror.KindUnauthenticated, "authentication required")
)

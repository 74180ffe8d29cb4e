package report

import "localbite-be/internal/apperror"

var (
	ErrReportNotFound  = apperror.New(apperror.KindNotFound, "Report not found")
	ErrReportClosed    = apperror.New(apperror.KindInvalidState, "Report is already closed")
	ErrInvalidTarget   = apperror.Validation("targetType must be one of meal, review, user")
	ErrMissingTarget   = apperror.Validation("targetId is required")
	ErrInvalidCategory = apperror.Validation("invalid report category")
	ErrInvalidAction   = apperror.Validation("invalid actionTaken")
	ErrActionMismatch  = apperror.Validation("actionTaken does not apply to the reported target")
	ErrUnauthorized    = apperror.New(apperror.KindUnauthenticated, "Authentication required")
	ErrAdminOnly       = apperror.New(apperror.KindPermissionDenied, "Admin access required")
	ErrNotReporter     = apperror.New(apperror.KindPermissionDenied, "You can only view your own reports")
)

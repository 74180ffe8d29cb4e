package review

import "localbite-be/internal/apperror"

var (
	ErrReviewNotFound    = apperror.New(apperror.KindNotFound, "Review not found")
	ErrMissingOrder      = apperror.Validation("orderId is required")
	ErrInvalidRating     = apperror.Validation("rating must be an integer from 1 to 5")
	ErrNothingToApply    = apperror.Validation("no fields to update")
	ErrUnauthorized      = apperror.New(apperror.KindUnauthenticated, "authentication required")
	ErrNotOrderFoodie    = apperror.New(apperror.KindPermissionDenied, "You can only review your own orders")
	ErrNotReviewer       = apperror.New(apperror.KindPermissionDenied, "You can only change your own reviews")
	ErrAdminOnly         = apperror.New(apperror.KindPermissionDenied, "admin only")
	ErrOrderNotCompleted = apperror.New(apperror.KindInvalidState, "Order must be completed before reviewing")
	ErrAlreadyReviewed   = apperror.New(apperror.KindInvalidState, "Review already submitted for this order")
	ErrDuplicateReview   = apperror.New(apperror.KindConflict, "Review already exists for this order")
)

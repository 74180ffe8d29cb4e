package order

import "localbite-be/internal/apperror"

var (
	ErrOrderNotFound     = apperror.New(apperror.KindNotFound, "Order not found")
	ErrInvalidTransition = apperror.New(apperror.KindInvalidState, "order cannot make this transition in its current state")
	ErrNotConfirmable    = apperror.New(apperror.KindInvalidState, "Order cannot be confirmed now")
	ErrNotCancellable    = apperror.New(apperror.KindInvalidState, "Order cannot be cancelled")
	ErrNotCompletable    = apperror.New(apperror.KindInvalidState, "Only confirmed orders can be completed")
	ErrNotExpirable      = apperror.New(apperror.KindInvalidState, "Order is no longer awaiting confirmation")

	ErrMealUnavailable        = apperror.New(apperror.KindInvalidState, "Meal is not available")
	ErrNotEnoughPortions      = apperror.New(apperror.KindInvalidState, "Not enough portions available")
	ErrFulfillmentUnsupported = apperror.New(apperror.KindInvalidState, "Meal does not offer this fulfillment type")

	ErrMissingMeal        = apperror.Validation("mealId is required")
	ErrInvalidFulfillment = apperror.Validation("fulfillmentType must be pickup or delivery")
	ErrInvalidQuantity    = apperror.Validation("quantity must be at least 1")
	ErrUnauthorized       = apperror.New(apperror.KindUnauthenticated, "authentication required")
	ErrOwnMeal            = apperror.New(apperror.KindPermissionDenied, "cooks cannot order their own meals")
	ErrNotParty           = apperror.New(apperror.KindPermissionDenied, "only the order's cook or foodie can do this")
	ErrWrongParty         = apperror.New(apperror.KindPermissionDenied, "this action belongs to the other party")
	ErrAdminOnly          = apperror.New(apperror.KindPermissionDenied, "admin only")
	ErrAlreadyReviewed    = apperror.New(apperror.KindConflict, "order has already been reviewed")
	ErrCodeTaken          = apperror.New(apperror.KindConflict, "order code already in use")
	ErrProfileMissing     = apperror.New(apperror.KindNotFound, "User profile not found")
)

package meal

import "localbite-be/internal/apperror"

var (
	ErrMealNotFound     = apperror.New(apperror.KindNotFound, "Meal not found")
	ErrNotOwner         = apperror.New(apperror.KindPermissionDenied, "only the meal's cook can do this")
	ErrCookOnly         = apperror.New(apperror.KindPermissionDenied, "only cooks can list meals")
	ErrAdminOnly        = apperror.New(apperror.KindPermissionDenied, "admin only")
	ErrUnauthorized     = apperror.New(apperror.KindUnauthenticated, "authentication required")
	ErrInvalidPrice     = apperror.Validation("price must be zero or greater")
	ErrInvalidDietType  = apperror.Validation("dietType must be one of veg, non_veg, vegan, halal, other")
	ErrInvalidStatus    = apperror.Validation("availabilityStatus must be one of available, sold_out, paused")
	ErrInvalidPortions  = apperror.Validation("availablePortions must be zero or greater")
	ErrInvalidReadyTime = apperror.Validation("readyInMinutes must be zero or greater")
	ErrNoFulfillment    = apperror.Validation("meal must offer pickup or delivery")
	ErrNothingToApply   = apperror.Validation("no fields to update")
)

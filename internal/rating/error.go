package rating

import "localbite-be/internal/apperror"

var (
	ErrCookNotFound = apperror.New(apperror.KindNotFound, "cook not found")
	ErrMealNotFound = apperror.New(apperror.KindNotFound, "meal not found")
)

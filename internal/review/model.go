package review

import (
	"time"

	"github.com/google/uuid"
)

type UserRef struct {
	ID       uuid.UUID
	FullName string
	Avatar   string
}

type MealRef struct {
	ID            uuid.UUID
	Name          string
	CoverPhotoURL string
}

type Review struct {
	ID           uuid.UUID
	OrderID      uuid.UUID
	MealID       uuid.UUID
	CookID       uuid.UUID
	FoodieID     uuid.UUID
	Rating       int
	Comment      string
	IsHidden     bool
	HiddenReason string
	HiddenBy     *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// populated on read
	Foodie *UserRef
	Cook   *UserRef
	Meal   *MealRef
}

type SubmitInput struct {
	OrderID uuid.UUID
	Rating  int
	Comment string
}

type UpdateInput struct {
	Rating  *int
	Comment *string
}

type ListFilter struct {
	MealID *uuid.UUID
	CookID *uuid.UUID
}

const (
	minRating = 1
	maxRating = 5

	maxCommentLength = 1200
	maxReasonLength  = 400
)

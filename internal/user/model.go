package user

import (
	"time"

	"localbite-be/internal/auth"
	"localbite-be/internal/rating"

	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID
	UID           string
	FullName      string
	Email         string
	Role          auth.Role
	Avatar        string
	LocationLabel string
	IsVerified    bool
	// CookRating is maintained by the rating aggregator only.
	CookRating rating.Summary
	IsDeleted  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Summary is the public slice of a user embedded in orders and reviews.
type Summary struct {
	ID         uuid.UUID
	FullName   string
	Avatar     string
	IsVerified bool
}

type UpsertInput struct {
	UID           string
	FullName      string
	Email         string
	Avatar        string
	LocationLabel string
}

type UpdateProfileParams struct {
	FullName      *string
	LocationLabel *string
	Avatar        *string
}

const (
	maxFullNameLength = 100
	maxLocationLength = 120
	maxAvatarLength   = 500
)

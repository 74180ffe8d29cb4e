package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusRequested       Status = "requested"
	StatusCookConfirmed   Status = "cook_confirmed"
	StatusFoodieConfirmed Status = "foodie_confirmed"
	StatusConfirmed       Status = "confirmed"
	StatusCookCancelled   Status = "cook_cancelled"
	StatusFoodieCancelled Status = "foodie_cancelled"
	StatusExpired         Status = "expired"
	StatusCompleted       Status = "completed"
)

var AllStatuses = []Status{
	StatusRequested,
	StatusCookConfirmed,
	StatusFoodieConfirmed,
	StatusConfirmed,
	StatusCookCancelled,
	StatusFoodieCancelled,
	StatusExpired,
	StatusCompleted,
}

// Terminal reports whether no further transition may leave s.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusCookCancelled, StatusFoodieCancelled, StatusExpired:
		return true
	}
	return false
}

// AwaitingConfirmation reports whether at least one party has yet to confirm.
func (s Status) AwaitingConfirmation() bool {
	switch s {
	case StatusRequested, StatusCookConfirmed, StatusFoodieConfirmed:
		return true
	}
	return false
}

type DecisionState string

const (
	DecisionPending   DecisionState = "pending"
	DecisionConfirmed DecisionState = "confirmed"
	DecisionCancelled DecisionState = "cancelled"
)

type Party string

const (
	PartyCook   Party = "cook"
	PartyFoodie Party = "foodie"
	PartySystem Party = "system"
)

type FulfillmentType string

const (
	FulfillmentPickup   FulfillmentType = "pickup"
	FulfillmentDelivery FulfillmentType = "delivery"
)

func (f FulfillmentType) Valid() bool {
	return f == FulfillmentPickup || f == FulfillmentDelivery
}

type Decision struct {
	State     DecisionState
	DecidedAt *time.Time
	Note      string
}

type CancelInfo struct {
	CancelledBy Party
	Reason      string
}

// MealSnapshot freezes the meal as it was when the order was placed.
type MealSnapshot struct {
	Name          string
	UnitLabel     string
	Price         decimal.Decimal
	Currency      string
	CoverPhotoURL string
}

type PickupDetails struct {
	PickupTime *time.Time
	PickupNote string
}

type DeliveryDetails struct {
	AddressLabel string
	AddressText  string
	DeliveryNote string
}

type MealRef struct {
	ID            uuid.UUID
	Name          string
	CoverPhotoURL string
}

type UserRef struct {
	ID         uuid.UUID
	FullName   string
	IsVerified bool
}

type Order struct {
	ID              uuid.UUID
	Code            string
	MealID          uuid.UUID
	CookID          uuid.UUID
	FoodieID        uuid.UUID
	MealSnapshot    MealSnapshot
	Quantity        int
	FulfillmentType FulfillmentType
	Pickup          *PickupDetails
	Delivery        *DeliveryDetails

	Status         Status
	CookDecision   Decision
	FoodieDecision Decision
	RequestedAt    time.Time
	ConfirmedAt    *time.Time
	CompletedAt    *time.Time
	CancelledAt    *time.Time
	CancelInfo     *CancelInfo
	HasReview      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// populated on read
	Meal   *MealRef
	Cook   *UserRef
	Foodie *UserRef
}

// PartyOf returns the side uid plays on the order, if any.
func (o *Order) PartyOf(uid uuid.UUID) (Party, bool) {
	switch uid {
	case o.CookID:
		return PartyCook, true
	case o.FoodieID:
		return PartyFoodie, true
	}
	return "", false
}

type CreateInput struct {
	MealID          uuid.UUID
	Quantity        int
	FulfillmentType FulfillmentType
	Pickup          *PickupDetails
	Delivery        *DeliveryDetails
}

type ListFilter struct {
	FoodieID *uuid.UUID
	CookID   *uuid.UUID
}

const (
	listLimit   = 200
	expiryBatch = 500

	maxNoteLength         = 300
	maxAddressLabelLength = 160
	maxAddressTextLength  = 500
	maxReasonLength       = 400

	expiredReason = "Order expired"
)

package mapper

import (
	"time"

	"github.com/shopspring/decimal"
)

type RatingDTO struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type UserDTO struct {
	ID            string    `json:"id"`
	UID           string    `json:"uid"`
	FullName      string    `json:"fullName"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	Avatar        string    `json:"avatar"`
	LocationLabel string    `json:"locationLabel"`
	IsVerified    bool      `json:"isVerified"`
	CookRating    RatingDTO `json:"cookRating"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type UserRefDTO struct {
	ID            string     `json:"id"`
	FullName      string     `json:"fullName"`
	Avatar        string     `json:"avatar,omitempty"`
	IsVerified    bool       `json:"isVerified"`
	LocationLabel string     `json:"locationLabel,omitempty"`
	Rating        *RatingDTO `json:"rating,omitempty"`
}

type MealRefDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	CoverPhotoURL string `json:"coverPhotoUrl"`
}

type FulfillmentDTO struct {
	Pickup   bool `json:"pickup"`
	Delivery bool `json:"delivery"`
}

type MealDTO struct {
	ID                string          `json:"id"`
	CookID            string          `json:"cookId"`
	Name              string          `json:"name"`
	ShortDescription  string          `json:"shortDescription"`
	Description       string          `json:"description"`
	CoverPhotoURL     string          `json:"coverPhotoUrl"`
	Ingredients       []string        `json:"ingredients"`
	Allergens         []string        `json:"allergens"`
	Tags              []string        `json:"tags"`
	IsFree            bool            `json:"isFree"`
	Price             decimal.Decimal `json:"price"`
	Currency          string          `json:"currency"`
	UnitLabel         string          `json:"unitLabel"`
	DietType          string          `json:"dietType"`
	Cuisine           string          `json:"cuisine"`
	Availability      string          `json:"availability"`
	AvailablePortions *int            `json:"availablePortions"`
	ReadyInMinutes    int             `json:"readyInMinutes"`
	LocationLabel     string          `json:"locationLabel"`
	Fulfillment       FulfillmentDTO  `json:"fulfillment"`
	Rating            RatingDTO       `json:"rating"`
	IsDeleted         bool            `json:"isDeleted"`
	DeletedAt         *time.Time      `json:"deletedAt,omitempty"`
	DeleteReason      string          `json:"deleteReason,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
	Cook              *UserRefDTO     `json:"cook,omitempty"`
}

type DecisionDTO struct {
	State     string     `json:"state"`
	DecidedAt *time.Time `json:"decidedAt"`
	Note      string     `json:"note"`
}

type MealSnapshotDTO struct {
	Name          string          `json:"name"`
	UnitLabel     string          `json:"unitLabel"`
	Price         decimal.Decimal `json:"price"`
	Currency      string          `json:"currency"`
	CoverPhotoURL string          `json:"coverPhotoUrl"`
}

type PickupDTO struct {
	PickupTime *time.Time `json:"pickupTime"`
	PickupNote string     `json:"pickupNote"`
}

type DeliveryDTO struct {
	AddressLabel string `json:"addressLabel"`
	AddressText  string `json:"addressText"`
	DeliveryNote string `json:"deliveryNote"`
}

type CancelInfoDTO struct {
	CancelledBy string `json:"cancelledBy"`
	Reason      string `json:"reason"`
}

type OrderDTO struct {
	ID              string          `json:"id"`
	Code            string          `json:"orderCode"`
	MealID          string          `json:"mealId"`
	CookID          string          `json:"cookId"`
	FoodieID        string          `json:"foodieId"`
	MealSnapshot    MealSnapshotDTO `json:"mealSnapshot"`
	Quantity        int             `json:"quantity"`
	FulfillmentType string          `json:"fulfillmentType"`
	Pickup          *PickupDTO      `json:"pickup,omitempty"`
	Delivery        *DeliveryDTO    `json:"delivery,omitempty"`
	Status          string          `json:"status"`
	CookDecision    DecisionDTO     `json:"cookDecision"`
	FoodieDecision  DecisionDTO     `json:"foodieDecision"`
	RequestedAt     time.Time       `json:"requestedAt"`
	ConfirmedAt     *time.Time      `json:"confirmedAt"`
	CompletedAt     *time.Time      `json:"completedAt"`
	CancelledAt     *time.Time      `json:"cancelledAt"`
	Cancel          *CancelInfoDTO  `json:"cancel,omitempty"`
	HasReview       bool            `json:"hasReview"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	Meal            *MealRefDTO     `json:"meal,omitempty"`
	Cook            *UserRefDTO     `json:"cook,omitempty"`
	Foodie          *UserRefDTO     `json:"foodie,omitempty"`
}

type ReviewDTO struct {
	ID           string      `json:"id"`
	OrderID      string      `json:"orderId"`
	MealID       string      `json:"mealId"`
	CookID       string      `json:"cookId"`
	FoodieID     string      `json:"foodieId"`
	Rating       int         `json:"rating"`
	Comment      string      `json:"comment"`
	IsHidden     bool        `json:"isHidden"`
	HiddenReason string      `json:"hiddenReason,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
	Foodie       *UserRefDTO `json:"foodie,omitempty"`
	Cook         *UserRefDTO `json:"cook,omitempty"`
	Meal         *MealRefDTO `json:"meal,omitempty"`
}

type ReportDTO struct {
	ID             string     `json:"id"`
	ReporterID     string     `json:"reporterId"`
	TargetType     string     `json:"targetType"`
	TargetID       string     `json:"targetId"`
	Category       string     `json:"category"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	AssignedTo     *string    `json:"assignedTo"`
	ActionTaken    string     `json:"actionTaken"`
	ResolutionNote string     `json:"resolutionNote"`
	ResolvedAt     *time.Time `json:"resolvedAt"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

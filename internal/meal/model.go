package meal

import (
	"time"

	"localbite-be/internal/rating"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DietType string

const (
	DietVeg    DietType = "veg"
	DietNonVeg DietType = "non_veg"
	DietVegan  DietType = "vegan"
	DietHalal  DietType = "halal"
	DietOther  DietType = "other"
)

func (d DietType) Valid() bool {
	switch d {
	case DietVeg, DietNonVeg, DietVegan, DietHalal, DietOther:
		return true
	}
	return false
}

type AvailabilityStatus string

const (
	Available AvailabilityStatus = "available"
	SoldOut   AvailabilityStatus = "sold_out"
	Paused    AvailabilityStatus = "paused"
)

func (a AvailabilityStatus) Valid() bool {
	switch a {
	case Available, SoldOut, Paused:
		return true
	}
	return false
}

type FulfillmentOptions struct {
	Pickup   bool
	Delivery bool
}

type CookSummary struct {
	ID            uuid.UUID
	FullName      string
	Avatar        string
	IsVerified    bool
	LocationLabel string
	Rating        rating.Summary
}

type Meal struct {
	ID               uuid.UUID
	CookID           uuid.UUID
	Name             string
	ShortDescription string
	Description      string
	CoverPhotoURL    string
	Ingredients      []string
	Allergens        []string
	Tags             []string
	IsFree           bool
	Price            decimal.Decimal
	Currency         string
	UnitLabel        string
	DietType         DietType
	Cuisine          string
	Availability     AvailabilityStatus
	// AvailablePortions is nil when the cook does not track portions.
	AvailablePortions *int
	ReadyInMinutes    int
	LocationLabel     string
	Fulfillment       FulfillmentOptions
	// Rating is maintained by the rating aggregator only.
	Rating       rating.Summary
	IsDeleted    bool
	DeletedAt    *time.Time
	DeletedBy    *uuid.UUID
	DeleteReason string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Cook *CookSummary
}

// Offers reports whether the meal can be fulfilled the given way.
func (m *Meal) Offers(fulfillmentType string) bool {
	switch fulfillmentType {
	case "pickup":
		return m.Fulfillment.Pickup
	case "delivery":
		return m.Fulfillment.Delivery
	}
	return false
}

type ListFilter struct {
	Search       string
	DietType     DietType
	IsFree       *bool
	Availability AvailabilityStatus
	CookID       *uuid.UUID
	Tag          string
}

type CreateInput struct {
	Name              string
	ShortDescription  string
	Description       string
	CoverPhotoURL     string
	Ingredients       []string
	Allergens         []string
	Tags              []string
	IsFree            bool
	Price             decimal.Decimal
	Currency          string
	UnitLabel         string
	DietType          DietType
	Cuisine           string
	AvailablePortions *int
	ReadyInMinutes    int
	LocationLabel     string
	Pickup            *bool
	Delivery          *bool
}

type UpdateParams struct {
	Name             *string
	ShortDescription *string
	Description      *string
	CoverPhotoURL    *string
	Ingredients      *[]string
	Allergens        *[]string
	Tags             *[]string
	IsFree           *bool
	Price            *decimal.Decimal
	Currency         *string
	UnitLabel        *string
	DietType         *DietType
	Cuisine          *string
	ReadyInMinutes   *int
	LocationLabel    *string
	Pickup           *bool
	Delivery         *bool
}

type AvailabilityParams struct {
	Status   *AvailabilityStatus
	Portions *int
}

const (
	listLimit = 100

	defaultCurrency     = "BDT"
	defaultUnitLabel    = "Per Portion"
	defaultDeleteReason = "Removed"
	defaultTakeDown     = "Admin action"

	maxNameLength        = 100
	maxShortDescLength   = 180
	maxDescriptionLength = 1500
	maxCurrencyLength    = 6
	maxUnitLabelLength   = 40
	maxCuisineLength     = 50
	maxLocationLength    = 160
	maxReasonLength      = 400
)

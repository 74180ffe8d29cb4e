package rest

import (
	"net/http"
	"strconv"

	"localbite-be/internal/apperror"
	"localbite-be/internal/mapper"
	"localbite-be/internal/meal"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type mealRequest struct {
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
	DietType          meal.DietType   `json:"dietType"`
	Cuisine           string          `json:"cuisine"`
	AvailablePortions *int            `json:"availablePortions"`
	ReadyInMinutes    int             `json:"readyInMinutes"`
	LocationLabel     string          `json:"locationLabel"`
	Fulfillment       *struct {
		Pickup   *bool `json:"pickup"`
		Delivery *bool `json:"delivery"`
	} `json:"fulfillment"`
}

type mealUpdateRequest struct {
	Name             *string          `json:"name"`
	ShortDescription *string          `json:"shortDescription"`
	Description      *string          `json:"description"`
	CoverPhotoURL    *string          `json:"coverPhotoUrl"`
	Ingredients      *[]string        `json:"ingredients"`
	Allergens        *[]string        `json:"allergens"`
	Tags             *[]string        `json:"tags"`
	IsFree           *bool            `json:"isFree"`
	Price            *decimal.Decimal `json:"price"`
	Currency         *string          `json:"currency"`
	UnitLabel        *string          `json:"unitLabel"`
	DietType         *meal.DietType   `json:"dietType"`
	Cuisine          *string          `json:"cuisine"`
	ReadyInMinutes   *int             `json:"readyInMinutes"`
	LocationLabel    *string          `json:"locationLabel"`
	Fulfillment      *struct {
		Pickup   *bool `json:"pickup"`
		Delivery *bool `json:"delivery"`
	} `json:"fulfillment"`
}

type availabilityRequest struct {
	Availability      *meal.AvailabilityStatus `json:"availability"`
	AvailablePortions *int                     `json:"availablePortions"`
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

var errInvalidIsFree = apperror.Validation("isFree must be true or false")

func mealFilter(r *http.Request) (meal.ListFilter, error) {
	q := r.URL.Query()
	f := meal.ListFilter{
		Search:       q.Get("search"),
		DietType:     meal.DietType(q.Get("dietType")),
		Availability: meal.AvailabilityStatus(q.Get("availability")),
		Tag:          q.Get("tag"),
	}

	if raw := q.Get("isFree"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return f, errInvalidIsFree
		}
		f.IsFree = &v
	}
	if raw := q.Get("cookId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return f, errInvalidID
		}
		f.CookID = &id
	}
	return f, nil
}

func (h *Handler) ListMeals(w http.ResponseWriter, r *http.Request) {
	f, err := mealFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	meals, err := h.meals.List(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapper.MapMeals(meals))
}

func (h *Handler) GetMeal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	m, err := h.meals.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapper.MapMeal(*m))
}

func (h *Handler) CreateMeal(w http.ResponseWriter, r *http.Request) {
	var req mealRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	in := meal.CreateInput{
		Name:              req.Name,
		ShortDescription:  req.ShortDescription,
		Description:       req.Description,
		CoverPhotoURL:     req.CoverPhotoURL,
		Ingredients:       req.Ingredients,
		Allergens:         req.Allergens,
		Tags:              req.Tags,
		IsFree:            req.IsFree,
		Price:             req.Price,
		Currency:          req.Currency,
		UnitLabel:         req.UnitLabel,
		DietType:          req.DietType,
		Cuisine:           req.Cuisine,
		AvailablePortions: req.AvailablePortions,
		ReadyInMinutes:    req.ReadyInMinutes,
		LocationLabel:     req.LocationLabel,
	}
	if req.Fulfillment != nil {
		in.Pickup, in.Delivery = req.Fulfillment.Pickup, req.Fulfillment.Delivery
	}

	m, err := h.meals.Create(r.Context(), principal(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapper.MapMeal(*m))
}

func (h *Handler) UpdateMeal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req mealUpdateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	params := meal.UpdateParams{
		Name:             req.Name,
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
		CoverPhotoURL:    req.CoverPhotoURL,
		Ingredients:      req.Ingredients,
		Allergens:        req.Allergens,
		Tags:             req.Tags,
		IsFree:           req.IsFree,
		Price:            req.Price,
		Currency:         req.Currency,
		UnitLabel:        req.UnitLabel,
		DietType:         req.DietType,
		Cuisine:          req.Cuisine,
		ReadyInMinutes:   req.ReadyInMinutes,
		LocationLabel:    req.LocationLabel,
	}
	if req.Fulfillment != nil {
		params.Pickup, params.Delivery = req.Fulfillment.Pickup, req.Fulfillment.Delivery
	}

	m, err := h.meals.Update(r.Context(), principal(r), id, params)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapper.MapMeal(*m))
}

func (h *Handler) DeleteMeal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req reasonRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.meals.Delete(r.Context(), principal(r), id, req.Reason); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handler) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req availabilityRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	m, err := h.meals.UpdateAvailability(r.Context(), principal(r), id, meal.AvailabilityParams{
		Status:   req.Availability,
		Portions: req.AvailablePortions,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapper.MapMeal(*m))
}

func (h *Handler) TakeDownMeal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req reasonRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	m, err := h.meals.TakeDown(r.Context(), principal(r), id, req.Reason)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapper.MapMeal(*m))
}

func (h *Handler) RestoreMeal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	m, err := h.meals.Restore(r.Context(), principal(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapper.MapMeal(*m))
}

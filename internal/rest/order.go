package rest

import (
	"context"
	"net/http"
	"time"

	"localbite-be/internal/auth"
	"localbite-be/internal/mapper"
	"localbite-be/internal/order"

	"github.com/google/uuid"
)

type createOrderRequest struct {
	MealID          uuid.UUID             `json:"mealId"`
	Quantity        int                   `json:"quantity"`
	FulfillmentType order.FulfillmentType `json:"fulfillmentType"`
	Pickup          *struct {
		PickupTime *time.Time `json:"pickupTime"`
		PickupNote string     `json:"pickupNote"`
	} `json:"pickup"`
	Delivery *struct {
		AddressLabel string `json:"addressLabel"`
		AddressText  string `json:"addressText"`
		DeliveryNote string `json:"deliveryNote"`
	} `json:"delivery"`
}

type decisionRequest struct {
	Note   string `json:"note"`
	Reason string `json:"reason"`
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	in := order.CreateInput{
		MealID:          req.MealID,
		Quantity:        req.Quantity,
		FulfillmentType: req.FulfillmentType,
	}
	if p := req.Pickup; p != nil {
		in.Pickup = &order.PickupDetails{PickupTime: p.PickupTime, PickupNote: p.PickupNote}
	}
	if d := req.Delivery; d != nil {
		in.Delivery = &order.DeliveryDetails{
			AddressLabel: d.AddressLabel,
			AddressText:  d.AddressText,
			DeliveryNote: d.DeliveryNote,
		}
	}

	o, err := h.orders.Create(r.Context(), principal(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapper.MapOrder(*o))
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	o, err := h.orders.Get(r.Context(), principal(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapper.MapOrder(*o))
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListAll(r.Context(), principal(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapper.MapOrders(orders))
}

func (h *Handler) ListFoodieOrders(w http.ResponseWriter, r *http.Request) {
	h.listOrdersBy(w, r, "foodieId", h.orders.ListForFoodie)
}

func (h *Handler) ListCookOrders(w http.ResponseWriter, r *http.Request) {
	h.listOrdersBy(w, r, "cookId", h.orders.ListForCook)
}

type orderLister func(ctx context.Context, p auth.Principal, userID uuid.UUID) ([]*order.Order, error)

func (h *Handler) listOrdersBy(w http.ResponseWriter, r *http.Request, param string, list orderLister) {
	userID, err := pathID(r, param)
	if err != nil {
		writeError(w, r, err)
		return
	}

	orders, err := list(r.Context(), principal(r), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapper.MapOrders(orders))
}

type orderTransition func(ctx context.Context, p auth.Principal, id uuid.UUID, note string) (*order.Order, error)

func (h *Handler) CookConfirm(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.orders.CookConfirm, false)
}

func (h *Handler) FoodieConfirm(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.orders.FoodieConfirm, false)
}

func (h *Handler) CookCancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.orders.CookCancel, true)
}

func (h *Handler) FoodieCancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.orders.FoodieCancel, true)
}

func (h *Handler) CompleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	o, err := h.orders.Complete(r.Context(), principal(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapper.MapOrder(*o))
}

// transition runs a confirm or cancel action. Cancels read the reason field,
// confirms the note field.
func (h *Handler) transition(w http.ResponseWriter, r *http.Request, fn orderTransition, cancel bool) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req decisionRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	text := req.Note
	if cancel {
		text = req.Reason
	}

	o, err := fn(r.Context(), principal(r), id, text)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapper.MapOrder(*o))
}

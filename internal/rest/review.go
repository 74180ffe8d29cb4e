package rest

import (
	"net/http"

	"localbite-be/internal/mapper"
	"localbite-be/internal/review"

	"github.com/google/uuid"
)

type submitReviewRequest struct {
	OrderID uuid.UUID `json:"orderId"`
	Rating  int       `json:"rating"`
	Comment string    `json:"comment"`
}

type updateReviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

func (h *Handler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var req submitReviewRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	rv, err := h.reviews.Submit(r.Context(), principal(r), review.SubmitInput{
		OrderID: req.OrderID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapper.MapReview(*rv))
}

func (h *Handler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req updateReviewRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	rv, err := h.reviews.Update(r.Context(), principal(r), id, review.UpdateInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapper.MapReview(*rv))
}

func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.reviews.Delete(r.Context(), principal(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handler) HideReview(w http.ResponseWriter, r *http.Request) {
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

	rv, err := h.reviews.Hide(r.Context(), principal(r), id, req.Reason)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapper.MapReview(*rv))
}

func (h *Handler) UnhideReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	rv, err := h.reviews.Unhide(r.Context(), principal(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapper.MapReview(*rv))
}

func (h *Handler) ListMealReviews(w http.ResponseWriter, r *http.Request) {
	mealID, err := pathID(r, "mealId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	reviews, err := h.reviews.ListByMeal(r.Context(), mealID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapper.MapReviews(reviews))
}

func (h *Handler) ListCookReviews(w http.ResponseWriter, r *http.Request) {
	cookID, err := pathID(r, "cookId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	reviews, err := h.reviews.ListByCook(r.Context(), cookID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapper.MapReviews(reviews))
}

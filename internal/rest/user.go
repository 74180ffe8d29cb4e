package rest

import (
	"net/http"

	"localbite-be/internal/mapper"
	"localbite-be/internal/user"
)

type upsertUserRequest struct {
	UID           string `json:"uid"`
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	Avatar        string `json:"avatar"`
	LocationLabel string `json:"locationLabel"`
}

type updateUserRequest struct {
	FullName      *string `json:"fullName"`
	LocationLabel *string `json:"locationLabel"`
	Avatar        *string `json:"avatar"`
}

type noteRequest struct {
	Note string `json:"note"`
}

func (h *Handler) UpsertMe(w http.ResponseWriter, r *http.Request) {
	var req upsertUserRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.users.UpsertMe(r.Context(), principal(r), user.UpsertInput{
		UID:           req.UID,
		FullName:      req.FullName,
		Email:         req.Email,
		Avatar:        req.Avatar,
		LocationLabel: req.LocationLabel,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapper.MapUser(*u))
}

func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.users.UpdateMe(r.Context(), principal(r), user.UpdateProfileParams{
		FullName:      req.FullName,
		LocationLabel: req.LocationLabel,
		Avatar:        req.Avatar,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapper.MapUser(*u))
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.users.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapper.MapUser(*u))
}

func (h *Handler) VerifyUser(w http.ResponseWriter, r *http.Request) {
	h.setVerified(w, r, true)
}

func (h *Handler) UnverifyUser(w http.ResponseWriter, r *http.Request) {
	h.setVerified(w, r, false)
}

func (h *Handler) setVerified(w http.ResponseWriter, r *http.Request, verified bool) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req noteRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.users.SetVerified(r.Context(), principal(r), id, verified, req.Note)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapper.MapUser(*u))
}

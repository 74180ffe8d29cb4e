package rest

import (
	"net/http"

	"localbite-be/internal/mapper"
	"localbite-be/internal/report"

	"github.com/google/uuid"
)

type createReportRequest struct {
	TargetType  report.TargetType `json:"targetType"`
	TargetID    uuid.UUID         `json:"targetId"`
	Category    report.Category   `json:"category"`
	Description string            `json:"description"`
}

type resolveReportRequest struct {
	ActionTaken report.Action `json:"actionTaken"`
	Note        string        `json:"note"`
}

func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var req createReportRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	rep, err := h.reports.Create(r.Context(), principal(r), report.CreateInput{
		TargetType:  req.TargetType,
		TargetID:    req.TargetID,
		Category:    req.Category,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapper.MapReport(*rep))
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.reports.List(r.Context(), principal(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapper.MapReports(reports))
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	rep, err := h.reports.Get(r.Context(), principal(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapper.MapReport(*rep))
}

func (h *Handler) AssignReport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	rep, err := h.reports.Assign(r.Context(), principal(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapper.MapReport(*rep))
}

func (h *Handler) ResolveReport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req resolveReportRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	rep, err := h.reports.Resolve(r.Context(), principal(r), id, report.ResolveInput{
		Action: req.ActionTaken,
		Note:   req.Note,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapper.MapReport(*rep))
}

func (h *Handler) RejectReport(w http.ResponseWriter, r *http.Request) {
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

	rep, err := h.reports.Reject(r.Context(), principal(r), id, req.Note)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapper.MapReport(*rep))
}

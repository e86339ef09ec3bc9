package equipment

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/maintenance-management/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
	service ServiceAPI
}

func NewHandler(logger *slog.Logger, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger),
		service:     service,
	}
}

func (h *Handler) CreateEquipment(w http.ResponseWriter, r *http.Request) {
	var dto CreateEquipmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	eq, err := h.service.CreateEquipment(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, eq)
}

func (h *Handler) GetEquipment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid equipment id")
		return
	}

	eq, err := h.service.GetEquipment(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, eq)
}

func (h *Handler) ListEquipment(w http.ResponseWriter, r *http.Request) {
	filters := ListFilters{
		Category:   r.URL.Query().Get("category"),
		Status:     r.URL.Query().Get("status"),
		Department: r.URL.Query().Get("department"),
	}
	if raw := r.URL.Query().Get("assigned_employee_id"); raw != "" {
		employeeID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid assigned_employee_id")
			return
		}
		filters.AssignedEmployeeID = &employeeID
	}
	if raw := r.URL.Query().Get("team_id"); raw != "" {
		teamID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid team_id")
			return
		}
		filters.TeamID = &teamID
	}

	items, err := h.service.ListEquipment(filters)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"equipment": items,
		"total":     len(items),
	})
}

func (h *Handler) UpdateEquipment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid equipment id")
		return
	}

	var dto UpdateEquipmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	eq, err := h.service.UpdateEquipment(id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, eq)
}

func (h *Handler) DeleteEquipment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid equipment id")
		return
	}

	if err := h.service.DeleteEquipment(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ScrapEquipment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid equipment id")
		return
	}

	var dto ScrapEquipmentDTO
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	eq, err := h.service.ScrapEquipment(id, dto.Reason)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, eq)
}

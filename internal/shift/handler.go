package shift

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/staffgrid/backend/internal/auth"
	"github.com/staffgrid/backend/internal/timeutil"
	"github.com/staffgrid/backend/internal/transport"
)

type ServiceAPI interface {
	List(caller auth.Caller, filter Filter) ([]*Shift, error)
	Get(caller auth.Caller, id string) (*Shift, error)
	Create(caller auth.Caller, dto CreateShiftDTO) (*Shift, error)
	Update(caller auth.Caller, id string, dto UpdateShiftDTO) (*Shift, error)
	Delete(caller auth.Caller, id string) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	filter := Filter{DepartmentID: r.URL.Query().Get("department")}
	if from := r.URL.Query().Get("from"); from != "" {
		d, err := timeutil.ParseDate(from)
		if err != nil {
			h.HandleServiceError(w, err)
			return
		}
		filter.From = &d
	}
	if to := r.URL.Query().Get("to"); to != "" {
		d, err := timeutil.ParseDate(to)
		if err != nil {
			h.HandleServiceError(w, err)
			return
		}
		filter.To = &d
	}

	shifts, err := h.Service.List(*caller, filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if shifts == nil {
		shifts = []*Shift{}
	}

	h.WriteJSON(w, http.StatusOK, shifts)
}

func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	sh, err := h.Service.Get(*caller, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, sh)
}

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateShiftDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sh, err := h.Service.Create(*caller, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, sh)
}

func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto UpdateShiftDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sh, err := h.Service.Update(*caller, chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, sh)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.Service.Delete(*caller, chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "shift deleted"})
}

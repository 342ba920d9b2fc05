package timeoff

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/staffgrid/backend/internal/auth"
	"github.com/staffgrid/backend/internal/timeutil"
	"github.com/staffgrid/backend/internal/transport"
)

type ServiceAPI interface {
	List(caller auth.Caller, filter Filter) ([]*TimeOff, error)
	Get(caller auth.Caller, id string) (*TimeOff, error)
	Create(caller auth.Caller, dto CreateTimeOffDTO) (*TimeOff, error)
	Update(caller auth.Caller, id string, dto UpdateTimeOffDTO) (*TimeOff, error)
	Approve(caller auth.Caller, id string) (*TimeOff, error)
	Decline(caller auth.Caller, id string) (*TimeOff, error)
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

func (h *Handler) ListTimeOff(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	filter := Filter{
		EmployeeID: r.URL.Query().Get("employee"),
		Status:     r.URL.Query().Get("status"),
	}
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

	rows, err := h.Service.List(*caller, filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if rows == nil {
		rows = []*TimeOff{}
	}

	h.WriteJSON(w, http.StatusOK, rows)
}

func (h *Handler) GetTimeOff(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	t, err := h.Service.Get(*caller, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) CreateTimeOff(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateTimeOffDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.Service.Create(*caller, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, t)
}

func (h *Handler) UpdateTimeOff(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto UpdateTimeOffDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.Service.Update(*caller, chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) ApproveTimeOff(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	t, err := h.Service.Approve(*caller, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) DeclineTimeOff(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	t, err := h.Service.Decline(*caller, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) DeleteTimeOff(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.Service.Delete(*caller, chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "time-off request deleted"})
}

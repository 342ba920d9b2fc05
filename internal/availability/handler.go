package availability

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/staffgrid/backend/internal/auth"
	"github.com/staffgrid/backend/internal/transport"
)

type ServiceAPI interface {
	List(caller auth.Caller, filter Filter) ([]*Availability, error)
	Get(caller auth.Caller, id string) (*Availability, error)
	Create(caller auth.Caller, dto CreateAvailabilityDTO) (*Availability, error)
	Update(caller auth.Caller, id string, dto UpdateAvailabilityDTO) (*Availability, error)
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

func (h *Handler) ListAvailability(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	filter := Filter{EmployeeID: r.URL.Query().Get("employee")}
	if wd := r.URL.Query().Get("weekday"); wd != "" {
		n, err := strconv.Atoi(wd)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "weekday must be a number")
			return
		}
		filter.Weekday = &n
	}

	rows, err := h.Service.List(*caller, filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if rows == nil {
		rows = []*Availability{}
	}

	h.WriteJSON(w, http.StatusOK, rows)
}

func (h *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	a, err := h.Service.Get(*caller, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) CreateAvailability(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateAvailabilityDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.Create(*caller, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto UpdateAvailabilityDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.Update(*caller, chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) DeleteAvailability(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.Service.Delete(*caller, chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "availability deleted"})
}

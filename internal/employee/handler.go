package employee

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/staffgrid/backend/internal/auth"
	"github.com/staffgrid/backend/internal/transport"
)

type ServiceAPI interface {
	List(caller auth.Caller, departmentID string) ([]*Employee, error)
	Get(caller auth.Caller, id string) (*Employee, error)
	Create(caller auth.Caller, dto CreateEmployeeDTO) (*Employee, error)
	Update(caller auth.Caller, id string, dto UpdateEmployeeDTO) (*Employee, error)
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

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	employees, err := h.Service.List(*caller, r.URL.Query().Get("department"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if employees == nil {
		employees = []*Employee{}
	}

	h.WriteJSON(w, http.StatusOK, employees)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	e, err := h.Service.Get(*caller, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.Service.Create(*caller, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, e)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto UpdateEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.Service.Update(*caller, chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.Service.Delete(*caller, chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "employee deleted"})
}

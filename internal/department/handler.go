package department

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/staffgrid/backend/internal/auth"
	"github.com/staffgrid/backend/internal/transport"
)

type ServiceAPI interface {
	List(caller auth.Caller) ([]*Department, error)
	Get(caller auth.Caller, id string) (*Department, error)
	Create(caller auth.Caller, dto CreateDepartmentDTO) (*Department, error)
	Update(caller auth.Caller, id string, dto UpdateDepartmentDTO) (*Department, error)
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

func (h *Handler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	departments, err := h.Service.List(*caller)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if departments == nil {
		departments = []*Department{}
	}

	h.WriteJSON(w, http.StatusOK, departments)
}

func (h *Handler) GetDepartment(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	dept, err := h.Service.Get(*caller, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, dept)
}

func (h *Handler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateDepartmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	dept, err := h.Service.Create(*caller, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, dept)
}

func (h *Handler) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto UpdateDepartmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	dept, err := h.Service.Update(*caller, chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, dept)
}

func (h *Handler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.Service.Delete(*caller, chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "department deleted"})
}

package assignment

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/staffgrid/backend/internal/auth"
	"github.com/staffgrid/backend/internal/transport"
)

type ServiceAPI interface {
	List(caller auth.Caller, filter Filter) ([]*ShiftAssignment, error)
	Get(caller auth.Caller, id string) (*ShiftAssignment, error)
	Propose(caller auth.Caller, dto CreateAssignmentDTO) (*ShiftAssignment, error)
	Update(caller auth.Caller, id string, dto UpdateAssignmentDTO) (*ShiftAssignment, error)
	Remove(caller auth.Caller, id string) error
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

func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	filter := Filter{
		EmployeeID: r.URL.Query().Get("employee"),
		ShiftID:    r.URL.Query().Get("shift"),
	}

	rows, err := h.Service.List(*caller, filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if rows == nil {
		rows = []*ShiftAssignment{}
	}

	h.WriteJSON(w, http.StatusOK, rows)
}

func (h *Handler) GetAssignment(w http.ResponseWriter, r *http.Request) {
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

func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateAssignmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.Propose(*caller, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto UpdateAssignmentDTO
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

func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.Service.Remove(*caller, chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "assignment removed"})
}

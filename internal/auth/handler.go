package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/staffgrid/backend/internal"
	"github.com/staffgrid/backend/internal/transport"
	"github.com/staffgrid/backend/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, err := h.Service.Authenticate(dto)
	if err != nil {
		h.Logger.Error("authentication failed", "error", err)

		if _, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var dto RefreshTokenDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tokens, err := h.Service.RefreshTokens(dto.RefreshToken)
	if err != nil {
		h.Logger.Error("token refresh failed", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, userID, err := h.Service.Register(dto)
	if err != nil {
		h.Logger.Error("registration failed", "error", err, "email", dto.Email)

		if _, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("user registered", "user_id", userID)
	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"user_id": userID,
		"tokens":  tokens,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := h.ExtractTokenFromHeader(r)
	if token == "" {
		h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	if _, err := h.Service.ValidateAccessToken(token); err != nil {
		h.WriteError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AuthMiddleware verifies the bearer token and resolves the full Caller,
// including the linked employee profile, into the request context.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		claims, err := h.Service.ValidateAccessToken(token)
		if err != nil {
			h.Logger.Warn("auth middleware: token validation failed", "error", err)
			h.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		caller, err := h.Service.ResolveCaller(claims.UserID)
		if err != nil {
			if internal.IsCode(err, internal.ErrCodeStoreUnavailable) {
				h.Logger.Error("auth middleware: caller resolution failed", "error", err, "user_id", claims.UserID)
				h.WriteError(w, http.StatusServiceUnavailable, "store unavailable")
				return
			}
			h.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := logger.With(r.Context(), "user_id", caller.UserID, "role", string(caller.Role))
		ctx = ContextWithCaller(ctx, caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles gates a route to the given roles. Body- and row-level
// scoping still happens in the services; this only rejects roles that may
// not attempt the operation at all.
func RequireRoles(lg *slog.Logger, roles ...Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, ok := CallerFromContext(r.Context())
			if !ok || caller == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			for _, role := range roles {
				if caller.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			lg.WarnContext(r.Context(), "access denied: insufficient role",
				"user_id", caller.UserID,
				"role", string(caller.Role))
			http.Error(w, "forbidden", http.StatusForbidden)
		})
	}
}

// RequireAdmin gates a route to OWNER and MANAGER callers.
func RequireAdmin(lg *slog.Logger) func(http.Handler) http.Handler {
	return RequireRoles(lg, RoleOwner, RoleManager)
}

package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	"github.com/staffgrid/backend/internal"
)

// Role is the access level carried by every user. OWNER and MANAGER are
// administrative and equivalent for every rule except user deletion.
type Role string

const (
	RoleOwner    Role = "OWNER"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleOwner, RoleManager, RoleEmployee:
		return Role(s), nil
	}
	return "", internal.NewValidationError("role must be OWNER, MANAGER or EMPLOYEE", internal.ErrCodeInvalidRole)
}

// IsAdmin reports whether the role may perform administrative operations.
func (r Role) IsAdmin() bool {
	return r == RoleOwner || r == RoleManager
}

// Caller is the resolved identity of an authenticated request. EmployeeID is
// the Employee profile whose user id matches the caller, nil when the user
// has no profile. It is always passed explicitly, never read from globals.
type Caller struct {
	UserID     string
	Role       Role
	EmployeeID *string
}

// OwnsEmployee reports whether employeeID is the caller's own profile.
func (c Caller) OwnsEmployee(employeeID string) bool {
	return c.EmployeeID != nil && *c.EmployeeID == employeeID
}

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (AuthTokens, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	ResolveCaller(userID string) (*Caller, error)
	Register(dto RegisterDTO) (*AuthTokens, string, error)
}

type RepositoryAPI interface {
	GetCredentialsByEmail(email string) (userID, passwordHash, role string, err error)
	GetRoleByUserID(userID string) (string, error)
	GetEmployeeIDByUserID(userID string) (*string, error)
	CreateUser(fullName, email, passwordHash, role string) (userID string, err error)
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(userID string, role Role) (string, error)
	GenerateRefreshToken(userID string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type ctxKey string

const ContextCallerKey ctxKey = "caller"

func CallerFromContext(ctx context.Context) (*Caller, bool) {
	c, ok := ctx.Value(ContextCallerKey).(*Caller)
	return c, ok
}

func ContextWithCaller(ctx context.Context, c *Caller) context.Context {
	return context.WithValue(ctx, ContextCallerKey, c)
}

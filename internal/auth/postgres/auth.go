package postgres

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/staffgrid/backend/internal"
)

func newUUID() string { return uuid.NewString() }

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetCredentialsByEmail(email string) (string, string, string, error) {
	var userID, passwordHash, role string
	query := `SELECT id, password_hash, role FROM users WHERE email = ?`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&userID, &passwordHash, &role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", "", internal.ErrInvalidCredentials
		}
		return "", "", "", internal.NewStoreError("could not read credentials", err)
	}
	return userID, passwordHash, role, nil
}

func (r *Repository) GetRoleByUserID(userID string) (string, error) {
	var role string
	row := r.db.Raw(`SELECT role FROM users WHERE id = ?`, userID).Row()
	if err := row.Scan(&role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", internal.NewNotFoundError("user not found")
		}
		return "", internal.NewStoreError("could not read user role", err)
	}
	return role, nil
}

// GetEmployeeIDByUserID returns nil without error when the user has no
// employee profile; self-scoped operations treat that as "owns nothing".
func (r *Repository) GetEmployeeIDByUserID(userID string) (*string, error) {
	var employeeID string
	row := r.db.Raw(`SELECT id FROM employees WHERE user_id = ?`, userID).Row()
	if err := row.Scan(&employeeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, internal.NewStoreError("could not read employee profile", err)
	}
	return &employeeID, nil
}

func (r *Repository) CreateUser(fullName, email, passwordHash, role string) (string, error) {
	userID := newUUID()
	err := r.db.Exec(
		`INSERT INTO users (id, full_name, email, password_hash, role, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		userID, fullName, email, passwordHash, role,
	).Error
	if err != nil {
		if isUniqueViolation(err) {
			return "", internal.NewConflictError("email is already registered", internal.ErrCodeDuplicateEmail)
		}
		return "", internal.NewStoreError("could not create user", err)
	}
	return userID, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

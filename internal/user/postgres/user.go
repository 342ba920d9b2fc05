package postgres

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/staffgrid/backend/internal"
	"github.com/staffgrid/backend/internal/user"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetAll() ([]*user.User, error) {
	var users []*user.User
	if err := r.db.Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, internal.NewStoreError("could not list users", err)
	}
	return users, nil
}

func (r *UserRepository) GetByID(id string) (*user.User, error) {
	var u user.User
	if err := r.db.Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("user not found")
		}
		return nil, internal.NewStoreError("could not read user", err)
	}
	return &u, nil
}

func (r *UserRepository) Exists(id string) (bool, error) {
	var count int64
	if err := r.db.Model(&user.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, internal.NewStoreError("could not check user", err)
	}
	return count > 0, nil
}

func (r *UserRepository) Create(u *user.User) error {
	if err := r.db.Create(u).Error; err != nil {
		if isUniqueViolation(err) {
			return internal.NewConflictError("email is already registered", internal.ErrCodeDuplicateEmail)
		}
		return internal.NewStoreError("could not create user", err)
	}
	return nil
}

func (r *UserRepository) Update(u *user.User) error {
	if err := r.db.Save(u).Error; err != nil {
		if isUniqueViolation(err) {
			return internal.NewConflictError("email is already registered", internal.ErrCodeDuplicateEmail)
		}
		return internal.NewStoreError("could not update user", err)
	}
	return nil
}

func (r *UserRepository) Delete(id string) error {
	if err := r.db.Delete(&user.User{}, "id = ?", id).Error; err != nil {
		return internal.NewStoreError("could not delete user", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

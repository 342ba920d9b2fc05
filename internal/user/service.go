package user

import (
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/staffgrid/backend/internal"
	"github.com/staffgrid/backend/internal/auth"
)

type Service struct {
	repo       RepositoryAPI
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) List(caller auth.Caller) ([]*User, error) {
	if err := auth.Authorize(caller, auth.ResourceUser, auth.ActionList); err != nil {
		return nil, err
	}
	return s.repo.GetAll()
}

func (s *Service) Get(caller auth.Caller, id string) (*User, error) {
	// Any caller may read their own account; everyone else needs the
	// admin-level read grant.
	if caller.UserID != id {
		if err := auth.Authorize(caller, auth.ResourceUser, auth.ActionRead); err != nil {
			return nil, err
		}
	}
	return s.repo.GetByID(id)
}

func (s *Service) Create(caller auth.Caller, dto CreateUserDTO) (*User, error) {
	if err := auth.Authorize(caller, auth.ResourceUser, auth.ActionCreate); err != nil {
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("could not hash password", err)
	}

	u := &User{
		FullName:     dto.FullName,
		Email:        dto.Email,
		PasswordHash: string(hash),
		Role:         dto.Role,
	}
	if err := s.repo.Create(u); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", dto.Email)
		return nil, err
	}

	s.logger.Info("user created", "user_id", u.ID, "role", u.Role)
	return u, nil
}

func (s *Service) Update(caller auth.Caller, id string, dto UpdateUserDTO) (*User, error) {
	if err := auth.Authorize(caller, auth.ResourceUser, auth.ActionUpdate); err != nil {
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.FullName != nil {
		u.FullName = *dto.FullName
	}
	if dto.Email != nil {
		u.Email = *dto.Email
	}
	if dto.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*dto.Password), s.bcryptCost)
		if err != nil {
			return nil, internal.NewInternalError("could not hash password", err)
		}
		u.PasswordHash = string(hash)
	}
	if dto.Role != nil {
		u.Role = *dto.Role
	}

	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, err
	}
	return u, nil
}

func (s *Service) Delete(caller auth.Caller, id string) error {
	if err := auth.Authorize(caller, auth.ResourceUser, auth.ActionDelete); err != nil {
		return err
	}

	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

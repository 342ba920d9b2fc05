package department

import (
	"log/slog"

	"github.com/staffgrid/backend/internal/auth"
)

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) List(caller auth.Caller) ([]*Department, error) {
	if err := auth.Authorize(caller, auth.ResourceDepartment, auth.ActionList); err != nil {
		return nil, err
	}
	return s.repo.GetAll()
}

func (s *Service) Get(caller auth.Caller, id string) (*Department, error) {
	if err := auth.Authorize(caller, auth.ResourceDepartment, auth.ActionRead); err != nil {
		return nil, err
	}
	return s.repo.GetByID(id)
}

func (s *Service) Create(caller auth.Caller, dto CreateDepartmentDTO) (*Department, error) {
	if err := auth.Authorize(caller, auth.ResourceDepartment, auth.ActionCreate); err != nil {
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	dept := &Department{
		Name:        dto.Name,
		Description: dto.Description,
	}
	if err := s.repo.Create(dept); err != nil {
		s.logger.Error("failed to create department", "error", err, "name", dto.Name)
		return nil, err
	}

	s.logger.Info("department created", "department_id", dept.ID, "name", dept.Name)
	return dept, nil
}

func (s *Service) Update(caller auth.Caller, id string, dto UpdateDepartmentDTO) (*Department, error) {
	if err := auth.Authorize(caller, auth.ResourceDepartment, auth.ActionUpdate); err != nil {
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	dept, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		dept.Name = *dto.Name
	}
	if dto.Description != nil {
		dept.Description = *dto.Description
	}

	if err := s.repo.Update(dept); err != nil {
		s.logger.Error("failed to update department", "error", err, "department_id", id)
		return nil, err
	}
	return dept, nil
}

func (s *Service) Delete(caller auth.Caller, id string) error {
	if err := auth.Authorize(caller, auth.ResourceDepartment, auth.ActionDelete); err != nil {
		return err
	}

	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

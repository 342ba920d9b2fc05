package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/staffgrid/backend/internal"
	"github.com/staffgrid/backend/internal/department"
)

// DepartmentRepository implements department.RepositoryAPI using GORM
type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) department.RepositoryAPI {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) GetAll() ([]*department.Department, error) {
	var departments []*department.Department
	if err := r.db.Order("name ASC").Find(&departments).Error; err != nil {
		return nil, internal.NewStoreError("could not list departments", err)
	}
	return departments, nil
}

func (r *DepartmentRepository) GetByID(id string) (*department.Department, error) {
	var dept department.Department
	if err := r.db.Where("id = ?", id).First(&dept).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("department not found")
		}
		return nil, internal.NewStoreError("could not read department", err)
	}
	return &dept, nil
}

func (r *DepartmentRepository) Exists(id string) (bool, error) {
	var count int64
	if err := r.db.Model(&department.Department{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, internal.NewStoreError("could not check department", err)
	}
	return count > 0, nil
}

func (r *DepartmentRepository) Create(dept *department.Department) error {
	if err := r.db.Create(dept).Error; err != nil {
		return internal.NewStoreError("could not create department", err)
	}
	return nil
}

func (r *DepartmentRepository) Update(dept *department.Department) error {
	if err := r.db.Save(dept).Error; err != nil {
		return internal.NewStoreError("could not update department", err)
	}
	return nil
}

func (r *DepartmentRepository) Delete(id string) error {
	if err := r.db.Delete(&department.Department{}, "id = ?", id).Error; err != nil {
		return internal.NewStoreError("could not delete department", err)
	}
	return nil
}

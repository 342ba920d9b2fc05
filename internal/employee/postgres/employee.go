package postgres

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/staffgrid/backend/internal"
	"github.com/staffgrid/backend/internal/employee"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.RepositoryAPI {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) GetAll(departmentID string) ([]*employee.Employee, error) {
	var employees []*employee.Employee
	q := r.db.Order("created_at ASC")
	if departmentID != "" {
		q = q.Where("department_id = ?", departmentID)
	}
	if err := q.Find(&employees).Error; err != nil {
		return nil, internal.NewStoreError("could not list employees", err)
	}
	return employees, nil
}

func (r *EmployeeRepository) GetByID(id string) (*employee.Employee, error) {
	var e employee.Employee
	if err := r.db.Where("id = ?", id).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, internal.NewStoreError("could not read employee", err)
	}
	return &e, nil
}

func (r *EmployeeRepository) GetByUserID(userID string) (*employee.Employee, error) {
	var e employee.Employee
	if err := r.db.Where("user_id = ?", userID).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, internal.NewStoreError("could not read employee", err)
	}
	return &e, nil
}

func (r *EmployeeRepository) Exists(id string) (bool, error) {
	var count int64
	if err := r.db.Model(&employee.Employee{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, internal.NewStoreError("could not check employee", err)
	}
	return count > 0, nil
}

func (r *EmployeeRepository) Create(e *employee.Employee) error {
	if err := r.db.Create(e).Error; err != nil {
		if isUniqueViolation(err) {
			return internal.NewConflictError("user already has an employee profile", internal.ErrCodeDuplicateEmployee)
		}
		return internal.NewStoreError("could not create employee", err)
	}
	return nil
}

func (r *EmployeeRepository) Update(e *employee.Employee) error {
	if err := r.db.Save(e).Error; err != nil {
		return internal.NewStoreError("could not update employee", err)
	}
	return nil
}

func (r *EmployeeRepository) Delete(id string) error {
	if err := r.db.Delete(&employee.Employee{}, "id = ?", id).Error; err != nil {
		return internal.NewStoreError("could not delete employee", err)
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

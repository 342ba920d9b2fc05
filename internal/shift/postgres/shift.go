package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/staffgrid/backend/internal"
	"github.com/staffgrid/backend/internal/shift"
)

type ShiftRepository struct {
	db *gorm.DB
}

func NewShiftRepository(db *gorm.DB) shift.RepositoryAPI {
	return &ShiftRepository{db: db}
}

func (r *ShiftRepository) Find(filter shift.Filter) ([]*shift.Shift, error) {
	var shifts []*shift.Shift
	q := r.db.Order("date ASC, start_time ASC")
	if filter.DepartmentID != "" {
		q = q.Where("department_id = ?", filter.DepartmentID)
	}
	if filter.From != nil {
		q = q.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("date <= ?", *filter.To)
	}
	if err := q.Find(&shifts).Error; err != nil {
		return nil, internal.NewStoreError("could not list shifts", err)
	}
	return shifts, nil
}

func (r *ShiftRepository) GetByID(id string) (*shift.Shift, error) {
	var sh shift.Shift
	if err := r.db.Where("id = ?", id).First(&sh).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrShiftNotFound
		}
		return nil, internal.NewStoreError("could not read shift", err)
	}
	return &sh, nil
}

func (r *ShiftRepository) Create(sh *shift.Shift) error {
	if err := r.db.Create(sh).Error; err != nil {
		return internal.NewStoreError("could not create shift", err)
	}
	return nil
}

func (r *ShiftRepository) Update(sh *shift.Shift) error {
	if err := r.db.Save(sh).Error; err != nil {
		return internal.NewStoreError("could not update shift", err)
	}
	return nil
}

func (r *ShiftRepository) Delete(id string) error {
	if err := r.db.Delete(&shift.Shift{}, "id = ?", id).Error; err != nil {
		return internal.NewStoreError("could not delete shift", err)
	}
	return nil
}

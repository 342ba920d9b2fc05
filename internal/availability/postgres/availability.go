package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/staffgrid/backend/internal"
	"github.com/staffgrid/backend/internal/availability"
)

type AvailabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) availability.RepositoryAPI {
	return &AvailabilityRepository{db: db}
}

func (r *AvailabilityRepository) Find(filter availability.Filter) ([]*availability.Availability, error) {
	var rows []*availability.Availability
	q := r.db.Order("weekday ASC, start_time ASC")
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Weekday != nil {
		q = q.Where("weekday = ?", *filter.Weekday)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, internal.NewStoreError("could not list availability", err)
	}
	return rows, nil
}

func (r *AvailabilityRepository) GetByID(id string) (*availability.Availability, error) {
	var a availability.Availability
	if err := r.db.Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("availability not found")
		}
		return nil, internal.NewStoreError("could not read availability", err)
	}
	return &a, nil
}

func (r *AvailabilityRepository) Create(a *availability.Availability) error {
	if err := r.db.Create(a).Error; err != nil {
		return internal.NewStoreError("could not create availability", err)
	}
	return nil
}

func (r *AvailabilityRepository) Update(a *availability.Availability) error {
	if err := r.db.Save(a).Error; err != nil {
		return internal.NewStoreError("could not update availability", err)
	}
	return nil
}

func (r *AvailabilityRepository) Delete(id string) error {
	if err := r.db.Delete(&availability.Availability{}, "id = ?", id).Error; err != nil {
		return internal.NewStoreError("could not delete availability", err)
	}
	return nil
}

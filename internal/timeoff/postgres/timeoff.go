package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/staffgrid/backend/internal"
	"github.com/staffgrid/backend/internal/timeoff"
)

type TimeOffRepository struct {
	db *gorm.DB
}

func NewTimeOffRepository(db *gorm.DB) timeoff.RepositoryAPI {
	return &TimeOffRepository{db: db}
}

func (r *TimeOffRepository) Find(filter timeoff.Filter) ([]*timeoff.TimeOff, error) {
	var rows []*timeoff.TimeOff
	q := r.db.Order("start_date ASC, created_at ASC")
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	// date-range overlap, both ends inclusive
	if filter.To != nil {
		q = q.Where("start_date <= ?", *filter.To)
	}
	if filter.From != nil {
		q = q.Where("end_date >= ?", *filter.From)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, internal.NewStoreError("could not list time-off requests", err)
	}
	return rows, nil
}

func (r *TimeOffRepository) GetByID(id string) (*timeoff.TimeOff, error) {
	var t timeoff.TimeOff
	if err := r.db.Where("id = ?", id).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrTimeOffNotFound
		}
		return nil, internal.NewStoreError("could not read time-off request", err)
	}
	return &t, nil
}

func (r *TimeOffRepository) Create(t *timeoff.TimeOff) error {
	if err := r.db.Create(t).Error; err != nil {
		return internal.NewStoreError("could not create time-off request", err)
	}
	return nil
}

func (r *TimeOffRepository) Update(t *timeoff.TimeOff) error {
	if err := r.db.Save(t).Error; err != nil {
		return internal.NewStoreError("could not update time-off request", err)
	}
	return nil
}

func (r *TimeOffRepository) Delete(id string) error {
	if err := r.db.Delete(&timeoff.TimeOff{}, "id = ?", id).Error; err != nil {
		return internal.NewStoreError("could not delete time-off request", err)
	}
	return nil
}

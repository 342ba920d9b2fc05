package shift

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Shift is a single working period on a single calendar date. Times are
// "HH:MM" wall-clock strings; the date carries no time component.
type Shift struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	DepartmentID string    `json:"department_id" gorm:"not null;index"`
	Date         time.Time `json:"date" gorm:"not null;index"`
	StartTime    string    `json:"start_time" gorm:"not null"`
	EndTime      string    `json:"end_time" gorm:"not null"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Shift) TableName() string {
	return "shifts"
}

func (s *Shift) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

type Filter struct {
	DepartmentID string
	From         *time.Time
	To           *time.Time
}

type RepositoryAPI interface {
	Find(filter Filter) ([]*Shift, error)
	GetByID(id string) (*Shift, error)
	Create(s *Shift) error
	Update(s *Shift) error
	Delete(id string) error
}

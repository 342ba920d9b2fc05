package availability

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Availability declares a recurring weekly window in which an employee may
// be scheduled. Multiple windows per weekday are allowed and are not
// validated against each other.
type Availability struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	EmployeeID string    `json:"employee_id" gorm:"column:employee_id;not null;index"`
	Weekday    int       `json:"weekday" gorm:"not null"`
	StartTime  string    `json:"start_time" gorm:"column:start_time;not null"`
	EndTime    string    `json:"end_time" gorm:"column:end_time;not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Availability) TableName() string {
	return "availabilities"
}

func (a *Availability) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// Filter narrows list queries. Self-scoping overwrites EmployeeID before the
// filter reaches the store.
type Filter struct {
	EmployeeID string
	Weekday    *int
}

type RepositoryAPI interface {
	Find(filter Filter) ([]*Availability, error)
	GetByID(id string) (*Availability, error)
	Create(a *Availability) error
	Update(a *Availability) error
	Delete(id string) error
}

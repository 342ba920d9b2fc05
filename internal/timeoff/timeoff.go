package timeoff

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/staffgrid/backend/internal"
)

const (
	TypeVacation = "VACATION"
	TypeSick     = "SICK"
	TypeOther    = "OTHER"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusDeclined = "DECLINED"
)

// TimeOff is a leave request. It is born PENDING and moves exactly once,
// to APPROVED or DECLINED. Only APPROVED rows block scheduling.
type TimeOff struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	EmployeeID string    `json:"employee_id" gorm:"not null;index"`
	Type       string    `json:"type" gorm:"not null"`
	StartDate  time.Time `json:"start_date" gorm:"not null;index"`
	EndDate    time.Time `json:"end_date" gorm:"not null;index"`
	Status     string    `json:"status" gorm:"not null;default:PENDING;index"`
	Reason     string    `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (TimeOff) TableName() string {
	return "time_offs"
}

func (t *TimeOff) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

func (t *TimeOff) IsTerminal() bool {
	return t.Status == StatusApproved || t.Status == StatusDeclined
}

func ParseType(raw string) (string, error) {
	switch raw {
	case TypeVacation, TypeSick, TypeOther:
		return raw, nil
	}
	return "", internal.NewValidationError("type must be one of VACATION, SICK, OTHER", internal.ErrCodeInvalidType)
}

func ParseStatus(raw string) (string, error) {
	switch raw {
	case StatusPending, StatusApproved, StatusDeclined:
		return raw, nil
	}
	return "", internal.NewValidationError("status must be one of PENDING, APPROVED, DECLINED", internal.ErrCodeInvalidStatus)
}

// Filter narrows listing. From/To select requests whose date range
// overlaps [From, To], both ends inclusive.
type Filter struct {
	EmployeeID string
	Status     string
	From       *time.Time
	To         *time.Time
}

type RepositoryAPI interface {
	Find(filter Filter) ([]*TimeOff, error)
	GetByID(id string) (*TimeOff, error)
	Create(t *TimeOff) error
	Update(t *TimeOff) error
	Delete(id string) error
}

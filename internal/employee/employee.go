package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee is the scheduling identity of a User. Every scheduling rule keys
// off the employee id, never the user id directly.
type Employee struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	UserID        string    `json:"user_id" gorm:"column:user_id;not null;uniqueIndex"`
	DepartmentID  string    `json:"department_id" gorm:"column:department_id;not null"`
	Position      string    `json:"position"`
	ContractHours *float64  `json:"contract_hours,omitempty" gorm:"column:contract_hours"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

type RepositoryAPI interface {
	GetAll(departmentID string) ([]*Employee, error)
	GetByID(id string) (*Employee, error)
	GetByUserID(userID string) (*Employee, error)
	Exists(id string) (bool, error)
	Create(e *Employee) error
	Update(e *Employee) error
	Delete(id string) error
}

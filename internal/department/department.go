package department

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Department is a simple reference entity shifts are attached to.
type Department struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null;uniqueIndex"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Department) TableName() string {
	return "departments"
}

func (d *Department) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

type RepositoryAPI interface {
	GetAll() ([]*Department, error)
	GetByID(id string) (*Department, error)
	Exists(id string) (bool, error)
	Create(dept *Department) error
	Update(dept *Department) error
	Delete(id string) error
}

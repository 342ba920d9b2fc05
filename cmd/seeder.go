package cmd

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/staffgrid/backend/internal/department"
	"github.com/staffgrid/backend/internal/employee"
	"github.com/staffgrid/backend/internal/user"
)

var clearData bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"audit_logs", "shift_assignments", "shifts", "time_offs", "availabilities", "employees", "users", "departments"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("password"), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}

		dept := seedDepartment(db, "Operations", "Front-line operations crew")

		owner := seedUser(db, "Olivia Hart", "owner@staffgrid.dev", string(hash), "OWNER")
		manager := seedUser(db, "Marcus Webb", "manager@staffgrid.dev", string(hash), "MANAGER")
		worker := seedUser(db, "Elena Voss", "employee@staffgrid.dev", string(hash), "EMPLOYEE")

		seedEmployee(db, worker.ID, dept.ID, "Shift Operator")

		fmt.Println("Seeded users:", owner.Email, manager.Email, worker.Email)
	},
}

func seedDepartment(db *gorm.DB, name, description string) *department.Department {
	var existing department.Department
	err := db.Where("name = ?", name).First(&existing).Error
	if err == nil {
		fmt.Println("department already exists:", name)
		return &existing
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("failed to look up department: %v", err)
	}

	dept := &department.Department{Name: name, Description: description}
	if err := db.Create(dept).Error; err != nil {
		log.Fatalf("failed to seed department: %v", err)
	}
	return dept
}

func seedUser(db *gorm.DB, fullName, email, passwordHash, role string) *user.User {
	var existing user.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		fmt.Println("user already exists:", email)
		return &existing
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("failed to look up user: %v", err)
	}

	u := &user.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}
	if err := db.Create(u).Error; err != nil {
		log.Fatalf("failed to seed user %s: %v", email, err)
	}
	return u
}

func seedEmployee(db *gorm.DB, userID, departmentID, position string) {
	var existing employee.Employee
	err := db.Where("user_id = ?", userID).First(&existing).Error
	if err == nil {
		fmt.Println("employee profile already exists for user:", userID)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("failed to look up employee: %v", err)
	}

	e := &employee.Employee{
		UserID:       userID,
		DepartmentID: departmentID,
		Position:     position,
	}
	if err := db.Create(e).Error; err != nil {
		log.Fatalf("failed to seed employee profile: %v", err)
	}
}

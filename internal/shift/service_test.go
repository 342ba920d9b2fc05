package shift_test

import (
	"io"
	"log/slog"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/staffgrid/backend/internal"
	"github.com/staffgrid/backend/internal/auth"
	"github.com/staffgrid/backend/internal/department"
	departmentstore "github.com/staffgrid/backend/internal/department/postgres"
	"github.com/staffgrid/backend/internal/shift"
	shiftstore "github.com/staffgrid/backend/internal/shift/postgres"
	"github.com/staffgrid/backend/internal/timeutil"
)

func TestShiftService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ShiftService Suite")
}

var _ = Describe("ShiftService", func() {
	var (
		db    *gorm.DB
		svc   *shift.Service
		dept  *department.Department
		admin auth.Caller
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&department.Department{}, &shift.Shift{})
		Expect(err).NotTo(HaveOccurred())

		dept = &department.Department{Name: "Operations"}
		Expect(db.Create(dept).Error).NotTo(HaveOccurred())

		admin = auth.Caller{UserID: uuid.NewString(), Role: auth.RoleManager}

		lg := slog.New(slog.NewTextHandler(io.Discard, nil))
		svc = shift.NewService(shiftstore.NewShiftRepository(db), departmentstore.NewDepartmentRepository(db), lg)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("Create", func() {
		It("creates a shift in an existing department", func() {
			sh, err := svc.Create(admin, shift.CreateShiftDTO{
				DepartmentID: dept.ID,
				Date:         "2025-10-06",
				StartTime:    "09:00",
				EndTime:      "17:00",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(sh.ID).NotTo(BeEmpty())
		})

		It("rejects an unknown department", func() {
			_, err := svc.Create(admin, shift.CreateShiftDTO{
				DepartmentID: uuid.NewString(),
				Date:         "2025-10-06",
				StartTime:    "09:00",
				EndTime:      "17:00",
			})
			Expect(internal.IsCode(err, internal.ErrCodeNotFound)).To(BeTrue())
		})

		It("rejects a window that does not move forward", func() {
			_, err := svc.Create(admin, shift.CreateShiftDTO{
				DepartmentID: dept.ID,
				Date:         "2025-10-06",
				StartTime:    "17:00",
				EndTime:      "09:00",
			})
			Expect(internal.IsCode(err, internal.ErrCodeInvalidTimeOrder)).To(BeTrue())
		})

		It("rejects malformed times and dates", func() {
			_, err := svc.Create(admin, shift.CreateShiftDTO{
				DepartmentID: dept.ID,
				Date:         "06-10-2025",
				StartTime:    "09:00",
				EndTime:      "17:00",
			})
			Expect(internal.IsCode(err, internal.ErrCodeMalformedDate)).To(BeTrue())

			_, err = svc.Create(admin, shift.CreateShiftDTO{
				DepartmentID: dept.ID,
				Date:         "2025-10-06",
				StartTime:    "25:00",
				EndTime:      "17:00",
			})
			Expect(internal.IsCode(err, internal.ErrCodeMalformedTime)).To(BeTrue())
		})

		It("is closed to employees", func() {
			empID := uuid.NewString()
			caller := auth.Caller{UserID: uuid.NewString(), Role: auth.RoleEmployee, EmployeeID: &empID}

			_, err := svc.Create(caller, shift.CreateShiftDTO{
				DepartmentID: dept.ID,
				Date:         "2025-10-06",
				StartTime:    "09:00",
				EndTime:      "17:00",
			})
			Expect(internal.IsCode(err, internal.ErrCodeForbidden)).To(BeTrue())
		})
	})

	Describe("Update", func() {
		It("re-asserts time order when either time field changes", func() {
			sh, err := svc.Create(admin, shift.CreateShiftDTO{
				DepartmentID: dept.ID,
				Date:         "2025-10-06",
				StartTime:    "09:00",
				EndTime:      "17:00",
			})
			Expect(err).NotTo(HaveOccurred())

			badStart := "18:00"
			_, err = svc.Update(admin, sh.ID, shift.UpdateShiftDTO{StartTime: &badStart})
			Expect(internal.IsCode(err, internal.ErrCodeInvalidTimeOrder)).To(BeTrue())

			goodStart := "10:00"
			updated, err := svc.Update(admin, sh.ID, shift.UpdateShiftDTO{StartTime: &goodStart})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.StartTime).To(Equal(goodStart))
		})

		It("leaves times untouched when only notes change", func() {
			sh, err := svc.Create(admin, shift.CreateShiftDTO{
				DepartmentID: dept.ID,
				Date:         "2025-10-06",
				StartTime:    "09:00",
				EndTime:      "17:00",
			})
			Expect(err).NotTo(HaveOccurred())

			notes := "bring keys"
			updated, err := svc.Update(admin, sh.ID, shift.UpdateShiftDTO{Notes: &notes})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Notes).To(Equal(notes))
			Expect(updated.StartTime).To(Equal("09:00"))
		})
	})

	Describe("List", func() {
		It("filters by department and date range", func() {
			other := &department.Department{Name: "Warehouse"}
			Expect(db.Create(other).Error).NotTo(HaveOccurred())

			mk := func(deptID, date string) {
				_, err := svc.Create(admin, shift.CreateShiftDTO{
					DepartmentID: deptID,
					Date:         date,
					StartTime:    "09:00",
					EndTime:      "17:00",
				})
				Expect(err).NotTo(HaveOccurred())
			}
			mk(dept.ID, "2025-10-06")
			mk(dept.ID, "2025-10-20")
			mk(other.ID, "2025-10-06")

			from, _ := timeutil.ParseDate("2025-10-01")
			to, _ := timeutil.ParseDate("2025-10-10")
			rows, err := svc.List(admin, shift.Filter{DepartmentID: dept.ID, From: &from, To: &to})
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].DepartmentID).To(Equal(dept.ID))
		})
	})
})

package assignment_test

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
	"github.com/staffgrid/backend/internal/assignment"
	assignmentstore "github.com/staffgrid/backend/internal/assignment/postgres"
	"github.com/staffgrid/backend/internal/auth"
	"github.com/staffgrid/backend/internal/availability"
	availabilitystore "github.com/staffgrid/backend/internal/availability/postgres"
	"github.com/staffgrid/backend/internal/department"
	"github.com/staffgrid/backend/internal/employee"
	employeestore "github.com/staffgrid/backend/internal/employee/postgres"
	"github.com/staffgrid/backend/internal/shift"
	shiftstore "github.com/staffgrid/backend/internal/shift/postgres"
	"github.com/staffgrid/backend/internal/timeoff"
	timeoffstore "github.com/staffgrid/backend/internal/timeoff/postgres"
	"github.com/staffgrid/backend/internal/timeutil"
	"github.com/staffgrid/backend/internal/user"
)

func TestAssignmentService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "AssignmentService Suite")
}

var _ = Describe("AssignmentService", func() {
	var (
		db    *gorm.DB
		svc   *assignment.Service
		dept  *department.Department
		admin auth.Caller
	)

	createEmployee := func() *employee.Employee {
		u := &user.User{
			FullName:     "Worker",
			Email:        uuid.NewString() + "@test.dev",
			PasswordHash: "x",
			Role:         "EMPLOYEE",
		}
		Expect(db.Create(u).Error).NotTo(HaveOccurred())

		e := &employee.Employee{UserID: u.ID, DepartmentID: dept.ID}
		Expect(db.Create(e).Error).NotTo(HaveOccurred())
		return e
	}

	employeeCaller := func(e *employee.Employee) auth.Caller {
		return auth.Caller{UserID: e.UserID, Role: auth.RoleEmployee, EmployeeID: &e.ID}
	}

	createShift := func(date, startTime, endTime string) *shift.Shift {
		d, err := timeutil.ParseDate(date)
		Expect(err).NotTo(HaveOccurred())

		sh := &shift.Shift{
			DepartmentID: dept.ID,
			Date:         d,
			StartTime:    startTime,
			EndTime:      endTime,
		}
		Expect(db.Create(sh).Error).NotTo(HaveOccurred())
		return sh
	}

	createApprovedTimeOff := func(employeeID, startDate, endDate string) {
		from, err := timeutil.ParseDate(startDate)
		Expect(err).NotTo(HaveOccurred())
		to, err := timeutil.ParseDate(endDate)
		Expect(err).NotTo(HaveOccurred())

		Expect(db.Create(&timeoff.TimeOff{
			EmployeeID: employeeID,
			Type:       timeoff.TypeVacation,
			StartDate:  from,
			EndDate:    to,
			Status:     timeoff.StatusApproved,
		}).Error).NotTo(HaveOccurred())
	}

	declareAvailability := func(employeeID string, weekday int, startTime, endTime string) {
		Expect(db.Create(&availability.Availability{
			EmployeeID: employeeID,
			Weekday:    weekday,
			StartTime:  startTime,
			EndTime:    endTime,
		}).Error).NotTo(HaveOccurred())
	}

	propose := func(caller auth.Caller, shiftID, employeeID string) (*assignment.ShiftAssignment, error) {
		return svc.Propose(caller, assignment.CreateAssignmentDTO{ShiftID: shiftID, EmployeeID: employeeID})
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&user.User{},
			&department.Department{},
			&employee.Employee{},
			&availability.Availability{},
			&timeoff.TimeOff{},
			&shift.Shift{},
			&assignment.ShiftAssignment{},
		)
		Expect(err).NotTo(HaveOccurred())

		dept = &department.Department{Name: "Operations"}
		Expect(db.Create(dept).Error).NotTo(HaveOccurred())

		adminUser := &user.User{
			FullName:     "Manager",
			Email:        uuid.NewString() + "@test.dev",
			PasswordHash: "x",
			Role:         "MANAGER",
		}
		Expect(db.Create(adminUser).Error).NotTo(HaveOccurred())
		admin = auth.Caller{UserID: adminUser.ID, Role: auth.RoleManager}

		lg := slog.New(slog.NewTextHandler(io.Discard, nil))
		repo := assignmentstore.NewAssignmentRepository(db)
		evaluator := assignment.NewConflictEvaluator(
			repo,
			timeoffstore.NewTimeOffRepository(db),
			availabilitystore.NewAvailabilityRepository(db),
		)
		svc = assignment.NewService(
			repo,
			shiftstore.NewShiftRepository(db),
			employeestore.NewEmployeeRepository(db),
			evaluator,
			nil,
			lg,
		)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("Propose", func() {
		It("admits a clean proposal and records who assigned it", func() {
			e := createEmployee()
			sh := createShift("2025-10-06", "09:00", "17:00")

			a, err := propose(admin, sh.ID, e.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.ShiftID).To(Equal(sh.ID))
			Expect(a.EmployeeID).To(Equal(e.ID))
			Expect(a.AssignedByID).To(Equal(admin.UserID))
			Expect(a.Shift).NotTo(BeNil())
		})

		It("rejects an unknown shift before any other rule", func() {
			e := createEmployee()

			_, err := propose(admin, uuid.NewString(), e.ID)
			Expect(internal.IsCode(err, internal.ErrCodeNotFound)).To(BeTrue())
		})

		It("rejects an unknown employee", func() {
			sh := createShift("2025-10-06", "09:00", "17:00")

			_, err := propose(admin, sh.ID, uuid.NewString())
			Expect(internal.IsCode(err, internal.ErrCodeNotFound)).To(BeTrue())
		})

		It("admits the same pair once and rejects it as a duplicate thereafter", func() {
			e := createEmployee()
			sh := createShift("2025-10-06", "09:00", "17:00")

			_, err := propose(admin, sh.ID, e.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = propose(admin, sh.ID, e.ID)
			Expect(internal.IsCode(err, internal.ErrCodeDuplicateAssignment)).To(BeTrue())

			_, err = propose(admin, sh.ID, e.ID)
			Expect(internal.IsCode(err, internal.ErrCodeDuplicateAssignment)).To(BeTrue())
		})

		It("reports the duplicate before a time-off conflict on the same proposal", func() {
			e := createEmployee()
			sh := createShift("2025-10-06", "09:00", "17:00")

			_, err := propose(admin, sh.ID, e.ID)
			Expect(err).NotTo(HaveOccurred())

			createApprovedTimeOff(e.ID, "2025-10-06", "2025-10-06")

			_, err = propose(admin, sh.ID, e.ID)
			Expect(internal.IsCode(err, internal.ErrCodeDuplicateAssignment)).To(BeTrue())
		})

		It("rejects overlapping shifts in either order but admits a touching boundary", func() {
			e := createEmployee()
			shiftA := createShift("2025-10-06", "09:00", "13:00")
			shiftB := createShift("2025-10-06", "12:00", "16:00")
			shiftC := createShift("2025-10-06", "13:00", "17:00")

			_, err := propose(admin, shiftA.ID, e.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = propose(admin, shiftB.ID, e.ID)
			Expect(internal.IsCode(err, internal.ErrCodeShiftOverlap)).To(BeTrue())

			_, err = propose(admin, shiftC.ID, e.ID)
			Expect(err).NotTo(HaveOccurred())

			other := createEmployee()
			_, err = propose(admin, shiftB.ID, other.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = propose(admin, shiftA.ID, other.ID)
			Expect(internal.IsCode(err, internal.ErrCodeShiftOverlap)).To(BeTrue())
		})

		It("blocks every day covered by an approved leave, inclusive of both ends", func() {
			e := createEmployee()
			createApprovedTimeOff(e.ID, "2025-10-05", "2025-10-07")

			blockedStart := createShift("2025-10-05", "09:00", "13:00")
			blockedEnd := createShift("2025-10-07", "09:00", "13:00")
			dayBefore := createShift("2025-10-04", "09:00", "13:00")
			dayAfter := createShift("2025-10-08", "09:00", "13:00")

			_, err := propose(admin, blockedStart.ID, e.ID)
			Expect(internal.IsCode(err, internal.ErrCodeTimeOffConflict)).To(BeTrue())

			_, err = propose(admin, blockedEnd.ID, e.ID)
			Expect(internal.IsCode(err, internal.ErrCodeTimeOffConflict)).To(BeTrue())

			_, err = propose(admin, dayBefore.ID, e.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = propose(admin, dayAfter.ID, e.ID)
			Expect(err).NotTo(HaveOccurred())
		})

		It("ignores pending and declined leave", func() {
			e := createEmployee()
			from, _ := timeutil.ParseDate("2025-10-06")
			Expect(db.Create(&timeoff.TimeOff{
				EmployeeID: e.ID,
				Type:       timeoff.TypeSick,
				StartDate:  from,
				EndDate:    from,
				Status:     timeoff.StatusPending,
			}).Error).NotTo(HaveOccurred())

			sh := createShift("2025-10-06", "09:00", "13:00")
			_, err := propose(admin, sh.ID, e.ID)
			Expect(err).NotTo(HaveOccurred())
		})

		It("never blocks on a weekday with no declared availability", func() {
			e := createEmployee()
			sh := createShift("2025-10-06", "00:30", "23:30")

			_, err := propose(admin, sh.ID, e.ID)
			Expect(err).NotTo(HaveOccurred())
		})

		It("requires full containment within a declared window", func() {
			// 2025-10-07 is a Tuesday
			exact := createEmployee()
			declareAvailability(exact.ID, 2, "10:00", "18:00")
			sh := createShift("2025-10-07", "10:00", "18:00")
			_, err := propose(admin, sh.ID, exact.ID)
			Expect(err).NotTo(HaveOccurred())

			inside := createEmployee()
			declareAvailability(inside.ID, 2, "10:00", "18:00")
			sh = createShift("2025-10-07", "11:00", "17:00")
			_, err = propose(admin, sh.ID, inside.ID)
			Expect(err).NotTo(HaveOccurred())

			startsEarly := createEmployee()
			declareAvailability(startsEarly.ID, 2, "10:00", "18:00")
			sh = createShift("2025-10-07", "09:00", "12:00")
			_, err = propose(admin, sh.ID, startsEarly.ID)
			Expect(internal.IsCode(err, internal.ErrCodeAvailabilityViolation)).To(BeTrue())

			endsLate := createEmployee()
			declareAvailability(endsLate.ID, 2, "10:00", "18:00")
			sh = createShift("2025-10-07", "17:00", "19:00")
			_, err = propose(admin, sh.ID, endsLate.ID)
			Expect(internal.IsCode(err, internal.ErrCodeAvailabilityViolation)).To(BeTrue())
		})

		It("admits a window contained in any one of several declared rows", func() {
			e := createEmployee()
			declareAvailability(e.ID, 2, "06:00", "09:00")
			declareAvailability(e.ID, 2, "14:00", "20:00")

			sh := createShift("2025-10-07", "15:00", "19:00")
			_, err := propose(admin, sh.ID, e.ID)
			Expect(err).NotTo(HaveOccurred())
		})

		It("forbids employees from proposing assignments", func() {
			e := createEmployee()
			sh := createShift("2025-10-06", "09:00", "13:00")

			_, err := propose(employeeCaller(e), sh.ID, e.ID)
			Expect(internal.IsCode(err, internal.ErrCodeForbidden)).To(BeTrue())
		})
	})

	Describe("Update", func() {
		It("excludes the assignment being moved from its own overlap check", func() {
			e := createEmployee()
			shiftA := createShift("2025-10-06", "09:00", "13:00")
			shiftB := createShift("2025-10-06", "10:00", "14:00")

			a, err := propose(admin, shiftA.ID, e.ID)
			Expect(err).NotTo(HaveOccurred())

			moved, err := svc.Update(admin, a.ID, assignment.UpdateAssignmentDTO{ShiftID: &shiftB.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(moved.ShiftID).To(Equal(shiftB.ID))
		})

		It("re-runs the full chain against the resulting pair", func() {
			e := createEmployee()
			shiftA := createShift("2025-10-06", "09:00", "13:00")
			shiftLeave := createShift("2025-10-10", "09:00", "13:00")
			createApprovedTimeOff(e.ID, "2025-10-10", "2025-10-10")

			a, err := propose(admin, shiftA.ID, e.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.Update(admin, a.ID, assignment.UpdateAssignmentDTO{ShiftID: &shiftLeave.ID})
			Expect(internal.IsCode(err, internal.ErrCodeTimeOffConflict)).To(BeTrue())
		})

		It("rejects reassigning onto a pair that already exists", func() {
			e := createEmployee()
			other := createEmployee()
			sh := createShift("2025-10-06", "09:00", "13:00")

			_, err := propose(admin, sh.ID, e.ID)
			Expect(err).NotTo(HaveOccurred())
			a, err := propose(admin, sh.ID, other.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.Update(admin, a.ID, assignment.UpdateAssignmentDTO{EmployeeID: &e.ID})
			Expect(internal.IsCode(err, internal.ErrCodeDuplicateAssignment)).To(BeTrue())
		})
	})

	Describe("Remove", func() {
		It("removes without running admission rules", func() {
			e := createEmployee()
			sh := createShift("2025-10-06", "09:00", "13:00")

			a, err := propose(admin, sh.ID, e.ID)
			Expect(err).NotTo(HaveOccurred())

			// a later leave makes the assignment inadmissible, removal still works
			createApprovedTimeOff(e.ID, "2025-10-06", "2025-10-06")

			Expect(svc.Remove(admin, a.ID)).To(Succeed())

			_, err = svc.Get(admin, a.ID)
			Expect(internal.IsCode(err, internal.ErrCodeNotFound)).To(BeTrue())
		})

		It("forbids employees from removing assignments", func() {
			e := createEmployee()
			sh := createShift("2025-10-06", "09:00", "13:00")

			a, err := propose(admin, sh.ID, e.ID)
			Expect(err).NotTo(HaveOccurred())

			err = svc.Remove(employeeCaller(e), a.ID)
			Expect(internal.IsCode(err, internal.ErrCodeForbidden)).To(BeTrue())
		})
	})

	Describe("List and Get scoping", func() {
		It("forces employee listings onto their own rows", func() {
			mine := createEmployee()
			other := createEmployee()
			shiftA := createShift("2025-10-06", "09:00", "13:00")
			shiftB := createShift("2025-10-06", "13:00", "17:00")

			_, err := propose(admin, shiftA.ID, mine.ID)
			Expect(err).NotTo(HaveOccurred())
			_, err = propose(admin, shiftB.ID, other.ID)
			Expect(err).NotTo(HaveOccurred())

			rows, err := svc.List(employeeCaller(mine), assignment.Filter{EmployeeID: other.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].EmployeeID).To(Equal(mine.ID))
		})

		It("returns an empty list for an employee with no profile", func() {
			caller := auth.Caller{UserID: uuid.NewString(), Role: auth.RoleEmployee}

			rows, err := svc.List(caller, assignment.Filter{})
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(BeEmpty())
		})

		It("refuses to show an employee someone else's assignment", func() {
			mine := createEmployee()
			other := createEmployee()
			sh := createShift("2025-10-06", "09:00", "13:00")

			a, err := propose(admin, sh.ID, other.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.Get(employeeCaller(mine), a.ID)
			Expect(internal.IsCode(err, internal.ErrCodeForbidden)).To(BeTrue())
		})
	})
})

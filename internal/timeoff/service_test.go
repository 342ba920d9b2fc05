package timeoff_test

import (
	"context"
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
	"github.com/staffgrid/backend/internal/core/events"
	"github.com/staffgrid/backend/internal/department"
	"github.com/staffgrid/backend/internal/employee"
	"github.com/staffgrid/backend/internal/timeoff"
	timeoffstore "github.com/staffgrid/backend/internal/timeoff/postgres"
	"github.com/staffgrid/backend/internal/user"
)

func TestTimeOffService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "TimeOffService Suite")
}

type capturingPublisher struct {
	events []events.Event
}

func (p *capturingPublisher) PublishSync(ctx context.Context, event events.Event) error {
	p.events = append(p.events, event)
	return nil
}

var _ = Describe("TimeOffService", func() {
	var (
		db        *gorm.DB
		svc       *timeoff.Service
		publisher *capturingPublisher
		dept      *department.Department
		admin     auth.Caller
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

	fileRequest := func(caller auth.Caller, employeeID string) *timeoff.TimeOff {
		t, err := svc.Create(caller, timeoff.CreateTimeOffDTO{
			EmployeeID: employeeID,
			Type:       timeoff.TypeVacation,
			StartDate:  "2025-10-05",
			EndDate:    "2025-10-07",
			Reason:     "trip",
		})
		Expect(err).NotTo(HaveOccurred())
		return t
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&user.User{}, &department.Department{}, &employee.Employee{}, &timeoff.TimeOff{})
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

		publisher = &capturingPublisher{}
		lg := slog.New(slog.NewTextHandler(io.Discard, nil))
		svc = timeoff.NewService(timeoffstore.NewTimeOffRepository(db), publisher, lg)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("Create", func() {
		It("always starts PENDING, ignoring a caller-supplied status", func() {
			e := createEmployee()

			t, err := svc.Create(admin, timeoff.CreateTimeOffDTO{
				EmployeeID: e.ID,
				Type:       timeoff.TypeSick,
				StartDate:  "2025-10-05",
				EndDate:    "2025-10-05",
				Status:     timeoff.StatusApproved,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(t.Status).To(Equal(timeoff.StatusPending))
		})

		It("forces an employee's request onto their own profile", func() {
			mine := createEmployee()
			other := createEmployee()

			t, err := svc.Create(employeeCaller(mine), timeoff.CreateTimeOffDTO{
				EmployeeID: other.ID,
				Type:       timeoff.TypeVacation,
				StartDate:  "2025-10-05",
				EndDate:    "2025-10-06",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(t.EmployeeID).To(Equal(mine.ID))
		})

		It("rejects an employee caller with no profile", func() {
			caller := auth.Caller{UserID: uuid.NewString(), Role: auth.RoleEmployee}

			_, err := svc.Create(caller, timeoff.CreateTimeOffDTO{
				EmployeeID: uuid.NewString(),
				Type:       timeoff.TypeVacation,
				StartDate:  "2025-10-05",
				EndDate:    "2025-10-06",
			})
			Expect(internal.IsCode(err, internal.ErrCodeForbidden)).To(BeTrue())
		})

		It("rejects a reversed date range", func() {
			e := createEmployee()

			_, err := svc.Create(admin, timeoff.CreateTimeOffDTO{
				EmployeeID: e.ID,
				Type:       timeoff.TypeVacation,
				StartDate:  "2025-10-07",
				EndDate:    "2025-10-05",
			})
			Expect(internal.IsCode(err, internal.ErrCodeInvalidDateOrder)).To(BeTrue())
		})

		It("rejects an unknown type", func() {
			e := createEmployee()

			_, err := svc.Create(admin, timeoff.CreateTimeOffDTO{
				EmployeeID: e.ID,
				Type:       "HOLIDAY",
				StartDate:  "2025-10-05",
				EndDate:    "2025-10-06",
			})
			Expect(internal.IsCode(err, internal.ErrCodeInvalidType)).To(BeTrue())
		})
	})

	Describe("Lifecycle", func() {
		It("moves PENDING to APPROVED and publishes the change", func() {
			e := createEmployee()
			t := fileRequest(admin, e.ID)

			approved, err := svc.Approve(admin, t.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(approved.Status).To(Equal(timeoff.StatusApproved))

			Expect(publisher.events).To(HaveLen(1))
			Expect(publisher.events[0].EventType()).To(Equal(events.TimeOffStatusChanged))
		})

		It("treats APPROVED and DECLINED as terminal", func() {
			e := createEmployee()
			t := fileRequest(admin, e.ID)

			_, err := svc.Approve(admin, t.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.Decline(admin, t.ID)
			Expect(internal.IsCode(err, internal.ErrCodeNotDeletable)).To(BeTrue())

			_, err = svc.Approve(admin, t.ID)
			Expect(internal.IsCode(err, internal.ErrCodeNotDeletable)).To(BeTrue())
		})

		It("refuses to let employees drive status, even on their own request", func() {
			e := createEmployee()
			t := fileRequest(employeeCaller(e), e.ID)

			_, err := svc.Approve(employeeCaller(e), t.ID)
			Expect(internal.IsCode(err, internal.ErrCodeForbidden)).To(BeTrue())
		})

		It("strips a status smuggled into an employee's edit", func() {
			e := createEmployee()
			t := fileRequest(employeeCaller(e), e.ID)

			status := timeoff.StatusApproved
			reason := "still a trip"
			updated, err := svc.Update(employeeCaller(e), t.ID, timeoff.UpdateTimeOffDTO{
				Status: &status,
				Reason: &reason,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(timeoff.StatusPending))
			Expect(updated.Reason).To(Equal(reason))
		})

		It("lets the owner edit substantive fields only while PENDING", func() {
			e := createEmployee()
			t := fileRequest(employeeCaller(e), e.ID)

			newEnd := "2025-10-08"
			updated, err := svc.Update(employeeCaller(e), t.ID, timeoff.UpdateTimeOffDTO{EndDate: &newEnd})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.EndDate.Format("2006-01-02")).To(Equal(newEnd))

			_, err = svc.Approve(admin, t.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.Update(employeeCaller(e), t.ID, timeoff.UpdateTimeOffDTO{EndDate: &newEnd})
			Expect(internal.IsCode(err, internal.ErrCodeNotDeletable)).To(BeTrue())
		})

		It("keeps other employees out of a request they do not own", func() {
			mine := createEmployee()
			other := createEmployee()
			t := fileRequest(employeeCaller(mine), mine.ID)

			reason := "not yours"
			_, err := svc.Update(employeeCaller(other), t.ID, timeoff.UpdateTimeOffDTO{Reason: &reason})
			Expect(internal.IsCode(err, internal.ErrCodeForbidden)).To(BeTrue())

			err = svc.Delete(employeeCaller(other), t.ID)
			Expect(internal.IsCode(err, internal.ErrCodeForbidden)).To(BeTrue())
		})

		It("lets an admin reassign the request while PENDING", func() {
			mine := createEmployee()
			other := createEmployee()
			t := fileRequest(admin, mine.ID)

			updated, err := svc.Update(admin, t.ID, timeoff.UpdateTimeOffDTO{EmployeeID: &other.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.EmployeeID).To(Equal(other.ID))
		})
	})

	Describe("Delete", func() {
		It("deletes only while PENDING, for admins too", func() {
			e := createEmployee()
			t := fileRequest(admin, e.ID)

			_, err := svc.Approve(admin, t.ID)
			Expect(err).NotTo(HaveOccurred())

			err = svc.Delete(admin, t.ID)
			Expect(internal.IsCode(err, internal.ErrCodeNotDeletable)).To(BeTrue())
		})

		It("lets the owner delete a pending request", func() {
			e := createEmployee()
			t := fileRequest(employeeCaller(e), e.ID)

			Expect(svc.Delete(employeeCaller(e), t.ID)).To(Succeed())

			_, err := svc.Get(admin, t.ID)
			Expect(internal.IsCode(err, internal.ErrCodeNotFound)).To(BeTrue())
		})
	})

	Describe("Scoping", func() {
		It("forces employee listings onto their own rows", func() {
			mine := createEmployee()
			other := createEmployee()
			fileRequest(admin, mine.ID)
			fileRequest(admin, other.ID)

			rows, err := svc.List(employeeCaller(mine), timeoff.Filter{EmployeeID: other.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].EmployeeID).To(Equal(mine.ID))
		})

		It("returns an empty list for an employee with no profile", func() {
			caller := auth.Caller{UserID: uuid.NewString(), Role: auth.RoleEmployee}

			rows, err := svc.List(caller, timeoff.Filter{})
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(BeEmpty())
		})

		It("enforces self-scope on read", func() {
			mine := createEmployee()
			other := createEmployee()
			t := fileRequest(admin, other.ID)

			_, err := svc.Get(employeeCaller(mine), t.ID)
			Expect(internal.IsCode(err, internal.ErrCodeForbidden)).To(BeTrue())
		})
	})
})

package auth_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/staffgrid/backend/internal"
	"github.com/staffgrid/backend/internal/auth"
)

func TestAccessPolicy(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "AccessPolicy Suite")
}

var _ = Describe("Authorize", func() {
	caller := func(role auth.Role) auth.Caller {
		return auth.Caller{UserID: "u-1", Role: role}
	}

	DescribeTable("role gates per resource and action",
		func(role auth.Role, resource auth.Resource, action auth.Action, allowed bool) {
			err := auth.Authorize(caller(role), resource, action)
			if allowed {
				Expect(err).NotTo(HaveOccurred())
			} else {
				Expect(internal.IsCode(err, internal.ErrCodeForbidden)).To(BeTrue())
			}
		},

		Entry("employees may list their availability", auth.RoleEmployee, auth.ResourceAvailability, auth.ActionList, true),
		Entry("employees may file time off", auth.RoleEmployee, auth.ResourceTimeOff, auth.ActionCreate, true),
		Entry("employees may list assignments", auth.RoleEmployee, auth.ResourceAssignment, auth.ActionList, true),
		Entry("employees may read an assignment", auth.RoleEmployee, auth.ResourceAssignment, auth.ActionRead, true),

		Entry("employees may not create assignments", auth.RoleEmployee, auth.ResourceAssignment, auth.ActionCreate, false),
		Entry("employees may not update assignments", auth.RoleEmployee, auth.ResourceAssignment, auth.ActionUpdate, false),
		Entry("employees may not delete assignments", auth.RoleEmployee, auth.ResourceAssignment, auth.ActionDelete, false),
		Entry("employees may not list shifts", auth.RoleEmployee, auth.ResourceShift, auth.ActionList, false),
		Entry("employees may not touch departments", auth.RoleEmployee, auth.ResourceDepartment, auth.ActionCreate, false),
		Entry("employees may not list users", auth.RoleEmployee, auth.ResourceUser, auth.ActionList, false),

		Entry("managers may create assignments", auth.RoleManager, auth.ResourceAssignment, auth.ActionCreate, true),
		Entry("managers may manage shifts", auth.RoleManager, auth.ResourceShift, auth.ActionDelete, true),
		Entry("managers may manage employees", auth.RoleManager, auth.ResourceEmployee, auth.ActionUpdate, true),
		Entry("managers may not delete users", auth.RoleManager, auth.ResourceUser, auth.ActionDelete, false),

		Entry("owners may delete users", auth.RoleOwner, auth.ResourceUser, auth.ActionDelete, true),
		Entry("owners may create assignments", auth.RoleOwner, auth.ResourceAssignment, auth.ActionCreate, true),

		Entry("unknown resources are denied", auth.RoleOwner, auth.Resource("payroll"), auth.ActionList, false),
	)

	It("treats OWNER and MANAGER alike everywhere except user deletion", func() {
		for _, resource := range []auth.Resource{
			auth.ResourceAvailability,
			auth.ResourceTimeOff,
			auth.ResourceAssignment,
			auth.ResourceShift,
			auth.ResourceDepartment,
			auth.ResourceEmployee,
		} {
			for _, action := range []auth.Action{auth.ActionList, auth.ActionRead, auth.ActionCreate, auth.ActionUpdate, auth.ActionDelete} {
				ownerErr := auth.Authorize(caller(auth.RoleOwner), resource, action)
				managerErr := auth.Authorize(caller(auth.RoleManager), resource, action)
				Expect(ownerErr == nil).To(Equal(managerErr == nil),
					"owner and manager diverged on %s %s", resource, action)
			}
		}
	})
})

var _ = Describe("Caller", func() {
	It("owns only its linked employee profile", func() {
		id := "emp-1"
		c := auth.Caller{UserID: "u-1", Role: auth.RoleEmployee, EmployeeID: &id}

		Expect(c.OwnsEmployee("emp-1")).To(BeTrue())
		Expect(c.OwnsEmployee("emp-2")).To(BeFalse())
	})

	It("owns nothing without a profile", func() {
		c := auth.Caller{UserID: "u-1", Role: auth.RoleEmployee}

		Expect(c.OwnsEmployee("emp-1")).To(BeFalse())
	})
})

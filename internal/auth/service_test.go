package auth_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/staffgrid/backend/internal"
	"github.com/staffgrid/backend/internal/auth"
)

type fakeAuthRepo struct {
	userID       string
	email        string
	passwordHash string
	role         string
	employeeID   *string
	created      []string
}

func (r *fakeAuthRepo) GetCredentialsByEmail(email string) (string, string, string, error) {
	if email != r.email {
		return "", "", "", internal.NewNotFoundError("user not found")
	}
	return r.userID, r.passwordHash, r.role, nil
}

func (r *fakeAuthRepo) GetRoleByUserID(userID string) (string, error) {
	if userID != r.userID {
		return "", internal.NewNotFoundError("user not found")
	}
	return r.role, nil
}

func (r *fakeAuthRepo) GetEmployeeIDByUserID(userID string) (*string, error) {
	return r.employeeID, nil
}

func (r *fakeAuthRepo) CreateUser(fullName, email, passwordHash, role string) (string, error) {
	r.created = append(r.created, email)
	return "new-user-id", nil
}

var _ = Describe("AuthService", func() {
	var (
		repo *fakeAuthRepo
		svc  *auth.Service
	)

	BeforeEach(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
		Expect(err).NotTo(HaveOccurred())

		repo = &fakeAuthRepo{
			userID:       "u-1",
			email:        "worker@staffgrid.dev",
			passwordHash: string(hash),
			role:         "EMPLOYEE",
		}
		tokenGen := auth.NewJWTTokenGenerator("access-secret", "refresh-secret", time.Minute, time.Hour)
		svc = auth.NewService(repo, tokenGen, bcrypt.MinCost)
	})

	Describe("Authenticate", func() {
		It("issues a token pair for valid credentials", func() {
			tokens, err := svc.Authenticate(auth.LoginDTO{Email: "worker@staffgrid.dev", Password: "correct horse"})
			Expect(err).NotTo(HaveOccurred())
			Expect(tokens.AccessToken).NotTo(BeEmpty())
			Expect(tokens.RefreshToken).NotTo(BeEmpty())

			claims, err := svc.ValidateAccessToken(tokens.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal("u-1"))
			Expect(claims.Role).To(Equal("EMPLOYEE"))
		})

		It("rejects a wrong password without leaking which part failed", func() {
			_, err := svc.Authenticate(auth.LoginDTO{Email: "worker@staffgrid.dev", Password: "wrong"})
			Expect(internal.IsCode(err, internal.ErrCodeInvalidCredentials)).To(BeTrue())
		})

		It("rejects an unknown email with the same error", func() {
			_, err := svc.Authenticate(auth.LoginDTO{Email: "ghost@staffgrid.dev", Password: "correct horse"})
			Expect(internal.IsCode(err, internal.ErrCodeInvalidCredentials)).To(BeTrue())
		})
	})

	Describe("RefreshTokens", func() {
		It("re-reads the role from the store when refreshing", func() {
			tokens, err := svc.Authenticate(auth.LoginDTO{Email: "worker@staffgrid.dev", Password: "correct horse"})
			Expect(err).NotTo(HaveOccurred())

			repo.role = "MANAGER"

			refreshed, err := svc.RefreshTokens(tokens.RefreshToken)
			Expect(err).NotTo(HaveOccurred())

			claims, err := svc.ValidateAccessToken(refreshed.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.Role).To(Equal("MANAGER"))
		})

		It("rejects garbage tokens", func() {
			_, err := svc.RefreshTokens("not-a-token")
			Expect(internal.IsCode(err, internal.ErrCodeInvalidToken)).To(BeTrue())
		})

		It("rejects expired tokens with a distinct code", func() {
			expiredGen := auth.NewJWTTokenGenerator("access-secret", "refresh-secret", -time.Minute, -time.Minute)
			expiredSvc := auth.NewService(repo, expiredGen, bcrypt.MinCost)

			tokens, err := expiredSvc.Authenticate(auth.LoginDTO{Email: "worker@staffgrid.dev", Password: "correct horse"})
			Expect(err).NotTo(HaveOccurred())

			_, err = expiredSvc.RefreshTokens(tokens.RefreshToken)
			Expect(internal.IsCode(err, internal.ErrCodeTokenExpired)).To(BeTrue())
		})
	})

	Describe("ResolveCaller", func() {
		It("resolves the linked employee profile when present", func() {
			employeeID := "emp-9"
			repo.employeeID = &employeeID

			caller, err := svc.ResolveCaller("u-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(caller.Role).To(Equal(auth.RoleEmployee))
			Expect(caller.EmployeeID).NotTo(BeNil())
			Expect(*caller.EmployeeID).To(Equal("emp-9"))
		})

		It("leaves the profile absent for users without one", func() {
			caller, err := svc.ResolveCaller("u-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(caller.EmployeeID).To(BeNil())
		})
	})

	Describe("Register", func() {
		It("creates an employee account and logs it in", func() {
			tokens, userID, err := svc.Register(auth.RegisterDTO{
				FullName: "New Hire",
				Email:    "new@staffgrid.dev",
				Password: "long-enough-pw",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(userID).To(Equal("new-user-id"))
			Expect(tokens.AccessToken).NotTo(BeEmpty())
			Expect(repo.created).To(ContainElement("new@staffgrid.dev"))
		})

		It("rejects a short password", func() {
			_, _, err := svc.Register(auth.RegisterDTO{
				FullName: "New Hire",
				Email:    "new@staffgrid.dev",
				Password: "short",
			})
			Expect(err).To(HaveOccurred())
		})
	})
})

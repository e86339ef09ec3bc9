package auth_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/maintenance-management/internal/auth"
)

func TestAuth(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Module Suite")
}

func teamRef(v int64) *int64 { return &v }

var _ = Describe("RolePolicy", func() {
	var policy *auth.RolePolicy

	BeforeEach(func() {
		policy = auth.NewRolePolicy()
	})

	Describe("CanAccessRequest", func() {
		const requestTeam = int64(10)

		It("admits admins, managers and employees regardless of team", func() {
			for _, role := range []string{auth.RoleAdmin, auth.RoleManager, auth.RoleEmployee} {
				u := &auth.User{ID: 1, Role: role}
				Expect(policy.CanAccessRequest(u, requestTeam, nil)).To(BeTrue())
			}
		})

		It("admits a technician on the owning team", func() {
			u := &auth.User{ID: 3, Role: auth.RoleTechnician, TeamID: teamRef(requestTeam)}
			Expect(policy.CanAccessRequest(u, requestTeam, nil)).To(BeTrue())
		})

		It("admits the assigned technician even from another team", func() {
			u := &auth.User{ID: 3, Role: auth.RoleTechnician, TeamID: teamRef(99)}
			assigned := u.ID
			Expect(policy.CanAccessRequest(u, requestTeam, &assigned)).To(BeTrue())
		})

		It("rejects an unrelated technician", func() {
			u := &auth.User{ID: 3, Role: auth.RoleTechnician, TeamID: teamRef(99)}
			other := int64(42)
			Expect(policy.CanAccessRequest(u, requestTeam, &other)).To(BeFalse())
			Expect(policy.CanAccessRequest(u, requestTeam, nil)).To(BeFalse())
		})

		It("rejects a technician without a team", func() {
			u := &auth.User{ID: 3, Role: auth.RoleTechnician}
			Expect(policy.CanAccessRequest(u, requestTeam, nil)).To(BeFalse())
		})

		It("rejects a nil user", func() {
			Expect(policy.CanAccessRequest(nil, requestTeam, nil)).To(BeFalse())
		})
	})

	Describe("privileged mutations", func() {
		It("allows admins and managers to assign technicians", func() {
			Expect(policy.CanAssignTechnician(&auth.User{Role: auth.RoleAdmin})).To(BeTrue())
			Expect(policy.CanAssignTechnician(&auth.User{Role: auth.RoleManager})).To(BeTrue())
			Expect(policy.CanAssignTechnician(&auth.User{Role: auth.RoleTechnician})).To(BeFalse())
			Expect(policy.CanAssignTechnician(&auth.User{Role: auth.RoleEmployee})).To(BeFalse())
		})

		It("limits deletes to admins", func() {
			Expect(policy.CanDeleteEquipment(&auth.User{Role: auth.RoleAdmin})).To(BeTrue())
			Expect(policy.CanDeleteEquipment(&auth.User{Role: auth.RoleManager})).To(BeFalse())
			Expect(policy.CanDeleteTeam(&auth.User{Role: auth.RoleAdmin})).To(BeTrue())
			Expect(policy.CanDeleteTeam(&auth.User{Role: auth.RoleManager})).To(BeFalse())
		})

		It("allows admins and managers to scrap equipment", func() {
			Expect(policy.CanScrapEquipment(&auth.User{Role: auth.RoleManager})).To(BeTrue())
			Expect(policy.CanScrapEquipment(&auth.User{Role: auth.RoleTechnician})).To(BeFalse())
		})
	})

	Describe("ScopeForUser", func() {
		It("leaves non-technicians unrestricted", func() {
			for _, role := range []string{auth.RoleAdmin, auth.RoleManager, auth.RoleEmployee} {
				scope := policy.ScopeForUser(&auth.User{ID: 1, Role: role})
				Expect(scope.Restricted).To(BeFalse())
			}
		})

		It("restricts technicians to their id and team", func() {
			u := &auth.User{ID: 3, Role: auth.RoleTechnician, TeamID: teamRef(10)}
			scope := policy.ScopeForUser(u)
			Expect(scope.Restricted).To(BeTrue())
			Expect(scope.TechnicianID).To(Equal(u.ID))
			Expect(*scope.TeamID).To(Equal(int64(10)))
		})

		It("restricts a teamless technician to assignments only", func() {
			scope := policy.ScopeForUser(&auth.User{ID: 3, Role: auth.RoleTechnician})
			Expect(scope.Restricted).To(BeTrue())
			Expect(scope.TeamID).To(BeNil())
		})
	})
})

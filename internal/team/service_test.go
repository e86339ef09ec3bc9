package team_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/frahmantamala/maintenance-management/internal"
	"github.com/frahmantamala/maintenance-management/internal/auth"
	"github.com/frahmantamala/maintenance-management/internal/team"
)

func TestTeamService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Team Service Suite")
}

type rosterEntry struct {
	teamID int64
	userID int64
}

// Mock repository for testing
type mockTeamRepository struct {
	teams     map[int64]*team.MaintenanceTeam
	roster    []rosterEntry
	userRoles map[int64]string
	userTeams map[int64]*int64
	nextID    int64
}

func newMockTeamRepository() *mockTeamRepository {
	return &mockTeamRepository{
		teams:     make(map[int64]*team.MaintenanceTeam),
		userRoles: make(map[int64]string),
		userTeams: make(map[int64]*int64),
		nextID:    1,
	}
}

func (m *mockTeamRepository) Create(t *team.MaintenanceTeam) error {
	t.ID = m.nextID
	m.nextID++
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	m.teams[t.ID] = t
	return nil
}

func (m *mockTeamRepository) GetByID(id int64) (*team.MaintenanceTeam, error) {
	t, exists := m.teams[id]
	if !exists {
		return nil, internal.ErrTeamNotFound
	}
	copied := *t
	return &copied, nil
}

func (m *mockTeamRepository) List(filters team.ListFilters) ([]*team.MaintenanceTeam, error) {
	var result []*team.MaintenanceTeam
	for _, t := range m.teams {
		if filters.Specialization != "" && t.Specialization != filters.Specialization {
			continue
		}
		if filters.IsActive != nil && t.IsActive != *filters.IsActive {
			continue
		}
		result = append(result, t)
	}
	return result, nil
}

func (m *mockTeamRepository) Update(t *team.MaintenanceTeam) error {
	t.UpdatedAt = time.Now()
	m.teams[t.ID] = t
	return nil
}

func (m *mockTeamRepository) Delete(id int64) error {
	delete(m.teams, id)
	var kept []rosterEntry
	for _, e := range m.roster {
		if e.teamID == id {
			m.userTeams[e.userID] = nil
			continue
		}
		kept = append(kept, e)
	}
	m.roster = kept
	return nil
}

func (m *mockTeamRepository) AddTechnician(teamID, userID int64) error {
	var kept []rosterEntry
	for _, e := range m.roster {
		if e.userID == userID {
			continue
		}
		kept = append(kept, e)
	}
	m.roster = append(kept, rosterEntry{teamID: teamID, userID: userID})
	m.userTeams[userID] = &teamID
	return nil
}

func (m *mockTeamRepository) RemoveTechnician(teamID, userID int64) error {
	var kept []rosterEntry
	for _, e := range m.roster {
		if e.teamID == teamID && e.userID == userID {
			m.userTeams[userID] = nil
			continue
		}
		kept = append(kept, e)
	}
	m.roster = kept
	return nil
}

func (m *mockTeamRepository) IsMember(teamID, userID int64) (bool, error) {
	for _, e := range m.roster {
		if e.teamID == teamID && e.userID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockTeamRepository) ListTechnicians(teamID int64) ([]team.Technician, error) {
	var result []team.Technician
	for _, e := range m.roster {
		if e.teamID == teamID {
			result = append(result, team.Technician{ID: e.userID})
		}
	}
	return result, nil
}

func (m *mockTeamRepository) GetUserRole(userID int64) (string, error) {
	role, exists := m.userRoles[userID]
	if !exists {
		return "", internal.ErrUserNotFound
	}
	return role, nil
}

var _ = Describe("TeamService", func() {
	var (
		service *team.Service
		repo    *mockTeamRepository
	)

	BeforeEach(func() {
		repo = newMockTeamRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = team.NewService(logger, repo)
	})

	Describe("CreateTeam", func() {
		It("creates an active team", func() {
			t, err := service.CreateTeam(team.CreateTeamDTO{
				Name:           "Mechanical Crew",
				Specialization: team.SpecializationMechanical,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(t.ID).NotTo(BeZero())
			Expect(t.IsActive).To(BeTrue())
		})

		It("rejects an unknown specialization", func() {
			_, err := service.CreateTeam(team.CreateTeamDTO{
				Name:           "Mystery Crew",
				Specialization: "PLUMBING",
			})
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})

	Describe("ListTeams", func() {
		It("filters by specialization", func() {
			_, err := service.CreateTeam(team.CreateTeamDTO{
				Name:           "Mechanical Crew",
				Specialization: team.SpecializationMechanical,
			})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.CreateTeam(team.CreateTeamDTO{
				Name:           "Electrical Crew",
				Specialization: team.SpecializationElectrical,
			})
			Expect(err).NotTo(HaveOccurred())

			teams, err := service.ListTeams(team.ListFilters{Specialization: team.SpecializationElectrical})
			Expect(err).NotTo(HaveOccurred())
			Expect(teams).To(HaveLen(1))
			Expect(teams[0].Name).To(Equal("Electrical Crew"))
		})
	})

	Describe("AddTechnician", func() {
		var teamID int64

		BeforeEach(func() {
			t, err := service.CreateTeam(team.CreateTeamDTO{
				Name:           "Mechanical Crew",
				Specialization: team.SpecializationMechanical,
			})
			Expect(err).NotTo(HaveOccurred())
			teamID = t.ID

			repo.userRoles[30] = auth.RoleTechnician
			repo.userRoles[40] = auth.RoleEmployee
		})

		It("adds a technician to the roster", func() {
			t, err := service.AddTechnician(teamID, 30)
			Expect(err).NotTo(HaveOccurred())
			Expect(t.Technicians).To(HaveLen(1))
			Expect(*repo.userTeams[30]).To(Equal(teamID))
		})

		It("is idempotent for an existing member", func() {
			_, err := service.AddTechnician(teamID, 30)
			Expect(err).NotTo(HaveOccurred())

			t, err := service.AddTechnician(teamID, 30)
			Expect(err).NotTo(HaveOccurred())
			Expect(t.Technicians).To(HaveLen(1))
		})

		It("rejects users without the technician role", func() {
			_, err := service.AddTechnician(teamID, 40)
			Expect(err).To(MatchError(internal.ErrNotATechnician))
		})

		It("rejects unknown users", func() {
			_, err := service.AddTechnician(teamID, 999)
			Expect(err).To(MatchError(internal.ErrUserNotFound))
		})

		It("rejects unknown teams", func() {
			_, err := service.AddTechnician(999, 30)
			Expect(err).To(MatchError(internal.ErrTeamNotFound))
		})
	})

	Describe("RemoveTechnician", func() {
		It("removes the technician and clears their team reference", func() {
			t, err := service.CreateTeam(team.CreateTeamDTO{
				Name:           "Mechanical Crew",
				Specialization: team.SpecializationMechanical,
			})
			Expect(err).NotTo(HaveOccurred())
			repo.userRoles[30] = auth.RoleTechnician
			_, err = service.AddTechnician(t.ID, 30)
			Expect(err).NotTo(HaveOccurred())

			updated, err := service.RemoveTechnician(t.ID, 30)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Technicians).To(BeEmpty())
			Expect(repo.userTeams[30]).To(BeNil())
		})
	})

	Describe("DeleteTeam", func() {
		It("deletes the team and clears member references", func() {
			t, err := service.CreateTeam(team.CreateTeamDTO{
				Name:           "Mechanical Crew",
				Specialization: team.SpecializationMechanical,
			})
			Expect(err).NotTo(HaveOccurred())
			repo.userRoles[30] = auth.RoleTechnician
			_, err = service.AddTechnician(t.ID, 30)
			Expect(err).NotTo(HaveOccurred())

			Expect(service.DeleteTeam(t.ID)).To(Succeed())
			Expect(repo.userTeams[30]).To(BeNil())

			_, err = service.GetTeam(t.ID)
			Expect(err).To(MatchError(internal.ErrTeamNotFound))
		})

		It("answers not-found for a missing team", func() {
			Expect(service.DeleteTeam(999)).To(MatchError(internal.ErrTeamNotFound))
		})
	})
})

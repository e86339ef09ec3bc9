package auth

import "context"

type ctxKey string

const ContextUserKey ctxKey = "user"

func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ContextUserKey).(*User)
	return u, ok
}

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}

// RolePolicy holds the pure role/relationship predicates gating request
// access and privileged mutations. It carries no state; it exists as a type
// so callers receive it as an explicit dependency instead of reaching into
// package-level functions.
type RolePolicy struct{}

func NewRolePolicy() *RolePolicy {
	return &RolePolicy{}
}

// CanAccessRequest decides item-level access to a maintenance request.
// Admins and managers see everything. Technicians see a request only when
// assigned to it or when it belongs to their team. Employees (and any other
// role) pass the item-level gate; the listing layer is where a view narrows.
func (p *RolePolicy) CanAccessRequest(u *User, teamID int64, assignedTechnicianID *int64) bool {
	if u == nil {
		return false
	}
	if u.Role != RoleTechnician {
		return true
	}
	if assignedTechnicianID != nil && *assignedTechnicianID == u.ID {
		return true
	}
	return u.BelongsToTeam(teamID)
}

func (p *RolePolicy) CanAssignTechnician(u *User) bool {
	return u != nil && u.IsPrivileged()
}

func (p *RolePolicy) CanCreateEquipment(u *User) bool {
	return u != nil && u.IsPrivileged()
}

func (p *RolePolicy) CanUpdateEquipment(u *User) bool {
	return u != nil && u.IsPrivileged()
}

func (p *RolePolicy) CanScrapEquipment(u *User) bool {
	return u != nil && u.IsPrivileged()
}

// Equipment deletion is admin-only, one step stricter than the other
// equipment mutations.
func (p *RolePolicy) CanDeleteEquipment(u *User) bool {
	return u != nil && u.IsAdmin()
}

func (p *RolePolicy) CanManageTeams(u *User) bool {
	return u != nil && u.IsPrivileged()
}

func (p *RolePolicy) CanDeleteTeam(u *User) bool {
	return u != nil && u.IsAdmin()
}

// RequestScope is the composable list-level filter derived from a user's
// role. A restricted scope limits results to requests assigned to the
// technician OR owned by their team; an unrestricted scope applies no
// narrowing. Repositories consume the scope as-is, so the role branching
// lives here and nowhere else.
type RequestScope struct {
	Restricted   bool
	TechnicianID int64
	TeamID       *int64
}

// ScopeForUser builds the listing scope for a user. Only technicians are
// restricted; employees, managers and admins list everything. Employees get
// no created-by narrowing, see DESIGN.md.
func (p *RolePolicy) ScopeForUser(u *User) RequestScope {
	if u == nil || u.Role != RoleTechnician {
		return RequestScope{}
	}
	return RequestScope{
		Restricted:   true,
		TechnicianID: u.ID,
		TeamID:       u.TeamID,
	}
}

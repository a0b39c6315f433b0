package domain

import (
	"fmt"
	"sort"
)

// Role is the acting principal's role within the platform.
type Role string

const (
	RoleOwner       Role = "owner"
	RoleAdmin       Role = "admin"
	RoleRecruiter   Role = "recruiter"
	RoleCoordinator Role = "coordinator"
	RoleVisaOfficer Role = "visa_officer"
	RoleViewer      Role = "viewer"
	RoleCandidate   Role = "candidate"
)

// ParseRole converts a raw string into a known Role.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleOwner, RoleAdmin, RoleRecruiter, RoleCoordinator, RoleVisaOfficer, RoleViewer, RoleCandidate:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// IsAgencyRole reports whether the role acts on behalf of an agency.
func (r Role) IsAgencyRole() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleRecruiter, RoleCoordinator, RoleVisaOfficer, RoleViewer:
		return true
	}
	return false
}

// PermissionMatrix maps roles to the actions they may trigger. It is immutable after construction.
type PermissionMatrix struct {
	allowed map[Role]map[Action]struct{}
}

// NewPermissionMatrix builds a matrix from role and action names, rejecting unknown names.
// Roles absent from grants get no actions.
func NewPermissionMatrix(grants map[string][]string) (*PermissionMatrix, error) {
	allowed := make(map[Role]map[Action]struct{}, len(grants))
	for rawRole, rawActions := range grants {
		role, err := ParseRole(rawRole)
		if err != nil {
			return nil, err
		}
		set := make(map[Action]struct{}, len(rawActions))
		for _, rawAction := range rawActions {
			action, err := ParseAction(rawAction)
			if err != nil {
				return nil, fmt.Errorf("role %s: %w", role, err)
			}
			set[action] = struct{}{}
		}
		allowed[role] = set
	}
	return &PermissionMatrix{allowed: allowed}, nil
}

// DefaultPermissionGrants is the built-in role table.
func DefaultPermissionGrants() map[string][]string {
	agencyManager := []string{
		string(ActionShortlist),
		string(ActionScheduleInterview),
		string(ActionRescheduleInterview),
		string(ActionCompleteInterview),
		string(ActionReject),
		string(ActionBulkShortlist),
		string(ActionBulkReject),
		string(ActionBulkSchedule),
	}
	admin := append(append([]string{}, agencyManager...), string(ActionCorrectHistory), string(ActionManageAPITokens))
	return map[string][]string{
		string(RoleOwner):     admin,
		string(RoleAdmin):     admin,
		string(RoleRecruiter): agencyManager,
		string(RoleCoordinator): {
			string(ActionScheduleInterview),
			string(ActionRescheduleInterview),
			string(ActionCompleteInterview),
			string(ActionBulkSchedule),
		},
		string(RoleVisaOfficer): {},
		string(RoleViewer):      {},
		string(RoleCandidate):   {string(ActionWithdraw)},
	}
}

// DefaultPermissionMatrix returns the matrix built from DefaultPermissionGrants.
func DefaultPermissionMatrix() *PermissionMatrix {
	m, err := NewPermissionMatrix(DefaultPermissionGrants())
	if err != nil {
		panic(err) // built-in table only uses known names
	}
	return m
}

// Allowed reports whether role may perform action. Unknown roles or actions are denied.
func (m *PermissionMatrix) Allowed(role Role, action Action) bool {
	if m == nil {
		return false
	}
	set, ok := m.allowed[role]
	if !ok {
		return false
	}
	_, ok = set[action]
	return ok
}

// Actions returns a sorted copy of the actions granted to role.
func (m *PermissionMatrix) Actions(role Role) []Action {
	if m == nil {
		return nil
	}
	set := m.allowed[role]
	out := make([]Action, 0, len(set))
	for a := range set {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

package domain

// Actor is the resolved identity of whoever triggers an operation.
// AgencyID is empty for candidates.
type Actor struct {
	ID       string `json:"id"`
	Role     Role   `json:"role"`
	AgencyID string `json:"agency_id,omitempty"`
}

// CanSee reports whether the application lies within the actor's scope:
// agency roles see their own agency's applications, candidates see their own.
func (a Actor) CanSee(app *JobApplication) bool {
	if app == nil || a.ID == "" {
		return false
	}
	switch {
	case a.Role == RoleCandidate:
		return app.CandidateID == a.ID
	case a.Role.IsAgencyRole():
		return a.AgencyID != "" && app.AgencyID == a.AgencyID
	}
	return false
}

// ScopeFilter narrows a listing filter to what the actor may see.
func (a Actor) ScopeFilter(f ApplicationFilter) ApplicationFilter {
	switch {
	case a.Role == RoleCandidate:
		f.CandidateID = a.ID
		f.AgencyID = ""
	case a.Role.IsAgencyRole():
		f.AgencyID = a.AgencyID
	}
	return f
}

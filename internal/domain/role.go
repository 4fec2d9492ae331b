package domain

// Role is the closed set of account roles. Handlers and services must not
// compare raw strings; go through the capability table.
type Role string

const (
	RoleApplicant Role = "applicant"
	RoleCompany   Role = "company"
	RoleAdmin     Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleApplicant, RoleCompany, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

type Capability string

const (
	CapApply        Capability = "apply"
	CapManageJobs   Capability = "manage_jobs"
	CapDecide       Capability = "decide_applications"
	CapViewCV       Capability = "view_cv"
	CapAdminViews   Capability = "admin_views"
	CapOwnProfile   Capability = "own_profile"
	CapOwnInbox     Capability = "own_inbox"
	CapMyApps       Capability = "my_applications"
	CapCompanyViews Capability = "company_views"
)

var capabilities = map[Role]map[Capability]bool{
	RoleApplicant: {
		CapApply:      true,
		CapOwnProfile: true,
		CapOwnInbox:   true,
		CapMyApps:     true,
	},
	RoleCompany: {
		CapManageJobs:   true,
		CapDecide:       true,
		CapViewCV:       true,
		CapOwnProfile:   true,
		CapOwnInbox:     true,
		CapCompanyViews: true,
	},
	RoleAdmin: {
		// Admin is read-only over aggregates; it never gets workflow
		// mutations, so no apply/manage/decide here.
		CapAdminViews: true,
		CapOwnInbox:   true,
	},
}

func (r Role) Can(c Capability) bool { return capabilities[r][c] }

// Actor is the authenticated identity a workflow call runs as. It is
// resolved from JWT claims at the transport layer and threaded explicitly;
// there is no ambient "current user".
type Actor struct {
	UserID string
	Role   Role
}

func (a Actor) Can(c Capability) bool { return a.Role.Can(c) }

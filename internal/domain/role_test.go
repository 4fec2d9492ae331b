package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	for _, s := range []string{"applicant", "company", "admin"} {
		r, ok := ParseRole(s)
		assert.True(t, ok)
		assert.Equal(t, Role(s), r)
	}
	_, ok := ParseRole("superuser")
	assert.False(t, ok)
}

func TestCapabilities(t *testing.T) {
	assert.True(t, RoleApplicant.Can(CapApply))
	assert.False(t, RoleApplicant.Can(CapManageJobs))
	assert.False(t, RoleApplicant.Can(CapViewCV))

	assert.True(t, RoleCompany.Can(CapManageJobs))
	assert.True(t, RoleCompany.Can(CapDecide))
	assert.False(t, RoleCompany.Can(CapApply))

	// admin is read-only over aggregates
	assert.True(t, RoleAdmin.Can(CapAdminViews))
	assert.False(t, RoleAdmin.Can(CapApply))
	assert.False(t, RoleAdmin.Can(CapManageJobs))
	assert.False(t, RoleAdmin.Can(CapDecide))

	actor := Actor{UserID: "u1", Role: RoleCompany}
	assert.True(t, actor.Can(CapViewCV))
}

func TestApplicationStatus(t *testing.T) {
	assert.False(t, StatusPending.Decided())
	assert.True(t, StatusAccepted.Decided())
	assert.True(t, StatusRejected.Decided())

	assert.True(t, StatusPending.Occupying())
	assert.True(t, StatusAccepted.Occupying())
	assert.False(t, StatusRejected.Occupying())
}

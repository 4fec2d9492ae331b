package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nemukerja/internal/domain"
)

func TestAdminView(t *testing.T) {
	ctx := context.Background()
	rs := newTestRepos(t)
	wf := newTestWorkflow(t, rs)
	view := NewAdminView(rs)

	companyActor, company := seedCompany(t, rs, "acme")
	aliceActor, _ := seedApplicant(t, rs, "alice")
	job := seedJob(t, rs, company.ID, 2, true, time.Now())
	seedJob(t, rs, company.ID, 1, false, time.Now())
	_, err := wf.Apply(ctx, aliceActor, job.ID, "", nil)
	require.NoError(t, err)

	admin := domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}

	t.Run("stats", func(t *testing.T) {
		s, err := view.Stats(ctx, admin)
		require.NoError(t, err)
		assert.EqualValues(t, 2, s.TotalUsers)
		assert.EqualValues(t, 1, s.TotalCompanies)
		assert.EqualValues(t, 2, s.TotalJobs)
		assert.EqualValues(t, 1, s.TotalApplications)
		assert.EqualValues(t, 1, s.ApplicantUsers)
		assert.EqualValues(t, 1, s.CompanyUsers)
		assert.EqualValues(t, 1, s.OpenJobs)
		assert.EqualValues(t, 1, s.ClosedJobs)
	})

	t.Run("activity is newest first", func(t *testing.T) {
		acts, err := view.RecentActivity(ctx, admin)
		require.NoError(t, err)
		require.NotEmpty(t, acts)
		for i := 1; i < len(acts); i++ {
			assert.False(t, acts[i-1].Date.Before(acts[i].Date))
		}
	})

	t.Run("users carry their profiles", func(t *testing.T) {
		us, err := view.ListUsers(ctx, admin)
		require.NoError(t, err)
		require.Len(t, us, 2)
		for _, u := range us {
			switch u.User.Role {
			case domain.RoleApplicant:
				assert.NotNil(t, u.Applicant)
				assert.Nil(t, u.Company)
			case domain.RoleCompany:
				assert.NotNil(t, u.Company)
				assert.Nil(t, u.Applicant)
			}
		}
	})

	t.Run("companies and jobs", func(t *testing.T) {
		cs, err := view.ListCompanies(ctx, admin)
		require.NoError(t, err)
		assert.Len(t, cs, 1)

		js, err := view.ListJobs(ctx, admin)
		require.NoError(t, err)
		assert.Len(t, js, 2)
	})

	t.Run("non-admin roles are rejected", func(t *testing.T) {
		for _, actor := range []domain.Actor{aliceActor, companyActor} {
			_, err := view.Stats(ctx, actor)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
			_, err = view.ListUsers(ctx, actor)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		}
	})
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"nemukerja/internal/core/database"
	"nemukerja/internal/core/storage"
	"nemukerja/internal/domain"
	"nemukerja/internal/repo"
	"nemukerja/pkg/utils"
)

func newTestRepos(t *testing.T) *repo.Repos {
	t.Helper()
	db, err := database.NewGorm(database.Opts{
		Driver:       "sqlite",
		DSN:          ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	rs := repo.New(db)
	require.NoError(t, rs.AutoMigrate())
	return rs
}

func newTestWorkflow(t *testing.T, rs *repo.Repos) *Workflow {
	t.Helper()
	return newTestWorkflowAt(t, rs, t.TempDir())
}

// newTestWorkflowAt pins the CV directory so tests can inspect what a
// failed apply left on disk.
func newTestWorkflowAt(t *testing.T, rs *repo.Repos, cvDir string) *Workflow {
	t.Helper()
	log := zaptest.NewLogger(t)
	cv, err := storage.NewLocal(cvDir, storage.Policy{
		MaxBytes:   1 << 20,
		AllowedExt: []string{".pdf"},
	})
	require.NoError(t, err)
	return NewWorkflow(rs, NewNotifier(rs, log), cv, nil, log)
}

func seedApplicant(t *testing.T, rs *repo.Repos, name string) (domain.Actor, *domain.Applicant) {
	t.Helper()
	ctx := context.Background()
	u := &domain.User{
		ID:           utils.NewID(),
		Email:        name + "@example.com",
		PasswordHash: "x",
		Role:         domain.RoleApplicant,
	}
	require.NoError(t, rs.Users.Create(ctx, u))
	a := &domain.Applicant{ID: utils.NewID(), UserID: u.ID, FullName: name}
	require.NoError(t, rs.Applicants.Create(ctx, a))
	return domain.Actor{UserID: u.ID, Role: domain.RoleApplicant}, a
}

func seedCompany(t *testing.T, rs *repo.Repos, name string) (domain.Actor, *domain.Company) {
	t.Helper()
	ctx := context.Background()
	u := &domain.User{
		ID:           utils.NewID(),
		Email:        name + "@example.com",
		PasswordHash: "x",
		Role:         domain.RoleCompany,
	}
	require.NoError(t, rs.Users.Create(ctx, u))
	c := &domain.Company{ID: utils.NewID(), UserID: u.ID, CompanyName: name}
	require.NoError(t, rs.Companies.Create(ctx, c))
	return domain.Actor{UserID: u.ID, Role: domain.RoleCompany}, c
}

func seedJob(t *testing.T, rs *repo.Repos, companyID string, slots int, open bool, postedAt time.Time) *domain.JobListing {
	t.Helper()
	j := &domain.JobListing{
		ID:        utils.NewID(),
		CompanyID: companyID,
		Title:     "Backend Engineer",
		Location:  "Jakarta",
		Slots:     slots,
		IsOpen:    open,
		PostedAt:  postedAt,
	}
	require.NoError(t, rs.Jobs.Create(context.Background(), j))
	return j
}

package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"nemukerja/internal/core/auth"
	"nemukerja/internal/domain"
	"nemukerja/internal/repo"
)

// captureSender records the last mail instead of sending it.
type captureSender struct {
	to, subject, body string
}

func (c *captureSender) Send(to, subject, body string) error {
	c.to, c.subject, c.body = to, subject, body
	return nil
}

func newTestAccount(t *testing.T, rs *repo.Repos, mail *captureSender) *Account {
	t.Helper()
	jwter := &auth.JWTer{
		Secret:   []byte("test-secret"),
		Issuer:   "nemukerja-test",
		TTL:      time.Hour,
		ResetTTL: 30 * time.Minute,
	}
	return NewAccount(rs, jwter, mail, "http://test.local", zaptest.NewLogger(t))
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("applicant gets a profile", func(t *testing.T) {
		rs := newTestRepos(t)
		acct := newTestAccount(t, rs, &captureSender{})

		u, err := acct.Register(ctx, RegisterInput{
			Email:    "Alice@Example.COM",
			Password: "supersecret",
			Role:     domain.RoleApplicant,
			Name:     "Alice",
		})
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", u.Email)

		prof, err := rs.Applicants.FindByUserID(ctx, u.ID)
		require.NoError(t, err)
		require.NotNil(t, prof)
		assert.Equal(t, "Alice", prof.FullName)
	})

	t.Run("company gets a profile", func(t *testing.T) {
		rs := newTestRepos(t)
		acct := newTestAccount(t, rs, &captureSender{})

		u, err := acct.Register(ctx, RegisterInput{
			Email:       "hr@acme.com",
			Password:    "supersecret",
			Role:        domain.RoleCompany,
			CompanyName: "Acme",
		})
		require.NoError(t, err)

		prof, err := rs.Companies.FindByUserID(ctx, u.ID)
		require.NoError(t, err)
		require.NotNil(t, prof)
		assert.Equal(t, "Acme", prof.CompanyName)
	})

	t.Run("duplicate email is case-insensitive", func(t *testing.T) {
		rs := newTestRepos(t)
		acct := newTestAccount(t, rs, &captureSender{})

		_, err := acct.Register(ctx, RegisterInput{
			Email: "alice@example.com", Password: "supersecret", Role: domain.RoleApplicant,
		})
		require.NoError(t, err)
		_, err = acct.Register(ctx, RegisterInput{
			Email: "ALICE@example.com", Password: "supersecret", Role: domain.RoleApplicant,
		})
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})

	t.Run("admin cannot self-register", func(t *testing.T) {
		rs := newTestRepos(t)
		acct := newTestAccount(t, rs, &captureSender{})

		_, err := acct.Register(ctx, RegisterInput{
			Email: "root@example.com", Password: "supersecret", Role: domain.RoleAdmin,
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	rs := newTestRepos(t)
	acct := newTestAccount(t, rs, &captureSender{})

	_, err := acct.Register(ctx, RegisterInput{
		Email: "alice@example.com", Password: "supersecret", Role: domain.RoleApplicant,
	})
	require.NoError(t, err)

	token, u, err := acct.Login(ctx, "alice@example.com", "supersecret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, domain.RoleApplicant, u.Role)

	_, _, err = acct.Login(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrBadCredentials)

	_, _, err = acct.Login(ctx, "nobody@example.com", "supersecret")
	assert.ErrorIs(t, err, domain.ErrBadCredentials)
}

func TestPasswordReset(t *testing.T) {
	ctx := context.Background()
	rs := newTestRepos(t)
	mail := &captureSender{}
	acct := newTestAccount(t, rs, mail)

	_, err := acct.Register(ctx, RegisterInput{
		Email: "alice@example.com", Password: "oldpassword", Role: domain.RoleApplicant,
	})
	require.NoError(t, err)

	t.Run("unknown email says nothing", func(t *testing.T) {
		require.NoError(t, acct.RequestPasswordReset(ctx, "nobody@example.com"))
		assert.Empty(t, mail.body)
	})

	t.Run("full round trip", func(t *testing.T) {
		require.NoError(t, acct.RequestPasswordReset(ctx, "alice@example.com"))
		require.Contains(t, mail.body, "/reset-password/")

		parts := strings.Split(mail.body, "/reset-password/")
		require.Len(t, parts, 2)
		token := strings.Fields(parts[1])[0]

		require.NoError(t, acct.ResetPassword(ctx, token, "newpassword"))

		_, _, err := acct.Login(ctx, "alice@example.com", "oldpassword")
		assert.ErrorIs(t, err, domain.ErrBadCredentials)
		_, _, err = acct.Login(ctx, "alice@example.com", "newpassword")
		assert.NoError(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		err := acct.ResetPassword(ctx, "not-a-token", "whatever")
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	})

	t.Run("access token is not a reset token", func(t *testing.T) {
		token, _, err := acct.Login(ctx, "alice@example.com", "newpassword")
		require.NoError(t, err)
		err = acct.ResetPassword(ctx, token, "sneaky")
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	})
}

func TestProfiles(t *testing.T) {
	ctx := context.Background()

	t.Run("me carries the role profile", func(t *testing.T) {
		rs := newTestRepos(t)
		acct := newTestAccount(t, rs, &captureSender{})
		actor, _ := seedApplicant(t, rs, "alice")

		me, err := acct.Me(ctx, actor)
		require.NoError(t, err)
		require.NotNil(t, me.Applicant)
		assert.Nil(t, me.Company)
		assert.Equal(t, "alice", me.Applicant.FullName)
	})

	t.Run("update applicant profile", func(t *testing.T) {
		rs := newTestRepos(t)
		acct := newTestAccount(t, rs, &captureSender{})
		actor, _ := seedApplicant(t, rs, "alice")

		prof, err := acct.UpdateApplicantProfile(ctx, actor, ApplicantProfileInput{
			FullName: "Alice Rahma",
			Skills:   "Go, SQL",
		})
		require.NoError(t, err)
		assert.Equal(t, "Alice Rahma", prof.FullName)
		assert.Equal(t, "Go, SQL", prof.Skills)
	})

	t.Run("company profile is lazily created", func(t *testing.T) {
		rs := newTestRepos(t)
		acct := newTestAccount(t, rs, &captureSender{})

		// company user without a profile row
		u, err := acct.Register(ctx, RegisterInput{
			Email: "hr@acme.com", Password: "supersecret", Role: domain.RoleCompany, CompanyName: "Acme",
		})
		require.NoError(t, err)
		actor := domain.Actor{UserID: u.ID, Role: domain.RoleCompany}

		prof, err := acct.CompanyProfile(ctx, actor)
		require.NoError(t, err)
		assert.Equal(t, "Acme", prof.CompanyName)

		got, err := acct.UpdateCompanyProfile(ctx, actor, CompanyProfileInput{
			CompanyName: "Acme Corp",
			Description: "We make everything",
		})
		require.NoError(t, err)
		assert.Equal(t, "Acme Corp", got.CompanyName)
	})

	t.Run("wrong role is rejected", func(t *testing.T) {
		rs := newTestRepos(t)
		acct := newTestAccount(t, rs, &captureSender{})
		companyActor, _ := seedCompany(t, rs, "acme")

		_, err := acct.UpdateApplicantProfile(ctx, companyActor, ApplicantProfileInput{FullName: "X"})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestCreateAdmin(t *testing.T) {
	ctx := context.Background()
	rs := newTestRepos(t)
	acct := newTestAccount(t, rs, &captureSender{})

	u, err := acct.CreateAdmin(ctx, "Root@Example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, u.Role)
	assert.Equal(t, "root@example.com", u.Email)

	_, err = acct.CreateAdmin(ctx, "root@example.com", "supersecret")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

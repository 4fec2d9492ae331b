package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nemukerja/internal/domain"
	"nemukerja/internal/repo"
	"nemukerja/pkg/utils"
)

func seedSearchJob(t *testing.T, rs *repo.Repos, companyID, title, location string, salaryMin int64, open bool, postedAt time.Time) *domain.JobListing {
	t.Helper()
	j := &domain.JobListing{
		ID:        utils.NewID(),
		CompanyID: companyID,
		Title:     title,
		Location:  location,
		Slots:     1,
		SalaryMin: salaryMin,
		IsOpen:    open,
		PostedAt:  postedAt,
	}
	require.NoError(t, rs.Jobs.Create(context.Background(), j))
	return j
}

func TestSearchPagination(t *testing.T) {
	ctx := context.Background()
	rs := newTestRepos(t)
	s := NewSearch(rs, nil, 6)
	_, company := seedCompany(t, rs, "acme")

	base := time.Now()
	for i := 0; i < 14; i++ {
		seedSearchJob(t, rs, company.ID, fmt.Sprintf("Role %02d", i), "Jakarta", 0, true, base.Add(time.Duration(i)*time.Minute))
	}

	p1, err := s.Search(ctx, SearchQuery{Page: 1})
	require.NoError(t, err)
	assert.Len(t, p1.Items, 6)
	assert.EqualValues(t, 14, p1.Total)
	assert.Equal(t, 3, p1.Pages)
	// newest first
	assert.Equal(t, "Role 13", p1.Items[0].Title)

	p3, err := s.Search(ctx, SearchQuery{Page: 3})
	require.NoError(t, err)
	assert.Len(t, p3.Items, 2)
	assert.Equal(t, "Role 00", p3.Items[1].Title)

	// page below 1 clamps to 1
	p0, err := s.Search(ctx, SearchQuery{Page: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, p0.Page)
	assert.Equal(t, p1.Items[0].ID, p0.Items[0].ID)
}

func TestSearchFilters(t *testing.T) {
	ctx := context.Background()
	rs := newTestRepos(t)
	s := NewSearch(rs, nil, 6)
	_, acme := seedCompany(t, rs, "acme")
	_, globex := seedCompany(t, rs, "globex")

	now := time.Now()
	seedSearchJob(t, rs, acme.ID, "Backend Engineer", "Jakarta", 10_000_000, true, now)
	seedSearchJob(t, rs, acme.ID, "Backend Engineer", "Surabaya", 7_000_000, true, now)
	seedSearchJob(t, rs, globex.ID, "Frontend Engineer", "Jakarta", 8_000_000, true, now)
	seedSearchJob(t, rs, acme.ID, "Backend Engineer", "Jakarta", 12_000_000, false, now) // closed

	t.Run("keyword is case-insensitive", func(t *testing.T) {
		p, err := s.Search(ctx, SearchQuery{Keyword: "backend"})
		require.NoError(t, err)
		assert.EqualValues(t, 2, p.Total)
	})

	t.Run("filters are conjunctive", func(t *testing.T) {
		p, err := s.Search(ctx, SearchQuery{Keyword: "engineer", Location: "jakarta"})
		require.NoError(t, err)
		assert.EqualValues(t, 2, p.Total)

		p, err = s.Search(ctx, SearchQuery{Keyword: "backend", Location: "jakarta"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, p.Total)
	})

	t.Run("company name", func(t *testing.T) {
		p, err := s.Search(ctx, SearchQuery{Company: "glob"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, p.Total)
		assert.Equal(t, "Frontend Engineer", p.Items[0].Title)
	})

	t.Run("minimum salary", func(t *testing.T) {
		p, err := s.Search(ctx, SearchQuery{MinSalary: "8000000"})
		require.NoError(t, err)
		assert.EqualValues(t, 2, p.Total)
	})

	t.Run("non-numeric salary is ignored", func(t *testing.T) {
		p, err := s.Search(ctx, SearchQuery{MinSalary: "lots"})
		require.NoError(t, err)
		assert.EqualValues(t, 3, p.Total)
	})

	t.Run("closed listings never match", func(t *testing.T) {
		p, err := s.Search(ctx, SearchQuery{})
		require.NoError(t, err)
		assert.EqualValues(t, 3, p.Total)
	})
}

func TestLatestFeed(t *testing.T) {
	ctx := context.Background()
	rs := newTestRepos(t)
	s := NewSearch(rs, nil, 6)
	_, company := seedCompany(t, rs, "acme")

	now := time.Now()
	seedSearchJob(t, rs, company.ID, "Old", "Jakarta", 0, true, now.Add(-2*time.Hour))
	seedSearchJob(t, rs, company.ID, "New", "Jakarta", 0, true, now)
	seedSearchJob(t, rs, company.ID, "Closed", "Jakarta", 0, false, now.Add(time.Hour))

	js, err := s.Latest(ctx, 10)
	require.NoError(t, err)
	require.Len(t, js, 2)
	assert.Equal(t, "New", js[0].Title)
	assert.Equal(t, "Old", js[1].Title)

	one, err := s.Latest(ctx, 1)
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "New", one[0].Title)
}

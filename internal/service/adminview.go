package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"nemukerja/internal/domain"
	"nemukerja/internal/repo"
)

// AdminView serves the administrator's read-only aggregates. Admin bypasses
// ownership for these views but is never allowed into workflow mutations.
type AdminView struct {
	repos *repo.Repos
}

func NewAdminView(repos *repo.Repos) *AdminView {
	return &AdminView{repos: repos}
}

type Stats struct {
	TotalUsers        int64 `json:"totalUsers"`
	TotalCompanies    int64 `json:"totalCompanies"`
	TotalJobs         int64 `json:"totalJobs"`
	TotalApplications int64 `json:"totalApplications"`
	ApplicantUsers    int64 `json:"applicantUsers"`
	CompanyUsers      int64 `json:"companyUsers"`
	OpenJobs          int64 `json:"openJobs"`
	ClosedJobs        int64 `json:"closedJobs"`
}

func (v *AdminView) requireAdmin(actor domain.Actor) error {
	if !actor.Can(domain.CapAdminViews) {
		return domain.ErrUnauthorized
	}
	return nil
}

func (v *AdminView) Stats(ctx context.Context, actor domain.Actor) (*Stats, error) {
	if err := v.requireAdmin(actor); err != nil {
		return nil, err
	}
	var s Stats
	var err error
	if s.TotalUsers, err = v.repos.Users.Count(ctx); err != nil {
		return nil, err
	}
	if s.TotalCompanies, err = v.repos.Companies.Count(ctx); err != nil {
		return nil, err
	}
	if s.TotalJobs, err = v.repos.Jobs.Count(ctx); err != nil {
		return nil, err
	}
	if s.TotalApplications, err = v.repos.Applications.Count(ctx); err != nil {
		return nil, err
	}
	if s.ApplicantUsers, err = v.repos.Users.CountByRole(ctx, domain.RoleApplicant); err != nil {
		return nil, err
	}
	if s.CompanyUsers, err = v.repos.Users.CountByRole(ctx, domain.RoleCompany); err != nil {
		return nil, err
	}
	if s.OpenJobs, err = v.repos.Jobs.CountByOpen(ctx, true); err != nil {
		return nil, err
	}
	if s.ClosedJobs, err = v.repos.Jobs.CountByOpen(ctx, false); err != nil {
		return nil, err
	}
	return &s, nil
}

type Activity struct {
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

// RecentActivity merges the latest registrations, postings and applications
// into one newest-first stream, capped at 20 entries.
func (v *AdminView) RecentActivity(ctx context.Context, actor domain.Actor) ([]Activity, error) {
	if err := v.requireAdmin(actor); err != nil {
		return nil, err
	}
	const perSource = 10

	users, err := v.repos.Users.Recent(ctx, perSource)
	if err != nil {
		return nil, err
	}
	jobs, err := v.repos.Jobs.Recent(ctx, perSource)
	if err != nil {
		return nil, err
	}
	apps, err := v.repos.Applications.Recent(ctx, perSource)
	if err != nil {
		return nil, err
	}

	var out []Activity
	for _, u := range users {
		out = append(out, Activity{
			Type:        string(u.Role),
			Description: fmt.Sprintf("User '%s' (%s) registered.", u.Email, u.Role),
			Date:        u.CreatedAt,
		})
	}
	for _, j := range jobs {
		name := "unknown company"
		if j.Company != nil {
			name = j.Company.CompanyName
		}
		out = append(out, Activity{
			Type:        "job",
			Description: fmt.Sprintf("New job '%s' posted by %s.", j.Title, name),
			Date:        j.PostedAt,
		})
	}
	for _, a := range apps {
		applicant := "An applicant"
		if a.Applicant != nil {
			applicant = a.Applicant.FullName
		}
		title := ""
		if a.Job != nil {
			title = a.Job.Title
		}
		out = append(out, Activity{
			Type:        "application",
			Description: fmt.Sprintf("'%s' applied for '%s' (status %s).", applicant, title, a.Status),
			Date:        a.AppliedAt,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if len(out) > 20 {
		out = out[:20]
	}
	return out, nil
}

// UserWithProfiles joins each user to whatever role profile it owns.
type UserWithProfiles struct {
	User      domain.User       `json:"user"`
	Applicant *domain.Applicant `json:"applicant,omitempty"`
	Company   *domain.Company   `json:"company,omitempty"`
}

func (v *AdminView) ListUsers(ctx context.Context, actor domain.Actor) ([]UserWithProfiles, error) {
	if err := v.requireAdmin(actor); err != nil {
		return nil, err
	}
	users, err := v.repos.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	applicants, err := v.repos.Applicants.List(ctx)
	if err != nil {
		return nil, err
	}
	companies, err := v.repos.Companies.List(ctx)
	if err != nil {
		return nil, err
	}

	byUserA := make(map[string]*domain.Applicant, len(applicants))
	for i := range applicants {
		byUserA[applicants[i].UserID] = &applicants[i]
	}
	byUserC := make(map[string]*domain.Company, len(companies))
	for i := range companies {
		byUserC[companies[i].UserID] = &companies[i]
	}

	out := make([]UserWithProfiles, 0, len(users))
	for _, u := range users {
		out = append(out, UserWithProfiles{
			User:      u,
			Applicant: byUserA[u.ID],
			Company:   byUserC[u.ID],
		})
	}
	return out, nil
}

func (v *AdminView) ListCompanies(ctx context.Context, actor domain.Actor) ([]domain.Company, error) {
	if err := v.requireAdmin(actor); err != nil {
		return nil, err
	}
	return v.repos.Companies.List(ctx)
}

func (v *AdminView) ListJobs(ctx context.Context, actor domain.Actor) ([]domain.JobListing, error) {
	if err := v.requireAdmin(actor); err != nil {
		return nil, err
	}
	return v.repos.Jobs.List(ctx)
}

package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"nemukerja/internal/core/cache"
	"nemukerja/internal/domain"
	"nemukerja/internal/repo"
	"nemukerja/pkg/utils"
)

// CVStore is the blob collaborator for uploaded CVs. Satisfied by
// storage.Local; kept narrow so the shared-CV-path behavior can later move
// onto Application without touching callers.
type CVStore interface {
	Store(originalName string, r io.Reader, size int64) (string, error)
	Open(ref string) (io.ReadCloser, error)
	Remove(ref string) error
}

// CVUpload carries an optional CV attached to an apply call.
type CVUpload struct {
	Name   string
	Reader io.Reader
	Size   int64
}

type JobInput struct {
	Title          string
	Location       string
	Description    string
	Qualifications string
	Slots          int
	SalaryMin      int64
	SalaryMax      int64
}

type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

// Workflow is the application/authorization engine: job lifecycle,
// admission control, and application state transitions. Every method takes
// the explicit acting identity; precondition checks and their mutation run
// in one transaction, notifications fire after commit.
type Workflow struct {
	repos    *repo.Repos
	notifier *Notifier
	cv       CVStore
	cache    *cache.Cache
	logger   *zap.Logger
	now      func() time.Time
}

func NewWorkflow(repos *repo.Repos, notifier *Notifier, cv CVStore, c *cache.Cache, logger *zap.Logger) *Workflow {
	return &Workflow{
		repos:    repos,
		notifier: notifier,
		cv:       cv,
		cache:    c,
		logger:   logger.Named("workflow"),
		now:      time.Now,
	}
}

const (
	keyLatestJobs = "jobs:latest"
	ttlJobDetail  = 30 * time.Second
	ttlLatestJobs = 60 * time.Second
)

func keyJobDetail(id string) string { return "job:detail:" + id }

func (w *Workflow) invalidate(ctx context.Context, jobIDs ...string) {
	if w.cache == nil {
		return
	}
	keys := []string{keyLatestJobs}
	for _, id := range jobIDs {
		keys = append(keys, keyJobDetail(id))
	}
	w.cache.Invalidate(ctx, keys...)
}

// Apply submits an application. Preconditions, first failure wins:
// applicant role with profile, job exists, job open, free slot, no prior
// application by this applicant. The slot recount and the insert share a
// transaction with a lock on the job row, so two racing applies for the
// last slot cannot both land.
func (w *Workflow) Apply(ctx context.Context, actor domain.Actor, jobID, coverLetter string, cv *CVUpload) (*domain.Application, error) {
	if !actor.Can(domain.CapApply) {
		return nil, fmt.Errorf("%w: only applicants can apply", domain.ErrUnauthorized)
	}
	applicant, err := w.repos.Applicants.FindByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if applicant == nil {
		return nil, domain.ErrProfileMissing
	}

	app := &domain.Application{
		ID:          utils.NewID(),
		ApplicantID: applicant.ID,
		Status:      domain.StatusPending,
		Notes:       coverLetter,
		AppliedAt:   w.now(),
	}
	var cvRef string
	var companyUserID string
	var jobTitle string

	err = w.repos.WithTx(ctx, func(tx *repo.Repos) error {
		job, err := tx.Jobs.FindByIDLocked(ctx, jobID)
		if err != nil {
			return err
		}
		if job == nil {
			return fmt.Errorf("%w: job", domain.ErrNotFound)
		}
		if !job.IsOpen {
			return domain.ErrJobClosed
		}
		used, err := tx.Applications.CountOccupied(ctx, job.ID)
		if err != nil {
			return err
		}
		if used >= int64(job.Slots) {
			return domain.ErrSlotsFull
		}
		exists, err := tx.Applications.Exists(ctx, applicant.ID, job.ID)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicateApplication
		}

		// CV 落盘放在所有前置校验之后，先校验先报错
		if cv != nil {
			cvRef, err = w.cv.Store(cv.Name, cv.Reader, cv.Size)
			if err != nil {
				return err
			}
		}

		app.JobID = job.ID
		if err := tx.Applications.Create(ctx, app); err != nil {
			if repo.IsDuplicateKey(err) {
				// 竞态输家：唯一索引兜底
				return domain.ErrDuplicateApplication
			}
			return err
		}
		if cvRef != "" {
			if err := tx.Applicants.SetCVPath(ctx, applicant.ID, cvRef); err != nil {
				return err
			}
		}

		company, err := tx.Companies.FindByID(ctx, job.CompanyID)
		if err != nil {
			return err
		}
		if company != nil {
			companyUserID = company.UserID
		}
		jobTitle = job.Title
		return nil
	})
	if err != nil {
		// 事务回滚时清掉已落盘的 CV，避免孤儿文件
		if cvRef != "" {
			_ = w.cv.Remove(cvRef)
		}
		return nil, err
	}

	if companyUserID != "" {
		w.notifier.Emit(ctx, companyUserID,
			"New Application Received",
			fmt.Sprintf("%s applied for %s", applicant.FullName, jobTitle),
			domain.NotifApplicationReceived, &app.ID)
	}
	w.invalidate(ctx, jobID)
	w.logger.Info("application submitted",
		zap.String("job_id", jobID),
		zap.String("applicant_id", applicant.ID),
	)
	return app, nil
}

// UsedSlots reports how many of a job's slots are occupied (pending or
// accepted applications).
func (w *Workflow) UsedSlots(ctx context.Context, jobID string) (int64, error) {
	return w.repos.Applications.CountOccupied(ctx, jobID)
}

// Decide accepts or rejects a pending application. Only the company owning
// the job may decide, and a decided application is terminal.
func (w *Workflow) Decide(ctx context.Context, actor domain.Actor, applicationID string, d Decision) (*domain.Application, error) {
	if !actor.Can(domain.CapDecide) {
		return nil, fmt.Errorf("%w: only companies can decide applications", domain.ErrUnauthorized)
	}
	var status domain.ApplicationStatus
	switch d {
	case DecisionAccept:
		status = domain.StatusAccepted
	case DecisionReject:
		status = domain.StatusRejected
	default:
		return nil, fmt.Errorf("%w: unknown decision %q", domain.ErrValidation, d)
	}

	var app *domain.Application
	err := w.repos.WithTx(ctx, func(tx *repo.Repos) error {
		var err error
		app, err = tx.Applications.FindByID(ctx, applicationID)
		if err != nil {
			return err
		}
		if app == nil {
			return fmt.Errorf("%w: application", domain.ErrNotFound)
		}
		if app.Job == nil || app.Job.Company == nil || app.Job.Company.UserID != actor.UserID {
			return domain.ErrForbidden
		}
		if app.Status.Decided() {
			return domain.ErrAlreadyDecided
		}
		// 守卫在 WHERE 里，竞态输家会在这里拿到 ErrAlreadyDecided
		if err := tx.Applications.MarkDecided(ctx, app.ID, status); err != nil {
			return err
		}
		app.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}

	if app.Applicant != nil {
		w.notifier.Emit(ctx, app.Applicant.UserID,
			"Application Status Updated",
			fmt.Sprintf("Your application for %s has been %s", app.Job.Title, status),
			domain.NotifApplicationStatus, &app.ID)
	}
	w.invalidate(ctx, app.JobID)
	return app, nil
}

// CreateJob posts a new open listing for the acting company. New postings
// reach applicants through the pull-based latest-jobs feed; there is no
// per-applicant notification fan-out on post.
func (w *Workflow) CreateJob(ctx context.Context, actor domain.Actor, in JobInput) (*domain.JobListing, error) {
	if !actor.Can(domain.CapManageJobs) {
		return nil, fmt.Errorf("%w: only companies can post jobs", domain.ErrUnauthorized)
	}
	company, err := w.repos.Companies.FindByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrProfileMissing
	}
	if in.Slots < 1 {
		return nil, fmt.Errorf("%w: slots must be at least 1", domain.ErrValidation)
	}
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}

	job := &domain.JobListing{
		ID:             utils.NewID(),
		CompanyID:      company.ID,
		Title:          in.Title,
		Location:       in.Location,
		Description:    in.Description,
		Qualifications: in.Qualifications,
		Slots:          in.Slots,
		SalaryMin:      in.SalaryMin,
		SalaryMax:      in.SalaryMax,
		IsOpen:         true,
		PostedAt:       w.now(),
	}
	if err := w.repos.Jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	w.invalidate(ctx, job.ID)
	w.logger.Info("job posted",
		zap.String("job_id", job.ID),
		zap.String("company_id", company.ID),
	)
	return job, nil
}

// EditJob updates a listing's mutable fields.
func (w *Workflow) EditJob(ctx context.Context, actor domain.Actor, jobID string, in JobInput) (*domain.JobListing, error) {
	if in.Slots < 1 {
		return nil, fmt.Errorf("%w: slots must be at least 1", domain.ErrValidation)
	}
	job, err := w.ownedJob(ctx, actor, jobID)
	if err != nil {
		return nil, err
	}
	job.Title = in.Title
	job.Location = in.Location
	job.Description = in.Description
	job.Qualifications = in.Qualifications
	job.Slots = in.Slots
	job.SalaryMin = in.SalaryMin
	job.SalaryMax = in.SalaryMax
	if err := w.repos.Jobs.Update(ctx, job); err != nil {
		return nil, err
	}
	w.invalidate(ctx, jobID)
	return job, nil
}

// SetJobOpen opens or closes a listing. Idempotent: re-closing a closed job
// succeeds and changes nothing. Reopening never re-checks slots.
func (w *Workflow) SetJobOpen(ctx context.Context, actor domain.Actor, jobID string, open bool) (*domain.JobListing, error) {
	job, err := w.ownedJob(ctx, actor, jobID)
	if err != nil {
		return nil, err
	}
	if err := w.repos.Jobs.SetOpen(ctx, jobID, open); err != nil {
		return nil, err
	}
	job.IsOpen = open
	w.invalidate(ctx, jobID)
	return job, nil
}

// DeleteJob hard-deletes a closed listing and all its applications, then
// tells every distinct applicant their application's job is gone.
func (w *Workflow) DeleteJob(ctx context.Context, actor domain.Actor, jobID string) error {
	var affected []string
	var jobTitle string

	err := w.repos.WithTx(ctx, func(tx *repo.Repos) error {
		job, err := tx.Jobs.FindByIDLocked(ctx, jobID)
		if err != nil {
			return err
		}
		if job == nil {
			return fmt.Errorf("%w: job", domain.ErrNotFound)
		}
		if err := w.checkOwnership(ctx, tx, actor, job); err != nil {
			return err
		}
		if job.IsOpen {
			return domain.ErrJobStillOpen
		}
		affected, err = tx.Applications.DistinctApplicantUserIDs(ctx, jobID)
		if err != nil {
			return err
		}
		if err := tx.Applications.DeleteByJob(ctx, jobID); err != nil {
			return err
		}
		jobTitle = job.Title
		return tx.Jobs.Delete(ctx, jobID)
	})
	if err != nil {
		return err
	}

	for _, userID := range affected {
		w.notifier.Emit(ctx, userID,
			"Job Posting Removed",
			fmt.Sprintf("The job '%s' you applied for has been removed by the company.", jobTitle),
			domain.NotifJobRemoved, nil)
	}
	w.invalidate(ctx, jobID)
	w.logger.Info("job deleted",
		zap.String("job_id", jobID),
		zap.Int("applicants_notified", len(affected)),
	)
	return nil
}

// JobDetail is the public job view with its live slot usage, read through
// the cache when one is wired.
type JobDetail struct {
	Job       domain.JobListing `json:"job"`
	UsedSlots int64             `json:"usedSlots"`
}

func (w *Workflow) JobDetail(ctx context.Context, jobID string) (*JobDetail, error) {
	load := func(ctx context.Context) (*JobDetail, error) {
		job, err := w.repos.Jobs.FindByID(ctx, jobID)
		if err != nil {
			return nil, err
		}
		if job == nil {
			return nil, fmt.Errorf("%w: job", domain.ErrNotFound)
		}
		used, err := w.repos.Applications.CountOccupied(ctx, jobID)
		if err != nil {
			return nil, err
		}
		return &JobDetail{Job: *job, UsedSlots: used}, nil
	}
	if w.cache == nil {
		return load(ctx)
	}
	return cache.GetOrLoadJSON[JobDetail](w.cache, ctx, keyJobDetail(jobID), ttlJobDetail, load)
}

// ListCompanyJobs pages the acting company's own listings, newest first.
func (w *Workflow) ListCompanyJobs(ctx context.Context, actor domain.Actor, offset, limit int) ([]domain.JobListing, int64, error) {
	if !actor.Can(domain.CapCompanyViews) {
		return nil, 0, domain.ErrUnauthorized
	}
	company, err := w.repos.Companies.FindByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, 0, err
	}
	if company == nil {
		return nil, 0, domain.ErrProfileMissing
	}
	return w.repos.Jobs.ListByCompany(ctx, company.ID, offset, limit)
}

// ListCompanyApplications returns every application against the acting
// company's listings, newest first.
func (w *Workflow) ListCompanyApplications(ctx context.Context, actor domain.Actor, limit int) ([]domain.Application, error) {
	if !actor.Can(domain.CapCompanyViews) {
		return nil, domain.ErrUnauthorized
	}
	company, err := w.repos.Companies.FindByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrProfileMissing
	}
	return w.repos.Applications.ListByCompany(ctx, company.ID, limit)
}

// GetApplication returns one application for review, company-owner only.
func (w *Workflow) GetApplication(ctx context.Context, actor domain.Actor, applicationID string) (*domain.Application, error) {
	if !actor.Can(domain.CapDecide) {
		return nil, domain.ErrUnauthorized
	}
	app, err := w.repos.Applications.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, fmt.Errorf("%w: application", domain.ErrNotFound)
	}
	if app.Job == nil || app.Job.Company == nil || app.Job.Company.UserID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	return app, nil
}

// ListMyApplications returns the acting applicant's applications, optionally
// filtered to one status.
func (w *Workflow) ListMyApplications(ctx context.Context, actor domain.Actor, status domain.ApplicationStatus) ([]domain.Application, error) {
	if !actor.Can(domain.CapMyApps) {
		return nil, domain.ErrUnauthorized
	}
	applicant, err := w.repos.Applicants.FindByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if applicant == nil {
		return nil, domain.ErrProfileMissing
	}
	return w.repos.Applications.ListByApplicant(ctx, applicant.ID, status)
}

// ApplicationSummary backs the applicant dashboard counters.
type ApplicationSummary struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Accepted int64 `json:"accepted"`
}

func (w *Workflow) MyApplicationSummary(ctx context.Context, actor domain.Actor) (*ApplicationSummary, error) {
	if !actor.Can(domain.CapMyApps) {
		return nil, domain.ErrUnauthorized
	}
	applicant, err := w.repos.Applicants.FindByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if applicant == nil {
		return nil, domain.ErrProfileMissing
	}
	var s ApplicationSummary
	if s.Total, err = w.repos.Applications.CountByApplicant(ctx, applicant.ID, ""); err != nil {
		return nil, err
	}
	if s.Pending, err = w.repos.Applications.CountByApplicant(ctx, applicant.ID, domain.StatusPending); err != nil {
		return nil, err
	}
	if s.Accepted, err = w.repos.Applications.CountByApplicant(ctx, applicant.ID, domain.StatusAccepted); err != nil {
		return nil, err
	}
	return &s, nil
}

// CompanyPublicProfile is the public employer page: the company plus its
// open listings, newest first.
type CompanyPublicProfile struct {
	Company domain.Company      `json:"company"`
	Jobs    []domain.JobListing `json:"jobs"`
}

func (w *Workflow) PublicCompany(ctx context.Context, companyID string) (*CompanyPublicProfile, error) {
	company, err := w.repos.Companies.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("%w: company", domain.ErrNotFound)
	}
	jobs, err := w.repos.Jobs.OpenByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return &CompanyPublicProfile{Company: *company, Jobs: jobs}, nil
}

// OpenCV streams a stored CV. Gated to the company role.
func (w *Workflow) OpenCV(ctx context.Context, actor domain.Actor, ref string) (io.ReadCloser, error) {
	if !actor.Can(domain.CapViewCV) {
		return nil, domain.ErrUnauthorized
	}
	return w.cv.Open(ref)
}

// ownedJob loads a job and verifies the actor is the company that owns it.
func (w *Workflow) ownedJob(ctx context.Context, actor domain.Actor, jobID string) (*domain.JobListing, error) {
	job, err := w.repos.Jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, fmt.Errorf("%w: job", domain.ErrNotFound)
	}
	if err := w.checkOwnership(ctx, w.repos, actor, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (w *Workflow) checkOwnership(ctx context.Context, r *repo.Repos, actor domain.Actor, job *domain.JobListing) error {
	if !actor.Can(domain.CapManageJobs) {
		return fmt.Errorf("%w: company role required", domain.ErrUnauthorized)
	}
	company, err := r.Companies.FindByUserID(ctx, actor.UserID)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrProfileMissing
	}
	if job.CompanyID != company.ID {
		return fmt.Errorf("%w: not your job listing", domain.ErrForbidden)
	}
	return nil
}

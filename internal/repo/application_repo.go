package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"nemukerja/internal/domain"
)

type ApplicationRepo struct{ db *gorm.DB }

func (r *ApplicationRepo) Create(ctx context.Context, a *domain.Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicationRepo) FindByID(ctx context.Context, id string) (*domain.Application, error) {
	var a domain.Application
	err := r.db.WithContext(ctx).
		Preload("Applicant").
		Preload("Job").
		Preload("Job.Company").
		First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &a, err
}

// CountOccupied returns how many applications hold a slot on the job,
// i.e. pending or accepted ones. Always recomputed, never cached: the
// admission check in Apply calls this inside the same transaction that
// inserts.
func (r *ApplicationRepo) CountOccupied(ctx context.Context, jobID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Application{}).
		Where("job_id = ? AND status IN ?", jobID,
			[]domain.ApplicationStatus{domain.StatusPending, domain.StatusAccepted}).
		Count(&n).Error
	return n, err
}

func (r *ApplicationRepo) Exists(ctx context.Context, applicantID, jobID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Application{}).
		Where("applicant_id = ? AND job_id = ?", applicantID, jobID).
		Count(&n).Error
	return n > 0, err
}

// MarkDecided moves a pending application to its terminal status. The
// pending guard lives in the WHERE clause so two racing decisions cannot
// both land; the loser affects zero rows and gets ErrAlreadyDecided.
func (r *ApplicationRepo) MarkDecided(ctx context.Context, id string, status domain.ApplicationStatus) error {
	res := r.db.WithContext(ctx).Model(&domain.Application{}).
		Where("id = ? AND status = ?", id, domain.StatusPending).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAlreadyDecided
	}
	return nil
}

func (r *ApplicationRepo) ListByApplicant(ctx context.Context, applicantID string, status domain.ApplicationStatus) ([]domain.Application, error) {
	q := r.db.WithContext(ctx).
		Preload("Job").Preload("Job.Company").
		Where("applicant_id = ?", applicantID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var as []domain.Application
	err := q.Order("applied_at desc").Find(&as).Error
	return as, err
}

func (r *ApplicationRepo) ListByCompany(ctx context.Context, companyID string, limit int) ([]domain.Application, error) {
	q := r.db.WithContext(ctx).
		Joins("JOIN job_listings ON job_listings.id = applications.job_id").
		Where("job_listings.company_id = ?", companyID).
		Preload("Applicant").Preload("Job").
		Order("applications.applied_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var as []domain.Application
	err := q.Find(&as).Error
	return as, err
}

func (r *ApplicationRepo) ListByJob(ctx context.Context, jobID string) ([]domain.Application, error) {
	var as []domain.Application
	err := r.db.WithContext(ctx).Preload("Applicant").
		Where("job_id = ?", jobID).Find(&as).Error
	return as, err
}

// DistinctApplicantUserIDs resolves the fan-out set for a job deletion:
// every user that had applied, each once.
func (r *ApplicationRepo) DistinctApplicantUserIDs(ctx context.Context, jobID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&domain.Application{}).
		Joins("JOIN applicants ON applicants.id = applications.applicant_id").
		Where("applications.job_id = ?", jobID).
		Distinct().Pluck("applicants.user_id", &ids).Error
	return ids, err
}

func (r *ApplicationRepo) DeleteByJob(ctx context.Context, jobID string) error {
	return r.db.WithContext(ctx).Delete(&domain.Application{}, "job_id = ?", jobID).Error
}

func (r *ApplicationRepo) CountByApplicant(ctx context.Context, applicantID string, status domain.ApplicationStatus) (int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Application{}).
		Where("applicant_id = ?", applicantID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

func (r *ApplicationRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Application{}).Count(&n).Error
	return n, err
}

func (r *ApplicationRepo) Recent(ctx context.Context, limit int) ([]domain.Application, error) {
	var as []domain.Application
	err := r.db.WithContext(ctx).
		Preload("Applicant").Preload("Job").
		Order("applied_at desc").Limit(limit).Find(&as).Error
	return as, err
}

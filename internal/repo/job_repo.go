package repo

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nemukerja/internal/domain"
)

type JobRepo struct{ db *gorm.DB }

func (r *JobRepo) Create(ctx context.Context, j *domain.JobListing) error {
	return r.db.WithContext(ctx).Create(j).Error
}

func (r *JobRepo) FindByID(ctx context.Context, id string) (*domain.JobListing, error) {
	var j domain.JobListing
	err := r.db.WithContext(ctx).Preload("Company").First(&j, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &j, err
}

// FindByIDLocked takes a row lock on the job for the duration of the
// surrounding transaction, serializing concurrent slot checks. On sqlite
// the clause is a no-op; the single-writer model serializes anyway.
func (r *JobRepo) FindByIDLocked(ctx context.Context, id string) (*domain.JobListing, error) {
	var j domain.JobListing
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&j, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &j, err
}

func (r *JobRepo) Update(ctx context.Context, j *domain.JobListing) error {
	return r.db.WithContext(ctx).Save(j).Error
}

// SetOpen is idempotent: writing the current value succeeds and changes
// nothing.
func (r *JobRepo) SetOpen(ctx context.Context, id string, open bool) error {
	res := r.db.WithContext(ctx).Model(&domain.JobListing{}).
		Where("id = ?", id).Update("is_open", open)
	return res.Error
}

func (r *JobRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.JobListing{}, "id = ?", id).Error
}

func (r *JobRepo) ListByCompany(ctx context.Context, companyID string, offset, limit int) ([]domain.JobListing, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.JobListing{}).Where("company_id = ?", companyID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var js []domain.JobListing
	err := q.Order("posted_at desc").Offset(offset).Limit(limit).Find(&js).Error
	return js, total, err
}

func (r *JobRepo) OpenByCompany(ctx context.Context, companyID string) ([]domain.JobListing, error) {
	var js []domain.JobListing
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND is_open = ?", companyID, true).
		Order("posted_at desc").Find(&js).Error
	return js, err
}

// Filter is the search criteria for the public listing view. All fields are
// optional and conjunctive. MinSalary stays a string on purpose: a
// non-numeric value means "no salary filter", never an error.
type Filter struct {
	Keyword   string
	Location  string
	Company   string
	MinSalary string
}

func (r *JobRepo) Search(ctx context.Context, f Filter, offset, limit int) ([]domain.JobListing, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.JobListing{}).
		Where("job_listings.is_open = ?", true)

	if f.Keyword != "" {
		like := "%" + f.Keyword + "%"
		q = q.Where(
			"LOWER(job_listings.title) LIKE LOWER(?) OR LOWER(job_listings.description) LIKE LOWER(?) OR LOWER(job_listings.qualifications) LIKE LOWER(?)",
			like, like, like,
		)
	}
	if f.Location != "" {
		q = q.Where("LOWER(job_listings.location) LIKE LOWER(?)", "%"+f.Location+"%")
	}
	if f.Company != "" {
		q = q.Joins("JOIN companies ON companies.id = job_listings.company_id").
			Where("LOWER(companies.company_name) LIKE LOWER(?)", "%"+f.Company+"%")
	}
	if f.MinSalary != "" {
		if min, err := strconv.ParseInt(f.MinSalary, 10, 64); err == nil {
			q = q.Where("job_listings.salary_min >= ?", min)
		}
		// 非数字输入静默忽略
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var js []domain.JobListing
	err := q.Preload("Company").
		Order("job_listings.posted_at desc").
		Offset(offset).Limit(limit).
		Find(&js).Error
	return js, total, err
}

func (r *JobRepo) LatestOpen(ctx context.Context, limit int) ([]domain.JobListing, error) {
	var js []domain.JobListing
	err := r.db.WithContext(ctx).Preload("Company").
		Where("is_open = ?", true).
		Order("posted_at desc").Limit(limit).Find(&js).Error
	return js, err
}

func (r *JobRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.JobListing{}).Count(&n).Error
	return n, err
}

func (r *JobRepo) CountByOpen(ctx context.Context, open bool) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.JobListing{}).Where("is_open = ?", open).Count(&n).Error
	return n, err
}

func (r *JobRepo) Recent(ctx context.Context, limit int) ([]domain.JobListing, error) {
	var js []domain.JobListing
	err := r.db.WithContext(ctx).Preload("Company").
		Order("posted_at desc").Limit(limit).Find(&js).Error
	return js, err
}

func (r *JobRepo) List(ctx context.Context) ([]domain.JobListing, error) {
	var js []domain.JobListing
	err := r.db.WithContext(ctx).Preload("Company").Order("posted_at desc").Find(&js).Error
	return js, err
}

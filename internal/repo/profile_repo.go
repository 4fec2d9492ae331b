package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"nemukerja/internal/domain"
)

type ApplicantRepo struct{ db *gorm.DB }

func (r *ApplicantRepo) Create(ctx context.Context, a *domain.Applicant) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicantRepo) FindByUserID(ctx context.Context, userID string) (*domain.Applicant, error) {
	var a domain.Applicant
	err := r.db.WithContext(ctx).First(&a, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &a, err
}

func (r *ApplicantRepo) Update(ctx context.Context, a *domain.Applicant) error {
	return r.db.WithContext(ctx).Save(a).Error
}

// SetCVPath records the latest uploaded CV on the profile. Kept as the one
// write-path for the shared-CV behavior; see the note on Applicant.CVPath.
func (r *ApplicantRepo) SetCVPath(ctx context.Context, applicantID, ref string) error {
	res := r.db.WithContext(ctx).Model(&domain.Applicant{}).
		Where("id = ?", applicantID).Update("cv_path", ref)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ApplicantRepo) List(ctx context.Context) ([]domain.Applicant, error) {
	var as []domain.Applicant
	err := r.db.WithContext(ctx).Find(&as).Error
	return as, err
}

type CompanyRepo struct{ db *gorm.DB }

func (r *CompanyRepo) Create(ctx context.Context, c *domain.Company) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CompanyRepo) FindByID(ctx context.Context, id string) (*domain.Company, error) {
	var c domain.Company
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *CompanyRepo) FindByUserID(ctx context.Context, userID string) (*domain.Company, error) {
	var c domain.Company
	err := r.db.WithContext(ctx).First(&c, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *CompanyRepo) Update(ctx context.Context, c *domain.Company) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CompanyRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Company{}).Count(&n).Error
	return n, err
}

func (r *CompanyRepo) List(ctx context.Context) ([]domain.Company, error) {
	var cs []domain.Company
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&cs).Error
	return cs, err
}

package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"nemukerja/internal/domain"
)

// Repos bundles the per-entity repositories over one gorm handle so a
// workflow step can run several of them inside a single transaction.
type Repos struct {
	db            *gorm.DB
	Users         *UserRepo
	Applicants    *ApplicantRepo
	Companies     *CompanyRepo
	Jobs          *JobRepo
	Applications  *ApplicationRepo
	Notifications *NotificationRepo
}

func New(db *gorm.DB) *Repos {
	return &Repos{
		db:            db,
		Users:         &UserRepo{db: db},
		Applicants:    &ApplicantRepo{db: db},
		Companies:     &CompanyRepo{db: db},
		Jobs:          &JobRepo{db: db},
		Applications:  &ApplicationRepo{db: db},
		Notifications: &NotificationRepo{db: db},
	}
}

// WithTx runs fn with a Repos bound to one transaction. Any error rolls the
// whole step back; workflow preconditions and their mutation must share a tx
// (the slot recount in Apply depends on this).
func (r *Repos) WithTx(ctx context.Context, fn func(tx *Repos) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

func (r *Repos) AutoMigrate() error {
	return r.db.AutoMigrate(
		&domain.User{},
		&domain.Applicant{},
		&domain.Company{},
		&domain.JobListing{},
		&domain.Application{},
		&domain.Notification{},
	)
}

// IsDuplicateKey matches unique-constraint violations across drivers without
// relying on gorm.ErrDuplicatedKey (version-dependent).
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}

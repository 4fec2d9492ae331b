package domain

import "time"

type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusAccepted ApplicationStatus = "accepted"
	StatusRejected ApplicationStatus = "rejected"
)

// Decided reports whether the status is terminal. pending→accepted and
// pending→rejected are the only legal transitions.
func (s ApplicationStatus) Decided() bool {
	return s == StatusAccepted || s == StatusRejected
}

// Occupying reports whether an application in this status counts against
// the job's slot capacity.
func (s ApplicationStatus) Occupying() bool {
	return s == StatusPending || s == StatusAccepted
}

type Application struct {
	ID          string            `gorm:"primaryKey;size:36" json:"id"`
	ApplicantID string            `gorm:"size:36;not null;uniqueIndex:uniq_applicant_job" json:"applicantId"`
	JobID       string            `gorm:"size:36;not null;uniqueIndex:uniq_applicant_job;index" json:"jobId"`
	Status      ApplicationStatus `gorm:"size:16;not null;default:pending" json:"status"`
	Notes       string            `gorm:"type:text" json:"notes"`
	AppliedAt   time.Time         `gorm:"index" json:"appliedAt"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"-"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"-"`

	Applicant *Applicant  `gorm:"foreignKey:ApplicantID" json:"applicant,omitempty"`
	Job       *JobListing `gorm:"foreignKey:JobID" json:"job,omitempty"`
}

func (Application) TableName() string { return "applications" }

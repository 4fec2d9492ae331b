package domain

import "time"

type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	PasswordHash string    `gorm:"size:191;not null" json:"-"`
	Role         Role      `gorm:"size:16;not null" json:"role"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// Applicant is the job-seeker profile, 1:1 with a RoleApplicant user.
// CVPath points at the most recently uploaded CV; an upload made while
// applying overwrites it for earlier applications too (kept behavior,
// isolated behind ApplicantRepo.SetCVPath so it can be moved onto
// Application without touching the workflow engine).
type Applicant struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"uniqueIndex;size:36;not null" json:"userId"`
	FullName  string    `gorm:"size:128;not null" json:"fullName"`
	Phone     string    `gorm:"size:32" json:"phone"`
	Skills    string    `gorm:"type:text" json:"skills"`
	CVPath    *string   `gorm:"size:191" json:"cvPath,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Applicant) TableName() string { return "applicants" }

// Company is the employer profile, 1:1 with a RoleCompany user. May be
// created lazily with a placeholder name on first profile access.
type Company struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	UserID       string    `gorm:"uniqueIndex;size:36;not null" json:"userId"`
	CompanyName  string    `gorm:"size:128;not null" json:"companyName"`
	Description  string    `gorm:"type:text" json:"description"`
	ContactEmail string    `gorm:"size:191" json:"contactEmail"`
	Phone        string    `gorm:"size:32" json:"phone"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Company) TableName() string { return "companies" }

package domain

import "time"

type JobListing struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	CompanyID      string    `gorm:"index;size:36;not null" json:"companyId"`
	Title          string    `gorm:"size:191;not null" json:"title"`
	Location       string    `gorm:"size:128" json:"location"`
	Description    string    `gorm:"type:text" json:"description"`
	Qualifications string    `gorm:"type:text" json:"qualifications"`
	Slots          int       `gorm:"not null;default:1" json:"slots"`
	SalaryMin      int64     `gorm:"not null;default:0" json:"salaryMin"`
	SalaryMax      int64     `gorm:"not null;default:0" json:"salaryMax"`
	IsOpen         bool      `gorm:"not null;default:true" json:"isOpen"`
	PostedAt       time.Time `gorm:"index" json:"postedAt"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"-"`

	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

func (JobListing) TableName() string { return "job_listings" }

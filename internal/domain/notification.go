package domain

import "time"

const (
	NotifApplicationReceived = "application_received"
	NotifApplicationStatus   = "application_status"
	NotifJobPosted           = "job_posted"
	NotifJobRemoved          = "job_removed"
)

type Notification struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"index;size:36;not null" json:"userId"`
	Title     string    `gorm:"size:191;not null" json:"title"`
	Message   string    `gorm:"type:text" json:"message"`
	Type      string    `gorm:"size:32;not null" json:"type"`
	RelatedID *string   `gorm:"size:36" json:"relatedId,omitempty"`
	IsRead    bool      `gorm:"not null;default:false" json:"isRead"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
}

func (Notification) TableName() string { return "notifications" }

package entity

import "time"

// ComplaintStatus 市民投诉状态
const (
	ComplaintStatusPending    = "pending"
	ComplaintStatusInProgress = "in_progress"
	ComplaintStatusResolved   = "resolved"
)

// Complaint 市民投诉
type Complaint struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name        string     `json:"name" gorm:"size:100"`
	Email       string     `json:"email" gorm:"size:200"`
	Description string     `json:"description" gorm:"type:text;not null"`
	Location    string     `json:"location" gorm:"size:500;not null"`
	ImageURL    string     `json:"image_url" gorm:"size:500"`
	PhotoPath   string     `json:"photo_path" gorm:"size:500"`
	Status      string     `json:"status" gorm:"size:20;not null;default:pending"`
	Reviewed    bool       `json:"reviewed" gorm:"not null;default:false"`
	Resolved    *time.Time `json:"resolved"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Complaint) TableName() string {
	return "complaints"
}

package entity

import "time"

// Asset 市政资产（地图上的物理设施点）
type Asset struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name        string    `json:"name" gorm:"size:200;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Lng         float64   `json:"lng" gorm:"type:decimal(11,7);not null"`
	Lat         float64   `json:"lat" gorm:"type:decimal(11,7);not null"`
	Color       string    `json:"color" gorm:"size:20;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Logs []MaintenanceLog `json:"logs,omitempty" gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`
}

func (Asset) TableName() string {
	return "assets"
}

// MaintenanceLog 资产维护记录
type MaintenanceLog struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Title       string    `json:"title" gorm:"size:200;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	JobType     string    `json:"job_type" gorm:"size:100;not null"`
	Technician  string    `json:"technician" gorm:"size:100;not null"`
	AssetID     string    `json:"asset_id" gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (MaintenanceLog) TableName() string {
	return "maintenance_logs"
}

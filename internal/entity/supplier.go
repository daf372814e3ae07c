package entity

import "time"

// Supplier 供应商
type Supplier struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name        string    `json:"name" gorm:"size:200;not null"`
	ContactName string    `json:"contact_name" gorm:"size:100"`
	Email       string    `json:"email" gorm:"size:200"`
	Phone       string    `json:"phone" gorm:"size:50"`
	Address     string    `json:"address" gorm:"size:500"`
	Website     string    `json:"website" gorm:"size:200"`
	Notes       string    `json:"notes" gorm:"type:text"`
	IsActive    bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Parts []Part `json:"parts,omitempty" gorm:"foreignKey:SupplierID;constraint:OnDelete:CASCADE"`
}

func (Supplier) TableName() string {
	return "suppliers"
}

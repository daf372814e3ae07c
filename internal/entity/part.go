package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Part 零件目录条目
// (part_number, supplier_id) is unique: the same part number may be carried
// by different suppliers.
type Part struct {
	ID                   string              `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	PartNumber           string              `json:"part_number" gorm:"size:100;not null;uniqueIndex:idx_part_number_supplier"`
	Name                 string              `json:"name" gorm:"size:200;not null"`
	Description          string              `json:"description" gorm:"type:text"`
	Category             string              `json:"category" gorm:"size:100;not null"`
	Manufacturer         string              `json:"manufacturer" gorm:"size:200"`
	UnitPrice            decimal.NullDecimal `json:"unit_price" gorm:"type:decimal(10,2)"`
	MinimumOrderQuantity int                 `json:"minimum_order_quantity" gorm:"not null;default:1"`
	LeadTimeDays         int                 `json:"lead_time_days" gorm:"not null;default:7"`
	SupplierID           string              `json:"supplier_id" gorm:"type:uuid;not null;uniqueIndex:idx_part_number_supplier;index"`
	IsActive             bool                `json:"is_active" gorm:"not null;default:true"`
	CreatedAt            time.Time           `json:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at"`

	Supplier *Supplier `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
}

func (Part) TableName() string {
	return "parts"
}

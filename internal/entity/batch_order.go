package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BatchOrderStatus 批量采购单状态
const (
	BatchOrderStatusDraft     = "draft"
	BatchOrderStatusPending   = "pending"
	BatchOrderStatusOrdered   = "ordered"
	BatchOrderStatusReceived  = "received"
	BatchOrderStatusCancelled = "cancelled"
)

// UrgencyLevel 行项紧急程度
const (
	UrgencyLow      = "low"
	UrgencyNormal   = "normal"
	UrgencyHigh     = "high"
	UrgencyCritical = "critical"
)

// BatchOrder 批量采购单
// TotalAmount is maintained incrementally: every part-order insert adds its
// total_price with a storage-level arithmetic update inside the same
// transaction, so the sum invariant holds under concurrent inserts.
type BatchOrder struct {
	ID                   string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	BatchNumber          string          `json:"batch_number" gorm:"size:50;not null;uniqueIndex"`
	SupplierID           string          `json:"supplier_id" gorm:"type:uuid;not null;index"`
	Status               string          `json:"status" gorm:"size:20;not null;default:draft"`
	TotalAmount          decimal.Decimal `json:"total_amount" gorm:"type:decimal(12,2);not null;default:0"`
	OrderDate            *time.Time      `json:"order_date"`
	ExpectedDeliveryDate *time.Time      `json:"expected_delivery_date"`
	ActualDeliveryDate   *time.Time      `json:"actual_delivery_date"`
	Notes                string          `json:"notes" gorm:"type:text"`
	OrderedBy            string          `json:"ordered_by" gorm:"type:uuid;not null"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`

	Supplier   *Supplier   `json:"supplier,omitempty" gorm:"foreignKey:SupplierID;constraint:OnDelete:CASCADE"`
	PartOrders []PartOrder `json:"part_orders,omitempty" gorm:"foreignKey:BatchOrderID;constraint:OnDelete:CASCADE"`
}

func (BatchOrder) TableName() string {
	return "batch_orders"
}

// PartOrder 采购单行项
// UnitPrice is a snapshot of the part's price at insertion time and is not
// affected by later catalog price changes.
type PartOrder struct {
	ID               string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	BatchOrderID     string          `json:"batch_order_id" gorm:"type:uuid;not null;index"`
	PartID           string          `json:"part_id" gorm:"type:uuid;not null;index"`
	Quantity         int             `json:"quantity" gorm:"not null"`
	UnitPrice        decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	TotalPrice       decimal.Decimal `json:"total_price" gorm:"type:decimal(10,2);not null"`
	RequestedBy      string          `json:"requested_by" gorm:"type:uuid;not null"`
	RequestReason    string          `json:"request_reason" gorm:"type:text;not null"`
	UrgencyLevel     string          `json:"urgency_level" gorm:"size:20;not null;default:normal"`
	AssetID          *string         `json:"asset_id" gorm:"type:uuid"`
	WorkOrderNumber  string          `json:"work_order_number" gorm:"size:100"`
	ReceivedQuantity int             `json:"received_quantity" gorm:"not null;default:0"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	Part            *Part  `json:"part,omitempty" gorm:"foreignKey:PartID;constraint:OnDelete:CASCADE"`
	RequestedByUser *User  `json:"requested_by_user,omitempty" gorm:"foreignKey:RequestedBy"`
	Asset           *Asset `json:"asset,omitempty" gorm:"foreignKey:AssetID;constraint:OnDelete:SET NULL"`
}

func (PartOrder) TableName() string {
	return "part_orders"
}

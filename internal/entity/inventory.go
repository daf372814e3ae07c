package entity

import "time"

// InventoryItem 可出借设备库存
type InventoryItem struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name        string    `json:"name" gorm:"size:200;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Quantity    int       `json:"quantity" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}

// EquipmentRequestStatus 设备租借申请状态
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusDenied   = "denied"
)

// EquipmentRequest 设备租借申请
// InventoryItemName is snapshotted at submission time so the request stays
// readable after the inventory item is renamed or removed.
type EquipmentRequest struct {
	ID                string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	RequestorEmail    string    `json:"requestor_email" gorm:"size:200;not null"`
	InventoryID       string    `json:"inventory_id" gorm:"type:uuid;not null;index"`
	InventoryItemName string    `json:"inventory_item_name" gorm:"size:200;not null"`
	Quantity          int       `json:"quantity" gorm:"not null"`
	StartDate         time.Time `json:"start_date" gorm:"not null"`
	EndDate           time.Time `json:"end_date" gorm:"not null"`
	Status            string    `json:"status" gorm:"size:20;not null;default:pending"`
	DenialReason      *string   `json:"denial_reason" gorm:"type:text"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	InventoryItem *InventoryItem `json:"inventory_item,omitempty" gorm:"foreignKey:InventoryID;constraint:OnDelete:CASCADE"`
}

func (EquipmentRequest) TableName() string {
	return "equipment_requests"
}

package service

import (
	"context"

	"github.com/kleenkanteen/cityflow/internal/entity"
	"gorm.io/gorm"
)

// DashboardService 运营看板服务
// Reads straight off the database: the counters span every aggregate and a
// repo per number would be noise.
type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

type DashboardSummary struct {
	Assets          int64 `json:"assets"`
	ActiveSuppliers int64 `json:"active_suppliers"`
	DraftOrders     int64 `json:"draft_orders"`
	PendingOrders   int64 `json:"pending_orders"`
	PendingRequests int64 `json:"pending_requests"`
	OpenComplaints  int64 `json:"open_complaints"`
	InventoryItems  int64 `json:"inventory_items"`
	PartsInCatalog  int64 `json:"parts_in_catalog"`
}

func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	db := s.db.WithContext(ctx)
	summary := &DashboardSummary{}

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&summary.Assets, db.Model(&entity.Asset{})},
		{&summary.ActiveSuppliers, db.Model(&entity.Supplier{}).Where("is_active = ?", true)},
		{&summary.DraftOrders, db.Model(&entity.BatchOrder{}).Where("status = ?", entity.BatchOrderStatusDraft)},
		{&summary.PendingOrders, db.Model(&entity.BatchOrder{}).Where("status = ?", entity.BatchOrderStatusPending)},
		{&summary.PendingRequests, db.Model(&entity.EquipmentRequest{}).Where("status = ?", entity.RequestStatusPending)},
		{&summary.OpenComplaints, db.Model(&entity.Complaint{}).Where("status <> ?", entity.ComplaintStatusResolved)},
		{&summary.InventoryItems, db.Model(&entity.InventoryItem{})},
		{&summary.PartsInCatalog, db.Model(&entity.Part{}).Where("is_active = ?", true)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}
	return summary, nil
}

package repository

import (
	"context"
	"time"

	"github.com/kleenkanteen/cityflow/internal/entity"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// --- Batch Orders ---

func (r *OrderRepository) CreateBatchOrder(ctx context.Context, order *entity.BatchOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *OrderRepository) GetBatchOrderByID(ctx context.Context, id string) (*entity.BatchOrder, error) {
	var order entity.BatchOrder
	err := r.db.WithContext(ctx).
		Preload("Supplier").
		Preload("PartOrders").
		Preload("PartOrders.Part").
		Preload("PartOrders.RequestedByUser").
		Preload("PartOrders.Asset").
		Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateBatchOrder writes the order's mutable columns. total_amount is owned
// by the line-item increment path and is never written here, so a stale
// in-memory copy cannot rewind a concurrently committed total.
func (r *OrderRepository) UpdateBatchOrder(ctx context.Context, order *entity.BatchOrder) error {
	return r.db.WithContext(ctx).
		Omit("total_amount", clause.Associations).
		Save(order).Error
}

type BatchOrderListParams struct {
	Status     string
	SupplierID string
	Page       int
	Size       int
}

func (r *OrderRepository) ListBatchOrders(ctx context.Context, params BatchOrderListParams) ([]entity.BatchOrder, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.BatchOrder{})

	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.SupplierID != "" {
		query = query.Where("supplier_id = ?", params.SupplierID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}

	var orders []entity.BatchOrder
	err := query.Preload("Supplier").Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).
		Limit(params.Size).
		Find(&orders).Error
	return orders, total, err
}

// --- Part Orders ---

func (r *OrderRepository) GetPartOrderByID(ctx context.Context, id string) (*entity.PartOrder, error) {
	var item entity.PartOrder
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *OrderRepository) ListPartOrders(ctx context.Context, batchOrderID string) ([]entity.PartOrder, error) {
	var items []entity.PartOrder
	err := r.db.WithContext(ctx).
		Preload("Part").
		Preload("RequestedByUser").
		Preload("Asset").
		Where("batch_order_id = ?", batchOrderID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *OrderRepository) CountPartOrders(ctx context.Context, batchOrderID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.PartOrder{}).
		Where("batch_order_id = ?", batchOrderID).Count(&count).Error
	return count, err
}

// AddPartOrder inserts the line item and bumps the parent order total in one
// transaction. The increment is pushed down to the database
// (total_amount = total_amount + delta) so concurrent inserts against the
// same batch order cannot lose updates.
func (r *OrderRepository) AddPartOrder(ctx context.Context, item *entity.PartOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		return incrementBatchOrderTotal(tx, item.BatchOrderID, item.TotalPrice)
	})
}

func incrementBatchOrderTotal(tx *gorm.DB, batchOrderID string, delta decimal.Decimal) error {
	return tx.Model(&entity.BatchOrder{}).
		Where("id = ?", batchOrderID).
		Updates(map[string]interface{}{
			"total_amount": gorm.Expr("total_amount + ?", delta),
			"updated_at":   time.Now(),
		}).Error
}

// ReceiveOrderItems persists line-item receipts and the order's status and
// delivery date in one transaction, so a failed line leaves no partial
// receipt behind.
func (r *OrderRepository) ReceiveOrderItems(ctx context.Context, order *entity.BatchOrder, lines []*entity.PartOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, line := range lines {
			if err := tx.Model(&entity.PartOrder{}).
				Where("id = ?", line.ID).
				Updates(map[string]interface{}{
					"received_quantity": line.ReceivedQuantity,
					"updated_at":        time.Now(),
				}).Error; err != nil {
				return err
			}
		}
		return tx.Model(&entity.BatchOrder{}).
			Where("id = ?", order.ID).
			Updates(map[string]interface{}{
				"status":               order.Status,
				"actual_delivery_date": order.ActualDeliveryDate,
				"updated_at":           time.Now(),
			}).Error
	})
}

package repository

import (
	"context"

	"github.com/kleenkanteen/cityflow/internal/entity"
	"gorm.io/gorm"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) Create(ctx context.Context, item *entity.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *InventoryRepository) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *InventoryRepository) Update(ctx context.Context, item *entity.InventoryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// DeleteCascade removes the item together with its rental requests.
func (r *InventoryRepository) DeleteCascade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("inventory_id = ?", id).Delete(&entity.EquipmentRequest{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.InventoryItem{}).Error
	})
}

func (r *InventoryRepository) List(ctx context.Context, search string) ([]entity.InventoryItem, error) {
	query := r.db.WithContext(ctx).Model(&entity.InventoryItem{})
	if search != "" {
		kw := "%" + search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", kw, kw)
	}
	var items []entity.InventoryItem
	err := query.Order("created_at DESC").Find(&items).Error
	return items, err
}

// --- Equipment Requests ---

func (r *InventoryRepository) CreateRequest(ctx context.Context, req *entity.EquipmentRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *InventoryRepository) GetRequestByID(ctx context.Context, id string) (*entity.EquipmentRequest, error) {
	var req entity.EquipmentRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *InventoryRepository) UpdateRequest(ctx context.Context, req *entity.EquipmentRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *InventoryRepository) ListRequests(ctx context.Context, status string) ([]entity.EquipmentRequest, error) {
	query := r.db.WithContext(ctx).Model(&entity.EquipmentRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var requests []entity.EquipmentRequest
	err := query.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

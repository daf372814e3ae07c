package repository

import (
	"context"

	"github.com/kleenkanteen/cityflow/internal/entity"
	"gorm.io/gorm"
)

type SupplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) *SupplierRepository {
	return &SupplierRepository{db: db}
}

func (r *SupplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	return r.db.WithContext(ctx).Create(supplier).Error
}

func (r *SupplierRepository) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	var supplier entity.Supplier
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&supplier).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *SupplierRepository) Update(ctx context.Context, supplier *entity.Supplier) error {
	return r.db.WithContext(ctx).Save(supplier).Error
}

type SupplierListParams struct {
	Search     string
	ActiveOnly bool
	Page       int
	Size       int
}

func (r *SupplierRepository) List(ctx context.Context, params SupplierListParams) ([]entity.Supplier, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Supplier{})

	if params.Search != "" {
		kw := "%" + params.Search + "%"
		query = query.Where("name ILIKE ? OR contact_name ILIKE ? OR email ILIKE ?", kw, kw, kw)
	}
	if params.ActiveOnly {
		query = query.Where("is_active = ?", true)
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

	var suppliers []entity.Supplier
	err := query.Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).
		Limit(params.Size).
		Find(&suppliers).Error
	return suppliers, total, err
}

// DeleteCascade removes a supplier together with its parts, batch orders and
// part orders in one transaction. The cascade is done explicitly so it does
// not depend on FK constraints being present (test schemas migrate without
// them).
func (r *SupplierRepository) DeleteCascade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("batch_order_id IN (?)",
			tx.Model(&entity.BatchOrder{}).Select("id").Where("supplier_id = ?", id),
		).Delete(&entity.PartOrder{}).Error; err != nil {
			return err
		}
		if err := tx.Where("supplier_id = ?", id).Delete(&entity.BatchOrder{}).Error; err != nil {
			return err
		}
		if err := tx.Where("supplier_id = ?", id).Delete(&entity.Part{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.Supplier{}).Error
	})
}

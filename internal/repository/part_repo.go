package repository

import (
	"context"

	"github.com/kleenkanteen/cityflow/internal/entity"
	"gorm.io/gorm"
)

type PartRepository struct {
	db *gorm.DB
}

func NewPartRepository(db *gorm.DB) *PartRepository {
	return &PartRepository{db: db}
}

func (r *PartRepository) Create(ctx context.Context, part *entity.Part) error {
	return r.db.WithContext(ctx).Create(part).Error
}

func (r *PartRepository) GetByID(ctx context.Context, id string) (*entity.Part, error) {
	var part entity.Part
	if err := r.db.WithContext(ctx).Preload("Supplier").Where("id = ?", id).First(&part).Error; err != nil {
		return nil, err
	}
	return &part, nil
}

func (r *PartRepository) Update(ctx context.Context, part *entity.Part) error {
	return r.db.WithContext(ctx).Save(part).Error
}

func (r *PartRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Part{}).Error
}

type PartListParams struct {
	Search     string
	Category   string
	SupplierID string
	ActiveOnly bool
	Page       int
	Size       int
}

func (r *PartRepository) List(ctx context.Context, params PartListParams) ([]entity.Part, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Part{})

	if params.Search != "" {
		kw := "%" + params.Search + "%"
		query = query.Where("name ILIKE ? OR part_number ILIKE ? OR description ILIKE ? OR manufacturer ILIKE ?",
			kw, kw, kw, kw)
	}
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.SupplierID != "" {
		query = query.Where("supplier_id = ?", params.SupplierID)
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

	var parts []entity.Part
	err := query.Preload("Supplier").Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).
		Limit(params.Size).
		Find(&parts).Error
	return parts, total, err
}

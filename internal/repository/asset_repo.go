package repository

import (
	"context"

	"github.com/kleenkanteen/cityflow/internal/entity"
	"gorm.io/gorm"
)

type AssetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

func (r *AssetRepository) Create(ctx context.Context, asset *entity.Asset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}

func (r *AssetRepository) GetByID(ctx context.Context, id string) (*entity.Asset, error) {
	var asset entity.Asset
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&asset).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *AssetRepository) Update(ctx context.Context, asset *entity.Asset) error {
	return r.db.WithContext(ctx).Save(asset).Error
}

func (r *AssetRepository) List(ctx context.Context) ([]entity.Asset, error) {
	var assets []entity.Asset
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&assets).Error
	return assets, err
}

// DeleteCascade removes the asset and its maintenance logs, and detaches the
// asset from any part orders (asset_id set to NULL, the line items stay).
func (r *AssetRepository) DeleteCascade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.PartOrder{}).
			Where("asset_id = ?", id).
			Update("asset_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("asset_id = ?", id).Delete(&entity.MaintenanceLog{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.Asset{}).Error
	})
}

// --- Maintenance Logs ---

func (r *AssetRepository) CreateLog(ctx context.Context, log *entity.MaintenanceLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *AssetRepository) ListLogs(ctx context.Context, assetID string) ([]entity.MaintenanceLog, error) {
	var logs []entity.MaintenanceLog
	err := r.db.WithContext(ctx).Where("asset_id = ?", assetID).
		Order("created_at DESC").Find(&logs).Error
	return logs, err
}

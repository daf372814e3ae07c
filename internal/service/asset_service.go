package service

import (
	"context"
	"fmt"

	"github.com/kleenkanteen/cityflow/internal/entity"
	"github.com/kleenkanteen/cityflow/internal/repository"
)

// AssetService 资产服务
type AssetService struct {
	assetRepo *repository.AssetRepository
}

func NewAssetService(assetRepo *repository.AssetRepository) *AssetService {
	return &AssetService{assetRepo: assetRepo}
}

type CreateAssetRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Lng         *float64 `json:"lng" binding:"required"`
	Lat         *float64 `json:"lat" binding:"required"`
	Color       string   `json:"color" binding:"required"`
}

func (s *AssetService) Create(ctx context.Context, req *CreateAssetRequest) (*entity.Asset, error) {
	asset := &entity.Asset{
		Name:        req.Name,
		Description: req.Description,
		Lng:         *req.Lng,
		Lat:         *req.Lat,
		Color:       req.Color,
	}
	if err := s.assetRepo.Create(ctx, asset); err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}
	return asset, nil
}

func (s *AssetService) List(ctx context.Context) ([]entity.Asset, error) {
	return s.assetRepo.List(ctx)
}

func (s *AssetService) GetByID(ctx context.Context, id string) (*entity.Asset, error) {
	return s.assetRepo.GetByID(ctx, id)
}

type UpdateAssetRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Lng         *float64 `json:"lng"`
	Lat         *float64 `json:"lat"`
	Color       *string  `json:"color"`
}

func (s *AssetService) Update(ctx context.Context, id string, req *UpdateAssetRequest) (*entity.Asset, error) {
	asset, err := s.assetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		asset.Name = *req.Name
	}
	if req.Description != nil {
		asset.Description = *req.Description
	}
	if req.Lng != nil {
		asset.Lng = *req.Lng
	}
	if req.Lat != nil {
		asset.Lat = *req.Lat
	}
	if req.Color != nil {
		asset.Color = *req.Color
	}

	if err := s.assetRepo.Update(ctx, asset); err != nil {
		return nil, fmt.Errorf("failed to update asset: %w", err)
	}
	return asset, nil
}

// Delete removes the asset and its maintenance logs. Part orders that
// reference the asset keep their rows with asset_id nulled out.
func (s *AssetService) Delete(ctx context.Context, id string) error {
	if _, err := s.assetRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.assetRepo.DeleteCascade(ctx, id)
}

// --- Maintenance Logs ---

type CreateLogRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	JobType     string `json:"job_type" binding:"required"`
	Technician  string `json:"technician" binding:"required"`
}

func (s *AssetService) CreateLog(ctx context.Context, assetID string, req *CreateLogRequest) (*entity.MaintenanceLog, error) {
	if _, err := s.assetRepo.GetByID(ctx, assetID); err != nil {
		return nil, err
	}

	log := &entity.MaintenanceLog{
		Title:       req.Title,
		Description: req.Description,
		JobType:     req.JobType,
		Technician:  req.Technician,
		AssetID:     assetID,
	}
	if err := s.assetRepo.CreateLog(ctx, log); err != nil {
		return nil, fmt.Errorf("failed to create maintenance log: %w", err)
	}
	return log, nil
}

func (s *AssetService) ListLogs(ctx context.Context, assetID string) ([]entity.MaintenanceLog, error) {
	if _, err := s.assetRepo.GetByID(ctx, assetID); err != nil {
		return nil, err
	}
	return s.assetRepo.ListLogs(ctx, assetID)
}

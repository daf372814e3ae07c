package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kleenkanteen/cityflow/internal/entity"
	"github.com/kleenkanteen/cityflow/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PartService 零件目录服务
type PartService struct {
	partRepo     *repository.PartRepository
	supplierRepo *repository.SupplierRepository
}

func NewPartService(partRepo *repository.PartRepository, supplierRepo *repository.SupplierRepository) *PartService {
	return &PartService{partRepo: partRepo, supplierRepo: supplierRepo}
}

type CreatePartRequest struct {
	PartNumber           string           `json:"part_number" binding:"required"`
	Name                 string           `json:"name" binding:"required"`
	Description          string           `json:"description"`
	Category             string           `json:"category" binding:"required"`
	Manufacturer         string           `json:"manufacturer"`
	UnitPrice            *decimal.Decimal `json:"unit_price"`
	MinimumOrderQuantity int              `json:"minimum_order_quantity" binding:"omitempty,gte=1"`
	LeadTimeDays         int              `json:"lead_time_days" binding:"omitempty,gte=0"`
	SupplierID           string           `json:"supplier_id" binding:"required"`
}

func (s *PartService) Create(ctx context.Context, req *CreatePartRequest) (*entity.Part, error) {
	if _, err := s.supplierRepo.GetByID(ctx, req.SupplierID); err != nil {
		return nil, fmt.Errorf("supplier not found: %w", err)
	}

	part := &entity.Part{
		PartNumber:           req.PartNumber,
		Name:                 req.Name,
		Description:          req.Description,
		Category:             req.Category,
		Manufacturer:         req.Manufacturer,
		MinimumOrderQuantity: req.MinimumOrderQuantity,
		LeadTimeDays:         req.LeadTimeDays,
		SupplierID:           req.SupplierID,
		IsActive:             true,
	}
	if req.UnitPrice != nil {
		part.UnitPrice = decimal.NewNullDecimal(req.UnitPrice.Round(2))
	}
	if part.MinimumOrderQuantity == 0 {
		part.MinimumOrderQuantity = 1
	}
	if part.LeadTimeDays == 0 {
		part.LeadTimeDays = 7
	}

	if err := s.partRepo.Create(ctx, part); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("part number already exists for this supplier: %w", ErrInvalidState)
		}
		return nil, fmt.Errorf("failed to create part: %w", err)
	}
	return part, nil
}

func (s *PartService) GetByID(ctx context.Context, id string) (*entity.Part, error) {
	return s.partRepo.GetByID(ctx, id)
}

func (s *PartService) List(ctx context.Context, params repository.PartListParams) ([]entity.Part, int64, error) {
	return s.partRepo.List(ctx, params)
}

type UpdatePartRequest struct {
	PartNumber           *string          `json:"part_number"`
	Name                 *string          `json:"name"`
	Description          *string          `json:"description"`
	Category             *string          `json:"category"`
	Manufacturer         *string          `json:"manufacturer"`
	UnitPrice            *decimal.Decimal `json:"unit_price"`
	MinimumOrderQuantity *int             `json:"minimum_order_quantity" binding:"omitempty,gte=1"`
	LeadTimeDays         *int             `json:"lead_time_days" binding:"omitempty,gte=0"`
	IsActive             *bool            `json:"is_active"`
}

func (s *PartService) Update(ctx context.Context, id string, req *UpdatePartRequest) (*entity.Part, error) {
	part, err := s.partRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.PartNumber != nil {
		part.PartNumber = *req.PartNumber
	}
	if req.Name != nil {
		part.Name = *req.Name
	}
	if req.Description != nil {
		part.Description = *req.Description
	}
	if req.Category != nil {
		part.Category = *req.Category
	}
	if req.Manufacturer != nil {
		part.Manufacturer = *req.Manufacturer
	}
	if req.UnitPrice != nil {
		part.UnitPrice = decimal.NewNullDecimal(req.UnitPrice.Round(2))
	}
	if req.MinimumOrderQuantity != nil {
		part.MinimumOrderQuantity = *req.MinimumOrderQuantity
	}
	if req.LeadTimeDays != nil {
		part.LeadTimeDays = *req.LeadTimeDays
	}
	if req.IsActive != nil {
		part.IsActive = *req.IsActive
	}

	if err := s.partRepo.Update(ctx, part); err != nil {
		return nil, fmt.Errorf("failed to update part: %w", err)
	}
	return part, nil
}

func (s *PartService) Delete(ctx context.Context, id string) error {
	if _, err := s.partRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.partRepo.Delete(ctx, id)
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/kleenkanteen/cityflow/internal/entity"
	"github.com/kleenkanteen/cityflow/internal/mail"
	"github.com/kleenkanteen/cityflow/internal/repository"
	"go.uber.org/zap"
)

// InventoryService 设备库存与租借服务
type InventoryService struct {
	inventoryRepo *repository.InventoryRepository
	mailClient    *mail.Client
	logger        *zap.Logger
}

func NewInventoryService(inventoryRepo *repository.InventoryRepository, mailClient *mail.Client, logger *zap.Logger) *InventoryService {
	return &InventoryService{
		inventoryRepo: inventoryRepo,
		mailClient:    mailClient,
		logger:        logger,
	}
}

type CreateInventoryItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Quantity    *int   `json:"quantity" binding:"required,gte=0"`
}

func (s *InventoryService) Create(ctx context.Context, req *CreateInventoryItemRequest) (*entity.InventoryItem, error) {
	item := &entity.InventoryItem{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    *req.Quantity,
	}
	if err := s.inventoryRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}
	return item, nil
}

func (s *InventoryService) List(ctx context.Context, search string) ([]entity.InventoryItem, error) {
	return s.inventoryRepo.List(ctx, search)
}

type UpdateInventoryItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Quantity    *int    `json:"quantity" binding:"omitempty,gte=0"`
}

func (s *InventoryService) Update(ctx context.Context, id string, req *UpdateInventoryItemRequest) (*entity.InventoryItem, error) {
	item, err := s.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}

	if err := s.inventoryRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}
	return item, nil
}

func (s *InventoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.inventoryRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.inventoryRepo.DeleteCascade(ctx, id)
}

// --- Equipment Requests ---

type CreateRequestRequest struct {
	RequestorEmail string    `json:"requestor_email" binding:"required,email"`
	InventoryID    string    `json:"inventory_id" binding:"required"`
	Quantity       int       `json:"quantity" binding:"required,gte=1"`
	StartDate      time.Time `json:"start_date" binding:"required"`
	EndDate        time.Time `json:"end_date" binding:"required"`
}

func (s *InventoryService) CreateRequest(ctx context.Context, req *CreateRequestRequest) (*entity.EquipmentRequest, error) {
	item, err := s.inventoryRepo.GetByID(ctx, req.InventoryID)
	if err != nil {
		return nil, fmt.Errorf("inventory item not found: %w", err)
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("end date before start date: %w", ErrInvalidState)
	}

	request := &entity.EquipmentRequest{
		RequestorEmail:    req.RequestorEmail,
		InventoryID:       item.ID,
		InventoryItemName: item.Name,
		Quantity:          req.Quantity,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		Status:            entity.RequestStatusPending,
	}
	if err := s.inventoryRepo.CreateRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create equipment request: %w", err)
	}
	return request, nil
}

func (s *InventoryService) ListRequests(ctx context.Context, status string) ([]entity.EquipmentRequest, error) {
	return s.inventoryRepo.ListRequests(ctx, status)
}

type UpdateRequestStatusRequest struct {
	Status       string `json:"status" binding:"required,oneof=approved denied"`
	DenialReason string `json:"denial_reason"`
}

// UpdateRequestStatus approves or denies a rental request. The notification
// email is best-effort and deliberately outside the database write: a mail
// failure never rolls back the decision.
func (s *InventoryService) UpdateRequestStatus(ctx context.Context, id string, req *UpdateRequestStatusRequest) (*entity.EquipmentRequest, error) {
	request, err := s.inventoryRepo.GetRequestByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status == entity.RequestStatusDenied && req.DenialReason == "" {
		return nil, fmt.Errorf("denial reason is required when denying a request: %w", ErrInvalidState)
	}

	request.Status = req.Status
	if req.Status == entity.RequestStatusDenied {
		reason := req.DenialReason
		request.DenialReason = &reason
	} else {
		request.DenialReason = nil
	}

	if err := s.inventoryRepo.UpdateRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to update equipment request: %w", err)
	}

	go s.sendDecisionEmail(request)

	return request, nil
}

func (s *InventoryService) sendDecisionEmail(request *entity.EquipmentRequest) {
	if !s.mailClient.Enabled() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var err error
	switch request.Status {
	case entity.RequestStatusApproved:
		err = s.mailClient.SendRequestApproved(ctx, request.RequestorEmail, request.InventoryItemName,
			request.Quantity, request.StartDate, request.EndDate)
	case entity.RequestStatusDenied:
		reason := "No reason provided"
		if request.DenialReason != nil {
			reason = *request.DenialReason
		}
		err = s.mailClient.SendRequestDenied(ctx, request.RequestorEmail, request.InventoryItemName,
			request.Quantity, request.StartDate, request.EndDate, reason)
	}
	if err != nil {
		s.logger.Warn("failed to send request decision email",
			zap.String("request_id", request.ID),
			zap.String("status", request.Status),
			zap.Error(err))
	}
}

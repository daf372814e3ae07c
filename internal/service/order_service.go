package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kleenkanteen/cityflow/internal/entity"
	"github.com/kleenkanteen/cityflow/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// batchNumberAttempts bounds retry on batch-number collisions. The suffix is
// millisecond-derived, so two creates in the same window can collide; the
// unique index catches it and we regenerate.
const batchNumberAttempts = 3

// OrderService 批量采购服务
type OrderService struct {
	orderRepo    *repository.OrderRepository
	partRepo     *repository.PartRepository
	supplierRepo *repository.SupplierRepository
}

func NewOrderService(orderRepo *repository.OrderRepository, partRepo *repository.PartRepository, supplierRepo *repository.SupplierRepository) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		partRepo:     partRepo,
		supplierRepo: supplierRepo,
	}
}

// --- Batch Orders ---

type CreateBatchOrderRequest struct {
	SupplierID           string     `json:"supplier_id" binding:"required"`
	Notes                string     `json:"notes"`
	ExpectedDeliveryDate *time.Time `json:"expected_delivery_date"`
}

func (s *OrderService) CreateBatchOrder(ctx context.Context, userID string, req *CreateBatchOrderRequest) (*entity.BatchOrder, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, req.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("supplier not found: %w", err)
	}
	if !supplier.IsActive {
		return nil, fmt.Errorf("supplier is not active: %w", ErrInvalidState)
	}

	order := &entity.BatchOrder{
		Status:               entity.BatchOrderStatusDraft,
		SupplierID:           req.SupplierID,
		TotalAmount:          decimal.Zero,
		ExpectedDeliveryDate: req.ExpectedDeliveryDate,
		Notes:                req.Notes,
		OrderedBy:            userID,
	}

	for attempt := 0; attempt < batchNumberAttempts; attempt++ {
		order.BatchNumber = generateBatchNumber()
		err = s.orderRepo.CreateBatchOrder(ctx, order)
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("failed to create batch order: %w", err)
		}
	}
	return nil, fmt.Errorf("failed to allocate batch number: %w", err)
}

// generateBatchNumber builds BO-YYYYMMDD-<6 digits> with a suffix taken from
// the millisecond clock. Uniqueness is enforced by the index, not the suffix.
func generateBatchNumber() string {
	now := time.Now()
	return fmt.Sprintf("BO-%s-%06d", now.Format("20060102"), now.UnixMilli()%1000000)
}

func (s *OrderService) GetBatchOrder(ctx context.Context, id string) (*entity.BatchOrder, error) {
	return s.orderRepo.GetBatchOrderByID(ctx, id)
}

func (s *OrderService) ListBatchOrders(ctx context.Context, params repository.BatchOrderListParams) ([]entity.BatchOrder, int64, error) {
	return s.orderRepo.ListBatchOrders(ctx, params)
}

type UpdateBatchOrderRequest struct {
	Notes                *string    `json:"notes"`
	Status               *string    `json:"status" binding:"omitempty,oneof=draft pending ordered received cancelled"`
	OrderDate            *time.Time `json:"order_date"`
	ExpectedDeliveryDate *time.Time `json:"expected_delivery_date"`
	ActualDeliveryDate   *time.Time `json:"actual_delivery_date"`
}

// UpdateBatchOrder merges the provided fields onto the existing row.
func (s *OrderService) UpdateBatchOrder(ctx context.Context, id string, req *UpdateBatchOrderRequest) (*entity.BatchOrder, error) {
	order, err := s.orderRepo.GetBatchOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Notes != nil {
		order.Notes = *req.Notes
	}
	if req.Status != nil {
		order.Status = *req.Status
	}
	if req.OrderDate != nil {
		order.OrderDate = req.OrderDate
	}
	if req.ExpectedDeliveryDate != nil {
		order.ExpectedDeliveryDate = req.ExpectedDeliveryDate
	}
	if req.ActualDeliveryDate != nil {
		order.ActualDeliveryDate = req.ActualDeliveryDate
	}

	if err := s.orderRepo.UpdateBatchOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update batch order: %w", err)
	}
	return order, nil
}

// SubmitBatchOrder moves a draft order to pending and stamps the order date.
// Empty orders and re-submissions are rejected.
func (s *OrderService) SubmitBatchOrder(ctx context.Context, id string) (*entity.BatchOrder, error) {
	order, err := s.orderRepo.GetBatchOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != entity.BatchOrderStatusDraft {
		return nil, fmt.Errorf("only draft orders can be submitted: %w", ErrInvalidState)
	}
	count, err := s.orderRepo.CountPartOrders(ctx, id)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("order has no line items: %w", ErrInvalidState)
	}

	now := time.Now()
	order.Status = entity.BatchOrderStatusPending
	order.OrderDate = &now
	if err := s.orderRepo.UpdateBatchOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to submit batch order: %w", err)
	}
	return order, nil
}

// --- Part Orders ---

type CreatePartOrderRequest struct {
	BatchOrderID    string  `json:"batch_order_id" binding:"required"`
	PartID          string  `json:"part_id" binding:"required"`
	Quantity        int     `json:"quantity" binding:"required,gte=1"`
	RequestReason   string  `json:"request_reason" binding:"required"`
	UrgencyLevel    string  `json:"urgency_level" binding:"omitempty,oneof=low normal high critical"`
	AssetID         *string `json:"asset_id"`
	WorkOrderNumber string  `json:"work_order_number"`
}

// AddPartOrder snapshots the part's current unit price onto a new line item
// and bumps the parent order total. Insert and increment run in a single
// transaction so a crash between them cannot break the sum invariant.
func (s *OrderService) AddPartOrder(ctx context.Context, userID string, req *CreatePartOrderRequest) (*entity.PartOrder, error) {
	order, err := s.orderRepo.GetBatchOrderByID(ctx, req.BatchOrderID)
	if err != nil {
		return nil, fmt.Errorf("batch order not found: %w", err)
	}
	if order.Status != entity.BatchOrderStatusDraft {
		return nil, fmt.Errorf("line items can only be added to draft orders: %w", ErrInvalidState)
	}

	part, err := s.partRepo.GetByID(ctx, req.PartID)
	if err != nil {
		return nil, fmt.Errorf("part not found: %w", err)
	}

	unitPrice := decimal.Zero
	if part.UnitPrice.Valid {
		unitPrice = part.UnitPrice.Decimal
	}
	totalPrice := unitPrice.Mul(decimal.NewFromInt(int64(req.Quantity))).Round(2)

	urgency := req.UrgencyLevel
	if urgency == "" {
		urgency = entity.UrgencyNormal
	}

	item := &entity.PartOrder{
		BatchOrderID:    req.BatchOrderID,
		PartID:          req.PartID,
		Quantity:        req.Quantity,
		UnitPrice:       unitPrice,
		TotalPrice:      totalPrice,
		RequestedBy:     userID,
		RequestReason:   req.RequestReason,
		UrgencyLevel:    urgency,
		AssetID:         req.AssetID,
		WorkOrderNumber: req.WorkOrderNumber,
	}

	if err := s.orderRepo.AddPartOrder(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to add part order: %w", err)
	}
	return item, nil
}

func (s *OrderService) ListPartOrders(ctx context.Context, batchOrderID string) ([]entity.PartOrder, error) {
	if _, err := s.orderRepo.GetBatchOrderByID(ctx, batchOrderID); err != nil {
		return nil, err
	}
	return s.orderRepo.ListPartOrders(ctx, batchOrderID)
}

var orderExportHeaders = []string{
	"#", "Part Number", "Part Name", "Quantity", "Unit Price", "Line Total",
	"Received", "Urgency", "Work Order", "Reason",
}

// ExportBatchOrder renders the order and its line items as an xlsx workbook.
func (s *OrderService) ExportBatchOrder(ctx context.Context, id string) (*excelize.File, string, error) {
	order, err := s.orderRepo.GetBatchOrderByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := "Order"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range orderExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for rowIdx, item := range order.PartOrders {
		row := rowIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), rowIdx+1)
		if item.Part != nil {
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.Part.PartNumber)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), item.Part.Name)
		}
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), item.Quantity)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), item.UnitPrice.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), item.TotalPrice.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), item.ReceivedQuantity)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), item.UrgencyLevel)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), item.WorkOrderNumber)
		f.SetCellValue(sheet, fmt.Sprintf("J%d", row), item.RequestReason)
	}

	summaryRow := len(order.PartOrders) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("C%d", summaryRow), fmt.Sprintf("Items: %d", len(order.PartOrders)))
	f.SetCellValue(sheet, fmt.Sprintf("F%d", summaryRow), order.TotalAmount.InexactFloat64())
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("J%d", summaryRow), summaryStyle)

	colWidths := []float64{4, 16, 24, 10, 10, 10, 10, 10, 14, 30}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	filename := fmt.Sprintf("%s.xlsx", order.BatchNumber)
	return f, filename, nil
}

type ReceiveItemRequest struct {
	PartOrderID      string `json:"part_order_id" binding:"required"`
	ReceivedQuantity int    `json:"received_quantity" binding:"required,gte=1"`
}

// ReceiveBatchOrder records received quantities against line items. When every
// line item is fully received the order closes out with an actual delivery
// date; partial receipts leave the status untouched.
func (s *OrderService) ReceiveBatchOrder(ctx context.Context, id string, items []ReceiveItemRequest) (*entity.BatchOrder, error) {
	order, err := s.orderRepo.GetBatchOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != entity.BatchOrderStatusPending && order.Status != entity.BatchOrderStatusOrdered {
		return nil, fmt.Errorf("order is not receivable in status %s: %w", order.Status, ErrInvalidState)
	}

	byID := make(map[string]*entity.PartOrder, len(order.PartOrders))
	for i := range order.PartOrders {
		byID[order.PartOrders[i].ID] = &order.PartOrders[i]
	}

	// Validate every receipt before writing anything.
	touched := make([]*entity.PartOrder, 0, len(items))
	for _, recv := range items {
		line, ok := byID[recv.PartOrderID]
		if !ok || line.BatchOrderID != id {
			return nil, fmt.Errorf("part order %s does not belong to this batch order: %w", recv.PartOrderID, gorm.ErrRecordNotFound)
		}
		if line.ReceivedQuantity+recv.ReceivedQuantity > line.Quantity {
			return nil, fmt.Errorf("received quantity for part order %s exceeds ordered quantity: %w", recv.PartOrderID, ErrInvalidState)
		}
		line.ReceivedQuantity += recv.ReceivedQuantity
		touched = append(touched, line)
	}

	allReceived := true
	for i := range order.PartOrders {
		if order.PartOrders[i].ReceivedQuantity < order.PartOrders[i].Quantity {
			allReceived = false
			break
		}
	}
	if allReceived {
		now := time.Now()
		order.Status = entity.BatchOrderStatusReceived
		order.ActualDeliveryDate = &now
	}

	if err := s.orderRepo.ReceiveOrderItems(ctx, order, touched); err != nil {
		return nil, fmt.Errorf("failed to record receipt: %w", err)
	}
	return order, nil
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/kleenkanteen/cityflow/internal/repository"
	"github.com/kleenkanteen/cityflow/internal/service"
)

// OrderHandler 批量采购处理器
type OrderHandler struct {
	orderSvc *service.OrderService
}

func NewOrderHandler(orderSvc *service.OrderService) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc}
}

// --- Batch Orders ---

// CreateBatchOrder POST /api/v1/batch-orders
func (h *OrderHandler) CreateBatchOrder(c *gin.Context) {
	var req service.CreateBatchOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	order, err := h.orderSvc.CreateBatchOrder(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	Created(c, order)
}

// ListBatchOrders GET /api/v1/batch-orders
func (h *OrderHandler) ListBatchOrders(c *gin.Context) {
	page, pageSize := GetPagination(c)
	params := repository.BatchOrderListParams{
		Status:     c.Query("status"),
		SupplierID: c.Query("supplier_id"),
		Page:       page,
		Size:       pageSize,
	}

	orders, total, err := h.orderSvc.ListBatchOrders(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, ListResponse{
		Items:      orders,
		Pagination: NewPagination(page, pageSize, total),
	})
}

// GetBatchOrder GET /api/v1/batch-orders/:id
func (h *OrderHandler) GetBatchOrder(c *gin.Context) {
	order, err := h.orderSvc.GetBatchOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, order)
}

// UpdateBatchOrder PATCH /api/v1/batch-orders/:id
func (h *OrderHandler) UpdateBatchOrder(c *gin.Context) {
	var req service.UpdateBatchOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	order, err := h.orderSvc.UpdateBatchOrder(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, order)
}

// SubmitBatchOrder POST /api/v1/batch-orders/:id/submit
func (h *OrderHandler) SubmitBatchOrder(c *gin.Context) {
	order, err := h.orderSvc.SubmitBatchOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, order)
}

type receiveBatchOrderRequest struct {
	Items []service.ReceiveItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ReceiveBatchOrder POST /api/v1/batch-orders/:id/receive
func (h *OrderHandler) ReceiveBatchOrder(c *gin.Context) {
	var req receiveBatchOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	order, err := h.orderSvc.ReceiveBatchOrder(c.Request.Context(), c.Param("id"), req.Items)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, order)
}

// --- Part Orders ---

// CreatePartOrder POST /api/v1/part-orders
func (h *OrderHandler) CreatePartOrder(c *gin.Context) {
	var req service.CreatePartOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	item, err := h.orderSvc.AddPartOrder(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	Created(c, item)
}

// ExportBatchOrder GET /api/v1/batch-orders/:id/export
func (h *OrderHandler) ExportBatchOrder(c *gin.Context) {
	f, filename, err := h.orderSvc.ExportBatchOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "write excel: "+err.Error())
	}
}

// ListPartOrders GET /api/v1/batch-orders/:id/items
func (h *OrderHandler) ListPartOrders(c *gin.Context) {
	items, err := h.orderSvc.ListPartOrders(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, items)
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/kleenkanteen/cityflow/internal/service"
)

// InventoryHandler 设备库存与租借处理器
type InventoryHandler struct {
	inventorySvc *service.InventoryService
}

func NewInventoryHandler(inventorySvc *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventorySvc: inventorySvc}
}

// CreateItem POST /api/v1/inventory
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var req service.CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	item, err := h.inventorySvc.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	Created(c, item)
}

// ListItems GET /api/v1/inventory
func (h *InventoryHandler) ListItems(c *gin.Context) {
	items, err := h.inventorySvc.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, items)
}

// UpdateItem PATCH /api/v1/inventory/:id
func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	var req service.UpdateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	item, err := h.inventorySvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, item)
}

// DeleteItem DELETE /api/v1/inventory/:id
func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	if err := h.inventorySvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	Success(c, nil)
}

// --- Equipment Requests ---

// CreateRequest POST /api/v1/requests
// Public intake endpoint: citizens submit rental requests without an account.
func (h *InventoryHandler) CreateRequest(c *gin.Context) {
	var req service.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	request, err := h.inventorySvc.CreateRequest(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	Created(c, request)
}

// ListRequests GET /api/v1/requests
func (h *InventoryHandler) ListRequests(c *gin.Context) {
	requests, err := h.inventorySvc.ListRequests(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, requests)
}

// UpdateRequestStatus PATCH /api/v1/requests/:id
func (h *InventoryHandler) UpdateRequestStatus(c *gin.Context) {
	var req service.UpdateRequestStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	request, err := h.inventorySvc.UpdateRequestStatus(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, request)
}

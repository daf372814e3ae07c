package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/kleenkanteen/cityflow/internal/repository"
	"github.com/kleenkanteen/cityflow/internal/service"
)

// SupplierHandler 供应商处理器
type SupplierHandler struct {
	supplierSvc *service.SupplierService
}

func NewSupplierHandler(supplierSvc *service.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierSvc: supplierSvc}
}

// Create POST /api/v1/suppliers
func (h *SupplierHandler) Create(c *gin.Context) {
	var req service.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	supplier, err := h.supplierSvc.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	Created(c, supplier)
}

// List GET /api/v1/suppliers
func (h *SupplierHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	params := repository.SupplierListParams{
		Search:     c.Query("search"),
		ActiveOnly: c.Query("active") == "true",
		Page:       page,
		Size:       pageSize,
	}

	suppliers, total, err := h.supplierSvc.List(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, ListResponse{
		Items:      suppliers,
		Pagination: NewPagination(page, pageSize, total),
	})
}

// Get GET /api/v1/suppliers/:id
func (h *SupplierHandler) Get(c *gin.Context) {
	supplier, err := h.supplierSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, supplier)
}

// Update PATCH /api/v1/suppliers/:id
func (h *SupplierHandler) Update(c *gin.Context) {
	var req service.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	supplier, err := h.supplierSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, supplier)
}

// Delete DELETE /api/v1/suppliers/:id
func (h *SupplierHandler) Delete(c *gin.Context) {
	if err := h.supplierSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	Success(c, nil)
}

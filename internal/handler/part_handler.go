package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/kleenkanteen/cityflow/internal/repository"
	"github.com/kleenkanteen/cityflow/internal/service"
)

// PartHandler 零件目录处理器
type PartHandler struct {
	partSvc *service.PartService
}

func NewPartHandler(partSvc *service.PartService) *PartHandler {
	return &PartHandler{partSvc: partSvc}
}

// Create POST /api/v1/parts
func (h *PartHandler) Create(c *gin.Context) {
	var req service.CreatePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	part, err := h.partSvc.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	Created(c, part)
}

// List GET /api/v1/parts
func (h *PartHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	params := repository.PartListParams{
		Search:     c.Query("search"),
		Category:   c.Query("category"),
		SupplierID: c.Query("supplier_id"),
		ActiveOnly: c.Query("active") == "true",
		Page:       page,
		Size:       pageSize,
	}

	parts, total, err := h.partSvc.List(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, ListResponse{
		Items:      parts,
		Pagination: NewPagination(page, pageSize, total),
	})
}

// Get GET /api/v1/parts/:id
func (h *PartHandler) Get(c *gin.Context) {
	part, err := h.partSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, part)
}

// Update PATCH /api/v1/parts/:id
func (h *PartHandler) Update(c *gin.Context) {
	var req service.UpdatePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	part, err := h.partSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, part)
}

// Delete DELETE /api/v1/parts/:id
func (h *PartHandler) Delete(c *gin.Context) {
	if err := h.partSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	Success(c, nil)
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/kleenkanteen/cityflow/internal/service"
)

// AssetHandler 市政资产处理器
type AssetHandler struct {
	assetSvc *service.AssetService
}

func NewAssetHandler(assetSvc *service.AssetService) *AssetHandler {
	return &AssetHandler{assetSvc: assetSvc}
}

// Create POST /api/v1/assets
func (h *AssetHandler) Create(c *gin.Context) {
	var req service.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	asset, err := h.assetSvc.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	Created(c, asset)
}

// List GET /api/v1/assets
func (h *AssetHandler) List(c *gin.Context) {
	assets, err := h.assetSvc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, assets)
}

// Get GET /api/v1/assets/:id
func (h *AssetHandler) Get(c *gin.Context) {
	asset, err := h.assetSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, asset)
}

// Update PATCH /api/v1/assets/:id
func (h *AssetHandler) Update(c *gin.Context) {
	var req service.UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	asset, err := h.assetSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, asset)
}

// Delete DELETE /api/v1/assets/:id
func (h *AssetHandler) Delete(c *gin.Context) {
	if err := h.assetSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	Success(c, nil)
}

// CreateLog POST /api/v1/assets/:id/logs
func (h *AssetHandler) CreateLog(c *gin.Context) {
	var req service.CreateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	log, err := h.assetSvc.CreateLog(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	Created(c, log)
}

// ListLogs GET /api/v1/assets/:id/logs
func (h *AssetHandler) ListLogs(c *gin.Context) {
	logs, err := h.assetSvc.ListLogs(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, logs)
}

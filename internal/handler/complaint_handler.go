package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kleenkanteen/cityflow/internal/service"
)

// ComplaintHandler 市民投诉处理器
type ComplaintHandler struct {
	complaintSvc *service.ComplaintService
}

func NewComplaintHandler(complaintSvc *service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaintSvc: complaintSvc}
}

// Create POST /api/v1/complaints
// Public intake endpoint, no auth required.
func (h *ComplaintHandler) Create(c *gin.Context) {
	var req service.CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	complaint, err := h.complaintSvc.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	Created(c, complaint)
}

// List GET /api/v1/complaints
func (h *ComplaintHandler) List(c *gin.Context) {
	complaints, err := h.complaintSvc.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, complaints)
}

// Update PATCH /api/v1/complaints/:id
func (h *ComplaintHandler) Update(c *gin.Context) {
	var req service.UpdateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	complaint, err := h.complaintSvc.UpdateStatus(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, complaint)
}

// UploadPhoto POST /api/v1/complaints/:id/photo
func (h *ComplaintHandler) UploadPhoto(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		BadRequest(c, "photo file is required")
		return
	}
	defer file.Close()

	complaint, err := h.complaintSvc.AttachPhoto(c.Request.Context(), c.Param("id"),
		file, header.Size, header.Header.Get("Content-Type"), header.Filename)
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, complaint)
}

// DownloadPhoto GET /api/v1/complaints/:id/photo
func (h *ComplaintHandler) DownloadPhoto(c *gin.Context) {
	reader, contentType, size, err := h.complaintSvc.Photo(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	defer reader.Close()

	c.DataFromReader(http.StatusOK, size, contentType, reader, nil)
}

// Delete DELETE /api/v1/complaints/:id
func (h *ComplaintHandler) Delete(c *gin.Context) {
	if err := h.complaintSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	Success(c, nil)
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/kleenkanteen/cityflow/internal/service"
)

// DashboardHandler 运营看板处理器
type DashboardHandler struct {
	dashboardSvc *service.DashboardService
}

func NewDashboardHandler(dashboardSvc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

// Summary GET /api/v1/dashboard/summary
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.dashboardSvc.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, summary)
}

package handler

import (
	appfinance "github.com/audiozoom/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
)

// AdminHandler serves platform reports for administrators
type AdminHandler struct {
	BaseHandler
	revenueService *appfinance.RevenueService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(revenueService *appfinance.RevenueService) *AdminHandler {
	return &AdminHandler{revenueService: revenueService}
}

// Revenue godoc
// @Summary      Platform revenue report
// @Description  Completed payments created within the optional bounds
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        startDate query string false "YYYY-MM-DD or RFC 3339"
// @Param        endDate query string false "YYYY-MM-DD or RFC 3339"
// @Success      200 {object} dto.Response{data=appfinance.RevenueReport}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /admin/revenue [get]
func (h *AdminHandler) Revenue(c *gin.Context) {
	period, err := appfinance.ParseRevenuePeriod(c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	report, err := h.revenueService.Report(c.Request.Context(), period)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

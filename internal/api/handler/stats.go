package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/travelbuddy_go_server/internal/api/middleware"
	"github.com/qs3c/travelbuddy_go_server/internal/pkg/pagination"
	"github.com/qs3c/travelbuddy_go_server/internal/pkg/response"
	"github.com/qs3c/travelbuddy_go_server/internal/service"
)

type StatsHandler struct {
	statsService *service.StatsService
}

func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// TravelerDashboard 旅行者仪表盘
// GET /api/v1/stats/dashboard
func (h *StatsHandler) TravelerDashboard(c *gin.Context) {
	email, ok := middleware.GetUserEmail(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	dashboard, err := h.statsService.GetTravelerDashboard(email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTravelerNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, dashboard)
}

// AdminDashboard 管理端仪表盘
// GET /api/v1/stats/admin
func (h *StatsHandler) AdminDashboard(c *gin.Context) {
	dashboard, err := h.statsService.GetAdminDashboard(c.Request.Context())
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, dashboard)
}

// Activities 系统活动流（管理端，分页）
// GET /api/v1/stats/activities
func (h *StatsHandler) Activities(c *gin.Context) {
	var opts pagination.Options
	if err := c.ShouldBindQuery(&opts); err != nil {
		response.ParamError(c, err.Error())
		return
	}
	opts.Normalize()

	typeFilter := c.Query("type")

	items, total, err := h.statsService.GetSystemActivities(typeFilter, &opts)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, pagination.TotalPages(total, opts.Limit), opts.Page, opts.Limit, items)
}

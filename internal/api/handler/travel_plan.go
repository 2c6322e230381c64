package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/travelbuddy_go_server/internal/api/middleware"
	"github.com/qs3c/travelbuddy_go_server/internal/model/dto"
	"github.com/qs3c/travelbuddy_go_server/internal/pkg/pagination"
	"github.com/qs3c/travelbuddy_go_server/internal/pkg/response"
	"github.com/qs3c/travelbuddy_go_server/internal/service"
)

type TravelPlanHandler struct {
	planService *service.TravelPlanService
}

func NewTravelPlanHandler(planService *service.TravelPlanService) *TravelPlanHandler {
	return &TravelPlanHandler{
		planService: planService,
	}
}

// Create 发布旅行计划
// POST /api/v1/travel-plans
func (h *TravelPlanHandler) Create(c *gin.Context) {
	email, ok := middleware.GetUserEmail(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreateTravelPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	plan, err := h.planService.CreateTravelPlan(email, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTravelerNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrProfileIncomplete):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrInvalidDate), errors.Is(err, service.ErrInvalidDateRange):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "旅行计划已发布", plan)
}

// List 公共计划列表（分页，支持目的地/出行类型过滤）
// GET /api/v1/travel-plans
func (h *TravelPlanHandler) List(c *gin.Context) {
	var filter dto.TravelPlanSearchRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	var opts pagination.Options
	if err := c.ShouldBindQuery(&opts); err != nil {
		response.ParamError(c, err.Error())
		return
	}
	opts.Normalize()

	plans, total, err := h.planService.SearchTravelPlans(&filter, &opts)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, pagination.TotalPages(total, opts.Limit), opts.Page, opts.Limit, plans)
}

// ListMine 我发布的计划（分页）
// GET /api/v1/travel-plans/my
func (h *TravelPlanHandler) ListMine(c *gin.Context) {
	email, ok := middleware.GetUserEmail(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var opts pagination.Options
	if err := c.ShouldBindQuery(&opts); err != nil {
		response.ParamError(c, err.Error())
		return
	}
	opts.Normalize()

	plans, total, err := h.planService.GetMyTravelPlans(email, &opts)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTravelerNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessPage(c, total, pagination.TotalPages(total, opts.Limit), opts.Page, opts.Limit, plans)
}

// Get 计划详情
// GET /api/v1/travel-plans/:id
func (h *TravelPlanHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的计划 ID")
		return
	}

	plan, err := h.planService.GetTravelPlanByID(id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTripNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, plan)
}

// Delete 删除计划（发布者或管理员）
// DELETE /api/v1/travel-plans/:id
func (h *TravelPlanHandler) Delete(c *gin.Context) {
	email, ok := middleware.GetUserEmail(c)
	if !ok {
		response.AuthError(c, "")
		return
	}
	role, _ := middleware.GetUserRole(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的计划 ID")
		return
	}

	if err := h.planService.DeleteTravelPlan(email, role, id); err != nil {
		switch {
		case errors.Is(err, service.ErrTripNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrTravelerNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrPlanPermission):
			response.PermissionError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "旅行计划已删除", nil)
}

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

type ReviewHandler struct {
	reviewService *service.ReviewService
}

func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// Create 发表评价
// POST /api/v1/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	email, ok := middleware.GetUserEmail(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	review, err := h.reviewService.AddReview(email, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTravelerNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrTripNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrOwnPlanReview):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "评价已发表", review)
}

// ListByPlan 某计划的评价列表
// GET /api/v1/travel-plans/:id/reviews
func (h *ReviewHandler) ListByPlan(c *gin.Context) {
	planID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的计划 ID")
		return
	}

	items, err := h.reviewService.GetReviewsForTravelPlan(planID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, items)
}

// ListMine 我发表的评价
// GET /api/v1/reviews/my
func (h *ReviewHandler) ListMine(c *gin.Context) {
	email, ok := middleware.GetUserEmail(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	items, err := h.reviewService.GetMyReviews(email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTravelerNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, items)
}

// ListAll 全部评价（管理端，分页）
// GET /api/v1/reviews
func (h *ReviewHandler) ListAll(c *gin.Context) {
	var opts pagination.Options
	if err := c.ShouldBindQuery(&opts); err != nil {
		response.ParamError(c, err.Error())
		return
	}
	opts.Normalize()

	items, total, err := h.reviewService.GetAllReviews(&opts)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, pagination.TotalPages(total, opts.Limit), opts.Page, opts.Limit, items)
}

// Update 修改评价（作者）
// PUT /api/v1/reviews/:id
func (h *ReviewHandler) Update(c *gin.Context) {
	email, ok := middleware.GetUserEmail(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的评价 ID")
		return
	}

	var req dto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	review, err := h.reviewService.UpdateReview(email, reviewID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrTravelerNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrReviewPermission):
			response.PermissionError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "评价已更新", review)
}

// Delete 删除评价（作者或管理员）
// DELETE /api/v1/reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	email, ok := middleware.GetUserEmail(c)
	if !ok {
		response.AuthError(c, "")
		return
	}
	role, _ := middleware.GetUserRole(c)

	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的评价 ID")
		return
	}

	if err := h.reviewService.DeleteReview(email, role, reviewID); err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrReviewPermission):
			response.PermissionError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "评价已删除", nil)
}

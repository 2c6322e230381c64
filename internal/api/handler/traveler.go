package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/travelbuddy_go_server/internal/api/middleware"
	"github.com/qs3c/travelbuddy_go_server/internal/model/dto"
	"github.com/qs3c/travelbuddy_go_server/internal/pkg/response"
	"github.com/qs3c/travelbuddy_go_server/internal/service"
)

type TravelerHandler struct {
	travelerService *service.TravelerService
}

func NewTravelerHandler(travelerService *service.TravelerService) *TravelerHandler {
	return &TravelerHandler{
		travelerService: travelerService,
	}
}

// GetProfile 获取个人资料（按角色分发）
// GET /api/v1/travelers/me
func (h *TravelerHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	resp, err := h.travelerService.GetMe(userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTravelerNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, resp)
}

// UpdateProfile 更新个人资料
// PUT /api/v1/travelers/me
func (h *TravelerHandler) UpdateProfile(c *gin.Context) {
	email, ok := middleware.GetUserEmail(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	traveler, err := h.travelerService.UpdateMe(email, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTravelerNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "资料已更新", traveler)
}

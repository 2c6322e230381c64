package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/travelbuddy_go_server/internal/api/middleware"
	"github.com/qs3c/travelbuddy_go_server/internal/model/dto"
	"github.com/qs3c/travelbuddy_go_server/internal/pkg/response"
	"github.com/qs3c/travelbuddy_go_server/internal/service"
)

type TripRequestHandler struct {
	requestService *service.TripRequestService
}

func NewTripRequestHandler(requestService *service.TripRequestService) *TripRequestHandler {
	return &TripRequestHandler{
		requestService: requestService,
	}
}

// Create 申请加入行程
// POST /api/v1/travel-plans/:id/requests
func (h *TripRequestHandler) Create(c *gin.Context) {
	email, ok := middleware.GetUserEmail(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	planID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的计划 ID")
		return
	}

	request, err := h.requestService.RequestToJoin(email, planID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTravelerNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrSubscriptionRequired), errors.Is(err, service.ErrSubscriptionExpired):
			response.PaymentRequiredError(c, err.Error())
		case errors.Is(err, service.ErrTripNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrOwnTrip):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrDuplicateRequest):
			response.DuplicateError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "申请已提交", request)
}

// ListMine 我发出的申请
// GET /api/v1/trip-requests/my
func (h *TripRequestHandler) ListMine(c *gin.Context) {
	email, ok := middleware.GetUserEmail(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	items, err := h.requestService.GetMyTripRequests(email)
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

// ListIncoming 我的计划收到的申请
// GET /api/v1/trip-requests/incoming
func (h *TripRequestHandler) ListIncoming(c *gin.Context) {
	email, ok := middleware.GetUserEmail(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	items, err := h.requestService.GetIncomingRequests(email)
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

// Respond 审批申请（行程主人）
// PATCH /api/v1/trip-requests/:id
func (h *TripRequestHandler) Respond(c *gin.Context) {
	email, ok := middleware.GetUserEmail(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	requestID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的申请 ID")
		return
	}

	var body dto.RespondRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	request, err := h.requestService.RespondToRequest(email, requestID, body.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrTravelerNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrRequestNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrRequestPermission):
			response.PermissionError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "申请已处理", request)
}

package handler

import (
	"errors"
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/travelbuddy_go_server/internal/api/middleware"
	"github.com/qs3c/travelbuddy_go_server/internal/model/dto"
	"github.com/qs3c/travelbuddy_go_server/internal/pkg/response"
	"github.com/qs3c/travelbuddy_go_server/internal/pkg/stripe"
	"github.com/qs3c/travelbuddy_go_server/internal/service"
)

// 网关事件时间戳的容忍窗口
const webhookTolerance = 5 * time.Minute

type PaymentHandler struct {
	paymentService *service.PaymentService
	stripeClient   *stripe.Client
}

func NewPaymentHandler(paymentService *service.PaymentService, stripeClient *stripe.Client) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		stripeClient:   stripeClient,
	}
}

// CreateCheckout 创建订阅结账会话
// POST /api/v1/subscriptions/checkout
func (h *PaymentHandler) CreateCheckout(c *gin.Context) {
	email, ok := middleware.GetUserEmail(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.paymentService.CreateSubscriptionSession(c.Request.Context(), email, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTravelerNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "支付会话创建失败")
		}
		return
	}

	response.Success(c, resp)
}

// Webhook 支付网关回调
// POST /api/v1/payments/webhook
// 签名校验在这里完成，业务结算交给 service 层
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.ParamError(c, "读取请求体失败")
		return
	}

	event, err := h.stripeClient.ConstructEvent(payload,
		c.GetHeader("Stripe-Signature"), webhookTolerance)
	if err != nil {
		response.AuthError(c, "签名校验失败")
		return
	}

	if err := h.paymentService.HandleWebhook(event, payload); err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, gin.H{"received": true})
}

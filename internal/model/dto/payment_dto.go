package dto

// CreateSubscriptionRequest 发起订阅结账请求
type CreateSubscriptionRequest struct {
	Amount           float64 `json:"amount" binding:"required,gt=0"`
	SubscriptionType string  `json:"subscription_type" binding:"required,oneof=monthly yearly"`
}

// CreateSubscriptionResponse 结账会话创建结果
type CreateSubscriptionResponse struct {
	PaymentURL string `json:"payment_url"`
}

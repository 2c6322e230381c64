package model

import (
	"time"
)

// 支付状态，仅结算流程可将 PENDING 迁移到 COMPLETED / FAILED
const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusCompleted = "COMPLETED"
	PaymentStatusFailed    = "FAILED"
)

// 订阅档位
const (
	SubscriptionMonthly = "monthly"
	SubscriptionYearly  = "yearly"
)

// Payment 一次订阅结账的记录，TransactionID 为支付网关的会话 ID
type Payment struct {
	ID                 int64     `gorm:"primaryKey" json:"id"`
	TravelerID         int64     `gorm:"not null;index" json:"traveler_id"`
	Amount             float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Status             string    `gorm:"size:20;default:PENDING;index" json:"status"`
	Subscription       string    `gorm:"size:20;not null" json:"subscription"` // monthly, yearly
	TransactionID      string    `gorm:"size:100;uniqueIndex;not null" json:"transaction_id"`
	PaymentGatewayData string    `gorm:"type:text" json:"-"` // 网关回调原始报文
	CreatedAt          time.Time `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	Traveler *Traveler `gorm:"foreignKey:TravelerID" json:"traveler,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}

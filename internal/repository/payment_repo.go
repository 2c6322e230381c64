package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/travelbuddy_go_server/internal/model"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// WithTx 返回绑定到事务的仓库
func (r *PaymentRepository) WithTx(tx *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: tx}
}

func (r *PaymentRepository) Create(payment *model.Payment) error {
	return r.db.Create(payment).Error
}

func (r *PaymentRepository) GetByTransactionID(transactionID string) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.Where("transaction_id = ?", transactionID).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// UpdateStatus 更新支付状态并保存网关原始报文
func (r *PaymentRepository) UpdateStatus(id int64, status, gatewayData string) error {
	return r.db.Model(&model.Payment{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":               status,
		"payment_gateway_data": gatewayData,
	}).Error
}

// SettlePending 仅当记录仍为 PENDING 时迁移到 COMPLETED 并保存网关原始报文，
// 返回迁移是否生效。条件更新保证同一笔支付只结算一次
func (r *PaymentRepository) SettlePending(id int64, gatewayData string) (bool, error) {
	result := r.db.Model(&model.Payment{}).
		Where("id = ? AND status = ?", id, model.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":               model.PaymentStatusCompleted,
			"payment_gateway_data": gatewayData,
		})
	return result.RowsAffected > 0, result.Error
}

// SumCompleted 已完成支付的总金额
func (r *PaymentRepository) SumCompleted() (float64, error) {
	var sum *float64
	err := r.db.Model(&model.Payment{}).
		Where("status = ?", model.PaymentStatusCompleted).
		Select("SUM(amount)").
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}

// ListRecent 最近的支付（带付款人），活动流用
func (r *PaymentRepository) ListRecent(limit int) ([]*model.Payment, error) {
	var payments []*model.Payment
	err := r.db.Preload("Traveler").Order("created_at DESC").Limit(limit).Find(&payments).Error
	return payments, err
}

// DeleteStalePending 删除超过截止时间仍未结算的 PENDING 记录，返回删除数
func (r *PaymentRepository) DeleteStalePending(before time.Time) (int64, error) {
	result := r.db.Where("status = ? AND created_at < ?", model.PaymentStatusPending, before).
		Delete(&model.Payment{})
	return result.RowsAffected, result.Error
}

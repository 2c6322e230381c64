package cron

import (
	"log"
	"time"

	"github.com/qs3c/travelbuddy_go_server/internal/repository"
)

// Service 后台维护任务：定期清理长期未结算的 PENDING 支付记录。
// 结账会话被用户放弃后网关不一定回调，这些记录会一直留在 PENDING 态。
type Service struct {
	paymentRepo *repository.PaymentRepository
	expireHours int
	interval    time.Duration
	stopChan    chan struct{}
}

func NewService(paymentRepo *repository.PaymentRepository, expireHours int) *Service {
	return &Service{
		paymentRepo: paymentRepo,
		expireHours: expireHours,
		interval:    time.Hour,
		stopChan:    make(chan struct{}),
	}
}

// Start 启动定时任务
func (s *Service) Start() {
	go s.runPaymentCleanup()
	log.Println("Cron service started (stale payment cleanup)")
}

// Stop 停止定时任务
func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Cron service stopped")
}

func (s *Service) runPaymentCleanup() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanupStalePayments()
		}
	}
}

func (s *Service) cleanupStalePayments() {
	expireHours := s.expireHours
	if expireHours <= 0 {
		expireHours = 24
	}

	before := time.Now().Add(-time.Duration(expireHours) * time.Hour)
	deleted, err := s.paymentRepo.DeleteStalePending(before)
	if err != nil {
		log.Printf("Stale payment cleanup failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("Stale payment cleanup: removed %d pending payments", deleted)
	}
}

// RunNow 立即执行一次清理（用于测试或手动触发）
func (s *Service) RunNow() {
	s.cleanupStalePayments()
}

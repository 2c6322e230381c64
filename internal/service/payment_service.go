package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/travelbuddy_go_server/config"
	"github.com/qs3c/travelbuddy_go_server/internal/model"
	"github.com/qs3c/travelbuddy_go_server/internal/model/dto"
	"github.com/qs3c/travelbuddy_go_server/internal/pkg/stripe"
	"github.com/qs3c/travelbuddy_go_server/internal/repository"
)

type PaymentService struct {
	db           *gorm.DB
	travelerRepo *repository.TravelerRepository
	paymentRepo  *repository.PaymentRepository
	stripeClient *stripe.Client
	cfg          *config.Config
}

func NewPaymentService(
	db *gorm.DB,
	travelerRepo *repository.TravelerRepository,
	paymentRepo *repository.PaymentRepository,
	stripeClient *stripe.Client,
	cfg *config.Config,
) *PaymentService {
	return &PaymentService{
		db:           db,
		travelerRepo: travelerRepo,
		paymentRepo:  paymentRepo,
		stripeClient: stripeClient,
		cfg:          cfg,
	}
}

// CreateSubscriptionSession 创建结账会话并落一条 PENDING 支付记录
func (s *PaymentService) CreateSubscriptionSession(ctx context.Context, email string, req *dto.CreateSubscriptionRequest) (*dto.CreateSubscriptionResponse, error) {
	traveler, err := s.travelerRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTravelerNotFound
		}
		return nil, err
	}

	session, err := s.stripeClient.CreateCheckoutSession(ctx, &stripe.CreateSessionParams{
		AmountCents:   int64(req.Amount * 100),
		ProductName:   fmt.Sprintf("Travel Buddy %s Subscription", req.SubscriptionType),
		Description:   fmt.Sprintf("Get verified badge and unlock %s features.", req.SubscriptionType),
		CustomerEmail: traveler.Email,
		SuccessURL:    s.cfg.Stripe.SuccessURL + "?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     s.cfg.Stripe.CancelURL,
		Metadata: map[string]string{
			"traveler_id":       fmt.Sprintf("%d", traveler.ID),
			"subscription_type": req.SubscriptionType,
		},
	})
	if err != nil {
		return nil, err
	}

	// 会话 ID 即本地支付记录的 transaction_id
	payment := &model.Payment{
		TravelerID:    traveler.ID,
		Amount:        req.Amount,
		Status:        model.PaymentStatusPending,
		Subscription:  req.SubscriptionType,
		TransactionID: session.ID,
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, err
	}

	return &dto.CreateSubscriptionResponse{PaymentURL: session.URL}, nil
}

// HandleWebhook 消费网关事件，签名校验在 handler 边界完成
// 网关会重投事件，所以这里所有"找不到支付记录"的分支都按空操作处理
func (s *PaymentService) HandleWebhook(event *stripe.Event, rawPayload []byte) error {
	switch event.Type {
	case stripe.EventCheckoutCompleted:
		return s.settleCompleted(event, rawPayload)

	case stripe.EventCheckoutExpired, stripe.EventAsyncPaymentFailed:
		return s.settleFailed(event, rawPayload)

	default:
		log.Printf("Unhandled payment event type: %s", event.Type)
		return nil
	}
}

func (s *PaymentService) settleCompleted(event *stripe.Event, rawPayload []byte) error {
	session, err := event.Session()
	if err != nil {
		return err
	}

	payment, err := s.paymentRepo.GetByTransactionID(session.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Payment not found for transaction %s, ignoring webhook", session.ID)
			return nil
		}
		return err
	}

	tier := strings.ToLower(session.Metadata["subscription_type"])
	duration := s.subscriptionDuration(tier)

	// 支付状态与旅行者认证状态必须在同一事务内更新
	return s.db.Transaction(func(tx *gorm.DB) error {
		// 幂等键：条件更新只允许 PENDING -> COMPLETED 迁移一次，
		// 重投（包括并发重投）的 completed 事件拿不到行，不会再次延长订阅窗口
		settled, err := s.paymentRepo.WithTx(tx).SettlePending(payment.ID, string(rawPayload))
		if err != nil {
			return err
		}
		if !settled {
			log.Printf("Payment %s already settled, ignoring duplicate webhook", session.ID)
			return nil
		}

		traveler, err := s.travelerRepo.WithTx(tx).GetByID(payment.TravelerID)
		if err != nil {
			return err
		}

		// 从 max(now, 当前到期时间) 起算，叠加购买不吞掉剩余时长
		base := time.Now()
		if traveler.SubscriptionEndDate != nil && traveler.SubscriptionEndDate.After(base) {
			base = *traveler.SubscriptionEndDate
		}
		newEndDate := base.Add(time.Duration(duration) * 24 * time.Hour)

		return s.travelerRepo.WithTx(tx).SetSubscription(payment.TravelerID, true, newEndDate)
	})
}

func (s *PaymentService) settleFailed(event *stripe.Event, rawPayload []byte) error {
	session, err := event.Session()
	if err != nil {
		return err
	}

	payment, err := s.paymentRepo.GetByTransactionID(session.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Payment not found for transaction %s, ignoring webhook", session.ID)
			return nil
		}
		return err
	}

	// 失败结算不改动旅行者状态
	return s.paymentRepo.UpdateStatus(payment.ID, model.PaymentStatusFailed, string(rawPayload))
}

// subscriptionDuration 档位对应的订阅天数，未配置或未识别的档位按月付处理
func (s *PaymentService) subscriptionDuration(tier string) int {
	if plan, ok := s.cfg.Subscription.Plans[tier]; ok && plan.DurationDays > 0 {
		return plan.DurationDays
	}
	if tier == model.SubscriptionYearly {
		return 365
	}
	return 30
}

package service

import (
	"errors"
	"time"

	"github.com/qs3c/travelbuddy_go_server/internal/model"
	"github.com/qs3c/travelbuddy_go_server/internal/repository"
)

var (
	ErrSubscriptionRequired = errors.New("需要订阅会员才能申请加入行程")
	ErrSubscriptionExpired  = errors.New("订阅已过期，请续费后再申请")
)

// JoinDecision 加入行程的准入判定结果
// NeedsDowngrade 表示订阅已过期、调用方需要把 is_verified_traveler 回写为 false，
// 判定本身是纯函数，降级写入由调用方显式执行
type JoinDecision struct {
	Allowed        bool
	NeedsDowngrade bool
	Reason         error
}

type SubscriptionService struct {
	travelerRepo *repository.TravelerRepository
}

func NewSubscriptionService(travelerRepo *repository.TravelerRepository) *SubscriptionService {
	return &SubscriptionService{travelerRepo: travelerRepo}
}

// CheckJoinPermission 判定旅行者此刻是否可以发出加入申请
func (s *SubscriptionService) CheckJoinPermission(traveler *model.Traveler, now time.Time) *JoinDecision {
	if !traveler.IsVerifiedTraveler {
		return &JoinDecision{Allowed: false, Reason: ErrSubscriptionRequired}
	}

	// 订阅到期采用惰性检查：不扫表，在申请路径上发现过期才降级
	if traveler.SubscriptionEndDate != nil && traveler.SubscriptionEndDate.Before(now) {
		return &JoinDecision{Allowed: false, NeedsDowngrade: true, Reason: ErrSubscriptionExpired}
	}

	return &JoinDecision{Allowed: true}
}

// EnsureCanRequestJoin 执行判定并应用惰性降级，失败时返回判定原因
func (s *SubscriptionService) EnsureCanRequestJoin(traveler *model.Traveler) error {
	decision := s.CheckJoinPermission(traveler, time.Now())

	if decision.NeedsDowngrade {
		if err := s.travelerRepo.SetVerified(traveler.ID, false); err != nil {
			return err
		}
		traveler.IsVerifiedTraveler = false
	}

	if !decision.Allowed {
		return decision.Reason
	}

	return nil
}

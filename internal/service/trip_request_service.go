package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/travelbuddy_go_server/internal/model"
	"github.com/qs3c/travelbuddy_go_server/internal/model/dto"
	"github.com/qs3c/travelbuddy_go_server/internal/repository"
)

var (
	ErrTripNotFound      = errors.New("旅行计划不存在")
	ErrOwnTrip           = errors.New("不能申请加入自己的行程")
	ErrDuplicateRequest  = errors.New("已提交过加入申请")
	ErrRequestNotFound   = errors.New("申请不存在")
	ErrRequestPermission = errors.New("无权处理该申请")
	ErrInvalidStatus     = errors.New("无效的申请状态")
)

type TripRequestService struct {
	travelerRepo    *repository.TravelerRepository
	planRepo        *repository.TravelPlanRepository
	requestRepo     *repository.TripRequestRepository
	subscriptionSvc *SubscriptionService
}

func NewTripRequestService(
	travelerRepo *repository.TravelerRepository,
	planRepo *repository.TravelPlanRepository,
	requestRepo *repository.TripRequestRepository,
	subscriptionSvc *SubscriptionService,
) *TripRequestService {
	return &TripRequestService{
		travelerRepo:    travelerRepo,
		planRepo:        planRepo,
		requestRepo:     requestRepo,
		subscriptionSvc: subscriptionSvc,
	}
}

// RequestToJoin 申请加入行程
func (s *TripRequestService) RequestToJoin(email string, planID int64) (*model.TripRequest, error) {
	traveler, err := s.travelerRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTravelerNotFound
		}
		return nil, err
	}

	// 订阅准入检查（可能触发惰性降级）
	if err := s.subscriptionSvc.EnsureCanRequestJoin(traveler); err != nil {
		return nil, err
	}

	plan, err := s.planRepo.GetByID(planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}

	if plan.TravelerID == traveler.ID {
		return nil, ErrOwnTrip
	}

	// 快速路径检查，给并发下的重复请求一个干净的报错；
	// 真正的唯一性由 (travel_plan_id, traveler_id) 索引保证
	exists, err := s.requestRepo.ExistsByPlanAndTraveler(planID, traveler.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateRequest
	}

	request := &model.TripRequest{
		TravelPlanID: planID,
		TravelerID:   traveler.ID,
		Status:       model.RequestStatusPending,
	}

	if err := s.requestRepo.Create(request); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateRequest
		}
		return nil, err
	}

	return request, nil
}

// GetMyTripRequests 我发出的申请，附目标计划与主人联系方式，最新在前
func (s *TripRequestService) GetMyTripRequests(email string) ([]*dto.TripRequestItem, error) {
	traveler, err := s.travelerRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTravelerNotFound
		}
		return nil, err
	}

	requests, err := s.requestRepo.ListByTraveler(traveler.ID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.TripRequestItem, len(requests))
	for i, req := range requests {
		items[i] = &dto.TripRequestItem{
			ID:        req.ID,
			Status:    req.Status,
			CreatedAt: req.CreatedAt.Format(time.RFC3339),
		}
		if req.TravelPlan != nil {
			items[i].TravelPlan = buildPlanBrief(req.TravelPlan, true)
		}
	}

	return items, nil
}

// GetIncomingRequests 我的计划收到的申请，附申请者信息
func (s *TripRequestService) GetIncomingRequests(email string) ([]*dto.IncomingRequestItem, error) {
	traveler, err := s.travelerRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTravelerNotFound
		}
		return nil, err
	}

	planIDs, err := s.planRepo.ListIDsByTraveler(traveler.ID)
	if err != nil {
		return nil, err
	}

	requests, err := s.requestRepo.ListByPlanIDs(planIDs)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.IncomingRequestItem, len(requests))
	for i, req := range requests {
		items[i] = &dto.IncomingRequestItem{
			ID:        req.ID,
			Status:    req.Status,
			CreatedAt: req.CreatedAt.Format(time.RFC3339),
		}
		if req.Traveler != nil {
			items[i].Traveler = &dto.TravelerSummary{
				ID:           req.Traveler.ID,
				Name:         req.Traveler.Name,
				Email:        req.Traveler.Email,
				ProfileImage: req.Traveler.ProfileImage,
			}
		}
		if req.TravelPlan != nil {
			items[i].TravelPlan = buildPlanBrief(req.TravelPlan, false)
		}
	}

	return items, nil
}

// RespondToRequest 行程主人审批申请
// 状态覆盖不做终态锁：对已审批的申请再次审批会直接覆盖状态
func (s *TripRequestService) RespondToRequest(email string, requestID int64, status string) (*model.TripRequest, error) {
	if status != model.RequestStatusApproved && status != model.RequestStatusRejected {
		return nil, ErrInvalidStatus
	}

	traveler, err := s.travelerRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTravelerNotFound
		}
		return nil, err
	}

	request, err := s.requestRepo.GetByIDWithPlan(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	// 归属校验：只有目标计划的主人可以审批
	if request.TravelPlan == nil || request.TravelPlan.TravelerID != traveler.ID {
		return nil, ErrRequestPermission
	}

	if err := s.requestRepo.UpdateStatus(requestID, status); err != nil {
		return nil, err
	}

	request.Status = status
	return request, nil
}

func buildPlanBrief(plan *model.TravelPlan, withHost bool) *dto.TravelPlanBrief {
	brief := &dto.TravelPlanBrief{
		ID:          plan.ID,
		Destination: plan.Destination,
		Title:       plan.Title,
		StartDate:   plan.StartDate.Format("2006-01-02"),
		EndDate:     plan.EndDate.Format("2006-01-02"),
	}

	if withHost && plan.Traveler != nil {
		brief.Host = &dto.TravelerSummary{
			ID:            plan.Traveler.ID,
			Name:          plan.Traveler.Name,
			Email:         plan.Traveler.Email,
			ProfileImage:  plan.Traveler.ProfileImage,
			ContactNumber: plan.Traveler.ContactNumber,
		}
	}

	return brief
}

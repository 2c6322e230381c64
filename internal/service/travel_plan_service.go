package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/travelbuddy_go_server/internal/model"
	"github.com/qs3c/travelbuddy_go_server/internal/model/dto"
	"github.com/qs3c/travelbuddy_go_server/internal/pkg/pagination"
	"github.com/qs3c/travelbuddy_go_server/internal/repository"
)

var (
	ErrProfileIncomplete = errors.New("请先完善旅行者资料再发布旅行计划")
	ErrInvalidDateRange  = errors.New("结束日期不能早于开始日期")
	ErrInvalidDate       = errors.New("日期格式无效")
	ErrPlanPermission    = errors.New("无权删除该旅行计划")
)

type TravelPlanService struct {
	travelerRepo *repository.TravelerRepository
	planRepo     *repository.TravelPlanRepository
}

func NewTravelPlanService(
	travelerRepo *repository.TravelerRepository,
	planRepo *repository.TravelPlanRepository,
) *TravelPlanService {
	return &TravelPlanService{
		travelerRepo: travelerRepo,
		planRepo:     planRepo,
	}
}

// CreateTravelPlan 发布旅行计划，要求资料完整且日期区间合法
func (s *TravelPlanService) CreateTravelPlan(email string, req *dto.CreateTravelPlanRequest) (*model.TravelPlan, error) {
	traveler, err := s.travelerRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTravelerNotFound
		}
		return nil, err
	}

	if !isProfileComplete(traveler) {
		return nil, ErrProfileIncomplete
	}

	startDate, err := parsePlanDate(req.StartDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	endDate, err := parsePlanDate(req.EndDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if endDate.Before(startDate) {
		return nil, ErrInvalidDateRange
	}

	plan := &model.TravelPlan{
		TravelerID:  traveler.ID,
		Destination: req.Destination,
		Title:       req.Title,
		Description: req.Description,
		StartDate:   startDate,
		EndDate:     endDate,
		Budget:      req.Budget,
		TravelType:  req.TravelType,
		ImageURL:    req.ImageURL,
	}

	if err := s.planRepo.Create(plan); err != nil {
		return nil, err
	}

	return plan, nil
}

// GetTravelPlanByID 计划详情（带发布者摘要）
func (s *TravelPlanService) GetTravelPlanByID(id int64) (*model.TravelPlan, error) {
	plan, err := s.planRepo.GetByIDWithHost(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return plan, nil
}

// GetMyTravelPlans 我发布的计划（分页）
func (s *TravelPlanService) GetMyTravelPlans(email string, opts *pagination.Options) ([]*model.TravelPlan, int64, error) {
	traveler, err := s.travelerRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrTravelerNotFound
		}
		return nil, 0, err
	}

	return s.planRepo.ListByTraveler(traveler.ID, opts)
}

// SearchTravelPlans 公共计划列表，支持目的地/出行类型过滤（分页）
func (s *TravelPlanService) SearchTravelPlans(filter *dto.TravelPlanSearchRequest, opts *pagination.Options) ([]*model.TravelPlan, int64, error) {
	return s.planRepo.Search(filter.Destination, filter.TravelType, opts)
}

// DeleteTravelPlan 删除计划，发布者或管理员可删
func (s *TravelPlanService) DeleteTravelPlan(email, role string, planID int64) error {
	plan, err := s.planRepo.GetByID(planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTripNotFound
		}
		return err
	}

	if role != model.RoleAdmin {
		traveler, err := s.travelerRepo.GetByEmail(email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTravelerNotFound
			}
			return err
		}
		if plan.TravelerID != traveler.ID {
			return ErrPlanPermission
		}
	}

	return s.planRepo.Delete(planID)
}

func isProfileComplete(traveler *model.Traveler) bool {
	return traveler.ContactNumber != "" &&
		traveler.Address != "" &&
		traveler.ProfileImage != "" &&
		traveler.Bio != "" &&
		traveler.CurrentLocation != "" &&
		len(traveler.TravelInterests) > 0 &&
		len(traveler.VisitedCountries) > 0
}

// parsePlanDate 支持 RFC3339 与 2006-01-02 两种格式
func parsePlanDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

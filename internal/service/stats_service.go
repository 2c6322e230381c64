package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/qs3c/travelbuddy_go_server/internal/model"
	"github.com/qs3c/travelbuddy_go_server/internal/model/dto"
	"github.com/qs3c/travelbuddy_go_server/internal/pkg/pagination"
	"github.com/qs3c/travelbuddy_go_server/internal/repository"
)

const (
	adminDashboardCacheKey = "stats:admin_dashboard"
	adminDashboardCacheTTL = 5 * time.Minute
)

// 活动流事件类型
const (
	ActivityUserRegister = "USER_REGISTER"
	ActivityTripCreate   = "TRIP_CREATE"
	ActivityPayment      = "PAYMENT"
	ActivityReview       = "REVIEW"
)

type StatsService struct {
	travelerRepo *repository.TravelerRepository
	planRepo     *repository.TravelPlanRepository
	paymentRepo  *repository.PaymentRepository
	reviewRepo   *repository.ReviewRepository
	rdb          *redis.Client
}

func NewStatsService(
	travelerRepo *repository.TravelerRepository,
	planRepo *repository.TravelPlanRepository,
	paymentRepo *repository.PaymentRepository,
	reviewRepo *repository.ReviewRepository,
	rdb *redis.Client,
) *StatsService {
	return &StatsService{
		travelerRepo: travelerRepo,
		planRepo:     planRepo,
		paymentRepo:  paymentRepo,
		reviewRepo:   reviewRepo,
		rdb:          rdb,
	}
}

// GetTravelerDashboard 旅行者仪表盘
func (s *StatsService) GetTravelerDashboard(email string) (*dto.TravelerDashboard, error) {
	traveler, err := s.travelerRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTravelerNotFound
		}
		return nil, err
	}

	plans, err := s.planRepo.ListByTravelerAll(traveler.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	completed := 0
	var upcoming *model.TravelPlan
	for _, plan := range plans {
		if plan.EndDate.Before(now) {
			completed++
		}
		if upcoming == nil && plan.StartDate.After(now) {
			upcoming = plan
		}
	}

	matches, err := s.travelerRepo.CountMatchesByInterests(traveler.ID, traveler.TravelInterests)
	if err != nil {
		return nil, err
	}

	location := traveler.CurrentLocation
	if location == "" {
		location = "Location not set"
	}

	dashboard := &dto.TravelerDashboard{
		User: &dto.DashboardUser{
			Name:       traveler.Name,
			Image:      traveler.ProfileImage,
			IsVerified: traveler.IsVerifiedTraveler,
			Location:   location,
		},
		Stats: &dto.DashboardStats{
			TotalTrips:     len(plans),
			TotalMatches:   matches,
			CompletedTrips: completed,
			AverageRating:  traveler.AverageRating,
			IsVerified:     traveler.IsVerifiedTraveler,
		},
	}

	if upcoming != nil {
		daysLeft := int(time.Until(upcoming.StartDate).Hours()/24) + 1
		dashboard.UpcomingTrip = &dto.UpcomingTrip{
			ID:          upcoming.ID,
			Destination: upcoming.Destination,
			StartDate:   upcoming.StartDate.Format("2006-01-02"),
			Image:       upcoming.ImageURL,
			DaysLeft:    daysLeft,
		}
	}

	return dashboard, nil
}

// GetAdminDashboard 管理端仪表盘，计数部分短 TTL 缓存
func (s *StatsService) GetAdminDashboard(ctx context.Context) (*dto.AdminDashboard, error) {
	if cached, err := s.rdb.Get(ctx, adminDashboardCacheKey).Bytes(); err == nil {
		var dashboard dto.AdminDashboard
		if err := json.Unmarshal(cached, &dashboard); err == nil {
			return &dashboard, nil
		}
	}

	totalUsers, err := s.travelerRepo.Count()
	if err != nil {
		return nil, err
	}

	totalTrips, err := s.planRepo.Count()
	if err != nil {
		return nil, err
	}

	activeTrips, err := s.planRepo.CountActive(time.Now())
	if err != nil {
		return nil, err
	}

	revenue, err := s.paymentRepo.SumCompleted()
	if err != nil {
		return nil, err
	}

	activities, err := s.collectActivities("", 5)
	if err != nil {
		return nil, err
	}
	if len(activities) > 10 {
		activities = activities[:10]
	}

	dashboard := &dto.AdminDashboard{
		Counts: &dto.AdminCounts{
			TotalUsers:  totalUsers,
			TotalTrips:  totalTrips,
			ActiveTrips: activeTrips,
			Revenue:     revenue,
		},
		RecentActivity: activities,
	}

	if data, err := json.Marshal(dashboard); err == nil {
		if err := s.rdb.Set(ctx, adminDashboardCacheKey, data, adminDashboardCacheTTL).Err(); err != nil {
			log.Printf("Failed to cache admin dashboard: %v", err)
		}
	}

	return dashboard, nil
}

// GetSystemActivities 系统活动流，多表合并后按时间倒序分页
func (s *StatsService) GetSystemActivities(typeFilter string, opts *pagination.Options) ([]*dto.ActivityItem, int64, error) {
	// 各来源多取一些，合并排序后再切页
	activities, err := s.collectActivities(typeFilter, opts.Limit*2)
	if err != nil {
		return nil, 0, err
	}

	total := int64(len(activities))

	start := opts.Offset()
	if start >= len(activities) {
		return []*dto.ActivityItem{}, total, nil
	}
	end := start + opts.Limit
	if end > len(activities) {
		end = len(activities)
	}

	return activities[start:end], total, nil
}

func (s *StatsService) collectActivities(typeFilter string, fetchLimit int) ([]*dto.ActivityItem, error) {
	include := func(t string) bool {
		return typeFilter == "" || typeFilter == "ALL" || typeFilter == t
	}

	var activities []*dto.ActivityItem

	if include(ActivityUserRegister) {
		travelers, err := s.travelerRepo.ListRecent(fetchLimit)
		if err != nil {
			return nil, err
		}
		for _, tr := range travelers {
			activities = append(activities, &dto.ActivityItem{
				ID:        tr.ID,
				Type:      ActivityUserRegister,
				Message:   fmt.Sprintf("%s joined the platform.", tr.Name),
				CreatedAt: tr.CreatedAt.Format(time.RFC3339),
			})
		}
	}

	if include(ActivityTripCreate) {
		plans, err := s.planRepo.ListRecent(fetchLimit)
		if err != nil {
			return nil, err
		}
		for _, plan := range plans {
			name := "Someone"
			if plan.Traveler != nil {
				name = plan.Traveler.Name
			}
			activities = append(activities, &dto.ActivityItem{
				ID:        plan.ID,
				Type:      ActivityTripCreate,
				Message:   fmt.Sprintf("%s created a trip to %s.", name, plan.Destination),
				CreatedAt: plan.CreatedAt.Format(time.RFC3339),
			})
		}
	}

	if include(ActivityPayment) {
		payments, err := s.paymentRepo.ListRecent(fetchLimit)
		if err != nil {
			return nil, err
		}
		for _, payment := range payments {
			name := "Someone"
			if payment.Traveler != nil {
				name = payment.Traveler.Name
			}
			activities = append(activities, &dto.ActivityItem{
				ID:        payment.ID,
				Type:      ActivityPayment,
				Message:   fmt.Sprintf("%s made a payment of $%.2f.", name, payment.Amount),
				CreatedAt: payment.CreatedAt.Format(time.RFC3339),
			})
		}
	}

	if include(ActivityReview) {
		reviews, err := s.reviewRepo.ListRecent(fetchLimit)
		if err != nil {
			return nil, err
		}
		for _, review := range reviews {
			name := "Someone"
			if review.Traveler != nil {
				name = review.Traveler.Name
			}
			activities = append(activities, &dto.ActivityItem{
				ID:        review.ID,
				Type:      ActivityReview,
				Message:   fmt.Sprintf("%s gave a %d star review.", name, review.Rating),
				CreatedAt: review.CreatedAt.Format(time.RFC3339),
			})
		}
	}

	sort.Slice(activities, func(i, j int) bool {
		return activities[i].CreatedAt > activities[j].CreatedAt
	})

	return activities, nil
}

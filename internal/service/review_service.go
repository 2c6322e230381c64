package service

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/travelbuddy_go_server/internal/model"
	"github.com/qs3c/travelbuddy_go_server/internal/model/dto"
	"github.com/qs3c/travelbuddy_go_server/internal/pkg/pagination"
	"github.com/qs3c/travelbuddy_go_server/internal/repository"
)

var (
	ErrReviewNotFound   = errors.New("评价不存在")
	ErrOwnPlanReview    = errors.New("不能评价自己的旅行计划")
	ErrReviewPermission = errors.New("无权操作此评价")
)

type ReviewService struct {
	db           *gorm.DB
	travelerRepo *repository.TravelerRepository
	planRepo     *repository.TravelPlanRepository
	reviewRepo   *repository.ReviewRepository
}

func NewReviewService(
	db *gorm.DB,
	travelerRepo *repository.TravelerRepository,
	planRepo *repository.TravelPlanRepository,
	reviewRepo *repository.ReviewRepository,
) *ReviewService {
	return &ReviewService{
		db:           db,
		travelerRepo: travelerRepo,
		planRepo:     planRepo,
		reviewRepo:   reviewRepo,
	}
}

// AddReview 发表评价并在同一事务内重算发布者的平均评分
func (s *ReviewService) AddReview(email string, req *dto.AddReviewRequest) (*model.Review, error) {
	traveler, err := s.travelerRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTravelerNotFound
		}
		return nil, err
	}

	plan, err := s.planRepo.GetByID(req.TravelPlanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}

	if traveler.ID == plan.TravelerID {
		return nil, ErrOwnPlanReview
	}

	review := &model.Review{
		TravelerID:   traveler.ID,
		TravelPlanID: req.TravelPlanID,
		Rating:       req.Rating,
		Comment:      req.Comment,
	}

	// 插入评价与评分重算必须同生共死：
	// 不允许出现评价已入库、平均分却未尝试重算的状态
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.reviewRepo.WithTx(tx).Create(review); err != nil {
			return err
		}
		return s.recalculateHostRating(tx, plan.TravelerID)
	})
	if err != nil {
		return nil, err
	}

	return review, nil
}

// UpdateReview 修改评价，仅作者可改；评分变化时事后重算
func (s *ReviewService) UpdateReview(email string, reviewID int64, req *dto.UpdateReviewRequest) (*model.Review, error) {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	traveler, err := s.travelerRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTravelerNotFound
		}
		return nil, err
	}

	if review.TravelerID != traveler.ID {
		return nil, ErrReviewPermission
	}

	ratingChanged := false
	if req.Rating != nil && *req.Rating != review.Rating {
		review.Rating = *req.Rating
		ratingChanged = true
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}

	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}

	if ratingChanged {
		if err := s.recalculateForPlan(review.TravelPlanID); err != nil {
			log.Printf("Failed to recalculate host rating after review update: %v", err)
		}
	}

	return review, nil
}

// DeleteReview 删除评价，管理员或作者可删，之后重算
func (s *ReviewService) DeleteReview(email, role string, reviewID int64) error {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	isAdmin := role == model.RoleAdmin
	isOwner := false
	if traveler, err := s.travelerRepo.GetByEmail(email); err == nil {
		isOwner = review.TravelerID == traveler.ID
	}

	if !isAdmin && !isOwner {
		return ErrReviewPermission
	}

	if err := s.reviewRepo.Delete(reviewID); err != nil {
		return err
	}

	if err := s.recalculateForPlan(review.TravelPlanID); err != nil {
		log.Printf("Failed to recalculate host rating after review delete: %v", err)
	}

	return nil
}

// GetReviewsForTravelPlan 某计划的评价列表
func (s *ReviewService) GetReviewsForTravelPlan(planID int64) ([]*dto.ReviewItem, error) {
	reviews, err := s.reviewRepo.ListByTravelPlan(planID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ReviewItem, len(reviews))
	for i, r := range reviews {
		items[i] = buildReviewItem(r)
	}
	return items, nil
}

// GetMyReviews 我发表的评价
func (s *ReviewService) GetMyReviews(email string) ([]*dto.ReviewItem, error) {
	traveler, err := s.travelerRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTravelerNotFound
		}
		return nil, err
	}

	reviews, err := s.reviewRepo.ListByTraveler(traveler.ID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ReviewItem, len(reviews))
	for i, r := range reviews {
		items[i] = buildReviewItem(r)
	}
	return items, nil
}

// GetAllReviews 全部评价（分页），管理端视图
func (s *ReviewService) GetAllReviews(opts *pagination.Options) ([]*dto.ReviewItem, int64, error) {
	reviews, total, err := s.reviewRepo.ListAll(opts)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*dto.ReviewItem, len(reviews))
	for i, r := range reviews {
		items[i] = buildReviewItem(r)
	}
	return items, total, nil
}

// recalculateForPlan 按计划定位发布者后重算，计划已被删除时跳过
func (s *ReviewService) recalculateForPlan(planID int64) error {
	plan, err := s.planRepo.GetByID(planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return s.recalculateHostRating(s.db, plan.TravelerID)
}

// recalculateHostRating 重算发布者名下所有计划的评价均值并落库
// 无评价时均值记 0，与历史行为保持一致
func (s *ReviewService) recalculateHostRating(tx *gorm.DB, hostID int64) error {
	planIDs, err := s.planRepo.WithTx(tx).ListIDsByTraveler(hostID)
	if err != nil {
		return err
	}

	avg, err := s.reviewRepo.WithTx(tx).AverageRatingForPlans(planIDs)
	if err != nil {
		return err
	}

	return s.travelerRepo.WithTx(tx).SetAverageRating(hostID, avg)
}

func buildReviewItem(r *model.Review) *dto.ReviewItem {
	item := &dto.ReviewItem{
		ID:        r.ID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}

	if r.Traveler != nil {
		item.Traveler = &dto.TravelerSummary{
			ID:           r.Traveler.ID,
			Name:         r.Traveler.Name,
			ProfileImage: r.Traveler.ProfileImage,
		}
	}

	if r.TravelPlan != nil {
		item.TravelPlan = &dto.TravelPlanBrief{
			ID:          r.TravelPlan.ID,
			Destination: r.TravelPlan.Destination,
			Title:       r.TravelPlan.Title,
			StartDate:   r.TravelPlan.StartDate.Format("2006-01-02"),
			EndDate:     r.TravelPlan.EndDate.Format("2006-01-02"),
		}
	}

	return item
}

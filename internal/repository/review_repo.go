package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/travelbuddy_go_server/internal/model"
	"github.com/qs3c/travelbuddy_go_server/internal/pkg/pagination"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// WithTx 返回绑定到事务的仓库
func (r *ReviewRepository) WithTx(tx *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: tx}
}

func (r *ReviewRepository) Create(review *model.Review) error {
	return r.db.Create(review).Error
}

func (r *ReviewRepository) GetByID(id int64) (*model.Review, error) {
	var review model.Review
	err := r.db.Where("id = ?", id).First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) Update(review *model.Review) error {
	return r.db.Save(review).Error
}

func (r *ReviewRepository) Delete(id int64) error {
	return r.db.Delete(&model.Review{}, id).Error
}

// AverageRatingForPlans 给定计划集合上所有评价的算术平均，无评价时为 0
func (r *ReviewRepository) AverageRatingForPlans(planIDs []int64) (float64, error) {
	if len(planIDs) == 0 {
		return 0, nil
	}

	var avg *float64
	err := r.db.Model(&model.Review{}).
		Where("travel_plan_id IN ?", planIDs).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}

// ListByTravelPlan 某计划的评价（带评价者），最新在前
func (r *ReviewRepository) ListByTravelPlan(planID int64) ([]*model.Review, error) {
	var reviews []*model.Review
	err := r.db.Preload("Traveler").
		Where("travel_plan_id = ?", planID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// ListByTraveler 某旅行者发表的评价（带计划），最新在前
func (r *ReviewRepository) ListByTraveler(travelerID int64) ([]*model.Review, error) {
	var reviews []*model.Review
	err := r.db.Preload("TravelPlan").
		Where("traveler_id = ?", travelerID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// ListAll 全部评价（分页），管理端视图
func (r *ReviewRepository) ListAll(opts *pagination.Options) ([]*model.Review, int64, error) {
	var reviews []*model.Review
	var total int64

	if err := r.db.Model(&model.Review{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Preload("Traveler").Preload("TravelPlan").
		Order(opts.OrderClause("created_at", "rating")).
		Offset(opts.Offset()).Limit(opts.Limit).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

// ListRecent 最近的评价（带评价者），活动流用
func (r *ReviewRepository) ListRecent(limit int) ([]*model.Review, error) {
	var reviews []*model.Review
	err := r.db.Preload("Traveler").Order("created_at DESC").Limit(limit).Find(&reviews).Error
	return reviews, err
}

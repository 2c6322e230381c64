package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/travelbuddy_go_server/internal/model"
	"github.com/qs3c/travelbuddy_go_server/internal/pkg/pagination"
)

type TravelPlanRepository struct {
	db *gorm.DB
}

func NewTravelPlanRepository(db *gorm.DB) *TravelPlanRepository {
	return &TravelPlanRepository{db: db}
}

// WithTx 返回绑定到事务的仓库
func (r *TravelPlanRepository) WithTx(tx *gorm.DB) *TravelPlanRepository {
	return &TravelPlanRepository{db: tx}
}

func (r *TravelPlanRepository) Create(plan *model.TravelPlan) error {
	return r.db.Create(plan).Error
}

func (r *TravelPlanRepository) GetByID(id int64) (*model.TravelPlan, error) {
	var plan model.TravelPlan
	err := r.db.Where("id = ?", id).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// GetByIDWithHost 获取计划及发布者信息
func (r *TravelPlanRepository) GetByIDWithHost(id int64) (*model.TravelPlan, error) {
	var plan model.TravelPlan
	err := r.db.Preload("Traveler").Where("id = ?", id).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *TravelPlanRepository) Delete(id int64) error {
	return r.db.Delete(&model.TravelPlan{}, id).Error
}

// ListIDsByTraveler 某发布者名下所有计划 ID（评分聚合用）
func (r *TravelPlanRepository) ListIDsByTraveler(travelerID int64) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&model.TravelPlan{}).
		Where("traveler_id = ?", travelerID).
		Pluck("id", &ids).Error
	return ids, err
}

// ListByTraveler 某发布者的计划列表（分页）
func (r *TravelPlanRepository) ListByTraveler(travelerID int64, opts *pagination.Options) ([]*model.TravelPlan, int64, error) {
	var plans []*model.TravelPlan
	var total int64

	query := r.db.Model(&model.TravelPlan{}).Where("traveler_id = ?", travelerID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order(opts.OrderClause("created_at", "start_date", "destination")).
		Offset(opts.Offset()).Limit(opts.Limit).
		Find(&plans).Error
	if err != nil {
		return nil, 0, err
	}

	return plans, total, nil
}

// Search 公共列表，支持目的地与出行类型过滤（分页）
func (r *TravelPlanRepository) Search(destination, travelType string, opts *pagination.Options) ([]*model.TravelPlan, int64, error) {
	var plans []*model.TravelPlan
	var total int64

	query := r.db.Model(&model.TravelPlan{}).Preload("Traveler")
	if destination != "" {
		query = query.Where("destination LIKE ?", "%"+destination+"%")
	}
	if travelType != "" {
		query = query.Where("travel_type = ?", travelType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order(opts.OrderClause("created_at", "start_date", "destination")).
		Offset(opts.Offset()).Limit(opts.Limit).
		Find(&plans).Error
	if err != nil {
		return nil, 0, err
	}

	return plans, total, nil
}

// ListByTravelerAll 某发布者的全部计划（仪表盘统计用）
func (r *TravelPlanRepository) ListByTravelerAll(travelerID int64) ([]*model.TravelPlan, error) {
	var plans []*model.TravelPlan
	err := r.db.Where("traveler_id = ?", travelerID).
		Order("start_date ASC").
		Find(&plans).Error
	return plans, err
}

func (r *TravelPlanRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.TravelPlan{}).Count(&count).Error
	return count, err
}

// CountActive 尚未结束的计划数量
func (r *TravelPlanRepository) CountActive(now time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.TravelPlan{}).Where("end_date > ?", now).Count(&count).Error
	return count, err
}

// ListRecent 最近发布的计划（带发布者），活动流用
func (r *TravelPlanRepository) ListRecent(limit int) ([]*model.TravelPlan, error) {
	var plans []*model.TravelPlan
	err := r.db.Preload("Traveler").Order("created_at DESC").Limit(limit).Find(&plans).Error
	return plans, err
}

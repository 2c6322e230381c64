package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/travelbuddy_go_server/internal/model"
)

type TripRequestRepository struct {
	db *gorm.DB
}

func NewTripRequestRepository(db *gorm.DB) *TripRequestRepository {
	return &TripRequestRepository{db: db}
}

// WithTx 返回绑定到事务的仓库
func (r *TripRequestRepository) WithTx(tx *gorm.DB) *TripRequestRepository {
	return &TripRequestRepository{db: tx}
}

// Create 插入申请，(travel_plan_id, traveler_id) 的唯一性由存储层索引兜底
func (r *TripRequestRepository) Create(request *model.TripRequest) error {
	return r.db.Create(request).Error
}

func (r *TripRequestRepository) GetByID(id int64) (*model.TripRequest, error) {
	var request model.TripRequest
	err := r.db.Where("id = ?", id).First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// GetByIDWithPlan 获取申请及目标计划（审批的归属校验用）
func (r *TripRequestRepository) GetByIDWithPlan(id int64) (*model.TripRequest, error) {
	var request model.TripRequest
	err := r.db.Preload("TravelPlan").Where("id = ?", id).First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// ExistsByPlanAndTraveler 重复申请的快速路径检查
func (r *TripRequestRepository) ExistsByPlanAndTraveler(planID, travelerID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.TripRequest{}).
		Where("travel_plan_id = ? AND traveler_id = ?", planID, travelerID).
		Count(&count).Error
	return count > 0, err
}

// ListByTraveler 某旅行者发出的申请（带计划与主人），最新在前
func (r *TripRequestRepository) ListByTraveler(travelerID int64) ([]*model.TripRequest, error) {
	var requests []*model.TripRequest
	err := r.db.Preload("TravelPlan").Preload("TravelPlan.Traveler").
		Where("traveler_id = ?", travelerID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// ListByPlanIDs 指向给定计划的申请（带申请者），最新在前
func (r *TripRequestRepository) ListByPlanIDs(planIDs []int64) ([]*model.TripRequest, error) {
	if len(planIDs) == 0 {
		return nil, nil
	}

	var requests []*model.TripRequest
	err := r.db.Preload("Traveler").Preload("TravelPlan").
		Where("travel_plan_id IN ?", planIDs).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *TripRequestRepository) UpdateStatus(id int64, status string) error {
	return r.db.Model(&model.TripRequest{}).Where("id = ?", id).
		Update("status", status).Error
}

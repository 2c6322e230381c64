package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/travelbuddy_go_server/internal/model"
)

type TravelerRepository struct {
	db *gorm.DB
}

func NewTravelerRepository(db *gorm.DB) *TravelerRepository {
	return &TravelerRepository{db: db}
}

// WithTx 返回绑定到事务的仓库
func (r *TravelerRepository) WithTx(tx *gorm.DB) *TravelerRepository {
	return &TravelerRepository{db: tx}
}

func (r *TravelerRepository) Create(traveler *model.Traveler) error {
	return r.db.Create(traveler).Error
}

func (r *TravelerRepository) GetByID(id int64) (*model.Traveler, error) {
	var traveler model.Traveler
	err := r.db.Where("id = ?", id).First(&traveler).Error
	if err != nil {
		return nil, err
	}
	return &traveler, nil
}

func (r *TravelerRepository) GetByEmail(email string) (*model.Traveler, error) {
	var traveler model.Traveler
	err := r.db.Where("email = ?", email).First(&traveler).Error
	if err != nil {
		return nil, err
	}
	return &traveler, nil
}

func (r *TravelerRepository) Update(traveler *model.Traveler) error {
	return r.db.Save(traveler).Error
}

func (r *TravelerRepository) UpdateFields(id int64, fields map[string]interface{}) error {
	return r.db.Model(&model.Traveler{}).Where("id = ?", id).Updates(fields).Error
}

// SetVerified 更新订阅校验标志（守卫的惰性降级写入）
func (r *TravelerRepository) SetVerified(id int64, verified bool) error {
	return r.db.Model(&model.Traveler{}).Where("id = ?", id).
		Update("is_verified_traveler", verified).Error
}

// SetSubscription 结算时更新校验标志与订阅到期时间
func (r *TravelerRepository) SetSubscription(id int64, verified bool, endDate time.Time) error {
	return r.db.Model(&model.Traveler{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_verified_traveler":  verified,
		"subscription_end_date": endDate,
	}).Error
}

// SetAverageRating 写入派生的平均评分
func (r *TravelerRepository) SetAverageRating(id int64, rating float64) error {
	return r.db.Model(&model.Traveler{}).Where("id = ?", id).
		Update("average_rating", rating).Error
}

func (r *TravelerRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Traveler{}).Count(&count).Error
	return count, err
}

// ListRecent 最近注册的旅行者，活动流用
func (r *TravelerRepository) ListRecent(limit int) ([]*model.Traveler, error) {
	var travelers []*model.Traveler
	err := r.db.Order("created_at DESC").Limit(limit).Find(&travelers).Error
	return travelers, err
}

// CountMatchesByInterests 与给定兴趣有交集的其他旅行者数量
func (r *TravelerRepository) CountMatchesByInterests(excludeID int64, interests []string) (int64, error) {
	if len(interests) == 0 {
		return 0, nil
	}

	// 兴趣存成 JSON 数组，用 LIKE 做包含匹配
	query := r.db.Model(&model.Traveler{}).Where("id != ?", excludeID)
	conditions := r.db.Where("1 = 0")
	for _, interest := range interests {
		conditions = conditions.Or("travel_interests LIKE ?", "%\""+interest+"\"%")
	}
	query = query.Where(conditions)

	var count int64
	err := query.Count(&count).Error
	return count, err
}

package model

import (
	"time"
)

// 申请状态机: PENDING -> APPROVED / REJECTED
const (
	RequestStatusPending  = "PENDING"
	RequestStatusApproved = "APPROVED"
	RequestStatusRejected = "REJECTED"
)

// TripRequest 加入行程的申请
// 唯一性约束: 同一 (travel_plan_id, traveler_id) 至多一条记录，由存储层保证
type TripRequest struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	TravelPlanID int64     `gorm:"not null;uniqueIndex:uk_plan_traveler" json:"travel_plan_id"`
	TravelerID   int64     `gorm:"not null;uniqueIndex:uk_plan_traveler;index" json:"traveler_id"`
	Status       string    `gorm:"size:20;default:PENDING;index" json:"status"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	TravelPlan *TravelPlan `gorm:"foreignKey:TravelPlanID" json:"travel_plan,omitempty"`
	Traveler   *Traveler   `gorm:"foreignKey:TravelerID" json:"traveler,omitempty"`
}

func (TripRequest) TableName() string {
	return "trip_requests"
}

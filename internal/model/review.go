package model

import (
	"time"
)

// Review 对旅行计划的评价，作者不能是计划的发布者
type Review struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	TravelerID   int64     `gorm:"not null;index" json:"traveler_id"`
	TravelPlanID int64     `gorm:"not null;index" json:"travel_plan_id"`
	Rating       int       `gorm:"not null" json:"rating"` // 1-5
	Comment      string    `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Traveler   *Traveler   `gorm:"foreignKey:TravelerID" json:"traveler,omitempty"`
	TravelPlan *TravelPlan `gorm:"foreignKey:TravelPlanID" json:"travel_plan,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}

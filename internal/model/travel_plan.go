package model

import (
	"time"
)

// TravelPlan 旅行计划，归属唯一的发布者（host）
type TravelPlan struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	TravelerID  int64     `gorm:"not null;index" json:"traveler_id"`
	Destination string    `gorm:"size:100;not null" json:"destination"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	StartDate   time.Time `gorm:"not null" json:"start_date"`
	EndDate     time.Time `gorm:"not null" json:"end_date"` // 不变量: end_date >= start_date
	Budget      float64   `gorm:"type:decimal(10,2)" json:"budget,omitempty"`
	TravelType  string    `gorm:"size:50" json:"travel_type,omitempty"` // adventure, leisure, business...
	ImageURL    string    `gorm:"size:500" json:"image_url,omitempty"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Traveler *Traveler `gorm:"foreignKey:TravelerID" json:"traveler,omitempty"`
}

func (TravelPlan) TableName() string {
	return "travel_plans"
}

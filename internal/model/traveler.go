package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// StringArray 用于 JSON 数组字段
type StringArray []string

func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = []string{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if str, ok := value.(string); ok {
			bytes = []byte(str)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, s)
}

// Traveler 旅行者资料，与 User 账号一一对应
type Traveler struct {
	ID                  int64       `gorm:"primaryKey" json:"id"`
	Name                string      `gorm:"size:100;not null" json:"name"`
	Email               string      `gorm:"size:100;uniqueIndex;not null" json:"email"`
	ContactNumber       string      `gorm:"size:30" json:"contact_number,omitempty"`
	Address             string      `gorm:"size:255" json:"address,omitempty"`
	Bio                 string      `gorm:"type:text" json:"bio,omitempty"`
	ProfileImage        string      `gorm:"size:500" json:"profile_image,omitempty"`
	CurrentLocation     string      `gorm:"size:100" json:"current_location,omitempty"`
	TravelInterests     StringArray `gorm:"type:json" json:"travel_interests"`
	VisitedCountries    StringArray `gorm:"type:json" json:"visited_countries"`
	IsVerifiedTraveler  bool        `gorm:"default:false" json:"is_verified_traveler"`
	SubscriptionEndDate *time.Time  `json:"subscription_end_date,omitempty"`
	AverageRating       float64     `gorm:"default:0" json:"average_rating"` // 派生字段，由评价重算维护
	CreatedAt           time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

func (Traveler) TableName() string {
	return "travelers"
}

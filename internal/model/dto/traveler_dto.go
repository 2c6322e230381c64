package dto

// TravelerSummary 旅行者摘要（嵌入列表项）
type TravelerSummary struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email,omitempty"`
	ProfileImage  string  `json:"profile_image,omitempty"`
	ContactNumber string  `json:"contact_number,omitempty"`
	AverageRating float64 `json:"average_rating,omitempty"`
}

// UpdateProfileRequest 更新旅行者资料请求
type UpdateProfileRequest struct {
	Name             *string  `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	ContactNumber    *string  `json:"contact_number,omitempty" binding:"omitempty,max=30"`
	Address          *string  `json:"address,omitempty" binding:"omitempty,max=255"`
	Bio              *string  `json:"bio,omitempty" binding:"omitempty,max=1000"`
	ProfileImage     *string  `json:"profile_image,omitempty" binding:"omitempty,max=500"`
	CurrentLocation  *string  `json:"current_location,omitempty" binding:"omitempty,max=100"`
	TravelInterests  []string `json:"travel_interests,omitempty"`
	VisitedCountries []string `json:"visited_countries,omitempty"`
}

// ProfileResponse 按角色分发的资料响应
type ProfileResponse struct {
	Role     string      `json:"role"`
	Account  *UserInfo   `json:"account"`
	Traveler interface{} `json:"traveler,omitempty"` // ADMIN 账号没有旅行者资料
}

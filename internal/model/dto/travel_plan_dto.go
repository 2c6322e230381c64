package dto

// CreateTravelPlanRequest 创建旅行计划请求
type CreateTravelPlanRequest struct {
	Destination string  `json:"destination" binding:"required,max=100"`
	Title       string  `json:"title" binding:"required,max=200"`
	Description string  `json:"description" binding:"omitempty,max=5000"`
	StartDate   string  `json:"start_date" binding:"required"` // RFC3339 或 2006-01-02
	EndDate     string  `json:"end_date" binding:"required"`
	Budget      float64 `json:"budget" binding:"omitempty,gte=0"`
	TravelType  string  `json:"travel_type" binding:"omitempty,max=50"`
	ImageURL    string  `json:"image_url" binding:"omitempty,max=500"`
}

// TravelPlanSearchRequest 公共列表的筛选参数
type TravelPlanSearchRequest struct {
	Destination string `form:"destination"`
	TravelType  string `form:"travel_type"`
}

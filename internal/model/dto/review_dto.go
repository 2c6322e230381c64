package dto

// AddReviewRequest 发表评价请求
type AddReviewRequest struct {
	TravelPlanID int64  `json:"travel_plan_id" binding:"required"`
	Rating       int    `json:"rating" binding:"required,min=1,max=5"`
	Comment      string `json:"comment" binding:"omitempty,max=2000"`
}

// UpdateReviewRequest 修改评价请求
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating,omitempty" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment,omitempty" binding:"omitempty,max=2000"`
}

// ReviewItem 评价列表项
type ReviewItem struct {
	ID         int64            `json:"id"`
	Rating     int              `json:"rating"`
	Comment    string           `json:"comment,omitempty"`
	CreatedAt  string           `json:"created_at"`
	Traveler   *TravelerSummary `json:"traveler,omitempty"`
	TravelPlan *TravelPlanBrief `json:"travel_plan,omitempty"`
}

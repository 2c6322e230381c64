package dto

// RespondRequestBody 行程主人审批申请
type RespondRequestBody struct {
	Status string `json:"status" binding:"required,oneof=APPROVED REJECTED"`
}

// TripRequestItem 我发出的申请（带目标计划与主人联系方式）
type TripRequestItem struct {
	ID         int64            `json:"id"`
	Status     string           `json:"status"`
	CreatedAt  string           `json:"created_at"`
	TravelPlan *TravelPlanBrief `json:"travel_plan"`
}

// IncomingRequestItem 我的计划收到的申请（带申请者信息）
type IncomingRequestItem struct {
	ID         int64            `json:"id"`
	Status     string           `json:"status"`
	CreatedAt  string           `json:"created_at"`
	Traveler   *TravelerSummary `json:"traveler"`
	TravelPlan *TravelPlanBrief `json:"travel_plan"`
}

// TravelPlanBrief 计划摘要
type TravelPlanBrief struct {
	ID          int64            `json:"id"`
	Destination string           `json:"destination"`
	Title       string           `json:"title"`
	StartDate   string           `json:"start_date,omitempty"`
	EndDate     string           `json:"end_date,omitempty"`
	Host        *TravelerSummary `json:"host,omitempty"`
}

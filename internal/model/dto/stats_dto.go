package dto

// TravelerDashboard 旅行者仪表盘
type TravelerDashboard struct {
	User         *DashboardUser  `json:"user"`
	Stats        *DashboardStats `json:"stats"`
	UpcomingTrip *UpcomingTrip   `json:"upcoming_trip,omitempty"`
}

type DashboardUser struct {
	Name       string `json:"name"`
	Image      string `json:"image,omitempty"`
	IsVerified bool   `json:"is_verified"`
	Location   string `json:"location"`
}

type DashboardStats struct {
	TotalTrips     int     `json:"total_trips"`
	TotalMatches   int64   `json:"total_matches"`
	CompletedTrips int     `json:"completed_trips"`
	AverageRating  float64 `json:"average_rating"`
	IsVerified     bool    `json:"is_verified"`
}

type UpcomingTrip struct {
	ID          int64  `json:"id"`
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"` // YYYY-MM-DD
	Image       string `json:"image,omitempty"`
	DaysLeft    int    `json:"days_left"`
}

// AdminDashboard 管理端仪表盘
type AdminDashboard struct {
	Counts         *AdminCounts    `json:"counts"`
	RecentActivity []*ActivityItem `json:"recent_activity"`
}

type AdminCounts struct {
	TotalUsers  int64   `json:"total_users"`
	TotalTrips  int64   `json:"total_trips"`
	ActiveTrips int64   `json:"active_trips"`
	Revenue     float64 `json:"revenue"`
}

// ActivityItem 系统活动流事件
type ActivityItem struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"` // USER_REGISTER, TRIP_CREATE, PAYMENT, REVIEW
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

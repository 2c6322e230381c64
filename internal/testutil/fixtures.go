package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/travelbuddy_go_server/internal/model"
)

var fixtureSeq int64

func nextSeq() int64 {
	return atomic.AddInt64(&fixtureSeq, 1)
}

// TestUser 创建测试账号
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	seq := nextSeq()
	user := &model.User{
		Email:        fmt.Sprintf("user_%d@example.com", seq),
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuvwxyz123456", // bcrypt hash placeholder
		Role:         model.RoleTraveler,
		Status:       model.UserStatusActive,
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithUserEmail 设置账号邮箱
func WithUserEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = email
	}
}

// WithRole 设置角色
func WithRole(role string) func(*model.User) {
	return func(u *model.User) {
		u.Role = role
	}
}

// WithStatus 设置账号状态
func WithStatus(status string) func(*model.User) {
	return func(u *model.User) {
		u.Status = status
	}
}

// WithDeleted 设置软删除标记
func WithDeleted() func(*model.User) {
	return func(u *model.User) {
		u.IsDeleted = true
	}
}

// TestTraveler 创建测试旅行者资料
func TestTraveler(t *testing.T, db *gorm.DB, opts ...func(*model.Traveler)) *model.Traveler {
	t.Helper()

	seq := nextSeq()
	traveler := &model.Traveler{
		Name:             fmt.Sprintf("Traveler %d", seq),
		Email:            fmt.Sprintf("traveler_%d@example.com", seq),
		TravelInterests:  model.StringArray{},
		VisitedCountries: model.StringArray{},
	}

	for _, opt := range opts {
		opt(traveler)
	}

	if err := db.Create(traveler).Error; err != nil {
		t.Fatalf("Failed to create test traveler: %v", err)
	}

	return traveler
}

// WithEmail 设置旅行者邮箱
func WithEmail(email string) func(*model.Traveler) {
	return func(tr *model.Traveler) {
		tr.Email = email
	}
}

// WithVerified 设置订阅校验标志与到期时间
func WithVerified(endDate *time.Time) func(*model.Traveler) {
	return func(tr *model.Traveler) {
		tr.IsVerifiedTraveler = true
		tr.SubscriptionEndDate = endDate
	}
}

// WithInterests 设置旅行兴趣
func WithInterests(interests ...string) func(*model.Traveler) {
	return func(tr *model.Traveler) {
		tr.TravelInterests = interests
	}
}

// WithCompleteProfile 填满发布计划所需的资料字段
func WithCompleteProfile() func(*model.Traveler) {
	return func(tr *model.Traveler) {
		tr.ContactNumber = "+8801700000000"
		tr.Address = "Dhaka, Bangladesh"
		tr.Bio = "Loves the road."
		tr.ProfileImage = "https://cdn.example.com/avatar.png"
		tr.CurrentLocation = "Dhaka"
		tr.TravelInterests = model.StringArray{"hiking"}
		tr.VisitedCountries = model.StringArray{"Nepal"}
	}
}

// TestTravelPlan 创建测试旅行计划
func TestTravelPlan(t *testing.T, db *gorm.DB, travelerID int64, opts ...func(*model.TravelPlan)) *model.TravelPlan {
	t.Helper()

	seq := nextSeq()
	start := time.Now().Add(30 * 24 * time.Hour)
	plan := &model.TravelPlan{
		TravelerID:  travelerID,
		Destination: fmt.Sprintf("Destination %d", seq),
		Title:       fmt.Sprintf("Trip %d", seq),
		StartDate:   start,
		EndDate:     start.Add(7 * 24 * time.Hour),
		TravelType:  "adventure",
	}

	for _, opt := range opts {
		opt(plan)
	}

	if err := db.Create(plan).Error; err != nil {
		t.Fatalf("Failed to create test travel plan: %v", err)
	}

	return plan
}

// WithDestination 设置目的地
func WithDestination(destination string) func(*model.TravelPlan) {
	return func(p *model.TravelPlan) {
		p.Destination = destination
	}
}

// WithDates 设置起止日期
func WithDates(start, end time.Time) func(*model.TravelPlan) {
	return func(p *model.TravelPlan) {
		p.StartDate = start
		p.EndDate = end
	}
}

// TestTripRequest 创建测试加入申请
func TestTripRequest(t *testing.T, db *gorm.DB, planID, travelerID int64, status string) *model.TripRequest {
	t.Helper()

	request := &model.TripRequest{
		TravelPlanID: planID,
		TravelerID:   travelerID,
		Status:       status,
	}

	if err := db.Create(request).Error; err != nil {
		t.Fatalf("Failed to create test trip request: %v", err)
	}

	return request
}

// TestReview 创建测试评价
func TestReview(t *testing.T, db *gorm.DB, travelerID, planID int64, rating int) *model.Review {
	t.Helper()

	review := &model.Review{
		TravelerID:   travelerID,
		TravelPlanID: planID,
		Rating:       rating,
		Comment:      "Great trip!",
	}

	if err := db.Create(review).Error; err != nil {
		t.Fatalf("Failed to create test review: %v", err)
	}

	return review
}

// TestPayment 创建测试支付记录
func TestPayment(t *testing.T, db *gorm.DB, travelerID int64, opts ...func(*model.Payment)) *model.Payment {
	t.Helper()

	seq := nextSeq()
	payment := &model.Payment{
		TravelerID:    travelerID,
		Amount:        9.99,
		Status:        model.PaymentStatusPending,
		Subscription:  model.SubscriptionMonthly,
		TransactionID: fmt.Sprintf("cs_test_%d", seq),
	}

	for _, opt := range opts {
		opt(payment)
	}

	if err := db.Create(payment).Error; err != nil {
		t.Fatalf("Failed to create test payment: %v", err)
	}

	return payment
}

// WithPaymentStatus 设置支付状态
func WithPaymentStatus(status string) func(*model.Payment) {
	return func(p *model.Payment) {
		p.Status = status
	}
}

// WithSubscriptionType 设置订阅档位
func WithSubscriptionType(subscription string) func(*model.Payment) {
	return func(p *model.Payment) {
		p.Subscription = subscription
	}
}

// WithTransactionID 设置网关会话 ID
func WithTransactionID(transactionID string) func(*model.Payment) {
	return func(p *model.Payment) {
		p.TransactionID = transactionID
	}
}

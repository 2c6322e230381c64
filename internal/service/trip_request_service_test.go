package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/travelbuddy_go_server/internal/model"
	"github.com/qs3c/travelbuddy_go_server/internal/repository"
	"github.com/qs3c/travelbuddy_go_server/internal/testutil"
)

func setupTripRequestService(db *gorm.DB) *TripRequestService {
	travelerRepo := repository.NewTravelerRepository(db)
	return NewTripRequestService(
		travelerRepo,
		repository.NewTravelPlanRepository(db),
		repository.NewTripRequestRepository(db),
		NewSubscriptionService(travelerRepo),
	)
}

func futureDate(days int) *time.Time {
	d := time.Now().Add(time.Duration(days) * 24 * time.Hour)
	return &d
}

func TestTripRequestService_RequestToJoin_Success(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := setupTripRequestService(db)

	host := testutil.TestTraveler(t, db)
	plan := testutil.TestTravelPlan(t, db, host.ID)
	applicant := testutil.TestTraveler(t, db, testutil.WithVerified(futureDate(30)))

	request, err := service.RequestToJoin(applicant.Email, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusPending, request.Status)
	assert.Equal(t, plan.ID, request.TravelPlanID)
	assert.Equal(t, applicant.ID, request.TravelerID)
}

func TestTripRequestService_RequestToJoin_NotVerified(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := setupTripRequestService(db)

	host := testutil.TestTraveler(t, db)
	plan := testutil.TestTravelPlan(t, db, host.ID)
	applicant := testutil.TestTraveler(t, db)

	_, err := service.RequestToJoin(applicant.Email, plan.ID)
	assert.Equal(t, ErrSubscriptionRequired, err)
}

func TestTripRequestService_RequestToJoin_ExpiredSubscription(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := setupTripRequestService(db)

	host := testutil.TestTraveler(t, db)
	plan := testutil.TestTravelPlan(t, db, host.ID)

	expired := time.Now().Add(-time.Hour)
	applicant := testutil.TestTraveler(t, db, testutil.WithVerified(&expired))

	_, err := service.RequestToJoin(applicant.Email, plan.ID)
	assert.Equal(t, ErrSubscriptionExpired, err)

	// 过期的申请路径上触发惰性降级
	var stored model.Traveler
	require.NoError(t, db.First(&stored, applicant.ID).Error)
	assert.False(t, stored.IsVerifiedTraveler)
}

func TestTripRequestService_RequestToJoin_OwnTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := setupTripRequestService(db)

	host := testutil.TestTraveler(t, db, testutil.WithVerified(futureDate(30)))
	plan := testutil.TestTravelPlan(t, db, host.ID)

	_, err := service.RequestToJoin(host.Email, plan.ID)
	assert.Equal(t, ErrOwnTrip, err)
}

func TestTripRequestService_RequestToJoin_PlanNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := setupTripRequestService(db)

	applicant := testutil.TestTraveler(t, db, testutil.WithVerified(futureDate(30)))

	_, err := service.RequestToJoin(applicant.Email, 99999)
	assert.Equal(t, ErrTripNotFound, err)
}

func TestTripRequestService_RequestToJoin_Duplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := setupTripRequestService(db)

	host := testutil.TestTraveler(t, db)
	plan := testutil.TestTravelPlan(t, db, host.ID)
	applicant := testutil.TestTraveler(t, db, testutil.WithVerified(futureDate(30)))

	_, err := service.RequestToJoin(applicant.Email, plan.ID)
	require.NoError(t, err)

	// 即使上一条申请已被审批，也不允许再次申请
	_, err = service.RequestToJoin(applicant.Email, plan.ID)
	assert.Equal(t, ErrDuplicateRequest, err)
}

func TestTripRequestService_GetMyTripRequests(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := setupTripRequestService(db)

	host := testutil.TestTraveler(t, db)
	plan1 := testutil.TestTravelPlan(t, db, host.ID)
	plan2 := testutil.TestTravelPlan(t, db, host.ID)
	applicant := testutil.TestTraveler(t, db)

	testutil.TestTripRequest(t, db, plan1.ID, applicant.ID, model.RequestStatusPending)
	testutil.TestTripRequest(t, db, plan2.ID, applicant.ID, model.RequestStatusApproved)

	items, err := service.GetMyTripRequests(applicant.Email)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// 申请详情携带目标计划与主人联系方式
	for _, item := range items {
		require.NotNil(t, item.TravelPlan)
		require.NotNil(t, item.TravelPlan.Host)
		assert.Equal(t, host.Email, item.TravelPlan.Host.Email)
	}
}

func TestTripRequestService_GetIncomingRequests(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := setupTripRequestService(db)

	host := testutil.TestTraveler(t, db)
	plan := testutil.TestTravelPlan(t, db, host.ID)
	applicant1 := testutil.TestTraveler(t, db)
	applicant2 := testutil.TestTraveler(t, db)
	other := testutil.TestTraveler(t, db)
	otherPlan := testutil.TestTravelPlan(t, db, other.ID)

	testutil.TestTripRequest(t, db, plan.ID, applicant1.ID, model.RequestStatusPending)
	testutil.TestTripRequest(t, db, plan.ID, applicant2.ID, model.RequestStatusPending)
	// 别人计划收到的申请不应出现
	testutil.TestTripRequest(t, db, otherPlan.ID, applicant1.ID, model.RequestStatusPending)

	items, err := service.GetIncomingRequests(host.Email)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		require.NotNil(t, item.Traveler)
		assert.Equal(t, plan.ID, item.TravelPlan.ID)
	}
}

func TestTripRequestService_GetIncomingRequests_NoPlans(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := setupTripRequestService(db)

	traveler := testutil.TestTraveler(t, db)

	items, err := service.GetIncomingRequests(traveler.Email)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestTripRequestService_RespondToRequest_Approve(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := setupTripRequestService(db)

	host := testutil.TestTraveler(t, db)
	plan := testutil.TestTravelPlan(t, db, host.ID)
	applicant := testutil.TestTraveler(t, db)
	request := testutil.TestTripRequest(t, db, plan.ID, applicant.ID, model.RequestStatusPending)

	updated, err := service.RespondToRequest(host.Email, request.ID, model.RequestStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusApproved, updated.Status)

	var stored model.TripRequest
	require.NoError(t, db.First(&stored, request.ID).Error)
	assert.Equal(t, model.RequestStatusApproved, stored.Status)
}

func TestTripRequestService_RespondToRequest_NotOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := setupTripRequestService(db)

	host := testutil.TestTraveler(t, db)
	plan := testutil.TestTravelPlan(t, db, host.ID)
	applicant := testutil.TestTraveler(t, db)
	stranger := testutil.TestTraveler(t, db)
	request := testutil.TestTripRequest(t, db, plan.ID, applicant.ID, model.RequestStatusPending)

	_, err := service.RespondToRequest(stranger.Email, request.ID, model.RequestStatusRejected)
	assert.Equal(t, ErrRequestPermission, err)
}

func TestTripRequestService_RespondToRequest_InvalidStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := setupTripRequestService(db)

	host := testutil.TestTraveler(t, db)

	_, err := service.RespondToRequest(host.Email, 1, "CANCELLED")
	assert.Equal(t, ErrInvalidStatus, err)
}

func TestTripRequestService_RespondToRequest_OverwritesStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := setupTripRequestService(db)

	host := testutil.TestTraveler(t, db)
	plan := testutil.TestTravelPlan(t, db, host.ID)
	applicant := testutil.TestTraveler(t, db)
	request := testutil.TestTripRequest(t, db, plan.ID, applicant.ID, model.RequestStatusApproved)

	// 没有终态锁，已审批的申请可以被再次覆盖
	updated, err := service.RespondToRequest(host.Email, request.ID, model.RequestStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusRejected, updated.Status)
}

func TestTripRequestService_RespondToRequest_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := setupTripRequestService(db)

	host := testutil.TestTraveler(t, db)

	_, err := service.RespondToRequest(host.Email, 99999, model.RequestStatusApproved)
	assert.Equal(t, ErrRequestNotFound, err)
}

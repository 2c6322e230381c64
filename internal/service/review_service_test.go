package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/travelbuddy_go_server/internal/model"
	"github.com/qs3c/travelbuddy_go_server/internal/model/dto"
	"github.com/qs3c/travelbuddy_go_server/internal/pkg/pagination"
	"github.com/qs3c/travelbuddy_go_server/internal/repository"
	"github.com/qs3c/travelbuddy_go_server/internal/testutil"
)

func setupReviewService(db *gorm.DB) *ReviewService {
	return NewReviewService(
		db,
		repository.NewTravelerRepository(db),
		repository.NewTravelPlanRepository(db),
		repository.NewReviewRepository(db),
	)
}

func hostRating(t *testing.T, db *gorm.DB, hostID int64) float64 {
	t.Helper()
	var traveler model.Traveler
	require.NoError(t, db.First(&traveler, hostID).Error)
	return traveler.AverageRating
}

func TestReviewService_AddReview_RecalculatesHostRating(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := setupReviewService(db)

	host := testutil.TestTraveler(t, db)
	plan := testutil.TestTravelPlan(t, db, host.ID)
	reviewer := testutil.TestTraveler(t, db)

	review, err := service.AddReview(reviewer.Email, &dto.AddReviewRequest{
		TravelPlanID: plan.ID,
		Rating:       4,
		Comment:      "Well organized.",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)
	assert.Equal(t, 4.0, hostRating(t, db, host.ID))
}

func TestReviewService_AddReview_AveragesAcrossAllHostPlans(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := setupReviewService(db)

	host := testutil.TestTraveler(t, db)
	plan1 := testutil.TestTravelPlan(t, db, host.ID)
	plan2 := testutil.TestTravelPlan(t, db, host.ID)
	reviewer1 := testutil.TestTraveler(t, db)
	reviewer2 := testutil.TestTraveler(t, db)

	_, err := service.AddReview(reviewer1.Email, &dto.AddReviewRequest{TravelPlanID: plan1.ID, Rating: 4})
	require.NoError(t, err)
	_, err = service.AddReview(reviewer2.Email, &dto.AddReviewRequest{TravelPlanID: plan1.ID, Rating: 5})
	require.NoError(t, err)

	// 均值跨该主人名下所有计划计算：{4,5} + {3} => 4.0
	_, err = service.AddReview(reviewer1.Email, &dto.AddReviewRequest{TravelPlanID: plan2.ID, Rating: 3})
	require.NoError(t, err)

	assert.Equal(t, 4.0, hostRating(t, db, host.ID))
}

func TestReviewService_AddReview_OwnPlan(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := setupReviewService(db)

	host := testutil.TestTraveler(t, db)
	plan := testutil.TestTravelPlan(t, db, host.ID)

	_, err := service.AddReview(host.Email, &dto.AddReviewRequest{TravelPlanID: plan.ID, Rating: 5})
	assert.Equal(t, ErrOwnPlanReview, err)
}

func TestReviewService_AddReview_PlanNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := setupReviewService(db)

	reviewer := testutil.TestTraveler(t, db)

	_, err := service.AddReview(reviewer.Email, &dto.AddReviewRequest{TravelPlanID: 99999, Rating: 5})
	assert.Equal(t, ErrTripNotFound, err)
}

func TestReviewService_UpdateReview_RatingChangeRecalculates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := setupReviewService(db)

	host := testutil.TestTraveler(t, db)
	plan := testutil.TestTravelPlan(t, db, host.ID)
	reviewer := testutil.TestTraveler(t, db)

	review, err := service.AddReview(reviewer.Email, &dto.AddReviewRequest{TravelPlanID: plan.ID, Rating: 2})
	require.NoError(t, err)
	require.Equal(t, 2.0, hostRating(t, db, host.ID))

	newRating := 5
	updated, err := service.UpdateReview(reviewer.Email, review.ID, &dto.UpdateReviewRequest{Rating: &newRating})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, 5.0, hostRating(t, db, host.ID))
}

func TestReviewService_UpdateReview_CommentOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := setupReviewService(db)

	host := testutil.TestTraveler(t, db)
	plan := testutil.TestTravelPlan(t, db, host.ID)
	reviewer := testutil.TestTraveler(t, db)
	review := testutil.TestReview(t, db, reviewer.ID, plan.ID, 4)

	comment := "Changed my mind, even better."
	updated, err := service.UpdateReview(reviewer.Email, review.ID, &dto.UpdateReviewRequest{Comment: &comment})
	require.NoError(t, err)
	assert.Equal(t, comment, updated.Comment)
	assert.Equal(t, 4, updated.Rating)
}

func TestReviewService_UpdateReview_NotAuthor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := setupReviewService(db)

	host := testutil.TestTraveler(t, db)
	plan := testutil.TestTravelPlan(t, db, host.ID)
	reviewer := testutil.TestTraveler(t, db)
	stranger := testutil.TestTraveler(t, db)
	review := testutil.TestReview(t, db, reviewer.ID, plan.ID, 4)

	newRating := 1
	_, err := service.UpdateReview(stranger.Email, review.ID, &dto.UpdateReviewRequest{Rating: &newRating})
	assert.Equal(t, ErrReviewPermission, err)
}

func TestReviewService_DeleteReview_ByAuthor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := setupReviewService(db)

	host := testutil.TestTraveler(t, db)
	plan := testutil.TestTravelPlan(t, db, host.ID)
	reviewer := testutil.TestTraveler(t, db)

	review, err := service.AddReview(reviewer.Email, &dto.AddReviewRequest{TravelPlanID: plan.ID, Rating: 5})
	require.NoError(t, err)

	err = service.DeleteReview(reviewer.Email, model.RoleTraveler, review.ID)
	require.NoError(t, err)

	// 删除最后一条评价后均值回到 0
	assert.Equal(t, 0.0, hostRating(t, db, host.ID))
}

func TestReviewService_DeleteReview_ByAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := setupReviewService(db)

	host := testutil.TestTraveler(t, db)
	plan := testutil.TestTravelPlan(t, db, host.ID)
	reviewer := testutil.TestTraveler(t, db)
	review := testutil.TestReview(t, db, reviewer.ID, plan.ID, 4)

	err := service.DeleteReview("admin@example.com", model.RoleAdmin, review.ID)
	require.NoError(t, err)

	var count int64
	db.Model(&model.Review{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestReviewService_DeleteReview_NotAuthorized(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := setupReviewService(db)

	host := testutil.TestTraveler(t, db)
	plan := testutil.TestTravelPlan(t, db, host.ID)
	reviewer := testutil.TestTraveler(t, db)
	stranger := testutil.TestTraveler(t, db)
	review := testutil.TestReview(t, db, reviewer.ID, plan.ID, 4)

	err := service.DeleteReview(stranger.Email, model.RoleTraveler, review.ID)
	assert.Equal(t, ErrReviewPermission, err)
}

func TestReviewService_GetReviewsForTravelPlan(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := setupReviewService(db)

	host := testutil.TestTraveler(t, db)
	plan := testutil.TestTravelPlan(t, db, host.ID)
	otherPlan := testutil.TestTravelPlan(t, db, host.ID)
	reviewer := testutil.TestTraveler(t, db)

	testutil.TestReview(t, db, reviewer.ID, plan.ID, 4)
	testutil.TestReview(t, db, reviewer.ID, plan.ID, 5)
	testutil.TestReview(t, db, reviewer.ID, otherPlan.ID, 1)

	items, err := service.GetReviewsForTravelPlan(plan.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestReviewService_GetAllReviews_Paginated(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := setupReviewService(db)

	host := testutil.TestTraveler(t, db)
	plan := testutil.TestTravelPlan(t, db, host.ID)
	reviewer := testutil.TestTraveler(t, db)

	for i := 0; i < 5; i++ {
		testutil.TestReview(t, db, reviewer.ID, plan.ID, 3)
	}

	opts := &pagination.Options{Page: 1, Limit: 2}
	opts.Normalize()

	items, total, err := service.GetAllReviews(opts)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, items, 2)
}

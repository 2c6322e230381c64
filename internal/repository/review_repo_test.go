package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/travelbuddy_go_server/internal/testutil"
)

func TestReviewRepository_AverageRatingForPlans(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewReviewRepository(db)

	host := testutil.TestTraveler(t, db)
	plan1 := testutil.TestTravelPlan(t, db, host.ID)
	plan2 := testutil.TestTravelPlan(t, db, host.ID)
	reviewer := testutil.TestTraveler(t, db)

	testutil.TestReview(t, db, reviewer.ID, plan1.ID, 4)
	testutil.TestReview(t, db, reviewer.ID, plan1.ID, 5)
	testutil.TestReview(t, db, reviewer.ID, plan2.ID, 3)

	avg, err := repo.AverageRatingForPlans([]int64{plan1.ID, plan2.ID})
	require.NoError(t, err)
	assert.Equal(t, 4.0, avg)

	// 只看单个计划
	avg, err = repo.AverageRatingForPlans([]int64{plan1.ID})
	require.NoError(t, err)
	assert.Equal(t, 4.5, avg)
}

func TestReviewRepository_AverageRatingForPlans_NoReviews(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewReviewRepository(db)

	host := testutil.TestTraveler(t, db)
	plan := testutil.TestTravelPlan(t, db, host.ID)

	avg, err := repo.AverageRatingForPlans([]int64{plan.ID})
	require.NoError(t, err)
	assert.Equal(t, 0.0, avg)

	// 无计划时不应发 SQL
	avg, err = repo.AverageRatingForPlans(nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, avg)
}

func TestReviewRepository_ListByTravelPlan(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewReviewRepository(db)

	host := testutil.TestTraveler(t, db)
	plan := testutil.TestTravelPlan(t, db, host.ID)
	reviewer := testutil.TestTraveler(t, db)
	testutil.TestReview(t, db, reviewer.ID, plan.ID, 4)

	reviews, err := repo.ListByTravelPlan(plan.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	require.NotNil(t, reviews[0].Traveler)
	assert.Equal(t, reviewer.ID, reviews[0].Traveler.ID)
}

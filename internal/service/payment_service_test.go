package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/travelbuddy_go_server/config"
	"github.com/qs3c/travelbuddy_go_server/internal/model"
	"github.com/qs3c/travelbuddy_go_server/internal/pkg/stripe"
	"github.com/qs3c/travelbuddy_go_server/internal/repository"
	"github.com/qs3c/travelbuddy_go_server/internal/testutil"
)

func setupPaymentService(db *gorm.DB) *PaymentService {
	cfg := &config.Config{
		Subscription: config.SubscriptionConfig{
			Plans: map[string]config.SubscriptionPlan{
				"monthly": {Price: 9.99, DurationDays: 30},
				"yearly":  {Price: 99.99, DurationDays: 365},
			},
		},
	}

	return NewPaymentService(
		db,
		repository.NewTravelerRepository(db),
		repository.NewPaymentRepository(db),
		stripe.NewClient(stripe.Config{SecretKey: "sk_test", WebhookSecret: "whsec_test"}),
		cfg,
	)
}

func checkoutEvent(t *testing.T, eventType, sessionID, subscriptionType string) *stripe.Event {
	t.Helper()

	object, err := json.Marshal(map[string]interface{}{
		"id": sessionID,
		"metadata": map[string]string{
			"subscription_type": subscriptionType,
		},
	})
	require.NoError(t, err)

	event := &stripe.Event{
		ID:   "evt_" + sessionID,
		Type: eventType,
	}
	event.Data.Object = object
	return event
}

func TestPaymentService_HandleWebhook_CompletedMonthly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := setupPaymentService(db)

	traveler := testutil.TestTraveler(t, db)
	payment := testutil.TestPayment(t, db, traveler.ID)

	event := checkoutEvent(t, stripe.EventCheckoutCompleted, payment.TransactionID, "monthly")
	err := service.HandleWebhook(event, []byte(`{"raw":"payload"}`))
	require.NoError(t, err)

	var storedPayment model.Payment
	require.NoError(t, db.First(&storedPayment, payment.ID).Error)
	assert.Equal(t, model.PaymentStatusCompleted, storedPayment.Status)
	assert.Contains(t, storedPayment.PaymentGatewayData, "raw")

	var storedTraveler model.Traveler
	require.NoError(t, db.First(&storedTraveler, traveler.ID).Error)
	assert.True(t, storedTraveler.IsVerifiedTraveler)
	require.NotNil(t, storedTraveler.SubscriptionEndDate)

	expected := time.Now().Add(30 * 24 * time.Hour)
	assert.WithinDuration(t, expected, *storedTraveler.SubscriptionEndDate, time.Minute)
}

func TestPaymentService_HandleWebhook_CompletedYearly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := setupPaymentService(db)

	traveler := testutil.TestTraveler(t, db)
	payment := testutil.TestPayment(t, db, traveler.ID,
		testutil.WithSubscriptionType(model.SubscriptionYearly))

	event := checkoutEvent(t, stripe.EventCheckoutCompleted, payment.TransactionID, "yearly")
	err := service.HandleWebhook(event, []byte(`{}`))
	require.NoError(t, err)

	var storedTraveler model.Traveler
	require.NoError(t, db.First(&storedTraveler, traveler.ID).Error)
	require.NotNil(t, storedTraveler.SubscriptionEndDate)

	expected := time.Now().Add(365 * 24 * time.Hour)
	assert.WithinDuration(t, expected, *storedTraveler.SubscriptionEndDate, time.Minute)
}

func TestPaymentService_HandleWebhook_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := setupPaymentService(db)

	traveler := testutil.TestTraveler(t, db)
	payment := testutil.TestPayment(t, db, traveler.ID)

	event := checkoutEvent(t, stripe.EventCheckoutCompleted, payment.TransactionID, "monthly")
	require.NoError(t, service.HandleWebhook(event, []byte(`{}`)))

	var afterFirst model.Traveler
	require.NoError(t, db.First(&afterFirst, traveler.ID).Error)
	firstEndDate := *afterFirst.SubscriptionEndDate

	// 网关重投同一事件：订阅窗口不再延长
	require.NoError(t, service.HandleWebhook(event, []byte(`{}`)))

	var afterSecond model.Traveler
	require.NoError(t, db.First(&afterSecond, traveler.ID).Error)
	assert.Equal(t, firstEndDate.Unix(), afterSecond.SubscriptionEndDate.Unix())
}

func TestPaymentService_HandleWebhook_AlreadySettledNoExtend(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := setupPaymentService(db)

	// 支付已被先到的投递结算过：再来的 completed 事件是空操作，
	// 订阅窗口不被二次延长
	currentEnd := time.Now().Add(30 * 24 * time.Hour)
	traveler := testutil.TestTraveler(t, db, testutil.WithVerified(&currentEnd))
	payment := testutil.TestPayment(t, db, traveler.ID,
		testutil.WithPaymentStatus(model.PaymentStatusCompleted))

	event := checkoutEvent(t, stripe.EventCheckoutCompleted, payment.TransactionID, "monthly")
	require.NoError(t, service.HandleWebhook(event, []byte(`{}`)))

	var storedTraveler model.Traveler
	require.NoError(t, db.First(&storedTraveler, traveler.ID).Error)
	require.NotNil(t, storedTraveler.SubscriptionEndDate)
	assert.Equal(t, currentEnd.Unix(), storedTraveler.SubscriptionEndDate.Unix())
}

func TestPaymentService_HandleWebhook_ExtendsFromCurrentEndDate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := setupPaymentService(db)

	// 现有订阅还剩 10 天，续费应从当前到期时间起算
	currentEnd := time.Now().Add(10 * 24 * time.Hour)
	traveler := testutil.TestTraveler(t, db, testutil.WithVerified(&currentEnd))
	payment := testutil.TestPayment(t, db, traveler.ID)

	event := checkoutEvent(t, stripe.EventCheckoutCompleted, payment.TransactionID, "monthly")
	require.NoError(t, service.HandleWebhook(event, []byte(`{}`)))

	var stored model.Traveler
	require.NoError(t, db.First(&stored, traveler.ID).Error)

	expected := currentEnd.Add(30 * 24 * time.Hour)
	assert.WithinDuration(t, expected, *stored.SubscriptionEndDate, time.Minute)
}

func TestPaymentService_HandleWebhook_Expired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := setupPaymentService(db)

	traveler := testutil.TestTraveler(t, db)
	payment := testutil.TestPayment(t, db, traveler.ID)

	event := checkoutEvent(t, stripe.EventCheckoutExpired, payment.TransactionID, "monthly")
	require.NoError(t, service.HandleWebhook(event, []byte(`{}`)))

	var storedPayment model.Payment
	require.NoError(t, db.First(&storedPayment, payment.ID).Error)
	assert.Equal(t, model.PaymentStatusFailed, storedPayment.Status)

	// 失败结算不改动旅行者认证状态
	var storedTraveler model.Traveler
	require.NoError(t, db.First(&storedTraveler, traveler.ID).Error)
	assert.False(t, storedTraveler.IsVerifiedTraveler)
}

func TestPaymentService_HandleWebhook_UnknownPayment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := setupPaymentService(db)

	// 找不到对应的支付记录时按空操作处理，不报错
	event := checkoutEvent(t, stripe.EventCheckoutCompleted, "cs_unknown", "monthly")
	assert.NoError(t, service.HandleWebhook(event, []byte(`{}`)))
}

func TestPaymentService_HandleWebhook_UnhandledEventType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := setupPaymentService(db)

	event := checkoutEvent(t, "invoice.paid", "cs_whatever", "monthly")
	assert.NoError(t, service.HandleWebhook(event, []byte(`{}`)))
}

func TestPaymentService_SubscriptionDuration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := setupPaymentService(db)

	assert.Equal(t, 30, service.subscriptionDuration("monthly"))
	assert.Equal(t, 365, service.subscriptionDuration("yearly"))
	// 未识别的档位按月付兜底
	assert.Equal(t, 30, service.subscriptionDuration("weekly"))
}

package events

import (
	"context"
	"encoding/json"
	"math"
	"testing"
	"time"

	vendorserrors "planora/internal/vendors/errors"
	"planora/pkg/config"
	mongotx "planora/pkg/db/mongo"
	"planora/pkg/kafka"
	"planora/pkg/logger"
	"planora/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

type mockRepository struct {
	profile   *model.VendorProfile
	findErr   error
	replaced  *model.VendorProfile
	replaceFn func(ctx context.Context, profile *model.VendorProfile) error
}

func (m *mockRepository) Create(ctx context.Context, profile *model.VendorProfile) error {
	return nil
}

func (m *mockRepository) FindByVendorID(ctx context.Context, vendorID string) (*model.VendorProfile, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.profile, nil
}

func (m *mockRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.VendorProfile, error) {
	return nil, nil
}

func (m *mockRepository) Replace(ctx context.Context, profile *model.VendorProfile) error {
	m.replaced = profile
	if m.replaceFn != nil {
		return m.replaceFn(ctx, profile)
	}
	return nil
}

func (m *mockRepository) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

func (m *mockRepository) FindMatching(ctx context.Context, criteria model.MatchCriteria) ([]*model.VendorProfile, error) {
	return nil, nil
}

func (m *mockRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	var sessCtx mongo.SessionContext
	return fn(sessCtx)
}

func testConfig() *config.Config {
	return &config.Config{
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
	}
}

func eventMessage(t *testing.T, eventType string, payload any) kafka.Message {
	t.Helper()
	value, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Failed to marshal payload: %v", err)
	}
	return kafka.Message{
		Key:   "vendor-1",
		Value: value,
		Headers: map[string]string{
			kafka.HeaderEventType: eventType,
			kafka.HeaderEventID:   "evt-1",
		},
	}
}

func TestHandle_EventCompleted(t *testing.T) {
	repo := &mockRepository{
		profile: &model.VendorProfile{
			VendorID: "vendor-1",
			Performance: model.Performance{
				TotalEvents:    4,
				CompletionRate: 75, // 3 of 4 completed
				Revenue:        9000,
			},
		},
	}
	updater := NewPerformanceUpdater(repo, testConfig())

	msg := eventMessage(t, EventCompleted, EventCompletedPayload{
		VendorID:  "vendor-1",
		EventID:   "evt-1",
		Completed: true,
		Revenue:   2500,
	})

	if err := updater.Handle(context.Background(), msg); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if repo.replaced == nil {
		t.Fatal("Expected profile to be replaced")
	}

	perf := repo.replaced.Performance
	if perf.TotalEvents != 5 {
		t.Errorf("Expected 5 total events, got %d", perf.TotalEvents)
	}
	if math.Abs(perf.CompletionRate-80) > 1e-9 {
		t.Errorf("Expected completion rate 80, got %v", perf.CompletionRate)
	}
	if perf.Revenue != 11500 {
		t.Errorf("Expected revenue 11500, got %v", perf.Revenue)
	}
}

func TestHandle_EventNotCompleted(t *testing.T) {
	repo := &mockRepository{
		profile: &model.VendorProfile{
			VendorID: "vendor-1",
			Performance: model.Performance{
				TotalEvents:    1,
				CompletionRate: 100,
				Revenue:        500,
			},
		},
	}
	updater := NewPerformanceUpdater(repo, testConfig())

	msg := eventMessage(t, EventCompleted, EventCompletedPayload{
		VendorID:  "vendor-1",
		EventID:   "evt-2",
		Completed: false,
		Revenue:   2500,
	})

	if err := updater.Handle(context.Background(), msg); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	perf := repo.replaced.Performance
	if perf.TotalEvents != 2 {
		t.Errorf("Expected 2 total events, got %d", perf.TotalEvents)
	}
	if math.Abs(perf.CompletionRate-50) > 1e-9 {
		t.Errorf("Expected completion rate 50, got %v", perf.CompletionRate)
	}
	// Revenue only accrues on completion.
	if perf.Revenue != 500 {
		t.Errorf("Expected revenue unchanged at 500, got %v", perf.Revenue)
	}
}

func TestHandle_ReviewSubmitted(t *testing.T) {
	repo := &mockRepository{
		profile: &model.VendorProfile{
			VendorID: "vendor-1",
			Performance: model.Performance{
				TotalEvents:   4,
				AverageRating: 4.0,
			},
		},
	}
	updater := NewPerformanceUpdater(repo, testConfig())

	msg := eventMessage(t, EventReviewSubmitted, ReviewSubmittedPayload{
		VendorID: "vendor-1",
		EventID:  "evt-1",
		Rating:   5,
	})

	if err := updater.Handle(context.Background(), msg); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := (4.0*3 + 5) / 4
	got := repo.replaced.Performance.AverageRating
	if math.Abs(got-expected) > 1e-9 {
		t.Errorf("Expected average rating %v, got %v", expected, got)
	}
}

func TestHandle_FirstReviewSetsRating(t *testing.T) {
	repo := &mockRepository{
		profile: &model.VendorProfile{VendorID: "vendor-1"},
	}
	updater := NewPerformanceUpdater(repo, testConfig())

	msg := eventMessage(t, EventReviewSubmitted, ReviewSubmittedPayload{
		VendorID: "vendor-1",
		Rating:   4.5,
	})

	if err := updater.Handle(context.Background(), msg); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if repo.replaced.Performance.AverageRating != 4.5 {
		t.Errorf("Expected rating 4.5, got %v", repo.replaced.Performance.AverageRating)
	}
}

func TestHandle_OutOfRangeRatingDropped(t *testing.T) {
	repo := &mockRepository{
		profile: &model.VendorProfile{VendorID: "vendor-1"},
	}
	updater := NewPerformanceUpdater(repo, testConfig())

	msg := eventMessage(t, EventReviewSubmitted, ReviewSubmittedPayload{
		VendorID: "vendor-1",
		Rating:   11,
	})

	if err := updater.Handle(context.Background(), msg); err != nil {
		t.Fatalf("Expected drop without error, got: %v", err)
	}
	if repo.replaced != nil {
		t.Error("Expected no write for out-of-range rating")
	}
}

func TestHandle_UnknownVendorCommitsWithoutRetry(t *testing.T) {
	repo := &mockRepository{findErr: vendorserrors.ErrNotFound}
	updater := NewPerformanceUpdater(repo, testConfig())

	msg := eventMessage(t, EventCompleted, EventCompletedPayload{
		VendorID:  "vendor-ghost",
		Completed: true,
	})

	if err := updater.Handle(context.Background(), msg); err != nil {
		t.Errorf("Expected nil error for unknown vendor, got: %v", err)
	}
}

func TestHandle_UnknownEventTypeIgnored(t *testing.T) {
	repo := &mockRepository{
		profile: &model.VendorProfile{VendorID: "vendor-1"},
	}
	updater := NewPerformanceUpdater(repo, testConfig())

	msg := eventMessage(t, "booking.created", map[string]string{"vendor_id": "vendor-1"})

	if err := updater.Handle(context.Background(), msg); err != nil {
		t.Errorf("Expected unknown type to commit, got: %v", err)
	}
	if repo.replaced != nil {
		t.Error("Expected no write for unknown event type")
	}
}

func TestHandle_MalformedPayload(t *testing.T) {
	repo := &mockRepository{
		profile: &model.VendorProfile{VendorID: "vendor-1"},
	}
	updater := NewPerformanceUpdater(repo, testConfig())

	msg := kafka.Message{
		Key:   "vendor-1",
		Value: []byte("{not json"),
		Headers: map[string]string{
			kafka.HeaderEventType: EventCompleted,
		},
	}

	if err := updater.Handle(context.Background(), msg); err == nil {
		t.Error("Expected error for malformed payload")
	}
}

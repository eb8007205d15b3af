// Package events consumes booking-lifecycle events from other services and
// folds them into vendor performance metrics. It is the only writer of the
// Performance sub-document; the HTTP surface treats it as read-only.
package events

import (
	"context"
	"errors"
	"fmt"
	"math"

	vendorserrors "planora/internal/vendors/errors"
	"planora/internal/vendors/repository"
	"planora/pkg/config"
	"planora/pkg/kafka"
	"planora/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	EventCompleted       = "event.completed"
	EventReviewSubmitted = "review.submitted"
)

// EventCompletedPayload reports the outcome of a booked event.
type EventCompletedPayload struct {
	VendorID  string  `json:"vendor_id"`
	EventID   string  `json:"event_id"`
	Completed bool    `json:"completed"`
	Revenue   float64 `json:"revenue"`
}

// ReviewSubmittedPayload carries a client's post-event rating.
type ReviewSubmittedPayload struct {
	VendorID string  `json:"vendor_id"`
	EventID  string  `json:"event_id"`
	Rating   float64 `json:"rating"`
}

type PerformanceUpdater struct {
	repo repository.VendorProfileRepository
	cfg  *config.Config
}

func NewPerformanceUpdater(repo repository.VendorProfileRepository, cfg *config.Config) *PerformanceUpdater {
	return &PerformanceUpdater{repo: repo, cfg: cfg}
}

// Handle dispatches a consumed message by event type. Unknown event types
// commit without effect so a shared topic never wedges the consumer group.
func (u *PerformanceUpdater) Handle(ctx context.Context, msg kafka.Message) error {
	switch msg.EventType() {
	case EventCompleted:
		return u.handleEventCompleted(ctx, msg)
	case EventReviewSubmitted:
		return u.handleReviewSubmitted(ctx, msg)
	default:
		u.cfg.Log.Debug("Ignoring unknown event type",
			"event_type", msg.EventType(),
			"event_id", msg.EventID(),
		)
		return nil
	}
}

func (u *PerformanceUpdater) handleEventCompleted(ctx context.Context, msg kafka.Message) error {
	var payload EventCompletedPayload
	if err := msg.DecodeValue(&payload); err != nil {
		return fmt.Errorf("failed to decode event.completed payload: %w", err)
	}
	if payload.VendorID == "" {
		return errors.New("event.completed payload missing vendor_id")
	}

	err := u.updatePerformance(ctx, payload.VendorID, func(p *model.Performance) {
		completed := completedCount(p)
		p.TotalEvents++
		if payload.Completed {
			completed++
			p.Revenue += math.Max(payload.Revenue, 0)
		}
		p.CompletionRate = float64(completed) / float64(p.TotalEvents) * 100
	})
	if err != nil {
		return err
	}

	u.cfg.Log.Info("Performance updated from completed event",
		"vendor_id", payload.VendorID,
		"event_id", payload.EventID,
		"completed", payload.Completed,
	)
	return nil
}

func (u *PerformanceUpdater) handleReviewSubmitted(ctx context.Context, msg kafka.Message) error {
	var payload ReviewSubmittedPayload
	if err := msg.DecodeValue(&payload); err != nil {
		return fmt.Errorf("failed to decode review.submitted payload: %w", err)
	}
	if payload.VendorID == "" {
		return errors.New("review.submitted payload missing vendor_id")
	}
	if payload.Rating < 0 || payload.Rating > 5 {
		u.cfg.Log.Warn("Dropping review with out-of-range rating",
			"vendor_id", payload.VendorID,
			"rating", payload.Rating,
		)
		return nil
	}

	err := u.updatePerformance(ctx, payload.VendorID, func(p *model.Performance) {
		// Running average weighted by events to date. With no events yet
		// the first review sets the rating outright.
		n := float64(p.TotalEvents)
		if n <= 0 {
			p.AverageRating = payload.Rating
			return
		}
		p.AverageRating = (p.AverageRating*(n-1) + payload.Rating) / n
	})
	if err != nil {
		return err
	}

	u.cfg.Log.Info("Performance updated from review",
		"vendor_id", payload.VendorID,
		"rating", payload.Rating,
	)
	return nil
}

// updatePerformance applies a mutation to a vendor's Performance inside a
// transaction. A missing profile is not retryable: the event is logged and
// committed so it does not cycle through the DLQ.
func (u *PerformanceUpdater) updatePerformance(ctx context.Context, vendorID string, mutate func(p *model.Performance)) error {
	err := u.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		profile, err := u.repo.FindByVendorID(sessCtx, vendorID)
		if err != nil {
			return err
		}
		mutate(&profile.Performance)
		return u.repo.Replace(sessCtx, profile)
	})
	if err != nil {
		if errors.Is(err, vendorserrors.ErrNotFound) {
			u.cfg.Log.Warn("Dropping performance event for unknown vendor",
				"vendor_id", vendorID,
			)
			return nil
		}
		return fmt.Errorf("failed to update performance for vendor %s: %w", vendorID, err)
	}
	return nil
}

// completedCount recovers the completed-event tally from the stored rate.
func completedCount(p *model.Performance) int {
	if p.TotalEvents <= 0 {
		return 0
	}
	return int(math.Round(p.CompletionRate / 100 * float64(p.TotalEvents)))
}

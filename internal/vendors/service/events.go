package service

import (
	"context"
	"time"

	"planora/pkg/kafka"
	"planora/pkg/model"
)

const (
	EventProfileUpdated      = "vendor.profile.updated"
	EventAvailabilityChanged = "vendor.availability.changed"

	eventSource = "vendors-service"
)

// ProfileUpdatedEvent is published after every successful profile upsert,
// including the implicit create on first read.
type ProfileUpdatedEvent struct {
	VendorID     string           `json:"vendor_id"`
	BusinessName string           `json:"business_name"`
	Categories   []model.Category `json:"categories"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// AvailabilityChangedEvent is published after a slot mutation commits.
type AvailabilityChangedEvent struct {
	VendorID string           `json:"vendor_id"`
	Date     time.Time        `json:"date"`
	Status   model.SlotStatus `json:"status"`
	EventID  string           `json:"event_id,omitempty"`
}

// EventPublisher notifies downstream consumers of profile changes. Publishing
// is best-effort: the HTTP response never waits on broker acknowledgement
// failures, the service only logs them.
type EventPublisher interface {
	ProfileUpdated(ctx context.Context, profile *model.VendorProfile) error
	AvailabilityChanged(ctx context.Context, vendorID string, slot model.AvailabilitySlot) error
}

type kafkaEventPublisher struct {
	producer *kafka.Producer
}

func NewKafkaEventPublisher(producer *kafka.Producer) EventPublisher {
	return &kafkaEventPublisher{producer: producer}
}

func (p *kafkaEventPublisher) ProfileUpdated(ctx context.Context, profile *model.VendorProfile) error {
	msg := kafka.NewMessage().
		WithKey(profile.VendorID).
		WithValue(ProfileUpdatedEvent{
			VendorID:     profile.VendorID,
			BusinessName: profile.BusinessName,
			Categories:   profile.Categories,
			UpdatedAt:    profile.UpdatedAt,
		}).
		WithEventType(EventProfileUpdated).
		WithSource(eventSource).
		Build()

	return p.producer.Publish(ctx, msg)
}

func (p *kafkaEventPublisher) AvailabilityChanged(ctx context.Context, vendorID string, slot model.AvailabilitySlot) error {
	msg := kafka.NewMessage().
		WithKey(vendorID).
		WithValue(AvailabilityChangedEvent{
			VendorID: vendorID,
			Date:     slot.Date,
			Status:   slot.Status,
			EventID:  slot.EventID,
		}).
		WithEventType(EventAvailabilityChanged).
		WithSource(eventSource).
		Build()

	return p.producer.Publish(ctx, msg)
}

// NoopEventPublisher satisfies EventPublisher when no broker is configured,
// e.g. in the migration tool and in tests.
type NoopEventPublisher struct{}

func (NoopEventPublisher) ProfileUpdated(ctx context.Context, profile *model.VendorProfile) error {
	return nil
}

func (NoopEventPublisher) AvailabilityChanged(ctx context.Context, vendorID string, slot model.AvailabilitySlot) error {
	return nil
}

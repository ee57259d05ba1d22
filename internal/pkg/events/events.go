// Package events carries voucher lifecycle notifications to the realtime hub
// and, when configured, to Kafka.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
)

const (
	VoucherCreated  = "voucher.created"
	VoucherApproved = "voucher.approved"
	VoucherRejected = "voucher.rejected"

	Producer = "vales-api"
	Version  = "1"
)

type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	VoucherID  int64     `json:"voucher_id"`
	Code       string    `json:"code"`
	Kind       string    `json:"kind"`
	Status     string    `json:"status"`
	UserID     int64     `json:"user_id"`
	Local      string    `json:"local"`
	Amount     string    `json:"amount"`
	ActorID    int64     `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType string) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Fanout delivers every event to all sinks, continuing past failures.
type Fanout struct {
	sinks []Publisher
}

func NewFanout(sinks ...Publisher) *Fanout {
	f := &Fanout{}
	for _, s := range sinks {
		if s != nil {
			f.sinks = append(f.sinks, s)
		}
	}
	return f
}

func (f *Fanout) Publish(ctx context.Context, e Event) error {
	var result *multierror.Error
	for _, s := range f.sinks {
		if err := s.Publish(ctx, e); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// Discard drops events. Used when nothing is listening.
type Discard struct{}

func (Discard) Publish(context.Context, Event) error { return nil }

package events

import (
	_ "embed"
	"time"

	"github.com/hamba/avro/v2"
)

//go:embed avro/voucher_event.avsc
var voucherEventSchema []byte

var VoucherEventSchema = avro.MustParse(string(voucherEventSchema))

type avroEvent struct {
	ID         string `avro:"id"`
	Type       string `avro:"type"`
	VoucherID  int64  `avro:"voucherId"`
	Code       string `avro:"code"`
	Kind       string `avro:"kind"`
	Status     string `avro:"status"`
	UserID     int64  `avro:"userId"`
	Local      string `avro:"local"`
	Amount     string `avro:"amount"`
	ActorID    int64  `avro:"actorId"`
	OccurredAt int64  `avro:"occurredAt"`
}

func Encode(e Event) ([]byte, error) {
	return avro.Marshal(VoucherEventSchema, avroEvent{
		ID:         e.ID,
		Type:       e.Type,
		VoucherID:  e.VoucherID,
		Code:       e.Code,
		Kind:       e.Kind,
		Status:     e.Status,
		UserID:     e.UserID,
		Local:      e.Local,
		Amount:     e.Amount,
		ActorID:    e.ActorID,
		OccurredAt: e.OccurredAt.UnixMilli(),
	})
}

func Decode(b []byte) (Event, error) {
	var a avroEvent
	if err := avro.Unmarshal(VoucherEventSchema, b, &a); err != nil {
		return Event{}, err
	}
	return Event{
		ID:         a.ID,
		Type:       a.Type,
		VoucherID:  a.VoucherID,
		Code:       a.Code,
		Kind:       a.Kind,
		Status:     a.Status,
		UserID:     a.UserID,
		Local:      a.Local,
		Amount:     a.Amount,
		ActorID:    a.ActorID,
		OccurredAt: time.UnixMilli(a.OccurredAt).UTC(),
	}, nil
}

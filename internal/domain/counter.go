package domain

import "time"

// DailyCounter holds the last sequence number handed out for a voucher kind on a business day.
type DailyCounter struct {
	Kind      VoucherKind `gorm:"primaryKey;size:16"`
	Day       string      `gorm:"primaryKey;size:10"`
	Value     int64       `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

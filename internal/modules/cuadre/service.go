package cuadre

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"vales/internal/modules/voucher"
	"vales/internal/repository"
)

type Service struct {
	vouchers VoucherReader
	tz       *time.Location
	now      func() time.Time
	logger   *zap.SugaredLogger
}

func NewService(vouchers VoucherReader, tz *time.Location, logger *zap.SugaredLogger) *Service {
	return &Service{
		vouchers: vouchers,
		tz:       tz,
		now:      time.Now,
		logger:   logger,
	}
}

func (s *Service) day(raw string) (string, error) {
	day := strings.TrimSpace(raw)
	if day == "" {
		return s.now().In(s.tz).Format(voucher.DayLayout), nil
	}
	if !voucher.ValidDay(day) {
		return "", ErrInvalidDay
	}
	return day, nil
}

// Daily is the cuadre of every professional for q.Day (today by default).
func (s *Service) Daily(ctx context.Context, actor voucher.Actor, q Query) (*Report, error) {
	if !actor.CanApprove() {
		return nil, ErrForbidden
	}
	return s.build(ctx, q, 0)
}

// Own is the cuadre restricted to the caller's vouchers.
func (s *Service) Own(ctx context.Context, actor voucher.Actor, q Query) (*Report, error) {
	return s.build(ctx, q, actor.ID)
}

func (s *Service) build(ctx context.Context, q Query, userID int64) (*Report, error) {
	day, err := s.day(q.Day)
	if err != nil {
		return nil, err
	}
	local := strings.TrimSpace(q.Local)

	list, err := s.vouchers.All(ctx, repository.VoucherFilter{
		UserID:  userID,
		Local:   local,
		DayFrom: day,
		DayTo:   day,
	})
	if err != nil {
		return nil, err
	}

	r := Aggregate(day, local, list)
	s.logger.Debugw("cuadre built", "day", day, "local", local, "user_id", userID,
		"vouchers", len(list), "pending", r.PendingCount)
	return r, nil
}


package dashboard

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"vales/internal/domain"
	"vales/internal/modules/voucher"
	"vales/internal/pkg/cache"
	"vales/internal/pkg/events"
	"vales/internal/repository"
)

const maxRangeDays = 366

type Service struct {
	vouchers VoucherReader
	cache    *cache.TTL[string, *Dashboard]
	tz       *time.Location
	now      func() time.Time
	logger   *zap.SugaredLogger
}

// NewService caches results for ttl; ttl <= 0 disables caching.
func NewService(vouchers VoucherReader, ttl time.Duration, tz *time.Location, logger *zap.SugaredLogger) *Service {
	s := &Service{
		vouchers: vouchers,
		tz:       tz,
		now:      time.Now,
		logger:   logger,
	}
	if ttl > 0 {
		s.cache = cache.NewTTL[string, *Dashboard](256, ttl)
	}
	return s
}

// normalize fills the default range (first of the month to today) and
// validates the result.
func (s *Service) normalize(q Query) (Query, error) {
	q.From = strings.TrimSpace(q.From)
	q.To = strings.TrimSpace(q.To)
	q.Local = strings.TrimSpace(q.Local)

	today := s.now().In(s.tz)
	if q.To == "" {
		q.To = today.Format(voucher.DayLayout)
	}
	if q.From == "" {
		q.From = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).Format(voucher.DayLayout)
	}

	from, err := time.Parse(voucher.DayLayout, q.From)
	if err != nil {
		return q, ErrInvalidDay
	}
	to, err := time.Parse(voucher.DayLayout, q.To)
	if err != nil {
		return q, ErrInvalidDay
	}
	if to.Before(from) || to.Sub(from) > maxRangeDays*24*time.Hour {
		return q, ErrInvalidRange
	}
	return q, nil
}

func (s *Service) Get(ctx context.Context, q Query) (*Dashboard, error) {
	q, err := s.normalize(q)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if d, ok := s.cache.Get(q.key()); ok {
			return d, nil
		}
	}

	var services, expenses []domain.Voucher
	filter := repository.VoucherFilter{Local: q.Local, DayFrom: q.From, DayTo: q.To}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		f := filter
		f.Kind = domain.KindService
		services, err = s.vouchers.All(gctx, f)
		return
	})
	g.Go(func() (err error) {
		f := filter
		f.Kind = domain.KindExpense
		expenses, err = s.vouchers.All(gctx, f)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := Aggregate(q, services, expenses)
	if s.cache != nil {
		s.cache.Set(q.key(), d)
	}
	s.logger.Debugw("dashboard computed", "from", q.From, "to", q.To, "local", q.Local,
		"services", len(services), "expenses", len(expenses))
	return d, nil
}

// Publish drops cached dashboards on any voucher change so the next read
// sees it. It lets the service sit in the events fanout.
func (s *Service) Publish(_ context.Context, e events.Event) error {
	if s.cache == nil {
		return nil
	}
	switch e.Type {
	case events.VoucherCreated, events.VoucherApproved, events.VoucherRejected:
		s.cache.Purge()
	}
	return nil
}

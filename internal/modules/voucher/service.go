package voucher

import (
	"context"
	"strings"
	"time"

	"vales/internal/domain"
	"vales/internal/pkg/commission"
	"vales/internal/pkg/events"
	"vales/internal/pkg/pagination"
	"vales/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const DayLayout = "2006-01-02"

type Service struct {
	vouchers  VoucherRepositoryInterface
	users     UserReader
	publisher events.Publisher
	tz        *time.Location
	now       func() time.Time
	logger    *zap.SugaredLogger
}

func NewService(
	vouchers VoucherRepositoryInterface,
	users UserReader,
	publisher events.Publisher,
	tz *time.Location,
	logger *zap.SugaredLogger,
) *Service {
	if publisher == nil {
		publisher = events.Discard{}
	}
	return &Service{
		vouchers:  vouchers,
		users:     users,
		publisher: publisher,
		tz:        tz,
		now:       time.Now,
		logger:    logger,
	}
}

// Today is the current business day in the configured timezone.
func (s *Service) Today() string {
	return s.now().In(s.tz).Format(DayLayout)
}

func ValidDay(day string) bool {
	_, err := time.Parse(DayLayout, day)
	return err == nil
}

func (s *Service) CreateService(ctx context.Context, actor Actor, req CreateServiceRequest) (*View, error) {
	method := domain.PaymentMethod(strings.ToLower(strings.TrimSpace(req.PaymentMethod)))
	if method != "" && !method.Valid() {
		return nil, ErrInvalidPaymentMethod
	}
	v := &domain.Voucher{
		Kind:          domain.KindService,
		Amount:        req.Amount,
		Description:   req.Description,
		PaymentMethod: method,
		Local:         req.Local,
	}
	return s.create(ctx, actor, v)
}

func (s *Service) CreateExpense(ctx context.Context, actor Actor, req CreateExpenseRequest) (*View, error) {
	v := &domain.Voucher{
		Kind:        domain.KindExpense,
		Amount:      req.Amount,
		Description: req.Concept,
		Local:       req.Local,
	}
	return s.create(ctx, actor, v)
}

func (s *Service) create(ctx context.Context, actor Actor, v *domain.Voucher) (*View, error) {
	// amounts are stored with 2 decimals; check what will be stored
	v.Amount = v.Amount.Round(2)
	if !v.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	v.Description = strings.TrimSpace(v.Description)
	if v.Description == "" {
		return nil, ErrDescriptionRequired
	}

	u, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if !u.Active {
		return nil, ErrInactiveUser
	}

	v.UserID = u.ID
	v.UserName = u.Name
	v.Local = strings.TrimSpace(v.Local)
	if v.Local == "" {
		v.Local = u.Local
	}
	v.Status = domain.VoucherPending
	v.Day = s.Today()

	if err := s.vouchers.Create(ctx, v); err != nil {
		return nil, err
	}

	s.logger.Infow("voucher created", "voucher_id", v.ID, "code", v.Code, "kind", v.Kind, "user_id", v.UserID)
	s.publish(ctx, events.VoucherCreated, v, actor.ID)
	return toView(v), nil
}

func (s *Service) Get(ctx context.Context, actor Actor, id int64) (*View, error) {
	v, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanApprove() && v.UserID != actor.ID {
		return nil, ErrForbidden
	}
	return toView(v), nil
}

func (s *Service) List(ctx context.Context, actor Actor, q ListQuery, p pagination.Params) ([]View, int64, error) {
	f, err := s.filter(actor, q)
	if err != nil {
		return nil, 0, err
	}
	f.Offset = p.Offset()
	f.Limit = p.Limit

	list, total, err := s.vouchers.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return toViews(list), total, nil
}

// Pending is the approval queue, oldest first.
func (s *Service) Pending(ctx context.Context, actor Actor, local string) ([]View, error) {
	if !actor.CanApprove() {
		return nil, ErrForbidden
	}
	list, err := s.vouchers.Pending(ctx, strings.TrimSpace(local))
	if err != nil {
		return nil, err
	}
	return toViews(list), nil
}

func (s *Service) Summary(ctx context.Context, actor Actor, q ListQuery) (*Summary, error) {
	f, err := s.filter(actor, q)
	if err != nil {
		return nil, err
	}
	f.Status = ""

	counts, err := s.vouchers.CountByStatus(ctx, f)
	if err != nil {
		return nil, err
	}

	out := &Summary{
		Counts: counts,
		ByStatus: map[domain.VoucherStatus]int64{
			domain.VoucherPending:  0,
			domain.VoucherApproved: 0,
			domain.VoucherRejected: 0,
		},
	}
	for _, c := range counts {
		out.ByStatus[c.Status] += c.Count
		out.Total += c.Count
	}
	return out, nil
}

func (s *Service) Approve(ctx context.Context, actor Actor, id int64, req ApproveRequest) (*View, error) {
	if !actor.CanApprove() {
		return nil, ErrForbidden
	}
	v, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	status, err := nextStatus(v.Status, triggerApprove)
	if err != nil {
		return nil, err
	}

	d := repository.Decision{
		Status:       status,
		ApprovedByID: actor.ID,
		ApprovedBy:   actor.Name,
		DecidedAt:    s.now().UTC(),
		Observation:  strings.TrimSpace(req.Observation),
	}

	bonus := decimal.Zero
	if req.Bonus != nil {
		bonus = req.Bonus.Round(2)
	}
	split := 0
	if req.SplitPercent != nil {
		if v.Kind == domain.KindExpense {
			return nil, ErrSplitOnExpense
		}
		// an explicit value must be an allowed split; only a missing field defaults
		if !commission.ValidSplit(*req.SplitPercent) {
			return nil, ErrInvalidSplit
		}
		split = *req.SplitPercent
	}
	if err := commission.Validate(split, bonus); err != nil {
		return nil, err
	}
	if v.Kind == domain.KindService {
		if split == 0 {
			split = commission.DefaultSplit
		}
		d.SplitPercent = &split
	}
	d.Bonus = &bonus

	return s.decide(ctx, actor, v, d, events.VoucherApproved)
}

func (s *Service) Reject(ctx context.Context, actor Actor, id int64, req RejectRequest) (*View, error) {
	if !actor.CanApprove() {
		return nil, ErrForbidden
	}
	v, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	status, err := nextStatus(v.Status, triggerReject)
	if err != nil {
		return nil, err
	}

	return s.decide(ctx, actor, v, repository.Decision{
		Status:       status,
		ApprovedByID: actor.ID,
		ApprovedBy:   actor.Name,
		DecidedAt:    s.now().UTC(),
		Observation:  strings.TrimSpace(req.Observation),
	}, events.VoucherRejected)
}

func (s *Service) decide(ctx context.Context, actor Actor, v *domain.Voucher, d repository.Decision, eventType string) (*View, error) {
	ok, err := s.vouchers.Decide(ctx, v.ID, d)
	if err != nil {
		return nil, err
	}
	if !ok {
		// someone else decided it between our read and the update
		return nil, ErrAlreadyDecided
	}

	updated, err := s.load(ctx, v.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("voucher decided", "voucher_id", updated.ID, "code", updated.Code, "status", updated.Status, "by", actor.ID)
	s.publish(ctx, eventType, updated, actor.ID)
	return toView(updated), nil
}

func (s *Service) load(ctx context.Context, id int64) (*domain.Voucher, error) {
	v, err := s.vouchers.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrVoucherNotFound
		}
		return nil, err
	}
	return v, nil
}

func (s *Service) filter(actor Actor, q ListQuery) (repository.VoucherFilter, error) {
	f := repository.VoucherFilter{
		Kind:    domain.VoucherKind(strings.ToLower(q.Kind)),
		Status:  domain.VoucherStatus(strings.ToLower(q.Status)),
		UserID:  q.UserID,
		Local:   strings.TrimSpace(q.Local),
		DayFrom: strings.TrimSpace(q.From),
		DayTo:   strings.TrimSpace(q.To),
		Query:   q.Query,
		SortBy:  q.Sort,
		Desc:    !strings.EqualFold(q.Dir, "asc"),
	}
	if f.Kind != "" && !f.Kind.Valid() {
		f.Kind = ""
	}
	if f.Status != "" && !f.Status.Valid() {
		f.Status = ""
	}
	if (f.DayFrom != "" && !ValidDay(f.DayFrom)) || (f.DayTo != "" && !ValidDay(f.DayTo)) {
		return f, ErrInvalidDay
	}
	if !actor.CanApprove() {
		f.UserID = actor.ID
	}
	return f, nil
}

func (s *Service) publish(ctx context.Context, eventType string, v *domain.Voucher, actorID int64) {
	e := events.New(eventType)
	e.VoucherID = v.ID
	e.Code = v.Code
	e.Kind = string(v.Kind)
	e.Status = string(v.Status)
	e.UserID = v.UserID
	e.Local = v.Local
	e.Amount = v.Amount.String()
	e.ActorID = actorID

	if err := s.publisher.Publish(ctx, e); err != nil {
		s.logger.Warnw("publish voucher event failed", "event", eventType, "voucher_id", v.ID, "error", err)
	}
}

// Shares returns the commission split of an approved voucher.
func Shares(v *domain.Voucher) commission.Share {
	if v.Kind == domain.KindExpense {
		return commission.Expense(v.Amount, v.BonusOrZero())
	}
	return commission.Service(v.Amount, v.SplitOrDefault(), v.BonusOrZero())
}

func toView(v *domain.Voucher) *View {
	view := &View{Voucher: *v}
	if v.Status == domain.VoucherApproved {
		share := Shares(v)
		view.Share = &share
	}
	return view
}

func toViews(list []domain.Voucher) []View {
	out := make([]View, 0, len(list))
	for i := range list {
		out = append(out, *toView(&list[i]))
	}
	return out
}

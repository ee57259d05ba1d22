package voucher

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vales/internal/database/dbtest"
	"vales/internal/domain"
	"vales/internal/pkg/events"
	"vales/internal/pkg/logger"
	"vales/internal/pkg/pagination"
	"vales/internal/repository"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recordingPublisher) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	svc   *Service
	pub   *recordingPublisher
	admin Actor
	host  Actor
	pro   Actor
	other Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)
	users := repository.NewUserRepository(db)
	ctx := context.Background()

	mk := func(email, name string, role domain.UserRole, active bool) Actor {
		u := &domain.User{Email: email, PasswordHash: "x", Name: name, Role: role, Local: "Providencia", Active: active}
		require.NoError(t, users.Create(ctx, u))
		return Actor{ID: u.ID, Role: role, Name: name}
	}

	tz, err := time.LoadLocation("America/Santiago")
	require.NoError(t, err)

	pub := &recordingPublisher{}
	svc := NewService(repository.NewVoucherRepository(db), users, pub, tz, logger.Nop())
	// 2025-03-02 02:30 UTC is still March 1st in Santiago.
	svc.now = func() time.Time { return time.Date(2025, 3, 2, 2, 30, 0, 0, time.UTC) }

	return &fixture{
		svc:   svc,
		pub:   pub,
		admin: mk("admin@salon.cl", "Admin", domain.RoleAdmin, true),
		host:  mk("host@salon.cl", "Host", domain.RoleAnfitrion, true),
		pro:   mk("pro@salon.cl", "Camila", domain.RoleEstilista, true),
		other: mk("other@salon.cl", "Diego", domain.RoleBarbero, true),
	}
}

func (f *fixture) service(t *testing.T, who Actor, amount int64) *View {
	t.Helper()
	v, err := f.svc.CreateService(context.Background(), who, CreateServiceRequest{
		Amount: decimal.NewFromInt(amount), Description: "Corte y barba", PaymentMethod: "debito",
	})
	require.NoError(t, err)
	return v
}

func TestCreateService_AssignsBusinessDayAndCode(t *testing.T) {
	f := newFixture(t)

	v := f.service(t, f.pro, 10000)
	assert.Equal(t, "2025-03-01", v.Day)
	assert.Equal(t, "S-250301-001", v.Code)
	assert.Equal(t, domain.VoucherPending, v.Status)
	assert.Equal(t, "Camila", v.UserName)
	assert.Equal(t, "Providencia", v.Local)
	assert.Nil(t, v.Share)

	v2 := f.service(t, f.other, 5000)
	assert.Equal(t, "S-250301-002", v2.Code)

	g, err := f.svc.CreateExpense(context.Background(), f.pro, CreateExpenseRequest{Amount: decimal.NewFromInt(3000), Concept: "Adelanto"})
	require.NoError(t, err)
	assert.Equal(t, "G-250301-001", g.Code)

	assert.Equal(t, []string{events.VoucherCreated, events.VoucherCreated, events.VoucherCreated}, f.pub.types())
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateService(ctx, f.pro, CreateServiceRequest{Amount: decimal.Zero, Description: "x"})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = f.svc.CreateService(ctx, f.pro, CreateServiceRequest{Amount: decimal.NewFromInt(1), Description: "  "})
	assert.ErrorIs(t, err, ErrDescriptionRequired)

	_, err = f.svc.CreateService(ctx, f.pro, CreateServiceRequest{Amount: decimal.NewFromInt(1), Description: "x", PaymentMethod: "cheque"})
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)

	_, err = f.svc.CreateExpense(ctx, f.pro, CreateExpenseRequest{Amount: decimal.NewFromInt(-5), Concept: "x"})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	// rounds to zero at 2 decimals
	_, err = f.svc.CreateService(ctx, f.pro, CreateServiceRequest{Amount: decimal.RequireFromString("0.004"), Description: "x"})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	// rejected amounts must not consume a code
	v := f.service(t, f.pro, 1000)
	assert.Equal(t, "S-250301-001", v.Code)
}

func TestApprove_ComputesShares(t *testing.T) {
	f := newFixture(t)
	v := f.service(t, f.pro, 10000)

	split := 50
	bonus := decimal.NewFromInt(1000)
	got, err := f.svc.Approve(context.Background(), f.host, v.ID, ApproveRequest{SplitPercent: &split, Bonus: &bonus, Observation: "buen trabajo"})
	require.NoError(t, err)

	assert.Equal(t, domain.VoucherApproved, got.Status)
	assert.Equal(t, "Host", got.ApprovedBy)
	assert.Equal(t, "buen trabajo", got.Observation)
	require.NotNil(t, got.DecidedAt)
	require.NotNil(t, got.Share)
	assert.True(t, decimal.NewFromInt(6000).Equal(got.Share.Professional))
	assert.True(t, decimal.NewFromInt(5000).Equal(got.Share.Business))
	assert.Contains(t, f.pub.types(), events.VoucherApproved)
}

func TestApprove_DefaultSplit(t *testing.T) {
	f := newFixture(t)
	v := f.service(t, f.pro, 20000)

	got, err := f.svc.Approve(context.Background(), f.admin, v.ID, ApproveRequest{})
	require.NoError(t, err)
	require.NotNil(t, got.SplitPercent)
	assert.Equal(t, 100, *got.SplitPercent)
	assert.True(t, decimal.NewFromInt(20000).Equal(got.Share.Professional))
	assert.True(t, got.Share.Business.IsZero())
}

func TestApprove_Rules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := f.service(t, f.pro, 10000)

	_, err := f.svc.Approve(ctx, f.pro, v.ID, ApproveRequest{})
	assert.ErrorIs(t, err, ErrForbidden)

	bad := 60
	_, err = f.svc.Approve(ctx, f.admin, v.ID, ApproveRequest{SplitPercent: &bad})
	assert.ErrorIs(t, err, ErrInvalidSplit)

	zero := 0
	_, err = f.svc.Approve(ctx, f.admin, v.ID, ApproveRequest{SplitPercent: &zero})
	assert.ErrorIs(t, err, ErrInvalidSplit)

	neg := decimal.NewFromInt(-1)
	_, err = f.svc.Approve(ctx, f.admin, v.ID, ApproveRequest{Bonus: &neg})
	assert.ErrorIs(t, err, ErrNegativeBonus)

	_, err = f.svc.Approve(ctx, f.admin, 9999, ApproveRequest{})
	assert.ErrorIs(t, err, ErrVoucherNotFound)

	g, err := f.svc.CreateExpense(ctx, f.pro, CreateExpenseRequest{Amount: decimal.NewFromInt(3000), Concept: "Adelanto"})
	require.NoError(t, err)
	half := 50
	_, err = f.svc.Approve(ctx, f.admin, g.ID, ApproveRequest{SplitPercent: &half})
	assert.ErrorIs(t, err, ErrSplitOnExpense)
}

func TestDecisionIsFinal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := f.service(t, f.pro, 10000)

	rejected, err := f.svc.Reject(ctx, f.admin, v.ID, RejectRequest{Observation: "duplicado"})
	require.NoError(t, err)
	assert.Equal(t, domain.VoucherRejected, rejected.Status)
	assert.Nil(t, rejected.Share)
	assert.Nil(t, rejected.SplitPercent)

	_, err = f.svc.Approve(ctx, f.admin, v.ID, ApproveRequest{})
	assert.ErrorIs(t, err, ErrAlreadyDecided)
	_, err = f.svc.Reject(ctx, f.host, v.ID, RejectRequest{})
	assert.ErrorIs(t, err, ErrAlreadyDecided)

	after, err := f.svc.Get(ctx, f.admin, v.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VoucherRejected, after.Status)
	assert.Equal(t, "duplicado", after.Observation)
	assert.Equal(t, "Admin", after.ApprovedBy)
}

func TestConcurrentApproveOnlyOneWins(t *testing.T) {
	f := newFixture(t)
	v := f.service(t, f.pro, 10000)

	var wg sync.WaitGroup
	results := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = f.svc.Approve(context.Background(), f.admin, v.ID, ApproveRequest{})
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range results {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, ErrAlreadyDecided)
		}
	}
	assert.Equal(t, 1, wins)
}

func TestVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mine := f.service(t, f.pro, 10000)
	f.service(t, f.other, 8000)

	_, err := f.svc.Get(ctx, f.other, mine.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.Get(ctx, f.host, mine.ID)
	assert.NoError(t, err)

	list, total, err := f.svc.List(ctx, f.pro, ListQuery{UserID: f.other.ID}, pagination.Normalize(1, 20))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, mine.ID, list[0].ID)

	_, total, err = f.svc.List(ctx, f.admin, ListQuery{}, pagination.Normalize(1, 20))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, err = f.svc.Pending(ctx, f.pro, "")
	assert.ErrorIs(t, err, ErrForbidden)

	pending, err := f.svc.Pending(ctx, f.host, "")
	require.NoError(t, err)
	assert.Len(t, pending, 2)
}

func TestList_InvalidDay(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.svc.List(context.Background(), f.admin, ListQuery{From: "01/03/2025"}, pagination.Normalize(1, 20))
	assert.ErrorIs(t, err, ErrInvalidDay)
}

func TestSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.service(t, f.pro, 10000)
	f.service(t, f.pro, 10000)
	f.service(t, f.other, 10000)
	_, err := f.svc.Approve(ctx, f.admin, a.ID, ApproveRequest{})
	require.NoError(t, err)

	s, err := f.svc.Summary(ctx, f.pro, ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), s.Total)
	assert.Equal(t, int64(1), s.ByStatus[domain.VoucherApproved])
	assert.Equal(t, int64(1), s.ByStatus[domain.VoucherPending])
	assert.Equal(t, int64(0), s.ByStatus[domain.VoucherRejected])

	s, err = f.svc.Summary(ctx, f.admin, ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), s.Total)
}

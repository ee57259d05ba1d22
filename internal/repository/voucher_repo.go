package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vales/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VoucherRepository struct {
	db *gorm.DB
}

func NewVoucherRepository(db *gorm.DB) *VoucherRepository {
	return &VoucherRepository{db: db}
}

type VoucherFilter struct {
	Kind    domain.VoucherKind
	Status  domain.VoucherStatus
	UserID  int64
	Local   string
	DayFrom string
	DayTo   string
	Query   string
	SortBy  string // created_at | amount
	Desc    bool
	Offset  int
	Limit   int
}

type StatusCount struct {
	Kind   domain.VoucherKind   `json:"kind"`
	Status domain.VoucherStatus `json:"status"`
	Count  int64                `json:"count"`
}

// Decision carries the fields written when a pending voucher is decided.
type Decision struct {
	Status       domain.VoucherStatus
	ApprovedByID int64
	ApprovedBy   string
	DecidedAt    time.Time
	Observation  string
	SplitPercent *int
	Bonus        *decimal.Decimal
}

// FormatCode renders S-YYMMDD-NNN / G-YYMMDD-NNN from a YYYY-MM-DD day.
func FormatCode(kind domain.VoucherKind, day string, seq int64) string {
	compact := strings.ReplaceAll(day, "-", "")
	if len(compact) == 8 {
		compact = compact[2:]
	}
	return fmt.Sprintf("%s-%s-%03d", kind.CodePrefix(), compact, seq)
}

// Create assigns the next daily code and inserts v in one transaction.
// v.Kind and v.Day must be set.
func (r *VoucherRepository) Create(ctx context.Context, v *domain.Voucher) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq, err := nextValue(tx, v.Kind, v.Day)
		if err != nil {
			return err
		}
		v.Code = FormatCode(v.Kind, v.Day, seq)
		return tx.Create(v).Error
	})
}

func (r *VoucherRepository) GetByID(ctx context.Context, id int64) (*domain.Voucher, error) {
	var v domain.Voucher
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VoucherRepository) applyFilter(q *gorm.DB, f VoucherFilter) *gorm.DB {
	if f.Kind != "" {
		q = q.Where("kind = ?", f.Kind)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Local != "" {
		q = q.Where("local = ?", f.Local)
	}
	if f.DayFrom != "" {
		q = q.Where("day >= ?", f.DayFrom)
	}
	if f.DayTo != "" {
		q = q.Where("day <= ?", f.DayTo)
	}
	if s := strings.TrimSpace(f.Query); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("(LOWER(description) LIKE ? OR LOWER(code) LIKE ? OR LOWER(user_name) LIKE ?)", like, like, like)
	}
	return q
}

func (r *VoucherRepository) List(ctx context.Context, f VoucherFilter) ([]domain.Voucher, int64, error) {
	q := r.applyFilter(r.db.WithContext(ctx).Model(&domain.Voucher{}), f)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	col := "created_at"
	if f.SortBy == "amount" {
		col = "amount"
	}
	dir := "ASC"
	if f.Desc {
		dir = "DESC"
	}
	q = q.Order(col + " " + dir).Order("id " + dir)
	if f.Limit > 0 {
		q = q.Offset(f.Offset).Limit(f.Limit)
	}

	var out []domain.Voucher
	if err := q.Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// All returns every voucher matching f without paging, for aggregation.
func (r *VoucherRepository) All(ctx context.Context, f VoucherFilter) ([]domain.Voucher, error) {
	var out []domain.Voucher
	err := r.applyFilter(r.db.WithContext(ctx).Model(&domain.Voucher{}), f).
		Order("created_at ASC").Order("id ASC").
		Find(&out).Error
	return out, err
}

func (r *VoucherRepository) Pending(ctx context.Context, local string) ([]domain.Voucher, error) {
	return r.All(ctx, VoucherFilter{Status: domain.VoucherPending, Local: local})
}

func (r *VoucherRepository) CountByStatus(ctx context.Context, f VoucherFilter) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.applyFilter(r.db.WithContext(ctx).Model(&domain.Voucher{}), f).
		Select("kind, status, COUNT(*) AS count").
		Group("kind, status").
		Order("kind, status").
		Scan(&rows).Error
	return rows, err
}

// Decide moves a pending voucher to d.Status. It returns false when the
// voucher was no longer pending, so two approvers racing on the same
// voucher can not both win.
func (r *VoucherRepository) Decide(ctx context.Context, id int64, d Decision) (bool, error) {
	updates := map[string]any{
		"status":         d.Status,
		"approved_by_id": d.ApprovedByID,
		"approved_by":    d.ApprovedBy,
		"decided_at":     d.DecidedAt,
		"observation":    d.Observation,
	}
	if d.SplitPercent != nil {
		updates["split_percent"] = *d.SplitPercent
	}
	if d.Bonus != nil {
		updates["bonus"] = *d.Bonus
	}

	tx := r.db.WithContext(ctx).
		Model(&domain.Voucher{}).
		Where("id = ? AND status = ?", id, domain.VoucherPending).
		Updates(updates)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

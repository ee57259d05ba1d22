package repository

import (
	"context"
	"time"

	"vales/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CounterRepository struct {
	db *gorm.DB
}

func NewCounterRepository(db *gorm.DB) *CounterRepository {
	return &CounterRepository{db: db}
}

// nextValue bumps the (kind, day) counter inside tx and returns the new value.
// The UPDATE takes the row lock on PostgreSQL, so concurrent transactions
// queue on it and each one reads its own increment.
func nextValue(tx *gorm.DB, kind domain.VoucherKind, day string) (int64, error) {
	seed := domain.DailyCounter{Kind: kind, Day: day, Value: 0}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return 0, err
	}

	err := tx.Model(&domain.DailyCounter{}).
		Where("kind = ? AND day = ?", kind, day).
		Updates(map[string]any{
			"value":      gorm.Expr("value + 1"),
			"updated_at": time.Now().UTC(),
		}).Error
	if err != nil {
		return 0, err
	}

	var c domain.DailyCounter
	if err := tx.Where("kind = ? AND day = ?", kind, day).First(&c).Error; err != nil {
		return 0, err
	}
	return c.Value, nil
}

// DeleteBefore purges counters of days strictly before day (YYYY-MM-DD).
func (r *CounterRepository) DeleteBefore(ctx context.Context, day string) (int64, error) {
	tx := r.db.WithContext(ctx).Where("day < ?", day).Delete(&domain.DailyCounter{})
	return tx.RowsAffected, tx.Error
}

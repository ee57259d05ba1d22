package repository

import (
	"context"
	"strings"

	"vales/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type UserFilter struct {
	Role   domain.UserRole
	Local  string
	Active *bool
	Query  string
	Offset int
	Limit  int
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	u.Email = normalizeEmail(u.Email)
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", normalizeEmail(email)).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("LOWER(email) = ?", normalizeEmail(email)).
		Count(&count).Error
	return count > 0, err
}

// Update writes name, role, local and active. Password changes go through UpdatePassword.
func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", u.ID).
		Updates(map[string]any{
			"name":   u.Name,
			"role":   u.Role,
			"local":  u.Local,
			"active": u.Active,
		}).Error
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Update("password_hash", hash)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, f UserFilter) ([]domain.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.User{})
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.Local != "" {
		q = q.Where("local = ?", f.Local)
	}
	if f.Active != nil {
		q = q.Where("active = ?", *f.Active)
	}
	if s := strings.TrimSpace(f.Query); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []domain.User
	q = q.Order("name ASC")
	if f.Limit > 0 {
		q = q.Offset(f.Offset).Limit(f.Limit)
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Locals returns the distinct branch names staff are assigned to.
func (r *UserRepository) Locals(ctx context.Context) ([]string, error) {
	var locals []string
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("local <> ''").
		Distinct("local").
		Order("local").
		Pluck("local", &locals).Error
	return locals, err
}

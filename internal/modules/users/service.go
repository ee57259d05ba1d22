package users

import (
	"context"
	"strings"

	"vales/internal/domain"
	"vales/internal/pkg/pagination"
	"vales/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// SessionCloser drops long-lived connections of a user, such as websockets
// that captured the role at connect time.
type SessionCloser interface {
	Disconnect(userID int64) int
}

type Service struct {
	users    UserRepositoryInterface
	roles    *RoleCache
	sessions SessionCloser
	logger   *zap.SugaredLogger
}

func NewService(users UserRepositoryInterface, roles *RoleCache, logger *zap.SugaredLogger) *Service {
	return &Service{users: users, roles: roles, logger: logger}
}

// WithSessions makes role and activation changes close the user's open sessions.
func (s *Service) WithSessions(sessions SessionCloser) *Service {
	s.sessions = sessions
	return s
}

// invalidate forgets everything derived from the user's previous role or status.
func (s *Service) invalidate(id int64) {
	s.roles.Evict(id)
	if s.sessions == nil {
		return
	}
	if n := s.sessions.Disconnect(id); n > 0 {
		s.logger.Infow("closed sessions after user change", "user_id", id, "sessions", n)
	}
}

func (s *Service) get(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) Me(ctx context.Context, userID int64) (*domain.User, error) {
	return s.get(ctx, userID)
}

func (s *Service) ChangePassword(ctx context.Context, userID int64, req ChangePasswordRequest) error {
	u, err := s.get(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return ErrWrongPassword
	}
	return s.setPassword(ctx, userID, req.NewPassword)
}

func (s *Service) ListUsers(ctx context.Context, filter UserListFilter, p pagination.Params) ([]domain.User, int64, error) {
	return s.users.List(ctx, repository.UserFilter{
		Role:   domain.UserRole(filter.Role),
		Local:  strings.TrimSpace(filter.Local),
		Active: filter.Active,
		Query:  filter.Query,
		Offset: p.Offset(),
		Limit:  p.Limit,
	})
}

func (s *Service) Locals(ctx context.Context) ([]string, error) {
	return s.users.Locals(ctx)
}

func (s *Service) CreateUser(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	role := domain.UserRole(strings.ToLower(strings.TrimSpace(req.Role)))
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		Role:         role,
		Local:        strings.TrimSpace(req.Local),
		Active:       true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	s.logger.Infow("user created", "user_id", u.ID, "role", u.Role, "local", u.Local)
	return u, nil
}

func (s *Service) UpdateUser(ctx context.Context, id int64, req UpdateUserRequest) (*domain.User, error) {
	u, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.Local != nil {
		u.Local = strings.TrimSpace(*req.Local)
	}
	if req.Role != nil {
		role := domain.UserRole(strings.ToLower(strings.TrimSpace(*req.Role)))
		if !role.Valid() {
			return nil, ErrInvalidRole
		}
		u.Role = role
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	s.invalidate(id)
	return u, nil
}

func (s *Service) SetActive(ctx context.Context, actorID, id int64, active bool) (*domain.User, error) {
	if !active && actorID == id {
		return nil, ErrCannotDeactivate
	}

	u, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Active = active
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	s.invalidate(id)

	s.logger.Infow("user activation changed", "user_id", id, "active", active, "by", actorID)
	return u, nil
}

func (s *Service) ResetPassword(ctx context.Context, id int64, password string) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	return s.setPassword(ctx, id, password)
}

func (s *Service) setPassword(ctx context.Context, id int64, password string) error {
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, id, hash)
}

func hashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"vales/internal/database/dbtest"
	"vales/internal/domain"
	"vales/internal/pkg/logger"
	"vales/internal/pkg/pagination"
	"vales/internal/repository"
)

func newTestService(t *testing.T) (*Service, *RoleCache, *repository.UserRepository) {
	t.Helper()
	repo := repository.NewUserRepository(dbtest.New(t))
	roles := NewRoleCache(repo, time.Minute)
	return NewService(repo, roles, logger.Nop()), roles, repo
}

func createUser(t *testing.T, svc *Service, email, role string) *domain.User {
	t.Helper()
	u, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Email: email, Name: "Test " + role, Password: "password1", Role: role, Local: "Centro",
	})
	require.NoError(t, err)
	return u
}

func TestService_CreateUser(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	u := createUser(t, svc, "Barber@Salon.cl", "barbero")
	assert.Equal(t, "barber@salon.cl", u.Email)
	assert.True(t, u.Active)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password1")))

	_, err := svc.CreateUser(ctx, CreateUserRequest{Email: "barber@salon.cl", Name: "Dup", Password: "password1", Role: "barbero"})
	assert.ErrorIs(t, err, ErrEmailExists)

	_, err = svc.CreateUser(ctx, CreateUserRequest{Email: "x@salon.cl", Name: "X", Password: "password1", Role: "gerente"})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestService_UpdateUser_EvictsRoleCache(t *testing.T) {
	svc, roles, _ := newTestService(t)
	ctx := context.Background()
	u := createUser(t, svc, "a@salon.cl", "barbero")

	id, err := roles.Lookup(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "barbero", id.Role)

	role := "anfitrion"
	_, err = svc.UpdateUser(ctx, u.ID, UpdateUserRequest{Role: &role})
	require.NoError(t, err)

	id, err = roles.Lookup(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "anfitrion", id.Role)

	bad := "jefe"
	_, err = svc.UpdateUser(ctx, u.ID, UpdateUserRequest{Role: &bad})
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = svc.UpdateUser(ctx, 999, UpdateUserRequest{Role: &role})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_SetActive(t *testing.T) {
	svc, roles, _ := newTestService(t)
	ctx := context.Background()
	admin := createUser(t, svc, "admin@salon.cl", "admin")
	u := createUser(t, svc, "b@salon.cl", "estilista")

	_, err := roles.Lookup(ctx, u.ID)
	require.NoError(t, err)

	_, err = svc.SetActive(ctx, admin.ID, u.ID, false)
	require.NoError(t, err)

	id, err := roles.Lookup(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, id.Active)

	_, err = svc.SetActive(ctx, admin.ID, admin.ID, false)
	assert.ErrorIs(t, err, ErrCannotDeactivate)
}

type recordingSessions struct {
	closed []int64
}

func (r *recordingSessions) Disconnect(userID int64) int {
	r.closed = append(r.closed, userID)
	return 1
}

func TestService_ClosesSessionsOnChange(t *testing.T) {
	svc, _, _ := newTestService(t)
	sessions := &recordingSessions{}
	svc.WithSessions(sessions)
	ctx := context.Background()
	admin := createUser(t, svc, "admin@salon.cl", "admin")
	u := createUser(t, svc, "d@salon.cl", "anfitrion")

	role := "barbero"
	_, err := svc.UpdateUser(ctx, u.ID, UpdateUserRequest{Role: &role})
	require.NoError(t, err)
	_, err = svc.SetActive(ctx, admin.ID, u.ID, false)
	require.NoError(t, err)

	assert.Equal(t, []int64{u.ID, u.ID}, sessions.closed)

	bad := "jefe"
	_, err = svc.UpdateUser(ctx, u.ID, UpdateUserRequest{Role: &bad})
	assert.ErrorIs(t, err, ErrInvalidRole)
	assert.Len(t, sessions.closed, 2)
}

func TestService_Passwords(t *testing.T) {
	svc, _, repo := newTestService(t)
	ctx := context.Background()
	u := createUser(t, svc, "c@salon.cl", "colorista")

	err := svc.ChangePassword(ctx, u.ID, ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "newpassword"})
	assert.ErrorIs(t, err, ErrWrongPassword)

	require.NoError(t, svc.ChangePassword(ctx, u.ID, ChangePasswordRequest{CurrentPassword: "password1", NewPassword: "newpassword"}))
	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("newpassword")))

	require.NoError(t, svc.ResetPassword(ctx, u.ID, "resetpass1"))
	got, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("resetpass1")))

	assert.ErrorIs(t, svc.ResetPassword(ctx, 999, "resetpass1"), ErrUserNotFound)
}

func TestService_ListUsers(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	createUser(t, svc, "a@salon.cl", "barbero")
	createUser(t, svc, "b@salon.cl", "barbero")
	createUser(t, svc, "c@salon.cl", "manicurista")

	list, total, err := svc.ListUsers(ctx, UserListFilter{Role: "barbero"}, pagination.Normalize(1, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 1)
}

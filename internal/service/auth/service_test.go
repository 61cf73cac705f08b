package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sunrisemc/booking-api/internal/model"
	"github.com/sunrisemc/booking-api/pkg/auth"
	"github.com/sunrisemc/booking-api/pkg/errors"
	"github.com/sunrisemc/booking-api/pkg/logger"
)

type stubUserRepo struct {
	users       map[uuid.UUID]*model.User
	byEmail     map[string]*model.User
	emailExists bool
	recorded    *model.User
	updated     *model.User
	created     *model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users:   make(map[uuid.UUID]*model.User),
		byEmail: make(map[string]*model.User),
	}
}

func (r *stubUserRepo) add(u *model.User) {
	r.users[u.ID] = u
	r.byEmail[u.Email] = u
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	u.ID = uuid.New()
	r.created = u
	r.add(u)
	return nil
}

func (r *stubUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("user", nil)
	}
	return u, nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, errors.NotFound("user", nil)
	}
	return u, nil
}

func (r *stubUserRepo) EmailExists(context.Context, string) (bool, error) {
	return r.emailExists, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.updated = u
	return nil
}

func (r *stubUserRepo) RecordLoginAttempt(_ context.Context, u *model.User) error {
	r.recorded = u
	return nil
}

func newTestService(repo *stubUserRepo) *Service {
	return NewService(repo, auth.NewTokenService("test-secret", time.Hour), logger.NewLogger(nil))
}

// Tests hash at MinCost, CompareHashAndPassword accepts any cost.
func seedUser(repo *stubUserRepo, password string) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &model.User{
		Base:         model.Base{ID: uuid.New()},
		Email:        "alice@example.com",
		Name:         "Alice Tan",
		Phone:        "+60123456789",
		PasswordHash: string(hash),
	}
	repo.add(u)
	return u
}

func TestLoginSuccess(t *testing.T) {
	repo := newStubUserRepo()
	user := seedUser(repo, "correct horse")
	svc := newTestService(repo)

	resp, err := svc.Login(context.Background(), "alice@example.com", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)

	require.NotNil(t, repo.recorded)
	assert.NotNil(t, repo.recorded.LastLoginAt)
	assert.Zero(t, repo.recorded.FailedLoginAttempts)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "correct horse")
	svc := newTestService(repo)

	_, err := svc.Login(context.Background(), "alice@example.com", "wrong")
	require.Error(t, err)
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrUnauthorized, appErr.Code)

	require.NotNil(t, repo.recorded)
	assert.Equal(t, 1, repo.recorded.FailedLoginAttempts)
}

func TestLoginLocksAfterRepeatedFailures(t *testing.T) {
	repo := newStubUserRepo()
	user := seedUser(repo, "correct horse")
	svc := newTestService(repo)
	ctx := context.Background()

	for i := 0; i < maxLoginAttempts; i++ {
		_, err := svc.Login(ctx, "alice@example.com", "wrong")
		require.Error(t, err)
	}

	require.NotNil(t, user.LockedUntil)
	assert.True(t, user.LockedUntil.After(time.Now()), "lockout extends into the future")

	_, err := svc.Login(ctx, "alice@example.com", "correct horse")
	require.Error(t, err, "even the right password is rejected while locked")
	assert.Contains(t, err.Error(), "locked")
}

func TestLoginExpiredLockIsIgnored(t *testing.T) {
	repo := newStubUserRepo()
	user := seedUser(repo, "correct horse")
	past := time.Now().Add(-time.Minute)
	user.LockedUntil = &past
	svc := newTestService(repo)

	resp, err := svc.Login(context.Background(), "alice@example.com", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Nil(t, user.LockedUntil, "a successful login clears the lock")
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestService(newStubUserRepo())

	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials", "unknown accounts are indistinguishable from bad passwords")
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo)

	user, err := svc.Register(context.Background(), &model.RegisterRequest{
		Name:     "Alice Tan",
		Email:    "alice@example.com",
		Phone:    "+60123456789",
		Password: "correct horse",
	})
	require.NoError(t, err)

	assert.NotEqual(t, "correct horse", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse")))
	assert.Equal(t, model.RolePatient, user.Role, "self-registration never grants staff")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	repo.emailExists = true
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Name:     "Alice Tan",
		Email:    "alice@example.com",
		Phone:    "+60123456789",
		Password: "correct horse",
	})
	require.Error(t, err)
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrConflict, appErr.Code)
	assert.Nil(t, repo.created)
}

func TestUpdateUserEmailConflict(t *testing.T) {
	repo := newStubUserRepo()
	user := seedUser(repo, "correct horse")
	repo.emailExists = true
	svc := newTestService(repo)

	newEmail := "taken@example.com"
	_, err := svc.UpdateUser(context.Background(), user.ID, &model.UpdateUserRequest{Email: &newEmail})
	require.Error(t, err)
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrConflict, appErr.Code)
}

func TestUpdateUserPartialFields(t *testing.T) {
	repo := newStubUserRepo()
	user := seedUser(repo, "correct horse")
	svc := newTestService(repo)

	phone := "+60198765432"
	address := "12 Jalan Ampang, Kuala Lumpur"
	weight := 62.5
	updated, err := svc.UpdateUser(context.Background(), user.ID, &model.UpdateUserRequest{
		Phone:   &phone,
		Address: &address,
		Weight:  &weight,
	})
	require.NoError(t, err)

	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, address, updated.Address)
	require.NotNil(t, updated.Weight)
	assert.Equal(t, weight, *updated.Weight)
	assert.Nil(t, updated.Height, "unset fields are untouched")
	assert.Equal(t, "Alice Tan", updated.Name, "unset fields are untouched")
	require.NotNil(t, repo.updated)
}

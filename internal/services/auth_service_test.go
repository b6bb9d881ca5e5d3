package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Learnspoint11/moryastationery/internal/models"
	"github.com/Learnspoint11/moryastationery/internal/repository"
	"github.com/Learnspoint11/moryastationery/internal/services"
)

func newAuthService(users repository.UserRepository, sender *recordingSender, limiter services.OTPLimiter) *services.AuthService {
	return services.NewAuthService(users, sender, limiter, 5*time.Minute, zap.NewNop().Sugar())
}

func TestRegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	users := newMemoryUserRepo()
	svc := newAuthService(users, &recordingSender{}, nil)

	created, err := svc.Register(ctx, "alice", "pw1234")
	require.NoError(t, err)
	require.False(t, created.ID.IsZero())
	require.True(t, created.IsVerified)
	require.NotEqual(t, "pw1234", created.PasswordHash)

	_, err = svc.Register(ctx, "alice", "other-password")
	require.ErrorIs(t, err, services.ErrDuplicateUsername)

	user, err := svc.Login(ctx, "alice", "pw1234")
	require.NoError(t, err)
	require.Equal(t, created.ID, user.ID)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	users := newMemoryUserRepo()
	svc := newAuthService(users, &recordingSender{}, nil)

	_, err := svc.Register(ctx, "alice", "pw1234")
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, "alice", "nope99")
	_, unknownUser := svc.Login(ctx, "mallory", "pw1234")

	require.ErrorIs(t, wrongPassword, services.ErrInvalidCredentials)
	require.ErrorIs(t, unknownUser, services.ErrInvalidCredentials)
	require.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestSendAndVerifyOTP(t *testing.T) {
	ctx := context.Background()
	users := newMemoryUserRepo()
	sender := &recordingSender{}
	svc := newAuthService(users, sender, nil)

	created, err := svc.Register(ctx, "alice", "pw1234")
	require.NoError(t, err)
	userID := created.ID.Hex()

	require.NoError(t, svc.SendOTP(ctx, userID, "9999999999"))
	require.Equal(t, "9999999999", sender.lastMobile)
	require.Len(t, sender.lastCode, 6)

	stored := users.get(t, userID)
	require.Equal(t, sender.lastCode, stored.OTPCode)
	require.Equal(t, "9999999999", stored.Mobile)
	require.NotNil(t, stored.OTPExpiresAt)

	// A wrong six digit value is rejected and leaves the code in place.
	wrong := "111111"
	if wrong == sender.lastCode {
		wrong = "222222"
	}
	require.ErrorIs(t, svc.VerifyOTP(ctx, userID, wrong), services.ErrInvalidOrExpiredOTP)
	require.Equal(t, sender.lastCode, users.get(t, userID).OTPCode)

	require.NoError(t, svc.VerifyOTP(ctx, userID, sender.lastCode))

	stored = users.get(t, userID)
	require.True(t, stored.IsVerified)
	require.Empty(t, stored.OTPCode)
	require.Nil(t, stored.OTPExpiresAt)

	// The code was cleared on success, so it cannot be replayed.
	require.ErrorIs(t, svc.VerifyOTP(ctx, userID, sender.lastCode), services.ErrInvalidOrExpiredOTP)
}

func TestVerifyOTPAcceptsPaddedInput(t *testing.T) {
	ctx := context.Background()
	users := newMemoryUserRepo()
	sender := &recordingSender{}
	svc := newAuthService(users, sender, nil)

	created, err := svc.Register(ctx, "alice", "pw1234")
	require.NoError(t, err)
	userID := created.ID.Hex()

	require.NoError(t, svc.SendOTP(ctx, userID, "9999999999"))
	require.NoError(t, svc.VerifyOTP(ctx, userID, " "+sender.lastCode+" "))
}

func TestExpiredOTPIsRejectedAndPurged(t *testing.T) {
	ctx := context.Background()
	users := newMemoryUserRepo()
	sender := &recordingSender{}
	svc := newAuthService(users, sender, nil)

	created, err := svc.Register(ctx, "alice", "pw1234")
	require.NoError(t, err)
	userID := created.ID.Hex()

	require.NoError(t, svc.SendOTP(ctx, userID, "9999999999"))

	users.mutate(t, userID, func(u *models.User) {
		past := time.Now().Add(-time.Minute)
		u.OTPExpiresAt = &past
	})

	// Even the exact code fails once the window has elapsed, and the
	// failed attempt purges the stale code.
	require.ErrorIs(t, svc.VerifyOTP(ctx, userID, sender.lastCode), services.ErrInvalidOrExpiredOTP)

	stored := users.get(t, userID)
	require.Empty(t, stored.OTPCode)
	require.Nil(t, stored.OTPExpiresAt)
}

func TestReissueOverwritesOutstandingCode(t *testing.T) {
	ctx := context.Background()
	users := newMemoryUserRepo()
	sender := &recordingSender{}
	svc := newAuthService(users, sender, nil)

	created, err := svc.Register(ctx, "alice", "pw1234")
	require.NoError(t, err)
	userID := created.ID.Hex()

	require.NoError(t, svc.SendOTP(ctx, userID, "9999999999"))
	first := sender.lastCode

	for sender.lastCode == first {
		require.NoError(t, svc.SendOTP(ctx, userID, "9000000001"))
	}

	require.ErrorIs(t, svc.VerifyOTP(ctx, userID, first), services.ErrInvalidOrExpiredOTP)
	require.NoError(t, svc.VerifyOTP(ctx, userID, sender.lastCode))
	require.Equal(t, "9000000001", users.get(t, userID).Mobile)
}

func TestSendFailureSurfacesButPersistsCode(t *testing.T) {
	ctx := context.Background()
	users := newMemoryUserRepo()
	sender := &recordingSender{fail: true}
	svc := newAuthService(users, sender, nil)

	created, err := svc.Register(ctx, "alice", "pw1234")
	require.NoError(t, err)
	userID := created.ID.Hex()

	require.ErrorIs(t, svc.SendOTP(ctx, userID, "9999999999"), services.ErrOTPSendFailed)

	// The code was written before dispatch, so it is still valid.
	stored := users.get(t, userID)
	require.NotEmpty(t, stored.OTPCode)
	require.NoError(t, svc.VerifyOTP(ctx, userID, stored.OTPCode))
}

func TestSendOTPRateLimited(t *testing.T) {
	ctx := context.Background()
	users := newMemoryUserRepo()
	sender := &recordingSender{}
	limiter := &stubLimiter{allowed: true}
	svc := newAuthService(users, sender, limiter)

	created, err := svc.Register(ctx, "alice", "pw1234")
	require.NoError(t, err)
	userID := created.ID.Hex()

	require.NoError(t, svc.SendOTP(ctx, userID, "9999999999"))

	limiter.allowed = false
	require.ErrorIs(t, svc.SendOTP(ctx, userID, "9999999999"), services.ErrOTPRateLimited)
}

func TestSendOTPUnknownUser(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(newMemoryUserRepo(), &recordingSender{}, nil)

	err := svc.SendOTP(ctx, primitive.NewObjectID().Hex(), "9999999999")
	require.ErrorIs(t, err, services.ErrUserNotFound)
}

type recordingSender struct {
	fail       bool
	lastMobile string
	lastCode   string
}

func (s *recordingSender) Send(_ context.Context, mobile, code string) error {
	s.lastMobile = mobile
	s.lastCode = code
	if s.fail {
		return errors.New("gateway unreachable")
	}
	return nil
}

type stubLimiter struct {
	allowed bool
}

func (l *stubLimiter) Allow(context.Context, string) (bool, error) {
	return l.allowed, nil
}

type memoryUserRepo struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]models.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return repository.ErrDuplicate
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	r.users[u.ID.Hex()] = *u
	return nil
}

func (r *memoryUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			copied := u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memoryUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := u
	return &copied, nil
}

func (r *memoryUserRepo) Update(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID.Hex()]; !ok {
		return repository.ErrNotFound
	}
	u.UpdatedAt = time.Now().UTC()
	r.users[u.ID.Hex()] = *u
	return nil
}

func (r *memoryUserRepo) get(t *testing.T, id string) models.User {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	require.True(t, ok, "user %s not stored", id)
	return u
}

func (r *memoryUserRepo) mutate(t *testing.T, id string, fn func(*models.User)) {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	require.True(t, ok, "user %s not stored", id)
	fn(&u)
	r.users[id] = u
}

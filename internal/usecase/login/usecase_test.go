package login

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	userRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/ratelimit"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

type fakeUsers map[string]*domain.User

func (f fakeUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := f[email]; ok {
		return u, nil
	}
	return nil, userRepo.ErrUserNotFound
}

type fakeSessions struct {
	created []*domain.Session
	err     error
}

func (f *fakeSessions) Create(_ context.Context, s *domain.Session) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, s)
	return nil
}

type attemptStore struct {
	mu      sync.Mutex
	records map[string]domain.LoginAttempt
}

func (s *attemptStore) Get(_ context.Context, address string) (*domain.LoginAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[address]
	if !ok {
		return nil, domain.ErrLoginAttemptNotFound
	}
	return &rec, nil
}

func (s *attemptStore) Insert(_ context.Context, a *domain.LoginAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[a.Address] = *a
	return nil
}

func (s *attemptStore) Update(ctx context.Context, a *domain.LoginAttempt) error {
	return s.Insert(ctx, a)
}

func (s *attemptStore) Delete(_ context.Context, address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, address)
	return nil
}

type results map[string]int

func (r results) IncLoginAttempt(result string) { r[result]++ }

const (
	email    = "ann@example.com"
	password = "correct horse"
	address  = "192.0.2.10"
)

type fixture struct {
	uc       *UseCase
	clock    *clock
	sessions *fakeSessions
	store    *attemptStore
	results  results
	users    fakeUsers
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	f := &fixture{
		clock:    &clock{now: time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)},
		sessions: &fakeSessions{},
		store:    &attemptStore{records: make(map[string]domain.LoginAttempt)},
		results:  results{},
		users: fakeUsers{
			email: {ID: 7, Email: email, PasswordHash: string(hash), Role: domain.RoleUser, IsActive: true},
			"off@example.com": {
				ID: 8, Email: "off@example.com", PasswordHash: string(hash), Role: domain.RoleUser, IsActive: false,
			},
		},
	}

	limiter := ratelimit.NewLimiterWithClock(f.store, ratelimit.Options{MaxAttempts: 5, Window: 5 * time.Minute},
		nil, f.clock, logger.Nop())
	f.uc = NewUseCase(f.users, f.sessions, limiter, f.results, time.Hour, logger.Nop())
	f.uc.timeProvider = f.clock
	return f
}

func (f *fixture) login(pass string) (*Response, error) {
	return f.uc.Execute(context.Background(), &Request{Email: email, Password: pass, Address: address})
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(t)

	resp, err := f.login(password)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, int64(7), resp.UserID)
	assert.Equal(t, "user", resp.Role)
	assert.Equal(t, f.clock.now.Add(time.Hour), resp.ExpiresAt)
	require.Len(t, f.sessions.created, 1)
	assert.Equal(t, resp.Token, f.sessions.created[0].Token)
	assert.Equal(t, 1, f.results[resultSuccess])
}

func TestExecute_InvalidCredentials(t *testing.T) {
	f := newFixture(t)

	_, err := f.login("wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.uc.Execute(context.Background(), &Request{Email: "ghost@example.com", Password: password, Address: address})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.uc.Execute(context.Background(), &Request{Email: "off@example.com", Password: password, Address: address})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	assert.Equal(t, 3, f.store.records[address].Attempts)
	assert.Equal(t, 3, f.results[resultFailure])
	assert.Empty(t, f.sessions.created)
}

func TestExecute_BlockedAfterFiveFailures(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 5; i++ {
		_, err := f.login("wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
		f.clock.now = f.clock.now.Add(time.Second)
	}

	_, err := f.login(password)
	var limited *ratelimit.RateLimitedError
	require.ErrorAs(t, err, &limited)
	assert.Greater(t, limited.RetryAfterMinutes, 0)
	assert.LessOrEqual(t, limited.RetryAfterMinutes, 5)
	assert.ErrorIs(t, err, ratelimit.ErrTooManyAttempts)
	assert.Equal(t, 1, f.results[resultBlocked])
	assert.Empty(t, f.sessions.created)

	f.clock.now = f.clock.now.Add(5*time.Minute + time.Second)
	_, err = f.login(password)
	require.NoError(t, err)
}

func TestExecute_SuccessClearsCounter(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 3; i++ {
		_, _ = f.login("wrong")
	}
	require.Equal(t, 3, f.store.records[address].Attempts)

	_, err := f.login(password)
	require.NoError(t, err)
	_, ok := f.store.records[address]
	assert.False(t, ok)

	_, _ = f.login("wrong")
	assert.Equal(t, 1, f.store.records[address].Attempts)
}

func TestExecute_Errors(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{Email: " ", Password: password, Address: address})
	assert.ErrorIs(t, err, ErrInvalidInput)

	f.sessions.err = errors.New("connection refused")
	_, err = f.login(password)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestDummyHash_MatchesStoredHashCost(t *testing.T) {
	cost, err := bcrypt.Cost(dummyHash)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

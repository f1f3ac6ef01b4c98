package session_test

import (
	"context"
	"database/sql"
	"time"

	"github.com/beanhaus/go-session"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/uptrace/bun"
)

type testLogger struct{}

func (testLogger) Debug(string, ...any) {}
func (testLogger) Info(string, ...any)  {}
func (testLogger) Warn(string, ...any)  {}
func (testLogger) Error(string, ...any) {}

// MockUserTracker implements session.UserTracker
type MockUserTracker struct {
	mock.Mock
}

func (m *MockUserTracker) GetByIdentifier(ctx context.Context, identifier string) (*session.User, error) {
	args := m.Called(ctx, identifier)
	if u, ok := args.Get(0).(*session.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserTracker) TrackAttemptedLogin(ctx context.Context, user *session.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserTracker) TrackSucccessfulLogin(ctx context.Context, user *session.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockUsers implements session.Users. The embedded interface covers the
// repository surface the tests never touch; calling an unstubbed method
// panics, which is what we want.
type MockUsers struct {
	mock.Mock
	session.Users
}

func (m *MockUsers) GetByIdentifier(ctx context.Context, identifier string, criteria ...repository.SelectCriteria) (*session.User, error) {
	args := m.Called(ctx, identifier)
	if u, ok := args.Get(0).(*session.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) CreateTx(ctx context.Context, tx bun.IDB, record *session.User, criteria ...repository.InsertCriteria) (*session.User, error) {
	args := m.Called(ctx, tx, record)
	if u, ok := args.Get(0).(*session.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) TrackAttemptedLogin(ctx context.Context, user *session.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUsers) TrackSucccessfulLogin(ctx context.Context, user *session.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUsers) SetResetToken(ctx context.Context, id uuid.UUID, secret string, expiresAt time.Time) error {
	args := m.Called(ctx, id, secret, expiresAt)
	return args.Error(0)
}

func (m *MockUsers) RedeemResetToken(ctx context.Context, secret, passwordHash string) (*session.User, error) {
	args := m.Called(ctx, secret, passwordHash)
	if u, ok := args.Get(0).(*session.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockRepositoryManager implements session.RepositoryManager
type MockRepositoryManager struct {
	mock.Mock
}

func (m *MockRepositoryManager) Validate() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockRepositoryManager) MustValidate() {
	m.Called()
}

func (m *MockRepositoryManager) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	args := m.Called(ctx, opts, f)
	return args.Error(0)
}

func (m *MockRepositoryManager) Users() session.Users {
	args := m.Called()
	return args.Get(0).(session.Users)
}

// MockActivitySink implements session.ActivitySink
type MockActivitySink struct {
	mock.Mock
}

func (m *MockActivitySink) Record(ctx context.Context, event session.ActivityEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockDispatcher implements session.Dispatcher
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) SendResetMessage(ctx context.Context, destination, secret, displayName string) error {
	args := m.Called(ctx, destination, secret, displayName)
	return args.Error(0)
}

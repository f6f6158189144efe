package service

import (
	"context"
	"time"

	"croulette/events"
	"croulette/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByUserID(ctx context.Context, userID int64) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, userID int64, username string, initialBalance int64) (*models.User, error) {
	args := m.Called(ctx, userID, username, initialBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) AddBalance(ctx context.Context, userID int64, amount int64) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

func (m *MockUserRepository) DeductBalance(ctx context.Context, userID int64, amount int64) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

// MockBalanceHistoryRepository is a mock implementation of BalanceHistoryRepository
type MockBalanceHistoryRepository struct {
	mock.Mock
}

func (m *MockBalanceHistoryRepository) Record(ctx context.Context, history *models.BalanceHistory) error {
	args := m.Called(ctx, history)
	return args.Error(0)
}

func (m *MockBalanceHistoryRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*models.BalanceHistory, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BalanceHistory), args.Error(1)
}

// MockSpinRepository is a mock implementation of SpinRepository
type MockSpinRepository struct {
	mock.Mock
}

func (m *MockSpinRepository) Create(ctx context.Context, spin *models.Spin) error {
	args := m.Called(ctx, spin)
	return args.Error(0)
}

func (m *MockSpinRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*models.Spin, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Spin), args.Error(1)
}

func (m *MockSpinRepository) GetStats(ctx context.Context, userID int64) (*models.SpinStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SpinStats), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork. Repositories are
// plain fields set with SetRepositories; transaction calls go through mock.
type MockUnitOfWork struct {
	mock.Mock
	userRepo           UserRepository
	balanceHistoryRepo BalanceHistoryRepository
	spinRepo           SpinRepository
	eventPublisher     EventPublisher
}

// SetRepositories wires the repositories returned by the getters
func (m *MockUnitOfWork) SetRepositories(userRepo UserRepository, balanceHistoryRepo BalanceHistoryRepository, spinRepo SpinRepository, eventPublisher EventPublisher) {
	m.userRepo = userRepo
	m.balanceHistoryRepo = balanceHistoryRepo
	m.spinRepo = spinRepo
	m.eventPublisher = eventPublisher
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) UserRepository() UserRepository                     { return m.userRepo }
func (m *MockUnitOfWork) BalanceHistoryRepository() BalanceHistoryRepository { return m.balanceHistoryRepo }
func (m *MockUnitOfWork) SpinRepository() SpinRepository                     { return m.spinRepo }
func (m *MockUnitOfWork) EventBus() EventPublisher                           { return m.eventPublisher }

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) CreateForScope(scope models.Scope) UnitOfWork {
	args := m.Called(scope)
	return args.Get(0).(UnitOfWork)
}

// MockCooldownTracker is a mock implementation of CooldownTracker
type MockCooldownTracker struct {
	mock.Mock
}

func (m *MockCooldownTracker) Reserve(key string, d time.Duration) (time.Duration, bool) {
	args := m.Called(key, d)
	return args.Get(0).(time.Duration), args.Bool(1)
}

func (m *MockCooldownTracker) Release(key string) {
	m.Called(key)
}

func (m *MockCooldownTracker) Remaining(key string) time.Duration {
	args := m.Called(key)
	return args.Get(0).(time.Duration)
}

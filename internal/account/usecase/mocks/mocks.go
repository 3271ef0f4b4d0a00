// Package mocks provides mock implementations of the account use case interfaces for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	accountDomain "github.com/allisson/clinicnotes/internal/account/domain"
	cryptoDomain "github.com/allisson/clinicnotes/internal/crypto/domain"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

// NewMockAccountRepository creates a MockAccountRepository that asserts its expectations on cleanup.
func NewMockAccountRepository(t testingT) *MockAccountRepository {
	m := &MockAccountRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Save mocks the Save method.
func (m *MockAccountRepository) Save(ctx context.Context, account *accountDomain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// Get mocks the Get method.
func (m *MockAccountRepository) Get(ctx context.Context) (*accountDomain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountDomain.Account), args.Error(1)
}

// Exists mocks the Exists method.
func (m *MockAccountRepository) Exists(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

// MockLifecycle is a mock implementation of Lifecycle.
type MockLifecycle struct {
	mock.Mock
}

// NewMockLifecycle creates a MockLifecycle that asserts its expectations on cleanup.
func NewMockLifecycle(t testingT) *MockLifecycle {
	m := &MockLifecycle{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// CreateAccount mocks the CreateAccount method.
func (m *MockLifecycle) CreateAccount(username string, password []byte) (*accountDomain.Account, error) {
	args := m.Called(username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountDomain.Account), args.Error(1)
}

// Authenticate mocks the Authenticate method.
func (m *MockLifecycle) Authenticate(account *accountDomain.Account, password []byte) bool {
	args := m.Called(account, password)
	return args.Bool(0)
}

// Unlock mocks the Unlock method.
func (m *MockLifecycle) Unlock(account *accountDomain.Account, password []byte) (*cryptoDomain.Dek, error) {
	args := m.Called(account, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.Dek), args.Error(1)
}

// ChangePassword mocks the ChangePassword method.
func (m *MockLifecycle) ChangePassword(
	account *accountDomain.Account,
	current, next []byte,
) (*accountDomain.Account, error) {
	args := m.Called(account, current, next)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountDomain.Account), args.Error(1)
}

// MockAccountUseCase is a mock implementation of AccountUseCase.
type MockAccountUseCase struct {
	mock.Mock
}

// NewMockAccountUseCase creates a MockAccountUseCase that asserts its expectations on cleanup.
func NewMockAccountUseCase(t testingT) *MockAccountUseCase {
	m := &MockAccountUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Create mocks the Create method.
func (m *MockAccountUseCase) Create(
	ctx context.Context,
	username string,
	password []byte,
) (*accountDomain.Identity, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountDomain.Identity), args.Error(1)
}

// Authenticate mocks the Authenticate method.
func (m *MockAccountUseCase) Authenticate(
	ctx context.Context,
	password []byte,
) (*accountDomain.Identity, bool, error) {
	args := m.Called(ctx, password)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*accountDomain.Identity), args.Bool(1), args.Error(2)
}

// Unlock mocks the Unlock method.
func (m *MockAccountUseCase) Unlock(
	ctx context.Context,
	password []byte,
) (*accountDomain.Identity, *cryptoDomain.Dek, error) {
	args := m.Called(ctx, password)
	var identity *accountDomain.Identity
	if v := args.Get(0); v != nil {
		identity = v.(*accountDomain.Identity)
	}
	var dek *cryptoDomain.Dek
	if v := args.Get(1); v != nil {
		dek = v.(*cryptoDomain.Dek)
	}
	return identity, dek, args.Error(2)
}

// ChangePassword mocks the ChangePassword method.
func (m *MockAccountUseCase) ChangePassword(ctx context.Context, current, next []byte) error {
	args := m.Called(ctx, current, next)
	return args.Error(0)
}

// Status mocks the Status method.
func (m *MockAccountUseCase) Status(ctx context.Context) (*accountDomain.Identity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountDomain.Identity), args.Error(1)
}

// Package mocks provides mock implementations of the crypto service interfaces for testing.
package mocks

import (
	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/allisson/clinicnotes/internal/crypto/domain"
)

// MockKeyDeriver is a mock implementation of KeyDeriver.
type MockKeyDeriver struct {
	mock.Mock
}

// NewMockKeyDeriver creates a MockKeyDeriver that asserts its expectations on cleanup.
func NewMockKeyDeriver(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockKeyDeriver {
	m := &MockKeyDeriver{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// DeriveKey mocks the DeriveKey method.
func (m *MockKeyDeriver) DeriveKey(password []byte, params cryptoDomain.KdfParams) ([]byte, error) {
	args := m.Called(password, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// GenerateSalt mocks the GenerateSalt method.
func (m *MockKeyDeriver) GenerateSalt() ([]byte, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockKeyManager is a mock implementation of KeyManager.
type MockKeyManager struct {
	mock.Mock
}

// NewMockKeyManager creates a MockKeyManager that asserts its expectations on cleanup.
func NewMockKeyManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockKeyManager {
	m := &MockKeyManager{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// GenerateDek mocks the GenerateDek method.
func (m *MockKeyManager) GenerateDek() (*cryptoDomain.Dek, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.Dek), args.Error(1)
}

// WrapDek mocks the WrapDek method.
func (m *MockKeyManager) WrapDek(
	kek []byte,
	dek *cryptoDomain.Dek,
	alg cryptoDomain.Algorithm,
) (cryptoDomain.WrappedDek, error) {
	args := m.Called(kek, dek, alg)
	return args.Get(0).(cryptoDomain.WrappedDek), args.Error(1)
}

// UnwrapDek mocks the UnwrapDek method.
func (m *MockKeyManager) UnwrapDek(kek []byte, wrapped cryptoDomain.WrappedDek) (*cryptoDomain.Dek, error) {
	args := m.Called(kek, wrapped)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.Dek), args.Error(1)
}

// MockRecordCipher is a mock implementation of RecordCipher.
type MockRecordCipher struct {
	mock.Mock
}

// NewMockRecordCipher creates a MockRecordCipher that asserts its expectations on cleanup.
func NewMockRecordCipher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRecordCipher {
	m := &MockRecordCipher{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// EncryptRecord mocks the EncryptRecord method.
func (m *MockRecordCipher) EncryptRecord(
	plaintext []byte,
	dek *cryptoDomain.Dek,
) ([]byte, []byte, error) {
	args := m.Called(plaintext, dek)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]byte), args.Get(1).([]byte), args.Error(2)
}

// DecryptRecord mocks the DecryptRecord method.
func (m *MockRecordCipher) DecryptRecord(ciphertext, nonce []byte, dek *cryptoDomain.Dek) ([]byte, error) {
	args := m.Called(ciphertext, nonce, dek)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

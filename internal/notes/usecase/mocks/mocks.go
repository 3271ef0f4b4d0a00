// Package mocks provides mock implementations of the note use case interfaces for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/allisson/clinicnotes/internal/crypto/domain"
	notesDomain "github.com/allisson/clinicnotes/internal/notes/domain"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockRecordRepository is a mock implementation of RecordRepository.
type MockRecordRepository struct {
	mock.Mock
}

// NewMockRecordRepository creates a MockRecordRepository that asserts its expectations on cleanup.
func NewMockRecordRepository(t testingT) *MockRecordRepository {
	m := &MockRecordRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Save mocks the Save method.
func (m *MockRecordRepository) Save(ctx context.Context, record *notesDomain.EncryptedRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// Get mocks the Get method.
func (m *MockRecordRepository) Get(ctx context.Context, id string) (*notesDomain.EncryptedRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notesDomain.EncryptedRecord), args.Error(1)
}

// List mocks the List method.
func (m *MockRecordRepository) List(ctx context.Context) ([]*notesDomain.EncryptedRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notesDomain.EncryptedRecord), args.Error(1)
}

// Delete mocks the Delete method.
func (m *MockRecordRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockNoteCodec is a mock implementation of NoteCodec.
type MockNoteCodec struct {
	mock.Mock
}

// NewMockNoteCodec creates a MockNoteCodec that asserts its expectations on cleanup.
func NewMockNoteCodec(t testingT) *MockNoteCodec {
	m := &MockNoteCodec{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Encode mocks the Encode method.
func (m *MockNoteCodec) Encode(
	note *notesDomain.Note,
	dek *cryptoDomain.Dek,
) (*notesDomain.EncryptedRecord, error) {
	args := m.Called(note, dek)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notesDomain.EncryptedRecord), args.Error(1)
}

// Decode mocks the Decode method.
func (m *MockNoteCodec) Decode(record *notesDomain.EncryptedRecord, dek *cryptoDomain.Dek) (*notesDomain.Note, error) {
	args := m.Called(record, dek)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notesDomain.Note), args.Error(1)
}

// MockNoteUseCase is a mock implementation of NoteUseCase.
type MockNoteUseCase struct {
	mock.Mock
}

// NewMockNoteUseCase creates a MockNoteUseCase that asserts its expectations on cleanup.
func NewMockNoteUseCase(t testingT) *MockNoteUseCase {
	m := &MockNoteUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Create mocks the Create method.
func (m *MockNoteUseCase) Create(
	ctx context.Context,
	dek *cryptoDomain.Dek,
	input notesDomain.NoteInput,
) (*notesDomain.Note, error) {
	args := m.Called(ctx, dek, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notesDomain.Note), args.Error(1)
}

// Update mocks the Update method.
func (m *MockNoteUseCase) Update(
	ctx context.Context,
	dek *cryptoDomain.Dek,
	id string,
	input notesDomain.NoteInput,
) (*notesDomain.Note, error) {
	args := m.Called(ctx, dek, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notesDomain.Note), args.Error(1)
}

// Get mocks the Get method.
func (m *MockNoteUseCase) Get(ctx context.Context, dek *cryptoDomain.Dek, id string) (*notesDomain.Note, error) {
	args := m.Called(ctx, dek, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notesDomain.Note), args.Error(1)
}

// List mocks the List method.
func (m *MockNoteUseCase) List(ctx context.Context, dek *cryptoDomain.Dek) (*notesDomain.NoteList, error) {
	args := m.Called(ctx, dek)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notesDomain.NoteList), args.Error(1)
}

// Delete mocks the Delete method.
func (m *MockNoteUseCase) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockStorageManager is a mock of the StorageMgr used to simulate file storage in tests.
type MockStorageManager struct {
	mock.Mock
}

func (m *MockStorageManager) Save(ctx context.Context, filename, contentType string, data []byte) error {
	args := m.Called(ctx, filename, contentType, data)
	return args.Error(0)
}

func (m *MockStorageManager) Open(ctx context.Context, filename string) ([]byte, string, error) {
	args := m.Called(ctx, filename)
	var data []byte
	if args.Get(0) != nil {
		data = args.Get(0).([]byte)
	}
	return data, args.String(1), args.Error(2)
}

func (m *MockStorageManager) Remove(ctx context.Context, filename string) error {
	args := m.Called(ctx, filename)
	return args.Error(0)
}

package mocks

import (
	"github.com/stretchr/testify/mock"

	"taskhub/internal/interfaces"
)

// MockDatabaseManager is a mock of the DatabaseManager used to hand a pgxmock pool to handlers in tests.
type MockDatabaseManager struct {
	mock.Mock
}

func (m *MockDatabaseManager) GetPool() interfaces.PgxPoolIface {
	args := m.Called()
	return args.Get(0).(interfaces.PgxPoolIface)
}

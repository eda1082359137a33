package mocks

import "github.com/stretchr/testify/mock"

// MockMailManager is a mock of the MailManager.
// It records the arguments of every sent mail so tests can assert on the recipient and reset link.
type MockMailManager struct {
	mock.Mock
}

func (m *MockMailManager) SendPasswordResetMail(email, username, resetURL string) error {
	args := m.Called(email, username, resetURL)
	return args.Error(0)
}

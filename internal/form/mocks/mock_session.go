package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockSession struct {
	mock.Mock
}

func (m *MockSession) IsAuthenticated() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockSession) Register(ctx context.Context, name, email, password string) error {
	args := m.Called(ctx, name, email, password)
	return args.Error(0)
}

func (m *MockSession) Login(ctx context.Context, email, password string) error {
	args := m.Called(ctx, email, password)
	return args.Error(0)
}

func (m *MockSession) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSession) Error() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockSession) ClearError() {
	m.Called()
}

type MockNavigator struct {
	mock.Mock
}

func (m *MockNavigator) NavigateTo(path string) {
	m.Called(path)
}

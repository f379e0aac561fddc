package mocks

import (
	"context"

	"netlister/internal/client"

	"github.com/stretchr/testify/mock"
)

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Create(ctx context.Context, resource string, payload any) (*client.Record, error) {
	args := m.Called(ctx, resource, payload)
	if f, ok := args.Get(0).(func(context.Context, string, any) *client.Record); ok {
		return f(ctx, resource, payload), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Record), args.Error(1)
}

type MockNavigator struct {
	mock.Mock
}

func (m *MockNavigator) NavigateTo(path string) {
	m.Called(path)
}

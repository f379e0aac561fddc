package mocks

import (
	"context"
	"io"
	"time"

	"netlister/internal/model"
	"netlister/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockNetlistService struct {
	mock.Mock
}

func (m *MockNetlistService) Create(ctx context.Context, body []byte) (*model.Netlist, error) {
	args := m.Called(ctx, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Netlist), args.Error(1)
}

func (m *MockNetlistService) List(ctx context.Context, limit, offset int) (*service.NetlistListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.NetlistListResult), args.Error(1)
}

func (m *MockNetlistService) Get(ctx context.Context, id string) (*model.Netlist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Netlist), args.Error(1)
}

func (m *MockNetlistService) Raw(ctx context.Context, id string) (io.ReadCloser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockNetlistService) RawURL(ctx context.Context, id string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, id, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockNetlistService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

package mocks

import (
	"context"

	"netlister/internal/model"
	"netlister/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockNetlistRepository struct {
	mock.Mock
}

func (m *MockNetlistRepository) Create(ctx context.Context, n *model.Netlist) (*model.Netlist, error) {
	args := m.Called(ctx, n)
	if f, ok := args.Get(0).(func(context.Context, *model.Netlist) *model.Netlist); ok {
		return f(ctx, n), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Netlist), args.Error(1)
}

func (m *MockNetlistRepository) FindByID(ctx context.Context, id string) (*model.Netlist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Netlist), args.Error(1)
}

func (m *MockNetlistRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Netlist], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Netlist]), args.Error(1)
}

func (m *MockNetlistRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

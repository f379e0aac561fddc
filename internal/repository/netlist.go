// Package repository contains data access abstractions. Implementations live
// in subpackages.
package repository

import (
	"context"

	"netlister/internal/model"
)

// NetlistRepository defines data access for netlist records using SQL queries only.
// No business logic here, strictly persistence operations.
type NetlistRepository interface {
	// Create inserts a new netlist record and returns the stored row.
	Create(ctx context.Context, n *model.Netlist) (*model.Netlist, error)

	// FindByID returns a netlist by its ID, or sql.ErrNoRows.
	FindByID(ctx context.Context, id string) (*model.Netlist, error)

	// List returns a page of netlists and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Netlist], error)

	// Delete removes a netlist by ID. A missing row is not an error.
	Delete(ctx context.Context, id string) error
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}

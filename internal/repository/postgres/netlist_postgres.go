package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"netlister/internal/model"
	"netlister/internal/repository"
)

// NetlistPostgres is a PostgreSQL implementation of repository.NetlistRepository.
// Components and nets are stored as JSONB.
type NetlistPostgres struct {
	db *sql.DB
}

// NewNetlistPostgres creates a new NetlistPostgres repository.
func NewNetlistPostgres(db *sql.DB) *NetlistPostgres {
	return &NetlistPostgres{db: db}
}

var _ repository.NetlistRepository = (*NetlistPostgres)(nil)

const netlistColumns = `id, name, description, components, nets, component_count, net_count, storage_path, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNetlist(s rowScanner) (*model.Netlist, error) {
	var (
		n          model.Netlist
		components []byte
		nets       []byte
	)
	if err := s.Scan(
		&n.ID,
		&n.Name,
		&n.Description,
		&components,
		&nets,
		&n.ComponentCount,
		&n.NetCount,
		&n.StoragePath,
		&n.CreatedAt,
	); err != nil {
		return nil, err
	}
	n.Components = json.RawMessage(components)
	n.Nets = json.RawMessage(nets)
	return &n, nil
}

// Create inserts a new netlist row and returns the stored record.
func (r *NetlistPostgres) Create(ctx context.Context, n *model.Netlist) (*model.Netlist, error) {
	const q = `
		INSERT INTO netlists (id, name, description, components, nets, component_count, net_count, storage_path, created_at)
		VALUES ($1, $2, $3, $4::jsonb, $5::jsonb, $6, $7, $8, $9)
		RETURNING ` + netlistColumns
	row := r.db.QueryRowContext(ctx, q,
		n.ID,
		n.Name,
		n.Description,
		string(n.Components),
		string(n.Nets),
		n.ComponentCount,
		n.NetCount,
		n.StoragePath,
		n.CreatedAt,
	)
	return scanNetlist(row)
}

// FindByID fetches a single netlist by its ID.
func (r *NetlistPostgres) FindByID(ctx context.Context, id string) (*model.Netlist, error) {
	const q = `SELECT ` + netlistColumns + ` FROM netlists WHERE id = $1`
	return scanNetlist(r.db.QueryRowContext(ctx, q, id))
}

// List returns netlists newest first using LIMIT/OFFSET pagination and a total count.
func (r *NetlistPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Netlist], error) {
	const qCount = `SELECT COUNT(*) FROM netlists`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `SELECT ` + netlistColumns + ` FROM netlists
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Netlist, 0)
	for rows.Next() {
		n, err := scanNetlist(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Netlist]{Items: items, Total: total}, nil
}

// Delete removes a netlist by ID. It does not return an error if the row does not exist.
func (r *NetlistPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM netlists WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

// Package color implements the palette repository using PostgreSQL.
package color

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/phonebook/internal/adapter/postgres"
	"github.com/heartmarshall/phonebook/internal/domain"
)

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides palette persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new color repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// All returns every color ordered by id.
func (r *Repo) All(ctx context.Context) ([]domain.ColorRecord, error) {
	query, args, err := builder.Select("id", "name", "hex").From("colors").OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select colors: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select colors: %w", err)
	}

	colors, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ColorRecord, error) {
		var c domain.ColorRecord
		err := row.Scan(&c.ID, &c.Name, &c.Hex)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan colors: %w", err)
	}

	return colors, nil
}

// InsertAll inserts or replaces the given colors keeping their ids, then
// moves the identity sequence past the largest id.
func (r *Repo) InsertAll(ctx context.Context, colors []domain.ColorRecord) error {
	if len(colors) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, c := range colors {
		query, args, err := builder.Insert("colors").Columns("id", "name", "hex").
			Values(c.ID, c.Name, c.Hex).
			Suffix("ON CONFLICT (id) DO UPDATE SET name = excluded.name, hex = excluded.hex").
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert color %d: %w", c.ID, err)
		}
		batch.Queue(query, args...)
	}
	batch.Queue(`SELECT setval(pg_get_serial_sequence('colors', 'id'), (SELECT MAX(id) FROM colors))`)

	results := postgres.QuerierFromCtx(ctx, r.pool).SendBatch(ctx, batch)
	for _, c := range colors {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return postgres.MapError(err, "color", c.ID)
		}
	}
	if _, err := results.Exec(); err != nil {
		_ = results.Close()
		return fmt.Errorf("advance colors sequence: %w", err)
	}

	return results.Close()
}

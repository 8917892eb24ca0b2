package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/heartmarshall/phonebook/internal/domain"
)

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// ColorRepo stores the color palette.
type ColorRepo struct {
	db *sql.DB
}

// NewColorRepo creates a new color repository.
func NewColorRepo(db *sql.DB) *ColorRepo {
	return &ColorRepo{db: db}
}

// All returns every color ordered by id.
func (r *ColorRepo) All(ctx context.Context) ([]domain.ColorRecord, error) {
	query, args, err := builder.Select("id", "name", "hex").From("colors").OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select colors: %w", err)
	}

	rows, err := QuerierFromCtx(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select colors: %w", err)
	}
	defer rows.Close()

	colors := []domain.ColorRecord{}
	for rows.Next() {
		var c domain.ColorRecord
		if err := rows.Scan(&c.ID, &c.Name, &c.Hex); err != nil {
			return nil, fmt.Errorf("scan color: %w", err)
		}
		colors = append(colors, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate colors: %w", err)
	}
	return colors, nil
}

// InsertAll inserts or replaces the given colors, keeping their ids.
func (r *ColorRepo) InsertAll(ctx context.Context, colors []domain.ColorRecord) error {
	if len(colors) == 0 {
		return nil
	}

	insert := builder.Insert("colors").Columns("id", "name", "hex").
		Suffix("ON CONFLICT (id) DO UPDATE SET name = excluded.name, hex = excluded.hex")
	for _, c := range colors {
		insert = insert.Values(c.ID, c.Name, c.Hex)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("build insert colors: %w", err)
	}
	if _, err := QuerierFromCtx(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return mapError(err, "colors", int64(len(colors)))
	}
	return nil
}

// Package contact implements the contact repository using PostgreSQL.
package contact

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

var columns = []string{
	"id", "name", "phone_number", "tag",
	"can_be_checked_off", "is_checked_off", "color_id", "in_trash",
}

const upsertSuffix = `ON CONFLICT (id) DO UPDATE SET
    name = excluded.name,
    phone_number = excluded.phone_number,
    tag = excluded.tag,
    can_be_checked_off = excluded.can_be_checked_off,
    is_checked_off = excluded.is_checked_off,
    color_id = excluded.color_id,
    in_trash = excluded.in_trash`

// The sequence never moves backwards, so ids of permanently deleted
// contacts are not handed out again.
const (
	advanceSequence   = `SELECT setval('contacts_id_seq', GREATEST((SELECT MAX(id) FROM contacts), (SELECT last_value FROM contacts_id_seq)))`
	advanceSequenceTo = `SELECT setval('contacts_id_seq', $1) WHERE $1 >= (SELECT last_value FROM contacts_id_seq)`
)

// Repo provides contact persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new contact repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// All returns every contact, trashed or not, ordered by id.
func (r *Repo) All(ctx context.Context) ([]domain.ContactRecord, error) {
	query, args, err := builder.Select(columns...).From("contacts").OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select contacts: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select contacts: %w", err)
	}

	contacts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ContactRecord, error) {
		return scanContact(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan contacts: %w", err)
	}

	return contacts, nil
}

// FindByID returns the contact with id or domain.ErrNotFound.
func (r *Repo) FindByID(ctx context.Context, id int64) (domain.ContactRecord, error) {
	query, args, err := builder.Select(columns...).From("contacts").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return domain.ContactRecord{}, fmt.Errorf("build select contact: %w", err)
	}

	rec, err := scanContact(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return domain.ContactRecord{}, postgres.MapError(err, "contact", id)
	}

	return rec, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// InsertAll inserts the contacts keeping their ids.
func (r *Repo) InsertAll(ctx context.Context, contacts []domain.ContactRecord) error {
	if len(contacts) == 0 {
		return nil
	}

	insert := builder.Insert("contacts").Columns(columns...)
	for _, c := range contacts {
		insert = insert.Values(c.ID, c.Name, c.PhoneNumber, c.Tag,
			c.CanBeCheckedOff, c.IsCheckedOff, c.ColorID, c.InTrash)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("build insert contacts: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "contacts", int64(len(contacts)))
	}
	if _, err := q.Exec(ctx, advanceSequence); err != nil {
		return fmt.Errorf("advance contacts sequence: %w", err)
	}

	return nil
}

// Save inserts rec under a fresh id when rec.ID is 0, otherwise inserts or
// replaces the row with rec.ID. Returns the stored id.
func (r *Repo) Save(ctx context.Context, rec domain.ContactRecord) (int64, error) {
	var insert sq.InsertBuilder
	if rec.ID == 0 {
		insert = builder.Insert("contacts").Columns(columns[1:]...).
			Values(rec.Name, rec.PhoneNumber, rec.Tag,
				rec.CanBeCheckedOff, rec.IsCheckedOff, rec.ColorID, rec.InTrash).
			Suffix("RETURNING id")
	} else {
		insert = builder.Insert("contacts").Columns(columns...).
			Values(rec.ID, rec.Name, rec.PhoneNumber, rec.Tag,
				rec.CanBeCheckedOff, rec.IsCheckedOff, rec.ColorID, rec.InTrash).
			Suffix(upsertSuffix + " RETURNING id")
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build save contact: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	var id int64
	if err := q.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, postgres.MapError(err, "contact", rec.ID)
	}

	// An explicit id may be ahead of the identity sequence.
	if rec.ID != 0 {
		if _, err := q.Exec(ctx, advanceSequenceTo, id); err != nil {
			return 0, fmt.Errorf("advance contacts sequence: %w", err)
		}
	}

	return id, nil
}

// Delete removes the contacts and returns the ids that existed.
func (r *Repo) Delete(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return []int64{}, nil
	}
	return r.deleteWhere(ctx, sq.Eq{"id": ids})
}

// DeleteTrashed removes every trashed contact in one statement and returns
// their ids.
func (r *Repo) DeleteTrashed(ctx context.Context) ([]int64, error) {
	return r.deleteWhere(ctx, sq.Eq{"in_trash": true})
}

func (r *Repo) deleteWhere(ctx context.Context, pred sq.Sqlizer) ([]int64, error) {
	query, args, err := builder.Delete("contacts").Where(pred).Suffix("RETURNING id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delete contacts: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("delete contacts: %w", err)
	}

	deleted, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("collect deleted ids: %w", err)
	}

	return deleted, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func scanContact(row pgx.Row) (domain.ContactRecord, error) {
	var c domain.ContactRecord
	err := row.Scan(&c.ID, &c.Name, &c.PhoneNumber, &c.Tag,
		&c.CanBeCheckedOff, &c.IsCheckedOff, &c.ColorID, &c.InTrash)
	return c, err
}

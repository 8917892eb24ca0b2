package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/heartmarshall/phonebook/internal/domain"
)

var contactColumns = []string{
	"id", "name", "phone_number", "tag",
	"can_be_checked_off", "is_checked_off", "color_id", "in_trash",
}

const upsertContactSuffix = `ON CONFLICT (id) DO UPDATE SET
    name = excluded.name,
    phone_number = excluded.phone_number,
    tag = excluded.tag,
    can_be_checked_off = excluded.can_be_checked_off,
    is_checked_off = excluded.is_checked_off,
    color_id = excluded.color_id,
    in_trash = excluded.in_trash`

// ContactRepo stores contact records.
type ContactRepo struct {
	db *sql.DB
}

// NewContactRepo creates a new contact repository.
func NewContactRepo(db *sql.DB) *ContactRepo {
	return &ContactRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (domain.ContactRecord, error) {
	var c domain.ContactRecord
	err := row.Scan(&c.ID, &c.Name, &c.PhoneNumber, &c.Tag,
		&c.CanBeCheckedOff, &c.IsCheckedOff, &c.ColorID, &c.InTrash)
	return c, err
}

// All returns every contact, trashed or not, ordered by id.
func (r *ContactRepo) All(ctx context.Context) ([]domain.ContactRecord, error) {
	query, args, err := builder.Select(contactColumns...).From("contacts").OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select contacts: %w", err)
	}

	rows, err := QuerierFromCtx(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select contacts: %w", err)
	}
	defer rows.Close()

	contacts := []domain.ContactRecord{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contacts: %w", err)
	}
	return contacts, nil
}

// FindByID returns the contact with id or domain.ErrNotFound.
func (r *ContactRepo) FindByID(ctx context.Context, id int64) (domain.ContactRecord, error) {
	query, args, err := builder.Select(contactColumns...).From("contacts").
		Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return domain.ContactRecord{}, fmt.Errorf("build select contact: %w", err)
	}

	c, err := scanContact(QuerierFromCtx(ctx, r.db).QueryRowContext(ctx, query, args...))
	if err != nil {
		return domain.ContactRecord{}, mapError(err, "contact", id)
	}
	return c, nil
}

// InsertAll inserts the contacts keeping their ids.
func (r *ContactRepo) InsertAll(ctx context.Context, contacts []domain.ContactRecord) error {
	if len(contacts) == 0 {
		return nil
	}

	insert := builder.Insert("contacts").Columns(contactColumns...)
	for _, c := range contacts {
		insert = insert.Values(c.ID, c.Name, c.PhoneNumber, c.Tag,
			c.CanBeCheckedOff, c.IsCheckedOff, c.ColorID, c.InTrash)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("build insert contacts: %w", err)
	}
	if _, err := QuerierFromCtx(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return mapError(err, "contacts", int64(len(contacts)))
	}
	return nil
}

// Save inserts rec under a fresh id when rec.ID is 0, otherwise inserts or
// replaces the row with rec.ID. Returns the stored id.
func (r *ContactRepo) Save(ctx context.Context, rec domain.ContactRecord) (int64, error) {
	var insert sq.InsertBuilder
	if rec.ID == 0 {
		insert = builder.Insert("contacts").Columns(contactColumns[1:]...).
			Values(rec.Name, rec.PhoneNumber, rec.Tag,
				rec.CanBeCheckedOff, rec.IsCheckedOff, rec.ColorID, rec.InTrash).
			Suffix("RETURNING id")
	} else {
		insert = builder.Insert("contacts").Columns(contactColumns...).
			Values(rec.ID, rec.Name, rec.PhoneNumber, rec.Tag,
				rec.CanBeCheckedOff, rec.IsCheckedOff, rec.ColorID, rec.InTrash).
			Suffix(upsertContactSuffix + " RETURNING id")
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build save contact: %w", err)
	}

	var id int64
	if err := QuerierFromCtx(ctx, r.db).QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, mapError(err, "contact", rec.ID)
	}
	return id, nil
}

// Delete removes the contacts and returns the ids that existed.
func (r *ContactRepo) Delete(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return []int64{}, nil
	}
	return r.deleteWhere(ctx, sq.Eq{"id": ids})
}

// DeleteTrashed removes every trashed contact in one statement and returns
// their ids.
func (r *ContactRepo) DeleteTrashed(ctx context.Context) ([]int64, error) {
	return r.deleteWhere(ctx, sq.Eq{"in_trash": true})
}

func (r *ContactRepo) deleteWhere(ctx context.Context, pred sq.Sqlizer) ([]int64, error) {
	query, args, err := builder.Delete("contacts").Where(pred).
		Suffix("RETURNING id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delete contacts: %w", err)
	}

	rows, err := QuerierFromCtx(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("delete contacts: %w", err)
	}
	defer rows.Close()

	deleted := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan deleted id: %w", err)
		}
		deleted = append(deleted, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deleted ids: %w", err)
	}
	return deleted, nil
}

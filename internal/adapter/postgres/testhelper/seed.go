package testhelper

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/phonebook/internal/domain"
)

// SeedColors inserts the default palette.
func SeedColors(t *testing.T, pool *pgxpool.Pool) []domain.ColorRecord {
	t.Helper()
	ctx := context.Background()

	for _, c := range domain.DefaultColors {
		_, err := pool.Exec(ctx,
			`INSERT INTO colors (id, name, hex) VALUES ($1, $2, $3)`,
			c.ID, c.Name, c.Hex,
		)
		if err != nil {
			t.Fatalf("testhelper: seed color %d: %v", c.ID, err)
		}
	}
	_, err := pool.Exec(ctx, `SELECT setval(pg_get_serial_sequence('colors', 'id'), (SELECT MAX(id) FROM colors))`)
	if err != nil {
		t.Fatalf("testhelper: advance colors sequence: %v", err)
	}

	return domain.DefaultColors
}

// SeedContact inserts a contact with a generated id and returns it.
// The palette must be seeded first.
func SeedContact(t *testing.T, pool *pgxpool.Pool, rec domain.ContactRecord) domain.ContactRecord {
	t.Helper()

	err := pool.QueryRow(context.Background(),
		`INSERT INTO contacts (name, phone_number, tag, can_be_checked_off, is_checked_off, color_id, in_trash)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		rec.Name, rec.PhoneNumber, rec.Tag, rec.CanBeCheckedOff, rec.IsCheckedOff, rec.ColorID, rec.InTrash,
	).Scan(&rec.ID)
	if err != nil {
		t.Fatalf("testhelper: seed contact %q: %v", rec.Name, err)
	}

	return rec
}

package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/phonebook/internal/domain"
)

// Init seeds the palette and the default contacts into empty tables and
// publishes the first snapshot. It is safe to call repeatedly: after the
// first success it is a no-op. A failed Init may be retried.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return nil
	}

	var snap snapshot
	var seededColors, seededContacts int
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		colors, err := s.colors.All(txCtx)
		if err != nil {
			return fmt.Errorf("read colors: %w", err)
		}
		if len(colors) == 0 {
			if err := s.colors.InsertAll(txCtx, domain.DefaultColors); err != nil {
				return fmt.Errorf("seed colors: %w", err)
			}
			seededColors = len(domain.DefaultColors)
		}

		contacts, err := s.contacts.All(txCtx)
		if err != nil {
			return fmt.Errorf("read contacts: %w", err)
		}
		if len(contacts) == 0 {
			if err := s.contacts.InsertAll(txCtx, domain.DefaultContacts); err != nil {
				return fmt.Errorf("seed contacts: %w", err)
			}
			seededContacts = len(domain.DefaultContacts)
		}

		snap, err = s.load(txCtx)
		return err
	})
	if err != nil {
		return classify("init store", err)
	}

	s.ready = true
	s.publish(snap)

	s.log.InfoContext(ctx, "contact store initialized",
		slog.Int("seeded_colors", seededColors),
		slog.Int("seeded_contacts", seededContacts),
		slog.Int("active", len(snap.active)),
		slog.Int("trashed", len(snap.trashed)),
	)
	return nil
}

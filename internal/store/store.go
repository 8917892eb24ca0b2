// Package store implements the contact repository: it owns the published
// active/trashed contact collections and the color palette, and applies
// every mutation as one "write, re-read, publish" unit.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/heartmarshall/phonebook/internal/domain"
	"github.com/heartmarshall/phonebook/internal/mapper"
	"github.com/heartmarshall/phonebook/internal/observable"
)

type colorTable interface {
	All(ctx context.Context) ([]domain.ColorRecord, error)
	InsertAll(ctx context.Context, colors []domain.ColorRecord) error
}

type contactTable interface {
	All(ctx context.Context) ([]domain.ContactRecord, error)
	InsertAll(ctx context.Context, contacts []domain.ContactRecord) error
	// Save inserts rec when rec.ID is 0, otherwise inserts or replaces the
	// row with that id. Returns the id of the stored row.
	Save(ctx context.Context, rec domain.ContactRecord) (int64, error)
	FindByID(ctx context.Context, id int64) (domain.ContactRecord, error)
	// Delete removes the rows and returns the ids that existed.
	Delete(ctx context.Context, ids []int64) ([]int64, error)
	// DeleteTrashed removes every row in the trash and returns their ids.
	DeleteTrashed(ctx context.Context) ([]int64, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Result reports which ids a batch operation touched. Ids that did not
// exist are skipped rather than failing the batch.
type Result struct {
	Affected []int64
	Skipped  []int64
}

// Store is the contact repository.
type Store struct {
	colors   colorTable
	contacts contactTable
	tx       txManager
	log      *slog.Logger

	// mu serializes Init and every mutation together with its republish.
	mu    sync.Mutex
	ready bool

	active  *observable.Value[[]domain.Contact]
	trashed *observable.Value[[]domain.Contact]
	palette *observable.Value[[]domain.Color]
}

// New creates a Store. Call Init before using it.
func New(log *slog.Logger, colors colorTable, contacts contactTable, tx txManager) *Store {
	return &Store{
		colors:   colors,
		contacts: contacts,
		tx:       tx,
		log:      log.With("service", "contact_store"),
		active:   observable.New[[]domain.Contact](),
		trashed:  observable.New[[]domain.Contact](),
		palette:  observable.New[[]domain.Color](),
	}
}

// ActiveContacts publishes contacts not in trash, sorted by name.
func (s *Store) ActiveContacts() observable.Source[[]domain.Contact] {
	return s.active
}

// TrashedContacts publishes contacts in trash, sorted by name.
func (s *Store) TrashedContacts() observable.Source[[]domain.Contact] {
	return s.trashed
}

// Colors publishes the color palette.
func (s *Store) Colors() observable.Source[[]domain.Color] {
	return s.palette
}

// snapshot is a consistent read of both tables in domain form.
type snapshot struct {
	active  []domain.Contact
	trashed []domain.Contact
	colors  []domain.Color
}

func (s *Store) publish(snap snapshot) {
	s.palette.Publish(snap.colors)
	s.active.Publish(snap.active)
	s.trashed.Publish(snap.trashed)
}

// load reads colors and contacts, partitions contacts by trash state and
// orders each partition by name (byte-wise, ascending, stable).
func (s *Store) load(ctx context.Context) (snapshot, error) {
	colorRecs, err := s.colors.All(ctx)
	if err != nil {
		return snapshot{}, fmt.Errorf("read colors: %w", err)
	}
	contactRecs, err := s.contacts.All(ctx)
	if err != nil {
		return snapshot{}, fmt.Errorf("read contacts: %w", err)
	}

	var activeRecs, trashedRecs []domain.ContactRecord
	for _, rec := range contactRecs {
		if rec.InTrash {
			trashedRecs = append(trashedRecs, rec)
		} else {
			activeRecs = append(activeRecs, rec)
		}
	}
	byName := func(a, b domain.ContactRecord) int { return strings.Compare(a.Name, b.Name) }
	slices.SortStableFunc(activeRecs, byName)
	slices.SortStableFunc(trashedRecs, byName)

	colorsByID := mapper.IndexColors(colorRecs)
	active, err := mapper.ToDomainBatch(activeRecs, colorsByID)
	if err != nil {
		return snapshot{}, err
	}
	trashed, err := mapper.ToDomainBatch(trashedRecs, colorsByID)
	if err != nil {
		return snapshot{}, err
	}

	return snapshot{
		active:  active,
		trashed: trashed,
		colors:  mapper.ColorsToDomain(colorRecs),
	}, nil
}

// mutate runs fn and the snapshot read in one transaction and publishes the
// snapshot only after commit. On any failure nothing is published.
func (s *Store) mutate(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return fmt.Errorf("%s: %w", op, domain.ErrNotInitialized)
	}

	var snap snapshot
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := fn(txCtx); err != nil {
			return err
		}
		var loadErr error
		snap, loadErr = s.load(txCtx)
		return loadErr
	})
	if err != nil {
		return classify(op, err)
	}

	s.publish(snap)
	return nil
}

// classify tags storage failures as domain.ErrStorageUnavailable.
// Consistency violations and context errors keep their identity.
func classify(op string, err error) error {
	switch {
	case errors.Is(err, domain.ErrInconsistentState),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", op, err)
	default:
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStorageUnavailable, err)
	}
}

// uniqueIDs drops duplicates while keeping the first-seen order.
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

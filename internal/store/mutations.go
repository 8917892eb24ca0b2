package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/heartmarshall/phonebook/internal/domain"
	"github.com/heartmarshall/phonebook/internal/mapper"
	"github.com/heartmarshall/phonebook/pkg/ctxutil"
)

// Upsert saves c: an unsaved contact is inserted under a new id, a saved
// one replaces the row with its id. Returns the stored id.
func (s *Store) Upsert(ctx context.Context, c domain.Contact) (int64, error) {
	rec := mapper.ToRecord(c)

	var id int64
	err := s.mutate(ctx, "upsert contact", func(txCtx context.Context) error {
		var err error
		id, err = s.contacts.Save(txCtx, rec)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.log.InfoContext(ctx, "contact saved", withTask(ctx,
		slog.Int64("contact_id", id),
		slog.Bool("created", rec.ID == 0),
	)...)
	return id, nil
}

// MoveToTrash soft-deletes a single contact.
func (s *Store) MoveToTrash(ctx context.Context, id int64) (Result, error) {
	return s.SoftDelete(ctx, []int64{id})
}

// SoftDelete marks the contacts as trashed. Their ids stay stable.
func (s *Store) SoftDelete(ctx context.Context, ids []int64) (Result, error) {
	return s.setTrash(ctx, "soft delete contacts", ids, true)
}

// Restore moves the contacts out of trash.
func (s *Store) Restore(ctx context.Context, ids []int64) (Result, error) {
	return s.setTrash(ctx, "restore contacts", ids, false)
}

func (s *Store) setTrash(ctx context.Context, op string, ids []int64, inTrash bool) (Result, error) {
	ids = uniqueIDs(ids)

	var res Result
	err := s.mutate(ctx, op, func(txCtx context.Context) error {
		res = Result{}
		for _, id := range ids {
			rec, err := s.contacts.FindByID(txCtx, id)
			if errors.Is(err, domain.ErrNotFound) {
				res.Skipped = append(res.Skipped, id)
				continue
			}
			if err != nil {
				return fmt.Errorf("find contact %d: %w", id, err)
			}

			rec.InTrash = inTrash
			if _, err := s.contacts.Save(txCtx, rec); err != nil {
				return fmt.Errorf("save contact %d: %w", id, err)
			}
			res.Affected = append(res.Affected, id)
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	s.logResult(ctx, op, res)
	return res, nil
}

// PermanentlyDelete removes the contacts outright. Already deleted ids are
// reported as skipped.
func (s *Store) PermanentlyDelete(ctx context.Context, ids []int64) (Result, error) {
	ids = uniqueIDs(ids)

	var res Result
	err := s.mutate(ctx, "delete contacts", func(txCtx context.Context) error {
		var err error
		res, err = s.deleteIDs(txCtx, ids)
		return err
	})
	if err != nil {
		return Result{}, err
	}

	s.logResult(ctx, "delete contacts", res)
	return res, nil
}

// EmptyTrash permanently deletes every contact that is in the trash when the
// mutation runs. A contact restored before that is kept.
func (s *Store) EmptyTrash(ctx context.Context) (Result, error) {
	var res Result
	err := s.mutate(ctx, "empty trash", func(txCtx context.Context) error {
		deleted, err := s.contacts.DeleteTrashed(txCtx)
		if err != nil {
			return fmt.Errorf("delete trashed contacts: %w", err)
		}
		slices.Sort(deleted)
		res = Result{Affected: deleted}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	s.logResult(ctx, "empty trash", res)
	return res, nil
}

func (s *Store) deleteIDs(ctx context.Context, ids []int64) (Result, error) {
	var res Result
	if len(ids) == 0 {
		return res, nil
	}

	deleted, err := s.contacts.Delete(ctx, ids)
	if err != nil {
		return Result{}, fmt.Errorf("delete contacts: %w", err)
	}

	gone := make(map[int64]struct{}, len(deleted))
	for _, id := range deleted {
		gone[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := gone[id]; ok {
			res.Affected = append(res.Affected, id)
		} else {
			res.Skipped = append(res.Skipped, id)
		}
	}
	return res, nil
}

func (s *Store) logResult(ctx context.Context, op string, res Result) {
	s.log.InfoContext(ctx, op, withTask(ctx,
		slog.Any("affected", res.Affected),
		slog.Any("skipped", res.Skipped),
	)...)
}

// withTask adds the worker task id when the mutation runs on a worker queue.
func withTask(ctx context.Context, attrs ...any) []any {
	if id, ok := ctxutil.TaskIDFromCtx(ctx); ok {
		return append(attrs, slog.String("task_id", id.String()))
	}
	return attrs
}

// Package session coordinates the contact book screens: it holds the draft
// being edited and the trash selection, turns user intents into store
// mutations and drives navigation.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/heartmarshall/phonebook/internal/domain"
	"github.com/heartmarshall/phonebook/internal/observable"
	"github.com/heartmarshall/phonebook/internal/store"
	"github.com/heartmarshall/phonebook/internal/worker"
)

type contactStore interface {
	ActiveContacts() observable.Source[[]domain.Contact]
	TrashedContacts() observable.Source[[]domain.Contact]
	Colors() observable.Source[[]domain.Color]
	Upsert(ctx context.Context, c domain.Contact) (int64, error)
	SoftDelete(ctx context.Context, ids []int64) (store.Result, error)
	Restore(ctx context.Context, ids []int64) (store.Result, error)
	PermanentlyDelete(ctx context.Context, ids []int64) (store.Result, error)
}

type navigator interface {
	Current() domain.Screen
	NavigateTo(screen domain.Screen)
}

// Controller is the view-state coordinator of the contact book.
// Intents that touch storage run on a single worker queue in submission
// order and return a *worker.Task the caller may wait on.
type Controller struct {
	store contactStore
	nav   navigator
	queue *worker.Queue
	log   *slog.Logger

	mu       sync.Mutex
	draft    domain.Contact
	selected []domain.Contact
}

// NewController creates a Controller with a fresh draft and an empty
// selection. Call Close to stop its worker queue.
func NewController(log *slog.Logger, contacts contactStore, nav navigator) *Controller {
	log = log.With("service", "session")
	return &Controller{
		store: contacts,
		nav:   nav,
		queue: worker.NewQueue(log),
		log:   log,
		draft: domain.NewContact(),
	}
}

// Close waits for submitted intents to finish and stops the worker queue.
func (c *Controller) Close() {
	c.queue.Stop()
}

// ActiveContacts forwards the store's active collection.
func (c *Controller) ActiveContacts() observable.Source[[]domain.Contact] {
	return c.store.ActiveContacts()
}

// TrashedContacts forwards the store's trashed collection.
func (c *Controller) TrashedContacts() observable.Source[[]domain.Contact] {
	return c.store.TrashedContacts()
}

// Colors forwards the palette.
func (c *Controller) Colors() observable.Source[[]domain.Color] {
	return c.store.Colors()
}

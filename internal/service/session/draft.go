package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/phonebook/internal/domain"
	"github.com/heartmarshall/phonebook/internal/worker"
)

// Draft returns the contact currently being edited.
func (c *Controller) Draft() domain.Contact {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// StartNewContact resets the draft and opens the edit screen.
func (c *Controller) StartNewContact() {
	c.setDraft(domain.NewContact())
	c.nav.NavigateTo(domain.ScreenEdit)
}

// SelectContact opens contact for editing.
func (c *Controller) SelectContact(contact domain.Contact) {
	c.setDraft(contact)
	c.nav.NavigateTo(domain.ScreenEdit)
}

// UpdateDraft replaces the draft without persisting it.
func (c *Controller) UpdateDraft(contact domain.Contact) {
	c.setDraft(contact)
}

// SetDraftCheckable turns the draft's checkbox on (unchecked) or off.
func (c *Controller) SetDraftCheckable(checkable bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case checkable && !c.draft.Checked.Checkable():
		c.draft.Checked = domain.CheckOff
	case !checkable:
		c.draft.Checked = domain.CheckNone
	}
}

// ToggleCheckedState persists contact right away. The caller passes the
// contact with its new checked state.
func (c *Controller) ToggleCheckedState(contact domain.Contact) *worker.Task {
	return c.queue.Submit("toggle checked state", func(ctx context.Context) error {
		if _, err := c.store.Upsert(ctx, contact); err != nil {
			return fmt.Errorf("toggle checked state of contact %d: %w", contact.ID, err)
		}
		return nil
	})
}

// SaveDraft validates contact and, when valid, submits the upsert. After the
// upsert succeeds the draft is reset and the list screen opens. Validation
// errors are returned synchronously and leave the draft and screen alone.
func (c *Controller) SaveDraft(contact domain.Contact) (*worker.Task, error) {
	if err := draftInput(contact).Validate(); err != nil {
		return nil, err
	}

	task := c.queue.Submit("save draft", func(ctx context.Context) error {
		id, err := c.store.Upsert(ctx, contact)
		if err != nil {
			return fmt.Errorf("save draft: %w", err)
		}

		c.setDraft(domain.NewContact())
		c.nav.NavigateTo(domain.ScreenList)

		c.log.InfoContext(ctx, "draft saved",
			slog.Int64("contact_id", id),
			slog.Bool("created", contact.IsNew()),
		)
		return nil
	})
	return task, nil
}

// TrashDraft moves contact to trash and returns to the list screen.
func (c *Controller) TrashDraft(contact domain.Contact) *worker.Task {
	return c.queue.Submit("trash draft", func(ctx context.Context) error {
		if _, err := c.store.SoftDelete(ctx, []int64{contact.ID}); err != nil {
			return fmt.Errorf("trash contact %d: %w", contact.ID, err)
		}
		c.nav.NavigateTo(domain.ScreenList)
		return nil
	})
}

func (c *Controller) setDraft(contact domain.Contact) {
	c.mu.Lock()
	c.draft = contact
	c.mu.Unlock()
}

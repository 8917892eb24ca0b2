package session

import (
	"context"
	"fmt"
	"slices"

	"github.com/heartmarshall/phonebook/internal/domain"
	"github.com/heartmarshall/phonebook/internal/store"
	"github.com/heartmarshall/phonebook/internal/worker"
)

// TrashTab is a tab of the trash screen.
type TrashTab string

const (
	TabRegular   TrashTab = "REGULAR"
	TabCheckable TrashTab = "CHECKABLE"
)

// Selected returns a copy of the trash selection in selection order.
func (c *Controller) Selected() []domain.Contact {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.selected)
}

// IsSelected reports whether contact is in the trash selection.
func (c *Controller) IsSelected(contact domain.Contact) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Contains(c.selected, contact)
}

// ToggleTrashSelection adds contact to the selection or removes it.
func (c *Controller) ToggleTrashSelection(contact domain.Contact) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := slices.Index(c.selected, contact); i >= 0 {
		c.selected = slices.Delete(c.selected, i, i+1)
		return
	}
	c.selected = append(c.selected, contact)
}

// RestoreSelected moves the selected contacts back to the active list and
// clears them from the selection.
func (c *Controller) RestoreSelected() *worker.Task {
	return c.applyToSelection("restore selected", c.store.Restore)
}

// DeleteSelectedPermanently deletes the selected contacts for good and
// clears them from the selection.
func (c *Controller) DeleteSelectedPermanently() *worker.Task {
	return c.applyToSelection("delete selected", c.store.PermanentlyDelete)
}

// applyToSelection snapshots the selection now and runs op on its ids.
// On success exactly the snapshotted contacts leave the selection, so
// contacts selected while op was queued stay selected.
func (c *Controller) applyToSelection(
	name string,
	op func(ctx context.Context, ids []int64) (store.Result, error),
) *worker.Task {
	snapshot := c.Selected()

	return c.queue.Submit(name, func(ctx context.Context) error {
		if _, err := op(ctx, domain.ContactIDs(snapshot)); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		c.mu.Lock()
		c.selected = slices.DeleteFunc(c.selected, func(sel domain.Contact) bool {
			return slices.Contains(snapshot, sel)
		})
		c.mu.Unlock()
		return nil
	})
}

// TrashedByTab filters the current trash snapshot for a tab of the trash
// screen: contacts without a checkbox, or contacts with one.
func (c *Controller) TrashedByTab(tab TrashTab) []domain.Contact {
	// Before the first publish the snapshot is nil, which filters to empty.
	trashed, _ := c.store.TrashedContacts().Get()

	out := make([]domain.Contact, 0, len(trashed))
	for _, contact := range trashed {
		if contact.Checked.Checkable() == (tab == TabCheckable) {
			out = append(out, contact)
		}
	}
	return out
}

// OpenTrash opens the trash screen.
func (c *Controller) OpenTrash() {
	c.nav.NavigateTo(domain.ScreenTrash)
}

// Back returns from the edit or trash screen to the list.
func (c *Controller) Back() {
	switch c.nav.Current() {
	case domain.ScreenEdit, domain.ScreenTrash:
		c.nav.NavigateTo(domain.ScreenList)
	}
}

package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/heartmarshall/phonebook/internal/domain"
	"github.com/heartmarshall/phonebook/internal/observable"
	"github.com/heartmarshall/phonebook/internal/store"
	"github.com/heartmarshall/phonebook/internal/worker"
)

// newTestController creates a Controller over the given mocks and a discard logger.
func newTestController(t *testing.T, st *contactStoreMock, nav *navigatorMock) *Controller {
	t.Helper()
	c := NewController(slog.New(slog.NewTextHandler(io.Discard, nil)), st, nav)
	t.Cleanup(c.Close)
	return c
}

func recordingNav() *navigatorMock {
	return &navigatorMock{NavigateToFunc: func(domain.Screen) {}}
}

func wait(t *testing.T, task *worker.Task) error {
	t.Helper()
	select {
	case <-task.Done():
	case <-time.After(5 * time.Second):
		t.Fatalf("task %s did not finish", task.Name)
	}
	return task.Err()
}

func validContact() domain.Contact {
	c := domain.NewContact()
	c.Name = "A"
	c.PhoneNumber = "123"
	c.Tag = "Home"
	return c
}

func contact(id int64, name string, checked domain.CheckState) domain.Contact {
	return domain.Contact{ID: id, Name: name, PhoneNumber: "1", Tag: "t", Checked: checked, Color: domain.DefaultColor}
}

func lastScreen(t *testing.T, nav *navigatorMock) domain.Screen {
	t.Helper()
	calls := nav.NavigateToCalls()
	if len(calls) == 0 {
		t.Fatal("expected a navigation")
	}
	return calls[len(calls)-1].Screen
}

// ---------------------------------------------------------------------------
// Draft Tests
// ---------------------------------------------------------------------------

func TestNewController_DefaultState(t *testing.T) {
	t.Parallel()

	c := newTestController(t, &contactStoreMock{}, recordingNav())

	if got := c.Draft(); got != domain.NewContact() {
		t.Errorf("draft: got %+v, want default contact", got)
	}
	if got := c.Selected(); len(got) != 0 {
		t.Errorf("selection: got %v, want empty", got)
	}
}

func TestStartNewContact(t *testing.T) {
	t.Parallel()

	nav := recordingNav()
	c := newTestController(t, &contactStoreMock{}, nav)
	c.UpdateDraft(contact(4, "Old", domain.CheckOn))

	c.StartNewContact()

	if got := c.Draft(); got != domain.NewContact() {
		t.Errorf("draft: got %+v, want default contact", got)
	}
	if got := lastScreen(t, nav); got != domain.ScreenEdit {
		t.Errorf("screen: got %s, want %s", got, domain.ScreenEdit)
	}
}

func TestSelectContact(t *testing.T) {
	t.Parallel()

	nav := recordingNav()
	c := newTestController(t, &contactStoreMock{}, nav)
	bob := contact(2, "Bob", domain.CheckNone)

	c.SelectContact(bob)

	if got := c.Draft(); got != bob {
		t.Errorf("draft: got %+v, want %+v", got, bob)
	}
	if got := lastScreen(t, nav); got != domain.ScreenEdit {
		t.Errorf("screen: got %s, want %s", got, domain.ScreenEdit)
	}
}

func TestUpdateDraft_DoesNotPersist(t *testing.T) {
	t.Parallel()

	// Nil funcs: any store call or navigation would panic.
	c := newTestController(t, &contactStoreMock{}, &navigatorMock{})
	edited := contact(3, "Edited", domain.CheckOff)

	c.UpdateDraft(edited)

	if got := c.Draft(); got != edited {
		t.Errorf("draft: got %+v, want %+v", got, edited)
	}
}

func TestSetDraftCheckable(t *testing.T) {
	t.Parallel()

	c := newTestController(t, &contactStoreMock{}, recordingNav())

	c.SetDraftCheckable(true)
	if got := c.Draft().Checked; got != domain.CheckOff {
		t.Errorf("checkable on: got %s, want %s", got, domain.CheckOff)
	}

	d := c.Draft()
	d.Checked = domain.CheckOn
	c.UpdateDraft(d)
	c.SetDraftCheckable(true)
	if got := c.Draft().Checked; got != domain.CheckOn {
		t.Errorf("checkable on again: got %s, want %s", got, domain.CheckOn)
	}

	c.SetDraftCheckable(false)
	if got := c.Draft().Checked; got != domain.CheckNone {
		t.Errorf("checkable off: got %s, want %s", got, domain.CheckNone)
	}
}

func TestToggleCheckedState_PersistsImmediately(t *testing.T) {
	t.Parallel()

	st := &contactStoreMock{
		UpsertFunc: func(ctx context.Context, c domain.Contact) (int64, error) { return c.ID, nil },
	}
	c := newTestController(t, st, &navigatorMock{})
	toggled := contact(6, "Josh", domain.CheckOn)

	if err := wait(t, c.ToggleCheckedState(toggled)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	calls := st.UpsertCalls()
	if len(calls) != 1 || calls[0].C != toggled {
		t.Errorf("Upsert calls: got %+v, want one call with %+v", calls, toggled)
	}
}

// ---------------------------------------------------------------------------
// SaveDraft Tests
// ---------------------------------------------------------------------------

func TestSaveDraft_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(c *domain.Contact)
		wantField string
	}{
		{"empty name", func(c *domain.Contact) { c.Name = "" }, "name"},
		{"blank phone", func(c *domain.Contact) { c.PhoneNumber = " " }, "phone_number"},
		{"empty phone", func(c *domain.Contact) { c.PhoneNumber = "" }, "phone_number"},
		{"non-digit phone", func(c *domain.Contact) { c.PhoneNumber = "abc123" }, "phone_number"},
		{"phone with plus", func(c *domain.Contact) { c.PhoneNumber = "+123" }, "phone_number"},
		{"empty tag", func(c *domain.Contact) { c.Tag = "" }, "tag"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Nil funcs: persisting or navigating would panic.
			c := newTestController(t, &contactStoreMock{}, &navigatorMock{})
			draft := validContact()
			tt.mutate(&draft)
			c.UpdateDraft(draft)

			task, err := c.SaveDraft(draft)
			if task != nil {
				t.Error("expected no task on validation failure")
			}
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			var ve *domain.ValidationError
			if !errors.As(err, &ve) || ve.Errors[0].Field != tt.wantField {
				t.Errorf("expected field %q, got %v", tt.wantField, err)
			}
			if got := c.Draft(); got != draft {
				t.Errorf("draft changed: got %+v, want %+v", got, draft)
			}
		})
	}
}

func TestSaveDraft_CollectsAllErrors(t *testing.T) {
	t.Parallel()

	c := newTestController(t, &contactStoreMock{}, &navigatorMock{})

	_, err := c.SaveDraft(domain.NewContact())

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if len(ve.Errors) != 3 {
		t.Errorf("expected 3 field errors, got %d: %v", len(ve.Errors), ve.Errors)
	}
}

func TestDraftInput_WhitespaceCountsAsValue(t *testing.T) {
	t.Parallel()

	in := DraftInput{Name: " ", PhoneNumber: "123", Tag: "\t"}
	if err := in.Validate(); err != nil {
		t.Errorf("expected whitespace name and tag to pass, got %v", err)
	}
}

func TestSaveDraft_Success(t *testing.T) {
	t.Parallel()

	st := &contactStoreMock{
		UpsertFunc: func(ctx context.Context, c domain.Contact) (int64, error) { return 10, nil },
	}
	nav := recordingNav()
	c := newTestController(t, st, nav)
	draft := validContact()
	c.UpdateDraft(draft)

	task, err := c.SaveDraft(draft)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := wait(t, task); err != nil {
		t.Fatalf("task error: %v", err)
	}

	if calls := st.UpsertCalls(); len(calls) != 1 || calls[0].C != draft {
		t.Errorf("Upsert calls: got %+v", calls)
	}
	if got := c.Draft(); got != domain.NewContact() {
		t.Errorf("draft not reset: %+v", got)
	}
	if got := lastScreen(t, nav); got != domain.ScreenList {
		t.Errorf("screen: got %s, want %s", got, domain.ScreenList)
	}
}

func TestSaveDraft_StorageFailure(t *testing.T) {
	t.Parallel()

	st := &contactStoreMock{
		UpsertFunc: func(ctx context.Context, c domain.Contact) (int64, error) {
			return 0, domain.ErrStorageUnavailable
		},
	}
	nav := recordingNav()
	c := newTestController(t, st, nav)
	draft := validContact()
	c.UpdateDraft(draft)

	task, err := c.SaveDraft(draft)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := wait(t, task); !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}

	if got := c.Draft(); got != draft {
		t.Errorf("draft should be kept: got %+v", got)
	}
	if n := len(nav.NavigateToCalls()); n != 0 {
		t.Errorf("expected no navigation, got %d", n)
	}
}

func TestTrashDraft(t *testing.T) {
	t.Parallel()

	st := &contactStoreMock{
		SoftDeleteFunc: func(ctx context.Context, ids []int64) (store.Result, error) {
			return store.Result{Affected: ids}, nil
		},
	}
	nav := recordingNav()
	c := newTestController(t, st, nav)

	if err := wait(t, c.TrashDraft(contact(9, "Gone", domain.CheckNone))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	calls := st.SoftDeleteCalls()
	if len(calls) != 1 || len(calls[0].Ids) != 1 || calls[0].Ids[0] != 9 {
		t.Errorf("SoftDelete calls: got %+v, want [[9]]", calls)
	}
	if got := lastScreen(t, nav); got != domain.ScreenList {
		t.Errorf("screen: got %s, want %s", got, domain.ScreenList)
	}
}

// ---------------------------------------------------------------------------
// Trash selection Tests
// ---------------------------------------------------------------------------

func TestToggleTrashSelection(t *testing.T) {
	t.Parallel()

	c := newTestController(t, &contactStoreMock{}, recordingNav())
	a := contact(1, "A", domain.CheckNone)
	b := contact(2, "B", domain.CheckOff)

	c.ToggleTrashSelection(a)
	c.ToggleTrashSelection(b)
	if !c.IsSelected(a) || !c.IsSelected(b) {
		t.Fatalf("expected both selected, got %v", c.Selected())
	}

	c.ToggleTrashSelection(a)
	if c.IsSelected(a) {
		t.Error("expected A to be deselected")
	}
	if got := c.Selected(); len(got) != 1 || got[0] != b {
		t.Errorf("selection: got %v, want [B]", got)
	}

	// A contact that differs in any field is a different selection entry.
	changed := b
	changed.Checked = domain.CheckOn
	if c.IsSelected(changed) {
		t.Error("expected modified contact not to match the selection")
	}
}

func TestRestoreSelected(t *testing.T) {
	t.Parallel()

	st := &contactStoreMock{
		RestoreFunc: func(ctx context.Context, ids []int64) (store.Result, error) {
			return store.Result{Affected: ids}, nil
		},
	}
	c := newTestController(t, st, recordingNav())
	c.ToggleTrashSelection(contact(1, "A", domain.CheckNone))
	c.ToggleTrashSelection(contact(3, "C", domain.CheckNone))

	if err := wait(t, c.RestoreSelected()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	calls := st.RestoreCalls()
	if len(calls) != 1 || len(calls[0].Ids) != 2 || calls[0].Ids[0] != 1 || calls[0].Ids[1] != 3 {
		t.Errorf("Restore calls: got %+v, want [[1 3]]", calls)
	}
	if got := c.Selected(); len(got) != 0 {
		t.Errorf("selection: got %v, want empty", got)
	}
}

func TestRestoreSelected_FailureKeepsSelection(t *testing.T) {
	t.Parallel()

	st := &contactStoreMock{
		RestoreFunc: func(ctx context.Context, ids []int64) (store.Result, error) {
			return store.Result{}, domain.ErrStorageUnavailable
		},
	}
	c := newTestController(t, st, recordingNav())
	a := contact(1, "A", domain.CheckNone)
	c.ToggleTrashSelection(a)

	if err := wait(t, c.RestoreSelected()); !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
	if !c.IsSelected(a) {
		t.Error("selection should be kept after a failure")
	}
}

func TestRestoreSelected_KeepsContactsSelectedMeanwhile(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	st := &contactStoreMock{
		RestoreFunc: func(ctx context.Context, ids []int64) (store.Result, error) {
			<-release
			return store.Result{Affected: ids}, nil
		},
	}
	c := newTestController(t, st, recordingNav())
	a := contact(1, "A", domain.CheckNone)
	b := contact(2, "B", domain.CheckNone)
	c.ToggleTrashSelection(a)

	task := c.RestoreSelected()
	c.ToggleTrashSelection(b)
	close(release)

	if err := wait(t, task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.Selected(); len(got) != 1 || got[0] != b {
		t.Errorf("selection: got %v, want [B]", got)
	}
}

func TestDeleteSelectedPermanently(t *testing.T) {
	t.Parallel()

	st := &contactStoreMock{
		PermanentlyDeleteFunc: func(ctx context.Context, ids []int64) (store.Result, error) {
			return store.Result{Affected: ids}, nil
		},
	}
	c := newTestController(t, st, recordingNav())
	c.ToggleTrashSelection(contact(5, "E", domain.CheckOn))

	if err := wait(t, c.DeleteSelectedPermanently()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	calls := st.PermanentlyDeleteCalls()
	if len(calls) != 1 || len(calls[0].Ids) != 1 || calls[0].Ids[0] != 5 {
		t.Errorf("PermanentlyDelete calls: got %+v, want [[5]]", calls)
	}
	if got := c.Selected(); len(got) != 0 {
		t.Errorf("selection: got %v, want empty", got)
	}
}

func TestTrashedByTab(t *testing.T) {
	t.Parallel()

	trashedValue := observable.New[[]domain.Contact]()
	trashedValue.Publish([]domain.Contact{
		contact(1, "A", domain.CheckNone),
		contact(2, "B", domain.CheckOff),
		contact(3, "C", domain.CheckOn),
		contact(4, "D", domain.CheckNone),
	})
	st := &contactStoreMock{
		TrashedContactsFunc: func() observable.Source[[]domain.Contact] { return trashedValue },
	}
	c := newTestController(t, st, recordingNav())

	regular := c.TrashedByTab(TabRegular)
	if len(regular) != 2 || regular[0].ID != 1 || regular[1].ID != 4 {
		t.Errorf("regular tab: got %v", domain.ContactIDs(regular))
	}
	checkable := c.TrashedByTab(TabCheckable)
	if len(checkable) != 2 || checkable[0].ID != 2 || checkable[1].ID != 3 {
		t.Errorf("checkable tab: got %v", domain.ContactIDs(checkable))
	}
}

func TestTrashedByTab_NothingPublished(t *testing.T) {
	t.Parallel()

	empty := observable.New[[]domain.Contact]()
	st := &contactStoreMock{
		TrashedContactsFunc: func() observable.Source[[]domain.Contact] { return empty },
	}
	c := newTestController(t, st, recordingNav())

	if got := c.TrashedByTab(TabRegular); len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

// ---------------------------------------------------------------------------
// Navigation Tests
// ---------------------------------------------------------------------------

func TestOpenTrashAndBack(t *testing.T) {
	t.Parallel()

	current := domain.ScreenList
	nav := &navigatorMock{
		CurrentFunc:    func() domain.Screen { return current },
		NavigateToFunc: func(s domain.Screen) { current = s },
	}
	c := newTestController(t, &contactStoreMock{}, nav)

	c.Back()
	if n := len(nav.NavigateToCalls()); n != 0 {
		t.Errorf("Back on list should not navigate, got %d calls", n)
	}

	c.OpenTrash()
	if current != domain.ScreenTrash {
		t.Fatalf("screen: got %s, want %s", current, domain.ScreenTrash)
	}

	c.Back()
	if current != domain.ScreenList {
		t.Errorf("screen: got %s, want %s", current, domain.ScreenList)
	}

	c.StartNewContact()
	c.Back()
	if current != domain.ScreenList {
		t.Errorf("screen after edit back: got %s, want %s", current, domain.ScreenList)
	}
}

func TestForwardsStoreCollections(t *testing.T) {
	t.Parallel()

	activeValue := observable.New[[]domain.Contact]()
	trashedValue := observable.New[[]domain.Contact]()
	colorsValue := observable.New[[]domain.Color]()
	st := &contactStoreMock{
		ActiveContactsFunc:  func() observable.Source[[]domain.Contact] { return activeValue },
		TrashedContactsFunc: func() observable.Source[[]domain.Contact] { return trashedValue },
		ColorsFunc:          func() observable.Source[[]domain.Color] { return colorsValue },
	}
	c := newTestController(t, st, recordingNav())

	if c.ActiveContacts() != observable.Source[[]domain.Contact](activeValue) {
		t.Error("ActiveContacts is not forwarded")
	}
	if c.TrashedContacts() != observable.Source[[]domain.Contact](trashedValue) {
		t.Error("TrashedContacts is not forwarded")
	}
	if c.Colors() != observable.Source[[]domain.Color](colorsValue) {
		t.Error("Colors is not forwarded")
	}
}

func TestClose_RejectsNewIntents(t *testing.T) {
	t.Parallel()

	c := newTestController(t, &contactStoreMock{}, recordingNav())
	c.Close()

	task := c.ToggleCheckedState(contact(1, "A", domain.CheckOn))
	if err := wait(t, task); !errors.Is(err, worker.ErrStopped) {
		t.Errorf("expected ErrStopped, got %v", err)
	}
}

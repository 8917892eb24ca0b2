package navigation

import (
	"testing"

	"github.com/heartmarshall/phonebook/internal/domain"
)

func TestNavigator_StartsOnList(t *testing.T) {
	t.Parallel()

	n := New()
	if got := n.Current(); got != domain.ScreenList {
		t.Fatalf("Current() = %s, want LIST", got)
	}
	if got, ok := n.Changes().Get(); !ok || got != domain.ScreenList {
		t.Fatalf("Changes().Get() = %s/%v, want LIST/true", got, ok)
	}
}

func TestNavigator_NavigateTo(t *testing.T) {
	t.Parallel()

	n := New()
	sub := n.Changes().Subscribe()
	defer sub.Close()
	<-sub.C() // initial LIST

	n.NavigateTo(domain.ScreenEdit)
	if got := n.Current(); got != domain.ScreenEdit {
		t.Fatalf("Current() = %s, want EDIT", got)
	}
	if got := <-sub.C(); got != domain.ScreenEdit {
		t.Fatalf("published %s, want EDIT", got)
	}

	n.NavigateTo(domain.ScreenTrash)
	if got := <-sub.C(); got != domain.ScreenTrash {
		t.Fatalf("published %s, want TRASH", got)
	}
}

func TestNavigator_IgnoresInvalidAndRepeated(t *testing.T) {
	t.Parallel()

	n := New()
	n.NavigateTo(domain.Screen("NOPE"))
	if got := n.Current(); got != domain.ScreenList {
		t.Fatalf("Current() = %s, want LIST", got)
	}

	n.NavigateTo(domain.ScreenList)
	if v := n.changes.Version(); v != 1 {
		t.Errorf("repeated navigation should not republish, version = %d", v)
	}
}

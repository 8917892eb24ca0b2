// Package navigation holds the current-screen register of the contact book.
package navigation

import (
	"sync"

	"github.com/heartmarshall/phonebook/internal/domain"
	"github.com/heartmarshall/phonebook/internal/observable"
)

// Navigator is a three-state screen register. The zero value is not usable;
// create one with New.
type Navigator struct {
	mu      sync.Mutex
	current domain.Screen
	changes *observable.Value[domain.Screen]
}

// New returns a Navigator positioned on the list screen.
func New() *Navigator {
	n := &Navigator{
		current: domain.ScreenList,
		changes: observable.New[domain.Screen](),
	}
	n.changes.Publish(domain.ScreenList)
	return n
}

// Current returns the screen being shown.
func (n *Navigator) Current() domain.Screen {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// NavigateTo switches to screen. Unknown screens are ignored.
func (n *Navigator) NavigateTo(screen domain.Screen) {
	if !screen.IsValid() {
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.current == screen {
		return
	}
	n.current = screen
	n.changes.Publish(screen)
}

// Changes publishes the current screen on every switch.
func (n *Navigator) Changes() observable.Source[domain.Screen] {
	return n.changes
}

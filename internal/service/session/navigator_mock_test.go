package session

import (
	"sync"

	"github.com/heartmarshall/phonebook/internal/domain"
)

var _ navigator = &navigatorMock{}

type navigatorMock struct {
	CurrentFunc    func() domain.Screen
	NavigateToFunc func(screen domain.Screen)

	calls struct {
		NavigateTo []struct {
			Screen domain.Screen
		}
	}
	lockNavigateTo sync.RWMutex
}

func (mock *navigatorMock) Current() domain.Screen {
	if mock.CurrentFunc == nil {
		panic("navigatorMock.CurrentFunc: method is nil but navigator.Current was just called")
	}
	return mock.CurrentFunc()
}

func (mock *navigatorMock) NavigateTo(screen domain.Screen) {
	if mock.NavigateToFunc == nil {
		panic("navigatorMock.NavigateToFunc: method is nil but navigator.NavigateTo was just called")
	}
	callInfo := struct{ Screen domain.Screen }{Screen: screen}
	mock.lockNavigateTo.Lock()
	mock.calls.NavigateTo = append(mock.calls.NavigateTo, callInfo)
	mock.lockNavigateTo.Unlock()
	mock.NavigateToFunc(screen)
}

func (mock *navigatorMock) NavigateToCalls() []struct {
	Screen domain.Screen
} {
	mock.lockNavigateTo.RLock()
	calls := mock.calls.NavigateTo
	mock.lockNavigateTo.RUnlock()
	return calls
}

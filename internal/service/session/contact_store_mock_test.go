package session

import (
	"context"
	"sync"

	"github.com/heartmarshall/phonebook/internal/domain"
	"github.com/heartmarshall/phonebook/internal/observable"
	"github.com/heartmarshall/phonebook/internal/store"
)

var _ contactStore = &contactStoreMock{}

type contactStoreMock struct {
	ActiveContactsFunc    func() observable.Source[[]domain.Contact]
	TrashedContactsFunc   func() observable.Source[[]domain.Contact]
	ColorsFunc            func() observable.Source[[]domain.Color]
	UpsertFunc            func(ctx context.Context, c domain.Contact) (int64, error)
	SoftDeleteFunc        func(ctx context.Context, ids []int64) (store.Result, error)
	RestoreFunc           func(ctx context.Context, ids []int64) (store.Result, error)
	PermanentlyDeleteFunc func(ctx context.Context, ids []int64) (store.Result, error)

	calls struct {
		Upsert []struct {
			Ctx context.Context
			C   domain.Contact
		}
		SoftDelete []struct {
			Ctx context.Context
			Ids []int64
		}
		Restore []struct {
			Ctx context.Context
			Ids []int64
		}
		PermanentlyDelete []struct {
			Ctx context.Context
			Ids []int64
		}
	}
	lockUpsert            sync.RWMutex
	lockSoftDelete        sync.RWMutex
	lockRestore           sync.RWMutex
	lockPermanentlyDelete sync.RWMutex
}

func (mock *contactStoreMock) ActiveContacts() observable.Source[[]domain.Contact] {
	if mock.ActiveContactsFunc == nil {
		panic("contactStoreMock.ActiveContactsFunc: method is nil but contactStore.ActiveContacts was just called")
	}
	return mock.ActiveContactsFunc()
}

func (mock *contactStoreMock) TrashedContacts() observable.Source[[]domain.Contact] {
	if mock.TrashedContactsFunc == nil {
		panic("contactStoreMock.TrashedContactsFunc: method is nil but contactStore.TrashedContacts was just called")
	}
	return mock.TrashedContactsFunc()
}

func (mock *contactStoreMock) Colors() observable.Source[[]domain.Color] {
	if mock.ColorsFunc == nil {
		panic("contactStoreMock.ColorsFunc: method is nil but contactStore.Colors was just called")
	}
	return mock.ColorsFunc()
}

func (mock *contactStoreMock) Upsert(ctx context.Context, c domain.Contact) (int64, error) {
	if mock.UpsertFunc == nil {
		panic("contactStoreMock.UpsertFunc: method is nil but contactStore.Upsert was just called")
	}
	callInfo := struct {
		Ctx context.Context
		C   domain.Contact
	}{Ctx: ctx, C: c}
	mock.lockUpsert.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, callInfo)
	mock.lockUpsert.Unlock()
	return mock.UpsertFunc(ctx, c)
}

func (mock *contactStoreMock) UpsertCalls() []struct {
	Ctx context.Context
	C   domain.Contact
} {
	mock.lockUpsert.RLock()
	calls := mock.calls.Upsert
	mock.lockUpsert.RUnlock()
	return calls
}

func (mock *contactStoreMock) SoftDelete(ctx context.Context, ids []int64) (store.Result, error) {
	if mock.SoftDeleteFunc == nil {
		panic("contactStoreMock.SoftDeleteFunc: method is nil but contactStore.SoftDelete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Ids []int64
	}{Ctx: ctx, Ids: ids}
	mock.lockSoftDelete.Lock()
	mock.calls.SoftDelete = append(mock.calls.SoftDelete, callInfo)
	mock.lockSoftDelete.Unlock()
	return mock.SoftDeleteFunc(ctx, ids)
}

func (mock *contactStoreMock) SoftDeleteCalls() []struct {
	Ctx context.Context
	Ids []int64
} {
	mock.lockSoftDelete.RLock()
	calls := mock.calls.SoftDelete
	mock.lockSoftDelete.RUnlock()
	return calls
}

func (mock *contactStoreMock) Restore(ctx context.Context, ids []int64) (store.Result, error) {
	if mock.RestoreFunc == nil {
		panic("contactStoreMock.RestoreFunc: method is nil but contactStore.Restore was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Ids []int64
	}{Ctx: ctx, Ids: ids}
	mock.lockRestore.Lock()
	mock.calls.Restore = append(mock.calls.Restore, callInfo)
	mock.lockRestore.Unlock()
	return mock.RestoreFunc(ctx, ids)
}

func (mock *contactStoreMock) RestoreCalls() []struct {
	Ctx context.Context
	Ids []int64
} {
	mock.lockRestore.RLock()
	calls := mock.calls.Restore
	mock.lockRestore.RUnlock()
	return calls
}

func (mock *contactStoreMock) PermanentlyDelete(ctx context.Context, ids []int64) (store.Result, error) {
	if mock.PermanentlyDeleteFunc == nil {
		panic("contactStoreMock.PermanentlyDeleteFunc: method is nil but contactStore.PermanentlyDelete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Ids []int64
	}{Ctx: ctx, Ids: ids}
	mock.lockPermanentlyDelete.Lock()
	mock.calls.PermanentlyDelete = append(mock.calls.PermanentlyDelete, callInfo)
	mock.lockPermanentlyDelete.Unlock()
	return mock.PermanentlyDeleteFunc(ctx, ids)
}

func (mock *contactStoreMock) PermanentlyDeleteCalls() []struct {
	Ctx context.Context
	Ids []int64
} {
	mock.lockPermanentlyDelete.RLock()
	calls := mock.calls.PermanentlyDelete
	mock.lockPermanentlyDelete.RUnlock()
	return calls
}

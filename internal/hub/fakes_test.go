package hub

import (
	"context"
	"fmt"
	"sync"

	"varotra-backend-go/internal/models"
	"varotra-backend-go/internal/store"
)

// fakeCollection is an in-memory EntityOps implementation. push and fail
// drive the subscription callbacks the way a live feed would.
type fakeCollection[T any, P store.Doc[T]] struct {
	mu       sync.Mutex
	items    []T
	initial  []T // delivered synchronously on Subscribe, like a live feed's first snapshot
	getErr   error
	added    []T
	updates  map[string]map[string]any
	deleted  []string
	onChange func([]T)
	onError  func(error)
	unsubbed bool
	seq      int
}

func (f *fakeCollection[T, P]) GetAll(_ context.Context, _ string) ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return append([]T(nil), f.items...), nil
}

func (f *fakeCollection[T, P]) GetByID(_ context.Context, id string) (*T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if P(&f.items[i]).DocMeta().ID == id {
			item := f.items[i]
			return &item, nil
		}
	}
	return nil, nil
}

func (f *fakeCollection[T, P]) Add(_ context.Context, ownerID string, doc P) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	id := fmt.Sprintf("remote-%d", f.seq)
	meta := doc.DocMeta()
	meta.ID = id
	meta.UserID = ownerID
	f.added = append(f.added, *doc)
	return id, nil
}

func (f *fakeCollection[T, P]) Update(_ context.Context, id string, patch map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updates == nil {
		f.updates = make(map[string]map[string]any)
	}
	f.updates[id] = patch
	return nil
}

func (f *fakeCollection[T, P]) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeCollection[T, P]) Subscribe(_ context.Context, _ string, onChange func([]T), onError func(error)) (func(), error) {
	f.mu.Lock()
	f.onChange = onChange
	f.onError = onError
	initial := f.initial
	f.mu.Unlock()
	if initial != nil {
		onChange(initial)
	}
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.unsubbed = true
	}, nil
}

func (f *fakeCollection[T, P]) push(items []T) {
	f.mu.Lock()
	onChange := f.onChange
	f.mu.Unlock()
	onChange(items)
}

func (f *fakeCollection[T, P]) failFeed(err error) {
	f.mu.Lock()
	onError := f.onError
	f.mu.Unlock()
	onError(err)
}

type fakeProfile struct {
	mu       sync.Mutex
	profile  *models.VendorProfile
	getErr   error
	sets     []models.VendorProfile
	onChange func(*models.VendorProfile)
	unsubbed bool
}

func (f *fakeProfile) Get(_ context.Context, _ string) (*models.VendorProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.profile, nil
}

func (f *fakeProfile) Set(_ context.Context, ownerID string, profile *models.VendorProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	profile.UserID = ownerID
	f.sets = append(f.sets, *profile)
	f.profile = profile
	return nil
}

func (f *fakeProfile) Subscribe(_ context.Context, _ string, onChange func(*models.VendorProfile), _ func(error)) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onChange = onChange
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.unsubbed = true
	}, nil
}

type fakeMigrator struct {
	err      error
	gotOwner string
	gotCount int
}

func (f *fakeMigrator) MigrateAll(_ context.Context, ds models.Dataset, ownerID string) error {
	if f.err != nil {
		return f.err
	}
	f.gotOwner = ownerID
	f.gotCount = ds.Count()
	return nil
}

// fixtures bundles the typed fakes behind a Sources value.
type fixtures struct {
	contacts  *fakeCollection[models.Contact, *models.Contact]
	products  *fakeCollection[models.Product, *models.Product]
	orders    *fakeCollection[models.Order, *models.Order]
	notes     *fakeCollection[models.Note, *models.Note]
	reminders *fakeCollection[models.Reminder, *models.Reminder]
	profile   *fakeProfile
	migrator  *fakeMigrator
}

func newFixtures() (*fixtures, Sources) {
	fx := &fixtures{
		contacts:  &fakeCollection[models.Contact, *models.Contact]{},
		products:  &fakeCollection[models.Product, *models.Product]{},
		orders:    &fakeCollection[models.Order, *models.Order]{},
		notes:     &fakeCollection[models.Note, *models.Note]{},
		reminders: &fakeCollection[models.Reminder, *models.Reminder]{},
		profile:   &fakeProfile{},
		migrator:  &fakeMigrator{},
	}
	return fx, Sources{
		Contacts:  fx.contacts,
		Products:  fx.products,
		Orders:    fx.orders,
		Notes:     fx.notes,
		Reminders: fx.reminders,
		Profile:   fx.profile,
		Migrator:  fx.migrator,
	}
}

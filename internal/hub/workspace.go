package hub

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"varotra-backend-go/internal/models"
	"varotra-backend-go/internal/store"
)

// State is the workspace lifecycle state.
type State int

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady // remote data is the source of truth, feeds live
	StateLocal // degraded-local: serving the in-memory dataset
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateLocal:
		return "degraded-local"
	case StateFailed:
		return "error"
	default:
		return "uninitialized"
	}
}

// Snapshot is the complete view a consumer renders from: the six current
// entity lists in canonical order plus lifecycle state and the last
// classified error.
type Snapshot struct {
	State     State                 `json:"state"`
	Err       *store.Error          `json:"-"`
	Contacts  []models.Contact      `json:"contacts"`
	Products  []models.Product      `json:"products"`
	Orders    []models.Order        `json:"orders"`
	Notes     []models.Note         `json:"notes"`
	Reminders []models.Reminder     `json:"reminders"`
	Vendor    *models.VendorProfile `json:"vendor,omitempty"`
}

// Workspace aggregates one owner's data. Remote snapshots arrive through
// the collection subscriptions as full replacements; local mode serves
// the in-memory dataset through the same facade. All mutable state is
// guarded by mu; subscription teardown always happens outside mu because
// feed delivery takes mu while holding the subscription's own lock.
type Workspace struct {
	owner string
	src   Sources
	log   *zap.Logger
	topN  int

	mu        sync.RWMutex
	state     State
	lastErr   *store.Error
	contacts  []models.Contact
	products  []models.Product
	orders    []models.Order
	notes     []models.Note
	reminders []models.Reminder
	vendor    *models.VendorProfile
	local     *localData
	unsubs    []func()
	cancelSub context.CancelFunc
}

// NewWorkspace builds an uninitialized workspace for owner. topN bounds
// the analytics rankings.
func NewWorkspace(owner string, src Sources, log *zap.Logger, topN int) *Workspace {
	if topN <= 0 {
		topN = 5
	}
	return &Workspace{
		owner: owner,
		src:   src,
		log:   log.Named("workspace").With(zap.String("owner", owner)),
		topN:  topN,
	}
}

func (w *Workspace) requireSession() error {
	if w.owner == "" {
		return store.ErrNotAuthenticated
	}
	return nil
}

// Initialize fetches all six entity kinds concurrently, moves the
// workspace to ready, then attaches the live feeds. Any fetch failure
// fails the whole initialization: the classified error is stored and
// returned, and the caller decides between retrying and UseLocalMode.
// Safe to call again after a failure. Requires remote sources; without a
// remote store the only serving mode is UseLocalMode.
func (w *Workspace) Initialize(ctx context.Context) error {
	if err := w.requireSession(); err != nil {
		return err
	}
	if !w.src.Remote() {
		return fmt.Errorf("remote store is not configured, initialization unavailable")
	}

	w.mu.Lock()
	if w.state == StateInitializing {
		w.mu.Unlock()
		return fmt.Errorf("initialization already in progress")
	}
	unsubs, cancel := w.unsubs, w.cancelSub
	w.unsubs, w.cancelSub = nil, nil
	w.state = StateInitializing
	w.lastErr = nil
	w.mu.Unlock()
	stopFeeds(unsubs, cancel)

	var (
		contacts  []models.Contact
		products  []models.Product
		orders    []models.Order
		notes     []models.Note
		reminders []models.Reminder
		vendor    *models.VendorProfile
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { contacts, err = w.src.Contacts.GetAll(gctx, w.owner); return })
	g.Go(func() (err error) { products, err = w.src.Products.GetAll(gctx, w.owner); return })
	g.Go(func() (err error) { orders, err = w.src.Orders.GetAll(gctx, w.owner); return })
	g.Go(func() (err error) { notes, err = w.src.Notes.GetAll(gctx, w.owner); return })
	g.Go(func() (err error) { reminders, err = w.src.Reminders.GetAll(gctx, w.owner); return })
	g.Go(func() (err error) { vendor, err = w.src.Profile.Get(gctx, w.owner); return })
	if err := g.Wait(); err != nil {
		return w.failInit(err)
	}

	// Install the fetched snapshot and go ready before attaching feeds.
	// A feed's first delivery reflects remote state at or after listener
	// attach, so it must land after the older fetch result and override
	// it, never the other way around.
	w.mu.Lock()
	w.contacts, w.products, w.orders = contacts, products, orders
	w.notes, w.reminders, w.vendor = notes, reminders, vendor
	w.state = StateReady
	w.mu.Unlock()

	// Feeds outlive the initialization request, so they get their own
	// lifetime, torn down on re-initialize, UseLocalMode or Close.
	feedCtx, feedCancel := context.WithCancel(context.Background())
	feedUnsubs, err := w.attachFeeds(feedCtx)
	if err != nil {
		feedCancel()
		return w.failInit(err)
	}

	w.mu.Lock()
	if w.state != StateReady {
		// The mode changed while feeds were attaching; the new mode wins.
		w.mu.Unlock()
		stopFeeds(feedUnsubs, feedCancel)
		return nil
	}
	w.unsubs, w.cancelSub = feedUnsubs, feedCancel
	w.mu.Unlock()

	w.log.Info("workspace ready",
		zap.Int("contacts", len(contacts)), zap.Int("products", len(products)),
		zap.Int("orders", len(orders)))
	return nil
}

func (w *Workspace) failInit(err error) *store.Error {
	se := store.Classify("initialize", err)
	w.mu.Lock()
	w.state = StateFailed
	w.lastErr = se
	w.mu.Unlock()
	w.log.Warn("initialization failed",
		zap.String("kind", se.Kind.String()), zap.Error(se))
	return se
}

func (w *Workspace) attachFeeds(ctx context.Context) ([]func(), error) {
	var unsubs []func()
	attach := func(unsub func(), err error) error {
		if err != nil {
			stopFeeds(unsubs, nil)
			return err
		}
		unsubs = append(unsubs, unsub)
		return nil
	}

	if err := attach(w.src.Contacts.Subscribe(ctx, w.owner,
		func(items []models.Contact) { w.replaceFeed(func() { w.contacts = items }) },
		w.feedFailed)); err != nil {
		return nil, err
	}
	if err := attach(w.src.Products.Subscribe(ctx, w.owner,
		func(items []models.Product) { w.replaceFeed(func() { w.products = items }) },
		w.feedFailed)); err != nil {
		return nil, err
	}
	if err := attach(w.src.Orders.Subscribe(ctx, w.owner,
		func(items []models.Order) { w.replaceFeed(func() { w.orders = items }) },
		w.feedFailed)); err != nil {
		return nil, err
	}
	if err := attach(w.src.Notes.Subscribe(ctx, w.owner,
		func(items []models.Note) { w.replaceFeed(func() { w.notes = items }) },
		w.feedFailed)); err != nil {
		return nil, err
	}
	if err := attach(w.src.Reminders.Subscribe(ctx, w.owner,
		func(items []models.Reminder) { w.replaceFeed(func() { w.reminders = items }) },
		w.feedFailed)); err != nil {
		return nil, err
	}
	if err := attach(w.src.Profile.Subscribe(ctx, w.owner,
		func(profile *models.VendorProfile) { w.replaceFeed(func() { w.vendor = profile }) },
		w.feedFailed)); err != nil {
		return nil, err
	}
	return unsubs, nil
}

// replaceFeed applies a full-snapshot replacement. Deliveries racing a
// state change are dropped once the workspace is no longer remote-backed.
func (w *Workspace) replaceFeed(apply func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateReady && w.state != StateInitializing {
		return
	}
	apply()
}

// feedFailed handles a fatal subscription error after initialization. The
// feed has already stopped itself; remaining feeds are left running but
// their deliveries no longer apply once the state leaves ready. The error
// goes through the same classification pathway as initialization
// failures, and recovery is an explicit caller action.
func (w *Workspace) feedFailed(err error) {
	se := store.Classify("feed", err)
	w.mu.Lock()
	if w.state == StateReady {
		w.state = StateFailed
		w.lastErr = se
	}
	w.mu.Unlock()
	w.log.Warn("live feed failed", zap.String("kind", se.Kind.String()), zap.Error(se))
}

// UseLocalMode abandons the remote store and serves the in-memory
// dataset. The local dataset is seeded with the sample data on first use
// and survives later mode switches.
func (w *Workspace) UseLocalMode() {
	w.mu.Lock()
	unsubs, cancel := w.unsubs, w.cancelSub
	w.unsubs, w.cancelSub = nil, nil
	if w.local == nil {
		w.local = newLocalData(models.SampleDataset())
	}
	w.state = StateLocal
	w.lastErr = nil
	w.mu.Unlock()
	stopFeeds(unsubs, cancel)

	w.log.Info("switched to local mode")
}

// Close stops the live feeds. The workspace keeps its last snapshot but
// no longer tracks remote changes.
func (w *Workspace) Close() {
	w.mu.Lock()
	unsubs, cancel := w.unsubs, w.cancelSub
	w.unsubs, w.cancelSub = nil, nil
	if w.state == StateReady || w.state == StateInitializing {
		w.state = StateUninitialized
	}
	w.mu.Unlock()
	stopFeeds(unsubs, cancel)
}

func stopFeeds(unsubs []func(), cancel context.CancelFunc) {
	for _, unsub := range unsubs {
		unsub()
	}
	if cancel != nil {
		cancel()
	}
}

// Snapshot returns a copy of the current view. In local mode the lists
// come from the in-memory dataset in the same canonical order the remote
// collections guarantee.
func (w *Workspace) Snapshot() Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.state == StateLocal && w.local != nil {
		ds := w.local.dataset()
		sortLocal(ds.Contacts, store.LessContacts)
		sortLocal(ds.Products, store.LessProducts)
		sortLocal(ds.Orders, store.LessOrders)
		sortLocal(ds.Notes, store.LessNotes)
		sortLocal(ds.Reminders, store.LessReminders)
		return Snapshot{
			State:     w.state,
			Contacts:  ds.Contacts,
			Products:  ds.Products,
			Orders:    ds.Orders,
			Notes:     ds.Notes,
			Reminders: ds.Reminders,
			Vendor:    ds.Vendor,
		}
	}

	return Snapshot{
		State:     w.state,
		Err:       w.lastErr,
		Contacts:  append([]models.Contact(nil), w.contacts...),
		Products:  append([]models.Product(nil), w.products...),
		Orders:    append([]models.Order(nil), w.orders...),
		Notes:     append([]models.Note(nil), w.notes...),
		Reminders: append([]models.Reminder(nil), w.reminders...),
		Vendor:    w.vendor,
	}
}

// State returns the current lifecycle state and last classified error.
func (w *Workspace) State() (State, *store.Error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state, w.lastErr
}

// LocalDataset returns a copy of the in-memory dataset, seeding it first
// if local mode has never been entered. It is the default migration
// input.
func (w *Workspace) LocalDataset() models.Dataset {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.local == nil {
		w.local = newLocalData(models.SampleDataset())
	}
	return w.local.dataset()
}

// Migrate bulk-copies ds into the remote store under this workspace's
// owner. Not idempotent: see store.Migrator.MigrateAll.
func (w *Workspace) Migrate(ctx context.Context, ds models.Dataset) error {
	if err := w.requireSession(); err != nil {
		return err
	}
	if w.src.Migrator == nil {
		return fmt.Errorf("remote store is not configured, migration unavailable")
	}
	return w.src.Migrator.MigrateAll(ctx, ds, w.owner)
}

// Stats recomputes the dashboard analytics from the current snapshot.
func (w *Workspace) Stats() Stats {
	snap := w.Snapshot()
	return ComputeStats(snap.Contacts, snap.Products, snap.Orders, time.Now().UTC(), w.topN)
}

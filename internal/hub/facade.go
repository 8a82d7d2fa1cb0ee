package hub

import (
	"context"

	"varotra-backend-go/internal/models"
	"varotra-backend-go/internal/store"
)

// The CRUD facade. Every method fails fast with store.ErrNotAuthenticated
// when the workspace has no owner session, before any store call. In
// local mode mutations apply synchronously to the in-memory dataset with
// fabricated ids; otherwise they delegate to the remote services and the
// live feeds push the refreshed snapshot back. The state check and the
// local branch share one critical section, so a concurrent mode switch
// cannot route a local mutation against a workspace that already left
// local mode.

func (w *Workspace) AddContact(ctx context.Context, c models.Contact) (string, error) {
	if err := w.requireSession(); err != nil {
		return "", err
	}
	w.mu.Lock()
	if w.state == StateLocal {
		defer w.mu.Unlock()
		return addLocal(&w.local.contacts, w.owner, &c, store.LessContacts), nil
	}
	w.mu.Unlock()
	return w.src.Contacts.Add(ctx, w.owner, &c)
}

// GetContact fetches one contact by id. Absence is (nil, nil), not an
// error, in both modes.
func (w *Workspace) GetContact(ctx context.Context, id string) (*models.Contact, error) {
	if err := w.requireSession(); err != nil {
		return nil, err
	}
	w.mu.RLock()
	if w.state == StateLocal {
		defer w.mu.RUnlock()
		return findLocal[models.Contact, *models.Contact](w.local.contacts, id), nil
	}
	w.mu.RUnlock()
	return w.src.Contacts.GetByID(ctx, id)
}

func (w *Workspace) UpdateContact(ctx context.Context, id string, patch map[string]any) error {
	if err := w.requireSession(); err != nil {
		return err
	}
	w.mu.Lock()
	if w.state == StateLocal {
		defer w.mu.Unlock()
		return updateLocal[models.Contact, *models.Contact](w.local.contacts, id, patch, store.LessContacts)
	}
	w.mu.Unlock()
	return w.src.Contacts.Update(ctx, id, patch)
}

func (w *Workspace) DeleteContact(ctx context.Context, id string) error {
	if err := w.requireSession(); err != nil {
		return err
	}
	w.mu.Lock()
	if w.state == StateLocal {
		defer w.mu.Unlock()
		deleteLocal[models.Contact, *models.Contact](&w.local.contacts, id)
		return nil
	}
	w.mu.Unlock()
	return w.src.Contacts.Delete(ctx, id)
}

func (w *Workspace) AddProduct(ctx context.Context, p models.Product) (string, error) {
	if err := w.requireSession(); err != nil {
		return "", err
	}
	w.mu.Lock()
	if w.state == StateLocal {
		defer w.mu.Unlock()
		return addLocal(&w.local.products, w.owner, &p, store.LessProducts), nil
	}
	w.mu.Unlock()
	return w.src.Products.Add(ctx, w.owner, &p)
}

func (w *Workspace) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	if err := w.requireSession(); err != nil {
		return nil, err
	}
	w.mu.RLock()
	if w.state == StateLocal {
		defer w.mu.RUnlock()
		return findLocal[models.Product, *models.Product](w.local.products, id), nil
	}
	w.mu.RUnlock()
	return w.src.Products.GetByID(ctx, id)
}

func (w *Workspace) UpdateProduct(ctx context.Context, id string, patch map[string]any) error {
	if err := w.requireSession(); err != nil {
		return err
	}
	w.mu.Lock()
	if w.state == StateLocal {
		defer w.mu.Unlock()
		return updateLocal[models.Product, *models.Product](w.local.products, id, patch, store.LessProducts)
	}
	w.mu.Unlock()
	return w.src.Products.Update(ctx, id, patch)
}

func (w *Workspace) DeleteProduct(ctx context.Context, id string) error {
	if err := w.requireSession(); err != nil {
		return err
	}
	w.mu.Lock()
	if w.state == StateLocal {
		defer w.mu.Unlock()
		deleteLocal[models.Product, *models.Product](&w.local.products, id)
		return nil
	}
	w.mu.Unlock()
	return w.src.Products.Delete(ctx, id)
}

func (w *Workspace) AddOrder(ctx context.Context, o models.Order) (string, error) {
	if err := w.requireSession(); err != nil {
		return "", err
	}
	if o.Status == "" {
		o.Status = models.OrderPending
	}
	w.mu.Lock()
	if w.state == StateLocal {
		defer w.mu.Unlock()
		return addLocal(&w.local.orders, w.owner, &o, store.LessOrders), nil
	}
	w.mu.Unlock()
	return w.src.Orders.Add(ctx, w.owner, &o)
}

func (w *Workspace) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	if err := w.requireSession(); err != nil {
		return nil, err
	}
	w.mu.RLock()
	if w.state == StateLocal {
		defer w.mu.RUnlock()
		return findLocal[models.Order, *models.Order](w.local.orders, id), nil
	}
	w.mu.RUnlock()
	return w.src.Orders.GetByID(ctx, id)
}

func (w *Workspace) UpdateOrder(ctx context.Context, id string, patch map[string]any) error {
	if err := w.requireSession(); err != nil {
		return err
	}
	w.mu.Lock()
	if w.state == StateLocal {
		defer w.mu.Unlock()
		return updateLocal[models.Order, *models.Order](w.local.orders, id, patch, store.LessOrders)
	}
	w.mu.Unlock()
	return w.src.Orders.Update(ctx, id, patch)
}

func (w *Workspace) DeleteOrder(ctx context.Context, id string) error {
	if err := w.requireSession(); err != nil {
		return err
	}
	w.mu.Lock()
	if w.state == StateLocal {
		defer w.mu.Unlock()
		deleteLocal[models.Order, *models.Order](&w.local.orders, id)
		return nil
	}
	w.mu.Unlock()
	return w.src.Orders.Delete(ctx, id)
}

func (w *Workspace) AddNote(ctx context.Context, n models.Note) (string, error) {
	if err := w.requireSession(); err != nil {
		return "", err
	}
	w.mu.Lock()
	if w.state == StateLocal {
		defer w.mu.Unlock()
		return addLocal(&w.local.notes, w.owner, &n, store.LessNotes), nil
	}
	w.mu.Unlock()
	return w.src.Notes.Add(ctx, w.owner, &n)
}

func (w *Workspace) UpdateNote(ctx context.Context, id string, patch map[string]any) error {
	if err := w.requireSession(); err != nil {
		return err
	}
	w.mu.Lock()
	if w.state == StateLocal {
		defer w.mu.Unlock()
		return updateLocal[models.Note, *models.Note](w.local.notes, id, patch, store.LessNotes)
	}
	w.mu.Unlock()
	return w.src.Notes.Update(ctx, id, patch)
}

func (w *Workspace) AddReminder(ctx context.Context, r models.Reminder) (string, error) {
	if err := w.requireSession(); err != nil {
		return "", err
	}
	w.mu.Lock()
	if w.state == StateLocal {
		defer w.mu.Unlock()
		return addLocal(&w.local.reminders, w.owner, &r, store.LessReminders), nil
	}
	w.mu.Unlock()
	return w.src.Reminders.Add(ctx, w.owner, &r)
}

func (w *Workspace) UpdateReminder(ctx context.Context, id string, patch map[string]any) error {
	if err := w.requireSession(); err != nil {
		return err
	}
	w.mu.Lock()
	if w.state == StateLocal {
		defer w.mu.Unlock()
		return updateLocal[models.Reminder, *models.Reminder](w.local.reminders, id, patch, store.LessReminders)
	}
	w.mu.Unlock()
	return w.src.Reminders.Update(ctx, id, patch)
}

// SetVendorProfile creates the profile on first call and updates it
// afterwards; there is never more than one per owner.
func (w *Workspace) SetVendorProfile(ctx context.Context, p models.VendorProfile) error {
	if err := w.requireSession(); err != nil {
		return err
	}
	w.mu.Lock()
	if w.state == StateLocal {
		defer w.mu.Unlock()
		w.local.setVendor(w.owner, p)
		return nil
	}
	w.mu.Unlock()
	if err := w.src.Profile.Set(ctx, w.owner, &p); err != nil {
		return err
	}
	// The profile feed will deliver the same value; applying it now keeps
	// the snapshot fresh for an immediate read-back.
	w.replaceFeed(func() { w.vendor = &p })
	return nil
}

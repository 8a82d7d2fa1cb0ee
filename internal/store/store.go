// Package store is the Firestore-backed data layer: one owner-scoped
// collection service per entity kind, the vendor profile singleton, and
// the one-shot bulk migrator.
package store

import (
	"strings"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"

	"varotra-backend-go/internal/models"
)

// Collection names.
const (
	colContacts  = "contacts"
	colProducts  = "products"
	colOrders    = "orders"
	colNotes     = "notes"
	colReminders = "reminders"
	colVendor    = "vendorProfile"
)

// Store bundles the per-collection services over one Firestore client.
type Store struct {
	Contacts  *Collection[models.Contact, *models.Contact]
	Products  *Collection[models.Product, *models.Product]
	Orders    *Collection[models.Order, *models.Order]
	Notes     *Collection[models.Note, *models.Note]
	Reminders *Collection[models.Reminder, *models.Reminder]
	Profile   *ProfileService
	Migrator  *Migrator
}

// New builds the store over client with each collection's canonical order.
func New(client *firestore.Client, log *zap.Logger) *Store {
	return &Store{
		Contacts:  NewCollection[models.Contact, *models.Contact](client, colContacts, LessContacts, log),
		Products:  NewCollection[models.Product, *models.Product](client, colProducts, LessProducts, log),
		Orders:    NewCollection[models.Order, *models.Order](client, colOrders, LessOrders, log),
		Notes:     NewCollection[models.Note, *models.Note](client, colNotes, LessNotes, log),
		Reminders: NewCollection[models.Reminder, *models.Reminder](client, colReminders, LessReminders, log),
		Profile:   NewProfileService(client, colVendor, log),
		Migrator:  NewMigrator(client, log),
	}
}

// Canonical orders. These are part of each collection's contract, not an
// implementation detail: the hub's local fallback mode sorts with the
// same comparators so both data sources present identical ordering.
func LessContacts(a, b models.Contact) bool   { return lessName(a.Name, b.Name) }
func LessProducts(a, b models.Product) bool   { return lessName(a.Name, b.Name) }
func LessOrders(a, b models.Order) bool       { return a.OrderDate.After(b.OrderDate) }
func LessNotes(a, b models.Note) bool         { return a.NoteDate.After(b.NoteDate) }
func LessReminders(a, b models.Reminder) bool { return a.DueDate.Before(b.DueDate) }

// lessName orders names case-insensitively, falling back to the raw
// comparison so equal-fold names still sort deterministically.
func lessName(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}

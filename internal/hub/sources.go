// Package hub is the aggregation layer the API surface depends on: one
// workspace per owner composing the entity collection services, the
// migration service, live snapshots, the local fallback mode, and the
// derived dashboard analytics.
package hub

import (
	"context"

	"varotra-backend-go/internal/models"
	"varotra-backend-go/internal/store"
)

// EntityOps is the per-entity CRUD and subscription contract a workspace
// consumes. The remote implementation is store.Collection; tests inject
// in-memory fakes. Keeping the remote/local decision behind this seam is
// what keeps it out of every other layer.
type EntityOps[T any] interface {
	GetAll(ctx context.Context, ownerID string) ([]T, error)
	GetByID(ctx context.Context, id string) (*T, error)
	Add(ctx context.Context, ownerID string, doc *T) (string, error)
	Update(ctx context.Context, id string, patch map[string]any) error
	Delete(ctx context.Context, id string) error
	Subscribe(ctx context.Context, ownerID string, onChange func([]T), onError func(error)) (func(), error)
}

// ProfileOps is the vendor profile singleton contract.
type ProfileOps interface {
	Get(ctx context.Context, ownerID string) (*models.VendorProfile, error)
	Set(ctx context.Context, ownerID string, profile *models.VendorProfile) error
	Subscribe(ctx context.Context, ownerID string, onChange func(*models.VendorProfile), onError func(error)) (func(), error)
}

// BulkMigrator imports a whole local dataset in one atomic commit.
type BulkMigrator interface {
	MigrateAll(ctx context.Context, ds models.Dataset, ownerID string) error
}

// Sources bundles the remote-backed services a workspace delegates to.
// Migrator may be nil when the application runs without a remote store.
type Sources struct {
	Contacts  EntityOps[models.Contact]
	Products  EntityOps[models.Product]
	Orders    EntityOps[models.Order]
	Notes     EntityOps[models.Note]
	Reminders EntityOps[models.Reminder]
	Profile   ProfileOps
	Migrator  BulkMigrator
}

// Remote reports whether the remote-backed services are configured. A
// zero Sources value means the application runs without a remote store.
func (s Sources) Remote() bool {
	return s.Contacts != nil && s.Products != nil && s.Orders != nil &&
		s.Notes != nil && s.Reminders != nil && s.Profile != nil
}

// FromStore adapts a store bundle into workspace sources.
func FromStore(s *store.Store) Sources {
	return Sources{
		Contacts:  s.Contacts,
		Products:  s.Products,
		Orders:    s.Orders,
		Notes:     s.Notes,
		Reminders: s.Reminders,
		Profile:   s.Profile,
		Migrator:  s.Migrator,
	}
}

// Compile-time checks that the store layer satisfies the workspace seam.
var (
	_ EntityOps[models.Contact] = (*store.Collection[models.Contact, *models.Contact])(nil)
	_ ProfileOps                = (*store.ProfileService)(nil)
	_ BulkMigrator              = (*store.Migrator)(nil)
)

package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"

	"varotra-backend-go/internal/models"
)

// MaxMigrationRecords is the largest dataset MigrateAll accepts. Firestore
// caps a transaction at 500 writes, and the commit must stay a single
// transaction to keep the all-or-nothing guarantee.
const MaxMigrationRecords = 500

// Migrator copies an entire local dataset into the store in one atomic
// commit.
type Migrator struct {
	client *firestore.Client
	log    *zap.Logger
}

func NewMigrator(client *firestore.Client, log *zap.Logger) *Migrator {
	return &Migrator{client: client, log: log.Named("migrate")}
}

// ValidateDataset checks a dataset against the migration bounds without
// touching the store.
func ValidateDataset(ds models.Dataset) error {
	if ds.Empty() {
		return fmt.Errorf("dataset is empty, nothing to migrate")
	}
	if n := ds.Count(); n > MaxMigrationRecords {
		return fmt.Errorf("dataset holds %d records, the atomic commit limit is %d", n, MaxMigrationRecords)
	}
	return nil
}

// MigrateAll writes every record in ds under ownerID in a single
// transaction: either all records land with fresh store-assigned ids,
// stamped owner and server timestamps, or none do. Source ids are
// discarded.
//
// MigrateAll is not idempotent. Running it twice with the same input
// duplicates every record; avoiding re-runs after a successful import is
// the caller's responsibility.
func (m *Migrator) MigrateAll(ctx context.Context, ds models.Dataset, ownerID string) error {
	if ownerID == "" {
		return ErrNotAuthenticated
	}
	if err := ValidateDataset(ds); err != nil {
		return &MigrationError{Err: err}
	}

	err := m.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		for i := range ds.Contacts {
			rec := ds.Contacts[i]
			rec.Meta = models.Meta{UserID: ownerID}
			if err := tx.Create(m.client.Collection(colContacts).NewDoc(), &rec); err != nil {
				return err
			}
		}
		for i := range ds.Products {
			rec := ds.Products[i]
			rec.Meta = models.Meta{UserID: ownerID}
			if err := tx.Create(m.client.Collection(colProducts).NewDoc(), &rec); err != nil {
				return err
			}
		}
		for i := range ds.Orders {
			rec := ds.Orders[i]
			rec.Meta = models.Meta{UserID: ownerID}
			if err := tx.Create(m.client.Collection(colOrders).NewDoc(), &rec); err != nil {
				return err
			}
		}
		for i := range ds.Notes {
			rec := ds.Notes[i]
			rec.Meta = models.Meta{UserID: ownerID}
			if err := tx.Create(m.client.Collection(colNotes).NewDoc(), &rec); err != nil {
				return err
			}
		}
		for i := range ds.Reminders {
			rec := ds.Reminders[i]
			rec.Meta = models.Meta{UserID: ownerID}
			if err := tx.Create(m.client.Collection(colReminders).NewDoc(), &rec); err != nil {
				return err
			}
		}
		if ds.Vendor != nil {
			rec := *ds.Vendor
			rec.Meta = models.Meta{UserID: ownerID}
			if err := tx.Create(m.client.Collection(colVendor).NewDoc(), &rec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return &MigrationError{Err: Classify("migrate", err)}
	}

	m.log.Info("migration committed",
		zap.String("owner", ownerID), zap.Int("records", ds.Count()))
	return nil
}

package store

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"varotra-backend-go/internal/models"
)

func TestLessNameOrdering(t *testing.T) {
	names := []string{"voahangy", "Hery", "rasoa", "Rasoa"}
	sort.SliceStable(names, func(i, j int) bool { return lessName(names[i], names[j]) })
	assert.Equal(t, []string{"Hery", "Rasoa", "rasoa", "voahangy"}, names)
}

func TestCanonicalOrderLessFuncs(t *testing.T) {
	d1 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	d3 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("orders newest first", func(t *testing.T) {
		orders := []models.Order{
			{OrderDate: d3}, {OrderDate: d1}, {OrderDate: d2},
		}
		sort.SliceStable(orders, func(i, j int) bool { return LessOrders(orders[i], orders[j]) })
		assert.Equal(t, []time.Time{d1, d2, d3},
			[]time.Time{orders[0].OrderDate, orders[1].OrderDate, orders[2].OrderDate})
	})

	t.Run("reminders soonest first", func(t *testing.T) {
		reminders := []models.Reminder{
			{DueDate: d1}, {DueDate: d3}, {DueDate: d2},
		}
		sort.SliceStable(reminders, func(i, j int) bool { return LessReminders(reminders[i], reminders[j]) })
		assert.Equal(t, []time.Time{d3, d2, d1},
			[]time.Time{reminders[0].DueDate, reminders[1].DueDate, reminders[2].DueDate})
	})
}

func TestValidateDataset(t *testing.T) {
	t.Run("empty dataset rejected", func(t *testing.T) {
		err := ValidateDataset(models.Dataset{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})

	t.Run("oversize dataset rejected", func(t *testing.T) {
		ds := models.Dataset{Contacts: make([]models.Contact, MaxMigrationRecords+1)}
		err := ValidateDataset(ds)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "501")
	})

	t.Run("vendor counts toward the limit", func(t *testing.T) {
		ds := models.Dataset{
			Contacts: make([]models.Contact, MaxMigrationRecords),
			Vendor:   &models.VendorProfile{ShopName: "Tsena Soa"},
		}
		assert.Error(t, ValidateDataset(ds))
	})

	t.Run("sample dataset is migratable", func(t *testing.T) {
		assert.NoError(t, ValidateDataset(models.SampleDataset()))
	})
}

package hub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"varotra-backend-go/internal/models"
)

func analyticsFixture() ([]models.Contact, []models.Product, []models.Order, time.Time) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	contacts := []models.Contact{
		{Meta: models.Meta{ID: "c1"}, Name: "Rasoa"},
		{Meta: models.Meta{ID: "c2"}, Name: "Hery"},
		{Meta: models.Meta{ID: "c3"}, Name: "Voahangy"},
	}
	products := []models.Product{
		{Meta: models.Meta{ID: "p1"}, Name: "Vary gasy 5kg", Stock: 3, LowStockThreshold: 10},
		{Meta: models.Meta{ID: "p2"}, Name: "Savony", Stock: 100, LowStockThreshold: 20},
	}
	orders := []models.Order{
		{
			Meta: models.Meta{ID: "o1"}, ContactID: "c1", Status: models.OrderDelivered,
			OrderDate: now.AddDate(0, 0, -2), Total: 46000,
			Items: []models.OrderItem{
				{ProductID: "p1", Name: "Vary gasy 5kg", Quantity: 2, UnitPrice: 18000},
				{ProductID: "p2", Name: "Savony", Quantity: 4, UnitPrice: 2500},
			},
		},
		{
			Meta: models.Meta{ID: "o2"}, ContactID: "c2", Status: models.OrderPending,
			OrderDate: now.AddDate(0, -2, 0), Total: 11000,
			Items: []models.OrderItem{
				{ProductID: "p2", Name: "Savony", Quantity: 1, UnitPrice: 11000},
			},
		},
		{
			Meta: models.Meta{ID: "o3"}, ContactID: "c1", Status: models.OrderCancelled,
			OrderDate: now.AddDate(0, 0, -1), Total: 99000,
			Items: []models.OrderItem{
				{ProductID: "p1", Name: "Vary gasy 5kg", Quantity: 5, UnitPrice: 18000},
			},
		},
	}
	return contacts, products, orders, now
}

func TestComputeStatsRevenue(t *testing.T) {
	contacts, products, orders, now := analyticsFixture()

	stats := ComputeStats(contacts, products, orders, now, 5)

	assert.Equal(t, 57000.0, stats.TotalRevenue, "cancelled orders are excluded")
	assert.Equal(t, 46000.0, stats.MonthlyRevenue, "only the current month counts")
	assert.Equal(t, 28500.0, stats.AverageOrderValue)
	assert.Equal(t, 2, stats.ActiveCustomers)
	assert.Equal(t, DeliveryCounts{Pending: 1, Delivered: 1, Cancelled: 1}, stats.Deliveries)
}

func TestComputeStatsRankings(t *testing.T) {
	contacts, products, orders, now := analyticsFixture()

	stats := ComputeStats(contacts, products, orders, now, 5)

	require.Len(t, stats.TopProducts, 2)
	assert.Equal(t, "Vary gasy 5kg", stats.TopProducts[0].Name)
	assert.Equal(t, 36000.0, stats.TopProducts[0].Revenue)
	assert.Equal(t, "Savony", stats.TopProducts[1].Name)
	assert.Equal(t, 21000.0, stats.TopProducts[1].Revenue)
	assert.Equal(t, 5, stats.TopProducts[1].Quantity)

	require.Len(t, stats.TopCustomers, 2)
	assert.Equal(t, "Rasoa", stats.TopCustomers[0].Name)
	assert.Equal(t, 46000.0, stats.TopCustomers[0].Spent)
	assert.Equal(t, "Hery", stats.TopCustomers[1].Name)
}

func TestComputeStatsTopNBound(t *testing.T) {
	contacts, products, orders, now := analyticsFixture()

	stats := ComputeStats(contacts, products, orders, now, 1)

	assert.Len(t, stats.TopProducts, 1)
	assert.Len(t, stats.TopCustomers, 1)
}

func TestComputeStatsLowStock(t *testing.T) {
	contacts, products, orders, now := analyticsFixture()

	stats := ComputeStats(contacts, products, orders, now, 5)

	require.Len(t, stats.LowStockProducts, 1)
	assert.Equal(t, "Vary gasy 5kg", stats.LowStockProducts[0].Name)
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil, nil, nil, time.Now(), 5)

	assert.Zero(t, stats.TotalRevenue)
	assert.Zero(t, stats.AverageOrderValue)
	assert.Empty(t, stats.TopProducts)
	assert.Empty(t, stats.TopCustomers)
}

func TestComputeStatsDoesNotMutateInputs(t *testing.T) {
	contacts, products, orders, now := analyticsFixture()
	beforeTotal := orders[0].Total
	beforeStock := products[0].Stock

	_ = ComputeStats(contacts, products, orders, now, 5)

	assert.Equal(t, beforeTotal, orders[0].Total)
	assert.Equal(t, beforeStock, products[0].Stock)
}

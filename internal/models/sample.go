package models

import "time"

// SampleDataset returns the demo dataset served in local fallback mode.
// Ids here are local placeholders only; migration discards them and lets
// the store assign fresh ones.
func SampleDataset() Dataset {
	day := 24 * time.Hour
	now := time.Now().UTC().Truncate(time.Minute)
	lastOrder := now.Add(-3 * day)

	return Dataset{
		Contacts: []Contact{
			{
				Meta:        Meta{ID: "local-contact-1"},
				Name:        "Rasoa Andrianina",
				Phone:       "+261 34 12 345 67",
				Address:     "Lot II B 24, Antananarivo",
				Notes:       []string{"prefers morning deliveries", "regular since 2023"},
				TotalSpent:  185000,
				OrderCount:  4,
				LastOrderAt: &lastOrder,
			},
			{
				Meta:       Meta{ID: "local-contact-2"},
				Name:       "Hery Rakoto",
				Phone:      "+261 33 98 765 43",
				Address:    "Ambohibao",
				TotalSpent: 42000,
				OrderCount: 1,
			},
			{
				Meta: Meta{ID: "local-contact-3"},
				Name: "Voahangy Raharisoa",
			},
		},
		Products: []Product{
			{Meta: Meta{ID: "local-product-1"}, Name: "Vary gasy 5kg", Category: "staples", Price: 18000, Cost: 14500, Stock: 32, LowStockThreshold: 10},
			{Meta: Meta{ID: "local-product-2"}, Name: "Menaka 1L", Category: "staples", Price: 11000, Cost: 8900, Stock: 7, LowStockThreshold: 8},
			{Meta: Meta{ID: "local-product-3"}, Name: "Savony", Category: "household", Price: 2500, Cost: 1700, Stock: 120, LowStockThreshold: 20},
		},
		Orders: []Order{
			{
				Meta:        Meta{ID: "local-order-1"},
				ContactID:   "local-contact-1",
				ContactName: "Rasoa Andrianina",
				Items: []OrderItem{
					{ProductID: "local-product-1", Name: "Vary gasy 5kg", Quantity: 2, UnitPrice: 18000},
					{ProductID: "local-product-3", Name: "Savony", Quantity: 4, UnitPrice: 2500},
				},
				Total:           46000,
				Status:          OrderDelivered,
				OrderDate:       now.Add(-3 * day),
				DeliveryAddress: "Lot II B 24, Antananarivo",
			},
			{
				Meta:        Meta{ID: "local-order-2"},
				ContactID:   "local-contact-2",
				ContactName: "Hery Rakoto",
				Items: []OrderItem{
					{ProductID: "local-product-2", Name: "Menaka 1L", Quantity: 1, UnitPrice: 11000},
				},
				Total:     11000,
				Status:    OrderPending,
				OrderDate: now.Add(-1 * day),
			},
		},
		Notes: []Note{
			{Meta: Meta{ID: "local-note-1"}, ContactID: "local-contact-1", ContactName: "Rasoa Andrianina", Body: "Asked about bulk pricing on rice.", NoteDate: now.Add(-2 * day)},
		},
		Reminders: []Reminder{
			{Meta: Meta{ID: "local-reminder-1"}, Title: "Restock Menaka 1L", DueDate: now.Add(2 * day)},
			{Meta: Meta{ID: "local-reminder-2"}, Title: "Call Hery about delivery", ContactID: "local-contact-2", DueDate: now.Add(1 * day)},
		},
		Vendor: &VendorProfile{
			Meta:      Meta{ID: "local-vendor-1"},
			ShopName:  "Tsena Soa",
			OwnerName: "Mamy Rasolofo",
			Phone:     "+261 32 55 443 21",
			Address:   "Analakely, Antananarivo",
			Currency:  "MGA",
		},
	}
}

package hub

import (
	"sort"
	"time"

	"varotra-backend-go/internal/models"
)

// ProductRevenue ranks a product by the revenue its order lines produced.
type ProductRevenue struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Revenue   float64 `json:"revenue"`
}

// CustomerSpend ranks a customer by total spend.
type CustomerSpend struct {
	ContactID string  `json:"contactId"`
	Name      string  `json:"name"`
	Orders    int     `json:"orders"`
	Spent     float64 `json:"spent"`
}

// DeliveryCounts tallies orders per delivery outcome.
type DeliveryCounts struct {
	Pending   int `json:"pending"`
	Delivered int `json:"delivered"`
	Cancelled int `json:"cancelled"`
}

// Stats is the derived dashboard view. It is recomputed from the current
// snapshot on every read and never persisted.
type Stats struct {
	TotalRevenue      float64          `json:"totalRevenue"`
	MonthlyRevenue    float64          `json:"monthlyRevenue"`
	ActiveCustomers   int              `json:"activeCustomers"`
	AverageOrderValue float64          `json:"averageOrderValue"`
	TopProducts       []ProductRevenue `json:"topProducts"`
	TopCustomers      []CustomerSpend  `json:"topCustomers"`
	Deliveries        DeliveryCounts   `json:"deliveries"`
	LowStockProducts  []models.Product `json:"lowStockProducts"`
}

// ComputeStats derives the dashboard numbers from a snapshot. Cancelled
// orders are excluded from every revenue figure but still counted in the
// delivery tally. Rankings break revenue ties by name so the output is
// deterministic for any input order. Inputs are read, never mutated.
func ComputeStats(contacts []models.Contact, products []models.Product, orders []models.Order, now time.Time, topN int) Stats {
	if topN <= 0 {
		topN = 5
	}

	names := make(map[string]string, len(contacts))
	for _, c := range contacts {
		names[c.ID] = c.Name
	}

	var stats Stats
	billed := 0
	productAgg := make(map[string]*ProductRevenue)
	customerAgg := make(map[string]*CustomerSpend)
	year, month := now.Year(), now.Month()

	for _, o := range orders {
		switch o.Status {
		case models.OrderDelivered:
			stats.Deliveries.Delivered++
		case models.OrderCancelled:
			stats.Deliveries.Cancelled++
			continue
		default:
			stats.Deliveries.Pending++
		}

		billed++
		stats.TotalRevenue += o.Total
		if o.OrderDate.Year() == year && o.OrderDate.Month() == month {
			stats.MonthlyRevenue += o.Total
		}

		for _, item := range o.Items {
			key := item.ProductID
			if key == "" {
				key = item.Name
			}
			agg, ok := productAgg[key]
			if !ok {
				agg = &ProductRevenue{ProductID: item.ProductID, Name: item.Name}
				productAgg[key] = agg
			}
			agg.Quantity += item.Quantity
			agg.Revenue += float64(item.Quantity) * item.UnitPrice
		}

		cust, ok := customerAgg[o.ContactID]
		if !ok {
			name := names[o.ContactID]
			if name == "" {
				name = o.ContactName
			}
			cust = &CustomerSpend{ContactID: o.ContactID, Name: name}
			customerAgg[o.ContactID] = cust
		}
		cust.Orders++
		cust.Spent += o.Total
	}

	stats.ActiveCustomers = len(customerAgg)
	if billed > 0 {
		stats.AverageOrderValue = stats.TotalRevenue / float64(billed)
	}

	stats.TopProducts = topProducts(productAgg, topN)
	stats.TopCustomers = topCustomers(customerAgg, topN)

	for _, p := range products {
		if p.LowStockThreshold > 0 && p.Stock <= p.LowStockThreshold {
			stats.LowStockProducts = append(stats.LowStockProducts, p)
		}
	}
	return stats
}

func topProducts(agg map[string]*ProductRevenue, n int) []ProductRevenue {
	ranked := make([]ProductRevenue, 0, len(agg))
	for _, a := range agg {
		ranked = append(ranked, *a)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Revenue != ranked[j].Revenue {
			return ranked[i].Revenue > ranked[j].Revenue
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func topCustomers(agg map[string]*CustomerSpend, n int) []CustomerSpend {
	ranked := make([]CustomerSpend, 0, len(agg))
	for _, a := range agg {
		ranked = append(ranked, *a)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Spent != ranked[j].Spent {
			return ranked[i].Spent > ranked[j].Spent
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

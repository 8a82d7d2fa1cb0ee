package models

// Product is a catalog entry with current stock levels. Price is the sale
// price, Cost the purchase cost; both are in the vendor's configured
// currency. Stock at or below LowStockThreshold flags the product for
// restocking on the dashboard.
type Product struct {
	Meta
	Name              string  `json:"name" firestore:"name"`
	Category          string  `json:"category,omitempty" firestore:"category,omitempty"`
	Price             float64 `json:"price" firestore:"price"`
	Cost              float64 `json:"cost" firestore:"cost"`
	Stock             int     `json:"stock" firestore:"stock"`
	LowStockThreshold int     `json:"lowStockThreshold" firestore:"lowStockThreshold"`
}

package models

import "time"

// OrderStatus tracks the delivery outcome of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// OrderItem is one line of an order. Name and UnitPrice are copied from the
// product at order time so later catalog edits do not rewrite history.
type OrderItem struct {
	ProductID string  `json:"productId" firestore:"productId"`
	Name      string  `json:"name" firestore:"name"`
	Quantity  int     `json:"quantity" firestore:"quantity"`
	UnitPrice float64 `json:"unitPrice" firestore:"unitPrice"`
}

// Order is a customer order with its line items and delivery address.
// ContactName is denormalized for list rendering without a join.
type Order struct {
	Meta
	ContactID       string      `json:"contactId" firestore:"contactId"`
	ContactName     string      `json:"contactName,omitempty" firestore:"contactName,omitempty"`
	Items           []OrderItem `json:"items" firestore:"items"`
	Total           float64     `json:"total" firestore:"total"`
	Status          OrderStatus `json:"status" firestore:"status"`
	OrderDate       time.Time   `json:"orderDate" firestore:"orderDate"`
	DeliveryAddress string      `json:"deliveryAddress,omitempty" firestore:"deliveryAddress,omitempty"`
}

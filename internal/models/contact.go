package models

import "time"

// Contact is a customer record. Notes holds free-form remarks as plain
// strings; the structured follow-up notes live in their own collection
// (see Note). TotalSpent, OrderCount and LastOrderAt are denormalized
// purchase aggregates maintained alongside order writes.
type Contact struct {
	Meta
	Name        string     `json:"name" firestore:"name"`
	Phone       string     `json:"phone,omitempty" firestore:"phone,omitempty"`
	Email       string     `json:"email,omitempty" firestore:"email,omitempty"`
	Address     string     `json:"address,omitempty" firestore:"address,omitempty"`
	Notes       []string   `json:"notes,omitempty" firestore:"notes,omitempty"`
	TotalSpent  float64    `json:"totalSpent" firestore:"totalSpent"`
	OrderCount  int        `json:"orderCount" firestore:"orderCount"`
	LastOrderAt *time.Time `json:"lastOrderAt,omitempty" firestore:"lastOrderAt,omitempty"`
}

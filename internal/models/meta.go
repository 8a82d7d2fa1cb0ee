package models

import "time"

// Meta carries the fields every stored document shares. ID is the Firestore
// document ID and is never written into the document body; UserID is the
// owning account and the only filter key used on reads. CreatedAt and
// UpdatedAt are stamped server-side via the serverTimestamp tag.
type Meta struct {
	ID        string    `json:"id" firestore:"-"`
	UserID    string    `json:"userId" firestore:"userId"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

// DocMeta exposes the shared document fields to the generic store layer.
func (m *Meta) DocMeta() *Meta { return m }

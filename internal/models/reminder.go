package models

import "time"

// Reminder is a dated follow-up with a completion flag, optionally tied to
// a contact.
type Reminder struct {
	Meta
	Title     string    `json:"title" firestore:"title"`
	Details   string    `json:"details,omitempty" firestore:"details,omitempty"`
	ContactID string    `json:"contactId,omitempty" firestore:"contactId,omitempty"`
	DueDate   time.Time `json:"dueDate" firestore:"dueDate"`
	Done      bool      `json:"done" firestore:"done"`
}

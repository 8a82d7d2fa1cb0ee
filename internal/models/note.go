package models

import "time"

// Note is a dated free-form note tied to a contact.
type Note struct {
	Meta
	ContactID   string    `json:"contactId" firestore:"contactId"`
	ContactName string    `json:"contactName,omitempty" firestore:"contactName,omitempty"`
	Body        string    `json:"body" firestore:"body"`
	NoteDate    time.Time `json:"noteDate" firestore:"noteDate"`
}

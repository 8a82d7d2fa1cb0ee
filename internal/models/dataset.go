package models

// Dataset bundles the records of every entity kind. It is the unit the
// migration service imports in one shot and the shape the local fallback
// mode serves from memory. Vendor may be nil.
type Dataset struct {
	Contacts  []Contact      `json:"contacts"`
	Products  []Product      `json:"products"`
	Orders    []Order        `json:"orders"`
	Notes     []Note         `json:"notes"`
	Reminders []Reminder     `json:"reminders"`
	Vendor    *VendorProfile `json:"vendor,omitempty"`
}

// Count returns the total number of records in the dataset, the vendor
// profile included when present.
func (d Dataset) Count() int {
	n := len(d.Contacts) + len(d.Products) + len(d.Orders) + len(d.Notes) + len(d.Reminders)
	if d.Vendor != nil {
		n++
	}
	return n
}

// Empty reports whether the dataset holds no records at all.
func (d Dataset) Empty() bool { return d.Count() == 0 }

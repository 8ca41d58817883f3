package model

// Customer is a single row of customers table
type Customer struct {
	ID        int64   `json:"id" msgpack:"id"`
	FirstName string  `json:"firstName" msgpack:"firstName"`
	LastName  string  `json:"lastName" msgpack:"lastName"`
	Phone     *string `json:"phone" msgpack:"phone"`
	Notes     string  `json:"notes" msgpack:"notes"`
	// NumReservations is populated by the top customers query only,
	// it is never written back to the table
	NumReservations int64 `json:"numReservations,omitempty" msgpack:"numReservations"`
}

// NewCustomer builds Customer from a field bag. Zero id means the customer
// was not persisted yet. Missing notes become empty string, never NULL.
func NewCustomer(id int64, firstName, lastName string, phone, notes *string) *Customer {
	c := &Customer{
		ID:        id,
		FirstName: firstName,
		LastName:  lastName,
		Phone:     phone,
	}
	c.SetNotes(notes)
	return c
}

// SetNotes coerces absent notes to empty string
func (c *Customer) SetNotes(notes *string) {
	if notes == nil {
		c.Notes = ""
		return
	}
	c.Notes = *notes
}

// FullName is first and last name separated by a single space
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Persisted reports whether the customer already has a store-assigned id
func (c *Customer) Persisted() bool {
	return c.ID != 0
}

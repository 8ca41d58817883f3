package model

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/umalmyha/lunchly/internal/errors"
)

// StartAtLayout is the accepted human format of reservation start time
const StartAtLayout = "2006-01-02 3:04 pm"

// Reservation is a single row of reservations table. Customer id and start
// time are guarded by validating setters, so they are not exported directly.
type Reservation struct {
	ID        int64
	NumGuests int
	Notes     *string

	customerID int64
	startAt    time.Time
}

// NewReservation builds Reservation from a field bag. Zero id means the
// reservation was not persisted yet. Customer id and start time are validated
// immediately, not deferred to save.
func NewReservation(id, customerID int64, numGuests int, startAt time.Time, notes *string) (*Reservation, error) {
	r := &Reservation{
		ID:        id,
		NumGuests: numGuests,
		Notes:     notes,
	}

	if err := r.SetCustomerID(customerID); err != nil {
		return nil, err
	}

	if err := r.SetStartAt(startAt); err != nil {
		return nil, err
	}

	return r, nil
}

// CustomerID is id of the owning customer
func (r *Reservation) CustomerID() int64 {
	return r.customerID
}

// SetCustomerID assigns owning customer once. Re-assignment to the same value
// is allowed, to a different one is not.
func (r *Reservation) SetCustomerID(id int64) error {
	if r.customerID != 0 && id != r.customerID {
		return apperrors.NewValidationErr("customerId", "cannot reassign value of customerId")
	}
	r.customerID = id
	return nil
}

// StartAt is reservation start time
func (r *Reservation) StartAt() time.Time {
	return r.startAt
}

// SetStartAt rejects anything which is not an actual point in time
func (r *Reservation) SetStartAt(startAt time.Time) error {
	if startAt.IsZero() {
		return apperrors.NewValidationErr(
			"startAt",
			fmt.Sprintf("reservation start is not a valid date, must be formatted as YYYY-MM-DD h:mm am/pm like 2022-08-27 6:00 pm (%s)", StartAtLayout),
		)
	}
	r.startAt = startAt
	return nil
}

// ValidateGuests enforces the guest count rule, checked on every save
func (r *Reservation) ValidateGuests() error {
	if r.NumGuests < 1 {
		return apperrors.NewValidationErr("numGuests", "1 or more guests required to make reservation")
	}
	return nil
}

// ApplyStored adopts store-assigned id and the echoed back start time and
// notes after insert, allowing the store to normalize them
func (r *Reservation) ApplyStored(id int64, startAt time.Time, notes *string) {
	r.ID = id
	r.startAt = startAt
	r.Notes = notes
}

// FormattedStartAt renders start time as "August 27th 2022, 6:00 pm"
func (r *Reservation) FormattedStartAt() string {
	day := r.startAt.Day()
	return fmt.Sprintf("%s %d%s %d, %s",
		r.startAt.Month(), day, ordinalSuffix(day), r.startAt.Year(),
		strings.ToLower(r.startAt.Format("3:04 PM")),
	)
}

func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

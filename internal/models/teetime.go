package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidBooking = errors.New("invalid booking request")

// TeeTime is a bookable slot. It keeps its own list of reservations booked
// against it, separate from any flat reservation collection.
type TeeTime struct {
	ID             string
	Date           string
	Time           string
	TeeBox         string
	MaxPartySize   int
	PricePerPerson float64
	Reservations   []Reservation
}

// BookedSpots returns the sum of party sizes already booked on this slot.
func (t *TeeTime) BookedSpots() int {
	total := 0
	for _, r := range t.Reservations {
		total += r.PartySize
	}
	return total
}

// AvailableSpots returns how many more people fit on this slot.
func (t *TeeTime) AvailableSpots() int {
	return t.MaxPartySize - t.BookedSpots()
}

func (t *TeeTime) IsFullyBooked() bool {
	return t.AvailableSpots() <= 0
}

// Book reserves partySize spots for username. It returns ErrInvalidBooking
// for a non-positive party size or empty username, and (nil, nil) when the
// slot does not have enough capacity left.
func (t *TeeTime) Book(partySize int, username string) (*Reservation, error) {
	if partySize <= 0 {
		return nil, fmt.Errorf("%w: party size must be positive, got %d", ErrInvalidBooking, partySize)
	}
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidBooking)
	}
	if t.AvailableSpots() < partySize {
		return nil, nil
	}
	res := Reservation{
		ID:        uuid.NewString(),
		Username:  username,
		Date:      t.Date,
		Time:      t.Time,
		PartySize: partySize,
		TeeBox:    t.TeeBox,
		Price:     t.PricePerPerson * float64(partySize),
	}
	t.Reservations = append(t.Reservations, res)
	return &res, nil
}

// Cancel removes the reservation with the given id from this slot's booked
// list. It reports whether anything was removed.
func (t *TeeTime) Cancel(reservationID string) bool {
	for i, r := range t.Reservations {
		if r.ID == reservationID {
			t.Reservations = append(t.Reservations[:i], t.Reservations[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a deep copy, including the booked list.
func (t *TeeTime) Clone() TeeTime {
	cp := *t
	cp.Reservations = append([]Reservation(nil), t.Reservations...)
	return cp
}

// ToFileString encodes the slot as one comma-joined record line. The booked
// list is persisted separately as reservations.
func (t *TeeTime) ToFileString() string {
	return strings.Join([]string{
		t.ID,
		t.Date,
		t.Time,
		t.TeeBox,
		strconv.Itoa(t.MaxPartySize),
		formatPrice(t.PricePerPerson),
	}, ",")
}

// TeeTimeFromFileString parses one record line back into a TeeTime.
func TeeTimeFromFileString(line string) (TeeTime, error) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) != 6 {
		return TeeTime{}, fmt.Errorf("tee time record: expected 6 fields, got %d", len(fields))
	}
	maxPartySize, err := strconv.Atoi(fields[4])
	if err != nil {
		return TeeTime{}, fmt.Errorf("tee time record: bad maxPartySize: %w", err)
	}
	price, err := strconv.ParseFloat(fields[5], 64)
	if err != nil {
		return TeeTime{}, fmt.Errorf("tee time record: bad pricePerPerson: %w", err)
	}
	return TeeTime{
		ID:             fields[0],
		Date:           fields[1],
		Time:           fields[2],
		TeeBox:         fields[3],
		MaxPartySize:   maxPartySize,
		PricePerPerson: price,
	}, nil
}

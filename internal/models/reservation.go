package models

import (
	"fmt"
	"strconv"
	"strings"
)

// EventTag marks an event record in a shared reservation file.
const EventTag = "EVENT"

type Reservation struct {
	ID        string
	Username  string
	Date      string
	Time      string
	PartySize int
	TeeBox    string
	Price     float64
	Paid      bool
}

func (r Reservation) IsEvent() bool { return false }

// ToFileString encodes the reservation as one comma-joined record line.
func (r Reservation) ToFileString() string {
	return strings.Join([]string{
		r.ID,
		r.Username,
		r.Date,
		r.Time,
		strconv.Itoa(r.PartySize),
		r.TeeBox,
		formatPrice(r.Price),
		strconv.FormatBool(r.Paid),
	}, ",")
}

// ReservationFromFileString parses one record line back into a Reservation.
func ReservationFromFileString(line string) (Reservation, error) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) != 8 {
		return Reservation{}, fmt.Errorf("reservation record: expected 8 fields, got %d", len(fields))
	}
	return reservationFromFields(fields)
}

func reservationFromFields(fields []string) (Reservation, error) {
	partySize, err := strconv.Atoi(fields[4])
	if err != nil {
		return Reservation{}, fmt.Errorf("reservation record: bad partySize: %w", err)
	}
	price, err := strconv.ParseFloat(fields[6], 64)
	if err != nil {
		return Reservation{}, fmt.Errorf("reservation record: bad price: %w", err)
	}
	paid, err := strconv.ParseBool(fields[7])
	if err != nil {
		return Reservation{}, fmt.Errorf("reservation record: bad paid flag: %w", err)
	}
	return Reservation{
		ID:        fields[0],
		Username:  fields[1],
		Date:      fields[2],
		Time:      fields[3],
		PartySize: partySize,
		TeeBox:    fields[5],
		Price:     price,
		Paid:      paid,
	}, nil
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

package models

import (
	"fmt"
	"strings"
)

// Events occupy the whole course for their duration.
const (
	EventPartySize = 200
	EventTeeBox    = "All"
)

// Event is a reservation spanning a date range. The Username field carries
// the event name.
type Event struct {
	Reservation
	EndDate string
	EndTime string
}

func (e Event) IsEvent() bool { return true }

// NewEvent builds an event with the fixed party size and tee box convention.
func NewEvent(id, name, date, startTime, endDate, endTime string, price float64) Event {
	return Event{
		Reservation: Reservation{
			ID:        id,
			Username:  name,
			Date:      date,
			Time:      startTime,
			PartySize: EventPartySize,
			TeeBox:    EventTeeBox,
			Price:     price,
		},
		EndDate: endDate,
		EndTime: endTime,
	}
}

// ToFileString encodes the event with the EVENT tag as field 0 so event
// records stay distinguishable when they share a file with reservations.
func (e Event) ToFileString() string {
	return strings.Join([]string{
		EventTag,
		e.Reservation.ToFileString(),
		e.EndDate,
		e.EndTime,
	}, ",")
}

// EventFromFileString parses one tagged record line back into an Event.
func EventFromFileString(line string) (Event, error) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) != 11 {
		return Event{}, fmt.Errorf("event record: expected 11 fields, got %d", len(fields))
	}
	if fields[0] != EventTag {
		return Event{}, fmt.Errorf("event record: missing %s tag", EventTag)
	}
	res, err := reservationFromFields(fields[1:9])
	if err != nil {
		return Event{}, err
	}
	return Event{
		Reservation: res,
		EndDate:     fields[9],
		EndTime:     fields[10],
	}, nil
}

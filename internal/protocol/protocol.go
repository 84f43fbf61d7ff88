// Package protocol defines the pipe-delimited line protocol spoken between
// clients and the reservation server. One request line yields exactly one
// response line.
package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"ms-teetime/internal/models"
)

const (
	Delimiter      = "|"
	ResponsePrefix = "RESP"
	StatusOK       = "OK"
	StatusError    = "ERROR"
)

// Command words, matched case-insensitively on field 0 of a request line.
const (
	CmdPing              = "PING"
	CmdLogin             = "LOGIN"
	CmdAddUser           = "ADD_USER"
	CmdRemoveUser        = "REMOVE_USER"
	CmdListTeeTimes      = "LIST_TT"
	CmdAddTeeTime        = "ADD_TT"
	CmdRemoveTeeTime     = "REMOVE_TT"
	CmdBookTeeTime       = "BOOK_TT"
	CmdListEvents        = "LIST_EVENTS"
	CmdAddEvent          = "ADD_EVENT"
	CmdBookEvent         = "BOOK_EVENT"
	CmdGetReservations   = "GET_RESERVATIONS"
	CmdCancelReservation = "CANCEL_RESERVATION"
	CmdGetSettings       = "GET_SETTINGS"
	CmdSetSettings       = "SET_SETTINGS"
)

// ParseRequest splits a request line into its command word and arguments.
func ParseRequest(line string) (string, []string) {
	fields := strings.Split(line, Delimiter)
	cmd := strings.ToUpper(strings.TrimSpace(fields[0]))
	return cmd, fields[1:]
}

// OK formats a success response, payload fields pipe-joined after the status.
func OK(payload ...string) string {
	return strings.Join(append([]string{ResponsePrefix, StatusOK}, payload...), Delimiter)
}

// Error formats an error response.
func Error(message string) string {
	return strings.Join([]string{ResponsePrefix, StatusError, message}, Delimiter)
}

// Errorf formats an error response from a format string.
func Errorf(format string, args ...interface{}) string {
	return Error(fmt.Sprintf(format, args...))
}

// FormatTeeTime renders one LIST_TT payload record:
// id;date;time;available;max;price.
func FormatTeeTime(t models.TeeTime) string {
	return strings.Join([]string{
		t.ID,
		t.Date,
		t.Time,
		strconv.Itoa(t.AvailableSpots()),
		strconv.Itoa(t.MaxPartySize),
		strconv.FormatFloat(t.PricePerPerson, 'f', -1, 64),
	}, ";")
}

// FormatEvent renders one LIST_EVENTS payload record:
// id;name;start date;start time;end date;end time;partySize;teeBox;price.
func FormatEvent(e models.Event) string {
	return strings.Join([]string{
		e.ID,
		e.Username,
		e.Date,
		e.Time,
		e.EndDate,
		e.EndTime,
		strconv.Itoa(e.PartySize),
		e.TeeBox,
		strconv.FormatFloat(e.Price, 'f', -1, 64),
	}, ";")
}

package store

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const teeTimeIDPrefix = "TT"

func newReservationID() string {
	return uuid.NewString()
}

// seedCounterLocked bumps the tee time counter past a loaded id so freshly
// created slots never collide with persisted ones. Caller holds the write
// lock.
func (s *Store) seedCounterLocked(id string) {
	n, err := strconv.Atoi(strings.TrimPrefix(id, teeTimeIDPrefix))
	if err != nil {
		return
	}
	if n > s.teeTimeCounter {
		s.teeTimeCounter = n
	}
}

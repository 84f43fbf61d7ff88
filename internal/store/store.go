// Package store is the single source of truth for all domain records. One
// instance is constructed by the composition root and shared by every
// connection worker; all cross-connection coordination happens through it.
package store

import (
	"fmt"
	"sync"

	"ms-teetime/internal/models"
)

type Store struct {
	mu sync.RWMutex

	dataDir string

	users        []models.User
	reservations []models.Reservation
	events       []models.Event
	teeTimes     []*models.TeeTime
	settings     models.CourseSettings

	teeTimeCounter int
}

// New returns an empty store persisting to dataDir.
func New(dataDir string) *Store {
	return &Store{
		dataDir:  dataDir,
		settings: models.DefaultCourseSettings(),
	}
}

// --- Users ---

// AddUser inserts a user. It rejects an empty username or a duplicate.
func (s *Store) AddUser(u models.User) bool {
	if u.Username == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == u.Username {
			return false
		}
	}
	s.users = append(s.users, u)
	return true
}

// RemoveUser removes the user with the given username, reporting whether a
// user was removed.
func (s *Store) RemoveUser(username string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.Username == username {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return true
		}
	}
	return false
}

// FindUser looks a user up by username.
func (s *Store) FindUser(username string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, true
		}
	}
	return models.User{}, false
}

// GetAllUsers returns a copy of the user collection.
func (s *Store) GetAllUsers() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.User(nil), s.users...)
}

// ValidateLogin checks the credentials with a plain string compare. The
// bcrypt utility in internal/auth is deliberately not on this path.
func (s *Store) ValidateLogin(username, password string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return u.Password == password
		}
	}
	return false
}

// --- Reservations ---

// AddReservation inserts a reservation, rejecting an empty or duplicate id.
func (s *Store) AddReservation(r models.Reservation) bool {
	if r.ID == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reservationExists(r.ID) {
		return false
	}
	s.reservations = append(s.reservations, r)
	return true
}

func (s *Store) reservationExists(id string) bool {
	for _, r := range s.reservations {
		if r.ID == id {
			return true
		}
	}
	return false
}

// RemoveReservation removes the reservation with the given id from the flat
// collection, reporting whether anything was removed.
func (s *Store) RemoveReservation(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeReservationLocked(id)
}

func (s *Store) removeReservationLocked(id string) bool {
	for i, r := range s.reservations {
		if r.ID == id {
			s.reservations = append(s.reservations[:i], s.reservations[i+1:]...)
			return true
		}
	}
	return false
}

// FindReservation looks a reservation up by id.
func (s *Store) FindReservation(id string) (models.Reservation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.reservations {
		if r.ID == id {
			return r, true
		}
	}
	return models.Reservation{}, false
}

// GetAllReservations returns a copy of the flat reservation collection.
func (s *Store) GetAllReservations() []models.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Reservation(nil), s.reservations...)
}

// GetReservationsByUser returns a copy of the reservations owned by username.
func (s *Store) GetReservationsByUser(username string) []models.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Reservation
	for _, r := range s.reservations {
		if r.Username == username {
			out = append(out, r)
		}
	}
	return out
}

// GetReservationsByDate returns a copy of the reservations on the given date.
func (s *Store) GetReservationsByDate(date string) []models.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Reservation
	for _, r := range s.reservations {
		if r.Date == date {
			out = append(out, r)
		}
	}
	return out
}

// CancelReservation removes the reservation from the flat collection and from
// the booked list of whichever tee time holds it. It is idempotent: a second
// cancel of the same id reports false and changes nothing.
func (s *Store) CancelReservation(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := s.removeReservationLocked(id)
	for _, t := range s.teeTimes {
		if t.Cancel(id) {
			removed = true
			break
		}
	}
	return removed
}

// --- Events ---

// AddEvent inserts an event, rejecting an empty or duplicate id.
func (s *Store) AddEvent(e models.Event) bool {
	if e.ID == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.events {
		if existing.ID == e.ID {
			return false
		}
	}
	s.events = append(s.events, e)
	return true
}

// CreateEvent builds an event with a fresh id and stores it.
func (s *Store) CreateEvent(name, date, startTime, endDate, endTime string, price float64) (models.Event, error) {
	if name == "" {
		return models.Event{}, fmt.Errorf("event name is required")
	}
	if price < 0 {
		return models.Event{}, fmt.Errorf("event price must not be negative")
	}
	e := models.NewEvent(newReservationID(), name, date, startTime, endDate, endTime, price)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return e, nil
}

// RemoveEvent removes the event with the given id.
func (s *Store) RemoveEvent(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.events {
		if e.ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			return true
		}
	}
	return false
}

// FindEvent looks an event up by id.
func (s *Store) FindEvent(id string) (models.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.events {
		if e.ID == id {
			return e, true
		}
	}
	return models.Event{}, false
}

// GetAllEvents returns a copy of the event collection.
func (s *Store) GetAllEvents() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Event(nil), s.events...)
}

// --- Tee times ---

// CreateTeeTime builds a tee time with a fresh counter-based id and stores it.
func (s *Store) CreateTeeTime(date, timeOfDay, teeBox string, maxPartySize int, pricePerPerson float64) (models.TeeTime, error) {
	if maxPartySize <= 0 {
		return models.TeeTime{}, fmt.Errorf("max party size must be positive, got %d", maxPartySize)
	}
	if pricePerPerson < 0 {
		return models.TeeTime{}, fmt.Errorf("price per person must not be negative")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teeTimeCounter++
	t := &models.TeeTime{
		ID:             fmt.Sprintf("TT%d", s.teeTimeCounter),
		Date:           date,
		Time:           timeOfDay,
		TeeBox:         teeBox,
		MaxPartySize:   maxPartySize,
		PricePerPerson: pricePerPerson,
	}
	s.teeTimes = append(s.teeTimes, t)
	return t.Clone(), nil
}

// AddTeeTime inserts an already-built tee time, rejecting an empty or
// duplicate id. Used by the loader.
func (s *Store) AddTeeTime(t models.TeeTime) bool {
	if t.ID == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.teeTimes {
		if existing.ID == t.ID {
			return false
		}
	}
	cp := t.Clone()
	s.teeTimes = append(s.teeTimes, &cp)
	s.seedCounterLocked(t.ID)
	return true
}

// RemoveTeeTime removes the tee time with the given id.
func (s *Store) RemoveTeeTime(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.teeTimes {
		if t.ID == id {
			s.teeTimes = append(s.teeTimes[:i], s.teeTimes[i+1:]...)
			return true
		}
	}
	return false
}

// FindTeeTime returns a deep copy of the tee time with the given id.
func (s *Store) FindTeeTime(id string) (models.TeeTime, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.teeTimes {
		if t.ID == id {
			return t.Clone(), true
		}
	}
	return models.TeeTime{}, false
}

// GetAllTeeTimes returns deep copies of every tee time.
func (s *Store) GetAllTeeTimes() []models.TeeTime {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.TeeTime, 0, len(s.teeTimes))
	for _, t := range s.teeTimes {
		out = append(out, t.Clone())
	}
	return out
}

// GetTeeTimesByDate returns deep copies of the tee times on the given date.
func (s *Store) GetTeeTimesByDate(date string) []models.TeeTime {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.TeeTime
	for _, t := range s.teeTimes {
		if t.Date == date {
			out = append(out, t.Clone())
		}
	}
	return out
}

// BookTeeTime books partySize spots on the identified tee time for username.
// The new reservation lands both on the tee time's own booked list and in the
// flat reservation collection. It returns (nil, found, err): a nil
// reservation with found=true means the slot did not have enough capacity.
func (s *Store) BookTeeTime(teeTimeID string, partySize int, username string) (*models.Reservation, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.teeTimes {
		if t.ID != teeTimeID {
			continue
		}
		res, err := t.Book(partySize, username)
		if err != nil {
			return nil, true, err
		}
		if res == nil {
			return nil, true, nil
		}
		s.reservations = append(s.reservations, *res)
		return res, true, nil
	}
	return nil, false, nil
}

// BookEvent creates a reservation against an event for username. Events have
// a fixed capacity shared by all attendees.
func (s *Store) BookEvent(eventID string, partySize int, username string) (*models.Reservation, bool, error) {
	if partySize <= 0 {
		return nil, true, fmt.Errorf("party size must be positive, got %d", partySize)
	}
	if username == "" {
		return nil, true, fmt.Errorf("username is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.events {
		if e.ID != eventID {
			continue
		}
		booked := 0
		for _, r := range s.reservations {
			if r.TeeBox == models.EventTeeBox && r.Date == e.Date && r.Time == e.Time {
				booked += r.PartySize
			}
		}
		if e.PartySize-booked < partySize {
			return nil, true, nil
		}
		res := models.Reservation{
			ID:        newReservationID(),
			Username:  username,
			Date:      e.Date,
			Time:      e.Time,
			PartySize: partySize,
			TeeBox:    models.EventTeeBox,
			Price:     e.Price * float64(partySize),
		}
		s.reservations = append(s.reservations, res)
		return &res, true, nil
	}
	return nil, false, nil
}

// --- Settings ---

// GetCourseSettings returns the current settings.
func (s *Store) GetCourseSettings() models.CourseSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// SetCourseSettings replaces the settings wholesale after validation.
func (s *Store) SetCourseSettings(settings models.CourseSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	return nil
}

// ClearAllData wipes every collection and resets the settings and the id
// counter. Test and reset use only.
func (s *Store) ClearAllData() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = nil
	s.reservations = nil
	s.events = nil
	s.teeTimes = nil
	s.settings = models.DefaultCourseSettings()
	s.teeTimeCounter = 0
}

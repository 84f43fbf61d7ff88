package store

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ms-teetime/internal/models"
)

const (
	usersFile        = "users.txt"
	reservationsFile = "reservations.txt"
	eventsFile       = "events.txt"
	teeTimesFile     = "teetimes.txt"
	settingsFile     = "settings.txt"
)

// SaveToFile writes every collection to its flat file. It runs under the read
// lock: it observes the collections without mutating them, so concurrent
// mutators are not blocked and the last completed save wins.
func (s *Store) SaveToFile() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var errs []error

	userLines := make([]string, 0, len(s.users))
	for _, u := range s.users {
		userLines = append(userLines, u.ToFileString())
	}
	errs = append(errs, s.writeLines(usersFile, userLines))

	resLines := make([]string, 0, len(s.reservations))
	for _, r := range s.reservations {
		resLines = append(resLines, r.ToFileString())
	}
	errs = append(errs, s.writeLines(reservationsFile, resLines))

	eventLines := make([]string, 0, len(s.events))
	for _, e := range s.events {
		eventLines = append(eventLines, e.ToFileString())
	}
	errs = append(errs, s.writeLines(eventsFile, eventLines))

	ttLines := make([]string, 0, len(s.teeTimes))
	for _, t := range s.teeTimes {
		ttLines = append(ttLines, t.ToFileString())
	}
	errs = append(errs, s.writeLines(teeTimesFile, ttLines))

	errs = append(errs, s.writeLines(settingsFile, []string{s.settings.ToFileString()}))

	return errors.Join(errs...)
}

// LoadFromFile replaces the collections with whatever the flat files hold.
// A missing file yields an empty collection and a malformed line is skipped;
// neither is an error.
func (s *Store) LoadFromFile() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = nil
	s.reservations = nil
	s.events = nil
	s.teeTimes = nil
	s.teeTimeCounter = 0
	s.settings = models.DefaultCourseSettings()

	for _, line := range s.readLines(usersFile) {
		u, err := models.UserFromFileString(line)
		if err != nil {
			continue
		}
		s.users = append(s.users, u)
	}

	// A merged file from the old layout may carry EVENT-tagged lines among
	// plain reservations.
	for _, line := range s.readLines(reservationsFile) {
		if strings.HasPrefix(line, models.EventTag+",") {
			e, err := models.EventFromFileString(line)
			if err != nil {
				continue
			}
			s.events = append(s.events, e)
			continue
		}
		r, err := models.ReservationFromFileString(line)
		if err != nil {
			continue
		}
		s.reservations = append(s.reservations, r)
	}

	for _, line := range s.readLines(eventsFile) {
		e, err := models.EventFromFileString(line)
		if err != nil {
			continue
		}
		s.events = append(s.events, e)
	}

	for _, line := range s.readLines(teeTimesFile) {
		t, err := models.TeeTimeFromFileString(line)
		if err != nil {
			continue
		}
		cp := t
		s.teeTimes = append(s.teeTimes, &cp)
		s.seedCounterLocked(t.ID)
	}

	for _, line := range s.readLines(settingsFile) {
		settings, err := models.CourseSettingsFromFileString(line)
		if err != nil {
			continue
		}
		s.settings = settings
		break
	}

	return nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dataDir, name)
}

func (s *Store) writeLines(name string, lines []string) error {
	f, err := os.Create(s.path(name))
	if err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			f.Close()
			return fmt.Errorf("save %s: %w", name, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("save %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}

// readLines returns the non-blank lines of the named file, or nothing if the
// file does not exist or cannot be read.
func (s *Store) readLines(name string) []string {
	f, err := os.Open(s.path(name))
	if err != nil {
		return nil
	}
	defer f.Close()
	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

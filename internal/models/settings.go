package models

import (
	"fmt"
	"strconv"
	"strings"
)

// CourseSettings is the single per-process course configuration. OpenDays is
// indexed Monday first.
type CourseSettings struct {
	CourseName         string
	OpeningTime        string
	ClosingTime        string
	DefaultPrice       float64
	TeeTimeInterval    int
	MaxPartySize       int
	NumberOfTeeBoxes   int
	AdvanceBookingDays int
	OpenDays           [7]bool
}

// DefaultCourseSettings returns the settings used when no settings file exists.
func DefaultCourseSettings() CourseSettings {
	return CourseSettings{
		CourseName:         "Golf Course",
		OpeningTime:        "07:00",
		ClosingTime:        "19:00",
		DefaultPrice:       30.0,
		TeeTimeInterval:    10,
		MaxPartySize:       4,
		NumberOfTeeBoxes:   2,
		AdvanceBookingDays: 14,
		OpenDays:           [7]bool{true, true, true, true, true, true, true},
	}
}

// Validate checks the invariants: HH:MM times, positive numeric settings,
// non-negative price.
func (s CourseSettings) Validate() error {
	if s.CourseName == "" {
		return fmt.Errorf("course name is required")
	}
	if err := validateClockTime(s.OpeningTime); err != nil {
		return fmt.Errorf("opening time: %w", err)
	}
	if err := validateClockTime(s.ClosingTime); err != nil {
		return fmt.Errorf("closing time: %w", err)
	}
	if s.DefaultPrice < 0 {
		return fmt.Errorf("default price must not be negative")
	}
	if s.TeeTimeInterval <= 0 {
		return fmt.Errorf("tee time interval must be positive")
	}
	if s.MaxPartySize <= 0 {
		return fmt.Errorf("max party size must be positive")
	}
	if s.NumberOfTeeBoxes <= 0 {
		return fmt.Errorf("number of tee boxes must be positive")
	}
	if s.AdvanceBookingDays <= 0 {
		return fmt.Errorf("advance booking days must be positive")
	}
	return nil
}

func validateClockTime(v string) error {
	parts := strings.Split(v, ":")
	if len(parts) != 2 {
		return fmt.Errorf("expected HH:MM, got %q", v)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return fmt.Errorf("bad hour in %q", v)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return fmt.Errorf("bad minute in %q", v)
	}
	return nil
}

// ToFileString encodes the settings as a single comma-joined line, weekdays
// Monday through Sunday as 1/0.
func (s CourseSettings) ToFileString() string {
	fields := []string{
		s.CourseName,
		s.OpeningTime,
		s.ClosingTime,
		formatPrice(s.DefaultPrice),
		strconv.Itoa(s.TeeTimeInterval),
		strconv.Itoa(s.MaxPartySize),
		strconv.Itoa(s.NumberOfTeeBoxes),
		strconv.Itoa(s.AdvanceBookingDays),
	}
	for _, open := range s.OpenDays {
		if open {
			fields = append(fields, "1")
		} else {
			fields = append(fields, "0")
		}
	}
	return strings.Join(fields, ",")
}

// CourseSettingsFromFileString parses the single settings line.
func CourseSettingsFromFileString(line string) (CourseSettings, error) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) != 15 {
		return CourseSettings{}, fmt.Errorf("settings record: expected 15 fields, got %d", len(fields))
	}
	price, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return CourseSettings{}, fmt.Errorf("settings record: bad default price: %w", err)
	}
	ints := make([]int, 4)
	for i, name := range []string{"interval", "maxPartySize", "numberOfTeeBoxes", "advanceBookingDays"} {
		v, err := strconv.Atoi(fields[4+i])
		if err != nil {
			return CourseSettings{}, fmt.Errorf("settings record: bad %s: %w", name, err)
		}
		ints[i] = v
	}
	s := CourseSettings{
		CourseName:         fields[0],
		OpeningTime:        fields[1],
		ClosingTime:        fields[2],
		DefaultPrice:       price,
		TeeTimeInterval:    ints[0],
		MaxPartySize:       ints[1],
		NumberOfTeeBoxes:   ints[2],
		AdvanceBookingDays: ints[3],
	}
	for i := 0; i < 7; i++ {
		switch fields[8+i] {
		case "1":
			s.OpenDays[i] = true
		case "0":
			s.OpenDays[i] = false
		default:
			return CourseSettings{}, fmt.Errorf("settings record: bad weekday flag %q", fields[8+i])
		}
	}
	return s, nil
}

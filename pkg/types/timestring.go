// Package types contains shared value types used across layers.
package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTimeString is returned when a value does not parse as "HH:MM".
var ErrInvalidTimeString = errors.New("invalid time string format")

// TimeString is a wall-clock time of day in "HH:MM" format.
// It is stored as a plain string so it maps directly onto TIME columns
// and JSON payloads without timezone ambiguity.
type TimeString string

// NewTimeString builds a TimeString from the clock part of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString parses and validates s as "HH:MM".
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// IsZero reports whether the value is empty.
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate checks the "HH:MM" format and range.
func (t TimeString) Validate() error {
	if _, err := t.minutes(); err != nil {
		return err
	}
	return nil
}

// String returns the raw "HH:MM" value.
func (t TimeString) String() string {
	return string(t)
}

// Minutes returns the number of minutes since midnight.
func (t TimeString) Minutes() (int, error) {
	return t.minutes()
}

// AddMinutes returns the time shifted forward by min minutes.
// The result is clamped within a single day; shifting past midnight fails.
func (t TimeString) AddMinutes(min int) (TimeString, error) {
	m, err := t.minutes()
	if err != nil {
		return "", err
	}
	m += min
	if m < 0 || m > 24*60 {
		return "", fmt.Errorf("%w: %s%+d minutes is out of day range", ErrInvalidTimeString, t, min)
	}
	// 24:00 is representable as the exclusive end of a business day.
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60)), nil
}

// IsBefore reports whether t is strictly earlier than other.
// Invalid values compare as not-before.
func (t TimeString) IsBefore(other TimeString) bool {
	a, err := t.minutes()
	if err != nil {
		return false
	}
	b, err := other.minutes()
	if err != nil {
		return false
	}
	return a < b
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	a, err := t.minutes()
	if err != nil {
		return false
	}
	b, err := other.minutes()
	if err != nil {
		return false
	}
	return a > b
}

func (t TimeString) minutes() (int, error) {
	parts := strings.Split(string(t), ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}

	// 24:00 is allowed as an end-of-day boundary.
	if h < 0 || h > 24 || m < 0 || m > 59 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}

	return h*60 + m, nil
}

// Package timeslot serializes a booking's coarse time-of-day choice into the
// single stored time column the record store expects. The three coarse
// choices map to fixed sentinel clock values; custom times pass through
// verbatim. All sentinel knowledge lives in this package.
package timeslot

import (
	"errors"
	"fmt"
	"time"
)

// Kind tags the time-of-day variant at the core boundary.
type Kind int

const (
	Morning Kind = iota
	Afternoon
	Unspecified
	Custom
)

// Slot is the tagged time-of-day variant. Clock is set only for Custom and
// holds a wall-clock time in HH:MM form.
type Slot struct {
	Kind  Kind
	Clock string
}

// Sentinel stored values, fixed by contract with the record store. They mark
// the business cutoffs of each window, not literal appointment times, and
// were chosen so the seconds component can never collide with custom HH:MM
// input.
const (
	MorningSentinel     = "11:59:59"
	AfternoonSentinel   = "16:29:59"
	UnspecifiedSentinel = "00:00:00"
)

// Display labels returned by Decode.
const (
	LabelMorning     = "Morning"
	LabelAfternoon   = "Afternoon"
	LabelUnspecified = "Not specified"
)

// prefixLen is the number of leading characters compared when decoding.
const prefixLen = 5

const clockLayout = "15:04"

var (
	ErrMissingClock = errors.New("timeslot: custom slot requires a clock time")
	ErrInvalidClock = errors.New("timeslot: clock time must be HH:MM")
)

// KindFromChoice maps a UI choice string to a Kind.
func KindFromChoice(choice string) (Kind, error) {
	switch choice {
	case "morning":
		return Morning, nil
	case "afternoon":
		return Afternoon, nil
	case "unspecified":
		return Unspecified, nil
	case "custom":
		return Custom, nil
	}
	return 0, fmt.Errorf("timeslot: unknown choice %q", choice)
}

// Encode serializes a slot into its stored value. Custom slots are validated
// and encoded verbatim in HH:MM form; the contract violation of a custom slot
// without a clock is rejected here, before any store request is built.
func Encode(s Slot) (string, error) {
	switch s.Kind {
	case Morning:
		return MorningSentinel, nil
	case Afternoon:
		return AfternoonSentinel, nil
	case Unspecified:
		return UnspecifiedSentinel, nil
	case Custom:
		if s.Clock == "" {
			return "", ErrMissingClock
		}
		if _, err := time.Parse(clockLayout, s.Clock); err != nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidClock, s.Clock)
		}
		return s.Clock, nil
	}
	return "", fmt.Errorf("timeslot: unknown kind %d", s.Kind)
}

// DecodeSlot recovers the tagged variant from a stored value by matching the
// first five characters against the sentinel prefixes. Anything unrecognized
// degrades to a Custom slot carrying the truncated raw text; decoding never
// fails.
func DecodeSlot(stored string) Slot {
	prefix := stored
	if len(prefix) > prefixLen {
		prefix = prefix[:prefixLen]
	}

	switch prefix {
	case MorningSentinel[:prefixLen]:
		return Slot{Kind: Morning}
	case AfternoonSentinel[:prefixLen]:
		return Slot{Kind: Afternoon}
	case UnspecifiedSentinel[:prefixLen]:
		return Slot{Kind: Unspecified}
	}
	return Slot{Kind: Custom, Clock: prefix}
}

// Decode returns the display label for a stored value.
func Decode(stored string) string {
	slot := DecodeSlot(stored)
	switch slot.Kind {
	case Morning:
		return LabelMorning
	case Afternoon:
		return LabelAfternoon
	case Unspecified:
		return LabelUnspecified
	}
	return slot.Clock
}

// ValidStored reports whether a stored value is inside the codec's output
// space: one of the sentinels or a parseable HH:MM clock time.
func ValidStored(stored string) bool {
	switch stored {
	case MorningSentinel, AfternoonSentinel, UnspecifiedSentinel:
		return true
	}
	_, err := time.Parse(clockLayout, stored)
	return err == nil
}

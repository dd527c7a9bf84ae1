package pedometer

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnavailable means step counting cannot be read: the device has no
	// motion hardware or the user did not grant access.
	ErrUnavailable = errors.New("pedometer unavailable")
	// ErrNoData means the queried window contains no recorded activity.
	ErrNoData = errors.New("no pedometer data")

	ErrInvalidSample = errors.New("invalid sample")
)

// Sample is one interval of activity as reported by the device.
type Sample struct {
	ID             int       `json:"id"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	Steps          int       `json:"steps"`
	DistanceMeters float64   `json:"distanceMeters"`
}

func (s Sample) Validate() error {
	if s.Start.IsZero() || s.End.IsZero() {
		return fmt.Errorf("%w: missing start or end", ErrInvalidSample)
	}
	if !s.End.After(s.Start) {
		return fmt.Errorf("%w: end must be after start", ErrInvalidSample)
	}
	if s.Steps < 0 || s.DistanceMeters < 0 {
		return fmt.Errorf("%w: negative steps or distance", ErrInvalidSample)
	}
	return nil
}

// WindowSum is the aggregate of all samples starting within a window.
type WindowSum struct {
	Steps          int
	DistanceMeters float64
	Samples        int
}

// Data is the cumulative activity over [From, To).
type Data struct {
	From           time.Time `json:"from"`
	To             time.Time `json:"to"`
	Steps          int       `json:"steps"`
	DistanceMeters float64   `json:"distanceMeters"`
}

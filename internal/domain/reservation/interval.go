package reservation

import "time"

type IntervalKind string

const (
	KindFixed     IntervalKind = "fixed"
	KindPersisted IntervalKind = "persisted"
)

// BookingInterval is what the timeline works with. Persisted reservations and
// recurring fixed blocks share this shape so overlap and layout treat them alike.
type BookingInterval struct {
	Kind         IntervalKind
	ID           string
	ResourceID   string
	Start        time.Time
	End          time.Time
	Label        string
	Status       Status
	RequesterID  string
	VehicleState *VehicleState
}

// IsActive reports whether the interval occupies its slot. Fixed blocks always do.
func (b BookingInterval) IsActive() bool {
	return b.Kind == KindFixed || b.Status == StatusActive
}

// Overlaps is the half-open test: touching endpoints do not conflict.
func (b BookingInterval) Overlaps(start, end time.Time) bool {
	return start.Before(b.End) && end.After(b.Start)
}

// CancelableBy reports whether callerID may cancel this interval right now.
func (b BookingInterval) CancelableBy(callerID string) bool {
	if b.Kind == KindFixed || !b.IsActive() || b.RequesterID != callerID {
		return false
	}
	return b.VehicleState == nil || *b.VehicleState == VehicleReserved
}

// DetectOverlap returns the first active interval of resourceID that overlaps [start, end).
func DetectOverlap(resourceID string, start, end time.Time, existing []BookingInterval) (BookingInterval, bool) {
	for _, b := range existing {
		if b.ResourceID != resourceID || !b.IsActive() {
			continue
		}
		if b.Overlaps(start, end) {
			return b, true
		}
	}
	return BookingInterval{}, false
}

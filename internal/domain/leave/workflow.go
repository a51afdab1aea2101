package leave

import "time"

var transitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved: {StatusCancelled},
}

// CanTransitionTo reports whether the workflow allows moving from s to next.
// Rejected and Cancelled are terminal.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// RangesIntersect is the inclusive date-range test shared by the overlap check
// and the calendar coverage query.
func RangesIntersect(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !truncateDay(aStart).After(truncateDay(bEnd)) && !truncateDay(aEnd).Before(truncateDay(bStart))
}

// Covers reports whether an active request includes day d.
func (r LeaveRequest) Covers(d time.Time) bool {
	return r.Status.IsActive() && RangesIntersect(r.StartDate, r.EndDate, d, d)
}

// CoveringDate returns the pending or approved requests whose range contains d.
func CoveringDate(requests []LeaveRequest, d time.Time) []LeaveRequest {
	var out []LeaveRequest
	for _, r := range requests {
		if r.Covers(d) {
			out = append(out, r)
		}
	}
	return out
}

// FirstOverlap returns the first active request intersecting [start, end].
func FirstOverlap(requests []LeaveRequest, start, end time.Time) (LeaveRequest, bool) {
	for _, r := range requests {
		if r.Status.IsActive() && RangesIntersect(start, end, r.StartDate, r.EndDate) {
			return r, true
		}
	}
	return LeaveRequest{}, false
}

// BalanceDelta is the change to the requester's used days when r moves to next.
// Only deductible requests entering or leaving Approved have an effect.
func (r LeaveRequest) BalanceDelta(next Status) float64 {
	if !r.Type.IsDeductible() {
		return 0
	}
	switch {
	case r.Status != StatusApproved && next == StatusApproved:
		return r.Days
	case r.Status == StatusApproved && next != StatusApproved:
		return -r.Days
	}
	return 0
}

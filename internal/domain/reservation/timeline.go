package reservation

import (
	"math"
	"time"
)

const (
	DefaultStartHour = 7
	DefaultEndHour   = 23

	// DragThreshold is the pixel displacement below which a drag counts as a click.
	DragThreshold = 5.0

	DragSnap    = 10 * time.Minute
	ClickSnap   = 30 * time.Minute
	MinDuration = 30 * time.Minute
)

type SnapMode int

const (
	SnapDrag  SnapMode = iota // round to the nearest DragSnap
	SnapClick                 // floor to ClickSnap
)

// Timeline maps horizontal pixel positions to times on one day, between
// StartHour and EndHour in Date's location.
type Timeline struct {
	Date      time.Time
	StartHour int
	EndHour   int
	Width     float64
}

func (t Timeline) TotalMinutes() int {
	return (t.EndHour - t.StartHour) * 60
}

func (t Timeline) WindowStart() time.Time {
	y, m, d := t.Date.Date()
	return time.Date(y, m, d, t.StartHour, 0, 0, 0, t.Date.Location())
}

func (t Timeline) WindowEnd() time.Time {
	return t.WindowStart().Add(time.Duration(t.TotalMinutes()) * time.Minute)
}

// PointerToTime converts x to a time after clamping it to [0, Width].
func (t Timeline) PointerToTime(x float64, mode SnapMode) time.Time {
	if t.Width <= 0 {
		return t.WindowStart()
	}
	x = math.Max(0, math.Min(x, t.Width))
	minutes := x / t.Width * float64(t.TotalMinutes())

	switch mode {
	case SnapClick:
		step := ClickSnap.Minutes()
		minutes = math.Floor(minutes/step) * step
	default:
		step := DragSnap.Minutes()
		minutes = math.Round(minutes/step) * step
	}

	return t.WindowStart().Add(time.Duration(minutes) * time.Minute)
}

// Selection is a resolved pointer gesture.
type Selection struct {
	Start   time.Time
	End     time.Time
	IsClick bool
}

// ResolveDragRange turns a pointer gesture into a time range. A displacement
// under DragThreshold selects the single ClickSnap slot under the pointer.
// Otherwise both ends are rounded to DragSnap and the range is at least MinDuration.
func (t Timeline) ResolveDragRange(xStart, xEnd float64) Selection {
	if math.Abs(xEnd-xStart) < DragThreshold {
		start := t.PointerToTime(xStart, SnapClick)
		// A click on the right edge floors to the window end; keep the slot inside
		if last := t.WindowEnd().Add(-ClickSnap); start.After(last) && !last.Before(t.WindowStart()) {
			start = last
		}
		return Selection{Start: start, End: start.Add(ClickSnap), IsClick: true}
	}

	if xStart > xEnd {
		xStart, xEnd = xEnd, xStart
	}
	start := t.PointerToTime(xStart, SnapDrag)
	end := t.PointerToTime(xEnd, SnapDrag)
	if end.Sub(start) < MinDuration {
		end = start.Add(MinDuration)
	}
	return Selection{Start: start, End: end}
}

// BarGeometry returns the left offset and width of an interval as percentages
// of a window of totalMinutes starting at windowStart. Both stay within [0, 100].
func BarGeometry(start, end, windowStart time.Time, totalMinutes int) (left, width float64) {
	if totalMinutes <= 0 {
		return 0, 0
	}
	total := float64(totalMinutes)

	offset := start.Sub(windowStart).Minutes()
	duration := end.Sub(start).Minutes()
	if offset < 0 {
		// Clip the part before the window
		duration += offset
		offset = 0
	}

	left = math.Min(100, offset/total*100)
	width = math.Min(100-left, duration/total*100)
	if width < 0 {
		width = 0
	}
	return left, width
}

// Bar is an interval laid out on a timeline.
type Bar struct {
	Interval BookingInterval
	Left     float64
	Width    float64
}

// Layout places the intervals that are active and at least partly visible.
func (t Timeline) Layout(intervals []BookingInterval) []Bar {
	ws, we := t.WindowStart(), t.WindowEnd()
	bars := make([]Bar, 0, len(intervals))
	for _, in := range intervals {
		if !in.IsActive() || !in.Overlaps(ws, we) {
			continue
		}
		left, width := BarGeometry(in.Start, in.End, ws, t.TotalMinutes())
		bars = append(bars, Bar{Interval: in, Left: left, Width: width})
	}
	return bars
}

package reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/sarang-church/groupware-backend-go/internal/domain/reservation"
)

func (s *ReservationServiceImpl) timeline(date time.Time, width float64) reservation.Timeline {
	return reservation.Timeline{
		Date:      date,
		StartHour: s.opts.StartHour,
		EndHour:   s.opts.EndHour,
		Width:     width,
	}
}

func (s *ReservationServiceImpl) parseDate(value string) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", value, s.opts.Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date: %w", err)
	}
	return d, nil
}

// DayTimeline implements reservation.ReservationService.
func (s *ReservationServiceImpl) DayTimeline(ctx context.Context, req reservation.TimelineRequest, callerID string) (reservation.DayTimelineResponse, error) {
	if err := req.Validate(); err != nil {
		return reservation.DayTimelineResponse{}, err
	}
	date, err := s.parseDate(req.Date)
	if err != nil {
		return reservation.DayTimelineResponse{}, err
	}

	resources, err := s.ResourceRepository.List(ctx, reservation.Category(req.Category), true)
	if err != nil {
		return reservation.DayTimelineResponse{}, fmt.Errorf("failed to list resources: %w", err)
	}

	tl := s.timeline(date, 0)
	resp := reservation.DayTimelineResponse{
		Date:         req.Date,
		WindowStart:  tl.WindowStart(),
		WindowEnd:    tl.WindowEnd(),
		TotalMinutes: tl.TotalMinutes(),
		Resources:    make([]reservation.ResourceTimelineResponse, 0, len(resources)),
	}
	if len(resources) == 0 {
		return resp, nil
	}

	ids := make([]string, 0, len(resources))
	for _, r := range resources {
		ids = append(ids, r.ID)
	}
	reservations, err := s.ReservationRepository.ListActive(ctx, reservation.ReservationFilter{
		ResourceIDs: ids,
		From:        tl.WindowStart(),
		To:          tl.WindowEnd(),
	})
	if err != nil {
		return reservation.DayTimelineResponse{}, fmt.Errorf("failed to list reservations: %w", err)
	}

	byResource := make(map[string][]reservation.BookingInterval, len(resources))
	for _, r := range reservations {
		byResource[r.ResourceID] = append(byResource[r.ResourceID], r.Interval())
	}
	for _, in := range reservation.ExpandFixed(s.opts.FixedBlocks, date, date) {
		byResource[in.ResourceID] = append(byResource[in.ResourceID], in)
	}

	for _, res := range resources {
		row := reservation.ResourceTimelineResponse{
			Resource: reservation.NewResourceResponse(res),
			Bars:     []reservation.BarResponse{},
		}
		for _, bar := range tl.Layout(byResource[res.ID]) {
			row.Bars = append(row.Bars, reservation.BarResponse{
				Interval:     reservation.NewIntervalResponse(bar.Interval),
				LeftPercent:  bar.Left,
				WidthPercent: bar.Width,
				Cancelable:   bar.Interval.CancelableBy(callerID),
			})
		}
		resp.Resources = append(resp.Resources, row)
	}

	return resp, nil
}

// SelectRange implements reservation.ReservationService.
func (s *ReservationServiceImpl) SelectRange(ctx context.Context, req reservation.SelectRangeRequest) (reservation.SelectionResponse, error) {
	if err := req.Validate(); err != nil {
		return reservation.SelectionResponse{}, err
	}
	date, err := s.parseDate(req.Date)
	if err != nil {
		return reservation.SelectionResponse{}, err
	}

	if _, err := s.ResourceRepository.GetByID(ctx, req.ResourceID); err != nil {
		return reservation.SelectionResponse{}, fmt.Errorf("failed to get resource: %w", err)
	}

	sel := s.timeline(date, req.Width).ResolveDragRange(req.XStart, req.XEnd)
	resp := reservation.SelectionResponse{
		ResourceID: req.ResourceID,
		Start:      sel.Start,
		End:        sel.End,
		IsClick:    sel.IsClick,
	}

	conflict, found, err := s.findConflict(ctx, req.ResourceID, sel.Start, sel.End)
	if err != nil {
		return reservation.SelectionResponse{}, err
	}
	if found {
		in := reservation.NewIntervalResponse(conflict)
		resp.Conflict = true
		resp.ConflictWith = &in
	}

	return resp, nil
}

package leave

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sarang-church/groupware-backend-go/internal/domain/holiday"
	"github.com/sarang-church/groupware-backend-go/internal/domain/leave"
	"github.com/sarang-church/groupware-backend-go/internal/domain/user"
	"github.com/sarang-church/groupware-backend-go/internal/pkg/database"
)

type LeaveServiceImpl struct {
	database.Transactor
	leave.LeaveRequestRepository
	user.UserRepository
	holidays holiday.Calendar
	now      func() time.Time
}

func NewLeaveService(tx database.Transactor, leaveRequestRepository leave.LeaveRequestRepository, userRepository user.UserRepository, holidays holiday.Calendar) leave.LeaveService {
	return &LeaveServiceImpl{
		Transactor:             tx,
		LeaveRequestRepository: leaveRequestRepository,
		UserRepository:         userRepository,
		holidays:               holidays,
		now:                    time.Now,
	}
}

// ChargeableDays implements leave.LeaveService.
func (l *LeaveServiceImpl) ChargeableDays(ctx context.Context, req leave.ChargeableDaysRequest) (leave.ChargeableDaysResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.ChargeableDaysResponse{}, err
	}

	return leave.ChargeableDaysResponse{
		LeaveType:  req.Type,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Days:       leave.ChargeableDays(req.Start, req.End, req.Type, l.holidays),
		Deductible: req.Type.IsDeductible(),
	}, nil
}

// Calendar implements leave.LeaveService.
func (l *LeaveServiceImpl) Calendar(ctx context.Context, req leave.CalendarRequest) ([]leave.CalendarDayResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	first := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	requests, err := l.LeaveRequestRepository.ListActiveInRange(ctx, first, last, req.RequesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests for calendar: %w", err)
	}

	days := make([]leave.CalendarDayResponse, 0, last.Day())
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		day := leave.CalendarDayResponse{
			Date:     d.Format("2006-01-02"),
			Weekday:  d.Weekday().String(),
			OffDay:   leave.IsOffDay(d),
			Requests: []leave.LeaveRequestResponse{},
		}
		if name, ok := l.holidays.Name(d); ok {
			day.Holiday = &name
		}
		for _, r := range leave.CoveringDate(requests, d) {
			day.Requests = append(day.Requests, leave.NewLeaveRequestResponse(r))
		}
		days = append(days, day)
	}

	return days, nil
}

// Get implements leave.LeaveService.
func (l *LeaveServiceImpl) Get(ctx context.Context, requestID, callerID string) (leave.LeaveRequestResponse, error) {
	request, err := l.LeaveRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	// Others' requests need leave.view_all
	if request.RequesterID != callerID {
		caller, err := l.UserRepository.GetByID(ctx, callerID)
		if err != nil {
			return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get caller: %w", err)
		}
		if !user.HasPermission(caller.Role, user.PermissionLeaveViewAll) {
			return leave.LeaveRequestResponse{}, user.ErrInsufficientPermissions
		}
	}

	return leave.NewLeaveRequestResponse(request), nil
}

// List implements leave.LeaveService.
func (l *LeaveServiceImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	requests, total, err := l.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	items := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		items = append(items, leave.NewLeaveRequestResponse(r))
	}

	return leave.ListLeaveRequestResponse{
		Items:      items,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

// Balance implements leave.LeaveService.
func (l *LeaveServiceImpl) Balance(ctx context.Context, userID string) (user.LeaveBalanceResponse, error) {
	u, err := l.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.LeaveBalanceResponse{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user.NewLeaveBalanceResponse(u.LeaveBalance), nil
}

// SetAllotment implements leave.LeaveService.
func (l *LeaveServiceImpl) SetAllotment(ctx context.Context, req user.SetLeaveAllotmentRequest) (user.LeaveBalanceResponse, error) {
	if err := req.Validate(); err != nil {
		return user.LeaveBalanceResponse{}, err
	}

	var balance user.LeaveBalance
	err := l.WithinTransaction(ctx, func(txCtx context.Context) error {
		u, err := l.UserRepository.GetByID(txCtx, req.UserID)
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}
		if req.TotalDays < u.LeaveBalance.UsedDays {
			return user.ErrAllotmentBelowUsed
		}

		balance, err = l.UserRepository.SetLeaveAllotment(txCtx, req.UserID, req.TotalDays)
		if err != nil {
			return fmt.Errorf("failed to set leave allotment: %w", err)
		}
		return nil
	})
	if err != nil {
		return user.LeaveBalanceResponse{}, err
	}

	return user.NewLeaveBalanceResponse(balance), nil
}

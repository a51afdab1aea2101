package leave

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sarang-church/groupware-backend-go/internal/domain/leave"
	"github.com/sarang-church/groupware-backend-go/internal/domain/user"
)

type fakeTransactor struct {
	calls int
}

func (f *fakeTransactor) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeLeaveRepo struct {
	mu       sync.Mutex
	requests map[string]leave.LeaveRequest
	order    []string

	// beforeTransition runs inside Transition before the version check
	beforeTransition func(r *leave.LeaveRequest)

	// users backs LockRequester's existence check when set
	users *fakeUserRepo
	locks []string
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{requests: make(map[string]leave.LeaveRequest)}
}

func (f *fakeLeaveRepo) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	request.ID = fmt.Sprintf("req-%d", len(f.order)+1)
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt
	f.requests[request.ID] = request
	f.order = append(f.order, request.ID)
	return request, nil
}

// seed stores r as-is, for setting up existing requests
func (f *fakeLeaveRepo) seed(r leave.LeaveRequest) leave.LeaveRequest {
	if r.Version == 0 {
		r.Version = 1
	}
	f.requests[r.ID] = r
	f.order = append(f.order, r.ID)
	return r
}

func (f *fakeLeaveRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return r, nil
}

func (f *fakeLeaveRepo) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []leave.LeaveRequest
	for _, id := range f.order {
		r := f.requests[id]
		if filter.RequesterID != "" && r.RequesterID != filter.RequesterID {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		matched = append(matched, r)
	}

	start := (filter.Page - 1) * filter.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], int64(len(matched)), nil
}

func (f *fakeLeaveRepo) LockRequester(ctx context.Context, requesterID string) error {
	if f.users != nil {
		if _, err := f.users.GetByID(ctx, requesterID); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.locks = append(f.locks, requesterID)
	return nil
}

func (f *fakeLeaveRepo) ListActiveByRequester(ctx context.Context, requesterID string) ([]leave.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []leave.LeaveRequest
	for _, id := range f.order {
		r := f.requests[id]
		if r.RequesterID == requesterID && r.Status.IsActive() {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) ListActiveInRange(ctx context.Context, from, to time.Time, requesterID string) ([]leave.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []leave.LeaveRequest
	for _, id := range f.order {
		r := f.requests[id]
		if requesterID != "" && r.RequesterID != requesterID {
			continue
		}
		if r.Status.IsActive() && leave.RangesIntersect(r.StartDate, r.EndDate, from, to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) Transition(ctx context.Context, request leave.LeaveRequest, fromStatus leave.Status, fromVersion int) (leave.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.requests[request.ID]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	if f.beforeTransition != nil {
		f.beforeTransition(&stored)
	}
	if stored.Status != fromStatus || stored.Version != fromVersion {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
	}
	request.Version = fromVersion + 1
	f.requests[request.ID] = request
	return request, nil
}

type fakeUserRepo struct {
	mu          sync.Mutex
	users       map[string]user.User
	adjustCalls int
}

func newFakeUserRepo(users ...user.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[string]user.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) AdjustUsedLeaveDays(ctx context.Context, id string, delta float64) (user.LeaveBalance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return user.LeaveBalance{}, user.ErrUserNotFound
	}
	f.adjustCalls++
	u.LeaveBalance.UsedDays += delta
	f.users[id] = u
	return u.LeaveBalance, nil
}

func (f *fakeUserRepo) SetLeaveAllotment(ctx context.Context, id string, totalDays float64) (user.LeaveBalance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return user.LeaveBalance{}, user.ErrUserNotFound
	}
	u.LeaveBalance.TotalDays = totalDays
	f.users[id] = u
	return u.LeaveBalance, nil
}

func (f *fakeUserRepo) used(id string) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id].LeaveBalance.UsedDays
}

package reservation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sarang-church/groupware-backend-go/internal/domain/reservation"
)

type fakeTransactor struct{}

func (fakeTransactor) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type fakeResourceRepo struct {
	mu        sync.Mutex
	resources []reservation.Resource
}

func (f *fakeResourceRepo) Create(ctx context.Context, r reservation.Resource) (reservation.Resource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r.ID = fmt.Sprintf("res-%d", len(f.resources)+1)
	f.resources = append(f.resources, r)
	return r, nil
}

func (f *fakeResourceRepo) GetByID(ctx context.Context, id string) (reservation.Resource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.resources {
		if r.ID == id {
			return r, nil
		}
	}
	return reservation.Resource{}, reservation.ErrResourceNotFound
}

func (f *fakeResourceRepo) List(ctx context.Context, category reservation.Category, activeOnly bool) ([]reservation.Resource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []reservation.Resource
	for _, r := range f.resources {
		if category != "" && r.Category != category {
			continue
		}
		if activeOnly && !r.IsActive {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeResourceRepo) UpdateMileage(ctx context.Context, id string, mileage int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.resources {
		if f.resources[i].ID == id {
			f.resources[i].Mileage = &mileage
			return nil
		}
	}
	return reservation.ErrResourceNotFound
}

type fakeReservationRepo struct {
	mu           sync.Mutex
	reservations []reservation.Reservation

	createErr error
	updateErr error
}

func (f *fakeReservationRepo) Create(ctx context.Context, r reservation.Reservation) (reservation.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return reservation.Reservation{}, f.createErr
	}
	r.ID = fmt.Sprintf("rsv-%d", len(f.reservations)+1)
	r.CreatedAt = time.Now()
	f.reservations = append(f.reservations, r)
	return r, nil
}

func (f *fakeReservationRepo) GetByID(ctx context.Context, id string) (reservation.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reservations {
		if r.ID == id {
			return r, nil
		}
	}
	return reservation.Reservation{}, reservation.ErrReservationNotFound
}

func (f *fakeReservationRepo) GetForUpdate(ctx context.Context, id string) (reservation.Reservation, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeReservationRepo) ListActive(ctx context.Context, filter reservation.ReservationFilter) ([]reservation.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []reservation.Reservation
	for _, r := range f.reservations {
		if !r.IsActive() || !contains(filter.ResourceIDs, r.ResourceID) {
			continue
		}
		if r.StartAt.Before(filter.To) && r.EndAt.After(filter.From) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) Update(ctx context.Context, r reservation.Reservation) (reservation.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return reservation.Reservation{}, f.updateErr
	}
	for i := range f.reservations {
		if f.reservations[i].ID == r.ID {
			f.reservations[i] = r
			return r, nil
		}
	}
	return reservation.Reservation{}, reservation.ErrReservationNotFound
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

type fakeFileService struct {
	mu      sync.Mutex
	uploads []string
	deletes []string
}

func (f *fakeFileService) UploadCheckpointPhoto(ctx context.Context, reservationID string, stage string, file io.Reader, filename string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := io.ReadAll(file); err != nil {
		return "", err
	}
	key := fmt.Sprintf("vehicles/%s/%s-%d.jpg", reservationID, stage, len(f.uploads)+1)
	f.uploads = append(f.uploads, key)
	return key, nil
}

func (f *fakeFileService) DeleteFile(ctx context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, path)
	return nil
}

func (f *fakeFileService) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	if path == "" {
		return "", errors.New("empty path")
	}
	return "http://localhost:8080/uploads/" + path, nil
}

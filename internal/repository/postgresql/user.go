package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/sarang-church/groupware-backend-go/internal/domain/user"
	"github.com/sarang-church/groupware-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `
	id, email, name, password_hash, role, position,
	total_leave_days, used_leave_days, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.PasswordHash,
		&u.Role,
		&u.Position,
		&u.LeaveBalance.TotalDays,
		&u.LeaveBalance.UsedDays,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(q.QueryRow(ctx, query, id))
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	return scanUser(q.QueryRow(ctx, query, email))
}

// AdjustUsedLeaveDays implements user.UserRepository.
func (r *userRepositoryImpl) AdjustUsedLeaveDays(ctx context.Context, id string, delta float64) (user.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	// Read-modify-write happens inside the statement, concurrent adjustments cannot lose updates
	query := `
		UPDATE users
		SET used_leave_days = used_leave_days + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING total_leave_days, used_leave_days
	`

	var balance user.LeaveBalance
	err := q.QueryRow(ctx, query, id, delta).Scan(&balance.TotalDays, &balance.UsedDays)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.LeaveBalance{}, user.ErrUserNotFound
		}
		return user.LeaveBalance{}, err
	}
	return balance, nil
}

// SetLeaveAllotment implements user.UserRepository.
func (r *userRepositoryImpl) SetLeaveAllotment(ctx context.Context, id string, totalDays float64) (user.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET total_leave_days = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING total_leave_days, used_leave_days
	`

	var balance user.LeaveBalance
	err := q.QueryRow(ctx, query, id, totalDays).Scan(&balance.TotalDays, &balance.UsedDays)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.LeaveBalance{}, user.ErrUserNotFound
		}
		return user.LeaveBalance{}, err
	}
	return balance, nil
}

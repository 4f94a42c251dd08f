package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/staff"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type staffRepositoryImpl struct {
	db *database.DB
}

func NewStaffRepository(db *database.DB) staff.StaffRepository {
	return &staffRepositoryImpl{db: db}
}

// Create implements staff.StaffRepository. created_at is assigned here and starts leave accrual.
func (r *staffRepositoryImpl) Create(ctx context.Context, s staff.Staff) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return staff.Staff{}, err
	}

	query := `
		INSERT INTO staff (id, user_id, start_work_date, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err = q.QueryRow(ctx, query, id, s.UserID, s.StartWorkDate).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return staff.Staff{}, staff.ErrStaffExists
		}
		return staff.Staff{}, err
	}

	return s, nil
}

const staffSelect = `
	SELECT s.id, s.user_id, s.start_work_date, s.created_at, s.updated_at, u.name, u.email
	FROM staff s
	INNER JOIN users u ON u.id = s.user_id
`

func (r *staffRepositoryImpl) getOne(ctx context.Context, where string, arg string) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	var s staff.Staff
	err := q.QueryRow(ctx, staffSelect+where, arg).Scan(
		&s.ID,
		&s.UserID,
		&s.StartWorkDate,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.UserName,
		&s.UserEmail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staff.Staff{}, staff.ErrStaffNotFound
		}
		return staff.Staff{}, err
	}
	return s, nil
}

// GetByID implements staff.StaffRepository.
func (r *staffRepositoryImpl) GetByID(ctx context.Context, id string) (staff.Staff, error) {
	if !validID(id) {
		return staff.Staff{}, staff.ErrStaffNotFound
	}
	return r.getOne(ctx, "WHERE s.id = $1", id)
}

// GetByUserID implements staff.StaffRepository.
func (r *staffRepositoryImpl) GetByUserID(ctx context.Context, userID string) (staff.Staff, error) {
	if !validID(userID) {
		return staff.Staff{}, staff.ErrStaffNotFound
	}
	return r.getOne(ctx, "WHERE s.user_id = $1", userID)
}

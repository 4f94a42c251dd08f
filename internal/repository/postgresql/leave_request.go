package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveColumns = `
	sl.id, sl.staff_id, sl.reason, sl.start_date, sl.end_date, sl.is_approved,
	sl.approved_by, sl.approved_at, sl.created_at, sl.updated_at, u.name
`

const leaveSelect = `
	SELECT ` + leaveColumns + `
	FROM staff_leaves sl
	INNER JOIN staff s ON s.id = sl.staff_id
	INNER JOIN users u ON u.id = s.user_id
`

func scanLeave(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID,
		&lr.StaffID,
		&lr.Reason,
		&lr.StartDate,
		&lr.EndDate,
		&lr.IsApproved,
		&lr.ApprovedBy,
		&lr.ApprovedAt,
		&lr.CreatedAt,
		&lr.UpdatedAt,
		&lr.StaffName,
	)
	return lr, err
}

func collectLeaves(rows pgx.Rows) ([]leave.LeaveRequest, error) {
	defer rows.Close()

	requests := []leave.LeaveRequest{}
	for rows.Next() {
		lr, err := scanLeave(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

// Create implements leave.LeaveRequestRepository. New requests are always pending.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	query := `
		INSERT INTO staff_leaves (
			id, staff_id, reason, start_date, end_date, is_approved, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, FALSE, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`
	err = q.QueryRow(ctx, query, id, request.StaffID, request.Reason, request.StartDate, request.EndDate).
		Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	request.IsApproved = false
	request.ApprovedBy = nil
	request.ApprovedAt = nil

	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	if !validID(id) {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	q := GetQuerier(ctx, r.db)

	lr, err := scanLeave(q.QueryRow(ctx, leaveSelect+`WHERE sl.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return lr, nil
}

// ListByStaffID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByStaffID(ctx context.Context, staffID string) ([]leave.LeaveRequest, error) {
	if !validID(staffID) {
		return []leave.LeaveRequest{}, nil
	}
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, leaveSelect+`WHERE sl.staff_id = $1 ORDER BY sl.start_date ASC, sl.created_at ASC`, staffID)
	if err != nil {
		return nil, err
	}
	return collectLeaves(rows)
}

// ListByApproval implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByApproval(ctx context.Context, approved bool) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, leaveSelect+`WHERE sl.is_approved = $1 ORDER BY sl.start_date ASC, sl.created_at ASC`, approved)
	if err != nil {
		return nil, err
	}
	return collectLeaves(rows)
}

// Approve implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Approve(ctx context.Context, id string, approvedBy string) (leave.LeaveRequest, error) {
	if !validID(id) {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}

	var approvedByArg *string
	if validID(approvedBy) {
		approvedByArg = &approvedBy
	}

	var approved leave.LeaveRequest
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		q := GetQuerier(txCtx, r.db)

		var isApproved bool
		err := q.QueryRow(txCtx, `SELECT is_approved FROM staff_leaves WHERE id = $1 FOR UPDATE`, id).Scan(&isApproved)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return leave.ErrLeaveRequestNotFound
			}
			return err
		}
		if isApproved {
			return leave.ErrLeaveAlreadyApproved
		}

		_, err = q.Exec(txCtx, `
			UPDATE staff_leaves
			SET is_approved = TRUE, approved_by = $2, approved_at = NOW(), updated_at = NOW()
			WHERE id = $1
		`, id, approvedByArg)
		if err != nil {
			return err
		}

		approved, err = scanLeave(q.QueryRow(txCtx, leaveSelect+`WHERE sl.id = $1`, id))
		return err
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return approved, nil
}

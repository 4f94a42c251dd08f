/*
Package sqlite provides a SQLite-backed implementation of the user, staff and
leave repositories, for local development and tests.

Dates are stored as TEXT "YYYY-MM-DD", timestamps as RFC3339 in UTC. The
schema is auto-migrated on New. Use ":memory:" for an in-memory database;
the pool is limited to one connection so every query sees the same database.
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/staff"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
	sqlite3 "github.com/mattn/go-sqlite3"
)

// Store owns the connection shared by the repositories it hands out.
type Store struct {
	db  *sql.DB
	mu  sync.RWMutex
	now func() time.Time
}

// New opens (and migrates) the database at dbPath.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SetClock replaces the source of created_at/updated_at timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

func (s *Store) Users() user.UserRepository           { return &userRepository{s} }
func (s *Store) Staff() staff.StaffRepository         { return &staffRepository{s} }
func (s *Store) Leaves() leave.LeaveRequestRepository { return &leaveRepository{s} }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT,
		is_admin BOOLEAN NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS staff (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		start_work_date TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS staff_leaves (
		id TEXT PRIMARY KEY,
		staff_id TEXT NOT NULL REFERENCES staff(id) ON DELETE CASCADE,
		reason TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		is_approved BOOLEAN NOT NULL DEFAULT 0,
		approved_by TEXT REFERENCES users(id) ON DELETE SET NULL,
		approved_at TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_staff_leaves_staff_id ON staff_leaves(staff_id);
	CREATE INDEX IF NOT EXISTS idx_staff_leaves_is_approved ON staff_leaves(is_approved);
	`

	_, err := s.db.Exec(schema)
	return err
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return id.String(), nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(validator.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

func formatDate(t time.Time) string {
	return validator.TruncateToDate(t).Format(validator.DateLayout)
}

type scanner interface {
	Scan(dest ...any) error
}

// users

type userRepository struct{ s *Store }

const userSelect = `
	SELECT u.id, u.name, u.email, u.password_hash, u.is_admin, u.created_at, u.updated_at, s.id
	FROM users u
	LEFT JOIN staff s ON s.user_id = u.id
`

func scanUser(row scanner) (user.User, error) {
	var (
		u                    user.User
		createdAt, updatedAt string
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsAdmin, &createdAt, &updatedAt, &u.StaffID); err != nil {
		return user.User{}, err
	}
	var err error
	if u.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return user.User{}, err
	}
	if u.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return user.User{}, err
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id, err := newID()
	if err != nil {
		return user.User{}, err
	}
	now := r.s.timestamp()

	_, err = r.s.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, is_admin, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, newUser.Name, strings.ToLower(strings.TrimSpace(newUser.Email)), newUser.PasswordHash, newUser.IsAdmin, now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrUserEmailExists
		}
		return user.User{}, err
	}

	return r.getBy(ctx, "u.id = ?", id)
}

func (r *userRepository) getBy(ctx context.Context, where string, arg string) (user.User, error) {
	u, err := scanUser(r.s.db.QueryRowContext(ctx, userSelect+"WHERE "+where, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.getBy(ctx, "u.email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.getBy(ctx, "u.id = ?", id)
}

func (r *userRepository) ListAdmins(ctx context.Context) ([]user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rows, err := r.s.db.QueryContext(ctx, userSelect+"WHERE u.is_admin = 1 ORDER BY u.name, u.email")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	admins := []user.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		admins = append(admins, u)
	}
	return admins, rows.Err()
}

// staff

type staffRepository struct{ s *Store }

const staffSelect = `
	SELECT s.id, s.user_id, s.start_work_date, s.created_at, s.updated_at, u.name, u.email
	FROM staff s
	INNER JOIN users u ON u.id = s.user_id
`

func (r *staffRepository) Create(ctx context.Context, st staff.Staff) (staff.Staff, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id, err := newID()
	if err != nil {
		return staff.Staff{}, err
	}
	now := r.s.timestamp()

	_, err = r.s.db.ExecContext(ctx,
		`INSERT INTO staff (id, user_id, start_work_date, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		id, st.UserID, formatDate(st.StartWorkDate), now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return staff.Staff{}, staff.ErrStaffExists
		}
		return staff.Staff{}, err
	}

	return r.getBy(ctx, "s.id = ?", id)
}

func (r *staffRepository) getBy(ctx context.Context, where string, arg string) (staff.Staff, error) {
	var (
		st                              staff.Staff
		startWork, createdAt, updatedAt string
	)
	err := r.s.db.QueryRowContext(ctx, staffSelect+"WHERE "+where, arg).
		Scan(&st.ID, &st.UserID, &startWork, &createdAt, &updatedAt, &st.UserName, &st.UserEmail)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return staff.Staff{}, staff.ErrStaffNotFound
		}
		return staff.Staff{}, err
	}

	if st.StartWorkDate, err = parseDate(startWork); err != nil {
		return staff.Staff{}, err
	}
	if st.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return staff.Staff{}, err
	}
	if st.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return staff.Staff{}, err
	}
	return st, nil
}

func (r *staffRepository) GetByID(ctx context.Context, id string) (staff.Staff, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.getBy(ctx, "s.id = ?", id)
}

func (r *staffRepository) GetByUserID(ctx context.Context, userID string) (staff.Staff, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.getBy(ctx, "s.user_id = ?", userID)
}

// leaves

type leaveRepository struct{ s *Store }

const leaveSelect = `
	SELECT sl.id, sl.staff_id, sl.reason, sl.start_date, sl.end_date, sl.is_approved,
		sl.approved_by, sl.approved_at, sl.created_at, sl.updated_at, u.name
	FROM staff_leaves sl
	INNER JOIN staff s ON s.id = sl.staff_id
	INNER JOIN users u ON u.id = s.user_id
`

func scanLeave(row scanner) (leave.LeaveRequest, error) {
	var (
		lr                   leave.LeaveRequest
		start, end           string
		approvedAt           sql.NullString
		createdAt, updatedAt string
	)
	err := row.Scan(&lr.ID, &lr.StaffID, &lr.Reason, &start, &end, &lr.IsApproved,
		&lr.ApprovedBy, &approvedAt, &createdAt, &updatedAt, &lr.StaffName)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	if lr.StartDate, err = parseDate(start); err != nil {
		return leave.LeaveRequest{}, err
	}
	if lr.EndDate, err = parseDate(end); err != nil {
		return leave.LeaveRequest{}, err
	}
	if approvedAt.Valid {
		t, err := parseTimestamp(approvedAt.String)
		if err != nil {
			return leave.LeaveRequest{}, err
		}
		lr.ApprovedAt = &t
	}
	if lr.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return leave.LeaveRequest{}, err
	}
	if lr.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return leave.LeaveRequest{}, err
	}
	return lr, nil
}

func (r *leaveRepository) list(ctx context.Context, where string, arg any) ([]leave.LeaveRequest, error) {
	rows, err := r.s.db.QueryContext(ctx, leaveSelect+"WHERE "+where+" ORDER BY sl.start_date, sl.created_at", arg)
	if err != nil {
		return nil, err
	}
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

func (r *leaveRepository) getByID(ctx context.Context, q interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}, id string) (leave.LeaveRequest, error) {
	lr, err := scanLeave(q.QueryRowContext(ctx, leaveSelect+"WHERE sl.id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return lr, nil
}

func (r *leaveRepository) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id, err := newID()
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	now := r.s.timestamp()

	_, err = r.s.db.ExecContext(ctx, `
		INSERT INTO staff_leaves (id, staff_id, reason, start_date, end_date, is_approved, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 0, ?, ?)`,
		id, request.StaffID, request.Reason, formatDate(request.StartDate), formatDate(request.EndDate), now, now,
	)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return r.getByID(ctx, r.s.db, id)
}

func (r *leaveRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.getByID(ctx, r.s.db, id)
}

func (r *leaveRepository) ListByStaffID(ctx context.Context, staffID string) ([]leave.LeaveRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.list(ctx, "sl.staff_id = ?", staffID)
}

func (r *leaveRepository) ListByApproval(ctx context.Context, approved bool) ([]leave.LeaveRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.list(ctx, "sl.is_approved = ?", approved)
}

// Approve flips is_approved with a conditional UPDATE; zero affected rows
// means the leave is missing or already approved.
func (r *leaveRepository) Approve(ctx context.Context, id string, approvedBy string) (leave.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sqlTx, err := r.s.db.BeginTx(ctx, nil)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	defer sqlTx.Rollback()

	var approvedByArg any
	if approvedBy != "" {
		var exists int
		err := sqlTx.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE id = ?`, approvedBy).Scan(&exists)
		if err != nil {
			return leave.LeaveRequest{}, err
		}
		if exists > 0 {
			approvedByArg = approvedBy
		}
	}

	now := r.s.timestamp()
	res, err := sqlTx.ExecContext(ctx, `
		UPDATE staff_leaves
		SET is_approved = 1, approved_by = ?, approved_at = ?, updated_at = ?
		WHERE id = ? AND is_approved = 0`,
		approvedByArg, now, now, id,
	)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	if affected == 0 {
		if _, err := r.getByID(ctx, sqlTx, id); err != nil {
			return leave.LeaveRequest{}, err
		}
		return leave.LeaveRequest{}, leave.ErrLeaveAlreadyApproved
	}

	approved, err := r.getByID(ctx, sqlTx, id)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if err := sqlTx.Commit(); err != nil {
		return leave.LeaveRequest{}, err
	}
	return approved, nil
}

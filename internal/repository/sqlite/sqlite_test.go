package sqlite

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/staff"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	store.SetClock(func() time.Time { return time.Date(2018, 5, 1, 9, 30, 0, 0, time.UTC) })
	return store
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func seedStaff(t *testing.T, store *Store, email string) (user.User, staff.Staff) {
	t.Helper()
	ctx := context.Background()

	hash := "hash"
	u, err := store.Users().Create(ctx, user.User{Name: "Jane", Email: email, PasswordHash: &hash})
	require.NoError(t, err)

	s, err := store.Staff().Create(ctx, staff.Staff{UserID: u.ID, StartWorkDate: day(2018, 6, 1)})
	require.NoError(t, err)
	return u, s
}

func TestUserRepository(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	repo := store.Users()

	admin, err := repo.Create(ctx, user.User{Name: "Boss", Email: "Boss@Example.com", IsAdmin: true})
	require.NoError(t, err)
	assert.NotEmpty(t, admin.ID)
	assert.Equal(t, "boss@example.com", admin.Email)
	assert.Nil(t, admin.PasswordHash)
	assert.Nil(t, admin.StaffID)

	_, err = repo.Create(ctx, user.User{Name: "Other", Email: "boss@example.com"})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)

	u, s := seedStaff(t, store, "jane@example.com")

	found, err := repo.GetByEmail(ctx, "JANE@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)
	require.NotNil(t, found.StaffID)
	assert.Equal(t, s.ID, *found.StaffID)
	require.NotNil(t, found.PasswordHash)
	assert.Equal(t, "hash", *found.PasswordHash)

	byID, err := repo.GetByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.True(t, byID.IsAdmin)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
	_, err = repo.GetByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	admins, err := repo.ListAdmins(ctx)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, admin.ID, admins[0].ID)
}

func TestStaffRepository(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	u, s := seedStaff(t, store, "jane@example.com")
	assert.Equal(t, day(2018, 6, 1), s.StartWorkDate)
	assert.Equal(t, time.Date(2018, 5, 1, 9, 30, 0, 0, time.UTC), s.CreatedAt)
	assert.Equal(t, "Jane", s.Name())
	assert.Equal(t, "jane@example.com", s.Email())

	byUser, err := store.Staff().GetByUserID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, byUser.ID)

	_, err = store.Staff().Create(ctx, staff.Staff{UserID: u.ID, StartWorkDate: day(2019, 1, 1)})
	assert.ErrorIs(t, err, staff.ErrStaffExists)

	_, err = store.Staff().GetByID(ctx, "missing")
	assert.ErrorIs(t, err, staff.ErrStaffNotFound)
	_, err = store.Staff().GetByUserID(ctx, "missing")
	assert.ErrorIs(t, err, staff.ErrStaffNotFound)

	_, err = store.Staff().Create(ctx, staff.Staff{UserID: "no-such-user", StartWorkDate: day(2019, 1, 1)})
	assert.Error(t, err)
}

func TestLeaveRepository_CreateAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	_, s := seedStaff(t, store, "jane@example.com")
	repo := store.Leaves()

	second, err := repo.Create(ctx, leave.LeaveRequest{StaffID: s.ID, Reason: "trip", StartDate: day(2019, 2, 4), EndDate: day(2019, 2, 8)})
	require.NoError(t, err)
	first, err := repo.Create(ctx, leave.LeaveRequest{StaffID: s.ID, Reason: "family", StartDate: day(2018, 12, 7), EndDate: day(2018, 12, 14), IsApproved: true})
	require.NoError(t, err)

	assert.False(t, first.IsApproved, "new requests are always pending")
	assert.Equal(t, day(2018, 12, 7), first.StartDate)
	require.NotNil(t, first.StaffName)
	assert.Equal(t, "Jane", *first.StaffName)

	leaves, err := repo.ListByStaffID(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, leaves, 2)
	assert.Equal(t, first.ID, leaves[0].ID)
	assert.Equal(t, second.ID, leaves[1].ID)

	none, err := repo.ListByStaffID(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, none)

	pending, err := repo.ListByApproval(ctx, false)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	approved, err := repo.ListByApproval(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, approved)
}

func TestLeaveRepository_Approve(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	_, s := seedStaff(t, store, "jane@example.com")
	admin, err := store.Users().Create(ctx, user.User{Name: "Boss", Email: "boss@example.com", IsAdmin: true})
	require.NoError(t, err)

	created, err := store.Leaves().Create(ctx, leave.LeaveRequest{StaffID: s.ID, Reason: "family", StartDate: day(2018, 12, 7), EndDate: day(2018, 12, 14)})
	require.NoError(t, err)

	approved, err := store.Leaves().Approve(ctx, created.ID, admin.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, admin.ID, *approved.ApprovedBy)
	require.NotNil(t, approved.ApprovedAt)

	_, err = store.Leaves().Approve(ctx, created.ID, admin.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyApproved)

	_, err = store.Leaves().Approve(ctx, "missing", admin.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	got, err := store.Leaves().GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.IsApproved)

	list, err := store.Leaves().ListByApproval(ctx, true)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestLeaveRepository_ConcurrentApproveSucceedsOnce(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	_, s := seedStaff(t, store, "jane@example.com")

	created, err := store.Leaves().Create(ctx, leave.LeaveRequest{StaffID: s.ID, Reason: "family", StartDate: day(2018, 12, 7), EndDate: day(2018, 12, 14)})
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Leaves().Approve(ctx, created.ID, ""); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
}

func TestLeaveRepository_GetByIDNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Leaves().GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

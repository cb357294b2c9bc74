package vacation

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-personnel/internal/personnel"
	personnelerrors "go-personnel/internal/personnel/errors"
	vacationerrors "go-personnel/internal/vacation/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn      func(ctx context.Context, v *Vacation) error
	findPageFn    func(ctx context.Context, personnelID string, page, pageSize int) ([]Vacation, error)
	countFn       func(ctx context.Context, personnelID string) (int64, error)
	deleteFn      func(ctx context.Context, personnelID, id string) (bool, error)
	hasActiveAtFn func(ctx context.Context, personnelID string, at time.Time) (bool, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository                   { return f }
func (f *fakeRepo) Create(ctx context.Context, v *Vacation) error { return f.createFn(ctx, v) }
func (f *fakeRepo) FindPageByPersonnel(ctx context.Context, personnelID string, page, pageSize int) ([]Vacation, error) {
	return f.findPageFn(ctx, personnelID, page, pageSize)
}
func (f *fakeRepo) CountByPersonnel(ctx context.Context, personnelID string) (int64, error) {
	return f.countFn(ctx, personnelID)
}
func (f *fakeRepo) DeleteByIDAndPersonnel(ctx context.Context, personnelID, id string) (bool, error) {
	return f.deleteFn(ctx, personnelID, id)
}
func (f *fakeRepo) HasActiveAt(ctx context.Context, personnelID string, at time.Time) (bool, error) {
	return f.hasActiveAtFn(ctx, personnelID, at)
}

type fakePersonnelRepo struct {
	personnel.Repository
	findByUserNameFn func(ctx context.Context, userName string) (*personnel.Personnel, error)
}

func (f *fakePersonnelRepo) FindByUserName(ctx context.Context, userName string) (*personnel.Personnel, error) {
	return f.findByUserNameFn(ctx, userName)
}

func ownerRepo(owner *personnel.Personnel) *fakePersonnelRepo {
	return &fakePersonnelRepo{
		findByUserNameFn: func(ctx context.Context, userName string) (*personnel.Personnel, error) {
			if owner != nil && userName == owner.UserName {
				return owner, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
}

func TestService_Add_Success(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	owner := &personnel.Personnel{ID: uuid.New(), UserName: "alice"}

	var created *Vacation
	repo := &fakeRepo{
		createFn: func(ctx context.Context, v *Vacation) error {
			created = v
			return nil
		},
	}

	svc := NewService(db, repo, ownerRepo(owner))

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Add(context.Background(), "alice", CreateVacationRequest{
		StartDate: "2024-07-01",
		EndDate:   "2024-07-05",
	})
	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Equal(t, owner.ID, created.PersonnelID)
	assert.Equal(t, "2024-07-01", resp.StartDate)
	assert.Equal(t, "2024-07-05", resp.EndDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Add_ReversedDates(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, ownerRepo(&personnel.Personnel{ID: uuid.New(), UserName: "alice"}))

	_, err := svc.Add(context.Background(), "alice", CreateVacationRequest{
		StartDate: "2024-07-05",
		EndDate:   "2024-07-01",
	})
	assert.ErrorIs(t, err, vacationerrors.ErrInvalidDateRange)
}

func TestService_Add_BadDateFormat(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, ownerRepo(nil))

	_, err := svc.Add(context.Background(), "alice", CreateVacationRequest{
		StartDate: "01/07/2024",
		EndDate:   "2024-07-05",
	})
	assert.ErrorIs(t, err, vacationerrors.ErrInvalidDateFormat)
}

func TestService_Add_UnknownUser(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, ownerRepo(nil))

	_, err := svc.Add(context.Background(), "ghost", CreateVacationRequest{
		StartDate: "2024-07-01",
		EndDate:   "2024-07-05",
	})
	assert.ErrorIs(t, err, personnelerrors.ErrPersonnelNotFound)
}

func TestService_Delete_ScopedToOwner(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	owner := &personnel.Personnel{ID: uuid.New(), UserName: "alice"}
	vacationID := uuid.New().String()

	var gotPersonnelID, gotVacationID string
	repo := &fakeRepo{
		deleteFn: func(ctx context.Context, personnelID, id string) (bool, error) {
			gotPersonnelID = personnelID
			gotVacationID = id
			return true, nil
		},
	}

	svc := NewService(db, repo, ownerRepo(owner))

	err := svc.Delete(context.Background(), "alice", vacationID)
	assert.NoError(t, err)
	// the delete is keyed by the caller's own personnel id, never just the vacation id
	assert.Equal(t, owner.ID.String(), gotPersonnelID)
	assert.Equal(t, vacationID, gotVacationID)
}

func TestService_Delete_NoMatch(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	owner := &personnel.Personnel{ID: uuid.New(), UserName: "alice"}
	repo := &fakeRepo{
		deleteFn: func(ctx context.Context, personnelID, id string) (bool, error) {
			return false, nil
		},
	}

	svc := NewService(db, repo, ownerRepo(owner))

	err := svc.Delete(context.Background(), "alice", uuid.New().String())
	assert.ErrorIs(t, err, vacationerrors.ErrVacationNotFound)
}

func TestService_Delete_InvalidID(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, ownerRepo(nil))

	err := svc.Delete(context.Background(), "alice", "not-a-uuid")
	assert.ErrorIs(t, err, vacationerrors.ErrInvalidVacationID)
}

func TestService_GetForUser(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	owner := &personnel.Personnel{ID: uuid.New(), UserName: "alice"}
	rows := []Vacation{
		{
			ID:          uuid.New(),
			PersonnelID: owner.ID,
			StartDate:   time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
			EndDate:     time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC),
		},
	}

	repo := &fakeRepo{
		findPageFn: func(ctx context.Context, personnelID string, page, pageSize int) ([]Vacation, error) {
			assert.Equal(t, owner.ID.String(), personnelID)
			return rows, nil
		},
		countFn: func(ctx context.Context, personnelID string) (int64, error) { return 7, nil },
	}

	svc := NewService(db, repo, ownerRepo(owner))

	resp, total, err := svc.GetForUser(context.Background(), "alice", 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), total)
	assert.Len(t, resp, 1)
	assert.Equal(t, "2024-07-01", resp[0].StartDate)
}

func TestService_ActiveAt(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	at := time.Date(2024, 7, 3, 12, 0, 0, 0, time.UTC)
	repo := &fakeRepo{
		hasActiveAtFn: func(ctx context.Context, personnelID string, got time.Time) (bool, error) {
			assert.Equal(t, at, got)
			return true, nil
		},
	}

	svc := NewService(db, repo, ownerRepo(nil))

	active, err := svc.ActiveAt(context.Background(), uuid.New().String(), at)
	assert.NoError(t, err)
	assert.True(t, active)
}

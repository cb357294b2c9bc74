package personnel

import (
	"context"
	"database/sql"
	"testing"

	personnelerrors "go-personnel/internal/personnel/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn         func(ctx context.Context, p *Personnel) error
	findByIDFn       func(ctx context.Context, id string) (*Personnel, error)
	findByUserNameFn func(ctx context.Context, userName string) (*Personnel, error)
	findPageFn       func(ctx context.Context, page, pageSize int) ([]Personnel, error)
	countAllFn       func(ctx context.Context) (int64, error)
	updateFn         func(ctx context.Context, p *Personnel) error
	setActiveFn      func(ctx context.Context, id string, active bool) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository                    { return f }
func (f *fakeRepo) Create(ctx context.Context, p *Personnel) error { return f.createFn(ctx, p) }
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Personnel, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindByUserName(ctx context.Context, userName string) (*Personnel, error) {
	return f.findByUserNameFn(ctx, userName)
}
func (f *fakeRepo) FindPage(ctx context.Context, page, pageSize int) ([]Personnel, error) {
	return f.findPageFn(ctx, page, pageSize)
}
func (f *fakeRepo) CountAll(ctx context.Context) (int64, error) { return f.countAllFn(ctx) }
func (f *fakeRepo) Update(ctx context.Context, p *Personnel) error {
	return f.updateFn(ctx, p)
}
func (f *fakeRepo) SetActive(ctx context.Context, id string, active bool) error {
	return f.setActiveFn(ctx, id, active)
}

func TestService_Create_HashesPassword(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var created *Personnel
	repo := &fakeRepo{
		createFn: func(ctx context.Context, p *Personnel) error {
			created = p
			return nil
		},
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), CreatePersonnelRequest{
		UserName: "alice",
		FullName: "Alice Smith",
		Password: "s3cret",
	})
	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.True(t, created.IsActive)
	// stored password is a bcrypt hash of the plaintext, never the plaintext
	assert.NotEqual(t, "s3cret", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("s3cret")))
	assert.Equal(t, "alice", resp.UserName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_EmptyPassword(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{})

	_, err := svc.Create(context.Background(), CreatePersonnelRequest{
		UserName: "alice",
		Password: "   ",
	})
	assert.ErrorIs(t, err, personnelerrors.ErrEmptyPassword)
}

func TestService_Create_DuplicateUserName(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		createFn: func(ctx context.Context, p *Personnel) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_personnel_user_name"}
		},
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), CreatePersonnelRequest{
		UserName: "alice",
		Password: "s3cret",
	})
	assert.ErrorIs(t, err, personnelerrors.ErrUserNameTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Update_RehashesPassword(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	id := uuid.New()
	existing := &Personnel{ID: id, UserName: "alice", FullName: "Alice", Password: "old-hash"}

	var updated *Personnel
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, got string) (*Personnel, error) {
			assert.Equal(t, id.String(), got)
			return existing, nil
		},
		updateFn: func(ctx context.Context, p *Personnel) error {
			updated = p
			return nil
		},
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Update(context.Background(), id.String(), UpdatePersonnelRequest{
		FullName: "Alice Cooper",
		Password: "newpass",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Alice Cooper", updated.FullName)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("newpass")))
	assert.Equal(t, "Alice Cooper", resp.FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Update_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Personnel, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Update(context.Background(), uuid.New().String(), UpdatePersonnelRequest{
		FullName: "Nobody",
		Password: "pw",
	})
	assert.ErrorIs(t, err, personnelerrors.ErrPersonnelNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetAll(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		findPageFn: func(ctx context.Context, page, pageSize int) ([]Personnel, error) {
			assert.Equal(t, 2, page)
			assert.Equal(t, 10, pageSize)
			return []Personnel{{ID: uuid.New(), UserName: "alice"}}, nil
		},
		countAllFn: func(ctx context.Context) (int64, error) { return 11, nil },
	}

	svc := NewService(db, repo)

	resp, total, err := svc.GetAll(context.Background(), 2, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(11), total)
	assert.Len(t, resp, 1)
}

func TestService_GetByID_InvalidID(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{})

	_, err := svc.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, personnelerrors.ErrInvalidPersonnelID)
}

func TestService_SetActive_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		setActiveFn: func(ctx context.Context, id string, active bool) error {
			return gorm.ErrRecordNotFound
		},
	}

	svc := NewService(db, repo)

	err := svc.SetActive(context.Background(), uuid.New().String(), false)
	assert.ErrorIs(t, err, personnelerrors.ErrPersonnelNotFound)
}

func TestService_SetActive_Success(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	var gotActive bool
	repo := &fakeRepo{
		setActiveFn: func(ctx context.Context, id string, active bool) error {
			gotActive = active
			return nil
		},
	}

	svc := NewService(db, repo)

	assert.NoError(t, svc.SetActive(context.Background(), uuid.New().String(), true))
	assert.True(t, gotActive)
}

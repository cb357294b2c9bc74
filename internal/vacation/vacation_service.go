package vacation

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-personnel/internal/personnel"
	personnelerrors "go-personnel/internal/personnel/errors"
	vacationerrors "go-personnel/internal/vacation/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=vacation_service.go -destination=mock/vacation_service_mock.go -package=mock
type Service interface {
	Add(ctx context.Context, userName string, req CreateVacationRequest) (VacationResponse, error)
	GetForUser(ctx context.Context, userName string, page, pageSize int) ([]VacationResponse, int64, error)
	Delete(ctx context.Context, userName, vacationID string) error
	// ActiveAt reports whether the personnel is on vacation at the instant.
	// The interval is inclusive on both ends.
	ActiveAt(ctx context.Context, personnelID string, at time.Time) (bool, error)
}

type service struct {
	db            *sql.DB
	repo          Repository
	personnelRepo personnel.Repository
	logger        *zap.Logger
}

func NewService(db *sql.DB, repo Repository, personnelRepo personnel.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("vacation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("vacation.service")
	}
	return &service{db: db, repo: repo, personnelRepo: personnelRepo, logger: l}
}

func (s *service) Add(ctx context.Context, userName string, req CreateVacationRequest) (VacationResponse, error) {
	s.logger.Debug("add vacation requested",
		zap.String("user_name", userName),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return VacationResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return VacationResponse{}, err
	}
	if startDate.After(endDate) {
		return VacationResponse{}, vacationerrors.ErrInvalidDateRange
	}

	owner, err := s.findOwner(ctx, userName)
	if err != nil {
		return VacationResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("add vacation begin tx failed", zap.Error(err))
		return VacationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	v := &Vacation{
		ID:          uuid.New(),
		PersonnelID: owner.ID,
		StartDate:   startDate,
		EndDate:     endDate,
	}

	if err := qtx.Create(ctx, v); err != nil {
		s.logger.Error("add vacation persist failed", zap.Error(err))
		return VacationResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("add vacation commit failed", zap.Error(err))
		return VacationResponse{}, err
	}

	s.logger.Info("add vacation success",
		zap.String("vacation_id", v.ID.String()),
		zap.String("user_name", userName),
	)
	return mapToResponse(*v), nil
}

func (s *service) GetForUser(ctx context.Context, userName string, page, pageSize int) ([]VacationResponse, int64, error) {
	owner, err := s.findOwner(ctx, userName)
	if err != nil {
		return nil, 0, err
	}

	rows, err := s.repo.FindPageByPersonnel(ctx, owner.ID.String(), page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountByPersonnel(ctx, owner.ID.String())
	if err != nil {
		return nil, 0, err
	}

	resp := make([]VacationResponse, len(rows))
	for i, v := range rows {
		resp[i] = mapToResponse(v)
	}
	return resp, total, nil
}

func (s *service) Delete(ctx context.Context, userName, vacationID string) error {
	s.logger.Debug("delete vacation requested",
		zap.String("user_name", userName),
		zap.String("vacation_id", vacationID),
	)

	if _, err := uuid.Parse(vacationID); err != nil {
		return vacationerrors.ErrInvalidVacationID
	}

	owner, err := s.findOwner(ctx, userName)
	if err != nil {
		return err
	}

	matched, err := s.repo.DeleteByIDAndPersonnel(ctx, owner.ID.String(), vacationID)
	if err != nil {
		s.logger.Error("delete vacation persist failed",
			zap.String("vacation_id", vacationID),
			zap.Error(err),
		)
		return err
	}
	if !matched {
		return vacationerrors.ErrVacationNotFound
	}

	s.logger.Info("delete vacation success",
		zap.String("vacation_id", vacationID),
		zap.String("user_name", userName),
	)
	return nil
}

func (s *service) ActiveAt(ctx context.Context, personnelID string, at time.Time) (bool, error) {
	return s.repo.HasActiveAt(ctx, personnelID, at)
}

func (s *service) findOwner(ctx context.Context, userName string) (*personnel.Personnel, error) {
	p, err := s.personnelRepo.FindByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, personnelerrors.ErrPersonnelNotFound
		}
		return nil, err
	}
	return p, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, vacationerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(v Vacation) VacationResponse {
	return VacationResponse{
		ID:        v.ID.String(),
		StartDate: v.StartDate.Format("2006-01-02"),
		EndDate:   v.EndDate.Format("2006-01-02"),
	}
}

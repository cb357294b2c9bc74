package personnel

import (
	"context"
	"database/sql"
	"strings"

	personnelerrors "go-personnel/internal/personnel/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=personnel_service.go -destination=mock/personnel_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreatePersonnelRequest) (PersonnelResponse, error)
	Update(ctx context.Context, id string, req UpdatePersonnelRequest) (PersonnelResponse, error)
	GetAll(ctx context.Context, page, pageSize int) ([]PersonnelResponse, int64, error)
	GetByID(ctx context.Context, id string) (PersonnelResponse, error)
	SetActive(ctx context.Context, id string, active bool) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("personnel.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("personnel.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreatePersonnelRequest) (PersonnelResponse, error) {
	s.logger.Debug("create personnel requested", zap.String("user_name", req.UserName))

	if strings.TrimSpace(req.Password) == "" {
		return PersonnelResponse{}, personnelerrors.ErrEmptyPassword
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create personnel begin tx failed", zap.Error(err))
		return PersonnelResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return PersonnelResponse{}, err
	}

	p := &Personnel{
		ID:       uuid.New(),
		UserName: req.UserName,
		FullName: req.FullName,
		Password: string(hashed),
		IsActive: true,
	}

	if err := qtx.Create(ctx, p); err != nil {
		s.logger.Error("create personnel persist failed", zap.Error(err))
		return PersonnelResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create personnel commit failed", zap.Error(err))
		return PersonnelResponse{}, err
	}

	s.logger.Info("create personnel success",
		zap.String("personnel_id", p.ID.String()),
		zap.String("user_name", p.UserName),
	)
	return mapToResponse(*p), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdatePersonnelRequest) (PersonnelResponse, error) {
	s.logger.Debug("update personnel requested", zap.String("personnel_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return PersonnelResponse{}, personnelerrors.ErrInvalidPersonnelID
	}
	if strings.TrimSpace(req.Password) == "" {
		return PersonnelResponse{}, personnelerrors.ErrEmptyPassword
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update personnel begin tx failed", zap.Error(err))
		return PersonnelResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByID(ctx, id)
	if err != nil {
		return PersonnelResponse{}, mapRepositoryError(err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return PersonnelResponse{}, err
	}

	p.FullName = req.FullName
	p.Password = string(hashed)

	if err := qtx.Update(ctx, p); err != nil {
		s.logger.Error("update personnel persist failed",
			zap.String("personnel_id", id),
			zap.Error(err),
		)
		return PersonnelResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update personnel commit failed", zap.Error(err))
		return PersonnelResponse{}, err
	}

	s.logger.Info("update personnel success", zap.String("personnel_id", id))
	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context, page, pageSize int) ([]PersonnelResponse, int64, error) {
	rows, err := s.repo.FindPage(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]PersonnelResponse, len(rows))
	for i, p := range rows {
		resp[i] = mapToResponse(p)
	}
	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (PersonnelResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PersonnelResponse{}, personnelerrors.ErrInvalidPersonnelID
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PersonnelResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*p), nil
}

func (s *service) SetActive(ctx context.Context, id string, active bool) error {
	if _, err := uuid.Parse(id); err != nil {
		return personnelerrors.ErrInvalidPersonnelID
	}

	if err := s.repo.SetActive(ctx, id, active); err != nil {
		s.logger.Error("set personnel active failed",
			zap.String("personnel_id", id),
			zap.Bool("active", active),
			zap.Error(err),
		)
		return mapRepositoryError(err)
	}
	s.logger.Info("set personnel active success",
		zap.String("personnel_id", id),
		zap.Bool("active", active),
	)
	return nil
}

func mapToResponse(p Personnel) PersonnelResponse {
	return PersonnelResponse{
		ID:        p.ID.String(),
		UserName:  p.UserName,
		FullName:  p.FullName,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

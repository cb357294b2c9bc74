package auth

import (
	"context"
	"errors"
	"os"
	"time"

	"go-personnel/internal/attendance"
	autherrors "go-personnel/internal/auth/errors"
	"go-personnel/internal/personnel"
	"go-personnel/internal/shared/clock"
	"go-personnel/internal/vacation"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	// Login checks, in order: user exists, password matches, account active,
	// not on vacation right now. Only when all pass is the attendance
	// transition recorded and a token pair issued.
	Login(ctx context.Context, userName, password string) (accessToken, refreshToken string, resp AuthResponse, err error)

	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)

	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
}

type service struct {
	personnelRepo personnel.Repository
	vacations     vacation.Service
	tracker       attendance.Service
	clk           clock.Clock
	logger        *zap.Logger
}

func NewService(
	personnelRepo personnel.Repository,
	vacations vacation.Service,
	tracker attendance.Service,
	clk clock.Clock,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		personnelRepo: personnelRepo,
		vacations:     vacations,
		tracker:       tracker,
		clk:           clk,
		logger:        l,
	}
}

func (s *service) Login(ctx context.Context, userName, password string) (string, string, AuthResponse, error) {
	p, err := s.personnelRepo.FindByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("login user not found", zap.String("user_name", userName))
			return "", "", AuthResponse{}, autherrors.ErrUserNotFound
		}
		s.logger.Error("login lookup failed", zap.Error(err))
		return "", "", AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(p.Password), []byte(password)); err != nil {
		s.logger.Warn("login invalid password", zap.String("user_name", userName))
		return "", "", AuthResponse{}, autherrors.ErrInvalidPassword
	}

	if !p.IsActive {
		s.logger.Warn("login inactive account", zap.String("user_name", userName))
		return "", "", AuthResponse{}, autherrors.ErrUserNotActive
	}

	onVacation, err := s.vacations.ActiveAt(ctx, p.ID.String(), s.clk.Now())
	if err != nil {
		s.logger.Error("login vacation check failed", zap.Error(err))
		return "", "", AuthResponse{}, err
	}
	if onVacation {
		s.logger.Warn("login rejected, on vacation", zap.String("user_name", userName))
		return "", "", AuthResponse{}, autherrors.ErrOnVacation
	}

	// all checks passed: record the entry/exit transition before issuing tokens
	if err := s.tracker.RecordLoginAttendance(ctx, p.ID.String()); err != nil {
		s.logger.Error("login attendance tracking failed",
			zap.String("personnel_id", p.ID.String()),
			zap.Error(err),
		)
		return "", "", AuthResponse{}, err
	}

	accessToken, err := s.generateToken(p.ID.String(), p.UserName, time.Minute*15)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := s.generateToken(p.ID.String(), p.UserName, time.Hour*24*7)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login success", zap.String("user_name", userName))

	return accessToken, refreshToken, AuthResponse{
		ID:       p.ID.String(),
		UserName: p.UserName,
		FullName: p.FullName,
	}, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidUserID
	}

	p, err := s.personnelRepo.FindByID(ctx, userID.String())
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrUserNotFound
	}

	newAccessToken, err := s.generateToken(p.ID.String(), p.UserName, time.Minute*15)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	newRefreshToken, err := s.generateToken(p.ID.String(), p.UserName, time.Hour*24*7)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return newAccessToken, newRefreshToken, AuthResponse{
		ID:       p.ID.String(),
		UserName: p.UserName,
		FullName: p.FullName,
	}, nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	p, err := s.personnelRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}

	return &AuthResponse{
		ID:       p.ID.String(),
		UserName: p.UserName,
		FullName: p.FullName,
	}, nil
}

func (s *service) generateToken(userID, userName string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":   userID,
		"user_name": userName,
		"exp":       s.clk.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	attendanceerrors "go-personnel/internal/attendance/errors"
	"go-personnel/internal/shared/clock"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	durationsCachePrefix     = "attendance:durations:"
	durationsCacheVersionKey = "attendance:durations:ver"
	durationsCacheTTL        = 10 * time.Minute
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	// RecordLoginAttendance applies the login transition: open a WorkHour
	// interval for today, or close a still-open break and reopen work.
	// Repeated logins on a day with an open WorkHour interval are no-ops.
	RecordLoginAttendance(ctx context.Context, personnelID string) error

	// ComputeEntryExitDurations sums attendance minutes per user, calendar day
	// and reason over the half-open range [beginDate, endDate). Users with no
	// qualifying events are absent from the result.
	ComputeEntryExitDurations(ctx context.Context, beginDate, endDate time.Time, userName string) ([]UserDurationsResponse, error)

	GetEventsForPersonnel(ctx context.Context, personnelID string, page, pageSize int) ([]EventResponse, int64, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	clk    clock.Clock
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, clk clock.Clock, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		clk:    clk,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) RecordLoginAttendance(ctx context.Context, personnelID string) error {
	if _, err := uuid.Parse(personnelID); err != nil {
		return attendanceerrors.ErrInvalidPersonnelID
	}

	now := s.clk.Now()
	s.logger.Debug("record login attendance",
		zap.String("personnel_id", personnelID),
		zap.Time("now", now),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("record attendance begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	count, err := qtx.CountByPersonnel(ctx, personnelID)
	if err != nil {
		s.logger.Error("record attendance count failed", zap.Error(err))
		return err
	}

	if count == 0 {
		if err := s.appendWorkHour(ctx, qtx, personnelID, now); err != nil {
			return err
		}
		return s.commitAndInvalidate(ctx, tx, personnelID, "opened first work interval")
	}

	last, err := qtx.FindLatestOnDay(ctx, personnelID, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// history exists but nothing touches today yet
			if err := s.appendWorkHour(ctx, qtx, personnelID, now); err != nil {
				return err
			}
			return s.commitAndInvalidate(ctx, tx, personnelID, "opened work interval for today")
		}
		s.logger.Error("record attendance lookup failed", zap.Error(err))
		return err
	}

	if last.ReasonType == ReasonWorkHour {
		// already clocked in for today; repeated logins write nothing
		return nil
	}

	// the user logged back in from a meal/break: close it and reopen work
	if now.Before(last.EntryAt) {
		return attendanceerrors.ErrReversedInterval
	}
	exit := now
	last.ExitAt = &exit
	last.Status = StatusClosed

	if err := qtx.Update(ctx, last); err != nil {
		s.logger.Error("record attendance close break failed",
			zap.String("event_id", last.ID.String()),
			zap.Error(err),
		)
		return err
	}
	if err := s.appendWorkHour(ctx, qtx, personnelID, now); err != nil {
		return err
	}
	return s.commitAndInvalidate(ctx, tx, personnelID, "closed break and reopened work interval")
}

func (s *service) appendWorkHour(ctx context.Context, repo Repository, personnelID string, now time.Time) error {
	e := &EntryExitEvent{
		ID:          uuid.New(),
		PersonnelID: uuid.MustParse(personnelID),
		ReasonType:  ReasonWorkHour,
		EntryAt:     now,
		Status:      StatusOpen,
		CreatedAt:   now,
	}
	if err := s.repoAppend(ctx, repo, e); err != nil {
		s.logger.Error("record attendance append failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *service) repoAppend(ctx context.Context, repo Repository, e *EntryExitEvent) error {
	if e.ExitAt != nil && e.ExitAt.Before(e.EntryAt) {
		return attendanceerrors.ErrReversedInterval
	}
	return repo.Append(ctx, e)
}

func (s *service) commitAndInvalidate(ctx context.Context, tx *sql.Tx, personnelID, action string) error {
	if err := tx.Commit(); err != nil {
		s.logger.Error("record attendance commit failed", zap.Error(err))
		return err
	}

	// bump the report cache version so stale aggregations are never served
	if s.rdb != nil {
		if err := s.rdb.Incr(ctx, durationsCacheVersionKey).Err(); err != nil {
			s.logger.Warn("durations cache invalidation failed", zap.Error(err))
		}
	}

	s.logger.Info("record attendance success",
		zap.String("personnel_id", personnelID),
		zap.String("action", action),
	)
	return nil
}

func (s *service) ComputeEntryExitDurations(ctx context.Context, beginDate, endDate time.Time, userName string) ([]UserDurationsResponse, error) {
	begin := truncateToDay(beginDate)
	end := truncateToDay(endDate)
	if end.Before(begin) {
		return nil, attendanceerrors.ErrInvalidDateRange
	}

	cacheKey := s.durationsCacheKey(ctx, begin, end, userName)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var resp []UserDurationsResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		rows, err := s.repo.FindInRange(ctx, begin, end, userName)
		if err != nil {
			return nil, err
		}

		resp := aggregateDurations(rows)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, durationsCacheTTL)
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("compute durations failed",
			zap.Time("begin_date", begin),
			zap.Time("end_date", end),
			zap.String("user_name", userName),
			zap.Error(err),
		)
		return nil, err
	}

	return v.([]UserDurationsResponse), nil
}

func (s *service) durationsCacheKey(ctx context.Context, begin, end time.Time, userName string) string {
	ver := "0"
	if s.rdb != nil {
		if v, err := s.rdb.Get(ctx, durationsCacheVersionKey).Result(); err == nil {
			ver = v
		}
	}
	return fmt.Sprintf("%s%s:%s:%s:%s",
		durationsCachePrefix,
		ver,
		begin.Format("2006-01-02"),
		end.Format("2006-01-02"),
		userName,
	)
}

// aggregateDurations folds raw (user, event) pairs into per-user, per-day,
// per-reason minute totals with the presentation ordering applied.
func aggregateDurations(rows []EventWithUser) []UserDurationsResponse {
	type groupKey struct {
		personnelID uuid.UUID
		reason      ReasonType
		entryDate   string
	}

	sums := make(map[groupKey]int)
	userNames := make(map[uuid.UUID]string)

	for _, row := range rows {
		if row.ExitAt == nil {
			// still open; nothing to sum yet
			continue
		}
		key := groupKey{
			personnelID: row.PersonnelID,
			reason:      row.ReasonType,
			entryDate:   row.EntryAt.Format("2006-01-02"),
		}
		sums[key] += int(row.ExitAt.Sub(row.EntryAt) / time.Minute)
		userNames[row.PersonnelID] = row.UserName
	}

	perUser := make(map[uuid.UUID][]EntryExitDuration)
	for key, total := range sums {
		perUser[key.personnelID] = append(perUser[key.personnelID], EntryExitDuration{
			EntryDate:    key.entryDate,
			ReasonType:   int16(key.reason),
			ReasonName:   key.reason.String(),
			TotalMinutes: total,
		})
	}

	resp := make([]UserDurationsResponse, 0, len(perUser))
	for personnelID, durations := range perUser {
		sort.Slice(durations, func(i, j int) bool {
			if durations[i].EntryDate != durations[j].EntryDate {
				return durations[i].EntryDate > durations[j].EntryDate
			}
			return durations[i].ReasonType < durations[j].ReasonType
		})
		resp = append(resp, UserDurationsResponse{
			PersonnelID: personnelID.String(),
			UserName:    userNames[personnelID],
			Durations:   durations,
		})
	}

	sort.Slice(resp, func(i, j int) bool {
		return resp[i].UserName < resp[j].UserName
	})

	return resp
}

func (s *service) GetEventsForPersonnel(ctx context.Context, personnelID string, page, pageSize int) ([]EventResponse, int64, error) {
	if _, err := uuid.Parse(personnelID); err != nil {
		return nil, 0, attendanceerrors.ErrInvalidPersonnelID
	}

	rows, err := s.repo.FindPageByPersonnel(ctx, personnelID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountPageByPersonnel(ctx, personnelID)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]EventResponse, len(rows))
	for i, e := range rows {
		resp[i] = mapEventToResponse(e)
	}
	return resp, total, nil
}

func mapEventToResponse(e EntryExitEvent) EventResponse {
	resp := EventResponse{
		ID:         e.ID.String(),
		ReasonType: int16(e.ReasonType),
		ReasonName: e.ReasonType.String(),
		EntryAt:    e.EntryAt.Format(time.RFC3339),
		Status:     e.Status,
	}
	if e.ExitAt != nil {
		v := e.ExitAt.Format(time.RFC3339)
		resp.ExitAt = &v
	}
	return resp
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

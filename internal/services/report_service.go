package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/project-task-api/internal/constants"
	"github.com/yukikurage/project-task-api/internal/repository"
)

// ReportCache stores serialized reports. Get reports a miss with ok=false.
type ReportCache interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// UserPerformance is one user's line in a performance report
type UserPerformance struct {
	UserID         uuid.UUID `json:"user_id"`
	UserName       string    `json:"user_name"`
	TasksCompleted int64     `json:"tasks_completed"`
}

// PerformanceReport summarizes completed tasks per user over a window
type PerformanceReport struct {
	StartDate                    time.Time         `json:"start_date"`
	EndDate                      time.Time         `json:"end_date"`
	UserPerformances             []UserPerformance `json:"user_performances"`
	AverageTasksCompletedPerUser float64           `json:"average_tasks_completed_per_user"`
}

// ReportService builds manager-only reports
type ReportService struct {
	uow      repository.UnitOfWork
	cache    ReportCache
	cacheTTL time.Duration
	log      *logrus.Logger
	now      func() time.Time
}

// NewReportService creates a new ReportService. A nil cache or a zero ttl
// disables caching.
func NewReportService(uow repository.UnitOfWork, cache ReportCache, cacheTTL time.Duration, log *logrus.Logger) *ReportService {
	return &ReportService{
		uow:      uow,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
		now:      time.Now,
	}
}

// GetPerformanceReport counts, for every user, the completed tasks of the
// projects they own that were last updated within the past 30 days. Only
// managers may request it.
func (s *ReportService) GetPerformanceReport(ctx context.Context, requestingUserID uuid.UUID) (*PerformanceReport, error) {
	requester, err := s.uow.Users().FindByID(ctx, requestingUserID)
	if err != nil {
		return nil, lookupError(err, EntityUser, requestingUserID)
	}

	if !requester.IsManager() {
		return nil, NewBusinessRuleError("Access denied. Only users with 'Manager' role can access performance reports.")
	}

	if report, ok := s.cachedReport(ctx); ok {
		return report, nil
	}

	end := s.now().UTC()
	start := end.AddDate(0, 0, -constants.ReportWindowDays)

	users, err := s.uow.Users().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	completed, err := s.uow.Tasks().CountCompletedByOwner(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed tasks: %w", err)
	}

	performances := make([]UserPerformance, 0, len(users))
	var total int64
	for _, u := range users {
		count := completed[u.ID]
		total += count
		performances = append(performances, UserPerformance{
			UserID:         u.ID,
			UserName:       u.Name,
			TasksCompleted: count,
		})
	}

	report := &PerformanceReport{
		StartDate:                    start,
		EndDate:                      end,
		UserPerformances:             performances,
		AverageTasksCompletedPerUser: average(total, len(users)),
	}

	s.storeReport(ctx, report)
	return report, nil
}

// average returns total/n rounded half-to-even to two decimals, 0 when n is 0
func average(total int64, n int) float64 {
	if n == 0 {
		return 0
	}
	return math.RoundToEven(float64(total)/float64(n)*100) / 100
}

func (s *ReportService) cacheEnabled() bool {
	return s.cache != nil && s.cacheTTL > 0
}

func (s *ReportService) cachedReport(ctx context.Context) (*PerformanceReport, bool) {
	if !s.cacheEnabled() {
		return nil, false
	}

	data, ok, err := s.cache.Get(ctx, constants.ReportCacheKey)
	if err != nil {
		s.log.WithError(err).Warn("Report cache read failed, computing report")
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var report PerformanceReport
	if err := json.Unmarshal(data, &report); err != nil {
		s.log.WithError(err).Warn("Discarding unreadable cached report")
		return nil, false
	}
	return &report, true
}

func (s *ReportService) storeReport(ctx context.Context, report *PerformanceReport) {
	if !s.cacheEnabled() {
		return
	}

	data, err := json.Marshal(report)
	if err != nil {
		s.log.WithError(err).Warn("Failed to encode report for cache")
		return
	}
	if err := s.cache.Set(ctx, constants.ReportCacheKey, data, s.cacheTTL); err != nil {
		s.log.WithError(err).Warn("Report cache write failed")
	}
}

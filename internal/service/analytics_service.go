package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quiz_platform_backend/internal/model"
	"quiz_platform_backend/internal/repository"
	"quiz_platform_backend/internal/util"
	"quiz_platform_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const analyticsCacheTTL = 5 * time.Minute

// QuizAnalytics is the aggregate view an instructor sees for one quiz.
type QuizAnalytics struct {
	QuizID                  uint    `json:"quizId"`
	AverageScore            float64 `json:"averageScore"`
	TotalAttempts           int     `json:"totalAttempts"`
	CompletionRate          float64 `json:"completionRate"`
	AverageTimeSpentMinutes float64 `json:"averageTimeSpentMinutes"`
}

// SubmissionReportRow is one line of the per-submission quiz report.
type SubmissionReportRow struct {
	SubmissionID uint              `json:"submissionId"`
	StudentID    uint              `json:"studentId"`
	Answers      map[string]string `json:"answers"`
	Score        int               `json:"score"`
	StartedAt    time.Time         `json:"startedAt"`
	CompletedAt  *time.Time        `json:"completedAt"`
	SubmittedAt  *time.Time        `json:"submittedAt"`
}

// AnalyticsService derives read-only aggregates over a quiz's submissions.
// Results are cached in redis for a short window when a client is configured;
// the cache is dropped whenever a new submission lands.
type AnalyticsService struct {
	Quizzes *repository.QuizRepository
	Subs    *repository.SubmissionRepository
	Redis   *redis.Client
}

func NewAnalyticsService(quizzes *repository.QuizRepository, subs *repository.SubmissionRepository, rdb *redis.Client) *AnalyticsService {
	return &AnalyticsService{Quizzes: quizzes, Subs: subs, Redis: rdb}
}

// ComputeAnalytics is the pure aggregation: average score over all attempts,
// completion rate over all attempts, and average time spent in whole minutes
// over only the attempts with both timestamps.
func ComputeAnalytics(quizID uint, submissions []model.QuizSubmission) QuizAnalytics {
	analytics := QuizAnalytics{QuizID: quizID, TotalAttempts: len(submissions)}
	if len(submissions) == 0 {
		return analytics
	}

	scoreSum := 0
	completed := 0
	timeSum := 0.0
	timed := 0
	for _, s := range submissions {
		scoreSum += s.Score
		if s.CompletedAt != nil {
			completed++
			if !s.StartedAt.IsZero() {
				timeSum += float64(int64(s.CompletedAt.Sub(s.StartedAt) / time.Minute))
				timed++
			}
		}
	}

	analytics.AverageScore = float64(scoreSum) / float64(len(submissions))
	analytics.CompletionRate = float64(completed) / float64(len(submissions))
	if timed > 0 {
		analytics.AverageTimeSpentMinutes = timeSum / float64(timed)
	}
	return analytics
}

func (s *AnalyticsService) authorizeOwner(quizID, callerID uint) (*model.Quiz, error) {
	quiz, err := s.Quizzes.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if quiz.InstructorID != callerID {
		return nil, util.ErrPermissionDenied
	}
	return quiz, nil
}

func analyticsCacheKey(quizID uint) string {
	return fmt.Sprintf("quiz:analytics:%d", quizID)
}

func (s *AnalyticsService) GetAnalytics(ctx context.Context, quizID, callerID uint) (*QuizAnalytics, error) {
	if _, err := s.authorizeOwner(quizID, callerID); err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, analyticsCacheKey(quizID)).Result(); err == nil {
			var analytics QuizAnalytics
			if err := json.Unmarshal([]byte(cached), &analytics); err == nil {
				return &analytics, nil
			}
		}
	}

	submissions, err := s.Subs.FindByQuizID(quizID)
	if err != nil {
		return nil, err
	}
	analytics := ComputeAnalytics(quizID, submissions)

	if s.Redis != nil {
		if payload, err := json.Marshal(analytics); err == nil {
			if err := s.Redis.Set(ctx, analyticsCacheKey(quizID), payload, analyticsCacheTTL).Err(); err != nil {
				logger.Log.Warn("failed to cache quiz analytics", zap.Uint("quizId", quizID), zap.Error(err))
			}
		}
	}

	return &analytics, nil
}

// InvalidateCache drops the cached aggregates after a new submission.
func (s *AnalyticsService) InvalidateCache(ctx context.Context, quizID uint) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, analyticsCacheKey(quizID)).Err(); err != nil {
		logger.Log.Warn("failed to invalidate analytics cache", zap.Uint("quizId", quizID), zap.Error(err))
	}
}

// Attempts lists every submission for an owned quiz, in-progress included.
func (s *AnalyticsService) Attempts(quizID, callerID uint) ([]model.QuizSubmission, error) {
	if _, err := s.authorizeOwner(quizID, callerID); err != nil {
		return nil, err
	}

	submissions, err := s.Subs.FindByQuizID(quizID)
	if err != nil {
		return nil, err
	}
	for i := range submissions {
		submissions[i].LoadAnswerMap()
	}
	return submissions, nil
}

// Report renders one row per submission for the owning instructor.
func (s *AnalyticsService) Report(quizID, callerID uint) ([]SubmissionReportRow, error) {
	submissions, err := s.Attempts(quizID, callerID)
	if err != nil {
		return nil, err
	}

	rows := make([]SubmissionReportRow, 0, len(submissions))
	for _, sub := range submissions {
		rows = append(rows, SubmissionReportRow{
			SubmissionID: sub.ID,
			StudentID:    sub.StudentID,
			Answers:      sub.AnswerValues,
			Score:        sub.Score,
			StartedAt:    sub.StartedAt,
			CompletedAt:  sub.CompletedAt,
			SubmittedAt:  sub.SubmittedAt,
		})
	}
	return rows, nil
}

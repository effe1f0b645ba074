// internal/workers/admission/calculate-match-score/handler.go
package calculatematchscore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"admission-workers/internal/common/logger"
	"admission-workers/internal/common/metrics"
	"admission-workers/internal/matching"
	"admission-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "calculate-match-score"
)

var (
	ErrMatchScoreFailed = errors.New("MATCH_SCORE_FAILED")
	ErrProfileNotFound  = errors.New("PROFILE_NOT_FOUND")
)

type Handler struct {
	config *Config
	db     *sql.DB
	redis  *redis.Client
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, redis *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
		redis:  redis,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		code := "MATCH_SCORE_FAILED"
		if errors.Is(err, ErrProfileNotFound) {
			code = "PROFILE_NOT_FOUND"
		}
		h.failJob(client, job, code, err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.School.ID == "" {
		return nil, fmt.Errorf("%w: school is required", ErrMatchScoreFailed)
	}

	var profile *models.ChildProfile
	if input.ChildProfile != nil {
		profile = input.ChildProfile
	} else if input.ChildID != "" {
		var err error
		profile, err = h.getChildProfile(ctx, input.ChildID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("%w: child %s", ErrProfileNotFound, input.ChildID)
			}
			return nil, fmt.Errorf("%w: fetch profile: %v", ErrMatchScoreFailed, err)
		}
	}

	if profile == nil {
		return nil, fmt.Errorf("%w: childProfile or childId is required", ErrMatchScoreFailed)
	}

	if _, ok := matching.ExpectedAgeForClass(profile.TargetClass); !ok {
		h.logger.Warn("unknown target class, assuming default entry age", map[string]interface{}{
			"targetClass": profile.TargetClass,
		})
	}

	match := matching.Score(input.School, *profile)
	metrics.MatchScoreDistribution.Observe(float64(match.Score))

	h.logger.Info("match score calculated", map[string]interface{}{
		"schoolId": match.SchoolID,
		"score":    match.Score,
		"chance":   match.Chance,
	})

	return &Output{Match: match}, nil
}

func (h *Handler) getChildProfile(ctx context.Context, childID string) (*models.ChildProfile, error) {
	cacheKey := "child:profile:" + childID
	if val, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
		var profile models.ChildProfile
		if err := json.Unmarshal([]byte(val), &profile); err == nil {
			return &profile, nil
		}
	}

	row := h.db.QueryRowContext(ctx, `
		SELECT name, age, date_of_birth, target_class, preferred_board,
		       address, max_distance_km, budget_min, budget_max, academic_level
		FROM children WHERE id = $1`, childID)

	var profile models.ChildProfile
	var dob sql.NullString
	err := row.Scan(&profile.Name, &profile.Age, &dob, &profile.TargetClass,
		&profile.PreferredBoard, &profile.Address, &profile.MaxDistanceKm,
		&profile.Budget.Min, &profile.Budget.Max, &profile.AcademicLevel)
	if err != nil {
		return nil, err
	}
	profile.ID = childID
	if dob.Valid {
		profile.DateOfBirth = dob.String
	}

	data, _ := json.Marshal(profile)
	h.redis.Set(ctx, cacheKey, data, h.config.CacheTTL)

	return &profile, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

// internal/workers/admission/rank-school-matches/handler.go
package rankschoolmatches

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"admission-workers/internal/catalog"
	"admission-workers/internal/common/logger"
	"admission-workers/internal/matching"
	"admission-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "rank-school-matches"
)

var (
	ErrRankingFailed = errors.New("RANKING_FAILED")
)

type Handler struct {
	config  *Config
	catalog *catalog.Catalog
	logger  logger.Logger
}

func NewHandler(config *Config, cat *catalog.Catalog, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		catalog: cat,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		h.failJob(client, job, "RANKING_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input.ChildProfile == nil {
		return nil, fmt.Errorf("%w: childProfile is required", ErrRankingFailed)
	}

	start := time.Now()

	schools, err := h.selectSchools(input.SchoolIDs)
	if err != nil {
		return nil, err
	}

	matches := make([]models.SchoolMatch, 0, len(schools))
	for _, school := range schools {
		matches = append(matches, matching.Score(school, *input.ChildProfile))
	}

	// stable sort keeps catalog order for equal scores
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	total := len(matches)
	if h.config.TopN > 0 && len(matches) > h.config.TopN {
		matches = matches[:h.config.TopN]
	}

	h.logger.Info("ranking completed", map[string]interface{}{
		"schools":    total,
		"returned":   len(matches),
		"durationMs": time.Since(start).Milliseconds(),
	})

	return &Output{Matches: matches, Total: total}, nil
}

// selectSchools resolves the ranking set: the whole catalog, or the requested
// subset in catalog order. Duplicate ids are ranked once.
func (h *Handler) selectSchools(ids []string) ([]catalog.SchoolRecord, error) {
	if len(ids) == 0 {
		return h.catalog.Schools(), nil
	}

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := h.catalog.ByID(id); !ok {
			return nil, fmt.Errorf("%w: unknown school %s", ErrRankingFailed, id)
		}
		wanted[id] = true
	}

	var out []catalog.SchoolRecord
	for _, school := range h.catalog.Schools() {
		if wanted[school.ID] {
			out = append(out, school)
		}
	}
	return out, nil
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

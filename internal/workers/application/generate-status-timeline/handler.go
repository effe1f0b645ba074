// internal/workers/application/generate-status-timeline/handler.go
package generatestatustimeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"admission-workers/internal/common/logger"
	"admission-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "generate-status-timeline"
)

var (
	ErrTimelineFailed           = errors.New("TIMELINE_FAILED")
	ErrUnknownApplicationStatus = errors.New("UNKNOWN_APPLICATION_STATUS")
)

// milestone is one of the five fixed timeline entries. Completed and Current
// are status membership sets; anything else renders the milestone upcoming.
type milestone struct {
	ID          string
	Title       string
	Description string
	DayOffset   int
	Completed   []models.ApplicationStatus
	Current     []models.ApplicationStatus
}

var milestones = []milestone{
	{
		ID:          "tl-1",
		Title:       "Application Started",
		Description: "Application form filled and submitted",
		DayOffset:   0,
		Completed: []models.ApplicationStatus{
			models.StatusDocumentsPending, models.StatusUnderReview,
			models.StatusShortlisted, models.StatusInterviewScheduled,
			models.StatusAccepted, models.StatusWaitlisted, models.StatusRejected,
		},
		Current: []models.ApplicationStatus{models.StatusDraft},
	},
	{
		ID:          "tl-2",
		Title:       "Documents Verification",
		Description: "Uploaded documents are checked against the application",
		DayOffset:   1,
		Completed: []models.ApplicationStatus{
			models.StatusUnderReview, models.StatusShortlisted,
			models.StatusInterviewScheduled, models.StatusAccepted,
			models.StatusWaitlisted, models.StatusRejected,
		},
		Current: []models.ApplicationStatus{models.StatusDocumentsPending},
	},
	{
		ID:          "tl-3",
		Title:       "School Review",
		Description: "The school reviews the application and shortlists candidates",
		DayOffset:   3,
		Completed: []models.ApplicationStatus{
			models.StatusWaitlisted, models.StatusRejected,
		},
		Current: []models.ApplicationStatus{
			models.StatusUnderReview, models.StatusShortlisted,
			models.StatusInterviewScheduled, models.StatusAccepted,
		},
	},
	{
		ID:          "tl-4",
		Title:       "Interview/Assessment",
		Description: "Interaction session with the child and parents",
		DayOffset:   7,
		Completed: []models.ApplicationStatus{
			models.StatusAccepted, models.StatusWaitlisted, models.StatusRejected,
		},
		Current: []models.ApplicationStatus{models.StatusInterviewScheduled},
	},
	{
		ID:          "tl-5",
		Title:       "Final Decision",
		Description: "Admission decision is announced",
		DayOffset:   14,
		Completed: []models.ApplicationStatus{
			models.StatusAccepted, models.StatusRejected,
		},
		Current: []models.ApplicationStatus{models.StatusWaitlisted},
	},
}

type Handler struct {
	config *Config
	now    func() time.Time
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return NewHandlerWithClock(config, time.Now, log)
}

// NewHandlerWithClock injects the clock the milestone dates are anchored to.
func NewHandlerWithClock(config *Config, now func() time.Time, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		now:    now,
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
		code := "TIMELINE_FAILED"
		if errors.Is(err, ErrUnknownApplicationStatus) {
			code = "UNKNOWN_APPLICATION_STATUS"
		}
		h.failJob(client, job, code, err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if !models.IsValidApplicationStatus(input.Status) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownApplicationStatus, input.Status)
	}

	anchor := h.now()
	timeline := make([]models.TimelineEvent, 0, len(milestones))
	for _, m := range milestones {
		timeline = append(timeline, models.TimelineEvent{
			ID:          m.ID,
			Date:        anchor.AddDate(0, 0, m.DayOffset),
			Title:       m.Title,
			Description: m.Description,
			State:       m.stateFor(input.Status),
		})
	}

	h.logger.Info("timeline generated", map[string]interface{}{
		"applicationId": input.ApplicationID,
		"status":        input.Status,
	})

	return &Output{
		ApplicationID: input.ApplicationID,
		Timeline:      timeline,
	}, nil
}

func (m milestone) stateFor(status models.ApplicationStatus) models.TimelineState {
	for _, s := range m.Completed {
		if s == status {
			return models.TimelineCompleted
		}
	}
	for _, s := range m.Current {
		if s == status {
			return models.TimelineCurrent
		}
	}
	return models.TimelineUpcoming
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

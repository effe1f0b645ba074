// internal/workers/documents/list-required-documents/handler.go
package listrequireddocuments

import (
	"context"
	"encoding/json"
	"fmt"

	"admission-workers/internal/common/logger"
	"admission-workers/internal/matching"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "list-required-documents"
)

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
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
		h.failJob(client, job, "CHECKLIST_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

// execute renders the checklist for a target class. Conditional entries
// become required once the admission class reaches their threshold.
func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	classAge := 0.0
	if input.TargetClass != "" {
		classAge, _ = matching.ExpectedAgeForClass(input.TargetClass)
	}

	documents := make([]RequiredDocument, 0, len(h.config.Checklist))
	for _, entry := range h.config.Checklist {
		doc := RequiredDocument{
			Type:        entry.Type,
			Label:       entry.Label,
			Required:    entry.Required,
			Description: entry.Description,
		}
		if entry.FromClassAge > 0 && classAge >= entry.FromClassAge {
			doc.Required = true
		}
		documents = append(documents, doc)
	}

	return &Output{Documents: documents}, nil
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

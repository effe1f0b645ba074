// internal/workers/documents/extract-document-data/handler.go
package extractdocumentdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"admission-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "extract-document-data"
)

type Handler struct {
	config    *Config
	extractor Extractor
	logger    logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	var extractor Extractor
	if config.Mode == "http" {
		extractor = NewHTTPExtractor(config.BackendURL, config.Timeout)
	} else {
		extractor = NewMockExtractor(config.SimulatedDelay)
	}
	return NewHandlerWithExtractor(config, extractor, log)
}

func NewHandlerWithExtractor(config *Config, extractor Extractor, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		extractor: extractor,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		h.failJob(client, job, h.mapErrorToCode(err), err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.DocumentType == "" {
		return nil, fmt.Errorf("%w: documentType is required", ErrExtractionFailed)
	}

	data, err := h.extractor.Extract(ctx, input.DocumentType, input.ProfileHint)
	if err != nil {
		return nil, err
	}

	h.logger.Info("document extracted", map[string]interface{}{
		"documentId":   input.DocumentID,
		"documentType": input.DocumentType,
	})

	return &Output{
		DocumentID:    input.DocumentID,
		DocumentType:  input.DocumentType,
		ExtractedData: data,
	}, nil
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

func (h *Handler) mapErrorToCode(err error) string {
	if errors.Is(err, ErrUnsupportedDocumentType) {
		return "UNSUPPORTED_DOCUMENT_TYPE"
	} else if errors.Is(err, ErrExtractionTimeout) {
		return "EXTRACTION_TIMEOUT"
	}
	return "EXTRACTION_FAILED"
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

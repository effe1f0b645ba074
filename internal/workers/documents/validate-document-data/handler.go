// internal/workers/documents/validate-document-data/handler.go
package validatedocumentdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"admission-workers/internal/common/logger"
	"admission-workers/internal/common/metrics"
	"admission-workers/internal/common/validation"
	"admission-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "validate-document-data"
)

var (
	ErrDocValidationFailed = errors.New("DOC_VALIDATION_FAILED")
)

// dateLayouts are the formats documents commonly carry dates in.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"02/01/2006",
	"02-01-2006",
}

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

	variables, err := job.GetVariablesAsMap()
	if err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}
	if result := validation.ValidateInput(variables, GetInputSchema()); !result.Valid {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("invalid input: %v", result.GetErrorMessages()))
		return
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "DOC_VALIDATION_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

// execute compares extracted document data against the child profile. A
// mismatch is a normal outcome, not an error; the job completes either way.
func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input.ExtractedData == nil {
		return nil, fmt.Errorf("%w: extractedData is required", ErrDocValidationFailed)
	}
	if input.ChildProfile == nil {
		return nil, fmt.Errorf("%w: childProfile is required", ErrDocValidationFailed)
	}

	mismatches := h.compare(input.ExtractedData, input.ChildProfile)

	output := &Output{
		DocumentID: input.DocumentID,
		IsValid:    len(mismatches) == 0,
	}
	if len(mismatches) > 0 {
		output.MismatchDetails = strings.Join(mismatches, "; ")
	}

	result := "verified"
	if !output.IsValid {
		result = "mismatch"
	}
	metrics.DocumentValidations.WithLabelValues(string(input.DocumentType), result).Inc()

	h.logger.Info("document validated", map[string]interface{}{
		"documentId": input.DocumentID,
		"isValid":    output.IsValid,
		"mismatches": len(mismatches),
	})

	return output, nil
}

// compare runs the field checks in a fixed order: name, date of birth,
// address, previous school. A check only fires when both sides carry a value.
func (h *Handler) compare(data *models.ExtractedDocData, profile *models.ChildProfile) []string {
	var mismatches []string

	if data.ChildName != "" && profile.Name != "" {
		if !namesMatch(data.ChildName, profile.Name) {
			mismatches = append(mismatches, fmt.Sprintf(
				"Name mismatch: document shows %q, profile has %q", data.ChildName, profile.Name))
		}
	}

	if data.DateOfBirth != "" && profile.DateOfBirth != "" {
		docDOB, docOK := normalizeDate(data.DateOfBirth)
		profDOB, profOK := normalizeDate(profile.DateOfBirth)
		if !docOK || !profOK || docDOB != profDOB {
			mismatches = append(mismatches, fmt.Sprintf(
				"Date of birth mismatch: document shows %q, profile has %q", data.DateOfBirth, profile.DateOfBirth))
		}
	}

	if data.Address != "" && profile.Address != "" {
		if !fuzzyContains(data.Address, profile.Address) {
			mismatches = append(mismatches, fmt.Sprintf(
				"Address mismatch: document shows %q, profile has %q", data.Address, profile.Address))
		}
	}

	if data.PreviousSchool != "" && profile.PreviousSchool != "" {
		if !fuzzyContains(data.PreviousSchool, profile.PreviousSchool) {
			mismatches = append(mismatches, fmt.Sprintf(
				"Previous school mismatch: document shows %q, profile has %q", data.PreviousSchool, profile.PreviousSchool))
		}
	}

	return mismatches
}

// namesMatch treats names as equal when either contains the other, so a
// document's "Aarav Sharma" matches a profile's "Aarav".
func namesMatch(a, b string) bool {
	return fuzzyContains(a, b)
}

func fuzzyContains(a, b string) bool {
	na := strings.ToLower(strings.TrimSpace(a))
	nb := strings.ToLower(strings.TrimSpace(b))
	if na == "" || nb == "" {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

// normalizeDate reduces a date string to ISO 2006-01-02.
func normalizeDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
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

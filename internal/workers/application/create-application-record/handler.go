// internal/workers/application/create-application-record/handler.go
package createapplicationrecord

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"admission-workers/internal/common/logger"
	"admission-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "create-application-record"
)

var (
	ErrDatabaseInsertFailed = errors.New("DATABASE_INSERT_FAILED")
	ErrDuplicateApplication = errors.New("DUPLICATE_APPLICATION")
)

type Handler struct {
	config *Config
	db     *sql.DB
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
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
		errorCode := "UNKNOWN_ERROR"
		if errors.Is(err, ErrDatabaseInsertFailed) {
			errorCode = "DATABASE_INSERT_FAILED"
		} else if errors.Is(err, ErrDuplicateApplication) {
			errorCode = "DUPLICATE_APPLICATION"
		}
		h.failJob(client, job, errorCode, err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.ChildID == "" || input.SchoolID == "" {
		return nil, fmt.Errorf("%w: childId and schoolId are required", ErrDatabaseInsertFailed)
	}

	var exists bool
	err := h.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM applications
			WHERE child_id = $1 AND school_id = $2
		)`, input.ChildID, input.SchoolID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("%w: duplicate check failed: %v", ErrDatabaseInsertFailed, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: application already exists for child %s and school %s",
			ErrDuplicateApplication, input.ChildID, input.SchoolID)
	}

	appID := uuid.New().String()
	createdAt := time.Now().UTC().Format(time.RFC3339)

	// a fresh application without uploads stays in draft
	status := models.StatusDocumentsPending
	if len(input.Documents) == 0 {
		status = models.StatusDraft
	}

	record := models.ApplicationData{
		ID:        appID,
		Child:     input.Child,
		SchoolIDs: []string{input.SchoolID},
		Documents: input.Documents,
		Status:    status,
	}
	applicationJSON, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal application data: %v", ErrDatabaseInsertFailed, err)
	}

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO applications (
			id, child_id, school_id, application_data, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $6)`,
		appID,
		input.ChildID,
		input.SchoolID,
		applicationJSON,
		string(status),
		createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: insert failed: %v", ErrDatabaseInsertFailed, err)
	}

	// audit trail is best effort
	auditDetailsJSON, err := json.Marshal(map[string]interface{}{
		"childId":   input.ChildID,
		"schoolId":  input.SchoolID,
		"documents": len(input.Documents),
		"status":    status,
	})
	if err != nil {
		h.logger.Warn("failed to marshal audit log details", map[string]interface{}{
			"error": err,
		})
		auditDetailsJSON = []byte("{}")
	}

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO audit_log (event_type, resource_type, resource_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		"application_created",
		"application",
		appID,
		auditDetailsJSON,
		createdAt,
	)
	if err != nil {
		h.logger.Warn("audit log insert failed", map[string]interface{}{
			"error":         err,
			"applicationId": appID,
		})
	}

	h.logger.Info("application record created", map[string]interface{}{
		"applicationId": appID,
		"childId":       input.ChildID,
		"schoolId":      input.SchoolID,
		"status":        status,
	})

	return &Output{
		ApplicationID:     appID,
		ApplicationStatus: string(status),
		CreatedAt:         createdAt,
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
	} else {
		h.logger.Info("job completed successfully", map[string]interface{}{
			"jobKey": job.Key,
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

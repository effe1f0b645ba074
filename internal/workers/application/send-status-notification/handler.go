// internal/workers/application/send-status-notification/handler.go
package sendstatusnotification

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	commonaws "admission-workers/internal/common/aws"
	"admission-workers/internal/common/logger"
	"admission-workers/internal/models"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "send-status-notification"
)

var (
	ErrNotificationSendFailed = errors.New("NOTIFICATION_SEND_FAILED")
	ErrInvalidStatus          = errors.New("INVALID_STATUS")
)

// Define interfaces for mocking
type EmailSender interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

type SMSSender interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

type Handler struct {
	config    *Config
	db        *sql.DB
	logger    logger.Logger
	sesClient EmailSender
	snsClient SMSSender
	rng       *rand.Rand
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) (*Handler, error) {
	sesClient, err := commonaws.NewSESClient(context.Background(), config.AWSRegion)
	if err != nil {
		return nil, fmt.Errorf("create SES client: %w", err)
	}
	snsClient, err := commonaws.NewSNSClient(context.Background(), config.AWSRegion)
	if err != nil {
		return nil, fmt.Errorf("create SNS client: %w", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return NewHandlerWithClients(config, db, sesClient, snsClient, rng, log), nil
}

// NewHandlerWithClients injects the delivery clients and the narration
// source directly. A seeded rng makes the narration pick deterministic.
func NewHandlerWithClients(config *Config, db *sql.DB, sesClient EmailSender, snsClient SMSSender, rng *rand.Rand, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		db:        db,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
		sesClient: sesClient,
		snsClient: snsClient,
		rng:       rng,
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
		if errors.Is(err, ErrNotificationSendFailed) {
			errorCode = "NOTIFICATION_SEND_FAILED"
		} else if errors.Is(err, ErrInvalidStatus) {
			errorCode = "INVALID_STATUS"
		}
		h.failJob(client, job, errorCode, err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if !models.IsValidApplicationStatus(input.Status) {
		return nil, fmt.Errorf("%w: unknown application status %q", ErrInvalidStatus, input.Status)
	}

	message := GenerateStatusUpdate(input.Status, input.SchoolName, h.rng)
	notificationID := uuid.New().String()
	sentAt := time.Now().UTC().Format(time.RFC3339)

	email, phone, err := h.getParentContact(ctx, input.ParentID)
	if err != nil {
		h.logger.Warn("parent contact not found", map[string]interface{}{
			"parentId":      input.ParentID,
			"applicationId": input.ApplicationID,
		})
		return &Output{
			NotificationID: notificationID,
			Status:         StatusSkipped,
			Message:        message,
			SentAt:         sentAt,
		}, nil
	}

	emailSent := false
	smsSent := false

	if h.config.EmailEnabled && email != "" {
		if err := h.sendEmail(ctx, email, subjectForStatus(input.Status), message); err != nil {
			return nil, fmt.Errorf("%w: email to parent %s: %v", ErrNotificationSendFailed, input.ParentID, err)
		}
		emailSent = true
	}

	// SMS is reserved for urgent updates
	if h.config.SMSEnabled && phone != "" && input.Priority == "high" {
		if err := h.sendSMS(ctx, phone, message); err != nil {
			return nil, fmt.Errorf("%w: sms to parent %s: %v", ErrNotificationSendFailed, input.ParentID, err)
		}
		smsSent = true
	}

	status := StatusSkipped
	if emailSent || smsSent {
		status = StatusSent
	}

	h.logger.Info("status notification processed", map[string]interface{}{
		"applicationId": input.ApplicationID,
		"status":        status,
		"emailSent":     emailSent,
		"smsSent":       smsSent,
	})

	return &Output{
		NotificationID: notificationID,
		Status:         status,
		Message:        message,
		SentAt:         sentAt,
	}, nil
}

func (h *Handler) getParentContact(ctx context.Context, parentID string) (string, string, error) {
	var email, phone string
	err := h.db.QueryRowContext(ctx,
		`SELECT email, phone FROM parents WHERE id = $1`, parentID).Scan(&email, &phone)
	return email, phone, err
}

func subjectForStatus(status models.ApplicationStatus) string {
	switch status {
	case models.StatusAccepted:
		return "Congratulations! Admission Offer"
	case models.StatusRejected, models.StatusWaitlisted:
		return "Admission Decision Update"
	default:
		return "Application Status Update"
	}
}

func (h *Handler) sendEmail(ctx context.Context, to, subject, body string) error {
	_, err := h.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: awssdk.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: awssdk.String(body)},
				Html: &types.Content{Data: awssdk.String(body)},
			},
		},
		Source: awssdk.String(h.config.FromEmail),
	})
	return err
}

func (h *Handler) sendSMS(ctx context.Context, to, message string) error {
	_, err := h.snsClient.Publish(ctx, &sns.PublishInput{
		PhoneNumber: awssdk.String(to),
		Message:     awssdk.String(message),
	})
	return err
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
		return
	}

	h.logger.Info("job completed successfully", map[string]interface{}{
		"jobKey": job.Key,
	})
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

// internal/workers/application/send-status-notification/models.go
package sendstatusnotification

import "admission-workers/internal/models"

type Input struct {
	ApplicationID string                   `json:"applicationId"`
	ParentID      string                   `json:"parentId"`
	Status        models.ApplicationStatus `json:"status"`
	SchoolName    string                   `json:"schoolName,omitempty"`
	Priority      string                   `json:"priority,omitempty"`
}

type Output struct {
	NotificationID string `json:"notificationId"`
	Status         string `json:"status"` // "sent", "skipped"
	Message        string `json:"message"`
	SentAt         string `json:"sentAt"` // ISO 8601
}

// Statuses
const (
	StatusSent    = "sent"
	StatusSkipped = "skipped"
)

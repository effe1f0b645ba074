// internal/workers/application/generate-status-timeline/models.go
package generatestatustimeline

import "admission-workers/internal/models"

type Input struct {
	ApplicationID string                   `json:"applicationId,omitempty"`
	Status        models.ApplicationStatus `json:"status"`
}

type Output struct {
	ApplicationID string                 `json:"applicationId,omitempty"`
	Timeline      []models.TimelineEvent `json:"timeline"`
}

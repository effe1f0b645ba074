// internal/workers/application/create-application-record/models.go
package createapplicationrecord

import "admission-workers/internal/models"

type Input struct {
	ChildID   string                  `json:"childId"`
	SchoolID  string                  `json:"schoolId"`
	Child     models.ChildProfile     `json:"child"`
	Documents []models.DocumentUpload `json:"documents,omitempty"`
}

type Output struct {
	ApplicationID     string `json:"applicationId"`
	ApplicationStatus string `json:"applicationStatus"`
	CreatedAt         string `json:"createdAt"`
}

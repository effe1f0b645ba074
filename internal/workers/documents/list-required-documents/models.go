// internal/workers/documents/list-required-documents/models.go
package listrequireddocuments

import "admission-workers/internal/models"

type Input struct {
	// TargetClass marks conditional entries as required when the admission
	// class needs them. Empty returns the base checklist.
	TargetClass string `json:"targetClass,omitempty"`
}

type RequiredDocument struct {
	Type        models.DocumentType `json:"type"`
	Label       string              `json:"label"`
	Required    bool                `json:"required"`
	Description string              `json:"description"`
}

type Output struct {
	Documents []RequiredDocument `json:"documents"`
}

// internal/workers/documents/validate-document-data/models.go
package validatedocumentdata

import "admission-workers/internal/models"

type Input struct {
	DocumentID    string                   `json:"documentId,omitempty"`
	DocumentType  models.DocumentType      `json:"documentType,omitempty"`
	ExtractedData *models.ExtractedDocData `json:"extractedData"`
	ChildProfile  *models.ChildProfile     `json:"childProfile"`
}

type Output struct {
	DocumentID      string `json:"documentId,omitempty"`
	IsValid         bool   `json:"isValid"`
	MismatchDetails string `json:"mismatchDetails,omitempty"`
}

// internal/workers/documents/extract-document-data/models.go
package extractdocumentdata

import "admission-workers/internal/models"

type Input struct {
	DocumentID   string              `json:"documentId,omitempty"`
	DocumentType models.DocumentType `json:"documentType"`
	FileName     string              `json:"fileName,omitempty"`
	// ProfileHint seeds the mock extractor so extracted fields line up with
	// the child being applied for. Ignored by the http backend.
	ProfileHint *models.ChildProfile `json:"profileHint,omitempty"`
}

type Output struct {
	DocumentID    string                   `json:"documentId,omitempty"`
	DocumentType  models.DocumentType      `json:"documentType"`
	ExtractedData *models.ExtractedDocData `json:"extractedData"`
}

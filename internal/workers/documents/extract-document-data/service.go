// internal/workers/documents/extract-document-data/service.go
package extractdocumentdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	httpclient "admission-workers/internal/common/http"
	"admission-workers/internal/models"
)

var (
	ErrExtractionFailed        = errors.New("EXTRACTION_FAILED")
	ErrExtractionTimeout       = errors.New("EXTRACTION_TIMEOUT")
	ErrUnsupportedDocumentType = errors.New("UNSUPPORTED_DOCUMENT_TYPE")
)

// Extractor pulls structured data out of an uploaded document.
type Extractor interface {
	Extract(ctx context.Context, docType models.DocumentType, hint *models.ChildProfile) (*models.ExtractedDocData, error)
}

// MockExtractor simulates OCR. Output is fully determined by the document
// type and the profile hint, so repeated extraction of the same upload gives
// the same result. It never fails, but it does take time.
type MockExtractor struct {
	delay time.Duration
}

func NewMockExtractor(delay time.Duration) *MockExtractor {
	return &MockExtractor{delay: delay}
}

func (m *MockExtractor) Extract(ctx context.Context, docType models.DocumentType, hint *models.ChildProfile) (*models.ExtractedDocData, error) {
	if !models.IsValidDocumentType(docType) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDocumentType, docType)
	}

	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrExtractionTimeout, ctx.Err())
		}
	}

	if hint == nil {
		hint = &models.ChildProfile{}
	}

	data := &models.ExtractedDocData{}
	switch docType {
	case models.DocPhoto:
		// nothing to extract from a photo
	case models.DocParentID:
		data.Address = hint.Address
	case models.DocBirthCertificate:
		data.ChildName = hint.Name
		data.DateOfBirth = hint.DateOfBirth
		data.Address = hint.Address
	case models.DocTransferCertificate:
		data.ChildName = hint.Name
		data.PreviousSchool = hint.PreviousSchool
	case models.DocMarksheet:
		data.ChildName = hint.Name
		data.Grades = mockGrades(hint)
	case models.DocAddressProof:
		data.Address = hint.Address
	}

	return data, nil
}

// mockGrades fabricates a stable marksheet for the hinted child.
func mockGrades(hint *models.ChildProfile) map[string]string {
	grade := "B"
	switch hint.AcademicLevel {
	case models.AcademicExcellent:
		grade = "A+"
	case models.AcademicAboveAverage:
		grade = "A"
	case models.AcademicBelowAverage:
		grade = "C"
	}
	return map[string]string{
		"English":     grade,
		"Mathematics": grade,
		"Science":     grade,
	}
}

// HTTPExtractor calls a real OCR backend.
type HTTPExtractor struct {
	backendURL string
	client     *httpclient.Client
}

func NewHTTPExtractor(backendURL string, timeout time.Duration) *HTTPExtractor {
	return &HTTPExtractor{
		backendURL: backendURL,
		client:     httpclient.NewClient(timeout),
	}
}

type extractRequest struct {
	DocumentType string `json:"documentType"`
}

func (e *HTTPExtractor) Extract(ctx context.Context, docType models.DocumentType, _ *models.ChildProfile) (*models.ExtractedDocData, error) {
	if !models.IsValidDocumentType(docType) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDocumentType, docType)
	}

	resp, err := e.client.PostJSON(ctx, e.backendURL+"/extract", extractRequest{DocumentType: string(docType)})
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: %v", ErrExtractionTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, fmt.Errorf("%w: backend rejected %s", ErrUnsupportedDocumentType, docType)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: backend returned %d", ErrExtractionFailed, resp.StatusCode)
	}

	var data models.ExtractedDocData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrExtractionFailed, err)
	}

	return &data, nil
}

// internal/workers/documents/extract-document-data/handler_test.go
package extractdocumentdata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"admission-workers/internal/common/logger"
	"admission-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		Mode:           "mock",
		SimulatedDelay: 0,
		Timeout:        10 * time.Second,
	}
}

func createTestHint() *models.ChildProfile {
	return &models.ChildProfile{
		Name:           "Aarav Sharma",
		DateOfBirth:    "2019-01-01",
		Address:        "12 MG Road, Bengaluru",
		PreviousSchool: "Little Stars Playschool",
		AcademicLevel:  models.AcademicAboveAverage,
	}
}

type testLogger struct {
	t *testing.T
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return tl
}

func (tl *testLogger) WithError(err error) logger.Logger {
	return tl.WithFields(map[string]interface{}{"error": err})
}

func newTestLogger(t *testing.T) logger.Logger {
	return &testLogger{t: t}
}

// ==========================
// Mock Extractor Tests
// ==========================

func TestMockExtractor_ShapeByType(t *testing.T) {
	hint := createTestHint()
	extractor := NewMockExtractor(0)

	tests := []struct {
		docType  models.DocumentType
		validate func(t *testing.T, data *models.ExtractedDocData)
	}{
		{
			docType: models.DocPhoto,
			validate: func(t *testing.T, data *models.ExtractedDocData) {
				assert.Equal(t, &models.ExtractedDocData{}, data)
			},
		},
		{
			docType: models.DocParentID,
			validate: func(t *testing.T, data *models.ExtractedDocData) {
				assert.Empty(t, data.ChildName)
				assert.Equal(t, hint.Address, data.Address)
			},
		},
		{
			docType: models.DocBirthCertificate,
			validate: func(t *testing.T, data *models.ExtractedDocData) {
				assert.Equal(t, hint.Name, data.ChildName)
				assert.Equal(t, hint.DateOfBirth, data.DateOfBirth)
				assert.Equal(t, hint.Address, data.Address)
				assert.Nil(t, data.Grades)
			},
		},
		{
			docType: models.DocTransferCertificate,
			validate: func(t *testing.T, data *models.ExtractedDocData) {
				assert.Equal(t, hint.Name, data.ChildName)
				assert.Equal(t, hint.PreviousSchool, data.PreviousSchool)
				assert.Empty(t, data.DateOfBirth)
			},
		},
		{
			docType: models.DocMarksheet,
			validate: func(t *testing.T, data *models.ExtractedDocData) {
				assert.Equal(t, hint.Name, data.ChildName)
				assert.Equal(t, "A", data.Grades["English"])
			},
		},
		{
			docType: models.DocAddressProof,
			validate: func(t *testing.T, data *models.ExtractedDocData) {
				assert.Equal(t, hint.Address, data.Address)
				assert.Empty(t, data.ChildName)
			},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.docType), func(t *testing.T) {
			data, err := extractor.Extract(context.Background(), tt.docType, hint)
			require.NoError(t, err)
			tt.validate(t, data)
		})
	}
}

func TestMockExtractor_Deterministic(t *testing.T) {
	extractor := NewMockExtractor(0)
	hint := createTestHint()

	first, err := extractor.Extract(context.Background(), models.DocBirthCertificate, hint)
	require.NoError(t, err)
	second, err := extractor.Extract(context.Background(), models.DocBirthCertificate, hint)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMockExtractor_UnsupportedType(t *testing.T) {
	extractor := NewMockExtractor(0)

	_, err := extractor.Extract(context.Background(), "tax_return", createTestHint())
	assert.ErrorIs(t, err, ErrUnsupportedDocumentType)
}

func TestMockExtractor_ContextCancelledDuringDelay(t *testing.T) {
	extractor := NewMockExtractor(5 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := extractor.Extract(ctx, models.DocPhoto, nil)
	assert.ErrorIs(t, err, ErrExtractionTimeout)
	assert.Less(t, time.Since(start), time.Second)
}

func TestMockExtractor_NilHint(t *testing.T) {
	extractor := NewMockExtractor(0)

	data, err := extractor.Extract(context.Background(), models.DocBirthCertificate, nil)
	require.NoError(t, err)
	assert.Empty(t, data.ChildName)
	assert.Empty(t, data.DateOfBirth)
}

// ==========================
// HTTP Extractor Tests
// ==========================

func TestHTTPExtractor_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/extract", r.URL.Path)
		var req extractRequest
		json.NewDecoder(r.Body).Decode(&req)
		assert.Equal(t, "birth_certificate", req.DocumentType)

		json.NewEncoder(w).Encode(models.ExtractedDocData{
			ChildName:   "Aarav Sharma",
			DateOfBirth: "2019-01-01",
		})
	}))
	defer srv.Close()

	extractor := NewHTTPExtractor(srv.URL, 5*time.Second)

	data, err := extractor.Extract(context.Background(), models.DocBirthCertificate, nil)
	require.NoError(t, err)
	assert.Equal(t, "Aarav Sharma", data.ChildName)
}

func TestHTTPExtractor_BackendRejectsType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	extractor := NewHTTPExtractor(srv.URL, 5*time.Second)

	_, err := extractor.Extract(context.Background(), models.DocMarksheet, nil)
	assert.ErrorIs(t, err, ErrUnsupportedDocumentType)
}

func TestHTTPExtractor_BackendFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	extractor := NewHTTPExtractor(srv.URL, 5*time.Second)

	_, err := extractor.Extract(context.Background(), models.DocPhoto, nil)
	assert.ErrorIs(t, err, ErrExtractionFailed)
}

func TestHTTPExtractor_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	extractor := NewHTTPExtractor(srv.URL, 5*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := extractor.Extract(ctx, models.DocPhoto, nil)
	assert.ErrorIs(t, err, ErrExtractionTimeout)
}

// ==========================
// Handler Tests
// ==========================

func TestHandler_Execute(t *testing.T) {
	handler := NewHandler(createTestConfig(), newTestLogger(t))

	input := &Input{
		DocumentID:   "doc-1",
		DocumentType: models.DocTransferCertificate,
		ProfileHint:  createTestHint(),
	}

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "doc-1", output.DocumentID)
	assert.Equal(t, models.DocTransferCertificate, output.DocumentType)
	assert.Equal(t, "Little Stars Playschool", output.ExtractedData.PreviousSchool)
}

func TestHandler_Execute_MissingType(t *testing.T) {
	handler := NewHandler(createTestConfig(), newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, ErrExtractionFailed)
}

func TestHandler_MapErrorToCode(t *testing.T) {
	handler := NewHandler(createTestConfig(), newTestLogger(t))

	assert.Equal(t, "UNSUPPORTED_DOCUMENT_TYPE", handler.mapErrorToCode(ErrUnsupportedDocumentType))
	assert.Equal(t, "EXTRACTION_TIMEOUT", handler.mapErrorToCode(ErrExtractionTimeout))
	assert.Equal(t, "EXTRACTION_FAILED", handler.mapErrorToCode(ErrExtractionFailed))
	assert.Equal(t, "EXTRACTION_FAILED", handler.mapErrorToCode(assert.AnError))
}

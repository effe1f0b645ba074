// internal/workers/documents/list-required-documents/handler_test.go
package listrequireddocuments

import (
	"context"
	"testing"

	"admission-workers/internal/common/logger"
	"admission-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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
// Checklist Tests
// ==========================

func TestHandler_Execute_BaseChecklist(t *testing.T) {
	handler := NewHandler(LoadConfig(), newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{})
	require.NoError(t, err)

	require.Len(t, output.Documents, 6)

	byType := make(map[models.DocumentType]RequiredDocument)
	for _, d := range output.Documents {
		byType[d.Type] = d
	}

	assert.True(t, byType[models.DocPhoto].Required)
	assert.True(t, byType[models.DocParentID].Required)
	assert.True(t, byType[models.DocBirthCertificate].Required)
	assert.False(t, byType[models.DocTransferCertificate].Required)
	assert.False(t, byType[models.DocMarksheet].Required)
	assert.False(t, byType[models.DocAddressProof].Required)

	for _, d := range output.Documents {
		assert.NotEmpty(t, d.Label)
		assert.NotEmpty(t, d.Description)
	}
}

func TestHandler_Execute_NurseryKeepsConditionalOptional(t *testing.T) {
	handler := NewHandler(LoadConfig(), newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{TargetClass: "Nursery"})
	require.NoError(t, err)

	for _, d := range output.Documents {
		if d.Type == models.DocTransferCertificate || d.Type == models.DocMarksheet {
			assert.False(t, d.Required, "%s should stay optional for Nursery", d.Type)
		}
	}
}

func TestHandler_Execute_HigherClassRequiresTransferDocs(t *testing.T) {
	handler := NewHandler(LoadConfig(), newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{TargetClass: "Class 3"})
	require.NoError(t, err)

	byType := make(map[models.DocumentType]RequiredDocument)
	for _, d := range output.Documents {
		byType[d.Type] = d
	}

	assert.True(t, byType[models.DocTransferCertificate].Required)
	assert.True(t, byType[models.DocMarksheet].Required)
	// address proof stays optional regardless of class
	assert.False(t, byType[models.DocAddressProof].Required)
}

func TestHandler_Execute_StableOrder(t *testing.T) {
	handler := NewHandler(LoadConfig(), newTestLogger(t))

	first, err := handler.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	second, err := handler.Execute(context.Background(), &Input{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, models.DocPhoto, first.Documents[0].Type)
}

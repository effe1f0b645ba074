// internal/workers/application/create-application-record/handler_test.go
package createapplicationrecord

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"admission-workers/internal/common/logger"
	"admission-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	return db, mock
}

func createTestInput() *Input {
	return &Input{
		ChildID:  "child-123",
		SchoolID: "sch-001",
		Child: models.ChildProfile{
			Name:        "Aarav Sharma",
			Age:         4,
			TargetClass: "LKG",
		},
		Documents: []models.DocumentUpload{
			{
				ID:       "doc-1",
				Type:     models.DocPhoto,
				FileName: "photo.jpg",
				Status:   models.DocStatusVerified,
			},
		},
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
// Core Functionality Tests
// ==========================

func TestHandler_Execute_CreatesRecord(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	handler := NewHandler(LoadConfig(), db, newTestLogger(t))

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("child-123", "sch-001").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("INSERT INTO applications").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO audit_log").
		WillReturnResult(sqlmock.NewResult(1, 1))

	output, err := handler.Execute(context.Background(), createTestInput())

	require.NoError(t, err)
	assert.Equal(t, string(models.StatusDocumentsPending), output.ApplicationStatus)

	_, err = uuid.Parse(output.ApplicationID)
	assert.NoError(t, err, "application id should be a uuid")

	_, err = time.Parse(time.RFC3339, output.CreatedAt)
	assert.NoError(t, err, "createdAt should be RFC3339")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_NoDocumentsStartsDraft(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	handler := NewHandler(LoadConfig(), db, newTestLogger(t))

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("child-123", "sch-001").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("INSERT INTO applications").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO audit_log").
		WillReturnResult(sqlmock.NewResult(1, 1))

	input := createTestInput()
	input.Documents = nil

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, string(models.StatusDraft), output.ApplicationStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_DuplicateApplication(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	handler := NewHandler(LoadConfig(), db, newTestLogger(t))

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("child-123", "sch-001").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	output, err := handler.Execute(context.Background(), createTestInput())

	assert.Nil(t, output)
	assert.ErrorIs(t, err, ErrDuplicateApplication)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_InsertFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	handler := NewHandler(LoadConfig(), db, newTestLogger(t))

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("child-123", "sch-001").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("INSERT INTO applications").
		WillReturnError(sql.ErrConnDone)

	output, err := handler.Execute(context.Background(), createTestInput())

	assert.Nil(t, output)
	assert.ErrorIs(t, err, ErrDatabaseInsertFailed)
}

func TestHandler_Execute_AuditLogFailureIsNonFatal(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	handler := NewHandler(LoadConfig(), db, newTestLogger(t))

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("child-123", "sch-001").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("INSERT INTO applications").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO audit_log").
		WillReturnError(sql.ErrConnDone)

	output, err := handler.Execute(context.Background(), createTestInput())

	require.NoError(t, err)
	assert.NotEmpty(t, output.ApplicationID)
}

func TestHandler_Execute_MissingIDs(t *testing.T) {
	db, _ := setupMockDB(t)
	defer db.Close()

	handler := NewHandler(LoadConfig(), db, newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{SchoolID: "sch-001"})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, ErrDatabaseInsertFailed)

	output, err = handler.Execute(context.Background(), &Input{ChildID: "child-123"})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, ErrDatabaseInsertFailed)
}

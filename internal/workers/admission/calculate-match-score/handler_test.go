// internal/workers/admission/calculate-match-score/handler_test.go
package calculatematchscore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"admission-workers/internal/catalog"
	"admission-workers/internal/common/logger"
	"admission-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		CacheTTL: 10 * time.Minute,
		Timeout:  10 * time.Second,
	}
}

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	return db, mock
}

func setupMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func createTestProfile() *models.ChildProfile {
	return &models.ChildProfile{
		Name:           "Aarav Sharma",
		Age:            4,
		TargetClass:    "LKG",
		PreferredBoard: "CBSE",
		MaxDistanceKm:  10,
		Budget:         models.Budget{Min: 100000, Max: 300000},
		AcademicLevel:  models.AcademicAverage,
	}
}

func createTestSchool() catalog.SchoolRecord {
	return catalog.SchoolRecord{
		ID:         "sch-001",
		Name:       "Greenwood International School",
		Board:      "CBSE",
		DistanceKm: 2.1,
		AnnualFee:  180000,
		Rating:     4.6,
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

func TestHandler_Execute_WithProvidedProfile(t *testing.T) {
	db, _ := setupMockDB(t)
	defer db.Close()
	_, rdb := setupMiniRedis(t)

	handler := NewHandler(createTestConfig(), db, rdb, newTestLogger(t))

	input := &Input{
		ChildProfile: createTestProfile(),
		School:       createTestSchool(),
	}

	output, err := handler.Execute(context.Background(), input)

	assert.NoError(t, err)
	assert.NotNil(t, output)
	// 50 + 15 (age 4 vs LKG 4) + 15 (board) + 12 (distance) + 15 (fees) = 107 → 100
	assert.Equal(t, 100, output.Match.Score)
	assert.Equal(t, models.ChanceHigh, output.Match.Chance)
	assert.Equal(t, "sch-001", output.Match.SchoolID)
	assert.Equal(t, "Greenwood International School", output.Match.SchoolName)
}

func TestHandler_Execute_MissingSchool(t *testing.T) {
	_, rdb := setupMiniRedis(t)
	handler := NewHandler(createTestConfig(), nil, rdb, newTestLogger(t))

	input := &Input{ChildProfile: createTestProfile()}

	output, err := handler.Execute(context.Background(), input)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, ErrMatchScoreFailed)
}

func TestHandler_Execute_MissingProfileAndChildID(t *testing.T) {
	_, rdb := setupMiniRedis(t)
	handler := NewHandler(createTestConfig(), nil, rdb, newTestLogger(t))

	input := &Input{School: createTestSchool()}

	output, err := handler.Execute(context.Background(), input)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, ErrMatchScoreFailed)
}

func TestHandler_Execute_FetchChildProfile(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	_, rdb := setupMiniRedis(t)

	handler := NewHandler(createTestConfig(), db, rdb, newTestLogger(t))

	mock.ExpectQuery("SELECT name, age").
		WithArgs("child-123").
		WillReturnRows(sqlmock.NewRows([]string{
			"name", "age", "date_of_birth", "target_class", "preferred_board",
			"address", "max_distance_km", "budget_min", "budget_max", "academic_level",
		}).AddRow("Aarav Sharma", 4.0, "2022-03-10", "LKG", "CBSE",
			"12 MG Road, Bengaluru", 10.0, 100000, 300000, "Average"))

	input := &Input{
		ChildID: "child-123",
		School:  createTestSchool(),
	}

	output, err := handler.Execute(context.Background(), input)

	assert.NoError(t, err)
	assert.NotNil(t, output)
	assert.Equal(t, 100, output.Match.Score)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_ProfileNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	_, rdb := setupMiniRedis(t)

	handler := NewHandler(createTestConfig(), db, rdb, newTestLogger(t))

	mock.ExpectQuery("SELECT name, age").
		WithArgs("nonexistent-child").
		WillReturnError(sql.ErrNoRows)

	input := &Input{
		ChildID: "nonexistent-child",
		School:  createTestSchool(),
	}

	output, err := handler.Execute(context.Background(), input)

	assert.Nil(t, output)
	assert.ErrorIs(t, err, ErrProfileNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Database & Cache Tests
// ==========================

func TestHandler_GetChildProfile_CacheHit(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	mr, rdb := setupMiniRedis(t)

	profile := createTestProfile()
	profile.ID = "child-789"
	data, _ := json.Marshal(profile)
	mr.Set("child:profile:child-789", string(data))

	handler := NewHandler(createTestConfig(), db, rdb, newTestLogger(t))

	got, err := handler.getChildProfile(context.Background(), "child-789")

	assert.NoError(t, err)
	assert.Equal(t, "Aarav Sharma", got.Name)
	// no db query on cache hit
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_GetChildProfile_CacheMissPopulatesCache(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	mr, rdb := setupMiniRedis(t)

	mock.ExpectQuery("SELECT name, age").
		WithArgs("child-456").
		WillReturnRows(sqlmock.NewRows([]string{
			"name", "age", "date_of_birth", "target_class", "preferred_board",
			"address", "max_distance_km", "budget_min", "budget_max", "academic_level",
		}).AddRow("Meera Iyer", 6.0, nil, "Class 1", "ICSE",
			"", 5.0, 50000, 150000, "Excellent"))

	handler := NewHandler(createTestConfig(), db, rdb, newTestLogger(t))

	got, err := handler.getChildProfile(context.Background(), "child-456")

	assert.NoError(t, err)
	assert.Equal(t, "Meera Iyer", got.Name)
	assert.Equal(t, "child-456", got.ID)
	assert.Empty(t, got.DateOfBirth)
	assert.True(t, mr.Exists("child:profile:child-456"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_GetChildProfile_CacheErrorFallsBackToDB(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	rdb, redisMock := redismock.NewClientMock()
	redisMock.ExpectGet("child:profile:child-999").SetErr(errors.New("connection refused"))

	expected := models.ChildProfile{
		ID:             "child-999",
		Name:           "Aarav Sharma",
		Age:            4,
		DateOfBirth:    "2022-03-10",
		TargetClass:    "LKG",
		PreferredBoard: "CBSE",
		Address:        "12 MG Road, Bengaluru",
		MaxDistanceKm:  10,
		Budget:         models.Budget{Min: 100000, Max: 300000},
		AcademicLevel:  models.AcademicAverage,
	}
	data, _ := json.Marshal(expected)
	redisMock.ExpectSet("child:profile:child-999", data, createTestConfig().CacheTTL).SetVal("OK")

	mock.ExpectQuery("SELECT name, age").
		WithArgs("child-999").
		WillReturnRows(sqlmock.NewRows([]string{
			"name", "age", "date_of_birth", "target_class", "preferred_board",
			"address", "max_distance_km", "budget_min", "budget_max", "academic_level",
		}).AddRow("Aarav Sharma", 4.0, "2022-03-10", "LKG", "CBSE",
			"12 MG Road, Bengaluru", 10.0, 100000, 300000, "Average"))

	handler := NewHandler(createTestConfig(), db, rdb, newTestLogger(t))

	got, err := handler.getChildProfile(context.Background(), "child-999")

	assert.NoError(t, err)
	assert.Equal(t, expected, *got)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

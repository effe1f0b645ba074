// pkg/registry/registry_test.go
package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRegistryJSON = `{
  "version": "1.0.0",
  "lastUpdated": "2026-08-20",
  "activities": [
    {
      "id": "act-rank-school-matches",
      "displayName": "Rank School Matches",
      "category": "admission",
      "taskType": "rank-school-matches",
      "implementationStatus": "implemented",
      "inputSchema": {
        "type": "object",
        "properties": {
          "childProfile": { "type": "object" },
          "schoolIds": { "type": "array", "items": { "type": "string" } }
        },
        "required": ["childProfile"]
      },
      "outputSchema": {
        "type": "object",
        "properties": {
          "matches": { "type": "array" },
          "total": { "type": "integer" }
        },
        "required": ["matches", "total"]
      },
      "errorCodes": ["RANKING_FAILED"],
      "timeout": "30s",
      "retries": 3
    },
    {
      "id": "act-list-required-documents",
      "displayName": "List Required Documents",
      "category": "documents",
      "taskType": "list-required-documents",
      "implementationStatus": "implemented"
    }
  ]
}`

func writeTestRegistry(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "activities.json")
	if err := os.WriteFile(path, []byte(testRegistryJSON), 0o644); err != nil {
		t.Fatalf("write registry fixture: %v", err)
	}
	return path
}

func TestLoadRegistry(t *testing.T) {
	reg, err := LoadRegistry(writeTestRegistry(t))

	require.NoError(t, err)
	assert.Equal(t, "1.0.0", reg.Version)
	require.Len(t, reg.Activities, 2)
	assert.Equal(t, []string{"rank-school-matches", "list-required-documents"}, reg.TaskTypes())
}

func TestLoadRegistry_MissingFile(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestRegistry_ByTaskType(t *testing.T) {
	reg, err := LoadRegistry(writeTestRegistry(t))
	require.NoError(t, err)

	activity, err := reg.ByTaskType("rank-school-matches")
	require.NoError(t, err)
	assert.Equal(t, "act-rank-school-matches", activity.ID)

	_, err = reg.ByTaskType("no-such-task")
	assert.ErrorIs(t, err, ErrActivityNotFound)
}

func TestActivity_ValidateInput(t *testing.T) {
	reg, err := LoadRegistry(writeTestRegistry(t))
	require.NoError(t, err)

	activity, err := reg.ByTaskType("rank-school-matches")
	require.NoError(t, err)

	valid := map[string]interface{}{
		"childProfile": map[string]interface{}{"name": "Aarav"},
		"schoolIds":    []interface{}{"sch-001"},
	}
	assert.NoError(t, activity.ValidateInput(valid))

	missing := map[string]interface{}{
		"schoolIds": []interface{}{"sch-001"},
	}
	err = activity.ValidateInput(missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "childProfile")

	wrongType := map[string]interface{}{
		"childProfile": map[string]interface{}{},
		"schoolIds":    "sch-001",
	}
	assert.Error(t, activity.ValidateInput(wrongType))
}

func TestActivity_ValidateOutput(t *testing.T) {
	reg, err := LoadRegistry(writeTestRegistry(t))
	require.NoError(t, err)

	activity, err := reg.ByTaskType("rank-school-matches")
	require.NoError(t, err)

	assert.NoError(t, activity.ValidateOutput(map[string]interface{}{
		"matches": []interface{}{},
		"total":   0,
	}))
	assert.Error(t, activity.ValidateOutput(map[string]interface{}{
		"matches": []interface{}{},
	}))
}

func TestActivity_EmptySchemaAcceptsAnything(t *testing.T) {
	reg, err := LoadRegistry(writeTestRegistry(t))
	require.NoError(t, err)

	activity, err := reg.ByTaskType("list-required-documents")
	require.NoError(t, err)

	assert.NoError(t, activity.ValidateInput(map[string]interface{}{"anything": 1}))
	assert.NoError(t, activity.ValidateOutput(nil))
}

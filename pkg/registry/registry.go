// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
)

var ErrActivityNotFound = errors.New("activity not found")

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	err = json.Unmarshal(data, &reg)
	return &reg, err
}

// ByTaskType returns the activity registered for a Zeebe task type.
func (r *ActivityRegistry) ByTaskType(taskType string) (*Activity, error) {
	for i := range r.Activities {
		if r.Activities[i].TaskType == taskType {
			return &r.Activities[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrActivityNotFound, taskType)
}

// ValidateInput checks a job payload against the activity's input schema.
// An activity without a schema accepts everything.
func (a *Activity) ValidateInput(payload map[string]interface{}) error {
	return validateAgainst(a.InputSchema, payload)
}

// ValidateOutput checks a completion payload against the activity's output schema.
func (a *Activity) ValidateOutput(payload map[string]interface{}) error {
	return validateAgainst(a.OutputSchema, payload)
}

func validateAgainst(schemaMap, data map[string]interface{}) error {
	if len(schemaMap) == 0 {
		return nil
	}

	schemaLoader := gojsonschema.NewGoLoader(schemaMap)
	documentLoader := gojsonschema.NewGoLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("payload validation failed: %v", errs)
	}

	return nil
}

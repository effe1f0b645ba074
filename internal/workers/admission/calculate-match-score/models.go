// internal/workers/admission/calculate-match-score/models.go
package calculatematchscore

import (
	"admission-workers/internal/catalog"
	"admission-workers/internal/models"
)

type Input struct {
	ChildID      string               `json:"childId,omitempty"`
	ChildProfile *models.ChildProfile `json:"childProfile,omitempty"`
	School       catalog.SchoolRecord `json:"school"`
}

type Output struct {
	Match models.SchoolMatch `json:"match"`
}

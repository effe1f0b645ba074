// internal/workers/admission/rank-school-matches/models.go
package rankschoolmatches

import "admission-workers/internal/models"

type Input struct {
	ChildProfile *models.ChildProfile `json:"childProfile"`
	// SchoolIDs restricts ranking to a subset of the catalog when non-empty.
	SchoolIDs []string `json:"schoolIds,omitempty"`
}

type Output struct {
	Matches []models.SchoolMatch `json:"matches"`
	Total   int                  `json:"total"`
}

// internal/matching/score.go
package matching

import (
	"fmt"
	"math"

	"admission-workers/internal/catalog"
	"admission-workers/internal/models"
)

const (
	baseScore = 50

	highChanceThreshold   = 70
	mediumChanceThreshold = 45
)

// classAges maps an admission class to the typical entry age.
var classAges = map[string]float64{
	"Nursery":  3,
	"LKG":      4,
	"UKG":      5,
	"Class 1":  6,
	"Class 2":  7,
	"Class 3":  8,
	"Class 4":  9,
	"Class 5":  10,
	"Class 6":  11,
	"Class 7":  12,
	"Class 8":  13,
	"Class 9":  14,
	"Class 10": 15,
}

const fallbackClassAge = 6

// ExpectedAgeForClass returns the typical entry age for a class label. The
// second return is false when the label is unmapped and the fallback applies.
func ExpectedAgeForClass(class string) (float64, bool) {
	if age, ok := classAges[class]; ok {
		return age, true
	}
	return fallbackClassAge, false
}

// Score evaluates one school against a child profile and returns the scored
// match with its explainable factors. Factors always appear in the order
// Age, Board, Distance, Fees, Academics, then Competition (popular schools
// only) and Rating (rating 4.5 and up only).
func Score(school catalog.SchoolRecord, profile models.ChildProfile) models.SchoolMatch {
	score := baseScore
	factors := make([]models.MatchFactor, 0, 7)

	// Age fit
	expectedAge, _ := ExpectedAgeForClass(profile.TargetClass)
	ageDiff := math.Abs(profile.Age - expectedAge)
	switch {
	case ageDiff <= 0.5:
		score += 15
		factors = append(factors, models.MatchFactor{
			Name:    "Age",
			Verdict: models.VerdictPositive,
			Detail:  fmt.Sprintf("Age %.1f is ideal for %s", profile.Age, profile.TargetClass),
		})
	case ageDiff <= 1:
		score += 8
		factors = append(factors, models.MatchFactor{
			Name:    "Age",
			Verdict: models.VerdictNeutral,
			Detail:  fmt.Sprintf("Age %.1f is close to the typical age for %s", profile.Age, profile.TargetClass),
		})
	default:
		score -= 10
		factors = append(factors, models.MatchFactor{
			Name:    "Age",
			Verdict: models.VerdictNegative,
			Detail:  fmt.Sprintf("Age %.1f is outside the typical range for %s", profile.Age, profile.TargetClass),
		})
	}

	// Board preference
	if school.Board == profile.PreferredBoard {
		score += 15
		factors = append(factors, models.MatchFactor{
			Name:    "Board",
			Verdict: models.VerdictPositive,
			Detail:  fmt.Sprintf("School offers preferred board %s", school.Board),
		})
	} else {
		factors = append(factors, models.MatchFactor{
			Name:    "Board",
			Verdict: models.VerdictNeutral,
			Detail:  fmt.Sprintf("School board is %s, preference is %s", school.Board, profile.PreferredBoard),
		})
	}

	// Distance
	if school.DistanceKm <= profile.MaxDistanceKm {
		if school.DistanceKm <= 3 {
			score += 12
			factors = append(factors, models.MatchFactor{
				Name:    "Distance",
				Verdict: models.VerdictPositive,
				Detail:  fmt.Sprintf("School is nearby at %.1f km", school.DistanceKm),
			})
		} else {
			score += 5
			factors = append(factors, models.MatchFactor{
				Name:    "Distance",
				Verdict: models.VerdictNeutral,
				Detail:  fmt.Sprintf("School is %.1f km away, within the %.1f km limit", school.DistanceKm, profile.MaxDistanceKm),
			})
		}
	} else {
		score -= 15
		factors = append(factors, models.MatchFactor{
			Name:    "Distance",
			Verdict: models.VerdictNegative,
			Detail:  fmt.Sprintf("School is %.1f km away, beyond the %.1f km limit", school.DistanceKm, profile.MaxDistanceKm),
		})
	}

	// Fees
	if school.AnnualFee <= profile.Budget.Max {
		if school.AnnualFee >= profile.Budget.Min {
			score += 15
			factors = append(factors, models.MatchFactor{
				Name:    "Fees",
				Verdict: models.VerdictPositive,
				Detail:  fmt.Sprintf("Annual fee %d is within budget", school.AnnualFee),
			})
		} else {
			score += 10
			factors = append(factors, models.MatchFactor{
				Name:    "Fees",
				Verdict: models.VerdictPositive,
				Detail:  fmt.Sprintf("Annual fee %d is below budget", school.AnnualFee),
			})
		}
	} else {
		score -= 20
		factors = append(factors, models.MatchFactor{
			Name:    "Fees",
			Verdict: models.VerdictNegative,
			Detail:  fmt.Sprintf("Annual fee %d exceeds the budget of %d", school.AnnualFee, profile.Budget.Max),
		})
	}

	// Academic standing
	switch profile.AcademicLevel {
	case models.AcademicExcellent:
		score += 10
		factors = append(factors, models.MatchFactor{
			Name:    "Academics",
			Verdict: models.VerdictPositive,
			Detail:  "Excellent academic record strengthens the application",
		})
	case models.AcademicAboveAverage:
		score += 5
		factors = append(factors, models.MatchFactor{
			Name:    "Academics",
			Verdict: models.VerdictPositive,
			Detail:  "Above average academic record helps the application",
		})
	case models.AcademicBelowAverage:
		score -= 5
		factors = append(factors, models.MatchFactor{
			Name:    "Academics",
			Verdict: models.VerdictNegative,
			Detail:  "Below average academic record may weaken the application",
		})
	default:
		factors = append(factors, models.MatchFactor{
			Name:    "Academics",
			Verdict: models.VerdictNeutral,
			Detail:  "Average academic record",
		})
	}

	// Competition at popular schools
	if school.IsPopular {
		score -= 5
		factors = append(factors, models.MatchFactor{
			Name:    "Competition",
			Verdict: models.VerdictNegative,
			Detail:  "High demand school, admission is competitive",
		})
	}

	// Rating is informational only
	if school.Rating >= 4.5 {
		factors = append(factors, models.MatchFactor{
			Name:    "Rating",
			Verdict: models.VerdictPositive,
			Detail:  fmt.Sprintf("Highly rated school (%.1f)", school.Rating),
		})
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return models.SchoolMatch{
		SchoolID:   school.ID,
		SchoolName: school.Name,
		Score:      score,
		Chance:     chanceForScore(score),
		Factors:    factors,
	}
}

func chanceForScore(score int) models.Chance {
	switch {
	case score >= highChanceThreshold:
		return models.ChanceHigh
	case score >= mediumChanceThreshold:
		return models.ChanceMedium
	default:
		return models.ChanceLow
	}
}

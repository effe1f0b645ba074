// internal/matching/score_test.go
package matching

import (
	"testing"

	"admission-workers/internal/catalog"
	"admission-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func createTestProfile() models.ChildProfile {
	return models.ChildProfile{
		Name:           "Aarav Sharma",
		Age:            4,
		TargetClass:    "Nursery",
		PreferredBoard: "CBSE",
		MaxDistanceKm:  10,
		Budget:         models.Budget{Min: 100000, Max: 300000},
		AcademicLevel:  models.AcademicAverage,
	}
}

// ==========================
// Scoring Tests
// ==========================

func TestScore_StrongMatchClampsAt100(t *testing.T) {
	// age diff 1 (+8 neutral)... age 4 vs Nursery 3 is diff 1, use age 3.2
	profile := createTestProfile()
	profile.Age = 3.2

	school := catalog.SchoolRecord{
		ID:         "sch-x",
		Name:       "Greenwood",
		Board:      "CBSE",
		DistanceKm: 2,
		AnnualFee:  180000,
		Rating:     4.5,
	}

	// 50 + 15 (age) + 15 (board) + 12 (distance) + 15 (fees) = 107 → 100
	match := Score(school, profile)

	assert.Equal(t, 100, match.Score)
	assert.Equal(t, models.ChanceHigh, match.Chance)

	names := factorNames(match)
	assert.Equal(t, []string{"Age", "Board", "Distance", "Fees", "Academics", "Rating"}, names)
	assert.Equal(t, models.VerdictPositive, match.Factors[0].Verdict)
	assert.Equal(t, models.VerdictPositive, match.Factors[1].Verdict)
	assert.Equal(t, models.VerdictPositive, match.Factors[2].Verdict)
	assert.Equal(t, models.VerdictPositive, match.Factors[3].Verdict)
	assert.Equal(t, models.VerdictNeutral, match.Factors[4].Verdict)
	assert.Equal(t, models.VerdictPositive, match.Factors[5].Verdict)
}

func TestScore_NurseryAgeFourIsNeutralAge(t *testing.T) {
	// age 4 vs Nursery's expected 3 is diff 1, the +8 neutral branch
	profile := createTestProfile()

	school := catalog.SchoolRecord{
		ID:         "sch-x",
		Name:       "Greenwood",
		Board:      "CBSE",
		DistanceKm: 2,
		AnnualFee:  180000,
		Rating:     4.5,
	}

	// 50 + 8 (age) + 15 (board) + 12 (distance) + 15 (fees) = 100
	match := Score(school, profile)

	assert.Equal(t, 100, match.Score)
	assert.Equal(t, models.ChanceHigh, match.Chance)
	assert.Equal(t, models.VerdictNeutral, match.Factors[0].Verdict)
	assert.Equal(t, models.VerdictPositive, match.Factors[1].Verdict)
	assert.Equal(t, models.VerdictPositive, match.Factors[2].Verdict)
	assert.Equal(t, models.VerdictPositive, match.Factors[3].Verdict)
	assert.Equal(t, models.VerdictPositive, match.Factors[5].Verdict)
}

func TestScore_FeeAboveBudgetSwingsScore(t *testing.T) {
	profile := createTestProfile()
	profile.Age = 3.2

	affordable := catalog.SchoolRecord{ID: "a", Board: "CBSE", DistanceKm: 2, AnnualFee: 180000}
	expensive := affordable
	expensive.ID = "b"
	expensive.AnnualFee = 500000

	cheap := Score(affordable, profile)
	costly := Score(expensive, profile)

	// raw 107 vs raw 72: the fee component alone swings 35 points
	assert.Equal(t, 100, cheap.Score)
	assert.Equal(t, 72, costly.Score)
	assert.Equal(t, models.VerdictNegative, costly.Factors[3].Verdict)
	assert.Equal(t, "Fees", costly.Factors[3].Name)
}

func TestScore_AgeFactor(t *testing.T) {
	tests := []struct {
		name        string
		age         float64
		targetClass string
		wantDelta   int
		wantVerdict models.Verdict
	}{
		{"ideal age", 3.0, "Nursery", 15, models.VerdictPositive},
		{"half year off", 3.5, "Nursery", 15, models.VerdictPositive},
		{"one year off", 4.0, "Nursery", 8, models.VerdictNeutral},
		{"way off", 6.0, "Nursery", -10, models.VerdictNegative},
		{"class ten", 15.0, "Class 10", 15, models.VerdictPositive},
		{"unmapped class falls back to six", 6.0, "Playgroup", 15, models.VerdictPositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := createTestProfile()
			profile.Age = tt.age
			profile.TargetClass = tt.targetClass

			// neutral everything else: board mismatch, distance 5km (neutral +5),
			// fee within budget (+15), average academics
			school := catalog.SchoolRecord{ID: "s", Board: "IB", DistanceKm: 5, AnnualFee: 150000}

			match := Score(school, profile)
			assert.Equal(t, 50+tt.wantDelta+5+15, match.Score)
			assert.Equal(t, "Age", match.Factors[0].Name)
			assert.Equal(t, tt.wantVerdict, match.Factors[0].Verdict)
		})
	}
}

func TestScore_DistanceFactor(t *testing.T) {
	tests := []struct {
		name        string
		distance    float64
		maxDistance float64
		wantDelta   int
		wantVerdict models.Verdict
	}{
		{"very close", 2.5, 10, 12, models.VerdictPositive},
		{"at three km", 3.0, 10, 12, models.VerdictPositive},
		{"within limit", 7.0, 10, 5, models.VerdictNeutral},
		{"at the limit", 10.0, 10, 5, models.VerdictNeutral},
		{"beyond limit", 12.0, 10, -15, models.VerdictNegative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := createTestProfile()
			profile.Age = 6 // far from Nursery age, fixed -10
			profile.MaxDistanceKm = tt.maxDistance

			school := catalog.SchoolRecord{ID: "s", Board: "IB", DistanceKm: tt.distance, AnnualFee: 150000}

			match := Score(school, profile)
			assert.Equal(t, 50-10+tt.wantDelta+15, match.Score)
			assert.Equal(t, "Distance", match.Factors[2].Name)
			assert.Equal(t, tt.wantVerdict, match.Factors[2].Verdict)
		})
	}
}

func TestScore_FeeFactor(t *testing.T) {
	tests := []struct {
		name        string
		fee         int
		wantDelta   int
		wantVerdict models.Verdict
		wantDetail  string
	}{
		{"within budget", 200000, 15, models.VerdictPositive, "within budget"},
		{"at budget max", 300000, 15, models.VerdictPositive, "within budget"},
		{"below budget", 80000, 10, models.VerdictPositive, "below budget"},
		{"above budget", 350000, -20, models.VerdictNegative, "exceeds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := createTestProfile()
			profile.Age = 6

			school := catalog.SchoolRecord{ID: "s", Board: "IB", DistanceKm: 5, AnnualFee: tt.fee}

			match := Score(school, profile)
			assert.Equal(t, 50-10+5+tt.wantDelta, match.Score)
			assert.Equal(t, "Fees", match.Factors[3].Name)
			assert.Equal(t, tt.wantVerdict, match.Factors[3].Verdict)
			assert.Contains(t, match.Factors[3].Detail, tt.wantDetail)
		})
	}
}

func TestScore_AcademicsFactor(t *testing.T) {
	tests := []struct {
		level       models.AcademicLevel
		wantDelta   int
		wantVerdict models.Verdict
	}{
		{models.AcademicExcellent, 10, models.VerdictPositive},
		{models.AcademicAboveAverage, 5, models.VerdictPositive},
		{models.AcademicAverage, 0, models.VerdictNeutral},
		{models.AcademicBelowAverage, -5, models.VerdictNegative},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			profile := createTestProfile()
			profile.Age = 6
			profile.AcademicLevel = tt.level

			school := catalog.SchoolRecord{ID: "s", Board: "IB", DistanceKm: 5, AnnualFee: 150000}

			match := Score(school, profile)
			assert.Equal(t, 50-10+5+15+tt.wantDelta, match.Score)
			assert.Equal(t, "Academics", match.Factors[4].Name)
			assert.Equal(t, tt.wantVerdict, match.Factors[4].Verdict)
		})
	}
}

func TestScore_PopularityAndRating(t *testing.T) {
	profile := createTestProfile()
	profile.Age = 6

	base := catalog.SchoolRecord{ID: "s", Board: "IB", DistanceKm: 5, AnnualFee: 150000}

	plain := Score(base, profile)
	assert.Equal(t, []string{"Age", "Board", "Distance", "Fees", "Academics"}, factorNames(plain))

	popular := base
	popular.IsPopular = true
	p := Score(popular, profile)
	assert.Equal(t, plain.Score-5, p.Score)
	assert.Equal(t, []string{"Age", "Board", "Distance", "Fees", "Academics", "Competition"}, factorNames(p))
	assert.Equal(t, models.VerdictNegative, p.Factors[5].Verdict)

	rated := base
	rated.Rating = 4.6
	r := Score(rated, profile)
	// rating never changes the score
	assert.Equal(t, plain.Score, r.Score)
	assert.Equal(t, []string{"Age", "Board", "Distance", "Fees", "Academics", "Rating"}, factorNames(r))
	assert.Equal(t, models.VerdictPositive, r.Factors[5].Verdict)

	both := popular
	both.Rating = 4.9
	b := Score(both, profile)
	assert.Equal(t, []string{"Age", "Board", "Distance", "Fees", "Academics", "Competition", "Rating"}, factorNames(b))
}

func TestScore_ChanceBuckets(t *testing.T) {
	assert.Equal(t, models.ChanceHigh, chanceForScore(100))
	assert.Equal(t, models.ChanceHigh, chanceForScore(70))
	assert.Equal(t, models.ChanceMedium, chanceForScore(69))
	assert.Equal(t, models.ChanceMedium, chanceForScore(45))
	assert.Equal(t, models.ChanceLow, chanceForScore(44))
	assert.Equal(t, models.ChanceLow, chanceForScore(0))
}

func TestScore_ClampsAtZero(t *testing.T) {
	profile := models.ChildProfile{
		Age:            10,
		TargetClass:    "Nursery",
		PreferredBoard: "CBSE",
		MaxDistanceKm:  2,
		Budget:         models.Budget{Min: 50000, Max: 80000},
		AcademicLevel:  models.AcademicBelowAverage,
	}
	school := catalog.SchoolRecord{
		ID:         "s",
		Board:      "IB",
		DistanceKm: 20,
		AnnualFee:  500000,
		IsPopular:  true,
	}

	// 50 -10 -15 -20 -5 -5 = -5 → 0
	match := Score(school, profile)
	assert.Equal(t, 0, match.Score)
	assert.Equal(t, models.ChanceLow, match.Chance)
}

func TestExpectedAgeForClass(t *testing.T) {
	age, ok := ExpectedAgeForClass("LKG")
	assert.True(t, ok)
	assert.Equal(t, 4.0, age)

	age, ok = ExpectedAgeForClass("Class 7")
	assert.True(t, ok)
	assert.Equal(t, 12.0, age)

	age, ok = ExpectedAgeForClass("Kindergarten Plus")
	assert.False(t, ok)
	assert.Equal(t, 6.0, age)
}

func factorNames(m models.SchoolMatch) []string {
	names := make([]string, 0, len(m.Factors))
	for _, f := range m.Factors {
		names = append(names, f.Name)
	}
	return names
}

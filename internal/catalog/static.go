// internal/catalog/static.go
package catalog

// staticSchools is the built-in seed catalog used when config.catalog.source
// is "static". Order matters; ranking ties resolve by position here.
var staticSchools = []SchoolRecord{
	{
		ID:             "sch-001",
		Name:           "Greenwood International School",
		Board:          "CBSE",
		DistanceKm:     2.1,
		AnnualFee:      180000,
		IsPopular:      false,
		Rating:         4.6,
		TotalSeats:     120,
		SeatsAvailable: 34,
	},
	{
		ID:             "sch-002",
		Name:           "St. Xavier's High School",
		Board:          "ICSE",
		DistanceKm:     4.8,
		AnnualFee:      220000,
		IsPopular:      true,
		Rating:         4.7,
		TotalSeats:     90,
		SeatsAvailable: 12,
	},
	{
		ID:             "sch-003",
		Name:           "Sunrise Public School",
		Board:          "CBSE",
		DistanceKm:     6.5,
		AnnualFee:      95000,
		IsPopular:      false,
		Rating:         4.1,
		TotalSeats:     200,
		SeatsAvailable: 85,
	},
	{
		ID:             "sch-004",
		Name:           "Delhi Model School",
		Board:          "CBSE",
		DistanceKm:     9.2,
		AnnualFee:      150000,
		IsPopular:      true,
		Rating:         4.5,
		TotalSeats:     150,
		SeatsAvailable: 8,
	},
	{
		ID:             "sch-005",
		Name:           "Cambridge World Academy",
		Board:          "IB",
		DistanceKm:     12.4,
		AnnualFee:      450000,
		IsPopular:      true,
		Rating:         4.8,
		TotalSeats:     80,
		SeatsAvailable: 15,
	},
	{
		ID:             "sch-006",
		Name:           "Little Flowers Convent",
		Board:          "ICSE",
		DistanceKm:     3.3,
		AnnualFee:      130000,
		IsPopular:      false,
		Rating:         4.2,
		TotalSeats:     110,
		SeatsAvailable: 40,
	},
	{
		ID:             "sch-007",
		Name:           "National Academy of Excellence",
		Board:          "State Board",
		DistanceKm:     1.8,
		AnnualFee:      60000,
		IsPopular:      false,
		Rating:         3.9,
		TotalSeats:     240,
		SeatsAvailable: 102,
	},
	{
		ID:             "sch-008",
		Name:           "Heritage Valley School",
		Board:          "CBSE",
		DistanceKm:     7.7,
		AnnualFee:      280000,
		IsPopular:      true,
		Rating:         4.4,
		TotalSeats:     100,
		SeatsAvailable: 22,
	},
}

// NewStatic returns the built-in seed catalog.
func NewStatic() *Catalog {
	c, err := New(staticSchools)
	if err != nil {
		// seed data is compile-time constant; a failure here is a bug
		panic(err)
	}
	return c
}

// internal/catalog/catalog.go
package catalog

import "fmt"

// SchoolRecord is one school in the reference catalog. Records are read-only
// once loaded; the matching engine never mutates them.
type SchoolRecord struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Board          string  `json:"board"`
	DistanceKm     float64 `json:"distanceKm"`
	AnnualFee      int     `json:"annualFee"`
	IsPopular      bool    `json:"isPopular"`
	Rating         float64 `json:"rating"`
	TotalSeats     int     `json:"totalSeats"`
	SeatsAvailable int     `json:"seatsAvailable"`
}

// Catalog is an immutable, ordered collection of school records. Iteration
// order is the load order and is stable across calls; ranking relies on that
// for tie-breaking.
type Catalog struct {
	schools []SchoolRecord
	byID    map[string]int
}

// New builds a catalog from records, preserving their order. Duplicate ids
// are rejected.
func New(records []SchoolRecord) (*Catalog, error) {
	c := &Catalog{
		schools: make([]SchoolRecord, len(records)),
		byID:    make(map[string]int, len(records)),
	}
	copy(c.schools, records)
	for i, r := range c.schools {
		if r.ID == "" {
			return nil, fmt.Errorf("school at position %d has empty id", i)
		}
		if _, exists := c.byID[r.ID]; exists {
			return nil, fmt.Errorf("duplicate school id %q", r.ID)
		}
		c.byID[r.ID] = i
	}
	return c, nil
}

// Schools returns the records in stable catalog order. The returned slice is
// a copy; callers may not reach the catalog's backing storage.
func (c *Catalog) Schools() []SchoolRecord {
	out := make([]SchoolRecord, len(c.schools))
	copy(out, c.schools)
	return out
}

// ByID looks a school up by id.
func (c *Catalog) ByID(id string) (SchoolRecord, bool) {
	i, ok := c.byID[id]
	if !ok {
		return SchoolRecord{}, false
	}
	return c.schools[i], true
}

// Len returns the number of schools in the catalog.
func (c *Catalog) Len() int {
	return len(c.schools)
}

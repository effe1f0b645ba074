// internal/workers/documents/list-required-documents/config.go
package listrequireddocuments

import (
	"time"

	"admission-workers/internal/models"
)

type Config struct {
	Checklist []ChecklistEntry
	Timeout   time.Duration
}

// ChecklistEntry describes one document slot in the admission checklist.
type ChecklistEntry struct {
	Type        models.DocumentType `json:"type"`
	Label       string              `json:"label"`
	Required    bool                `json:"required"`
	Description string              `json:"description"`
	// FromClass restricts the entry to admissions at or above a class with
	// this typical entry age; 0 means the entry always applies.
	FromClassAge float64 `json:"-"`
}

func LoadConfig() *Config {
	return &Config{
		Checklist: defaultChecklist(),
		Timeout:   10 * time.Second,
	}
}

func defaultChecklist() []ChecklistEntry {
	return []ChecklistEntry{
		{
			Type:        models.DocPhoto,
			Label:       "Passport Photo",
			Required:    true,
			Description: "Recent passport-size photograph of the child",
		},
		{
			Type:        models.DocParentID,
			Label:       "Parent ID Proof",
			Required:    true,
			Description: "Government-issued identity proof of a parent or guardian",
		},
		{
			Type:        models.DocBirthCertificate,
			Label:       "Birth Certificate",
			Required:    true,
			Description: "Municipal birth certificate of the child",
		},
		{
			Type:         models.DocTransferCertificate,
			Label:        "Transfer Certificate",
			Required:     false,
			Description:  "Transfer certificate from the previous school, needed from Class 1 onwards",
			FromClassAge: 6,
		},
		{
			Type:         models.DocMarksheet,
			Label:        "Previous Marksheet",
			Required:     false,
			Description:  "Latest report card or marksheet, needed from Class 1 onwards",
			FromClassAge: 6,
		},
		{
			Type:        models.DocAddressProof,
			Label:       "Address Proof",
			Required:    false,
			Description: "Utility bill or rental agreement showing the current address",
		},
	}
}

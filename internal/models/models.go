// internal/models/models.go
package models

import "time"

// AcademicLevel grades the child's current academic standing.
type AcademicLevel string

const (
	AcademicBelowAverage AcademicLevel = "Below Average"
	AcademicAverage      AcademicLevel = "Average"
	AcademicAboveAverage AcademicLevel = "Above Average"
	AcademicExcellent    AcademicLevel = "Excellent"
)

// Budget is the parent's annual fee range in rupees.
type Budget struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// ChildProfile carries everything the matching engine knows about a child.
// The engine never mutates a profile.
type ChildProfile struct {
	ID             string        `json:"id,omitempty"`
	Name           string        `json:"name"`
	Age            float64       `json:"age"`
	DateOfBirth    string        `json:"dateOfBirth,omitempty"` // ISO 2006-01-02
	TargetClass    string        `json:"targetClass"`
	PreferredBoard string        `json:"preferredBoard"`
	Location       string        `json:"location,omitempty"`
	Address        string        `json:"address,omitempty"`
	PreviousSchool string        `json:"previousSchool,omitempty"`
	MaxDistanceKm  float64       `json:"maxDistanceKm"`
	Budget         Budget        `json:"budget"`
	AcademicLevel  AcademicLevel `json:"academicLevel"`
}

// Verdict labels how a single factor contributed to a match score.
type Verdict string

const (
	VerdictPositive Verdict = "positive"
	VerdictNeutral  Verdict = "neutral"
	VerdictNegative Verdict = "negative"
)

// MatchFactor is one explainable component of a school match.
type MatchFactor struct {
	Name    string  `json:"name"`
	Verdict Verdict `json:"verdict"`
	Detail  string  `json:"detail"`
}

// Chance buckets a match score for display.
type Chance string

const (
	ChanceHigh   Chance = "High"
	ChanceMedium Chance = "Medium"
	ChanceLow    Chance = "Low"
)

// SchoolMatch is the scored outcome for one school.
type SchoolMatch struct {
	SchoolID   string        `json:"schoolId"`
	SchoolName string        `json:"schoolName"`
	Score      int           `json:"score"`
	Chance     Chance        `json:"chance"`
	Factors    []MatchFactor `json:"factors"`
}

// DocumentType enumerates the uploads an application can carry.
type DocumentType string

const (
	DocPhoto               DocumentType = "photo"
	DocParentID            DocumentType = "parent_id"
	DocBirthCertificate    DocumentType = "birth_certificate"
	DocTransferCertificate DocumentType = "transfer_certificate"
	DocMarksheet           DocumentType = "marksheet"
	DocAddressProof        DocumentType = "address_proof"
)

// AllDocumentTypes lists the supported types in checklist order.
var AllDocumentTypes = []DocumentType{
	DocPhoto,
	DocParentID,
	DocBirthCertificate,
	DocTransferCertificate,
	DocMarksheet,
	DocAddressProof,
}

// IsValidDocumentType reports whether t is a supported document type.
func IsValidDocumentType(t DocumentType) bool {
	for _, dt := range AllDocumentTypes {
		if dt == t {
			return true
		}
	}
	return false
}

// DocumentStatus tracks a single upload through verification.
type DocumentStatus string

const (
	DocStatusPending  DocumentStatus = "pending"
	DocStatusVerified DocumentStatus = "verified"
	DocStatusMismatch DocumentStatus = "mismatch"
	DocStatusRejected DocumentStatus = "rejected"
)

// ExtractedDocData is what OCR pulled out of one document. Fields are sparse;
// a zero value means the document did not carry that field.
type ExtractedDocData struct {
	ChildName      string            `json:"childName,omitempty"`
	DateOfBirth    string            `json:"dateOfBirth,omitempty"`
	Address        string            `json:"address,omitempty"`
	PreviousSchool string            `json:"previousSchool,omitempty"`
	Grades         map[string]string `json:"grades,omitempty"`
}

// DocumentUpload is one uploaded document plus its verification state.
// Re-uploading the same type replaces the previous upload.
type DocumentUpload struct {
	ID              string            `json:"id"`
	Type            DocumentType      `json:"type"`
	FileName        string            `json:"fileName"`
	UploadedAt      time.Time         `json:"uploadedAt"`
	Status          DocumentStatus    `json:"status"`
	ExtractedData   *ExtractedDocData `json:"extractedData,omitempty"`
	MismatchDetails string            `json:"mismatchDetails,omitempty"`
}

// ApplicationStatus is the lifecycle state of an admission application.
// Transitions are driven by the admissions backend, not by this engine.
type ApplicationStatus string

const (
	StatusDraft              ApplicationStatus = "draft"
	StatusDocumentsPending   ApplicationStatus = "documents_pending"
	StatusUnderReview        ApplicationStatus = "under_review"
	StatusShortlisted        ApplicationStatus = "shortlisted"
	StatusInterviewScheduled ApplicationStatus = "interview_scheduled"
	StatusAccepted           ApplicationStatus = "accepted"
	StatusWaitlisted         ApplicationStatus = "waitlisted"
	StatusRejected           ApplicationStatus = "rejected"
)

// AllApplicationStatuses lists the lifecycle states in progression order.
var AllApplicationStatuses = []ApplicationStatus{
	StatusDraft,
	StatusDocumentsPending,
	StatusUnderReview,
	StatusShortlisted,
	StatusInterviewScheduled,
	StatusAccepted,
	StatusWaitlisted,
	StatusRejected,
}

// IsValidApplicationStatus reports whether s is a known lifecycle state.
func IsValidApplicationStatus(s ApplicationStatus) bool {
	for _, st := range AllApplicationStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// TimelineState marks where a milestone sits relative to the current status.
type TimelineState string

const (
	TimelineCompleted TimelineState = "completed"
	TimelineCurrent   TimelineState = "current"
	TimelineUpcoming  TimelineState = "upcoming"
)

// TimelineEvent is one of the five fixed application milestones.
type TimelineEvent struct {
	ID          string        `json:"id"`
	Date        time.Time     `json:"date"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	State       TimelineState `json:"state"`
}

// ApplicationData is the full admission application record.
type ApplicationData struct {
	ID        string            `json:"id"`
	Child     ChildProfile      `json:"child"`
	SchoolIDs []string          `json:"schoolIds"`
	Documents []DocumentUpload  `json:"documents"`
	Status    ApplicationStatus `json:"status"`
	Timeline  []TimelineEvent   `json:"timeline,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

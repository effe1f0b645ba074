// internal/workers/application/send-status-notification/narration.go
package sendstatusnotification

import (
	"fmt"
	"math/rand"

	"admission-workers/internal/models"
)

// statusNarrations holds the canned update variants for each lifecycle
// state. Variants interpolate the school name through %s.
var statusNarrations = map[models.ApplicationStatus][]string{
	models.StatusDraft: {
		"Your application to %s has been saved as a draft. Complete it whenever you are ready.",
		"Draft saved. Finish your application to %s to start the admission process.",
	},
	models.StatusDocumentsPending: {
		"A few documents are still pending for your application to %s. Upload them to move forward.",
		"Your application to %s is waiting on documents before the school can review it.",
		"Almost there. %s needs your remaining documents to begin the review.",
	},
	models.StatusUnderReview: {
		"Good news! %s has started reviewing your application.",
		"Your application is now under review at %s. We will keep you posted.",
	},
	models.StatusShortlisted: {
		"Congratulations! %s has shortlisted your application.",
		"Your child has been shortlisted by %s. An interview invitation may follow soon.",
		"Great progress! Your application made the shortlist at %s.",
	},
	models.StatusInterviewScheduled: {
		"An interview has been scheduled at %s. Check your application for date and time.",
		"%s has scheduled an interview for your child. Best of luck!",
	},
	models.StatusAccepted: {
		"Congratulations! %s has offered your child admission.",
		"Wonderful news! Your application to %s has been accepted.",
		"Admission confirmed at %s. Welcome aboard!",
	},
	models.StatusWaitlisted: {
		"Your application at %s is on the waitlist. We will notify you the moment a seat opens up.",
		"%s has placed your application on the waitlist. Seats sometimes open late in the cycle.",
	},
	models.StatusRejected: {
		"We are sorry. %s was unable to offer admission this time.",
		"Your application to %s was not successful. Plenty of other great schools are still accepting applications.",
	},
}

const fallbackSchoolName = "the school"

// GenerateStatusUpdate returns a short human-readable narration for the
// status, picked uniformly at random from the variants for that status.
// It never fails; unknown statuses get a generic update and an empty
// school name falls back to a neutral phrase.
func GenerateStatusUpdate(status models.ApplicationStatus, schoolName string, rng *rand.Rand) string {
	if schoolName == "" {
		schoolName = fallbackSchoolName
	}
	variants, ok := statusNarrations[status]
	if !ok {
		return fmt.Sprintf("Your application at %s has been updated to %q.", schoolName, string(status))
	}
	return fmt.Sprintf(variants[rng.Intn(len(variants))], schoolName)
}

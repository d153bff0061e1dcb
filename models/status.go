package models

// Incident statuses. Older backend rows still carry the legacy values
// "created" and "assigned"; CanonicalStatus folds them onto the canonical
// five before any comparison or counting.
const (
	StatusPending   = "pending"
	StatusStarted   = "started"
	StatusOnAir     = "onair"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

const (
	statusCreatedAlias  = "created"
	statusAssignedAlias = "assigned"
)

// CanonicalStatus folds legacy alias statuses onto their canonical value.
// Unknown values are returned unchanged.
func CanonicalStatus(status string) string {
	switch status {
	case statusCreatedAlias:
		return StatusPending
	case statusAssignedAlias:
		return StatusStarted
	default:
		return status
	}
}

// ValidStatus reports whether status folds onto one of the five canonical
// values.
func ValidStatus(status string) bool {
	switch CanonicalStatus(status) {
	case StatusPending, StatusStarted, StatusOnAir, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

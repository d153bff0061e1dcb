// Package dashboard derives the dashboard counters and the notification
// badge from the session collections. Both projections are pure and are
// recomputed from scratch after every mutation rather than patched
// incrementally, so they can never drift from the collection.
package dashboard

import "github.com/shomrim/patrol-cad-client/models"

// Recompute classifies every incident into its status bucket (with legacy
// alias folding) and counts the open invitations for the named user: the
// incidents where they are invited but not yet assigned.
func Recompute(incidents []models.Incident, userName string) models.Counts {
	var counts models.Counts
	for i := range incidents {
		switch models.CanonicalStatus(incidents[i].Status) {
		case models.StatusOnAir:
			counts.OnAir++
		case models.StatusPending:
			counts.Pending++
		case models.StatusStarted:
			counts.Started++
		case models.StatusCompleted:
			counts.Completed++
		case models.StatusCancelled:
			counts.Cancelled++
		}
	}
	for i := range incidents {
		if incidents[i].IsInvited(userName) && !incidents[i].IsAssigned(userName) {
			counts.Invitation++
		}
	}
	return counts
}

// UnreadCount returns the number of notifications not yet read.
func UnreadCount(notifications []models.Notification) int {
	n := 0
	for i := range notifications {
		if !notifications[i].Read {
			n++
		}
	}
	return n
}

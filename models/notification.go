package models

import "time"

// Notification types emitted by lifecycle events.
const (
	NotificationIncidentCreated    = "incident_created"
	NotificationIncidentStarted    = "incident_started"
	NotificationIncidentCompleted  = "incident_completed"
	NotificationIncidentCancelled  = "incident_cancelled"
	NotificationUpdate             = "update"
	NotificationUserAssigned       = "user_assigned"
	NotificationInvitationAccepted = "invitation_accepted"
	NotificationInvitationDeclined = "invitation_declined"
)

// Notification holds one entry of the in-app notification feed. Entries are
// only ever mutated to flip Read and are removed in bulk, never one at a
// time.
type Notification struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	IncidentID string    `json:"incidentId,omitempty"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"createdAt"`
}

package lifecycle

import "github.com/shomrim/patrol-cad-client/models"

// Action names the operations a user can trigger on an incident.
type Action string

const (
	ActionStart    Action = "start"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
	ActionReopen   Action = "reopen"
	ActionAssign   Action = "assign"
	ActionAccept   Action = "accept"
	ActionDecline  Action = "decline"
)

// AvailableActions lists the actions the named user may trigger on the
// incident. Accept/decline come first when the user holds an unresolved
// invitation; the status actions stay available alongside them.
func AvailableActions(incident *models.Incident, userName string) []Action {
	var actions []Action
	if incident.IsInvited(userName) {
		actions = append(actions, ActionAccept, ActionDecline)
	}
	switch models.CanonicalStatus(incident.Status) {
	case models.StatusPending, models.StatusStarted:
		actions = append(actions, ActionStart, ActionComplete, ActionCancel, ActionAssign)
	case models.StatusCompleted, models.StatusCancelled:
		actions = append(actions, ActionReopen)
	default:
		actions = append(actions, ActionAssign)
	}
	return actions
}

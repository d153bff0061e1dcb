// Package lifecycle applies the incident status state machine: start,
// complete, cancel, reopen, plus assignment and invitation handling. Every
// transition lands status, history and its notification together in the
// store before the backend sync is attempted; a failed sync leaves the
// transition committed locally and queued for re-sync.
package lifecycle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shomrim/patrol-cad-client/models"
	"github.com/shomrim/patrol-cad-client/store"
)

const cancelReasonMinWords = 10

// Engine drives lifecycle transitions for the session user.
type Engine struct {
	store *store.Store
}

// New creates an engine over the session's incident store.
func New(s *store.Store) *Engine {
	return &Engine{store: s}
}

// Start moves a pending incident to started.
func (e *Engine) Start(ctx context.Context, id string, confirmed bool) (*models.Incident, error) {
	return e.transition(ctx, id, confirmed, transitionSpec{
		from:     []string{models.StatusPending, models.StatusStarted},
		to:       models.StatusStarted,
		action:   "Started",
		notify:   models.NotificationIncidentStarted,
		title:    "Incident Started",
		template: "Incident %s has been started",
	})
}

// Complete moves a pending or started incident to completed.
func (e *Engine) Complete(ctx context.Context, id string, confirmed bool) (*models.Incident, error) {
	return e.transition(ctx, id, confirmed, transitionSpec{
		from:     []string{models.StatusPending, models.StatusStarted},
		to:       models.StatusCompleted,
		action:   "Completed",
		notify:   models.NotificationIncidentCompleted,
		title:    "Incident Completed",
		template: "Incident %s has been completed",
	})
}

// Cancel moves a pending or started incident to cancelled. The reason is
// recorded as a note and must carry at least ten words; anything shorter is
// rejected before any state changes.
func (e *Engine) Cancel(ctx context.Context, id, reason string) (*models.Incident, error) {
	if len(strings.Fields(reason)) < cancelReasonMinWords {
		return nil, &models.ValidationError{
			Field:  "reason",
			Reason: fmt.Sprintf("cancellation reason must be at least %d words", cancelReasonMinWords),
		}
	}
	incident, err := e.guarded(id, models.StatusPending, models.StatusStarted)
	if err != nil {
		return nil, err
	}

	actor := e.store.User().Name
	incident.Notes = append(incident.Notes, models.Note{
		ID:        uuid.New().String(),
		Text:      "Cancellation Reason: " + reason,
		CreatedBy: actor,
		CreatedAt: time.Now().UTC(),
	})
	incident.Status = models.StatusCancelled
	incident.AppendHistory("Cancelled", actor)
	n := notification(models.NotificationIncidentCancelled, "Incident Cancelled",
		fmt.Sprintf("Incident %s has been cancelled", incident.Shcad), incident.ID)
	return e.store.Apply(ctx, incident, n)
}

// Reopen escapes a completed or cancelled incident back to pending.
func (e *Engine) Reopen(ctx context.Context, id string, confirmed bool) (*models.Incident, error) {
	return e.transition(ctx, id, confirmed, transitionSpec{
		from:     []string{models.StatusCompleted, models.StatusCancelled},
		to:       models.StatusPending,
		action:   "Reopened",
		notify:   models.NotificationUpdate,
		title:    "Incident Reopened",
		template: "Incident %s has been reopened",
	})
}

// Assign commits another member to the incident. The target must be
// available and not already assigned; the status is untouched.
func (e *Engine) Assign(ctx context.Context, id string, target models.User) (*models.Incident, error) {
	if target.Status != models.AvailabilityAvailable {
		return nil, &models.ValidationError{Field: "user", Reason: target.Name + " is not available"}
	}
	incident, err := e.store.Get(id)
	if err != nil {
		return nil, err
	}
	if incident.IsAssigned(target.Name) {
		return nil, &models.ValidationError{Field: "user", Reason: target.Name + " is already assigned"}
	}

	incident.AssignedUsers = append(incident.AssignedUsers, target.Name)
	incident.AppendHistory("Assigned to "+target.Name, e.store.User().Name)
	n := notification(models.NotificationUserAssigned, "User Assigned",
		fmt.Sprintf("%s has been assigned to incident %s", target.Name, incident.Shcad), incident.ID)
	return e.store.Apply(ctx, incident, n)
}

// Accept resolves the session user's invitation by moving them from
// invitedUsers to assignedUsers. The two sets never hold the same user once
// this returns.
func (e *Engine) Accept(ctx context.Context, id string, confirmed bool) (*models.Incident, error) {
	if !confirmed {
		return nil, &models.ValidationError{Field: "confirmation", Reason: "accept requires explicit confirmation"}
	}
	actor := e.store.User().Name
	incident, err := e.invited(id, actor)
	if err != nil {
		return nil, err
	}

	incident.InvitedUsers = removeString(incident.InvitedUsers, actor)
	if !incident.IsAssigned(actor) {
		incident.AssignedUsers = append(incident.AssignedUsers, actor)
	}
	incident.AppendHistory("Request Accepted", actor)
	n := notification(models.NotificationInvitationAccepted, "Request Accepted",
		fmt.Sprintf("You have accepted incident %s", incident.Shcad), incident.ID)
	return e.store.Apply(ctx, incident, n)
}

// Decline resolves the session user's invitation by dropping it.
func (e *Engine) Decline(ctx context.Context, id string, confirmed bool) (*models.Incident, error) {
	if !confirmed {
		return nil, &models.ValidationError{Field: "confirmation", Reason: "decline requires explicit confirmation"}
	}
	actor := e.store.User().Name
	incident, err := e.invited(id, actor)
	if err != nil {
		return nil, err
	}

	incident.InvitedUsers = removeString(incident.InvitedUsers, actor)
	incident.AppendHistory("Request Declined", actor)
	n := notification(models.NotificationInvitationDeclined, "Request Declined",
		fmt.Sprintf("You have declined incident %s", incident.Shcad), incident.ID)
	return e.store.Apply(ctx, incident, n)
}

type transitionSpec struct {
	from     []string
	to       string
	action   string
	notify   string
	title    string
	template string
}

func (e *Engine) transition(ctx context.Context, id string, confirmed bool, spec transitionSpec) (*models.Incident, error) {
	if !confirmed {
		return nil, &models.ValidationError{Field: "confirmation", Reason: strings.ToLower(spec.action) + " requires explicit confirmation"}
	}
	incident, err := e.guarded(id, spec.from...)
	if err != nil {
		return nil, err
	}

	incident.Status = spec.to
	incident.AppendHistory(spec.action, e.store.User().Name)
	n := notification(spec.notify, spec.title, fmt.Sprintf(spec.template, incident.Shcad), incident.ID)
	return e.store.Apply(ctx, incident, n)
}

// guarded fetches a staged copy of the incident and checks its folded status
// against the transition's allowed sources.
func (e *Engine) guarded(id string, from ...string) (*models.Incident, error) {
	incident, err := e.store.Get(id)
	if err != nil {
		return nil, err
	}
	status := models.CanonicalStatus(incident.Status)
	for _, allowed := range from {
		if status == allowed {
			return incident, nil
		}
	}
	return nil, &models.ValidationError{Field: "status", Reason: "transition not allowed from " + incident.Status}
}

func (e *Engine) invited(id, actor string) (*models.Incident, error) {
	incident, err := e.store.Get(id)
	if err != nil {
		return nil, err
	}
	if !incident.IsInvited(actor) {
		return nil, &models.ValidationError{Field: "user", Reason: actor + " is not invited to this incident"}
	}
	return incident, nil
}

func notification(typ, title, message, incidentID string) *models.Notification {
	return &models.Notification{Type: typ, Title: title, Message: message, IncidentID: incidentID}
}

func removeString(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}

package backend

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/shomrim/patrol-cad-client/models"
)

// go generate: mockery --name IncidentAPI

// IncidentAPI contains the incident endpoints of the backend collaborator.
type IncidentAPI interface {
	ListIncidents(ctx context.Context, userPhone string) ([]models.Incident, error)
	GetIncident(ctx context.Context, id string) (*models.Incident, error)
	CreateIncident(ctx context.Context, incident *models.Incident) error
	UpdateIncident(ctx context.Context, incident *models.Incident) (*models.Incident, error)
}

type createIncidentResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Error   string `json:"error"`
}

// ListIncidents returns the incidents visible to a user, newest first.
func (c *Client) ListIncidents(ctx context.Context, userPhone string) ([]models.Incident, error) {
	var incidents []models.Incident
	q := url.Values{"user_phone": {userPhone}}
	if err := c.get(ctx, "list incidents", "/api/incidents", q, &incidents); err != nil {
		return nil, err
	}
	return incidents, nil
}

// GetIncident returns a single incident or a NotFoundError.
func (c *Client) GetIncident(ctx context.Context, id string) (*models.Incident, error) {
	incident := &models.Incident{}
	if err := c.get(ctx, "get incident", "/api/incidents/"+url.PathEscape(id), nil, incident); err != nil {
		return nil, err
	}
	return incident, nil
}

// CreateIncident sends a fully-populated incident to the backend. A response
// with success=false is treated the same as a transport failure: the caller
// must not keep any local state for the incident.
func (c *Client) CreateIncident(ctx context.Context, incident *models.Incident) error {
	var resp createIncidentResponse
	if err := c.send(ctx, "create incident", http.MethodPost, "/api/incidents", incident, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return &models.TransportError{Op: "create incident", Err: errors.New(resp.Error)}
	}
	return nil
}

// UpdateIncident pushes a full incident snapshot and returns the backend's
// copy.
func (c *Client) UpdateIncident(ctx context.Context, incident *models.Incident) (*models.Incident, error) {
	updated := &models.Incident{}
	err := c.send(ctx, "update incident", http.MethodPut, "/api/incidents/"+url.PathEscape(incident.ID), incident, updated)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

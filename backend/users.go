package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shomrim/patrol-cad-client/models"
)

// go generate: mockery --name UserAPI

// UserAPI contains the user and roster endpoints of the backend collaborator.
type UserAPI interface {
	GetUser(ctx context.Context, phone string) (*models.User, error)
	SaveUser(ctx context.Context, user *models.User) error
	UsersOnDuty(ctx context.Context) ([]models.User, error)
	UsersOnPatrol(ctx context.Context) ([]models.User, error)
	UsersByRole(ctx context.Context, role string) ([]models.User, error)
	SetDutyStatus(ctx context.Context, phone string, onDuty bool) error
	SetPatrolStatus(ctx context.Context, phone string, onPatrol bool) error
}

type statusResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// GetUser returns the member record for a phone number.
func (c *Client) GetUser(ctx context.Context, phone string) (*models.User, error) {
	user := &models.User{}
	if err := c.get(ctx, "get user", "/api/users/"+url.PathEscape(phone), nil, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SaveUser creates or updates a member profile.
func (c *Client) SaveUser(ctx context.Context, user *models.User) error {
	var resp statusResponse
	return c.send(ctx, "save user", http.MethodPost, "/api/users", user, &resp)
}

// UsersOnDuty returns the members currently on duty.
func (c *Client) UsersOnDuty(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.get(ctx, "list on-duty users", "/api/users/on-duty", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UsersOnPatrol returns the members currently on patrol.
func (c *Client) UsersOnPatrol(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.get(ctx, "list on-patrol users", "/api/users/on-patrol", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UsersByRole returns the members holding the given role.
func (c *Client) UsersByRole(ctx context.Context, role string) ([]models.User, error) {
	var users []models.User
	if err := c.get(ctx, "list users by role", "/api/users/by-role/"+url.PathEscape(role), nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SetDutyStatus flips the on-duty flag for a member.
func (c *Client) SetDutyStatus(ctx context.Context, phone string, onDuty bool) error {
	body := map[string]bool{"on_duty": onDuty}
	var resp statusResponse
	return c.send(ctx, "set duty status", http.MethodPut, "/api/users/"+url.PathEscape(phone)+"/duty-status", body, &resp)
}

// SetPatrolStatus flips the on-patrol flag for a member.
func (c *Client) SetPatrolStatus(ctx context.Context, phone string, onPatrol bool) error {
	body := map[string]bool{"on_patrol": onPatrol}
	var resp statusResponse
	return c.send(ctx, "set patrol status", http.MethodPut, "/api/users/"+url.PathEscape(phone)+"/patrol-status", body, &resp)
}

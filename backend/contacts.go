package backend

import (
	"context"
	"net/http"
	"strconv"

	"github.com/shomrim/patrol-cad-client/models"
)

// go generate: mockery --name ContactAPI

// ContactAPI contains the shared contact directory endpoints.
type ContactAPI interface {
	ListContacts(ctx context.Context) ([]models.Contact, error)
	CreateContact(ctx context.Context, contact *models.Contact) error
	DeleteContact(ctx context.Context, id int) error
}

// ListContacts returns the shared contact directory.
func (c *Client) ListContacts(ctx context.Context) ([]models.Contact, error) {
	var contacts []models.Contact
	if err := c.get(ctx, "list contacts", "/api/contacts", nil, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

// CreateContact adds a directory entry.
func (c *Client) CreateContact(ctx context.Context, contact *models.Contact) error {
	var resp statusResponse
	return c.send(ctx, "create contact", http.MethodPost, "/api/contacts", contact, &resp)
}

// DeleteContact removes a directory entry.
func (c *Client) DeleteContact(ctx context.Context, id int) error {
	return c.send(ctx, "delete contact", http.MethodDelete, "/api/contacts/"+strconv.Itoa(id), nil, nil)
}

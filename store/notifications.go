package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/shomrim/patrol-cad-client/cache"
	"github.com/shomrim/patrol-cad-client/models"
)

// Notifications returns a snapshot of the feed, newest first.
func (s *Store) Notifications() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Notification(nil), s.notifications...)
}

// Emit prepends a notification to the feed and mirrors it locally.
func (s *Store) Emit(n *models.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emitLocked(n)
	s.persistLocked()
}

// MarkRead flips the read flag on one notification. Unknown ids are a no-op.
func (s *Store) MarkRead(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			break
		}
	}
	s.persistLocked()
}

// ClearNotifications empties the feed. Notifications are only ever removed
// in bulk.
func (s *Store) ClearNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = nil
	s.persistLocked()
}

func (s *Store) emitLocked(n *models.Notification) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	s.notifications = append([]models.Notification{*n}, s.notifications...)
}

// Contacts returns a snapshot of the contact directory mirror.
func (s *Store) Contacts() []models.Contact {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Contact(nil), s.contacts...)
}

// ReplaceContacts swaps the contact mirror for a fresh server copy.
func (s *Store) ReplaceContacts(contacts []models.Contact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts = contacts
	s.persistLocked()
}

// CachedContacts reads the contact directory straight from the cache, for
// use when the backend is unreachable.
func (s *Store) CachedContacts() []models.Contact {
	var contacts []models.Contact
	if s.cache != nil {
		s.cache.Get(cache.KeyContacts, &contacts)
	}
	return contacts
}

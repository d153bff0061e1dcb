package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shomrim/patrol-cad-client/backend"
	"github.com/shomrim/patrol-cad-client/cache"
	"github.com/shomrim/patrol-cad-client/models"
)

// Store owns the in-memory incident, contact and notification collections
// for one session. The backend owns the durable copy; the local cache is a
// disposable fallback mirror that is never merged with server data.
type Store struct {
	mu    sync.Mutex
	api   backend.IncidentAPI
	cache *cache.Cache
	user  models.User

	incidents     []models.Incident
	contacts      []models.Contact
	notifications []models.Notification
	pending       map[string]bool

	validate *validator.Validate
}

// New creates a store bound to the session user and restores the offline
// mirrors, so the collections are readable before the first Load.
func New(api backend.IncidentAPI, c *cache.Cache, user models.User) *Store {
	s := &Store{
		api:      api,
		cache:    c,
		user:     user,
		pending:  map[string]bool{},
		validate: newValidator(),
	}
	if c != nil {
		c.Get(cache.KeyIncidents, &s.incidents)
		c.Get(cache.KeyContacts, &s.contacts)
		c.Get(cache.KeyNotifications, &s.notifications)
		c.Get(cache.KeyPendingSync, &s.pending)
		if s.pending == nil {
			s.pending = map[string]bool{}
		}
	}
	return s
}

func newValidator() *validator.Validate {
	v := validator.New()
	// minwords=N rejects free text with fewer than N whitespace-delimited
	// words. Used for incident descriptions.
	_ = v.RegisterValidation("minwords", func(fl validator.FieldLevel) bool {
		min, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(strings.Fields(fl.Field().String())) >= min
	})
	return v
}

// User returns the identity the store is bound to.
func (s *Store) User() models.User {
	return s.user
}

// Incidents returns a snapshot of the collection, newest first.
func (s *Store) Incidents() []models.Incident {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Incident(nil), s.incidents...)
}

// Get returns a copy of one incident, or a NotFoundError.
func (s *Store) Get(id string) (*models.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.incidents {
		if s.incidents[i].ID == id {
			return s.incidents[i].Clone(), nil
		}
	}
	return nil, &models.NotFoundError{Kind: "incident", ID: id}
}

// Load fetches the incidents visible to the session user and replaces the
// whole collection. On a transport failure it falls back to the last cached
// collection; stale cache and partial server data are never merged.
func (s *Store) Load(ctx context.Context) ([]models.Incident, error) {
	incidents, err := s.api.ListIncidents(ctx, s.user.Phone)
	if err != nil {
		var te *models.TransportError
		if !errors.As(err, &te) {
			return nil, err
		}
		zap.S().Warnw("backend unreachable, serving cached incidents",
			"error", err,
		)
		s.mu.Lock()
		defer s.mu.Unlock()
		s.incidents = nil
		if s.cache != nil {
			s.cache.Get(cache.KeyIncidents, &s.incidents)
		}
		return append([]models.Incident(nil), s.incidents...), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.incidents = incidents
	s.persistLocked()
	return append([]models.Incident(nil), s.incidents...), nil
}

// Create validates and sends a new incident to the backend. Only on success
// is it prepended to the in-memory collection and mirrored locally; a failed
// create leaves no partial state behind.
func (s *Store) Create(ctx context.Context, incident *models.Incident) (*models.Incident, error) {
	s.fillDefaults(incident)
	if err := s.validateIncident(incident); err != nil {
		return nil, err
	}

	if err := s.api.CreateIncident(ctx, incident); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.incidents = append([]models.Incident{*incident}, s.incidents...)
	s.emitLocked(&models.Notification{
		Type:       models.NotificationIncidentCreated,
		Title:      "Incident Created",
		Message:    fmt.Sprintf("Incident %s has been created", incident.Shcad),
		IncidentID: incident.ID,
	})
	s.persistLocked()
	s.mu.Unlock()

	return incident.Clone(), nil
}

// Update commits the caller's full incident snapshot into the collection and
// pushes it to the backend. A transport failure does not roll the local
// commit back; the incident is flagged pending-sync and re-pushed by
// FlushPending.
func (s *Store) Update(ctx context.Context, incident *models.Incident) (*models.Incident, error) {
	return s.Apply(ctx, incident, nil)
}

// Apply is Update plus an optional notification emitted in the same critical
// section, so a lifecycle transition lands status, history and notification
// together before the sync is attempted.
func (s *Store) Apply(ctx context.Context, incident *models.Incident, n *models.Notification) (*models.Incident, error) {
	s.mu.Lock()
	idx := s.indexLocked(incident.ID)
	if idx < 0 {
		s.mu.Unlock()
		return nil, &models.NotFoundError{Kind: "incident", ID: incident.ID}
	}
	incident.UpdatedAt = time.Now().UTC()
	s.incidents[idx] = *incident
	if n != nil {
		s.emitLocked(n)
	}
	s.persistLocked()
	s.mu.Unlock()

	updated, err := s.api.UpdateIncident(ctx, incident)
	if err != nil {
		var te *models.TransportError
		if errors.As(err, &te) {
			s.markPending(incident.ID)
		}
		return incident.Clone(), err
	}

	s.mu.Lock()
	if idx := s.indexLocked(updated.ID); idx >= 0 {
		s.incidents[idx] = *updated
	}
	delete(s.pending, updated.ID)
	s.persistLocked()
	s.mu.Unlock()
	return updated.Clone(), nil
}

// AddNote appends a free-text note plus the matching audit entry and syncs
// the incident.
func (s *Store) AddNote(ctx context.Context, id, text string) (*models.Incident, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &models.ValidationError{Field: "note", Reason: "must not be empty"}
	}
	incident, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	incident.Notes = append(incident.Notes, models.Note{
		ID:        uuid.New().String(),
		Text:      text,
		CreatedBy: s.user.Name,
		CreatedAt: time.Now().UTC(),
	})
	incident.AppendHistory("Note Added", s.user.Name)
	return s.Update(ctx, incident)
}

// FlushPending re-pushes every incident whose last sync failed. Incidents
// that reach the backend drop out of the pending set; the rest stay queued.
func (s *Store) FlushPending(ctx context.Context) {
	s.mu.Lock()
	ids := make([]string, 0, len(s.pending))
	for id := range s.pending {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	for _, id := range ids {
		incident, err := s.Get(id)
		if err != nil {
			// The collection was replaced underneath a queued id.
			s.mu.Lock()
			delete(s.pending, id)
			s.mu.Unlock()
			continue
		}
		updated, err := s.api.UpdateIncident(ctx, incident)
		if err != nil {
			zap.S().Warnw("pending incident still not synced",
				"incident", id,
				"error", err,
			)
			continue
		}
		s.mu.Lock()
		if idx := s.indexLocked(updated.ID); idx >= 0 {
			s.incidents[idx] = *updated
		}
		delete(s.pending, id)
		s.mu.Unlock()
	}

	s.mu.Lock()
	s.persistLocked()
	s.mu.Unlock()
}

// PendingSync reports whether an incident is queued for re-sync.
func (s *Store) PendingSync(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending[id]
}

// PersistLocally mirrors all session collections to the cache. Failures are
// logged and never fatal: the mirror is best effort, atomic per key.
func (s *Store) PersistLocally() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persistLocked()
}

func (s *Store) markPending(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[id] = true
	s.persistLocked()
}

func (s *Store) indexLocked(id string) int {
	for i := range s.incidents {
		if s.incidents[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persistLocked() {
	if s.cache == nil {
		return
	}
	entries := map[string]interface{}{
		cache.KeyIncidents:     s.incidents,
		cache.KeyContacts:      s.contacts,
		cache.KeyNotifications: s.notifications,
		cache.KeyUser:          s.user,
		cache.KeyPendingSync:   s.pending,
	}
	for key, v := range entries {
		if err := s.cache.Put(key, v); err != nil {
			zap.S().Warnw("failed to mirror collection locally",
				"key", key,
				"error", err,
			)
		}
	}
}

func (s *Store) fillDefaults(incident *models.Incident) {
	now := time.Now().UTC()
	if incident.ID == "" {
		incident.ID = newIncidentID(now)
	}
	if incident.Shcad == "" {
		incident.Shcad = "SH-CAD " + strings.TrimPrefix(incident.ID, "CAD")
	}
	if incident.Status == "" {
		incident.Status = models.StatusPending
	}
	if len(incident.AssignedUsers) == 0 {
		incident.AssignedUsers = []string{s.user.Name}
	}
	if incident.CreatedBy == "" {
		incident.CreatedBy = s.user.Phone
	}
	if incident.CreatedAt.IsZero() {
		incident.CreatedAt = now
	}
	incident.UpdatedAt = now
	if len(incident.History) == 0 {
		incident.History = []models.HistoryEntry{{Action: "Created", User: s.user.Name, Timestamp: now}}
	}
}

func (s *Store) validateIncident(incident *models.Incident) error {
	if !models.ValidStatus(incident.Status) {
		return &models.ValidationError{Field: "status", Reason: "unknown status " + incident.Status}
	}
	if err := s.validate.Struct(incident); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return &models.ValidationError{
				Field:  first.Field(),
				Reason: "failed " + first.Tag() + " validation",
			}
		}
		return err
	}
	return nil
}

// newIncidentID keeps the reference format members already know from the
// dispatch sheets: CAD followed by the last six digits of the unix
// millisecond clock.
func newIncidentID(now time.Time) string {
	return fmt.Sprintf("CAD%06d", now.UnixMilli()%1000000)
}

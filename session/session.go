// Package session replaces the original app's global mutable state with an
// explicit object: it is initialized by the phone + OTP login (or restored
// from the offline mirror), carries the user identity every lifecycle
// operation runs under, and is torn down on logout.
package session

import (
	"context"
	"errors"
	"regexp"

	"go.uber.org/zap"

	"github.com/shomrim/patrol-cad-client/backend"
	"github.com/shomrim/patrol-cad-client/cache"
	"github.com/shomrim/patrol-cad-client/lifecycle"
	"github.com/shomrim/patrol-cad-client/models"
	"github.com/shomrim/patrol-cad-client/store"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// Manager drives login and logout. It holds the backend APIs and the cache
// shared by every session it creates.
type Manager struct {
	Auth      backend.AuthAPI
	Users     backend.UserAPI
	Incidents backend.IncidentAPI
	Contacts  backend.ContactAPI
	Cache     *cache.Cache
}

// Session is one logged-in member's view of the system.
type Session struct {
	m      *Manager
	user   models.User
	store  *store.Store
	engine *lifecycle.Engine
}

// RequestOTP starts the login flow by texting a one-time code to the phone.
func (m *Manager) RequestOTP(ctx context.Context, phone string) error {
	if !phonePattern.MatchString(phone) {
		return &models.ValidationError{Field: "phone", Reason: "not a valid phone number"}
	}
	return m.Auth.SendOTP(ctx, phone)
}

// Verify completes the login flow. Returning users get a session bound to
// their member record; a nil session with a nil error means the number
// verified but must register first (see Register).
func (m *Manager) Verify(ctx context.Context, phone, otp string) (*Session, error) {
	user, returning, err := m.Auth.VerifyOTP(ctx, phone, otp)
	if err != nil {
		return nil, err
	}
	if !returning || user == nil {
		return nil, nil
	}
	return m.begin(*user), nil
}

// Register creates the member profile for a freshly verified number and
// begins their session.
func (m *Manager) Register(ctx context.Context, user models.User) (*Session, error) {
	if user.Role == "" {
		user.Role = models.RoleMember
	}
	if err := m.Users.SaveUser(ctx, &user); err != nil {
		return nil, err
	}
	return m.begin(user), nil
}

// Restore rebuilds the session from the cached user record without a network
// round trip, so the app opens straight to the dashboard when offline.
func (m *Manager) Restore() (*Session, error) {
	var user models.User
	if m.Cache == nil || !m.Cache.Get(cache.KeyUser, &user) || user.Phone == "" {
		return nil, &models.NotFoundError{Kind: "cached session", ID: cache.KeyUser}
	}
	return m.begin(user), nil
}

func (m *Manager) begin(user models.User) *Session {
	s := store.New(m.Incidents, m.Cache, user)
	sess := &Session{
		m:      m,
		user:   user,
		store:  s,
		engine: lifecycle.New(s),
	}
	s.PersistLocally()
	zap.S().Infow("session started",
		"user", user.Name,
		"role", user.Role,
	)
	return sess
}

// End tears the session down: the cached identity and passcode are cleared,
// while the incident, contact and notification mirrors survive as offline
// data for the next login.
func (s *Session) End() {
	if s.m.Cache != nil {
		if err := s.m.Cache.Delete(cache.KeyUser); err != nil {
			zap.S().Warnw("failed to clear cached user", "error", err)
		}
		if err := s.m.Cache.Delete(cache.KeyPasscode); err != nil {
			zap.S().Warnw("failed to clear cached passcode", "error", err)
		}
	}
	zap.S().Infow("session ended", "user", s.user.Name)
}

// User returns the identity the session runs under.
func (s *Session) User() models.User { return s.user }

// Store returns the session's incident store.
func (s *Session) Store() *store.Store { return s.store }

// Engine returns the lifecycle engine bound to this session.
func (s *Session) Engine() *lifecycle.Engine { return s.engine }

// SetDutyStatus flips the member's on-duty flag on the backend and in the
// cached identity.
func (s *Session) SetDutyStatus(ctx context.Context, onDuty bool) error {
	if err := s.m.Users.SetDutyStatus(ctx, s.user.Phone, onDuty); err != nil {
		return err
	}
	s.user.OnDuty = onDuty
	s.persistUser()
	return nil
}

// SetPatrolStatus flips the member's on-patrol flag.
func (s *Session) SetPatrolStatus(ctx context.Context, onPatrol bool) error {
	if err := s.m.Users.SetPatrolStatus(ctx, s.user.Phone, onPatrol); err != nil {
		return err
	}
	s.user.OnPatrol = onPatrol
	s.persistUser()
	return nil
}

// OnDutyRoster returns the members currently on duty.
func (s *Session) OnDutyRoster(ctx context.Context) ([]models.User, error) {
	return s.m.Users.UsersOnDuty(ctx)
}

// OnPatrolRoster returns the members currently on patrol.
func (s *Session) OnPatrolRoster(ctx context.Context) ([]models.User, error) {
	return s.m.Users.UsersOnPatrol(ctx)
}

// RosterByRole returns the members holding a role.
func (s *Session) RosterByRole(ctx context.Context, role string) ([]models.User, error) {
	return s.m.Users.UsersByRole(ctx, role)
}

// LoadContacts fetches the shared directory, falling back to the cached copy
// when the backend is unreachable.
func (s *Session) LoadContacts(ctx context.Context) ([]models.Contact, error) {
	contacts, err := s.m.Contacts.ListContacts(ctx)
	if err != nil {
		var te *models.TransportError
		if errors.As(err, &te) {
			zap.S().Warnw("backend unreachable, serving cached contacts", "error", err)
			return s.store.CachedContacts(), nil
		}
		return nil, err
	}
	s.store.ReplaceContacts(contacts)
	return contacts, nil
}

// AddContact creates a directory entry.
func (s *Session) AddContact(ctx context.Context, contact models.Contact) error {
	return s.m.Contacts.CreateContact(ctx, &contact)
}

// RemoveContact deletes a directory entry.
func (s *Session) RemoveContact(ctx context.Context, id int) error {
	return s.m.Contacts.DeleteContact(ctx, id)
}

func (s *Session) persistUser() {
	if s.m.Cache == nil {
		return
	}
	if err := s.m.Cache.Put(cache.KeyUser, s.user); err != nil {
		zap.S().Warnw("failed to mirror user record", "error", err)
	}
}

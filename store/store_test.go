package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shomrim/patrol-cad-client/backend/mocks"
	"github.com/shomrim/patrol-cad-client/cache"
	"github.com/shomrim/patrol-cad-client/models"
	"github.com/shomrim/patrol-cad-client/store"
)

var testUser = models.User{
	Phone: "+447700900001",
	Name:  "Yehuda Filip",
	Role:  models.RoleMember,
}

func openTestCache(t *testing.T) *cache.Cache {
	t.Helper()
	c, err := cache.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func newTestStore(t *testing.T) (*store.Store, *mocks.IncidentAPI, *cache.Cache) {
	t.Helper()
	api := &mocks.IncidentAPI{}
	c := openTestCache(t)
	return store.New(api, c, testUser), api, c
}

func transportErr(op string) *models.TransportError {
	return &models.TransportError{Op: op, Err: errors.New("connection refused")}
}

// echoUpdate makes the mock backend return the pushed snapshot unchanged.
func echoUpdate(api *mocks.IncidentAPI) {
	api.On("UpdateIncident", mock.Anything, mock.Anything).
		Return(func(_ context.Context, inc *models.Incident) *models.Incident { return inc }, nil)
}

func validIncident() *models.Incident {
	return &models.Incident{
		Title:       "Suspicious vehicle",
		Type:        "Suspicious Activity",
		Description: "A dark van has been circling the block for the last two hours",
		Address:     "12 Oak Lane",
	}
}

func TestLoadReplacesWholeCollection(t *testing.T) {
	s, api, _ := newTestStore(t)
	api.On("ListIncidents", mock.Anything, testUser.Phone).
		Return([]models.Incident{{ID: "CAD000002"}, {ID: "CAD000001"}}, nil)

	incidents, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, incidents, 2)
	assert.Equal(t, "CAD000002", incidents[0].ID)
}

func TestLoadFallsBackToCacheOnTransportError(t *testing.T) {
	s, api, c := newTestStore(t)
	cached := []models.Incident{{ID: "CAD000009", Title: "from cache"}}
	require.NoError(t, c.Put(cache.KeyIncidents, cached))
	api.On("ListIncidents", mock.Anything, testUser.Phone).
		Return(nil, transportErr("list incidents"))

	incidents, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, incidents, 1)
	assert.Equal(t, "CAD000009", incidents[0].ID)
}

func TestLoadNeverMergesCacheWithServerData(t *testing.T) {
	s, api, c := newTestStore(t)
	require.NoError(t, c.Put(cache.KeyIncidents, []models.Incident{{ID: "CAD000009"}}))
	api.On("ListIncidents", mock.Anything, testUser.Phone).
		Return([]models.Incident{{ID: "CAD000001"}}, nil)

	incidents, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, incidents, 1)
	assert.Equal(t, "CAD000001", incidents[0].ID)
}

func TestLoadWithNilCacheFallback(t *testing.T) {
	api := &mocks.IncidentAPI{}
	api.On("ListIncidents", mock.Anything, testUser.Phone).
		Return(nil, transportErr("list incidents"))
	s := store.New(api, nil, testUser)

	var incidents []models.Incident
	var err error
	require.NotPanics(t, func() {
		incidents, err = s.Load(context.Background())
	})
	require.NoError(t, err)
	assert.Empty(t, incidents)
}

func TestLoadWithEmptyCacheFallback(t *testing.T) {
	s, api, _ := newTestStore(t)
	api.On("ListIncidents", mock.Anything, testUser.Phone).
		Return(nil, transportErr("list incidents"))

	incidents, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, incidents)
}

func TestCreateRejectsShortDescription(t *testing.T) {
	s, api, _ := newTestStore(t)

	incident := validIncident()
	incident.Description = "too short"
	_, err := s.Create(context.Background(), incident)

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Description", verr.Field)
	assert.Empty(t, s.Incidents())
	api.AssertNotCalled(t, "CreateIncident", mock.Anything, mock.Anything)
}

func TestCreateRejectsMissingRequiredField(t *testing.T) {
	s, api, _ := newTestStore(t)

	incident := validIncident()
	incident.Title = ""
	_, err := s.Create(context.Background(), incident)

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Title", verr.Field)
	api.AssertNotCalled(t, "CreateIncident", mock.Anything, mock.Anything)
}

func TestCreateBackendFailureLeavesNoLocalState(t *testing.T) {
	s, api, c := newTestStore(t)
	api.On("CreateIncident", mock.Anything, mock.Anything).
		Return(transportErr("create incident"))

	_, err := s.Create(context.Background(), validIncident())

	var te *models.TransportError
	require.ErrorAs(t, err, &te)
	assert.Empty(t, s.Incidents())
	var mirrored []models.Incident
	assert.False(t, c.Get(cache.KeyIncidents, &mirrored))
}

func TestCreateFillsDefaultsAndPrepends(t *testing.T) {
	s, api, c := newTestStore(t)
	api.On("ListIncidents", mock.Anything, testUser.Phone).
		Return([]models.Incident{{ID: "CAD000001"}}, nil)
	api.On("CreateIncident", mock.Anything, mock.Anything).Return(nil)

	_, err := s.Load(context.Background())
	require.NoError(t, err)

	created, err := s.Create(context.Background(), validIncident())
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, created.Status)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "SH-CAD", created.Shcad[:6])
	assert.Equal(t, []string{testUser.Name}, created.AssignedUsers)
	assert.Equal(t, testUser.Phone, created.CreatedBy)
	require.Len(t, created.History, 1)
	assert.Equal(t, "Created", created.History[0].Action)

	incidents := s.Incidents()
	require.Len(t, incidents, 2)
	assert.Equal(t, created.ID, incidents[0].ID, "new incident goes to the head")

	notifications := s.Notifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationIncidentCreated, notifications[0].Type)

	var mirrored []models.Incident
	require.True(t, c.Get(cache.KeyIncidents, &mirrored))
	assert.Len(t, mirrored, 2)
}

func TestUpdateUnknownIncidentIsNoOp(t *testing.T) {
	s, api, _ := newTestStore(t)

	_, err := s.Update(context.Background(), &models.Incident{ID: "CAD999999"})

	var nf *models.NotFoundError
	require.ErrorAs(t, err, &nf)
	api.AssertNotCalled(t, "UpdateIncident", mock.Anything, mock.Anything)
}

func TestUpdateTransportFailureFlagsPendingSync(t *testing.T) {
	s, api, _ := newTestStore(t)
	api.On("ListIncidents", mock.Anything, testUser.Phone).
		Return([]models.Incident{{ID: "CAD000001", Status: "pending"}}, nil)
	api.On("UpdateIncident", mock.Anything, mock.Anything).
		Return(nil, transportErr("update incident")).Once()

	_, err := s.Load(context.Background())
	require.NoError(t, err)

	staged, err := s.Get("CAD000001")
	require.NoError(t, err)
	staged.Status = models.StatusStarted

	_, err = s.Update(context.Background(), staged)
	var te *models.TransportError
	require.ErrorAs(t, err, &te)

	// The local commit stands and the incident is queued for re-sync.
	local, err := s.Get("CAD000001")
	require.NoError(t, err)
	assert.Equal(t, models.StatusStarted, local.Status)
	assert.True(t, s.PendingSync("CAD000001"))

	// The queue drains once the backend is reachable again.
	echoUpdate(api)
	s.FlushPending(context.Background())
	assert.False(t, s.PendingSync("CAD000001"))
}

func TestAddNote(t *testing.T) {
	s, api, _ := newTestStore(t)
	api.On("ListIncidents", mock.Anything, testUser.Phone).
		Return([]models.Incident{{ID: "CAD000001", Status: "pending"}}, nil)
	echoUpdate(api)

	_, err := s.Load(context.Background())
	require.NoError(t, err)

	updated, err := s.AddNote(context.Background(), "CAD000001", "caller rang back with a plate number")
	require.NoError(t, err)

	require.Len(t, updated.Notes, 1)
	assert.Equal(t, testUser.Name, updated.Notes[0].CreatedBy)
	require.Len(t, updated.History, 1)
	assert.Equal(t, "Note Added", updated.History[0].Action)
}

func TestAddNoteRejectsEmptyText(t *testing.T) {
	s, _, _ := newTestStore(t)

	_, err := s.AddNote(context.Background(), "CAD000001", "   ")

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestNotificationFeed(t *testing.T) {
	s, _, _ := newTestStore(t)

	s.Emit(&models.Notification{Type: models.NotificationUpdate, Title: "first"})
	s.Emit(&models.Notification{Type: models.NotificationUpdate, Title: "second"})

	feed := s.Notifications()
	require.Len(t, feed, 2)
	assert.Equal(t, "second", feed[0].Title, "feed is newest-first")
	assert.NotEmpty(t, feed[0].ID)

	s.MarkRead(feed[0].ID)
	feed = s.Notifications()
	assert.True(t, feed[0].Read)
	assert.False(t, feed[1].Read)

	s.ClearNotifications()
	assert.Empty(t, s.Notifications())
}

package backend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shomrim/patrol-cad-client/backend"
	"github.com/shomrim/patrol-cad-client/models"
)

// newFakeBackend spins up an httptest server with the given routes and a
// client pointed at it.
func newFakeBackend(t *testing.T, register func(r *mux.Router)) *backend.Client {
	t.Helper()
	r := mux.NewRouter()
	register(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return backend.New(srv.URL, "+44", 5*time.Second)
}

func writeJSON(t *testing.T, w http.ResponseWriter, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestListIncidents(t *testing.T) {
	c := newFakeBackend(t, func(r *mux.Router) {
		r.HandleFunc("/api/incidents", func(w http.ResponseWriter, req *http.Request) {
			assert.Equal(t, "+447700900001", req.URL.Query().Get("user_phone"))
			writeJSON(t, w, []models.Incident{{ID: "CAD000002"}, {ID: "CAD000001"}})
		}).Methods(http.MethodGet)
	})

	incidents, err := c.ListIncidents(context.Background(), "+447700900001")
	require.NoError(t, err)
	require.Len(t, incidents, 2)
	assert.Equal(t, "CAD000002", incidents[0].ID)
}

func TestListIncidentsServerError(t *testing.T) {
	c := newFakeBackend(t, func(r *mux.Router) {
		r.HandleFunc("/api/incidents", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}).Methods(http.MethodGet)
	})

	_, err := c.ListIncidents(context.Background(), "+447700900001")

	var te *models.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusInternalServerError, te.StatusCode)
}

func TestListIncidentsConnectionRefused(t *testing.T) {
	c := backend.New("http://127.0.0.1:1", "+44", time.Second)

	_, err := c.ListIncidents(context.Background(), "+447700900001")

	var te *models.TransportError
	require.ErrorAs(t, err, &te)
}

func TestGetIncidentNotFound(t *testing.T) {
	c := newFakeBackend(t, func(r *mux.Router) {
		r.HandleFunc("/api/incidents/{id}", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}).Methods(http.MethodGet)
	})

	_, err := c.GetIncident(context.Background(), "CAD999999")

	var nf *models.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestCreateIncident(t *testing.T) {
	c := newFakeBackend(t, func(r *mux.Router) {
		r.HandleFunc("/api/incidents", func(w http.ResponseWriter, req *http.Request) {
			var incident models.Incident
			require.NoError(t, json.NewDecoder(req.Body).Decode(&incident))
			assert.Equal(t, "CAD000001", incident.ID)
			writeJSON(t, w, map[string]interface{}{"success": true, "id": incident.ID})
		}).Methods(http.MethodPost)
	})

	err := c.CreateIncident(context.Background(), &models.Incident{ID: "CAD000001"})
	assert.NoError(t, err)
}

func TestCreateIncidentFailureBody(t *testing.T) {
	c := newFakeBackend(t, func(r *mux.Router) {
		r.HandleFunc("/api/incidents", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(t, w, map[string]interface{}{"success": false, "error": "duplicate incident"})
		}).Methods(http.MethodPost)
	})

	err := c.CreateIncident(context.Background(), &models.Incident{ID: "CAD000001"})

	var te *models.TransportError
	require.ErrorAs(t, err, &te)
	assert.Contains(t, te.Error(), "duplicate incident")
}

func TestUpdateIncidentReturnsServerCopy(t *testing.T) {
	c := newFakeBackend(t, func(r *mux.Router) {
		r.HandleFunc("/api/incidents/{id}", func(w http.ResponseWriter, req *http.Request) {
			var incident models.Incident
			require.NoError(t, json.NewDecoder(req.Body).Decode(&incident))
			assert.Equal(t, "CAD000001", mux.Vars(req)["id"])
			incident.UpdatedAt = time.Now().UTC()
			writeJSON(t, w, incident)
		}).Methods(http.MethodPut)
	})

	updated, err := c.UpdateIncident(context.Background(), &models.Incident{ID: "CAD000001", Status: models.StatusStarted})
	require.NoError(t, err)
	assert.Equal(t, models.StatusStarted, updated.Status)
	assert.False(t, updated.UpdatedAt.IsZero())
}

func TestSetDutyStatus(t *testing.T) {
	c := newFakeBackend(t, func(r *mux.Router) {
		r.HandleFunc("/api/users/{phone}/duty-status", func(w http.ResponseWriter, req *http.Request) {
			var body map[string]bool
			require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			assert.True(t, body["on_duty"])
			writeJSON(t, w, map[string]interface{}{"success": true})
		}).Methods(http.MethodPut)
	})

	err := c.SetDutyStatus(context.Background(), "+447700900001", true)
	assert.NoError(t, err)
}

func TestUsersOnDuty(t *testing.T) {
	c := newFakeBackend(t, func(r *mux.Router) {
		r.HandleFunc("/api/users/on-duty", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(t, w, []models.User{{Phone: "+447700900001", Name: "Yehuda Filip", OnDuty: true}})
		}).Methods(http.MethodGet)
	})

	users, err := c.UsersOnDuty(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.True(t, users[0].OnDuty)
}

func TestSendOTPIncludesCountryCode(t *testing.T) {
	c := newFakeBackend(t, func(r *mux.Router) {
		r.HandleFunc("/api/send-otp", func(w http.ResponseWriter, req *http.Request) {
			var body map[string]string
			require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			assert.Equal(t, "+447700900001", body["phone_number"])
			assert.Equal(t, "+44", body["country_code"])
			writeJSON(t, w, map[string]interface{}{"success": true})
		}).Methods(http.MethodPost)
	})

	err := c.SendOTP(context.Background(), "+447700900001")
	assert.NoError(t, err)
}

func TestVerifyOTPReturningUser(t *testing.T) {
	c := newFakeBackend(t, func(r *mux.Router) {
		r.HandleFunc("/api/verify-otp", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(t, w, map[string]interface{}{
				"success":           true,
				"is_returning_user": true,
				"user":              models.User{Phone: "+447700900001", Name: "Yehuda Filip"},
			})
		}).Methods(http.MethodPost)
	})

	user, returning, err := c.VerifyOTP(context.Background(), "+447700900001", "123456")
	require.NoError(t, err)
	assert.True(t, returning)
	require.NotNil(t, user)
	assert.Equal(t, "Yehuda Filip", user.Name)
}

func TestVerifyOTPInvalidCode(t *testing.T) {
	c := newFakeBackend(t, func(r *mux.Router) {
		r.HandleFunc("/api/verify-otp", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}).Methods(http.MethodPost)
	})

	_, _, err := c.VerifyOTP(context.Background(), "+447700900001", "000000")

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "otp", verr.Field)
}

func TestVerifyOTPNewUser(t *testing.T) {
	c := newFakeBackend(t, func(r *mux.Router) {
		r.HandleFunc("/api/verify-otp", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(t, w, map[string]interface{}{"success": true, "is_returning_user": false})
		}).Methods(http.MethodPost)
	})

	user, returning, err := c.VerifyOTP(context.Background(), "+447700900999", "123456")
	require.NoError(t, err)
	assert.False(t, returning)
	assert.Nil(t, user)
}

func TestContacts(t *testing.T) {
	c := newFakeBackend(t, func(r *mux.Router) {
		r.HandleFunc("/api/contacts", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(t, w, []models.Contact{{ID: 1, Name: "Control Room"}})
		}).Methods(http.MethodGet)
		r.HandleFunc("/api/contacts/{id}", func(w http.ResponseWriter, req *http.Request) {
			assert.Equal(t, "1", mux.Vars(req)["id"])
			w.WriteHeader(http.StatusOK)
		}).Methods(http.MethodDelete)
	})

	contacts, err := c.ListContacts(context.Background())
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Control Room", contacts[0].Name)

	assert.NoError(t, c.DeleteContact(context.Background(), 1))
}

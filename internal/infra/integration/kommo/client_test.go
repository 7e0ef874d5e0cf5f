package kommo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xavierca1/leadlocal/internal/entity"
)

func TestPushLeadReusesContact(t *testing.T) {
	var created []leadPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/contacts":
			assert.Equal(t, "555-0100", r.URL.Query().Get("query"))
			w.Write([]byte(`{"_embedded":{"contacts":[{"id":77}]}}`))
		case r.Method == http.MethodPost && r.URL.Path == "/leads":
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&created))
			w.Write([]byte(`{"_embedded":{"leads":[{"id":9001}]}}`))
		default:
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewClient("tok", srv.URL, 42, time.Second, zap.NewNop())
	res, err := c.PushLead(context.Background(), entity.Lead{
		ID: "l1", Name: "Acme", Phone: "555-0100", Industry: "retail", ReadinessScore: 65,
	})
	require.NoError(t, err)
	assert.Equal(t, PushResult{LeadID: "l1", KommoID: 9001, ContactID: 77}, res)

	require.Len(t, created, 1)
	assert.Equal(t, "Acme - LeadLocal (65)", created[0].Name)
	assert.Equal(t, 42, created[0].StatusID)
	assert.Equal(t, []tag{{Name: "leadlocal"}, {Name: "retail"}}, created[0].Embedded.Tags)
	assert.Equal(t, []idRef{{ID: 77}}, created[0].Embedded.Contacts)
}

func TestPushLeadCreatesContact(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			w.WriteHeader(http.StatusNoContent)
		case r.URL.Path == "/contacts":
			var in []contactPayload
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			assert.Equal(t, "Acme", in[0].Name)
			assert.Len(t, in[0].CustomFields, 2)
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"_embedded":{"contacts":[{"id":5}]}}`))
		case r.URL.Path == "/leads":
			w.Write([]byte(`{"_embedded":{"leads":[{"id":6}]}}`))
		}
	}))
	defer srv.Close()

	c := NewClient("tok", srv.URL, 0, time.Second, zap.NewNop())
	res, err := c.PushLead(context.Background(), entity.Lead{Name: "Acme", Phone: "1", Email: "a@b.c"})
	require.NoError(t, err)
	assert.Equal(t, 5, res.ContactID)
	assert.Equal(t, 6, res.KommoID)
}

func TestPushLeadErrors(t *testing.T) {
	_, err := NewClient("", "", 0, time.Second, zap.NewNop()).PushLead(context.Background(), entity.Lead{})
	assert.ErrorIs(t, err, ErrNotConfigured)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err = NewClient("tok", srv.URL, 0, time.Second, zap.NewNop()).PushLead(context.Background(), entity.Lead{Name: "x"})
	assert.ErrorContains(t, err, "status 403")
}

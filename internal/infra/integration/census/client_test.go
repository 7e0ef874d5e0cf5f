package census

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xavierca1/leadlocal/internal/search"
)

func TestSearchParsesTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "NAICS2017_LABEL,EMP,ESTAB", r.URL.Query().Get("get"))
		assert.Equal(t, "zip code:78701", r.URL.Query().Get("for"))
		assert.Equal(t, "62", r.URL.Query().Get("NAICS2017"))
		w.Write([]byte(`[["NAICS2017_LABEL","EMP","ESTAB","NAICS2017","zip code"],["Health care and social assistance","1200","40","62","78701"]]`))
	}))
	defer srv.Close()

	recs, err := NewClient("", srv.URL, time.Second, zap.NewNop()).Search(context.Background(), search.Request{
		Location:   search.Location{ZipCode: "78701"},
		Categories: []string{"healthcare"},
	})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Health care and social assistance (78701)", recs[0].Name)
	assert.Equal(t, 30, recs[0].EmployeeCount)
	assert.Equal(t, "healthcare", recs[0].Industry)
}

func TestSearchNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	recs, err := NewClient("", srv.URL, time.Second, zap.NewNop()).Search(context.Background(), search.Request{
		Location:   search.Location{ZipCode: "00000"},
		Categories: []string{"retail"},
	})
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestSearchWithoutZipSkipsCall(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	defer srv.Close()

	recs, err := NewClient("", srv.URL, time.Second, zap.NewNop()).Search(context.Background(), search.Request{
		Location:   search.Location{Coordinates: &search.Coordinates{Lat: 1, Lng: 2}},
		Categories: []string{"retail"},
	})
	require.NoError(t, err)
	assert.Nil(t, recs)
	assert.False(t, called)
}

func TestSearchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "error: unknown variable", http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := NewClient("", srv.URL, time.Second, zap.NewNop()).Search(context.Background(), search.Request{
		Location:   search.Location{ZipCode: "78701"},
		Categories: []string{"retail"},
	})
	assert.ErrorContains(t, err, "status 400")
}

func TestParseTableMissingColumn(t *testing.T) {
	_, err := parseTable([][]string{{"EMP"}})
	assert.Error(t, err)

	rows, err := parseTable([][]string{{"NAICS2017_LABEL", "EMP", "ESTAB"}, {"short"}})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

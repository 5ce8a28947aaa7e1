//go:build unit

package heynabo_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"commons-dinner/internal/infra/heynabo"
	"commons-dinner/internal/pkg/config"
	"commons-dinner/internal/usecase/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const locationsFeed = `{"list":[
	{"id":11,"name":"Skraaningen 3","address":"Skraaningen 3","pbsId":4711},
	{"id":12,"address":"Skraaningen 5","pbsId":null}
]}`

const membersFeed = `[
	{"id":101,"locationId":11,"firstName":"Anna","lastName":"Berg","email":"anna@example.dk","role":"admin","dateOfBirth":"1980-04-02"},
	{"id":102,"locationId":11,"firstName":"Bo","lastName":"Berg","dateOfBirth":"2018-06-10"},
	{"id":103,"locationId":99,"firstName":"Ghost"},
	{"locationId":11,"firstName":"Nameless"}
]`

func ptr[T any](v T) *T { return &v }

func day(s string) *time.Time {
	t, _ := time.Parse(time.DateOnly, s)
	return &t
}

func TestParseHouseholds(t *testing.T) {
	got := heynabo.ParseHouseholds(locationsFeed, membersFeed)

	want := []shared.HouseholdRecord{
		{
			HeynaboID: 11,
			PbsID:     ptr(int64(4711)),
			Name:      "Skraaningen 3",
			Address:   "Skraaningen 3",
			Inhabitants: []shared.InhabitantRecord{
				{HeynaboID: 101, Name: "Anna", LastName: "Berg", BirthDate: day("1980-04-02"), Email: ptr("anna@example.dk"), Role: "ADMIN"},
				{HeynaboID: 102, Name: "Bo", LastName: "Berg", BirthDate: day("2018-06-10")},
			},
		},
		{HeynaboID: 12, Name: "Skraaningen 5", Address: "Skraaningen 5"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseHouseholds mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEvents(t *testing.T) {
	body := `{"list":[
		{"id":7,"title":"Fællesspisning","start":"2024-05-02T18:00:00+02:00"},
		{"id":8,"title":"All day","start":"2024-05-06"},
		{"id":9,"title":"No start"}
	]}`

	got := heynabo.ParseEvents(body)

	require.Len(t, got, 2)
	assert.Equal(t, int64(7), got[0].HeynaboEventID)
	assert.Equal(t, "2024-05-02", got[0].Date.Format(time.DateOnly))
	assert.Equal(t, int64(8), got[1].HeynaboEventID)
	assert.Equal(t, "2024-05-06", got[1].Date.Format(time.DateOnly))
}

func TestClient_FetchHouseholds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/api/members/locations":
			_, _ = w.Write([]byte(locationsFeed))
		case "/api/members":
			_, _ = w.Write([]byte(membersFeed))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	c := heynabo.NewClient(config.HeynaboConfig{BaseURL: srv.URL + "/", Token: "secret", Timeout: time.Second})
	got, err := c.FetchHouseholds(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Len(t, got[0].Inhabitants, 2)
}

func TestClient_Errors(t *testing.T) {
	t.Run("unauthorized", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		t.Cleanup(srv.Close)

		c := heynabo.NewClient(config.HeynaboConfig{BaseURL: srv.URL, Timeout: time.Second})
		_, err := c.FetchEvents(context.Background(), time.Now(), time.Now())
		assert.ErrorContains(t, err, "unexpected status 401")
	})

	t.Run("invalid json", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<html>"))
		}))
		t.Cleanup(srv.Close)

		c := heynabo.NewClient(config.HeynaboConfig{BaseURL: srv.URL, Timeout: time.Second})
		_, err := c.FetchEvents(context.Background(), time.Now(), time.Now())
		assert.ErrorIs(t, err, heynabo.ErrInvalidFeed)
	})

	t.Run("feed over the size limit", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"list":["`))
			_, _ = w.Write(bytes.Repeat([]byte("x"), 16<<20))
			_, _ = w.Write([]byte(`"]}`))
		}))
		t.Cleanup(srv.Close)

		c := heynabo.NewClient(config.HeynaboConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})
		_, err := c.FetchEvents(context.Background(), time.Now(), time.Now())
		assert.ErrorIs(t, err, heynabo.ErrFeedTooLarge)
	})

	t.Run("not configured", func(t *testing.T) {
		c := heynabo.NewClient(config.HeynaboConfig{})
		_, err := c.FetchHouseholds(context.Background())
		assert.ErrorIs(t, err, heynabo.ErrNotConfigured)
	})
}

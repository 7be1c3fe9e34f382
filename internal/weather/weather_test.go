package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Hanoi,VN", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"main":{"temp":31.4},"weather":[{"description":"scattered clouds"}]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL})

	r, err := c.Current(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 31.4, r.Temp, 0.001)
	assert.Equal(t, "scattered clouds", r.Description)
}

func TestCurrent_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL})

	_, err := c.Current(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestCurrent_MissingAPIKey(t *testing.T) {
	c := NewClient(Config{})

	_, err := c.Current(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestCurrent_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL})

	_, err := c.Current(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

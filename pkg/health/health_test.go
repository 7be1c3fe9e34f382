package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadyEndpoint_NotReadyByDefault(t *testing.T) {
	s := New()

	rec := httptest.NewRecorder()
	s.ReadyEndpoint(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "service is not ready")
}

func TestReadyEndpoint_ReadyAfterSetReady(t *testing.T) {
	s := New()
	s.SetReady(true)

	rec := httptest.NewRecorder()
	s.ReadyEndpoint(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestReadyEndpoint_FailingCheck(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := New()
	s.SetReady(true)
	s.AddReadinessCheck("postgres", time.Second, func(_ context.Context) error {
		return errors.New("connection refused")
	})
	s.Start(ctx, 50*time.Millisecond)
	defer s.Stop()

	require.Eventually(t, func() bool { return !s.IsReady() }, time.Second, 10*time.Millisecond)

	rec := httptest.NewRecorder()
	s.ReadyEndpoint(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection refused")
}

func TestLiveEndpoint_RecoversWhenCheckPasses(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	failing := true
	s := New()
	s.AddLivenessCheck("flaky", time.Second, func(_ context.Context) error {
		if failing {
			return errors.New("boom")
		}
		return nil
	})
	s.Start(ctx, 20*time.Millisecond)
	defer s.Stop()

	require.Eventually(t, func() bool {
		rec := httptest.NewRecorder()
		s.LiveEndpoint(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))
		return rec.Code == http.StatusServiceUnavailable
	}, time.Second, 10*time.Millisecond)

	failing = false
	require.Eventually(t, func() bool {
		rec := httptest.NewRecorder()
		s.LiveEndpoint(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))
		return rec.Code == http.StatusOK
	}, time.Second, 10*time.Millisecond)
}

func TestGoroutineCountCheck(t *testing.T) {
	require.NoError(t, GoroutineCountCheck(1_000_000)(context.Background()))
	require.Error(t, GoroutineCountCheck(0)(context.Background()))
}

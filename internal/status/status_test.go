package status

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNilStatusIsSafe(t *testing.T) {
	var s *Status
	s.CycleOK()
	s.CycleFailed(errors.New("x"))
	s.HistoryWritten()
}

func TestStatusEndpoint(t *testing.T) {
	s := New()
	s.CycleOK()
	s.CycleOK()
	s.CycleFailed(errors.New("publish failed"))
	s.HistoryWritten()

	ts := httptest.NewServer(s.Router(zap.NewNop().Sugar()))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var got report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, uint64(3), got.Cycles)
	require.Equal(t, uint64(1), got.FailedCycles)
	require.Equal(t, uint64(1), got.HistoryWrites)
	require.Equal(t, "publish failed", got.LastError)
	require.NotEmpty(t, got.LastSuccess)
	require.NotEmpty(t, got.StartedAt)
}

func TestHealthz(t *testing.T) {
	ts := httptest.NewServer(New().Router(zap.NewNop().Sugar()))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCycleOKClearsLastError(t *testing.T) {
	s := New()
	s.CycleFailed(errors.New("boom"))
	s.CycleOK()

	r := s.snapshot()
	require.Empty(t, r.LastError)
	require.Equal(t, uint64(2), r.Cycles)
	require.Equal(t, uint64(1), r.FailedCycles)
}

package store

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"
)

func newTestStore(ts *httptest.Server) *S3Store {
	client := s3.New(s3.Options{
		Region:           "us-east-1",
		Credentials:      aws.AnonymousCredentials{},
		BaseEndpoint:     aws.String(ts.URL),
		UsePathStyle:     true,
		RetryMaxAttempts: 1,
	})
	return NewS3StoreWithClient(client, "test-bucket")
}

func TestCheck_OK(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodHead, r.Method)
		require.Equal(t, "/test-bucket", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	require.NoError(t, newTestStore(ts).Check(context.Background()))
}

func TestCheck_AccessDenied(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	err := newTestStore(ts).Check(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "head bucket test-bucket")
	require.Equal(t, 1, calls, "authorization failures must not be retried")
}

func TestPut_OK(t *testing.T) {
	var gotPath, gotContentType string
	var gotBody []byte
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	st := newTestStore(ts)
	require.NoError(t, st.Put(context.Background(), "metrics.json", []byte(`{"hostname":"n1"}`)))

	require.Equal(t, "/test-bucket/metrics.json", gotPath)
	require.Equal(t, "application/json", gotContentType)
	require.Equal(t, `{"hostname":"n1"}`, string(gotBody))
}

func TestPut_StoreError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	err := newTestStore(ts).Put(context.Background(), "metrics.json", []byte("{}"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "put object metrics.json")
}

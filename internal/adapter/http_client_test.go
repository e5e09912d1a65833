package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderline/synckit/internal/logger"
	"github.com/wanderline/synckit/models"
)

type capturedRequest struct {
	method string
	path   string
	header http.Header
	body   []byte
}

func newCapturingServer(t *testing.T, status int) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		captured.method = r.Method
		captured.path = r.URL.Path
		captured.header = r.Header.Clone()
		captured.body = body
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, captured
}

func newTestClient(baseURL string) NetworkClient {
	return NewHTTPNetworkClient(HTTPClientConfig{
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
	}, logger.Nop())
}

func TestDo_PostSendsBodyAndHeaders(t *testing.T) {
	srv, captured := newCapturingServer(t, http.StatusCreated)
	cli := newTestClient(srv.URL)

	err := cli.Do(context.Background(), models.QueuedAction{
		ID:       "trip-1-abc",
		Type:     "trip",
		Method:   models.MethodPost,
		Endpoint: "/api/trips",
		Data:     json.RawMessage(`{"id":"t1"}`),
		Token:    "tok-123",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, captured.method)
	assert.Equal(t, "/api/trips", captured.path)
	assert.Equal(t, "application/json", captured.header.Get("Content-Type"))
	assert.Equal(t, "Bearer tok-123", captured.header.Get("Authorization"))
	assert.JSONEq(t, `{"id":"t1"}`, string(captured.body))
}

func TestDo_MethodDispatch(t *testing.T) {
	cases := []struct {
		method string
		want   string
	}{
		{models.MethodPost, http.MethodPost},
		{models.MethodPut, http.MethodPut},
		{models.MethodDelete, http.MethodDelete},
	}

	for _, tc := range cases {
		t.Run(tc.method, func(t *testing.T) {
			srv, captured := newCapturingServer(t, http.StatusOK)
			cli := newTestClient(srv.URL)

			err := cli.Do(context.Background(), models.QueuedAction{
				Method:   tc.method,
				Endpoint: "/api/trips/t1",
				Data:     json.RawMessage(`{}`),
			})
			require.NoError(t, err)
			assert.Equal(t, tc.want, captured.method)
		})
	}
}

func TestDo_NoAuthorizationHeaderWithoutToken(t *testing.T) {
	srv, captured := newCapturingServer(t, http.StatusOK)
	cli := newTestClient(srv.URL)

	err := cli.Do(context.Background(), models.QueuedAction{
		Method:   models.MethodPost,
		Endpoint: "/api/trips",
		Data:     json.RawMessage(`{}`),
	})
	require.NoError(t, err)
	assert.Empty(t, captured.header.Get("Authorization"))
}

func TestDo_ServerErrorMapsToErrNetwork(t *testing.T) {
	srv, _ := newCapturingServer(t, http.StatusInternalServerError)
	cli := newTestClient(srv.URL)

	err := cli.Do(context.Background(), models.QueuedAction{
		Method:   models.MethodPost,
		Endpoint: "/api/trips",
		Data:     json.RawMessage(`{}`),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.Contains(t, err.Error(), "http 500")
}

func TestDo_ClientErrorMapsToErrNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "validation failed", http.StatusUnprocessableEntity)
	}))
	t.Cleanup(srv.Close)
	cli := newTestClient(srv.URL)

	err := cli.Do(context.Background(), models.QueuedAction{
		Method:   models.MethodPut,
		Endpoint: "/api/trips/t1",
		Data:     json.RawMessage(`{}`),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestDo_TransportFailureMapsToErrNetwork(t *testing.T) {
	srv, _ := newCapturingServer(t, http.StatusOK)
	srv.Close() // connection refused from here on

	cli := newTestClient(srv.URL)
	err := cli.Do(context.Background(), models.QueuedAction{
		Method:   models.MethodPost,
		Endpoint: "/api/trips",
		Data:     json.RawMessage(`{}`),
	})
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestDo_UnsupportedMethod(t *testing.T) {
	srv, _ := newCapturingServer(t, http.StatusOK)
	cli := newTestClient(srv.URL)

	err := cli.Do(context.Background(), models.QueuedAction{
		Method:   "GET",
		Endpoint: "/api/trips",
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNetwork, "a malformed action is not a transport failure")
}

func TestDo_JoinsBaseURLAndEndpoint(t *testing.T) {
	srv, captured := newCapturingServer(t, http.StatusOK)
	// Trailing and leading slashes must not double up.
	cli := newTestClient(srv.URL + "/")

	err := cli.Do(context.Background(), models.QueuedAction{
		Method:   models.MethodDelete,
		Endpoint: "api/trips/t1",
	})
	require.NoError(t, err)
	assert.Equal(t, "/api/trips/t1", captured.path)
}

func TestDo_CancelledContext(t *testing.T) {
	srv, _ := newCapturingServer(t, http.StatusOK)
	cli := newTestClient(srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := cli.Do(ctx, models.QueuedAction{
		Method:   models.MethodPost,
		Endpoint: "/api/trips",
		Data:     json.RawMessage(`{}`),
	})
	assert.ErrorIs(t, err, ErrNetwork)
}

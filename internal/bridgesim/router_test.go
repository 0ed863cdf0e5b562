package bridgesim

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bridgectl/bridgectl/internal/api"
	"github.com/bridgectl/bridgectl/internal/logger"
	"github.com/bridgectl/bridgectl/internal/testutil"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAPIKey    = "sim-test-key"
	testKeyHeader = "X-Debugger-Key"
)

func newTestServer(t *testing.T) (*Simulator, *httptest.Server) {
	t.Helper()
	sim := NewSimulator()
	router := NewRouter(sim, testAPIKey, testKeyHeader, testutil.SilentLogger())
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return sim, server
}

func doRequest(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set(testKeyHeader, testAPIKey)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestRouter_Authentication(t *testing.T) {
	_, server := newTestServer(t)

	t.Run("missing key is rejected", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/state")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("wrong key is rejected", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, server.URL+"/state", nil)
		require.NoError(t, err)
		req.Header.Set(testKeyHeader, "wrong")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		var errResp api.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
		assert.Equal(t, "invalid API key", errResp.Error)
	})

	t.Run("valid key passes", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, server.URL+"/state", nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestRouter_RequestIDStamped(t *testing.T) {
	router := NewRouter(NewSimulator(), testAPIKey, testKeyHeader, testutil.SilentLogger())

	var got string
	handler := router.recordRequestMiddleware(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		got = logger.GetRequestID(req.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/state", nil))

	assert.NotEmpty(t, got)
	require.Len(t, router.recorder.Logs(), 1)
}

func TestRouter_StateAndCommands(t *testing.T) {
	_, server := newTestServer(t)

	var state api.StateResponse
	decodeBody(t, doRequest(t, http.MethodGet, server.URL+"/state", nil), &state)
	assert.Equal(t, api.ModeDesign, state.Snapshot.Mode)

	var cmdResult api.CommandResult
	decodeBody(t, doRequest(t, http.MethodPost, server.URL+"/command", api.Build()), &cmdResult)
	assert.True(t, cmdResult.OK)

	var batchResult api.BatchResult
	decodeBody(t, doRequest(t, http.MethodPost, server.URL+"/batch", api.BatchRequest{
		Commands: []api.Command{
			api.ClearBreakpoints(),
			api.SetBreakpoint(`C:\Code\Program.cs`, 42),
			api.Start(),
		},
	}), &batchResult)
	assert.True(t, batchResult.OK)
	assert.Equal(t, 3, batchResult.SuccessCount)
	assert.Equal(t, 0, batchResult.FailureCount)

	decodeBody(t, doRequest(t, http.MethodGet, server.URL+"/state", nil), &state)
	assert.Equal(t, api.ModeBreak, state.Snapshot.Mode)
	assert.Equal(t, 42, state.Snapshot.Line)
}

func TestRouter_CommandValidation(t *testing.T) {
	_, server := newTestServer(t)

	t.Run("missing action", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, server.URL+"/command", map[string]any{})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("empty batch", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, server.URL+"/batch", api.BatchRequest{})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("malformed body", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, server.URL+"/command", strings.NewReader("not json"))
		require.NoError(t, err)
		req.Header.Set(testKeyHeader, testAPIKey)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestRouter_ErrorsAndOutput(t *testing.T) {
	sim, server := newTestServer(t)
	sim.SetErrors([]api.ErrorItem{
		{File: "a.cs", Line: 10, Description: "X is not defined"},
	})
	sim.SetPane("Build", "Build FAILED: 1 Error(s)")

	var items []api.ErrorItem
	decodeBody(t, doRequest(t, http.MethodGet, server.URL+"/errors", nil), &items)
	require.Len(t, items, 1)
	assert.Equal(t, "X is not defined", items[0].Description)

	resp := doRequest(t, http.MethodGet, server.URL+"/output/Build", nil)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")
	assert.Contains(t, string(body), "Build FAILED")

	resp = doRequest(t, http.MethodGet, server.URL+"/output/Nope", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_LogsAndMetrics(t *testing.T) {
	_, server := newTestServer(t)

	// Generate some traffic first.
	for i := 0; i < 3; i++ {
		resp := doRequest(t, http.MethodGet, server.URL+"/state", nil)
		resp.Body.Close()
	}

	var logs []api.RequestLog
	decodeBody(t, doRequest(t, http.MethodGet, server.URL+"/logs", nil), &logs)
	require.Len(t, logs, 3)
	assert.Equal(t, "/state", logs[0].Path)
	assert.Equal(t, http.StatusOK, logs[0].Status)

	var metrics api.Metrics
	decodeBody(t, doRequest(t, http.MethodGet, server.URL+"/metrics", nil), &metrics)
	// /logs was the fourth recorded request.
	assert.Equal(t, int64(4), metrics.TotalRequests)
	assert.NotEmpty(t, metrics.Uptime)
}

func TestRouter_WebSocket(t *testing.T) {
	sim, server := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	header := http.Header{}
	header.Set(testKeyHeader, testAPIKey)

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	readEvent := func() api.Event {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var event api.Event
		require.NoError(t, conn.ReadJSON(&event))
		return event
	}

	connected := readEvent()
	assert.Equal(t, api.EventConnected, connected.Type)
	assert.NotEmpty(t, connected.ConnectionID)

	// A state transition must be pushed to subscribers.
	sim.Apply(api.SetBreakpoint("a.cs", 5))
	sim.Apply(api.Start())

	stateChange := readEvent()
	assert.Equal(t, api.EventStateChange, stateChange.Type)
	require.NotNil(t, stateChange.Snapshot)
	assert.Equal(t, api.ModeBreak, stateChange.Snapshot.Mode)

	// Ping over the socket is answered with a pong envelope.
	require.NoError(t, conn.WriteJSON(api.NewPing()))
	pong := readEvent()
	assert.Equal(t, api.EventPong, pong.Type)
}

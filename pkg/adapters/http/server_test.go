package http_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/turing"
	thttp "github.com/aretw0/turing/pkg/adapters/http"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/library"
	"github.com/aretw0/turing/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler(t *testing.T, opts ...thttp.Option) (http.Handler, *registry.Registry) {
	t.Helper()
	loader, err := library.Loader()
	require.NoError(t, err)
	reg := registry.NewRegistry(loader)
	return thttp.NewHandler(reg, opts...), reg
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestServer_HealthAndInfo(t *testing.T) {
	h, _ := newHandler(t)

	w := do(t, h, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(t, h, "GET", "/info", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var info map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "turing-http", info["app"])
	assert.Equal(t, turing.Version, info["version"])
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_Preflight(t *testing.T) {
	h, _ := newHandler(t)
	w := do(t, h, "OPTIONS", "/machines/equal-runs/execute", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestServer_ListMachines(t *testing.T) {
	h, _ := newHandler(t)
	w := do(t, h, "GET", "/machines", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["machines"], library.EqualRuns)
}

func TestServer_GetMachine(t *testing.T) {
	h, reg := newHandler(t)
	eng, err := reg.Get(library.EqualRuns)
	require.NoError(t, err)

	w := do(t, h, "GET", "/machines/equal-runs", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body thttp.MachineResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, eng.Digest(), body.Digest)
	assert.Equal(t, library.EqualRuns, body.Definition.Name)
	assert.Equal(t, 100, body.Capacity)

	w = do(t, h, "GET", "/machines/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_Graph(t *testing.T) {
	h, _ := newHandler(t)
	w := do(t, h, "GET", "/machines/equal-runs/graph", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "graph LR"))
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestServer_Execute(t *testing.T) {
	h, _ := newHandler(t)

	tests := []struct {
		body    string
		status  int
		verdict string
		kind    string
	}{
		{`{"input":"0011"}`, http.StatusOK, domain.VerdictAccept, ""},
		{`{"input":"0010"}`, http.StatusOK, domain.VerdictReject, ""},
		{`{"input":"0011","raw":true}`, http.StatusUnprocessableEntity, "", domain.KindNoTransition},
		{`{"input":"` + strings.Repeat("0", 120) + `"}`, http.StatusUnprocessableEntity, "", domain.KindInputTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.body[:min(len(tt.body), 24)], func(t *testing.T) {
			w := do(t, h, "POST", "/machines/equal-runs/execute", tt.body)
			require.Equal(t, tt.status, w.Code, w.Body.String())

			var resp thttp.ExecuteResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.NotNil(t, resp.Run)
			assert.Equal(t, tt.verdict, resp.Run.Verdict)
			assert.Equal(t, tt.kind, resp.Run.ErrKind)
			assert.Empty(t, resp.Trace)
		})
	}
}

func TestServer_ExecuteTrace(t *testing.T) {
	h, _ := newHandler(t)
	w := do(t, h, "POST", "/machines/equal-runs/execute", `{"input":"01","trace":true}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp thttp.ExecuteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Trace)
	assert.Len(t, resp.Trace, resp.Run.Steps)
	assert.Equal(t, 1, resp.Trace[0].Step)
}

func TestServer_ExecuteBadRequests(t *testing.T) {
	h, _ := newHandler(t)

	w := do(t, h, "POST", "/machines/equal-runs/execute", `{"input":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, "POST", "/machines/equal-runs/execute", `{"tape":"01"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, "POST", "/machines/missing/execute", `{"input":"01"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, "GET", "/machines/equal-runs/execute", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestServer_Batch(t *testing.T) {
	h, _ := newHandler(t, thttp.WithConcurrency(2))
	w := do(t, h, "POST", "/machines/equal-runs/batch", `{"inputs":["01","10","000111",""]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp thttp.BatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Runs, 4)
	assert.Equal(t, "01", resp.Runs[0].Input)
	assert.Equal(t, domain.VerdictAccept, resp.Runs[0].Verdict)
	assert.Equal(t, domain.VerdictReject, resp.Runs[1].Verdict)
	assert.Equal(t, domain.VerdictAccept, resp.Runs[2].Verdict)
	assert.Equal(t, domain.VerdictReject, resp.Runs[3].Verdict)
}

func TestStreamManager_Broadcast(t *testing.T) {
	sm := thttp.NewStreamManager()
	ch, cancel := sm.Subscribe("m")
	assert.Equal(t, 1, sm.Subscribers("m"))

	sm.Broadcast("other", "ignored")
	sm.Broadcast("m", "hello")
	assert.Equal(t, "hello", <-ch)

	cancel()
	assert.Equal(t, 0, sm.Subscribers("m"))
	_, open := <-ch
	assert.False(t, open)

	// A full buffer drops instead of blocking.
	ch, cancel = sm.Subscribe("m")
	defer cancel()
	for i := 0; i < 20; i++ {
		sm.Broadcast("m", "x")
	}
	assert.Len(t, ch, cap(ch))
}

func TestServer_Events(t *testing.T) {
	sm := thttp.NewStreamManager()
	loader, err := library.Loader()
	require.NoError(t, err)
	reg := registry.NewRegistry(loader, registry.WithEngineOptions(turing.WithLifecycleHooks(sm.Hooks())))
	srv := httptest.NewServer(thttp.NewHandler(reg, thttp.WithStreams(sm)))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, "GET", srv.URL+"/machines/equal-runs/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	scanner := bufio.NewScanner(resp.Body)
	next := func() string {
		for scanner.Scan() {
			if line, ok := strings.CutPrefix(scanner.Text(), "data: "); ok {
				return line
			}
		}
		return ""
	}
	require.Equal(t, "connected", next())
	require.Eventually(t, func() bool { return sm.Subscribers(library.EqualRuns) == 1 }, time.Second, 10*time.Millisecond)

	post, err := http.Post(srv.URL+"/machines/equal-runs/execute", "application/json", strings.NewReader(`{"input":"01"}`))
	require.NoError(t, err)
	post.Body.Close()

	var ev domain.RunEvent
	require.NoError(t, json.Unmarshal([]byte(next()), &ev))
	assert.Equal(t, domain.EventRunHalt, ev.Type)
	assert.Equal(t, library.EqualRuns, ev.Machine)
	assert.Equal(t, domain.VerdictAccept, ev.Verdict)
}

package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/registry"
	"github.com/aretw0/arbor/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quadGrammar = `
angle: 90
axiom: F
F -> F+F-F
`

func newTestHandler(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	gen := runner.New(
		runner.WithRegistry(registry.NewDefault()),
		runner.WithMaxIterations(5),
	)
	h, err := NewHandler(gen, opts...)
	require.NoError(t, err)
	return h
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload string
	switch b := body.(type) {
	case string:
		payload = b
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		payload = string(data)
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestGetHealth(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Equal(t, "ok", resp["status"])
}

func TestGetInfo(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/info", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	assert.NoError(t, err)

	assert.Equal(t, "arbor-http", resp["app"])
	assert.NotEmpty(t, resp["version"])
	assert.Equal(t, "0.1.0", resp["api_version"])
}

func TestOpenAPIDocument(t *testing.T) {
	doc, err := LoadSpec()
	require.NoError(t, err)
	assert.NotNil(t, doc.Paths.Find("/generate"))
	assert.NotNil(t, doc.Paths.Find("/expand"))

	handler := newTestHandler(t)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "GenerateRequest")
}

func TestGenerate(t *testing.T) {
	handler := newTestHandler(t)

	rr := postJSON(t, handler, "/generate", map[string]any{
		"grammar":    quadGrammar,
		"iterations": 1,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var res domain.GenerateResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Len(t, res.Branches, 3)
	assert.Equal(t, 5, res.Symbols)
	assert.Equal(t, 90.0, res.Angle)
	assert.Equal(t, 1.0, res.Step)
	for _, b := range res.Branches {
		assert.InDelta(t, 1.0, b.Length(), 1e-9)
	}
	assert.NotEmpty(t, rr.Header().Get(RequestIDHeader))
}

func TestGenerate_Preset(t *testing.T) {
	handler := newTestHandler(t)

	rr := postJSON(t, handler, "/generate", `{"preset":"koch-curve","iterations":2,"step":0.5}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var res domain.GenerateResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.NotEmpty(t, res.Branches)
	assert.Equal(t, 0.5, res.Step)
}

func TestExpand(t *testing.T) {
	handler := newTestHandler(t)

	rr := postJSON(t, handler, "/expand", map[string]any{
		"grammar":    "axiom: F\nF -> F[+F]F",
		"iterations": 2,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var res domain.ExpandResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, "F[+F]F[+F[+F]F]F[+F]F", res.Sequence)
	assert.Equal(t, 21, res.Symbols)
	assert.Equal(t, 9, res.Draws)
}

func TestListPresets(t *testing.T) {
	handler := newTestHandler(t)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/presets", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string][]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp["presets"], "koch-curve")
	assert.Contains(t, resp["presets"], "bush")
}

func TestGenerate_Errors(t *testing.T) {
	handler := newTestHandler(t)

	tests := []struct {
		name   string
		body   string
		status int
		substr string
	}{
		{"missing iterations", `{"grammar":"axiom: F"}`, http.StatusBadRequest, "iterations"},
		{"negative iterations", `{"grammar":"axiom: F","iterations":-1}`, http.StatusBadRequest, ""},
		{"unknown field", `{"grammar":"axiom: F","iterations":1,"depth":3}`, http.StatusBadRequest, ""},
		{"bad format", `{"grammar":"axiom: F","iterations":1,"format":"xml"}`, http.StatusBadRequest, ""},
		{"malformed json", `{"grammar":`, http.StatusBadRequest, ""},
		{"grammar and preset", `{"grammar":"axiom: F","preset":"bush","iterations":1}`, http.StatusBadRequest, "mutually exclusive"},
		{"neither grammar nor preset", `{"iterations":1}`, http.StatusBadRequest, "required"},
		{"unknown preset", `{"preset":"baobab","iterations":1}`, http.StatusNotFound, "baobab"},
		{"syntax error", `{"grammar":"axiom F","iterations":1}`, http.StatusUnprocessableEntity, "grammar"},
		{"unbalanced", `{"grammar":"axiom: F]","iterations":0}`, http.StatusUnprocessableEntity, "unbalanced"},
		{"bad step", `{"grammar":"axiom: F","iterations":0,"step":0}`, http.StatusUnprocessableEntity, "step"},
		{"too deep", `{"grammar":"axiom: F","iterations":6}`, http.StatusUnprocessableEntity, "limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postJSON(t, handler, "/generate", tt.body)
			assert.Equal(t, tt.status, rr.Code, rr.Body.String())

			var resp errorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
			assert.NotEmpty(t, resp.RequestID)
			if tt.substr != "" {
				assert.Contains(t, resp.Error, tt.substr)
			}
		})
	}
}

func TestGenerate_RequiresJSONContentType(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(`{"grammar":"axiom: F","iterations":1}`))
	req.Header.Set("Content-Type", "text/plain")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRequestID_Propagated(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, "req-42", rr.Header().Get(RequestIDHeader))
}

func TestCORSPreflight(t *testing.T) {
	handler := newTestHandler(t)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, "/generate", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	gen := runner.New(runner.WithLifecycleHooks(m.Hooks()))
	handler, err := NewHandler(gen, WithMetrics(m))
	require.NoError(t, err)

	rr := postJSON(t, handler, "/generate", map[string]any{"grammar": quadGrammar, "iterations": 2})
	require.Equal(t, http.StatusOK, rr.Code)
	rr = postJSON(t, handler, "/generate", map[string]any{"grammar": "axiom: F]", "iterations": 0})
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	text := string(body)
	assert.Contains(t, text, `arbor_http_requests_total{code="200",route="/generate"} 1`)
	assert.Contains(t, text, `arbor_http_requests_total{code="422",route="/generate"} 1`)
	assert.Contains(t, text, "arbor_expansions_total 2")
	assert.Contains(t, text, "arbor_interpret_errors_total 1")
	assert.Contains(t, text, "arbor_branches_count 1")
}

type failingGenerator struct{ err error }

func (f failingGenerator) Generate(context.Context, domain.GenerateRequest) (*domain.GenerateResult, error) {
	return nil, f.err
}

func (f failingGenerator) Expand(context.Context, domain.GenerateRequest) (*domain.ExpandResult, error) {
	return nil, f.err
}

func (f failingGenerator) Presets() []string { return nil }

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{&domain.GrammarSyntaxError{Line: 1, Reason: "x"}, http.StatusUnprocessableEntity},
		{&domain.UnbalancedBracketError{Index: 0}, http.StatusUnprocessableEntity},
		{&domain.InvalidParameterError{Name: "step"}, http.StatusUnprocessableEntity},
		{&domain.IterationLimitError{Requested: 9, Max: 8}, http.StatusUnprocessableEntity},
		{fmt.Errorf("wrapped: %w", domain.ErrPresetNotFound), http.StatusNotFound},
		{domain.ErrInvalidRequest, http.StatusBadRequest},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{context.Canceled, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, statusFor(tt.err), tt.err.Error())
	}
}

func TestGenerate_InternalError(t *testing.T) {
	handler, err := NewHandler(failingGenerator{err: errors.New("cache exploded")})
	require.NoError(t, err)

	rr := postJSON(t, handler, "/expand", `{"grammar":"axiom: F","iterations":1}`)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/presets", nil))
	assert.JSONEq(t, `{"presets":[]}`, rr.Body.String())
}

func TestWriteJSON_EncodeFailure(t *testing.T) {
	s := &Server{Logger: slog.New(slog.DiscardHandler)}

	rr := httptest.NewRecorder()
	s.writeJSON(rr, http.StatusOK, map[string]float64{"x": math.Inf(1)})

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"failed to encode response"}`, rr.Body.String())
}

package server

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"yqhp/calculator/internal/config"
	"yqhp/calculator/internal/expression"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, s *Server, method, path, body string) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.App().Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), "body: %s", raw)
	return resp.StatusCode, env
}

func TestHealthCheck(t *testing.T) {
	server := NewServer(nil, nil)

	for _, path := range []string{"/health", "/api/v1/health"} {
		req := httptest.NewRequest("GET", path, nil)
		resp, err := server.App().Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))

		body, _ := io.ReadAll(resp.Body)
		var result HealthResponse
		require.NoError(t, json.Unmarshal(body, &result))
		assert.Equal(t, "healthy", result.Status)
	}
}

func TestEvaluate(t *testing.T) {
	server := NewServer(nil, nil)

	status, env := doJSON(t, server, "POST", "/api/v1/calc/evaluate", `{"expression":"2+3*4"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 0, env.Code)

	var result EvaluateResponse
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "2+3*4", result.Expression)
	assert.Equal(t, "2 3 4 * +", result.RPN)
	require.NotNil(t, result.Result)
	assert.Equal(t, 14.0, *result.Result)
	assert.True(t, result.Finite)
	assert.Equal(t, "14", result.Display)
}

func TestEvaluate_NonFinite(t *testing.T) {
	server := NewServer(nil, nil)

	tests := map[string]string{
		"1/0":       "Infinity",
		"0-1/0":     "-Infinity",
		"sqrt(0-1)": "NaN",
	}
	for expr, want := range tests {
		t.Run(expr, func(t *testing.T) {
			status, env := doJSON(t, server, "POST", "/api/v1/calc/evaluate", `{"expression":"`+expr+`"}`)
			assert.Equal(t, fiber.StatusOK, status)

			var result EvaluateResponse
			require.NoError(t, json.Unmarshal(env.Data, &result))
			assert.Nil(t, result.Result)
			assert.False(t, result.Finite)
			assert.Equal(t, want, result.Display)
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	server := NewServer(nil, nil)

	tests := []struct {
		expr     string
		kind     string
		position int
		token    string
	}{
		{expr: "(2+3", kind: "UnbalancedParenthesis", position: 0, token: "end of input"},
		{expr: "2+3)", kind: "UnbalancedParenthesis", position: 3, token: ")"},
		{expr: "1+foo", kind: "InvalidToken", position: 2, token: "foo"},
		{expr: "2+", kind: "InvalidExpression", position: 1, token: "+"},
		{expr: "", kind: "InvalidExpression", position: -1},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			status, env := doJSON(t, server, "POST", "/api/v1/calc/evaluate", `{"expression":"`+tt.expr+`"}`)
			assert.Equal(t, fiber.StatusUnprocessableEntity, status)
			assert.Equal(t, 422, env.Code)
			assert.NotEmpty(t, env.Message)

			var data EvaluateErrorData
			require.NoError(t, json.Unmarshal(env.Data, &data))
			assert.Equal(t, tt.expr, data.Expression)
			assert.Equal(t, tt.kind, data.Kind)
			assert.Equal(t, tt.position, data.Position)
			assert.Equal(t, tt.token, data.Token)
		})
	}
}

func TestEvaluate_BadRequest(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.MaxExpression = 8
	server := NewServer(cfg, nil)

	status, env := doJSON(t, server, "POST", "/api/v1/calc/evaluate", `{"expression":`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, 400, env.Code)

	status, env = doJSON(t, server, "POST", "/api/v1/calc/evaluate", `{"expression":"1+2+3+4+5"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, env.Message, "limit is 8")
}

func TestDisplay(t *testing.T) {
	server := NewServer(nil, nil)

	tests := []struct {
		body     string
		expected string
	}{
		{body: `{"display":"2×3"}`, expected: "6"},
		{body: `{"display":"50%"}`, expected: "0.5"},
		{body: `{"display":"√(16)"}`, expected: "4"},
		{body: `{"display":"1÷0"}`, expected: "Infinity"},
		{body: `{"display":"(2"}`, expected: "Error"},
		{body: `{"display":"1÷3","precision":3}`, expected: "0.333"},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			status, env := doJSON(t, server, "POST", "/api/v1/calc/display", tt.body)
			assert.Equal(t, fiber.StatusOK, status)
			assert.Equal(t, 0, env.Code)

			var result DisplayResponse
			require.NoError(t, json.Unmarshal(env.Data, &result))
			assert.Equal(t, tt.expected, result.Result)
		})
	}

	status, _ := doJSON(t, server, "POST", "/api/v1/calc/display", `{"display":"1","precision":99}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestDisplay_DefaultPrecisionFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Display.Precision = 4
	server := NewServer(cfg, nil)

	_, env := doJSON(t, server, "POST", "/api/v1/calc/display", `{"display":"2÷3"}`)
	var result DisplayResponse
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "0.6667", result.Result)
}

func TestDisplay_RecordsOneEvaluation(t *testing.T) {
	server := NewServer(nil, nil)

	_, env := doJSON(t, server, "POST", "/api/v1/calc/display", `{"display":"2×"}`)
	var result DisplayResponse
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "Error", result.Result)

	snap := server.Stats().Snapshot()
	assert.Equal(t, int64(1), snap.Total)
	assert.Equal(t, int64(1), snap.ByKind["InvalidExpression"])
}

func TestKeys(t *testing.T) {
	server := NewServer(nil, nil)

	status, env := doJSON(t, server, "POST", "/api/v1/calc/keys", `{"keys":["2","+","3","=","×","2","="]}`)
	assert.Equal(t, fiber.StatusOK, status)

	var result KeysResponse
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "10", result.Display)
	require.Len(t, result.History, 2)
	assert.Equal(t, "2+3", result.History[0].Expression)
	assert.Equal(t, "5×2", result.History[1].Expression)

	status, env = doJSON(t, server, "POST", "/api/v1/calc/keys", `{"keys":["2","?"]}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, env.Message, `key 1: unknown key "?"`)
}

func TestFunctions(t *testing.T) {
	server := NewServer(nil, nil)

	status, env := doJSON(t, server, "GET", "/api/v1/calc/functions", "")
	assert.Equal(t, fiber.StatusOK, status)

	var result FunctionsResponse
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Len(t, result.Operators, 6)
	assert.Contains(t, result.Functions, "sqrt")
	assert.Contains(t, result.Constants, "pi")
	assert.Equal(t, []string{"!"}, result.Postfix)
}

func TestStats(t *testing.T) {
	server := NewServer(nil, nil)

	doJSON(t, server, "POST", "/api/v1/calc/evaluate", `{"expression":"1+1"}`)
	doJSON(t, server, "POST", "/api/v1/calc/evaluate", `{"expression":"1+"}`)
	doJSON(t, server, "POST", "/api/v1/calc/evaluate", `{"expression":"(1"}`)
	doJSON(t, server, "POST", "/api/v1/calc/display", `{"display":"2×2"}`)

	status, env := doJSON(t, server, "GET", "/api/v1/calc/stats", "")
	assert.Equal(t, fiber.StatusOK, status)

	var result StatsResponse
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, int64(4), result.Total)
	assert.Equal(t, int64(2), result.ByKind["None"])
	assert.Equal(t, int64(1), result.ByKind["InvalidExpression"])
	assert.Equal(t, int64(1), result.ByKind["UnbalancedParenthesis"])
	assert.GreaterOrEqual(t, result.Latency.Max, result.Latency.P50)
	assert.GreaterOrEqual(t, result.Latency.Min, int64(1))
}

func TestStats_Record(t *testing.T) {
	stats := NewStats()
	stats.Record(0, expression.KindNone)
	stats.Record(2*time.Hour, expression.KindInvalidToken)

	snap := stats.Snapshot()
	assert.Equal(t, int64(2), snap.Total)
	assert.Equal(t, int64(1), snap.ByKind["InvalidToken"])
	assert.InEpsilon(t, float64(maxTrackedLatency), float64(snap.Latency.Max), 0.01)

	stats.Reset()
	assert.Equal(t, int64(0), stats.Snapshot().Total)
	assert.Empty(t, stats.Snapshot().ByKind)
}

func TestNotFound(t *testing.T) {
	server := NewServer(nil, nil)

	status, env := doJSON(t, server, "GET", "/api/v1/nope", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, 404, env.Code)
}

func TestCORSEnabled(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.EnableCORS = true
	server := NewServer(cfg, nil)

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("Origin", "http://example.com")
	resp, err := server.App().Test(req)
	require.NoError(t, err)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

package server

import (
	"yqhp/calculator/internal/display"
	"yqhp/calculator/internal/expression"
)

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// EvaluateRequest asks for raw evaluator semantics.
type EvaluateRequest struct {
	Expression string `json:"expression"`
}

// EvaluateResponse is the result of a successful raw evaluation.
// JSON has no encoding for NaN or ±Inf, so Result is null for those and
// Display carries the textual form.
type EvaluateResponse struct {
	Expression string   `json:"expression"`
	RPN        string   `json:"rpn"`
	Result     *float64 `json:"result"`
	Finite     bool     `json:"finite"`
	Display    string   `json:"display"`
}

// EvaluateErrorData describes why an expression was rejected.
type EvaluateErrorData struct {
	Expression string `json:"expression"`
	Kind       string `json:"kind"`
	Position   int    `json:"position"`
	Token      string `json:"token,omitempty"`
}

// DisplayRequest asks for calculator display semantics.
type DisplayRequest struct {
	Display   string `json:"display"`
	Precision *int   `json:"precision,omitempty"`
}

// DisplayResponse is always returned for display requests; Result may be
// display.ErrorText.
type DisplayResponse struct {
	Display string `json:"display"`
	Result  string `json:"result"`
}

// KeysRequest replays keypad presses on a fresh pad.
type KeysRequest struct {
	Keys      []string `json:"keys"`
	Precision *int     `json:"precision,omitempty"`
}

// KeysResponse is the pad state after the last key.
type KeysResponse struct {
	Display string          `json:"display"`
	History []display.Entry `json:"history"`
}

// FunctionsResponse lists what the evaluator understands.
type FunctionsResponse struct {
	Operators []expression.OperatorInfo `json:"operators"`
	Functions []string                  `json:"functions"`
	Constants map[string]float64        `json:"constants"`
	Postfix   []string                  `json:"postfix"`
	Keys      []string                  `json:"keys"`
}

// StatsResponse summarises evaluations since start-up.
type StatsResponse struct {
	Total   int64            `json:"total"`
	ByKind  map[string]int64 `json:"by_kind"`
	Latency LatencySummary   `json:"latency_us"`
}

// LatencySummary holds evaluation latency percentiles in microseconds.
type LatencySummary struct {
	Min  int64   `json:"min"`
	P50  int64   `json:"p50"`
	P90  int64   `json:"p90"`
	P99  int64   `json:"p99"`
	Max  int64   `json:"max"`
	Mean float64 `json:"mean"`
}

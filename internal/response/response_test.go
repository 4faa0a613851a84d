package response

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(t *testing.T, handler fiber.Handler) (int, Response) {
	t.Helper()
	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out Response
	require.NoError(t, json.Unmarshal(body, &out))
	return resp.StatusCode, out
}

func TestSuccess(t *testing.T) {
	status, out := call(t, func(c *fiber.Ctx) error {
		return Success(c, map[string]int{"answer": 42})
	})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, CodeSuccess, out.Code)
	assert.Equal(t, MsgSuccess, out.Message)
	assert.Equal(t, map[string]any{"answer": float64(42)}, out.Data)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler fiber.Handler
		status  int
		code    int
		message string
	}{
		{
			name:    "bad request default message",
			handler: func(c *fiber.Ctx) error { return BadRequest(c, "") },
			status:  fiber.StatusBadRequest,
			code:    CodeBadRequest,
			message: MsgBadRequest,
		},
		{
			name:    "not found",
			handler: func(c *fiber.Ctx) error { return NotFound(c, "no such route") },
			status:  fiber.StatusNotFound,
			code:    CodeNotFound,
			message: "no such route",
		},
		{
			name:    "unprocessable",
			handler: func(c *fiber.Ctx) error { return Unprocessable(c, "", fiber.Map{"kind": "InvalidToken"}) },
			status:  fiber.StatusUnprocessableEntity,
			code:    CodeUnprocessable,
			message: MsgUnprocessable,
		},
		{
			name:    "server error",
			handler: func(c *fiber.Ctx) error { return ServerError(c, "") },
			status:  fiber.StatusInternalServerError,
			code:    CodeServerError,
			message: MsgServerError,
		},
		{
			name:    "non http code",
			handler: func(c *fiber.Ctx) error { return Error(c, CodeError, "boom") },
			status:  fiber.StatusInternalServerError,
			code:    CodeError,
			message: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, out := call(t, tt.handler)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, out.Code)
			assert.Equal(t, tt.message, out.Message)
		})
	}
}

package server

import (
	"errors"
	"fmt"
	"math"
	"time"

	"yqhp/calculator/internal/display"
	"yqhp/calculator/internal/expression"
	"yqhp/calculator/internal/logger"
	"yqhp/calculator/internal/middleware"
	"yqhp/calculator/internal/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// healthCheck handles GET /health
func (s *Server) healthCheck(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// evaluate handles POST /api/v1/calc/evaluate
func (s *Server) evaluate(c *fiber.Ctx) error {
	var req EvaluateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "failed to parse request body: "+err.Error())
	}
	if err := s.checkLength(req.Expression); err != nil {
		return response.BadRequest(c, err.Error())
	}

	start := time.Now()
	rpn, err := s.evaluator.Compile(req.Expression)
	var result float64
	if err == nil {
		result, err = s.evaluator.Run(rpn)
	}
	kind := expression.KindOf(err)
	s.stats.Record(time.Since(start), kind)

	if err != nil {
		logger.Debug("expression rejected",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("expression", req.Expression),
			zap.String("kind", kind.String()),
			zap.Error(err),
		)
		return response.Unprocessable(c, err.Error(), errorData(req.Expression, err))
	}

	resp := EvaluateResponse{
		Expression: req.Expression,
		RPN:        rpn.String(),
		Finite:     !math.IsNaN(result) && !math.IsInf(result, 0),
		Display:    display.Format(result, 0),
	}
	if resp.Finite {
		resp.Result = &result
	}
	return response.Success(c, resp)
}

// displayCalculate handles POST /api/v1/calc/display
func (s *Server) displayCalculate(c *fiber.Ctx) error {
	var req DisplayRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "failed to parse request body: "+err.Error())
	}
	if err := s.checkLength(req.Display); err != nil {
		return response.BadRequest(c, err.Error())
	}
	precision, err := s.precision(req.Precision)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	start := time.Now()
	v, evalErr := display.Evaluate(req.Display)
	s.stats.Record(time.Since(start), expression.KindOf(evalErr))

	return response.Success(c, DisplayResponse{
		Display: req.Display,
		Result:  display.Result(v, evalErr, precision),
	})
}

// replayKeys handles POST /api/v1/calc/keys
func (s *Server) replayKeys(c *fiber.Ctx) error {
	var req KeysRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "failed to parse request body: "+err.Error())
	}
	precision, err := s.precision(req.Precision)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	pad := display.NewPad(precision, s.display.HistorySize)
	for i, key := range req.Keys {
		if _, err := pad.Press(key); err != nil {
			if errors.Is(err, display.ErrUnknownKey) {
				return response.BadRequest(c, fmt.Sprintf("key %d: unknown key %q", i, key))
			}
			return err
		}
	}

	return response.Success(c, KeysResponse{
		Display: pad.Display(),
		History: pad.History(),
	})
}

// listFunctions handles GET /api/v1/calc/functions
func (s *Server) listFunctions(c *fiber.Ctx) error {
	return response.Success(c, FunctionsResponse{
		Operators: expression.Operators(),
		Functions: expression.Functions(),
		Constants: expression.Constants(),
		Postfix:   []string{"!"},
		Keys:      display.Keys(),
	})
}

// getStats handles GET /api/v1/calc/stats
func (s *Server) getStats(c *fiber.Ctx) error {
	return response.Success(c, s.stats.Snapshot())
}

func (s *Server) checkLength(expr string) error {
	if limit := s.server.MaxExpression; limit > 0 && len(expr) > limit {
		return fmt.Errorf("expression is %d bytes, limit is %d", len(expr), limit)
	}
	return nil
}

func (s *Server) precision(requested *int) (int, error) {
	if requested == nil {
		return s.display.Precision, nil
	}
	if *requested < 0 || *requested > 17 {
		return 0, fmt.Errorf("precision must be between 0 and 17, got %d", *requested)
	}
	return *requested, nil
}

func errorData(expr string, err error) EvaluateErrorData {
	data := EvaluateErrorData{
		Expression: expr,
		Kind:       expression.KindOf(err).String(),
		Position:   -1,
	}

	var parseErr *expression.ParseError
	var evalErr *expression.EvaluationError
	switch {
	case errors.As(err, &parseErr):
		data.Position = parseErr.Position
		data.Token = parseErr.Got
	case errors.As(err, &evalErr):
		data.Position = evalErr.Position
		data.Token = evalErr.Token
	}
	return data
}

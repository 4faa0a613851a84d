package response

import (
	"github.com/gofiber/fiber/v2"
)

// Response 统一响应结构
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// 响应码定义
const (
	CodeSuccess       = 0
	CodeError         = -1
	CodeBadRequest    = 400
	CodeNotFound      = 404
	CodeUnprocessable = 422
	CodeServerError   = 500
)

// 响应消息定义
const (
	MsgSuccess       = "success"
	MsgBadRequest    = "bad request"
	MsgNotFound      = "not found"
	MsgUnprocessable = "expression cannot be evaluated"
	MsgServerError   = "server error"
)

// Success 成功响应
func Success(c *fiber.Ctx, data any) error {
	return c.JSON(Response{
		Code:    CodeSuccess,
		Message: MsgSuccess,
		Data:    data,
	})
}

// Error 错误响应，HTTP 状态码与业务码一致
func Error(c *fiber.Ctx, code int, message string) error {
	return ErrorWithData(c, code, message, nil)
}

// ErrorWithData 错误响应带数据
func ErrorWithData(c *fiber.Ctx, code int, message string, data any) error {
	status := code
	if status < 400 || status > 599 {
		status = fiber.StatusInternalServerError
	}
	return c.Status(status).JSON(Response{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// BadRequest 请求参数错误
func BadRequest(c *fiber.Ctx, message string) error {
	if message == "" {
		message = MsgBadRequest
	}
	return Error(c, CodeBadRequest, message)
}

// NotFound 未找到响应
func NotFound(c *fiber.Ctx, message string) error {
	if message == "" {
		message = MsgNotFound
	}
	return Error(c, CodeNotFound, message)
}

// Unprocessable 表达式无法求值
func Unprocessable(c *fiber.Ctx, message string, data any) error {
	if message == "" {
		message = MsgUnprocessable
	}
	return ErrorWithData(c, CodeUnprocessable, message, data)
}

// ServerError 服务器错误响应
func ServerError(c *fiber.Ctx, message string) error {
	if message == "" {
		message = MsgServerError
	}
	return Error(c, CodeServerError, message)
}

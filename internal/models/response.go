package models

import "github.com/gofiber/fiber/v2"

// Response is the uniform envelope every endpoint returns. Callers branch
// on Success only, never on the transport status code.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// Respond writes a success envelope with the given payload.
func Respond(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(Response{
		Success: true,
		Data:    data,
	})
}

// RespondMessage writes a success envelope with a payload and an
// informational message.
func RespondMessage(c *fiber.Ctx, status int, data any, message string) error {
	return c.Status(status).JSON(Response{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// RespondWithError translates an error into the envelope. The HTTP status
// is derived from the error code; internal error details never leak to the
// caller beyond the generic message.
func RespondWithError(c *fiber.Ctx, err error) error {
	appErr := AsAppError(err)
	return c.Status(appErr.HTTPStatus()).JSON(Response{
		Success: false,
		Error:   appErr.Message,
		Code:    appErr.Code,
	})
}

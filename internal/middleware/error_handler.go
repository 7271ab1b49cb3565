package middleware

import (
	"net/http"

	"github.com/futsala/futsala-backend/internal/dto"
	"github.com/labstack/echo/v4"
)

// ErrorHandler renders every error as the {success:false, message} envelope.
// Internal errors keep a generic message; details stay in the server log.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	}

	_ = c.JSON(code, dto.Envelope{Success: false, Message: msg})
}

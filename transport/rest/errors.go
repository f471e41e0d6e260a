package rest

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/tictactoe-move-server/internal/apperror"
)

type errorResponse struct {
	Error string `json:"error"`
}

// newErrorHandler - renders every error that reaches echo as {"error": "..."}.
// Unknown errors become a 500 without details.
func newErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	log := logger.With("method", "handleError")

	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		status := http.StatusInternalServerError

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.Code
		}

		var message string

		switch {
		case status == http.StatusNotFound:
			message = "endpoint not found"
		case status == http.StatusMethodNotAllowed:
			message = "method not allowed"
		case status == http.StatusTooManyRequests:
			message = apperror.ErrRateLimitExceeded.Error()
		case status >= http.StatusInternalServerError:
			log.Error("request failed", "status", status, "error", err)
			if status != http.StatusServiceUnavailable {
				status = http.StatusInternalServerError
			}
			message = strings.ToLower(http.StatusText(status))
		default:
			message = strings.ToLower(http.StatusText(status))
		}

		if ctx.Request().Method == http.MethodHead {
			err = ctx.NoContent(status)
		} else {
			err = ctx.JSON(status, errorResponse{Error: message})
		}

		if err != nil {
			log.Error("failed to write error response", "error", err)
		}
	}
}

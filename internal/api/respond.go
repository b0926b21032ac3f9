package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zjrosen/artcollab/internal/command"
	"github.com/zjrosen/artcollab/internal/domain"
	"github.com/zjrosen/artcollab/internal/log"
	"github.com/zjrosen/artcollab/internal/processor"
)

// ErrorResponse is the body of every non-200 response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusFor maps an infrastructure error onto an HTTP status.
func statusFor(err error) int {
	var verr *processor.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, command.ErrQueueFull):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respond writes the tagged result, or the error mapped to a status.
func respond(c *gin.Context, r domain.Result, err error) {
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			log.ErrorErr(log.CatAPI, "request failed", err, "path", c.FullPath())
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, r)
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

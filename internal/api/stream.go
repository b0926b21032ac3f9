package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zjrosen/artcollab/internal/domain"
	"github.com/zjrosen/artcollab/internal/log"
)

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status       string `json:"status"`
	QueueLength  int    `json:"queue_length"`
	Processed    int64  `json:"processed"`
	Errors       int64  `json:"errors"`
	Settled      int64  `json:"settled"`
	SettleFailed int64  `json:"settle_failed"`
}

// Health reports processor and settlement counters. 503 once the processor stops.
// GET /healthz
func (h *Handler) Health(c *gin.Context) {
	p := h.infra.Processor
	resp := HealthResponse{
		Status:       "ok",
		QueueLength:  p.QueueLength(),
		Processed:    p.ProcessedCount(),
		Errors:       p.ErrorCount(),
		Settled:      h.infra.Dispatcher.Settled(),
		SettleFailed: h.infra.Dispatcher.Failed(),
	}
	if !p.IsRunning() {
		resp.Status = "unavailable"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func startStream(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.WriteHeaderNow()
	c.Writer.Flush()
}

// StreamEvents streams domain events as server-sent events named after the
// event kind, until the client disconnects.
// GET /v1/events
func (h *Handler) StreamEvents(c *gin.Context) {
	ctx := c.Request.Context()
	sub := h.infra.EventBus.Subscribe(ctx)
	startStream(c)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub:
			if !ok {
				return
			}
			name := domain.EventName(ev.Payload)
			if name == "" {
				continue
			}
			c.SSEvent(name, ev.Payload)
			c.Writer.Flush()
		}
	}
}

// StreamLogs tails the log as server-sent "log" events.
// GET /v1/logs
func (h *Handler) StreamLogs(c *gin.Context) {
	ctx := c.Request.Context()
	listener := log.NewListener(ctx)
	if listener == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "logging is disabled"})
		return
	}
	startStream(c)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-listener.C():
			if !ok {
				return
			}
			c.SSEvent("log", ev.Payload)
			c.Writer.Flush()
		}
	}
}

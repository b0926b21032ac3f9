package api

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/zjrosen/artcollab/internal/domain"
	"github.com/zjrosen/artcollab/internal/log"
)

const (
	idempotencyHeader = "Idempotency-Key"
	replayedHeader    = "Idempotent-Replayed"
)

// idempotencyKey scopes a client key to its caller and route.
type idempotencyKey string

func newIdempotencyKey(caller domain.ArtistID, path, key string) idempotencyKey {
	return idempotencyKey(string(caller) + "\x00" + path + "\x00" + key)
}

// operation is one command submission.
type operation func(ctx context.Context) (domain.Result, error)

func runOperation(ctx context.Context, op operation) (domain.Result, error) {
	return op(ctx)
}

// execute runs op, replaying an earlier result when the request repeats an
// Idempotency-Key. Refusals are replayed too; infrastructure errors are not
// remembered so the client can retry them.
func (h *Handler) execute(c *gin.Context, op operation) {
	key := strings.TrimSpace(c.GetHeader(idempotencyHeader))
	if key == "" {
		r, err := op(c.Request.Context())
		respond(c, r, err)
		return
	}

	k := newIdempotencyKey(callerOf(c), c.Request.URL.Path, key)
	r, hit, err := h.idempotency.Get(c.Request.Context(), k, op, h.idempotencyTTL)
	if hit {
		log.Debug(log.CatAPI, "idempotent replay", "caller", callerOf(c), "path", c.Request.URL.Path)
		c.Header(replayedHeader, "true")
	}
	respond(c, r, err)
}

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/microcosm-cc/bluemonday"

	"github.com/zjrosen/artcollab/internal/domain"
	"github.com/zjrosen/artcollab/internal/log"
	"github.com/zjrosen/artcollab/internal/tracing"
)

const (
	callerKey       = "caller"
	requestIDHeader = "X-Request-ID"
)

// requestLogger logs one line per request under the api category.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug(log.CatAPI, "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"trace_id", tracing.TraceIDFromContext(c.Request.Context()),
		)
	}
}

// traceContext puts the request id (or a fresh one) on the request context so
// commands and their spans carry it.
func traceContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" {
			id = tracing.GenerateTraceID()
		}
		c.Request = c.Request.WithContext(tracing.ContextWithTraceID(c.Request.Context(), id))
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// callerIdentity resolves the acting caller. With a JWT secret the caller is
// the sub claim of an HS256 bearer token; otherwise it is the caller header.
func (h *Handler) callerIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		var caller string
		if h.cfg.JWTSecret != "" {
			sub, status, err := subjectFromBearer(c.GetHeader("Authorization"), []byte(h.cfg.JWTSecret))
			if err != nil {
				c.AbortWithStatusJSON(status, ErrorResponse{Error: err.Error()})
				return
			}
			caller = sub
		} else {
			caller = c.GetHeader(h.cfg.CallerHeader)
		}

		id := domain.ArtistID(strings.TrimSpace(caller))
		if id.IsZero() {
			badRequest(c, "caller id is required")
			return
		}
		c.Set(callerKey, id)
		c.Next()
	}
}

func subjectFromBearer(header string, secret []byte) (string, int, error) {
	if header == "" {
		return "", http.StatusBadRequest, fmt.Errorf("caller id is required")
	}
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return "", http.StatusUnauthorized, fmt.Errorf("bearer token malformed")
	}

	token, err := jwt.Parse(strings.TrimSpace(raw), func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", http.StatusUnauthorized, fmt.Errorf("invalid or expired token")
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", http.StatusBadRequest, fmt.Errorf("token has no subject")
	}
	return sub, 0, nil
}

func callerOf(c *gin.Context) domain.ArtistID {
	id, _ := c.Get(callerKey)
	caller, _ := id.(domain.ArtistID)
	return caller
}

// stripMarkup removes tags but keeps the text as plain text. The policy
// HTML-escapes what it keeps, so entities are decoded again, and the pass is
// repeated until escaped markup cannot come back as a tag.
func stripMarkup(policy *bluemonday.Policy, s string) string {
	for i := 0; i < 4; i++ {
		next := html.UnescapeString(policy.Sanitize(s))
		if next == s {
			break
		}
		s = next
	}
	return s
}

// sanitizeInput strips markup from every top-level string field of a JSON body.
// Numbers are kept as written so large amounts survive the round trip.
func sanitizeInput(policy *bluemonday.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil {
			c.Next()
			return
		}
		buf, err := io.ReadAll(c.Request.Body)
		if err != nil {
			badRequest(c, "invalid body")
			return
		}
		if len(bytes.TrimSpace(buf)) == 0 {
			c.Request.Body = io.NopCloser(bytes.NewReader(buf))
			c.Next()
			return
		}

		var body map[string]any
		dec := json.NewDecoder(bytes.NewReader(buf))
		dec.UseNumber()
		if err := dec.Decode(&body); err != nil {
			badRequest(c, "malformed JSON")
			return
		}
		for k, v := range body {
			if s, ok := v.(string); ok {
				body[k] = stripMarkup(policy, s)
			}
		}

		clean, err := json.Marshal(body)
		if err != nil {
			badRequest(c, "malformed JSON")
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(clean))
		c.Request.ContentLength = int64(len(clean))
		c.Next()
	}
}

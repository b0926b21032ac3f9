// Package api exposes the registry over HTTP with gin.
//
// Every command endpoint answers 200 with the tagged result
// {"type":"ok","value":...} or {"type":"err","value":<code>}. Other statuses
// mean the command never reached the engine or the runtime failed.
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"github.com/zjrosen/artcollab/internal/cachemanager"
	"github.com/zjrosen/artcollab/internal/command"
	"github.com/zjrosen/artcollab/internal/core"
	"github.com/zjrosen/artcollab/internal/domain"
)

// Config configures the HTTP surface.
type Config struct {
	// CallerHeader carries the caller id when JWTSecret is empty. Defaults to X-Caller-ID.
	CallerHeader string
	// JWTSecret switches caller identity to HS256 bearer tokens (sub claim).
	JWTSecret string
	// CORSOrigins enables CORS for these origins. Empty disables it.
	CORSOrigins []string

	// IdempotencyTTL is how long Idempotency-Key results are replayed. Zero disables replay.
	IdempotencyTTL             time.Duration
	IdempotencyCleanupInterval time.Duration
}

// Handler serves the registry API.
type Handler struct {
	infra     *core.Infrastructure
	client    *core.Client
	cfg       Config
	sanitizer *bluemonday.Policy

	idempotency    *cachemanager.ReadThroughCache[idempotencyKey, domain.Result, operation]
	idempotencyTTL time.Duration
}

// NewHandler creates a handler over a started infrastructure.
func NewHandler(infra *core.Infrastructure, cfg Config) *Handler {
	if cfg.CallerHeader == "" {
		cfg.CallerHeader = "X-Caller-ID"
	}
	cache := cachemanager.NewInMemoryCacheManager[idempotencyKey, domain.Result](
		"idempotency", cfg.IdempotencyTTL, cfg.IdempotencyCleanupInterval)

	return &Handler{
		infra:          infra,
		client:         infra.Client(command.SourceAPI),
		cfg:            cfg,
		sanitizer:      bluemonday.StrictPolicy(),
		idempotency:    cachemanager.NewReadThroughCache(cache, runOperation, cfg.IdempotencyTTL <= 0),
		idempotencyTTL: cfg.IdempotencyTTL,
	}
}

// Routes returns a gin engine with every route registered.
func (h *Handler) Routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(), traceContext())

	if len(h.cfg.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     h.cfg.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", h.cfg.CallerHeader, idempotencyHeader, requestIDHeader},
			ExposeHeaders:    []string{"Content-Length", replayedHeader, requestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/healthz", h.Health)

	v1 := r.Group("/v1")
	v1.GET("/artists/:id", h.GetArtist)
	v1.GET("/artists/:id/registered", h.IsRegistered)
	v1.GET("/artworks", h.ListArtworks)
	v1.GET("/artworks/:id", h.GetArtwork)
	v1.GET("/nfts", h.ListNfts)
	v1.GET("/nfts/:id", h.GetNft)
	v1.GET("/events", h.StreamEvents)
	v1.GET("/logs", h.StreamLogs)

	mutations := v1.Group("/")
	mutations.Use(h.callerIdentity(), sanitizeInput(h.sanitizer))
	mutations.POST("/artists", h.RegisterArtist)
	mutations.POST("/artworks", h.CreateArtwork)
	mutations.POST("/artworks/:id/contributions", h.AddContribution)
	mutations.POST("/artworks/:id/finalize", h.FinalizeArtwork)
	mutations.POST("/artworks/:id/nft", h.MintNft)
	mutations.POST("/nfts/:id/buy", h.BuyNft)

	return r
}

package api

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/artcollab/internal/command"
	"github.com/zjrosen/artcollab/internal/core"
	"github.com/zjrosen/artcollab/internal/domain"
	"github.com/zjrosen/artcollab/internal/processor"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestHandler(t *testing.T, cfg Config) (*Handler, *core.Infrastructure) {
	t.Helper()
	infra, err := core.NewInfrastructure(core.InfrastructureConfig{})
	require.NoError(t, err)
	require.NoError(t, infra.Start())
	t.Cleanup(func() { _ = infra.Shutdown(context.Background()) })
	return NewHandler(infra, cfg), infra
}

// call performs one request as caller ("" sends no caller header).
func call(t *testing.T, h http.Handler, method, path, caller, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if caller != "" {
		req.Header.Set("X-Caller-ID", caller)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func resultOf(t *testing.T, w *httptest.ResponseRecorder) domain.Result {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	var r domain.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &r))
	return r
}

func TestAPI_Scenario(t *testing.T) {
	h, _ := newTestHandler(t, Config{})
	routes := h.Routes()

	r := resultOf(t, call(t, routes, http.MethodPost, "/v1/artists", "artist1", `{"name":"Ada"}`))
	assert.Equal(t, domain.OK(true), r)

	r = resultOf(t, call(t, routes, http.MethodPost, "/v1/artworks", "artist1", `{"title":"T","description":"D"}`))
	assert.Equal(t, domain.OK(float64(1)), r)

	r = resultOf(t, call(t, routes, http.MethodPost, "/v1/artworks/1/contributions", "artist1", `{"amount":50}`))
	assert.True(t, r.IsOK())

	w := call(t, routes, http.MethodGet, "/v1/artworks/1", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		Type  string         `json:"type"`
		Value domain.Artwork `json:"value"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, uint64(150), got.Value.TotalContributions)
	assert.Equal(t, []domain.ArtistID{"artist1", "artist1"}, got.Value.Collaborators)

	r = resultOf(t, call(t, routes, http.MethodPost, "/v1/artworks/1/nft", "artist1", `{"price":10}`))
	assert.Equal(t, domain.CodeUnauthorized, r.ErrCode())

	r = resultOf(t, call(t, routes, http.MethodPost, "/v1/artworks/1/finalize", "intruder", ""))
	assert.Equal(t, domain.CodeUnauthorized, r.ErrCode())

	r = resultOf(t, call(t, routes, http.MethodPost, "/v1/artworks/1/finalize", "artist1", ""))
	assert.True(t, r.IsOK())

	r = resultOf(t, call(t, routes, http.MethodPost, "/v1/artworks/1/nft", "artist1", `{"price":10}`))
	assert.Equal(t, domain.OK(float64(1)), r)

	r = resultOf(t, call(t, routes, http.MethodPost, "/v1/artworks/1/nft", "artist1", `{"price":10}`))
	assert.Equal(t, domain.CodeAlreadyExists, r.ErrCode())

	r = resultOf(t, call(t, routes, http.MethodPost, "/v1/nfts/7/buy", "buyer", ""))
	assert.Equal(t, domain.CodeNotFound, r.ErrCode())

	r = resultOf(t, call(t, routes, http.MethodPost, "/v1/nfts/1/buy", "buyer", ""))
	assert.True(t, r.IsOK())

	r = resultOf(t, call(t, routes, http.MethodGet, "/v1/artists/artist1/registered", "", ""))
	assert.Equal(t, domain.OK(true), r)
	r = resultOf(t, call(t, routes, http.MethodGet, "/v1/artists/nobody", "", ""))
	assert.Equal(t, domain.CodeNotFound, r.ErrCode())
}

func TestAPI_RawErrorShape(t *testing.T) {
	h, _ := newTestHandler(t, Config{})

	w := call(t, h.Routes(), http.MethodPost, "/v1/artworks", "stranger", `{"title":"T"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"type":"err","value":102}`, w.Body.String())
}

func TestAPI_BadRequests(t *testing.T) {
	h, _ := newTestHandler(t, Config{})
	routes := h.Routes()

	tests := []struct {
		name, method, path, caller, body string
	}{
		{"missing caller", http.MethodPost, "/v1/artists", "", `{"name":"x"}`},
		{"blank caller", http.MethodPost, "/v1/artists", "   ", `{"name":"x"}`},
		{"bad artwork id", http.MethodPost, "/v1/artworks/abc/finalize", "a", ""},
		{"negative artwork id", http.MethodGet, "/v1/artworks/-1", "", ""},
		{"bad nft id", http.MethodGet, "/v1/nfts/x", "", ""},
		{"missing amount", http.MethodPost, "/v1/artworks/1/contributions", "a", `{}`},
		{"negative amount", http.MethodPost, "/v1/artworks/1/contributions", "a", `{"amount":-5}`},
		{"missing price", http.MethodPost, "/v1/artworks/1/nft", "a", `{"amount":1}`},
		{"malformed json", http.MethodPost, "/v1/artworks", "a", `{"title":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := call(t, routes, tt.method, tt.path, tt.caller, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", w.Body.String())
		})
	}
}

func TestAPI_SanitizesFreeText(t *testing.T) {
	h, infra := newTestHandler(t, Config{})
	routes := h.Routes()

	resultOf(t, call(t, routes, http.MethodPost, "/v1/artists", "a", `{"name":"<script>alert(1)</script>Ada"}`))
	resultOf(t, call(t, routes, http.MethodPost, "/v1/artworks", "a", `{"title":"<b>Dawn</b>","description":"<i>soft</i> light"}`))

	artist, err := infra.Engine.Artist("a")
	require.NoError(t, err)
	assert.Equal(t, "Ada", artist.Name)

	art, err := infra.Engine.Artwork(1)
	require.NoError(t, err)
	assert.Equal(t, "Dawn", art.Title)
	assert.Equal(t, "soft light", art.Description)
}

func TestAPI_SanitizingKeepsPlainText(t *testing.T) {
	h, infra := newTestHandler(t, Config{})
	routes := h.Routes()

	resultOf(t, call(t, routes, http.MethodPost, "/v1/artists", "a", `{"name":"Tom & Jerry"}`))
	resultOf(t, call(t, routes, http.MethodPost, "/v1/artworks", "a",
		`{"title":"5 > 3 \"quoted\"","description":"x < y, it's <b>bold</b>"}`))

	artist, err := infra.Engine.Artist("a")
	require.NoError(t, err)
	assert.Equal(t, "Tom & Jerry", artist.Name)

	art, err := infra.Engine.Artwork(1)
	require.NoError(t, err)
	assert.Equal(t, `5 > 3 "quoted"`, art.Title)
	assert.Equal(t, "x < y, it's bold", art.Description)
}

func TestStripMarkup(t *testing.T) {
	policy := bluemonday.StrictPolicy()
	tests := map[string]string{
		"plain":                   "plain",
		"Tom & Jerry":             "Tom & Jerry",
		`say "hi"`:                `say "hi"`,
		"it's":                    "it's",
		"<em>x</em> > y":          "x > y",
		"&lt;b&gt;x&lt;/b&gt;":    "x",
		"<script>x()</script>Ada": "Ada",
	}
	for in, want := range tests {
		assert.Equal(t, want, stripMarkup(policy, in), "input %q", in)
	}
}

func TestAPI_LargeAmountsSurviveSanitizing(t *testing.T) {
	h, infra := newTestHandler(t, Config{})
	routes := h.Routes()

	resultOf(t, call(t, routes, http.MethodPost, "/v1/artists", "a", `{"name":"A"}`))
	resultOf(t, call(t, routes, http.MethodPost, "/v1/artworks", "a", `{"title":"T"}`))
	resultOf(t, call(t, routes, http.MethodPost, "/v1/artworks/1/contributions", "a", `{"amount":9007199254740993}`))

	art, err := infra.Engine.Artwork(1)
	require.NoError(t, err)
	assert.Equal(t, uint64(9007199254740993), art.Contributions[1])
}

func TestAPI_IdempotencyKeyReplaysResult(t *testing.T) {
	h, infra := newTestHandler(t, Config{IdempotencyTTL: time.Minute})
	routes := h.Routes()

	resultOf(t, call(t, routes, http.MethodPost, "/v1/artists", "a", `{"name":"A"}`))

	first := call(t, routes, http.MethodPost, "/v1/artworks", "a", `{"title":"T"}`, idempotencyHeader, "k1")
	second := call(t, routes, http.MethodPost, "/v1/artworks", "a", `{"title":"T"}`, idempotencyHeader, "k1")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Empty(t, first.Header().Get(replayedHeader))
	assert.Equal(t, "true", second.Header().Get(replayedHeader))
	assert.Len(t, infra.Engine.Artworks(), 1)

	// Another caller with the same key is independent.
	resultOf(t, call(t, routes, http.MethodPost, "/v1/artists", "b", `{"name":"B"}`))
	third := resultOf(t, call(t, routes, http.MethodPost, "/v1/artworks", "b", `{"title":"U"}`, idempotencyHeader, "k1"))
	assert.Equal(t, domain.OK(float64(2)), third)
}

func TestAPI_IdempotencyDisabledWithoutTTL(t *testing.T) {
	h, infra := newTestHandler(t, Config{})
	routes := h.Routes()

	resultOf(t, call(t, routes, http.MethodPost, "/v1/artists", "a", `{"name":"A"}`))
	call(t, routes, http.MethodPost, "/v1/artworks", "a", `{"title":"T"}`, idempotencyHeader, "k1")
	w := call(t, routes, http.MethodPost, "/v1/artworks", "a", `{"title":"T"}`, idempotencyHeader, "k1")

	assert.Empty(t, w.Header().Get(replayedHeader))
	assert.Len(t, infra.Engine.Artworks(), 2)
}

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestAPI_JWTCaller(t *testing.T) {
	h, infra := newTestHandler(t, Config{JWTSecret: "s3cret"})
	routes := h.Routes()

	token := signed(t, "s3cret", jwt.MapClaims{"sub": "alice", "exp": time.Now().Add(time.Hour).Unix()})
	w := call(t, routes, http.MethodPost, "/v1/artists", "", `{"name":"Alice"}`, "Authorization", "Bearer "+token)
	assert.True(t, resultOf(t, w).IsOK())
	assert.True(t, infra.Engine.IsRegistered("alice"))

	// The caller header is ignored in token mode.
	w = call(t, routes, http.MethodPost, "/v1/artists", "mallory", `{"name":"M"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	forged := signed(t, "other", jwt.MapClaims{"sub": "bob"})
	w = call(t, routes, http.MethodPost, "/v1/artists", "", `{"name":"Bob"}`, "Authorization", "Bearer "+forged)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	expired := signed(t, "s3cret", jwt.MapClaims{"sub": "bob", "exp": time.Now().Add(-time.Hour).Unix()})
	w = call(t, routes, http.MethodPost, "/v1/artists", "", `{"name":"Bob"}`, "Authorization", "Bearer "+expired)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = call(t, routes, http.MethodPost, "/v1/artists", "", `{"name":"Bob"}`, "Authorization", "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	noSub := signed(t, "s3cret", jwt.MapClaims{"name": "x"})
	w = call(t, routes, http.MethodPost, "/v1/artists", "", `{"name":"X"}`, "Authorization", "Bearer "+noSub)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPI_CustomCallerHeader(t *testing.T) {
	h, infra := newTestHandler(t, Config{CallerHeader: "X-Artist"})

	w := call(t, h.Routes(), http.MethodPost, "/v1/artists", "", `{"name":"A"}`, "X-Artist", "zed")
	assert.True(t, resultOf(t, w).IsOK())
	assert.True(t, infra.Engine.IsRegistered("zed"))
}

func TestAPI_RequestIDEchoed(t *testing.T) {
	h, _ := newTestHandler(t, Config{})

	w := call(t, h.Routes(), http.MethodGet, "/v1/nfts", "", "", requestIDHeader, "req-42")
	assert.Equal(t, "req-42", w.Header().Get(requestIDHeader))

	w = call(t, h.Routes(), http.MethodGet, "/v1/nfts", "", "")
	assert.Len(t, w.Header().Get(requestIDHeader), 32)
}

func TestAPI_CORS(t *testing.T) {
	h, _ := newTestHandler(t, Config{CORSOrigins: []string{"https://app.example"}})

	req := httptest.NewRequest(http.MethodOptions, "/v1/artworks", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	h.Routes().ServeHTTP(w, req)

	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestAPI_Health(t *testing.T) {
	h, infra := newTestHandler(t, Config{})
	routes := h.Routes()

	resultOf(t, call(t, routes, http.MethodGet, "/v1/artworks", "", ""))

	w := call(t, routes, http.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var health HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.GreaterOrEqual(t, health.Processed, int64(1))

	require.NoError(t, infra.Shutdown(context.Background()))
	w = call(t, routes, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAPI_StatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(&processor.ValidationError{Err: command.ErrCallerRequired}))
	assert.Equal(t, http.StatusServiceUnavailable, statusFor(command.ErrQueueFull))
	assert.Equal(t, http.StatusServiceUnavailable, statusFor(fmt.Errorf("wait: %w", context.DeadlineExceeded)))
	assert.Equal(t, http.StatusInternalServerError, statusFor(fmt.Errorf("%w: disk", processor.ErrJournalAppend)))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("boom")))
}

func TestAPI_StreamEvents(t *testing.T) {
	h, infra := newTestHandler(t, Config{})
	srv := httptest.NewServer(h.Routes())
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/v1/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	_, err = infra.Client(command.SourceInternal).Register(ctx, "alice", "Alice")
	require.NoError(t, err)

	scanner := bufio.NewScanner(resp.Body)
	var sawEvent, sawData bool
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "event:") && strings.Contains(line, "artist_registered") {
			sawEvent = true
		}
		if sawEvent && strings.HasPrefix(line, "data:") && strings.Contains(line, "alice") {
			sawData = true
			break
		}
	}
	assert.True(t, sawEvent)
	assert.True(t, sawData)
}

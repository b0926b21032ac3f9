package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/artcollab/internal/command"
	"github.com/zjrosen/artcollab/internal/config"
	"github.com/zjrosen/artcollab/internal/log"
	"github.com/zjrosen/artcollab/internal/presentation"
	"github.com/zjrosen/artcollab/internal/processor"
	"github.com/zjrosen/artcollab/internal/testutil"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: 0.0.0.0:9000
processor:
  slow_command_threshold: 250ms
journal:
  enabled: false
`)
	got, err := loadConfig(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", got.Server.Addr)
	assert.Equal(t, 250*time.Millisecond, got.Processor.SlowCommandThreshold)
	assert.False(t, got.Journal.Enabled)
	// Untouched keys keep their defaults.
	assert.Equal(t, config.Defaults().Processor.QueueCapacity, got.Processor.QueueCapacity)
	assert.Equal(t, "X-Caller-ID", got.Auth.CallerHeader)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "server:\n  addr: 127.0.0.1:1\n")
	t.Setenv("ARTCOLLAB_SERVER_ADDR", ":7000")
	t.Setenv("ARTCOLLAB_AUTH_JWT_SECRET", "from-env")

	got, err := loadConfig(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", got.Server.Addr)
	assert.Equal(t, "from-env", got.Auth.JWTSecret)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "server: [unterminated\n")

	got, err := loadConfig(viper.New(), path)
	require.Error(t, err)
	assert.Equal(t, config.Defaults().Server.Addr, got.Server.Addr)
}

func TestApplyLiveConfig(t *testing.T) {
	var buf bytes.Buffer
	log.InitWriter(&buf)
	threshold := processor.NewThreshold(time.Second)

	next := config.Defaults()
	next.Log.Level = "error"
	next.Processor.SlowCommandThreshold = 3 * time.Second
	applyLiveConfig(next, threshold)

	assert.Equal(t, 3*time.Second, threshold.Get())

	buf.Reset()
	log.Info(log.CatConfig, "hidden")
	log.Error(log.CatConfig, "shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestShowConfig_RedactsSecret(t *testing.T) {
	c := config.Defaults()
	c.Auth.JWTSecret = "hunter2"

	var buf bytes.Buffer
	require.NoError(t, showConfig(&buf, c))
	assert.NotContains(t, buf.String(), "hunter2")
	assert.Contains(t, buf.String(), "<redacted>")
	assert.Contains(t, buf.String(), "slow_command_threshold: 100ms")
	// The caller's copy is untouched.
	assert.Equal(t, "hunter2", c.Auth.JWTSecret)
}

func TestListJournal(t *testing.T) {
	j := testutil.NewBuilder(t, testutil.NewTestJournal(t)).
		Register("alice", "Alice").
		CreateArtwork("alice", "Dawn").
		Build()

	var buf bytes.Buffer
	require.NoError(t, listJournal(context.Background(), j, &buf, 0, 10, true))

	var entries []presentation.JournalEntryDTO
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, string(command.CmdRegisterArtist), entries[0].CommandType)

	buf.Reset()
	require.NoError(t, listJournal(context.Background(), j, &buf, 1, 10, false))
	assert.Contains(t, buf.String(), string(command.CmdCreateArtwork))
	assert.NotContains(t, buf.String(), string(command.CmdRegisterArtist))
}

func TestVerifyJournal_Clean(t *testing.T) {
	j := testutil.NewBuilder(t, testutil.NewTestJournal(t)).
		Register("alice", "Alice").
		CreateArtwork("alice", "Dawn").
		Finalize("alice", 1).
		Mint("alice", 1, 10).
		Build()

	var buf bytes.Buffer
	require.NoError(t, verifyJournal(context.Background(), j, &buf, true))

	var report presentation.VerifyReportDTO
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	assert.True(t, report.OK)
	assert.Equal(t, int64(4), report.Entries)
	assert.Equal(t, 4, report.Replayed)
	assert.Equal(t, 1, report.Artists)
	assert.Equal(t, 1, report.Nfts)
	assert.Equal(t, uint64(2), report.NextArtworkID)
}

func TestVerifyJournal_ReportsFirstFailure(t *testing.T) {
	j := testutil.NewBuilder(t, testutil.NewTestJournal(t)).WithBrokenReplay().Build()

	var buf bytes.Buffer
	err := verifyJournal(context.Background(), j, &buf, false)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "journal FAILED: replayed 1 of 3 entries")
	assert.Contains(t, buf.String(), "entry 2")
}

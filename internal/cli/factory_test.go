package cli

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/infobot/internal/config"
	"github.com/aretw0/infobot/internal/logging"
	"github.com/aretw0/infobot/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "colleges.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := csv.NewWriter(f)
	require.NoError(t, w.Write(domain.Columns))
	for _, row := range [][2]string{
		{"Alpha College", "Boston, MA"},
		{"Beta College", "Denver, CO"},
	} {
		line := make([]string, len(domain.Columns))
		for i, col := range domain.Columns {
			switch col {
			case domain.ColumnName:
				line[i] = row[0]
			case domain.ColumnLocation:
				line[i] = row[1]
			case domain.ColumnApplicationFee, domain.ColumnTuitionFee, domain.ColumnOtherFees:
				line[i] = "$1,000"
			default:
				line[i] = "n/a"
			}
		}
		require.NoError(t, w.Write(line))
	}
	w.Flush()
	require.NoError(t, w.Error())
	return path
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Catalog: config.CatalogConfig{Path: writeCatalog(t, dir), Table: "colleges"},
		HTTP:    config.HTTPConfig{Port: 8080},
		MCP:     config.MCPConfig{Transport: "stdio", Port: 8081},
		Session: config.SessionConfig{Backend: config.BackendMemory, Dir: filepath.Join(dir, "sessions")},
		Redis:   config.RedisConfig{Prefix: "infobot:session:"},
	}
}

func TestBuildMemory(t *testing.T) {
	cfg := testConfig(t)
	reg := prometheus.NewRegistry()

	rt, err := Build(context.Background(), cfg, logging.NewNop(), reg)
	require.NoError(t, err)
	defer rt.Close()

	assert.Equal(t, 2, rt.Bot.Catalog().Len())
	require.NotNil(t, rt.Metrics)

	reply, err := rt.Bot.Ask(context.Background(), "s1", "alpha college")
	require.NoError(t, err)
	assert.Equal(t, domain.IntentIdentify, reply.Intent)
	assert.Equal(t, 1.0, testutil.ToFloat64(rt.Metrics.Turns.WithLabelValues(string(domain.IntentIdentify))))
}

func TestBuildWithoutMetrics(t *testing.T) {
	rt, err := Build(context.Background(), testConfig(t), logging.NewNop(), nil)
	require.NoError(t, err)
	defer rt.Close()
	assert.Nil(t, rt.Metrics)
}

func TestBuildMissingCatalog(t *testing.T) {
	cfg := testConfig(t)
	cfg.Catalog.Path = filepath.Join(t.TempDir(), "missing.csv")

	_, err := Build(context.Background(), cfg, logging.NewNop(), nil)
	assert.ErrorIs(t, err, domain.ErrCatalogLoad)
}

func TestBuildFileBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.Session.Backend = config.BackendFile

	rt, err := Build(context.Background(), cfg, logging.NewNop(), nil)
	require.NoError(t, err)
	defer rt.Close()

	_, err = rt.Bot.Ask(context.Background(), "file-1", "alpha college")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(cfg.Session.Dir, "file-1.json"))
	assert.NoError(t, err)
}

func TestBuildRedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.Session.Backend = config.BackendRedis
	cfg.Redis.Addr = mr.Addr()

	rt, err := Build(context.Background(), cfg, logging.NewNop(), nil)
	require.NoError(t, err)
	defer rt.Close()

	_, err = rt.Bot.Ask(context.Background(), "redis-1", "beta college")
	require.NoError(t, err)

	ids, err := rt.Bot.Sessions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"redis-1"}, ids)
	assert.True(t, mr.Exists("infobot:session:s:redis-1"))
}

func TestBuildRedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := testConfig(t)
	cfg.Session.Backend = config.BackendRedis
	cfg.Redis.Addr = addr

	_, err := Build(context.Background(), cfg, logging.NewNop(), nil)
	assert.Error(t, err)
}

func TestBuildEncryptedRedacted(t *testing.T) {
	cfg := testConfig(t)
	cfg.Session.Backend = config.BackendFile
	cfg.Session.Redact = true
	cfg.Session.EncryptionKey = strings.Repeat("0f", 32)

	rt, err := Build(context.Background(), cfg, logging.NewNop(), nil)
	require.NoError(t, err)
	defer rt.Close()

	ctx := context.Background()
	_, err = rt.Bot.Ask(ctx, "sealed-1", "mail me at jane@example.com")
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(cfg.Session.Dir, "sealed-1.json"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "jane@example.com")
	assert.NotContains(t, string(raw), "mail me")

	s, err := rt.Bot.Session(ctx, "sealed-1")
	require.NoError(t, err)
	require.Len(t, s.Transcript, 1)
	assert.Equal(t, "mail me at ***", s.Transcript[0].Utterance)
}

package commands

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/smartmoney/internal/contracts"
	"github.com/wonny/smartmoney/pkg/config"
)

const fixturePath = "../../../testdata/fixture.yaml"

func useFixture(t *testing.T) {
	t.Helper()
	if _, err := os.Stat(fixturePath); err != nil {
		t.Skipf("fixture not available: %v", err)
	}
	t.Setenv("MARKET_DATA_SOURCE", "fixture")
	t.Setenv("FIXTURE_FILE", fixturePath)
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("RANKING_CODES", "")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRankCommand_Fixture(t *testing.T) {
	useFixture(t)
	dir := t.TempDir()

	out, err := execute(t, "rank", "--out", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "Smart Money Ranking")
	assert.Contains(t, out, "Smart Money Composite Score Report")
	for _, code := range []string{"000858", "600519", "000333", "601318", "600036"} {
		assert.Contains(t, out, code)
	}

	charts, err := filepath.Glob(filepath.Join(dir, "*_radar.pdf"))
	require.NoError(t, err)
	assert.Len(t, charts, 1)
}

func TestAnalyzeCommand_Markdown(t *testing.T) {
	useFixture(t)

	out, err := execute(t, "analyze", "600519", "--format", "markdown", "--no-chart")
	require.NoError(t, err)

	assert.Contains(t, out, "# Smart Money Report: 600519")
	assert.Contains(t, out, "| Dimension | Score | Weight |")
}

func TestAnalyzeCommand_UnknownFormat(t *testing.T) {
	useFixture(t)

	_, err := execute(t, "analyze", "600519", "--format", "pdf", "--no-chart")
	assert.Error(t, err)
}

func TestFormatHelpers(t *testing.T) {
	var buf bytes.Buffer
	PrintRunHeader(&buf, RunMetadata{
		Title:      "Smart Money Ranking",
		Source:     "fixture",
		StrategyID: "smartmoney_v2",
		ConfigHash: "0123456789abcdef0123",
		Codes:      []string{"600519", "000858"},
	})

	out := buf.String()
	assert.Contains(t, out, "Smart Money Ranking")
	assert.Contains(t, out, "0123456789ab")
	assert.NotContains(t, out, "0123456789abc")
	assert.Contains(t, out, "600519, 000858")
}

func TestChartCommand_Fixture(t *testing.T) {
	useFixture(t)
	dir := t.TempDir()

	out, err := execute(t, "chart", "600519", "000858", "--out", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "[Chart]")
	assert.NotContains(t, out, "No market data")

	charts, err := filepath.Glob(filepath.Join(dir, "*_radar.pdf"))
	require.NoError(t, err)
	assert.Len(t, charts, 2)
}

func TestChartCommand_UnknownCodeWarns(t *testing.T) {
	useFixture(t)

	out, err := execute(t, "chart", "999999", "--out", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No market data")
}

func TestServeWiring_Fixture(t *testing.T) {
	useFixture(t)
	ctx := context.Background()

	a, err := newApp(ctx)
	require.NoError(t, err)
	defer a.Close()

	codes, err := a.codes(nil)
	require.NoError(t, err)

	sched, job, router, err := buildServe(a, codes)
	require.NoError(t, err)
	sched.Start(ctx)
	defer sched.Stop()

	result, err := sched.RunJob(job.Name())
	require.NoError(t, err)
	require.True(t, result.Success, result.Error)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ranking/latest", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	for _, code := range codes {
		assert.Contains(t, rec.Body.String(), code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scheduler/jobs", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "smartmoney_ranking")
}

func TestResolveUniverse(t *testing.T) {
	env := []string{"111111"}
	strategy := []string{"600519", "000858"}
	fixture := []string{"000333"}

	tests := []struct {
		name     string
		source   string
		env      []string
		strategy []string
		fromFile bool
		fixture  []string
		want     []string
	}{
		{"env codes win", config.SourceNaver, env, strategy, true, fixture, env},
		{"naver with built-in strategy", config.SourceNaver, nil, strategy, false, fixture, naverDefaultCodes},
		{"naver with strategy file", config.SourceNaver, nil, strategy, true, fixture, strategy},
		{"fixture uses strategy universe", config.SourceFixture, nil, strategy, false, fixture, strategy},
		{"fixture falls back to its stocks", config.SourceFixture, nil, nil, false, fixture, fixture},
		{"nothing configured", config.SourcePostgres, nil, nil, false, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveUniverse(tt.source, tt.env, tt.strategy, tt.fromFile, tt.fixture)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNoData(t *testing.T) {
	empty := &contracts.ScoreRecord{Code: "999999", Unavailable: append([]contracts.Dimension(nil), contracts.Dimensions...)}
	partial := &contracts.ScoreRecord{Code: "600519", Unavailable: contracts.Dimensions[:1]}

	assert.False(t, noData(nil))
	assert.True(t, noData([]*contracts.ScoreRecord{empty}))
	assert.False(t, noData([]*contracts.ScoreRecord{empty, partial}))
	assert.False(t, noData([]*contracts.ScoreRecord{partial}))
}

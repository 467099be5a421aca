package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeveltstra/lammpster/internal/cache"
	"github.com/aeveltstra/lammpster/internal/common"
	"github.com/aeveltstra/lammpster/internal/entity"
	"github.com/aeveltstra/lammpster/internal/render"
	"github.com/aeveltstra/lammpster/internal/store"
)

func newCachedProfile(fields map[string]*string) *entity.Profile {
	p := entity.NewProfile()
	for _, k := range []string{"case_id", "name"} {
		if v, ok := fields[k]; ok {
			p.Set(k, v)
		}
	}
	return p
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testGrid() *store.Grid {
	return store.NewGrid([][]string{
		{"Case ID", "Chosen Name", "Birth Year"},
		{"abc123", "Jordan", "1990"},
		{"def456", "Sam", ""},
	})
}

// testHarness wires a processor over a temp cache and output folder, with
// one template per entry in templates (channel name -> body).
type testHarness struct {
	cfg      *common.Config
	cacheDir string
	outDir   string
}

func newHarness(t *testing.T, templates map[string]string) *testHarness {
	t.Helper()
	root := t.TempDir()
	cacheDir := filepath.Join(root, "cache")
	outDir := filepath.Join(root, "out")
	require.NoError(t, os.MkdirAll(outDir, 0o755))

	content := `
[profile]
cache = "` + cacheDir + `"

[profile_map]
case_id = "Case ID"
name = "Chosen Name"
birth_year = "Birth Year"

[profile_derived]
age = "years_since:birth_year"

[sheet]
page_column_names_row = "1"

[input_templates]
`
	for channel, body := range templates {
		path := filepath.Join(root, channel+".svg")
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		content += channel + ` = "` + path + `"` + "\n"
	}

	cfgPath := filepath.Join(root, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))
	cfg, err := common.LoadConfig(cfgPath, testLogger())
	require.NoError(t, err)

	return &testHarness{cfg: cfg, cacheDir: cacheDir, outDir: outDir}
}

func (h *testHarness) processor(t *testing.T) *Processor {
	t.Helper()
	posters := &render.PosterWriter{OutputFolder: h.outDir, Logger: testLogger()}
	pr, err := NewProcessor(h.cfg, testGrid(), cache.New(h.cacheDir, testLogger()), posters, testLogger())
	require.NoError(t, err)
	return pr
}

func TestRunProducesPostersAndCachesProfile(t *testing.T) {
	h := newHarness(t, map[string]string{
		"web": "<svg>$name ($case_id)</svg>",
	})
	pr := h.processor(t)

	require.NoError(t, pr.Run(context.Background(), "abc123"))

	data, err := os.ReadFile(filepath.Join(h.outDir, "abc123-poster-web.svg"))
	require.NoError(t, err)
	assert.Equal(t, "<svg>Jordan (abc123)</svg>", string(data))

	cached := cache.New(h.cacheDir, testLogger()).TryRead("abc123")
	require.NotNil(t, cached)
	assert.Equal(t, "Jordan", cached.Get("name"))
	// The derived age field is computed before caching.
	assert.NotEqual(t, "", cached.Get("age"))
}

func TestRunUsesCachedProfile(t *testing.T) {
	h := newHarness(t, map[string]string{"web": "<svg>$name</svg>"})

	// A cached profile that disagrees with the store proves the cache won.
	c := cache.New(h.cacheDir, testLogger())
	cachedName := "Cached Jordan"
	cachedID := "abc123"
	p := newCachedProfile(map[string]*string{"case_id": &cachedID, "name": &cachedName})
	require.True(t, c.TryWrite(p))

	pr := h.processor(t)
	require.NoError(t, pr.Run(context.Background(), "abc123"))

	data, err := os.ReadFile(filepath.Join(h.outDir, "abc123-poster-web.svg"))
	require.NoError(t, err)
	assert.Equal(t, "<svg>Cached Jordan</svg>", string(data))
}

func TestRunUnknownCaseIDFails(t *testing.T) {
	h := newHarness(t, map[string]string{"web": "<svg>$name</svg>"})
	pr := h.processor(t)

	err := pr.Run(context.Background(), "zzz999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zzz999")
	assert.Contains(t, err.Error(), "--list-column-values")
}

func TestRunChannelFailureDoesNotStopOtherChannels(t *testing.T) {
	h := newHarness(t, map[string]string{
		"bad":  "<svg>$not_a_mapped_key</svg>",
		"good": "<svg>$name</svg>",
	})
	pr := h.processor(t)

	// The bad channel is reported and skipped, not fatal.
	require.NoError(t, pr.Run(context.Background(), "abc123"))

	_, err := os.Stat(filepath.Join(h.outDir, "abc123-poster-good.svg"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(h.outDir, "abc123-poster-bad.svg"))
	assert.True(t, os.IsNotExist(err))
}

func TestNewProcessorRequiresMapping(t *testing.T) {
	root := t.TempDir()
	cfgPath := filepath.Join(root, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[output]\nfolder = \"x\"\n"), 0o644))
	cfg, err := common.LoadConfig(cfgPath, testLogger())
	require.NoError(t, err)

	_, err = NewProcessor(cfg, testGrid(), cache.New("", testLogger()), &render.PosterWriter{}, testLogger())
	assert.Error(t, err)
}

func TestRunRequiresTemplates(t *testing.T) {
	h := newHarness(t, nil)
	pr := h.processor(t)

	err := pr.Run(context.Background(), "abc123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input_templates")
}

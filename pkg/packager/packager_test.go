// Test Type: Integration Test
// Description: End-to-end tests for the packaging pipeline

package packager_test

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/arthur-debert/subpack/pkg/apps"
	"github.com/arthur-debert/subpack/pkg/archive"
	"github.com/arthur-debert/subpack/pkg/assets"
	"github.com/arthur-debert/subpack/pkg/errors"
	"github.com/arthur-debert/subpack/pkg/packager"
	"github.com/arthur-debert/subpack/pkg/staging"
	"github.com/arthur-debert/subpack/pkg/testutil"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resources builds a store holding source.zip and substratum.zip.
func resources(t *testing.T, source, substratum map[string]string) staging.Store {
	t.Helper()

	fs := memfs.New()
	if source != nil {
		require.NoError(t, util.WriteFile(fs, "source.zip", testutil.ZipBytes(t, source), 0644))
	}
	if substratum != nil {
		require.NoError(t, util.WriteFile(fs, "substratum.zip", testutil.ZipBytes(t, substratum), 0644))
	}
	return staging.NewStore(fs)
}

func defaultResources(t *testing.T) staging.Store {
	return resources(t,
		map[string]string{"a.txt": "A"},
		map[string]string{"b.txt": "B"},
	)
}

func newPackager(t *testing.T, cfg packager.Config) *packager.Packager {
	t.Helper()

	p, err := packager.New(cfg)
	require.NoError(t, err)
	return p
}

func entries(t *testing.T, path string) []string {
	t.Helper()

	names, err := archive.Entries(path)
	require.NoError(t, err)
	return names
}

func TestProcessPackageRequest_EndToEnd(t *testing.T) {
	tmp := t.TempDir()
	overlays := testutil.CreateTree(t, filepath.Join(tmp, "theme", "overlays"), map[string]string{
		"overlay.png": "png",
	})
	cache := filepath.Join(tmp, "cache")

	p := newPackager(t, packager.Config{CacheDir: cache, Resources: defaultResources(t)})
	req := assets.NewPackageRequest().SetOverlaySources(assets.FileInfo{Location: overlays})

	res, err := p.ProcessPackageRequest(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(cache, "dummy.apk"), res.OutputPath)
	assert.Equal(t, []string{"a.txt", "assets/overlays/overlay.png", "b.txt"}, entries(t, res.OutputPath))
	assert.True(t, strings.HasPrefix(res.Checksum, "sha256:"))
	assert.Positive(t, res.Size)
	assert.False(t, res.HasWarnings())
}

func TestProcessPackageRequest_ExplicitDestination(t *testing.T) {
	tmp := t.TempDir()
	font := testutil.CreateFile(t, tmp, "Roboto.ttf", "ttf")

	p := newPackager(t, packager.Config{CacheDir: filepath.Join(tmp, "cache"), Resources: defaultResources(t)})
	req := assets.NewPackageRequest().SetFontSources(assets.FileInfo{Location: font, Destination: "foo/bar"})

	res, err := p.ProcessPackageRequest(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "ttf", testutil.ZipContents(t, res.OutputPath)["assets/foo/bar/Roboto.ttf"])
}

// One unreadable entry out of three is a warning; the other two still
// land in the output.
func TestProcessPackageRequest_PlacementWarnings(t *testing.T) {
	tmp := t.TempDir()
	overlays := testutil.CreateTree(t, filepath.Join(tmp, "overlays"), map[string]string{"type1a.xml": "t1"})
	audio := testutil.CreateTree(t, filepath.Join(tmp, "audio"), map[string]string{"ring.ogg": "ogg"})

	p := newPackager(t, packager.Config{CacheDir: filepath.Join(tmp, "cache"), Resources: defaultResources(t)})
	req := assets.NewPackageRequest().
		SetOverlaySources(assets.FileInfo{Location: overlays}).
		SetFontSources(assets.FileInfo{Location: filepath.Join(tmp, "missing")}).
		SetAudioSources(assets.FileInfo{Location: audio})

	res, err := p.ProcessPackageRequest(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, res.Warnings, 1)
	assert.True(t, errors.IsErrorCode(res.Warnings[0], errors.ErrAssetCopy))

	contents := testutil.ZipContents(t, res.OutputPath)
	assert.Equal(t, "t1", contents["assets/overlays/type1a.xml"])
	assert.Equal(t, "ogg", contents["assets/audio/ring.ogg"])
	for name := range contents {
		assert.False(t, strings.HasPrefix(name, "assets/fonts/"), name)
	}
}

func TestProcessPackageRequest_NilRequest(t *testing.T) {
	p := newPackager(t, packager.Config{CacheDir: t.TempDir(), Resources: defaultResources(t)})

	_, err := p.ProcessPackageRequest(context.Background(), nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

// Both base archives end up in the output; on duplicates the archive
// extracted last wins.
func TestDoWork_UnionOfBaseArchives(t *testing.T) {
	store := resources(t,
		map[string]string{"a.txt": "A", "shared.txt": "source", "res/x.xml": "x"},
		map[string]string{"b.txt": "B", "shared.txt": "substratum", "res/y.xml": "y"},
	)
	p := newPackager(t, packager.Config{CacheDir: t.TempDir(), Resources: store})

	res, err := p.DoWork(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"a.txt":      "A",
		"b.txt":      "B",
		"shared.txt": "substratum",
		"res/x.xml":  "x",
		"res/y.xml":  "y",
	}, testutil.ZipContents(t, res.OutputPath))
}

func TestDoWork_MergesAssetDirsInOrder(t *testing.T) {
	tmp := t.TempDir()
	first := testutil.CreateTree(t, filepath.Join(tmp, "first"), map[string]string{
		"assets/overlays/x.png": "first",
		"only-first.txt":        "1",
	})
	second := testutil.CreateTree(t, filepath.Join(tmp, "second"), map[string]string{
		"assets/overlays/x.png": "second",
	})

	p := newPackager(t, packager.Config{
		CacheDir:  filepath.Join(tmp, "cache"),
		Resources: defaultResources(t),
		AssetDirs: []string{first, filepath.Join(tmp, "does-not-exist"), second},
	})

	res, err := p.DoWork(context.Background())
	require.NoError(t, err)

	contents := testutil.ZipContents(t, res.OutputPath)
	assert.Equal(t, "second", contents["assets/overlays/x.png"])
	assert.Equal(t, "1", contents["only-first.txt"])
}

func TestDoWork_Idempotent(t *testing.T) {
	tmp := t.TempDir()
	dir := testutil.CreateTree(t, filepath.Join(tmp, "assets"), map[string]string{"assets/fonts/f.ttf": "f"})
	cfg := packager.Config{
		CacheDir:  filepath.Join(tmp, "cache"),
		Resources: defaultResources(t),
		AssetDirs: []string{dir},
	}

	first, err := newPackager(t, cfg).DoWork(context.Background())
	require.NoError(t, err)
	firstBytes, err := os.ReadFile(first.OutputPath)
	require.NoError(t, err)

	second, err := newPackager(t, cfg).DoWork(context.Background())
	require.NoError(t, err)
	secondBytes, err := os.ReadFile(second.OutputPath)
	require.NoError(t, err)

	assert.Equal(t, first.Checksum, second.Checksum)
	assert.Equal(t, firstBytes, secondBytes)
}

// A read-only file in an asset directory must not break a second run on
// the same cache.
func TestDoWork_ReadOnlyAssetRerun(t *testing.T) {
	tmp := t.TempDir()
	dir := testutil.CreateTree(t, filepath.Join(tmp, "assets"), map[string]string{"assets/fonts/f.ttf": "f"})
	require.NoError(t, os.Chmod(filepath.Join(dir, "assets", "fonts", "f.ttf"), 0444))
	cfg := packager.Config{
		CacheDir:  filepath.Join(tmp, "cache"),
		Resources: defaultResources(t),
		AssetDirs: []string{dir},
	}

	_, err := newPackager(t, cfg).DoWork(context.Background())
	require.NoError(t, err)

	res, err := newPackager(t, cfg).DoWork(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, "f", testutil.ZipContents(t, res.OutputPath)["assets/fonts/f.ttf"])
}

func TestDoWork_StaleCacheUnlessCleaned(t *testing.T) {
	tmp := t.TempDir()
	cache := filepath.Join(tmp, "cache")
	testutil.CreateFile(t, cache, "result/stale.txt", "stale")

	res, err := newPackager(t, packager.Config{CacheDir: cache, Resources: defaultResources(t)}).
		DoWork(context.Background())
	require.NoError(t, err)
	assert.Contains(t, entries(t, res.OutputPath), "stale.txt")

	res, err = newPackager(t, packager.Config{CacheDir: cache, Resources: defaultResources(t), CleanCache: true}).
		DoWork(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, entries(t, res.OutputPath))
}

func TestDoWork_StagingFailure(t *testing.T) {
	store := resources(t, map[string]string{"a.txt": "A"}, nil)
	p := newPackager(t, packager.Config{CacheDir: t.TempDir(), Resources: store})

	res, err := p.DoWork(context.Background())
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.IsErrorCode(err, errors.ErrStagingFailed))
	assert.Equal(t, 1, errors.LegacyCode(err))
}

func TestDoWork_CorruptBaseArchive(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "source.zip", []byte("definitely not a zip"), 0644))
	require.NoError(t, util.WriteFile(fs, "substratum.zip", testutil.ZipBytes(t, map[string]string{"b": "b"}), 0644))

	p := newPackager(t, packager.Config{CacheDir: t.TempDir(), Resources: staging.NewStore(fs)})

	_, err := p.DoWork(context.Background())
	assert.True(t, errors.IsErrorCode(err, errors.ErrArchiveExtract))
	assert.Equal(t, 0, errors.LegacyCode(err))
}

func TestDoWork_Cancelled(t *testing.T) {
	p := newPackager(t, packager.Config{CacheDir: t.TempDir(), Resources: defaultResources(t)})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.DoWork(ctx)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCancelled))
	assert.NoFileExists(t, filepath.Join(p.Layout().Root(), "dummy.apk"))
}

func TestDoWork_CustomOutputName(t *testing.T) {
	cache := t.TempDir()
	p := newPackager(t, packager.Config{CacheDir: cache, Resources: defaultResources(t), OutputName: "theme.apk"})

	res, err := p.DoWork(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cache, "theme.apk"), res.OutputPath)
}

func TestNew_Validation(t *testing.T) {
	store := defaultResources(t)
	app := &apps.ApplicationInfo{PackageName: "com.example"}

	tests := []struct {
		name string
		cfg  packager.Config
	}{
		{name: "missing_cache_dir", cfg: packager.Config{Resources: store}},
		{name: "missing_resources", cfg: packager.Config{CacheDir: "/tmp/x"}},
		{name: "bad_output_name", cfg: packager.Config{CacheDir: "/tmp/x", Resources: store, OutputName: "../out.apk"}},
		{name: "bad_archive_name", cfg: packager.Config{CacheDir: "/tmp/x", Resources: store, BaseArchives: []string{"a/b.zip"}}},
		{name: "apps_without_fetcher", cfg: packager.Config{CacheDir: "/tmp/x", Resources: store,
			Applications: []*apps.ApplicationInfo{app}, Extractor: apps.AssetExtractor{}}},
		{name: "apps_without_extractor", cfg: packager.Config{CacheDir: "/tmp/x", Resources: store,
			Applications: []*apps.ApplicationInfo{app}, Fetcher: apps.CopyFetcher{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := packager.New(tt.cfg)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), "got %v", err)
		})
	}

	// Only nil applications need no collaborators
	_, err := packager.New(packager.Config{CacheDir: "/tmp/x", Resources: store,
		Applications: []*apps.ApplicationInfo{nil}})
	assert.NoError(t, err)
}

func TestCleanCache(t *testing.T) {
	cache := t.TempDir()
	testutil.CreateFile(t, cache, "result/old.txt", "old")
	testutil.CreateFile(t, cache, "dummy.apk", "old")

	p := newPackager(t, packager.Config{CacheDir: cache, Resources: defaultResources(t)})
	require.NoError(t, p.CleanCache())

	left, err := os.ReadDir(cache)
	require.NoError(t, err)
	assert.Empty(t, left)
	assert.DirExists(t, cache)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

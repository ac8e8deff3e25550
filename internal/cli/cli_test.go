// Test Type: Integration Test
// Description: Runs the subpack command line against temporary caches and resources

package cli_test

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/subpack/internal/cli"
	"github.com/arthur-debert/subpack/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	home      string
	cache     string
	resources string
}

func setup(t *testing.T) env {
	t.Helper()

	home := t.TempDir()
	t.Cleanup(xdg.Reload)
	for _, name := range []string{"CONFIG", "CACHE", "DATA", "STATE"} {
		t.Setenv("XDG_"+name+"_HOME", filepath.Join(home, name))
	}
	t.Setenv("NO_COLOR", "1")
	xdg.Reload()

	e := env{
		home:      home,
		cache:     filepath.Join(home, "cache"),
		resources: filepath.Join(home, "resources"),
	}
	testutil.CreateZip(t, filepath.Join(e.resources, "source.zip"), map[string]string{
		"AndroidManifest.xml": "<manifest/>",
		"a.txt":               "from source",
	})
	testutil.CreateZip(t, filepath.Join(e.resources, "substratum.zip"), map[string]string{
		"b.txt": "from substratum",
	})
	return e
}

func run(t *testing.T, e env, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	full := append([]string{"--cache-dir", e.cache, "--resources", e.resources}, args...)
	code := cli.Execute(full, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func decode(t *testing.T, out string) map[string]interface{} {
	t.Helper()

	var v map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &v), out)
	return v
}

func TestVersion(t *testing.T) {
	e := setup(t)

	code, out, _ := run(t, e, "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "subpack version dev")
}

func TestBuild(t *testing.T) {
	e := setup(t)
	assetDir := testutil.CreateTree(t, filepath.Join(e.home, "theme"), map[string]string{
		"assets/overlays/x.png": "x",
		"a.txt":                 "from theme",
	})

	code, out, errOut := run(t, e, "--format", "json", "build", assetDir)
	require.Equal(t, 0, code, errOut)

	outcome := decode(t, out)
	assert.Equal(t, "bulk", outcome["mode"])
	outputPath := outcome["outputPath"].(string)
	assert.Equal(t, filepath.Join(e.cache, "dummy.apk"), outputPath)

	entries := testutil.ZipContents(t, outputPath)
	assert.Equal(t, "from theme", entries["a.txt"])
	assert.Equal(t, "from substratum", entries["b.txt"])
	assert.Equal(t, "x", entries["assets/overlays/x.png"])
}

func TestBuild_WithApplications(t *testing.T) {
	e := setup(t)
	appsDir := filepath.Join(e.home, "installed")
	testutil.CreateZip(t, filepath.Join(appsDir, "com.example.one.apk"), map[string]string{
		"assets/fonts/one.ttf": "one",
		"classes.dex":          "dex",
	})

	code, out, errOut := run(t, e, "--format", "json", "build", "--apps-dir", appsDir, "--app", "com.example.one", "--app", "com.example.missing")
	require.Equal(t, 0, code, errOut)

	entries := testutil.ZipContents(t, decode(t, out)["outputPath"].(string))
	assert.Equal(t, "one", entries["assets/fonts/one.ttf"])
	assert.NotContains(t, entries, "classes.dex")
}

func TestBuild_AppsWithoutInventory(t *testing.T) {
	e := setup(t)

	code, _, errOut := run(t, e, "--format", "json", "build", "--app", "com.example.one")
	assert.Equal(t, 1, code)
	assert.Equal(t, "INVALID_INPUT", decode(t, errOut)["code"])
}

func TestPackage(t *testing.T) {
	e := setup(t)
	overlay := testutil.CreateTree(t, filepath.Join(e.home, "overlays"), map[string]string{
		"com.android.systemui/type1a.xml": "t1",
	})
	font := testutil.CreateFile(t, e.home, "Roboto.ttf", "font")

	code, out, errOut := run(t, e, "--format", "json", "package",
		"--overlay", overlay,
		"--font", font+"=fonts/custom",
	)
	require.Equal(t, 0, code, errOut)

	outcome := decode(t, out)
	assert.Equal(t, "request", outcome["mode"])
	entries := testutil.ZipContents(t, outcome["outputPath"].(string))
	assert.Equal(t, "t1", entries["assets/overlays/com.android.systemui/type1a.xml"])
	assert.Equal(t, "font", entries["assets/fonts/custom/Roboto.ttf"])
	assert.Equal(t, "from source", entries["a.txt"])
}

func TestPackage_RequestFile(t *testing.T) {
	e := setup(t)
	testutil.CreateFile(t, e.home, "sounds/alarm.ogg", "ogg")
	reqFile := testutil.CreateFile(t, e.home, "request.yaml", "audio:\n  - ./sounds/alarm.ogg\n")

	code, out, errOut := run(t, e, "--format", "json", "package", "--request", reqFile)
	require.Equal(t, 0, code, errOut)

	entries := testutil.ZipContents(t, decode(t, out)["outputPath"].(string))
	assert.Equal(t, "ogg", entries["assets/audio/alarm.ogg"])
}

func TestPackage_EmptyRequest(t *testing.T) {
	e := setup(t)

	code, _, errOut := run(t, e, "--format", "text", "package")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "nothing to package")
}

func TestPackage_MissingResources(t *testing.T) {
	e := setup(t)
	e.resources = filepath.Join(e.home, "nowhere")
	overlay := testutil.CreateDir(t, e.home, "overlays")

	code, _, errOut := run(t, e, "--format", "json", "package", "--overlay", overlay)
	assert.Equal(t, 1, code)
	assert.Equal(t, float64(1), decode(t, errOut)["legacyCode"])
}

func TestClean(t *testing.T) {
	e := setup(t)
	testutil.CreateFile(t, e.cache, "stale.txt", "old")

	code, out, errOut := run(t, e, "--format", "text", "clean")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "emptied")
	assert.NoFileExists(t, filepath.Join(e.cache, "stale.txt"))
}

func TestApps(t *testing.T) {
	e := setup(t)
	appsDir := filepath.Join(e.home, "installed")
	testutil.CreateZip(t, filepath.Join(appsDir, "com.example.one.apk"), map[string]string{"a": "a"})
	testutil.CreateZip(t, filepath.Join(appsDir, "com.example.two.apk"), map[string]string{"b": "b"})

	code, out, errOut := run(t, e, "--format", "text", "apps", "list", "--apps-dir", appsDir)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "2 applications")
	assert.Contains(t, out, "com.example.one")
	assert.Contains(t, out, "com.example.two")

	code, out, errOut = run(t, e, "--format", "json", "apps", "show", "com.example.two", "--apps-dir", appsDir)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, filepath.Join(appsDir, "com.example.two.apk"))

	code, _, errOut = run(t, e, "--format", "json", "apps", "show", "com.example.three", "--apps-dir", appsDir)
	assert.Equal(t, 1, code)
	assert.Equal(t, "NOT_FOUND", decode(t, errOut)["code"])
}

func TestInspect(t *testing.T) {
	e := setup(t)

	code, out, errOut := run(t, e, "inspect", filepath.Join(e.resources, "source.zip"))
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "2 entries")
	assert.Contains(t, out, "AndroidManifest.xml")
	assert.Contains(t, out, "a.txt")
}

func TestGenConfig(t *testing.T) {
	e := setup(t)

	code, out, errOut := run(t, e, "genconfig")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "[cache]")
	assert.Contains(t, out, e.cache)

	code, out, _ = run(t, e, "genconfig", "--template")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "# clean = false")
}

func TestHelpTopics(t *testing.T) {
	e := setup(t)

	code, out, _ := run(t, e, "help", "topics")
	require.Equal(t, 0, code)
	for _, topic := range []string{"applications", "configuration", "requests", "resources"} {
		assert.Contains(t, out, topic)
	}

	code, out, _ = run(t, e, "help", "requests")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "bootanimation")
}

func TestUnknownCommand(t *testing.T) {
	e := setup(t)

	code, _, errOut := run(t, e, "frobnicate")
	assert.Equal(t, 1, code)
	assert.NotEmpty(t, errOut)
}

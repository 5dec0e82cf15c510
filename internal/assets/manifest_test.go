package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestManifest_nilFallsBackToDefaults(t *testing.T) {
	var m Manifest

	require.Equal(t, "/assets/app.css", m.Stylesheet())
	require.Equal(t, "/assets/app.js", m.MainScript())
	require.Equal(t, "/assets/vendor.js", m.VendorScript())
}

func TestManifest_lookup(t *testing.T) {
	m := Manifest{
		"main.css":   "/assets/main-abc.css",
		"main.js":    "/assets/main-abc.js",
		"vendors.js": "/assets/vendors-abc.js",
	}

	require.Equal(t, "/assets/main-abc.css", m.Stylesheet())
	require.Equal(t, "/assets/main-abc.js", m.MainScript())
	require.Equal(t, "/assets/vendors-abc.js", m.VendorScript())
}

func TestManifest_missingEntryFallsBack(t *testing.T) {
	m := Manifest{"main.js": "/assets/main-abc.js"}

	require.Equal(t, "/assets/app.css", m.Stylesheet())
	require.Equal(t, "/assets/main-abc.js", m.MainScript())
}

func writeManifestFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func TestFileResolver_loadsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	writeManifestFile(t, path, `{"main.js":"/assets/main-v1.js"}`)

	resolver := NewFileResolver(path)

	m, err := resolver.Resolve()
	require.NoError(t, err)
	require.Equal(t, "/assets/main-v1.js", m.MainScript())

	// Rewriting the file has no effect: production loads the manifest once.
	writeManifestFile(t, path, `{"main.js":"/assets/main-v2.js"}`)

	m, err = resolver.Resolve()
	require.NoError(t, err)
	require.Equal(t, "/assets/main-v1.js", m.MainScript())
}

func TestFileResolver_missingFile(t *testing.T) {
	resolver := NewFileResolver(filepath.Join(t.TempDir(), "missing.json"))

	_, err := resolver.Resolve()
	require.Error(t, err)
}

func TestReloadResolver_reloadsEveryCall(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	writeManifestFile(t, path, `{"main.js":"/assets/main-v1.js"}`)

	resolver := NewReloadResolver(path)

	m, err := resolver.Resolve()
	require.NoError(t, err)
	require.Equal(t, "/assets/main-v1.js", m.MainScript())

	writeManifestFile(t, path, `{"main.js":"/assets/main-v2.js"}`)

	m, err = resolver.Resolve()
	require.NoError(t, err)
	require.Equal(t, "/assets/main-v2.js", m.MainScript())
}

func TestReadManifest_malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	writeManifestFile(t, path, `not json`)

	_, err := NewReloadResolver(path).Resolve()
	require.Error(t, err)
}

func TestStatic_resolve(t *testing.T) {
	m, err := Static{"main.js": "/assets/x.js"}.Resolve()
	require.NoError(t, err)
	require.Equal(t, "/assets/x.js", m.MainScript())
}

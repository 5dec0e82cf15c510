package assets

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPipeline_writeManifest(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		OutputDir:    dir,
		PublicPath:   "/assets",
		ManifestPath: filepath.Join(dir, "manifest.json"),
	}
	p := NewPipeline(cfg)

	metadata := buildMetadata{
		Outputs: map[string]outputInfo{
			"public/main-ABC123.js": {
				EntryPoint: "ui/main.ts",
				CSSBundle:  "public/main-ABC123.css",
			},
			"public/vendors-DEF456.js": {
				EntryPoint: "ui/vendors.ts",
			},
			"public/chunk-XYZ.js": {},
		},
	}

	require.NoError(t, p.writeManifest(metadata))

	data, err := os.ReadFile(cfg.ManifestPath)
	require.NoError(t, err)

	var manifest Manifest
	require.NoError(t, json.Unmarshal(data, &manifest))

	require.Equal(t, Manifest{
		"main.js":    "/assets/main-ABC123.js",
		"main.css":   "/assets/main-ABC123.css",
		"vendors.js": "/assets/vendors-DEF456.js",
	}, manifest)

	// Chunks without an entry point stay out of the manifest.
	require.NotContains(t, manifest, "chunk.js")
}

func TestPipeline_buildRequiresEntryPoints(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EntryPointGlob = filepath.Join(t.TempDir(), "*.ts")

	err := NewPipeline(cfg).Build()
	require.Error(t, err)
	require.Contains(t, err.Error(), "no entry points")
}

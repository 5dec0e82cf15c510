package assets

type Config struct {
	// Entry point glob pattern (e.g., "ui/*.ts")
	EntryPointGlob string
	// Output directory for built files
	OutputDir string
	// Public URL prefix the output directory is served under
	PublicPath string
	// Path the manifest is written to
	ManifestPath string
	// Whether to minify output
	Minify bool
	// Whether to enable source maps
	SourceMap bool
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() Config {
	return Config{
		EntryPointGlob: "ui/*.ts",
		OutputDir:      "public",
		PublicPath:     "/assets",
		ManifestPath:   "public/manifest.json",
		Minify:         false,
		SourceMap:      true,
	}
}

package assets

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Fallback asset paths used when no manifest is available.
const (
	DefaultStylesheet   = "/assets/app.css"
	DefaultMainScript   = "/assets/app.js"
	DefaultVendorScript = "/assets/vendor.js"
)

// Manifest maps logical bundle names (main.css, main.js, vendors.js) to the
// served, content-hashed path for each bundle. A nil Manifest resolves every
// lookup to the fixed defaults.
type Manifest map[string]string

func (m Manifest) lookup(name, fallback string) string {
	if m == nil {
		return fallback
	}
	if path, ok := m[name]; ok && path != "" {
		return path
	}
	return fallback
}

func (m Manifest) Stylesheet() string   { return m.lookup("main.css", DefaultStylesheet) }
func (m Manifest) MainScript() string   { return m.lookup("main.js", DefaultMainScript) }
func (m Manifest) VendorScript() string { return m.lookup("vendors.js", DefaultVendorScript) }

// Resolver supplies the manifest to the renderer. Implementations decide
// whether the manifest is loaded once or recomputed per request; the choice
// is made once at process start.
type Resolver interface {
	Resolve() (Manifest, error)
}

// Static is a fixed manifest, mainly useful in tests.
type Static Manifest

func (s Static) Resolve() (Manifest, error) { return Manifest(s), nil }

// FileResolver reads a JSON manifest file exactly once and serves the parsed
// result for the lifetime of the process.
type FileResolver struct {
	path string

	once     sync.Once
	manifest Manifest
	err      error
}

func NewFileResolver(path string) *FileResolver {
	return &FileResolver{path: path}
}

func (f *FileResolver) Resolve() (Manifest, error) {
	f.once.Do(func() {
		f.manifest, f.err = readManifest(f.path)
	})
	return f.manifest, f.err
}

// ReloadResolver re-reads the manifest file on every call. Used in
// development where the asset pipeline rewrites the manifest as bundles
// change.
type ReloadResolver struct {
	path string
}

func NewReloadResolver(path string) *ReloadResolver {
	return &ReloadResolver{path: path}
}

func (r *ReloadResolver) Resolve() (Manifest, error) {
	return readManifest(r.path)
}

func readManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	return m, nil
}

package assets

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/rs/zerolog/log"
)

type buildMetadata struct {
	Outputs map[string]outputInfo `json:"outputs"`
}

type outputInfo struct {
	EntryPoint string `json:"entryPoint"`
	CSSBundle  string `json:"cssBundle"`
}

// Pipeline builds the client bundles in-process with esbuild. It stands in
// for the external bundler in development mode: bundles get content-hashed
// names and the resulting manifest is written where the resolvers expect it.
type Pipeline struct {
	config Config
}

// NewPipeline creates an asset pipeline with the given configuration
func NewPipeline(config Config) *Pipeline {
	return &Pipeline{config: config}
}

// Build runs esbuild with the configured settings and writes the manifest
// derived from the build metadata.
func (p *Pipeline) Build() error {
	entryPoints, err := filepath.Glob(p.config.EntryPointGlob)
	if err != nil {
		return err
	}

	if len(entryPoints) == 0 {
		return errors.New("no entry points found")
	}

	log.Info().Strs("entrypoints", entryPoints).Msg("Building assets")

	result := api.Build(api.BuildOptions{
		EntryPoints:       entryPoints,
		EntryNames:        "[name]-[hash]",
		Bundle:            true,
		Write:             true,
		Outdir:            p.config.OutputDir,
		Format:            api.FormatIIFE,
		MinifyWhitespace:  p.config.Minify,
		MinifyIdentifiers: p.config.Minify,
		MinifySyntax:      p.config.Minify,
		TreeShaking:       api.TreeShakingTrue,
		Sourcemap:         cond(p.config.SourceMap, api.SourceMapLinked, api.SourceMapNone),
		Metafile:          true,
	})

	if len(result.Errors) > 0 {
		for _, msg := range result.Errors {
			log.Error().Str("error", msg.Text).Msg("Build error")
		}
		return errors.New("esbuild failed with errors")
	}

	for _, file := range result.OutputFiles {
		log.Info().Str("file", file.Path).Msg("Built file")
	}

	var metadata buildMetadata
	if err := json.Unmarshal([]byte(result.Metafile), &metadata); err != nil {
		return err
	}

	return p.writeManifest(metadata)
}

// writeManifest maps each entry point to its hashed output and persists the
// logical-name manifest. An entry ui/main.ts becomes main.js, its generated
// stylesheet main.css.
func (p *Pipeline) writeManifest(metadata buildMetadata) error {
	manifest := Manifest{}

	for outputPath, info := range metadata.Outputs {
		if info.EntryPoint == "" {
			continue
		}

		name := strings.TrimSuffix(filepath.Base(info.EntryPoint), filepath.Ext(info.EntryPoint))
		manifest[name+".js"] = p.servedPath(outputPath)

		if info.CSSBundle != "" {
			manifest[name+".css"] = p.servedPath(info.CSSBundle)
		}
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}

	log.Info().Str("path", p.config.ManifestPath).Msg("Writing asset manifest")

	return os.WriteFile(p.config.ManifestPath, data, 0600)
}

func (p *Pipeline) servedPath(outputPath string) string {
	return p.config.PublicPath + "/" + filepath.Base(outputPath)
}

func cond[T any](condition bool, trueVal, falseVal T) T {
	if condition {
		return trueVal
	}
	return falseVal
}

package render

import (
	"encoding/json"
	"fmt"

	"videogw/internal/assets"
)

const documentSkeleton = `<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <meta http-equiv="X-UA-Compatible" content="ie=edge">
    <link rel="stylesheet" href="%s" type="text/css"/>
    <title>%s</title>
  </head>
  <body>
    <div id="app">%s</div>
    <script id="preloadedState">
      window.__PRELOADED_STATE__ = %s
    </script>
    <script src="%s" type="text/javascript"></script>
    <script src="%s" type="text/javascript"></script>
  </body>
</html>`

// Document wraps server-rendered markup into the full HTML document: head,
// mount element, the serialized state for hydration, and the bundle script
// tags. Pure and deterministic; asset paths fall back to the fixed defaults
// when the manifest is nil.
//
// The state JSON is HTML-safe: encoding/json escapes every literal < to
// \u003c, so embedded content can never terminate the script block early.
func Document(markup, title string, state *InitialState, manifest assets.Manifest) (string, error) {
	serialized, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("failed to serialize state: %w", err)
	}

	return fmt.Sprintf(documentSkeleton,
		manifest.Stylesheet(),
		title,
		markup,
		serialized,
		manifest.MainScript(),
		manifest.VendorScript(),
	), nil
}

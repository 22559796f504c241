package folio

import "embed"

// EmbeddedAssets contains static assets shipped with the framework:
// folio.css, the stylesheet used by the default views.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS

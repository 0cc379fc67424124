// Package webui exposes the embedded sample frontend.
// It lives at the module root so it can embed the sibling "web/" directory;
// internal/server/embed.go serves it when frontend_source is "embedded".
package webui

import "embed"

// FS is the embedded web directory tree.
//
//go:embed web
var FS embed.FS

// Package web carries the embedded browser assets for the HTTP server.
package web

import "embed"

//go:embed static
var Static embed.FS

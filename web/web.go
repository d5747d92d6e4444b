// Package web carries the embedded single-page mobile UI.
package web

import _ "embed"

//go:embed index.html
var IndexHTML []byte

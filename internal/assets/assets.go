// Package assets bundles the tray icon frames.
//
// icons.tar.gz is built from assets/icons by `make assets`.
package assets

import (
	"bytes"
	_ "embed"
	"io"
)

//go:embed icons.tar.gz
var icons []byte

// Icons returns a reader over the compressed icon archive.
func Icons() io.Reader {
	return bytes.NewReader(icons)
}

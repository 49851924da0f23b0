// Package embedded carries the default name dataset inside the binary
package embedded

import (
	"embed"
	"io/fs"
)

//go:embed data
var data embed.FS

// FS returns the default dataset, rooted at its country directories
func FS() fs.FS {
	sub, err := fs.Sub(data, "data")
	if err != nil {
		// "data" is a valid path and always embedded
		panic(err)
	}
	return sub
}

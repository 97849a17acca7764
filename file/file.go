// Package file loads Lox source text from disk for the CLI entry point.
// This is the one place golox crosses an OS boundary that can fail, so the
// error carries the path and wraps the underlying cause.
package file

import (
	"os"

	"github.com/juju/errors"
)

// Load reads the full contents of path as Lox source text.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Annotatef(err, "could not read file %q", path)
	}
	return string(data), nil
}

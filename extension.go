package tableio

import (
	"path/filepath"
	"strings"
)

// Extension returns the text after the final '.' of the last component of
// path, with case preserved. Dotfiles, names ending in '.', and the special
// names "." and ".." have no extension.
func Extension(path string) (string, error) {
	base := filepath.Base(path)
	i := strings.LastIndexByte(base, '.')
	if i <= 0 || i == len(base)-1 {
		return "", ErrMissingExtension
	}
	return base[i+1:], nil
}

package pathlib

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// ErrEscapesRoot is returned whenever the path, lexically or through symlinks, points
// outside the root directory.
var ErrEscapesRoot = errors.New("path escapes the root directory")

// Resolve maps the request path into a filesystem path below root. Both '/' and '\\' are
// treated as separators. A ".." segment that would climb above root, a NUL byte, or a
// symlink pointing outside of root results in ErrEscapesRoot. A path that doesn't exist
// is not an error, the caller finds that out on open.
func Resolve(root, path string) (string, error) {
	if strings.IndexByte(path, 0) != -1 {
		return "", ErrEscapesRoot
	}

	segments := strings.FieldsFunc(path, isSeparator)
	depth := 0

	for _, segment := range segments {
		switch segment {
		case ".":
		case "..":
			depth--
			if depth < 0 {
				return "", ErrEscapesRoot
			}
		default:
			depth++
		}
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}

	resolved := filepath.Join(append([]string{absRoot}, segments...)...)
	if !Within(absRoot, resolved) {
		return "", ErrEscapesRoot
	}

	realRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return "", err
	}

	realPath, err := filepath.EvalSymlinks(resolved)
	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ENOTDIR):
		return resolved, nil
	case err != nil:
		return "", err
	}

	if !Within(realRoot, realPath) {
		return "", ErrEscapesRoot
	}

	return resolved, nil
}

// Within reports whether path is root itself or lies somewhere below it. Both must be
// absolute and clean.
func Within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator))
}

func isSeparator(char rune) bool {
	return char == '/' || char == '\\'
}

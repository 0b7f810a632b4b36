package loaders

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

var (
	// ErrDirectoryTraversal is returned when a path escapes into system directories.
	ErrDirectoryTraversal = errors.New("directory traversal not allowed")
	// ErrFileNotFound is returned when no candidate file exists.
	ErrFileNotFound = errors.New("file not found")
)

// articleExtensions are tried, in order, for link targets without an extension.
var articleExtensions = []string{".md", ".markdown", ".html", ".htm"}

var (
	sensitiveRoots = []string{"etc", "sys", "proc", "root", "dev", "boot"}
	sensitiveDirs  = []string{"etc", "var", "usr", "sys", "proc", "root"}
)

// ResolveArticlePath resolves a link target to a local article file.
//
// HTTP(S) URLs are returned unchanged. Relative targets are tried next to source, then
// under each search root. A target without an extension also matches the same name with
// one of the article extensions.
func ResolveArticlePath(target, source string, roots []string) (string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", nil
	}
	if isHTTPURL(target) {
		return target, nil
	}
	if i := strings.IndexByte(target, '#'); i >= 0 {
		target = target[:i]
	}
	if escapesToSystem(target) {
		return "", ErrDirectoryTraversal
	}

	if filepath.IsAbs(target) {
		if p, ok := firstExisting(target); ok {
			return p, nil
		}
		return "", ErrFileNotFound
	}

	var dirs []string
	if source != "" && !isHTTPURL(source) {
		dirs = append(dirs, filepath.Dir(source))
	}
	for _, root := range roots {
		if root != "" {
			dirs = append(dirs, root)
		}
	}
	for _, dir := range dirs {
		if p, ok := firstExisting(filepath.Join(dir, target)); ok {
			return p, nil
		}
	}
	return "", ErrFileNotFound
}

// firstExisting returns path, or path with an article extension, when it is a regular file.
func firstExisting(path string) (string, bool) {
	path = filepath.Clean(path)
	if fileExists(path) {
		return path, true
	}
	if filepath.Ext(path) != "" {
		return "", false
	}
	for _, ext := range articleExtensions {
		if fileExists(path + ext) {
			return path + ext, true
		}
	}
	return "", false
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// escapesToSystem reports whether path points into a system directory, either absolutely
// or by climbing out of the article tree.
func escapesToSystem(path string) bool {
	cleaned := filepath.ToSlash(filepath.Clean(path))
	parts := strings.Split(strings.TrimPrefix(cleaned, "/"), "/")

	if filepath.IsAbs(path) {
		return len(parts) > 0 && slices.Contains(sensitiveRoots, parts[0])
	}

	climbs := 0
	for _, p := range parts {
		if p != ".." {
			break
		}
		climbs++
	}
	if climbs > 1 {
		return true
	}
	for _, p := range parts[climbs:] {
		if slices.Contains(sensitiveDirs, p) {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

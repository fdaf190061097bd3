package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExistsFunc answers whether a path is already taken. Production callers use
// OSExists; tests substitute a map lookup.
type ExistsFunc func(path string) bool

// OSExists probes the real filesystem.
func OSExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// WithExt replaces the extension of path with ext (without dot).
func WithExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + ext
}

// WithSuffix inserts suffix before the extension; ext (without dot) replaces
// the original extension, or keeps it when empty.
func WithSuffix(path, suffix, ext string) string {
	stem := strings.TrimSuffix(path, filepath.Ext(path))
	if ext == "" {
		return stem + suffix + filepath.Ext(path)
	}
	return stem + suffix + "." + ext
}

// Allocate returns candidate if it is free, otherwise the first free
// "stem_N.ext" with N counting up from 1. The returned path does not exist at
// the time of the probe; there is no lock between the probe and the eventual
// write, so concurrent allocations of the same base name can collide. The
// caller serializes operations (see usecase.Gate).
func Allocate(candidate string, exists ExistsFunc) string {
	if !exists(candidate) {
		return candidate
	}
	ext := filepath.Ext(candidate)
	stem := strings.TrimSuffix(candidate, ext)
	for n := 1; ; n++ {
		p := fmt.Sprintf("%s_%d%s", stem, n, ext)
		if !exists(p) {
			return p
		}
	}
}

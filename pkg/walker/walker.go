// Package walker enumerates documents below a root directory.
package walker

import (
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
)

// DirError reports a directory below the root that could not be read.
// The walk skips that subtree and carries on with its siblings.
type DirError struct {
	Path string
	Err  error
}

func (e *DirError) Error() string {
	return fmt.Sprintf("read directory %s: %v", e.Path, e.Err)
}

func (e *DirError) Unwrap() error {
	return e.Err
}

type config struct {
	extensions []string
}

// Option configures Walk.
type Option func(*config)

// WithExtensions adds more document extensions next to the one passed to Walk.
func WithExtensions(exts ...string) Option {
	return func(c *config) {
		c.extensions = append(c.extensions, exts...)
	}
}

// Walk checks that root is a readable directory and returns a single-use
// sequence of the regular files below it whose name ends with ext.
//
// An unreadable root is returned as an error before any document is
// produced. Unreadable subdirectories are yielded as ("", *DirError) and
// their subtree is skipped. The visiting order is unspecified.
func Walk(root, ext string, opts ...Option) (iter.Seq2[string, error], error) {
	cfg := &config{extensions: []string{ext}}
	for _, opt := range opts {
		opt(cfg)
	}

	exts := make([]string, 0, len(cfg.extensions))
	for _, e := range cfg.extensions {
		if e != "" {
			exts = append(exts, e)
		}
	}
	if len(exts) == 0 {
		return nil, fmt.Errorf("no document extension given")
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat documents root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("documents root %s is not a directory", root)
	}
	if _, err := os.ReadDir(root); err != nil {
		return nil, fmt.Errorf("read documents root: %w", err)
	}

	seq := func(yield func(string, error) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				if !yield("", &DirError{Path: path, Err: walkErr}) {
					return filepath.SkipAll
				}
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			// Symlinks and other special files are not documents.
			if !d.Type().IsRegular() || !hasExtension(d.Name(), exts) {
				return nil
			}
			if !yield(path, nil) {
				return filepath.SkipAll
			}
			return nil
		})
	}

	return seq, nil
}

func hasExtension(name string, exts []string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

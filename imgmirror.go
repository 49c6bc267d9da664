package imgmirror

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hellenic-development/imgmirror/pkg/csdn"
	"github.com/hellenic-development/imgmirror/pkg/extractor"
	"github.com/hellenic-development/imgmirror/pkg/imager"
	"github.com/hellenic-development/imgmirror/pkg/walker"
)

// Version is the release of the module and the CLI.
const Version = "0.1.0"

// DefaultExtension is the document extension used when Options.Extensions is empty.
const DefaultExtension = ".md"

// ErrMissingDir is returned by Run when DocumentsRoot or ImageDir is empty.
var ErrMissingDir = errors.New("directory not configured")

// Options configures a mirroring run.
type Options struct {
	DocumentsRoot string               // directory scanned for documents
	ImageDir      string               // flat cache directory images are saved to
	Extractor     *extractor.Extractor // nil = csdn.ImageURLPattern
	Extensions    []string             // empty = [".md"]
	Fetcher       Fetcher              // nil = imager.NewClient()
	Logger        Logger               // nil = no logging
}

// Fetcher downloads one image reference into destPath. Implementations must
// not leave a file at destPath when they return an error.
type Fetcher interface {
	Download(ctx context.Context, url, destPath string) error
}

// Logger receives progress messages. A nil Logger means silent operation.
// Successf reports completed work: a saved image and the end of the run.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Successf(format string, args ...any)
}

// Result counts what a run did.
type Result struct {
	Documents  int // documents that contained at least one reference
	References int // unique references across those documents
	Downloaded int
	Skipped    int // destination already present
	Failed     int // reference could not be downloaded
}

func (o *Options) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

func (o *Options) logSuccess(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Successf(f, a...)
	}
}

func (o *Options) logWarn(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Warnf(f, a...)
	}
}

func (o *Options) logError(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Errorf(f, a...)
	}
}

// Run mirrors every image referenced by the documents under
// opts.DocumentsRoot into opts.ImageDir.
//
// Only setup problems are returned as errors: an image directory that cannot
// be created or a documents root that cannot be read. Unreadable documents
// and failed downloads are logged and skipped.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.DocumentsRoot == "" {
		return nil, fmt.Errorf("documents root: %w", ErrMissingDir)
	}
	if opts.ImageDir == "" {
		return nil, fmt.Errorf("image directory: %w", ErrMissingDir)
	}

	// Apply defaults.
	if opts.Extractor == nil {
		opts.Extractor = extractor.New(csdn.Pattern())
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = []string{DefaultExtension}
	}
	if opts.Fetcher == nil {
		opts.Fetcher = imager.NewClient()
	}

	if err := ensureDir(&opts); err != nil {
		return nil, err
	}

	docs, err := walker.Walk(opts.DocumentsRoot, opts.Extensions[0], walker.WithExtensions(opts.Extensions[1:]...))
	if err != nil {
		return nil, fmt.Errorf("walk documents: %w", err)
	}

	result := &Result{}

	for path, err := range docs {
		if err != nil {
			opts.logWarn("Skipping directory: %v", err)
			continue
		}
		processDocument(ctx, &opts, path, result)
	}

	opts.logSuccess("All images downloaded!")

	return result, nil
}

// ensureDir creates the image directory when it does not exist yet.
func ensureDir(opts *Options) error {
	info, err := os.Stat(opts.ImageDir)
	switch {
	case err == nil:
		if !info.IsDir() {
			return fmt.Errorf("image directory %s is not a directory", opts.ImageDir)
		}
		return nil
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(opts.ImageDir, 0755); err != nil {
			return fmt.Errorf("failed to create image directory %q: %w", opts.ImageDir, err)
		}
		opts.logInfo("Created directory: %s", opts.ImageDir)
		return nil
	default:
		return fmt.Errorf("stat image directory: %w", err)
	}
}

// processDocument downloads the references of one document. Nothing in here
// aborts the run.
func processDocument(ctx context.Context, opts *Options, path string, result *Result) {
	content, err := os.ReadFile(path)
	if err != nil {
		opts.logError("Failed to process file %s: %v", path, err)
		return
	}

	refs := opts.Extractor.Extract(string(content))
	if len(refs) == 0 {
		return
	}

	result.Documents++
	result.References += len(refs)
	opts.logInfo("Processing file: %s, found %d image(s)", path, len(refs))

	for _, ref := range refs {
		if err := processReference(ctx, opts, ref, result); err != nil {
			result.Failed++
			opts.logError("Failed to process image %s: %v", ref, err)
		}
	}
}

func processReference(ctx context.Context, opts *Options, ref string, result *Result) error {
	destPath, err := imager.DestinationPath(opts.ImageDir, ref)
	if err != nil {
		return err
	}

	exists, err := fileExists(destPath)
	if err != nil {
		return err
	}
	name := filepath.Base(destPath)
	if exists {
		result.Skipped++
		opts.logInfo("Image already exists: %s", name)
		return nil
	}

	opts.logInfo("Downloading: %s", ref)
	if err := opts.Fetcher.Download(ctx, ref, destPath); err != nil {
		return err
	}
	result.Downloaded++
	opts.logSuccess("Downloaded: %s", name)

	return nil
}

// fileExists treats any entry at path as present, matching how the cache
// directory doubles as the record of completed downloads.
func fileExists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("check %s: %w", path, err)
}

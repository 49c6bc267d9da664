// Package imgmirror mirrors remote images referenced by a tree of markdown
// documents into a local directory, so a static site can serve them itself
// instead of hot-linking the remote host.
//
// The CLI lives in cmd/imgmirror; this root package exposes the same
// pipeline as a Go API.
//
// # Quick start
//
//	result, err := imgmirror.Run(ctx, imgmirror.Options{
//	    DocumentsRoot: "docs",
//	    ImageDir:      ".vitepress/public/images/csdn",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Downloaded, "new images")
//
// # What gets downloaded
//
// Every file under DocumentsRoot ending in one of Options.Extensions is read
// in full and searched with Options.Extractor, by default for the CSDN image CDN
// (see package csdn). Matching is textual; documents are never modified.
//
// Each reference is saved under ImageDir by the last segment of its URL path,
// query string dropped. If a file of that name already exists the reference
// is skipped, so two references that only differ in their query string, or
// live in different directories on the host, share one local file. Re-running
// over an unchanged tree performs no network requests.
//
// Downloads happen one at a time. A failed download is logged and leaves no
// file behind; it never stops the run.
//
// # Logging
//
// Pass a [Logger] implementation in [Options.Logger] to receive progress
// messages. A nil Logger silences all output.
package imgmirror

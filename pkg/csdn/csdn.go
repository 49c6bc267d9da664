// Package csdn describes the CSDN blog image host: which URLs count as
// image references and which request headers its CDN expects.
package csdn

import (
	"regexp"
)

const (
	// ImageHost is the CDN domain that serves images embedded in CSDN posts.
	ImageHost = "img-blog.csdnimg.cn"

	// ImageURLPattern matches an image URL on ImageHost. A match ends at
	// whitespace, a closing parenthesis or a double quote, which covers both
	// markdown image syntax and HTML attributes. Whitespace includes \v, the
	// Unicode separators (U+00A0, U+3000, ...) and U+FEFF, since \s alone is
	// ASCII-only in RE2 and CSDN posts often use full-width spaces.
	ImageURLPattern = `https://img-blog\.csdnimg\.cn/[^\s\v\p{Z}\x{FEFF}"\)]+`

	// Referer is the blog front end. The CDN refuses or rewrites responses to
	// requests that do not carry it (hot-link protection).
	Referer = "https://blog.csdn.net/"

	// UserAgent is a desktop browser identifier sent with every image request.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Pattern returns a freshly compiled ImageURLPattern for use in unanchored
// searches over document text.
func Pattern() *regexp.Regexp {
	return regexp.MustCompile(ImageURLPattern)
}

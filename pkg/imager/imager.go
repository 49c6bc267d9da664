// Package imager downloads single images to local files.
package imager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"

	"github.com/hellenic-development/imgmirror/pkg/csdn"
)

// ErrNoFileName is returned when a reference has no usable final path segment.
var ErrNoFileName = errors.New("no file name in image URL")

// StatusError reports a response whose status was not 200 OK.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed: %d", e.StatusCode)
}

// Client downloads images with the headers the image host expects.
// Requests are issued one at a time by the caller; Client itself keeps no
// per-download state.
type Client struct {
	httpClient *http.Client
	userAgent  string
	referer    string
	timeout    time.Duration
	limiter    *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUserAgent sets the User-Agent header. Defaults to csdn.UserAgent.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithReferer sets the Referer header. Defaults to csdn.Referer.
// An empty value omits the header.
func WithReferer(referer string) Option {
	return func(c *Client) {
		c.referer = referer
	}
}

// WithTimeout bounds each download, body included. Zero, the default,
// means a download may wait forever.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRateLimit spaces requests to at most rps per second (burst 1).
// Zero or negative disables the limit, which is the default.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewClient creates a Client configured for the CSDN image host.
func NewClient(opts ...Option) *Client {
	c := &Client{
		userAgent: csdn.UserAgent,
		referer:   csdn.Referer,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		transport := &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		}
		c.httpClient = &http.Client{Transport: transport}
	}

	return c
}

// Download fetches rawURL and streams the body into destPath.
//
// Only a 200 response is accepted. On any failure no file is left at
// destPath: a non-200 status never creates one, and a failed write or
// truncated body removes what was written.
func (c *Client) Download(ctx context.Context, rawURL, destPath string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid image URL: %w", err)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if c.referer != "" {
		req.Header.Set("Referer", c.referer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP GET failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: resp.StatusCode, URL: rawURL}
	}

	return writeFile(destPath, resp.Body)
}

// writeFile copies r into a new file at destPath, removing the file if
// anything goes wrong before it is closed.
func writeFile(destPath string, r io.Reader) (err error) {
	f, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create file %q: %w", destPath, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file %q: %w", destPath, cerr)
		}
		if err != nil {
			os.Remove(destPath)
		}
	}()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("failed to write file %q: %w", destPath, err)
	}

	return nil
}

// FileName derives the local file name for an image reference: the last
// segment of the URL path, without the query string. References that share
// a last segment share a file name.
func FileName(ref string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid image URL: %w", err)
	}

	name := path.Base(u.EscapedPath())
	switch name {
	case "", ".", "/", "..":
		return "", fmt.Errorf("%w: %s", ErrNoFileName, ref)
	}

	return name, nil
}

// DestinationPath joins the file name of ref to dir.
func DestinationPath(dir, ref string) (string, error) {
	name, err := FileName(ref)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

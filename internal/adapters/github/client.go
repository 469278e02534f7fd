// Package github implements the Fetcher port against the GitHub REST and
// raw-content endpoints.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/hypercompute/seedlock/internal/core/domain"
	"github.com/hypercompute/seedlock/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	defaultAPIBase = "https://api.github.com"
	defaultRawBase = "https://raw.githubusercontent.com"

	// metadataTimeout bounds tag-ref and commit-validation calls.
	metadataTimeout = 10 * time.Second
	// downloadTimeout bounds raw file content downloads.
	downloadTimeout = 30 * time.Second
)

var commitSHARe = regexp.MustCompile(`^[0-9a-fA-F]{40}$`)

// Client implements ports.Fetcher. Both endpoints are unauthenticated and
// share the primary rate limit, so every API response body is inspected for
// the rate-limit message before any other interpretation.
type Client struct {
	apiBase        string
	rawBase        string
	metadataClient *http.Client
	downloadClient *http.Client
	logger         ports.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURLs overrides the API and raw-content endpoints. Used for testing.
func WithBaseURLs(apiBase, rawBase string) Option {
	return func(c *Client) {
		c.apiBase = strings.TrimSuffix(apiBase, "/")
		c.rawBase = strings.TrimSuffix(rawBase, "/")
	}
}

// WithHTTPClients overrides the underlying HTTP clients. Used for testing.
func WithHTTPClients(metadata, download *http.Client) Option {
	return func(c *Client) {
		c.metadataClient = metadata
		c.downloadClient = download
	}
}

// NewClient creates a Fetcher backed by the GitHub endpoints.
func NewClient(logger ports.Logger, opts ...Option) *Client {
	c := &Client{
		apiBase:        defaultAPIBase,
		rawBase:        defaultRawBase,
		metadataClient: &http.Client{Timeout: metadataTimeout},
		downloadClient: &http.Client{Timeout: downloadTimeout},
		logger:         logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RawFileURL builds the raw-content URL for a file at a ref.
func (c *Client) RawFileURL(orgRepo, ref, filePath string) string {
	return c.rawBase + "/" + orgRepo + "/" + ref + "/" + filePath
}

// DownloadFile performs an existence check (HEAD), verifies a 200 status,
// then streams the body to destDir under the URL's final path segment.
func (c *Client) DownloadFile(ctx context.Context, fileURL, destDir string) (string, error) {
	name, err := fileNameFromURL(fileURL)
	if err != nil {
		return "", err
	}

	head, err := http.NewRequestWithContext(ctx, http.MethodHead, fileURL, http.NoBody)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrNetwork.Error()), "url", fileURL)
	}
	resp, err := c.downloadClient.Do(head)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrNetwork.Error()), "url", fileURL)
	}
	_ = resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", zerr.With(domain.ErrNotFound, "url", fileURL)
	case resp.StatusCode != http.StatusOK:
		return "", zerr.With(zerr.With(domain.ErrUnexpectedStatus, "status", resp.StatusCode), "url", fileURL)
	}

	dest := filepath.Join(destDir, name)
	c.logger.Info(fmt.Sprintf("downloading %s to %s", fileURL, dest))

	get, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, http.NoBody)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrNetwork.Error()), "url", fileURL)
	}
	resp, err = c.downloadClient.Do(get)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrNetwork.Error()), "url", fileURL)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", zerr.With(zerr.With(domain.ErrUnexpectedStatus, "status", resp.StatusCode), "url", fileURL)
	}

	//nolint:gosec // destination derives from the trusted output directory
	out, err := os.Create(dest)
	if err != nil {
		return "", zerr.Wrap(err, "failed to create destination file")
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrNetwork.Error()), "url", fileURL)
	}

	return dest, nil
}

// ResolveRef resolves a tag-or-commit reference to a commit SHA. It queries
// the tags-ref endpoint first; a reference that is not a tag is treated as a
// literal commit and validated.
func (c *Client) ResolveRef(ctx context.Context, orgRepo, ref string) (string, error) {
	refURL := fmt.Sprintf("%s/repos/%s/git/ref/tags/%s", c.apiBase, orgRepo, ref)
	c.logger.Info(fmt.Sprintf("resolving ref %q against %s", ref, refURL))

	var sha string
	body, err := c.getAPI(ctx, refURL)
	if err == nil {
		var tagRef struct {
			Object struct {
				SHA string `json:"sha"`
			} `json:"object"`
		}
		if jsonErr := json.Unmarshal(body, &tagRef); jsonErr == nil {
			sha = tagRef.Object.SHA
		}
	} else if errors.Is(err, domain.ErrRateLimit) {
		return "", err
	}

	if sha != "" {
		return sha, nil
	}

	c.logger.Info(fmt.Sprintf("%q is not an existing tag, checking whether it is a commit SHA", ref))
	ok, err := c.IsValidCommit(ctx, orgRepo, ref)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", zerr.With(zerr.With(domain.ErrRefResolution, "ref", ref), "repo", orgRepo)
	}
	return ref, nil
}

// IsValidCommit reports whether ref names an existing commit in orgRepo. Any
// shape other than 40 hex characters returns false without a network call.
// Network and parse errors report false; only rate-limit exhaustion is an
// error.
func (c *Client) IsValidCommit(ctx context.Context, orgRepo, ref string) (bool, error) {
	if !commitSHARe.MatchString(ref) {
		return false, nil
	}

	commitURL := fmt.Sprintf("%s/repos/%s/git/commits/%s", c.apiBase, orgRepo, ref)
	body, err := c.getAPI(ctx, commitURL)
	if err != nil {
		if errors.Is(err, domain.ErrRateLimit) {
			return false, err
		}
		c.logger.Warn(fmt.Sprintf("commit lookup failed for %s: %v", ref, err))
		return false, nil
	}

	var commit struct {
		SHA string `json:"sha"`
	}
	if err := json.Unmarshal(body, &commit); err != nil {
		c.logger.Warn(fmt.Sprintf("commit lookup returned non-JSON response for %s", ref))
		return false, nil
	}

	return commit.SHA != "", nil
}

// getAPI performs a metadata GET and applies the rate-limit guard to the
// response body before the caller may interpret it.
func (c *Client) getAPI(ctx context.Context, apiURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, http.NoBody)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrNetwork.Error()), "url", apiURL)
	}

	resp, err := c.metadataClient.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrNetwork.Error()), "url", apiURL)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrNetwork.Error()), "url", apiURL)
	}

	// The rate-limit guard runs ahead of any other interpretation of the
	// response, including its status code.
	if err := checkRateLimit(body); err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, zerr.With(zerr.With(domain.ErrUnexpectedStatus, "status", resp.StatusCode), "url", apiURL)
	}

	return body, nil
}

// checkRateLimit inspects an API response body for the rate-limit message.
// The primary limit for unauthenticated requests is 60 requests per hour.
func checkRateLimit(body []byte) error {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		// Non-JSON bodies carry no API message.
		return nil
	}
	if strings.Contains(envelope.Message, "API rate limit exceeded for ") {
		return zerr.With(domain.ErrRateLimit, "message", envelope.Message)
	}
	return nil
}

// fileNameFromURL derives the local file name from the URL's final path
// segment.
func fileNameFromURL(fileURL string) (string, error) {
	parsed, err := url.Parse(fileURL)
	if err != nil {
		return "", zerr.With(domain.ErrNaming, "url", fileURL)
	}
	name := path.Base(parsed.Path)
	if name == "" || name == "." || name == "/" {
		return "", zerr.With(domain.ErrNaming, "url", fileURL)
	}
	return name, nil
}

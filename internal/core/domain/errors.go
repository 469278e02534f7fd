package domain

import "go.trai.ch/zerr"

var (
	// ErrNotFound is returned when a remote file does not exist (HTTP 404).
	ErrNotFound = zerr.New("remote file not found")

	// ErrUnexpectedStatus is returned on any non-200 status other than 404.
	ErrUnexpectedStatus = zerr.New("unexpected HTTP status")

	// ErrNetwork is returned on transport failures or timeouts.
	ErrNetwork = zerr.New("network error")

	// ErrNaming is returned when no filename can be derived from a URL.
	ErrNaming = zerr.New("could not determine filename from URL")

	// ErrRateLimit is returned when the remote API reports rate-limit
	// exhaustion. It is always fatal to the whole run.
	ErrRateLimit = zerr.New("API rate limit exceeded")

	// ErrRefResolution is returned when a reference is neither a known tag
	// nor a valid commit.
	ErrRefResolution = zerr.New("could not resolve reference to a commit")

	// ErrInvalidCommit is returned when a host commit reference fails
	// validation before any iteration runs.
	ErrInvalidCommit = zerr.New("invalid commit reference")

	// ErrInvalidVersion is returned when an interpreter version is not in
	// "X.Y" form.
	ErrInvalidVersion = zerr.New("interpreter version must match X.Y")

	// ErrUnsupportedVersion is returned when a requested interpreter version
	// is outside the supported set.
	ErrUnsupportedVersion = zerr.New("unsupported interpreter version")

	// ErrMalformedManifest is returned when the descriptor's dependencies
	// array pattern is absent during the lower-bound rewrite.
	ErrMalformedManifest = zerr.New("dependencies array not found in project descriptor")

	// ErrResolverStep is returned when an external resolver invocation exits
	// non-zero.
	ErrResolverStep = zerr.New("resolver step failed")

	// ErrStageArtifactMissing is returned when an expected artifact is absent
	// during staging.
	ErrStageArtifactMissing = zerr.New("expected artifact missing during staging")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrRunAborted marks a build run stopped by a fatal precondition, as
	// opposed to a CLI usage error.
	ErrRunAborted = zerr.New("build run aborted")
)

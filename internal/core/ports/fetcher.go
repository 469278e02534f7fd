package ports

import "context"

// Fetcher defines the interface for resolving references against a
// source-control hosting API and downloading raw file content.
//
//go:generate mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type Fetcher interface {
	// DownloadFile checks that url exists (HEAD), then streams the body to
	// destDir under the URL's final path segment. It returns the local path.
	DownloadFile(ctx context.Context, url, destDir string) (string, error)

	// ResolveRef resolves a tag-or-commit reference for orgRepo to a commit
	// SHA. A reference that is neither a known tag nor a valid commit fails
	// with domain.ErrRefResolution.
	ResolveRef(ctx context.Context, orgRepo, ref string) (string, error)

	// IsValidCommit reports whether ref is a 40-hex-character string naming
	// an existing commit in orgRepo. Network and parse failures report false;
	// rate-limit exhaustion is returned as a fatal error.
	IsValidCommit(ctx context.Context, orgRepo, ref string) (bool, error)

	// RawFileURL builds the raw-content URL for a file at a ref.
	RawFileURL(orgRepo, ref, path string) string
}

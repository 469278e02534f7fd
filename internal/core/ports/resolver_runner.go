package ports

import "context"

// ResolverRunner defines the interface for invoking the external dependency
// resolver. Each call is one blocking subprocess invocation; a non-zero exit
// fails with domain.ErrResolverStep carrying the captured output.
//
//go:generate mockgen -source=resolver_runner.go -destination=mocks/mock_resolver_runner.go -package=mocks
type ResolverRunner interface {
	// Run executes the resolver with args in workdir.
	Run(ctx context.Context, workdir string, args ...string) error
}

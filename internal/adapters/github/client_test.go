package github_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/hypercompute/seedlock/internal/adapters/github"
	"github.com/hypercompute/seedlock/internal/core/domain"
	"github.com/hypercompute/seedlock/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const validSHA = "261f25007e4d12bb57cf8d5d61e291ba8f18430f"

func newTestClient(t *testing.T, handler http.Handler) *github.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	return github.NewClient(log, github.WithBaseURLs(srv.URL, srv.URL))
}

func TestClient_RawFileURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := github.NewClient(mocks.NewMockLogger(ctrl))

	assert.Equal(t,
		"https://raw.githubusercontent.com/jax-ml/jax/"+validSHA+"/build/requirements_lock_3_11.txt",
		c.RawFileURL("jax-ml/jax", validSHA, "build/requirements_lock_3_11.txt"))
}

func TestClient_DownloadFile(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/org/repo/main/requirements.txt" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("numpy==1.26.4\n"))
	}))

	dir := t.TempDir()
	path, err := c.DownloadFile(context.Background(),
		c.RawFileURL("org/repo", "main", "requirements.txt"), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "requirements.txt"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "numpy==1.26.4\n", string(content))
}

func TestClient_DownloadFile_NoFileName(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// A URL without a final path segment cannot name the local file.
	_, err := c.DownloadFile(context.Background(), "https://example.com/", t.TempDir())
	require.ErrorIs(t, err, domain.ErrNaming)
}

func TestClient_DownloadFile_NotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := c.DownloadFile(context.Background(),
		c.RawFileURL("org/repo", "main", "missing.txt"), t.TempDir())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_DownloadFile_UnexpectedStatus(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	_, err := c.DownloadFile(context.Background(),
		c.RawFileURL("org/repo", "main", "requirements.txt"), t.TempDir())
	require.ErrorIs(t, err, domain.ErrUnexpectedStatus)
}

func TestClient_ResolveRef_Tag(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/jax-ml/jax/git/ref/tags/jax-v0.6.2", r.URL.Path)
		_, _ = w.Write([]byte(`{"ref":"refs/tags/jax-v0.6.2","object":{"sha":"` + validSHA + `","type":"commit"}}`))
	}))

	sha, err := c.ResolveRef(context.Background(), "jax-ml/jax", "jax-v0.6.2")
	require.NoError(t, err)
	assert.Equal(t, validSHA, sha)
}

func TestClient_ResolveRef_CommitFallback(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/jax-ml/jax/git/ref/tags/" + validSHA:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not Found"}`))
		case "/repos/jax-ml/jax/git/commits/" + validSHA:
			_, _ = w.Write([]byte(`{"sha":"` + validSHA + `"}`))
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	}))

	sha, err := c.ResolveRef(context.Background(), "jax-ml/jax", validSHA)
	require.NoError(t, err)
	assert.Equal(t, validSHA, sha)
}

func TestClient_ResolveRef_Unresolvable(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
	}))

	_, err := c.ResolveRef(context.Background(), "jax-ml/jax", "no-such-ref")
	require.ErrorIs(t, err, domain.ErrRefResolution)
}

func TestClient_ResolveRef_RateLimit(t *testing.T) {
	// The rate-limit message wins over the status code and must not fall
	// through to the commit lookup.
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"API rate limit exceeded for 203.0.113.7."}`))
	}))

	_, err := c.ResolveRef(context.Background(), "jax-ml/jax", "jax-v0.6.2")
	require.ErrorIs(t, err, domain.ErrRateLimit)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_IsValidCommit(t *testing.T) {
	tests := []struct {
		name      string
		ref       string
		handler   http.HandlerFunc
		want      bool
		wantErr   error
		wantCalls int32
	}{
		{
			name: "existing commit",
			ref:  validSHA,
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"sha":"` + validSHA + `"}`))
			},
			want:      true,
			wantCalls: 1,
		},
		{
			name:      "short ref skips the network",
			ref:       "main",
			want:      false,
			wantCalls: 0,
		},
		{
			name:      "non-hex ref skips the network",
			ref:       "zzzf25007e4d12bb57cf8d5d61e291ba8f18430f",
			want:      false,
			wantCalls: 0,
		},
		{
			name: "unknown commit",
			ref:  validSHA,
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"message":"Not Found"}`))
			},
			want:      false,
			wantCalls: 1,
		},
		{
			name: "rate limit is fatal",
			ref:  validSHA,
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"message":"API rate limit exceeded for 203.0.113.7."}`))
			},
			want:      false,
			wantErr:   domain.ErrRateLimit,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				if tt.handler != nil {
					tt.handler(w, r)
				}
			}))

			ok, err := c.IsValidCommit(context.Background(), "jax-ml/jax", tt.ref)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, ok)
			assert.Equal(t, tt.wantCalls, calls.Load())
		})
	}
}

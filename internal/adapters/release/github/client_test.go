package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	coreerrors "minebench/internal/core/errors"
)

func TestLatestRelease_Success(t *testing.T) {
	var gotPath, gotAccept, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{
			"tag_name": "v1.4.0",
			"assets": [
				{"name": "checksums.txt", "browser_download_url": "https://dl/checksums.txt"},
				{"name": "MineBench-CPU.zip", "browser_download_url": "https://dl/MineBench-CPU.zip"}
			]
		}`)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithToken("tok"))
	info, err := c.LatestRelease(context.Background(), "karbivskyi/MineBench-CPU-ZEPH")

	require.NoError(t, err)
	assert.Equal(t, "/repos/karbivskyi/MineBench-CPU-ZEPH/releases/latest", gotPath)
	assert.Equal(t, "application/vnd.github+json", gotAccept)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "v1.4.0", info.TagName)
	require.Len(t, info.Assets, 2)
	assert.Equal(t, "https://dl/MineBench-CPU.zip", info.Assets[1].DownloadURL)
}

func TestLatestRelease_NoTokenOmitsAuthorization(t *testing.T) {
	var hadAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadAuth = r.Header["Authorization"]
		fmt.Fprint(w, `{"tag_name":"v1","assets":[]}`)
	}))
	defer srv.Close()

	_, err := NewClient(WithBaseURL(srv.URL)).LatestRelease(context.Background(), "o/r")

	require.NoError(t, err)
	assert.False(t, hadAuth)
}

func TestLatestRelease_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient(WithBaseURL(srv.URL)).LatestRelease(context.Background(), "o/missing")

	assert.True(t, errors.Is(err, coreerrors.ErrSourceUnavailable))
	assert.Contains(t, err.Error(), "404")
}

func TestLatestRelease_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{not json`)
	}))
	defer srv.Close()

	_, err := NewClient(WithBaseURL(srv.URL)).LatestRelease(context.Background(), "o/r")

	assert.True(t, errors.Is(err, coreerrors.ErrSourceUnavailable))
}

func TestLatestRelease_InvalidRepository(t *testing.T) {
	_, err := NewClient().LatestRelease(context.Background(), "no-slash")
	assert.Error(t, err)
}

func TestLatestRelease_RateLimitHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"tag_name":"v1","assets":[]}`)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithRateLimit(rate.Limit(0.1), 1))
	_, err := c.LatestRelease(context.Background(), "o/r")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.LatestRelease(ctx, "o/r")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
}

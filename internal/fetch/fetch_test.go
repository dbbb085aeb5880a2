package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPage = `<!DOCTYPE html><html lang="en"><head><title> Hello  page </title></head><body><p>x</p></body></html>`

func TestFetch_HTTP(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/old":
			http.Redirect(w, r, "/new", http.StatusMovedPermanently)
		case "/new":
			gotUA = r.Header.Get("User-Agent")
			_, _ = w.Write([]byte(testPage))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	page, err := New(5*time.Second).Fetch(context.Background(), srv.URL+"/old")
	require.NoError(t, err)

	assert.Equal(t, srv.URL+"/new", page.URL)
	assert.Equal(t, http.StatusOK, page.Status)
	assert.Equal(t, "Hello page", page.Title)
	assert.Equal(t, testPage, page.HTML)
	assert.Equal(t, DefaultUserAgent, gotUA)
}

func TestFetch_HTTPErrorStatusStillReturnsPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`<html><head><title>Not found</title></head></html>`))
	}))
	defer srv.Close()

	page, err := New(0, WithUserAgent("custom")).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, page.Status)
	assert.Equal(t, "Not found", page.Title)
}

func TestFetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := New(50*time.Millisecond).Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	var te *TimeoutError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, srv.URL, te.URL)
	assert.Equal(t, 50*time.Millisecond, te.Timeout)
	assert.Contains(t, err.Error(), "timed out after 50ms")
}

func TestFetch_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	_, err := New(time.Second).Fetch(context.Background(), addr)
	require.Error(t, err)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, addr, fe.URL)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestFetch_LocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(path, []byte(testPage), 0o600))

	f := New(time.Second)

	page, err := f.Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, page.Status)
	assert.Equal(t, "Hello page", page.Title)
	assert.True(t, strings.HasPrefix(page.URL, "file://"))
	assert.True(t, strings.HasSuffix(page.URL, "/index.html"))

	page, err = f.Fetch(context.Background(), "file://"+filepath.ToSlash(path))
	require.NoError(t, err)
	assert.Equal(t, testPage, page.HTML)

	_, err = f.Fetch(context.Background(), "file://"+filepath.ToSlash(filepath.Join(dir, "missing.html")))
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNew_Defaults(t *testing.T) {
	assert.Equal(t, DefaultTimeout, New(0).Timeout())
	assert.Equal(t, DefaultTimeout, New(-time.Second).Timeout())
	assert.Equal(t, time.Second, New(time.Second, WithHTTPClient(nil)).Timeout())
}

func TestValidateURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(path, []byte(testPage), 0o600))

	tests := []struct {
		name    string
		target  string
		wantErr bool
	}{
		{"https", "https://example.com", false},
		{"http with path", "http://example.com/a?b=c", false},
		{"local file", path, false},
		{"file url", "file://" + filepath.ToSlash(path), false},
		{"empty", "", true},
		{"ftp", "ftp://example.com", true},
		{"no scheme", "example.com", true},
		{"no host", "https://", true},
		{"directory", dir, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.target)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

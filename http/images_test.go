package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	dcdhttp "github.com/lmh17ever/dongchedi-parser/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageDownloader_Download(t *testing.T) {
	t.Parallel()

	t.Run("downloads images in order with sequential names", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/webp")
			_, _ = w.Write([]byte("img:" + r.URL.Path))
		}))
		defer srv.Close()

		dir := t.TempDir()
		d := dcdhttp.NewImageDownloader(dcdhttp.WithRate(100))

		saved, errs, err := d.Download(context.Background(), []string{srv.URL + "/a", srv.URL + "/b"}, dir)
		require.NoError(t, err)
		assert.Empty(t, errs)
		require.Len(t, saved, 2)

		assert.Equal(t, filepath.Join(dir, "image_1.webp"), saved[0])
		assert.Equal(t, filepath.Join(dir, "image_2.webp"), saved[1])

		data, err := os.ReadFile(saved[0])
		require.NoError(t, err)
		assert.Equal(t, "img:/a", string(data))
	})

	t.Run("sends the referer header", func(t *testing.T) {
		t.Parallel()

		var referer string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			referer = r.Header.Get("Referer")
			_, _ = w.Write([]byte("ok"))
		}))
		defer srv.Close()

		d := dcdhttp.NewImageDownloader(dcdhttp.WithRate(100))
		_, _, err := d.Download(context.Background(), []string{srv.URL + "/a.webp"}, t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "https://www.dongchedi.com/", referer)
	})

	t.Run("a failing image is retried once, then skipped", func(t *testing.T) {
		t.Parallel()

		var badCalls int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/bad") {
				badCalls++
				http.Error(w, "nope", http.StatusForbidden)
				return
			}
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write([]byte("ok"))
		}))
		defer srv.Close()

		dir := t.TempDir()
		d := dcdhttp.NewImageDownloader(dcdhttp.WithRate(100))

		saved, errs, err := d.Download(context.Background(), []string{srv.URL + "/good", srv.URL + "/bad", srv.URL + "/also-good"}, dir)
		require.NoError(t, err, "per-image failures don't fail the call")

		assert.Equal(t, 2, badCalls, "one retry")
		require.Len(t, saved, 2)
		assert.Equal(t, filepath.Join(dir, "image_1.jpg"), saved[0])
		assert.Equal(t, filepath.Join(dir, "image_3.jpg"), saved[1], "numbering follows input positions")

		require.Len(t, errs, 1)
		assert.Equal(t, "image 2", errs[0].Field)
	})

	t.Run("context cancellation aborts the batch", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		d := dcdhttp.NewImageDownloader(dcdhttp.WithRate(100))
		_, _, err := d.Download(ctx, []string{srv.URL + "/a.webp"}, t.TempDir())
		require.Error(t, err)
	})

	t.Run("picks the extension from the URL when content type is generic", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/octet-stream")
			_, _ = w.Write([]byte("ok"))
		}))
		defer srv.Close()

		dir := t.TempDir()
		d := dcdhttp.NewImageDownloader(dcdhttp.WithRate(100))

		saved, _, err := d.Download(context.Background(), []string{srv.URL + "/photo.png"}, dir)
		require.NoError(t, err)
		require.Len(t, saved, 1)
		assert.Equal(t, filepath.Join(dir, "image_1.png"), saved[0])
	})
}

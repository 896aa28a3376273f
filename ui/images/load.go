package images

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/disintegration/imaging"
	"github.com/schollz/progressbar/v3"

	// Extra decoders beyond the ones imaging registers.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrNotImage is returned when no registered decoder recognises downloaded content.
var ErrNotImage = errors.New("images: content is not an image")

// LoadOptions tunes how sources are fetched.
type LoadOptions struct {
	// Timeout bounds remote downloads. Zero means no extra deadline.
	Timeout time.Duration
	// Progress receives a download progress bar. Nil disables it.
	Progress io.Writer
	// Client overrides the HTTP client used for URLs.
	Client *http.Client
}

// Load decodes src, which is either a local path or an http(s) URL.
// EXIF orientation is applied so the returned image is upright.
func Load(ctx context.Context, src string, opts LoadOptions) (image.Image, error) {
	if IsValidURL(src) {
		data, err := download(ctx, src, opts)
		if err != nil {
			return nil, err
		}
		img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", src, err)
		}
		return img, nil
	}
	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", src, err)
	}
	return img, nil
}

// IsValidURL reports whether s is an absolute URL with a scheme and host.
func IsValidURL(s string) bool {
	if _, err := url.ParseRequestURI(s); err != nil {
		return false
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

func download(ctx context.Context, src string, opts LoadOptions) ([]byte, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}
	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", src, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download %s: status %s", src, resp.Status)
	}

	var buf bytes.Buffer
	var w io.Writer = &buf
	if opts.Progress != nil {
		bar := progressbar.NewOptions64(resp.ContentLength,
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription("download "+src),
			progressbar.OptionShowBytes(true),
			progressbar.OptionClearOnFinish(),
		)
		defer bar.Close()
		w = io.MultiWriter(&buf, bar)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return nil, fmt.Errorf("read %s: %w", src, err)
	}

	// Any format with a registered decoder is accepted, including tiff.
	if _, _, err := image.DecodeConfig(bytes.NewReader(buf.Bytes())); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotImage, src, err)
	}
	return buf.Bytes(), nil
}

// Exists reports whether a local path names a regular file. URLs always report true.
func Exists(src string) bool {
	if IsValidURL(src) {
		return true
	}
	st, err := os.Stat(src)
	return err == nil && st.Mode().IsRegular()
}

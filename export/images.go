package export

import (
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"ficha-generator/utils"
)

// maxImageBytes caps a single photo download; portal photos are a few
// hundred KB, anything bigger is not worth inlining.
const maxImageBytes = 20 << 20

// ImageResolver downloads listing photos and inlines them as data URIs, so
// the capture step only ever sees fully decoded local bytes. Cross-origin
// <img> tags resolved inside the headless page produced blank tiles when the
// screenshot ran before their decode finished; inlining removes that race.
type ImageResolver struct {
	httpc  *http.Client
	retry  *utils.RetryConfig
	logger zerolog.Logger
}

// NewImageResolver creates a resolver with a per-image timeout and retry
// budget. The final failure of an image is still absorbed by the caller.
func NewImageResolver(timeout time.Duration, maxRetries int, logger zerolog.Logger) *ImageResolver {
	if maxRetries < 1 {
		maxRetries = 1
	}
	l := logger.With().Str("component", "image-resolver").Logger()
	return &ImageResolver{
		httpc: &http.Client{Timeout: timeout},
		retry: &utils.RetryConfig{
			MaxAttempts: maxRetries,
			BaseDelay:   500 * time.Millisecond,
			Logger:      l,
		},
		logger: l,
	}
}

// Resolve fetches one image to completion and returns it as a data URI.
// ok is false when the image could not be loaded; the caller leaves that
// tile blank instead of aborting.
func (r *ImageResolver) Resolve(ctx context.Context, imgURL string) (template.URL, bool) {
	var uri template.URL

	err := r.retry.Do("fetch-image", func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, imgURL, nil)
		if err != nil {
			return err
		}
		resp, err := r.httpc.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return fmt.Errorf("HTTP %d", resp.StatusCode)
		}

		data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
		if err != nil {
			return err
		}
		if len(data) == 0 {
			return fmt.Errorf("empty body")
		}

		contentType := resp.Header.Get("Content-Type")
		if contentType == "" {
			contentType = http.DetectContentType(data)
		}

		uri = template.URL("data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data))
		return nil
	})

	if err != nil {
		r.logger.Warn().Str("url", imgURL).Err(err).Msg("image load failed, tile left blank")
		return "", false
	}
	return uri, true
}

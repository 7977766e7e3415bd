// Package upstream holds the HTTP clients for the third-party weather and
// places providers.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/weatherplaces/places-api/internal/core/domain"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 8 << 20
	maxErrorBytes  = 512
)

// Config holds the settings shared by every provider client.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type client struct {
	provider string
	baseURL  string
	http     *http.Client
	maxBody  int64
	log      zerolog.Logger
}

func newClient(provider string, cfg Config, log zerolog.Logger) client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return client{
		provider: provider,
		baseURL:  cfg.BaseURL,
		http:     &http.Client{Timeout: timeout},
		maxBody:  maxBodyBytes,
		log:      log.With().Str("provider", provider).Logger(),
	}
}

// get issues a GET with query and returns the body of a 2xx response.
// Failures come back as *domain.UpstreamError and are never retried.
func (c client) get(ctx context.Context, query url.Values) ([]byte, error) {
	endpoint := c.baseURL
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, c.fail(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		// url.Error embeds the full URL, which may carry an API key.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, c.fail(fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, c.fail(fmt.Errorf("read response: %w", err))
	}
	if int64(len(body)) > c.maxBody {
		return nil, c.fail(fmt.Errorf("response too large: exceeds %d bytes", c.maxBody))
	}

	c.log.Debug().
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("upstream response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.fail(fmt.Errorf("unexpected status %d: %s", resp.StatusCode, snippet(body)))
	}
	return body, nil
}

func (c client) fail(err error) error {
	return &domain.UpstreamError{Provider: c.provider, Err: err}
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBytes {
		s = s[:maxErrorBytes] + "..."
	}
	return s
}

package updown

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/simpleupdown/updown/pkg/logger"
	"github.com/simpleupdown/updown/pkg/requestid"
)

// maxDetailBytes caps how much of an error body is read for StatusError.
const maxDetailBytes = 4 << 10

var validHash = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// Client talks to one backend. It is safe for concurrent use.
type Client struct {
	base            *url.URL
	http            *http.Client
	timeout         time.Duration
	retries         int
	initialInterval time.Duration
	maxInterval     time.Duration
	userAgent       string
	logger          *slog.Logger
}

// NewClient returns a client for the backend at baseURL, which must be an
// absolute http or https URL. A path prefix is kept.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		base:            base,
		timeout:         DefaultTimeout,
		retries:         DefaultRetries,
		initialInterval: DefaultInitialInterval,
		maxInterval:     DefaultMaxInterval,
		userAgent:       defaultUserAgent,
		logger:          logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := &http.Client{
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
	if c.http != nil {
		copied := *c.http
		hc = &copied
	}
	hc.Transport = requestid.Transport(hc.Transport)
	c.http = hc

	c.logger = c.logger.With(logger.Component("updown"))
	return c, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: URL is required", ErrInvalidBaseURL)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: only http and https schemes are supported", ErrInvalidBaseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: host is required", ErrInvalidBaseURL)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

// BaseURL returns the backend root the client was created with.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// ListFiles returns every file the backend currently lists.
func (c *Client) ListFiles(ctx context.Context) ([]FileRecord, error) {
	resp, release, err := c.do(ctx, http.MethodGet, c.base.JoinPath("api", "files/").String(), true, false)
	if err != nil {
		return nil, err
	}
	defer release()
	defer resp.Body.Close()

	var body listResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.Join(ErrDecodeResponse, err)
	}
	if body.Files == nil {
		return []FileRecord{}, nil
	}
	return body.Files, nil
}

// DeleteFile removes the file with the given SHA-256. It is not retried.
func (c *Client) DeleteFile(ctx context.Context, hash string) error {
	if !validHash.MatchString(hash) {
		return fmt.Errorf("%w: %q", ErrInvalidHash, hash)
	}
	resp, release, err := c.do(ctx, http.MethodDelete, c.base.JoinPath("files", hash).String(), false, false)
	if err != nil {
		return err
	}
	defer release()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

// Download opens the content of the file with the given SHA-256.
// The caller must Close the result.
func (c *Client) Download(ctx context.Context, hash string) (*Download, error) {
	if !validHash.MatchString(hash) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHash, hash)
	}
	resp, release, err := c.do(ctx, http.MethodGet, c.DownloadURL(hash), true, true)
	if err != nil {
		return nil, err
	}
	return newDownload(resp, hash, release), nil
}

// DownloadURL returns the public download link for hash, or "" for an
// invalid hash.
func (c *Client) DownloadURL(hash string) string {
	if !validHash.MatchString(hash) {
		return ""
	}
	return c.base.JoinPath("download", hash).String()
}

// ThumbnailURL returns the thumbnail link for hash, or "" for an invalid
// hash. The backend only serves thumbnails for images.
func (c *Client) ThumbnailURL(hash string) string {
	if !validHash.MatchString(hash) {
		return ""
	}
	return c.base.JoinPath("thumbnail", hash).String()
}

type attemptResult struct {
	resp    *http.Response
	release func()
}

// do sends one logical request. Idempotent requests are retried. For
// streaming requests the timeout stops applying once headers arrive. The
// returned release func must be called after the body is consumed.
func (c *Client) do(ctx context.Context, method, target string, idempotent, stream bool) (*http.Response, func(), error) {
	ctx, reqID := requestid.Ensure(ctx)
	log := c.logger.With(logger.RequestID(reqID))

	attempt := 0
	op := func() (attemptResult, error) {
		attempt++
		actx, cancel := context.WithCancelCause(ctx)
		timer := time.AfterFunc(c.timeout, func() { cancel(ErrTimeout) })
		release := func() {
			timer.Stop()
			cancel(nil)
		}

		req, err := http.NewRequestWithContext(actx, method, target, nil)
		if err != nil {
			release()
			return attemptResult{}, backoff.Permanent(errors.Join(ErrRequestFailed, err))
		}
		req.Header.Set("Accept", "application/json, */*")
		req.Header.Set("User-Agent", c.userAgent)

		start := time.Now()
		resp, err := c.http.Do(req)
		if err != nil {
			timedOut := errors.Is(context.Cause(actx), ErrTimeout)
			release()
			if ctx.Err() != nil {
				return attemptResult{}, backoff.Permanent(ctx.Err())
			}
			if timedOut {
				err = fmt.Errorf("%w after %s: %w", ErrTimeout, c.timeout, err)
			} else {
				err = errors.Join(ErrRequestFailed, err)
			}
			log.DebugContext(ctx, "request failed",
				slog.String("method", method), logger.URL(target),
				logger.Attempt(attempt), logger.Error(err))
			return attemptResult{}, err
		}
		if stream {
			timer.Stop()
		}

		log.DebugContext(ctx, "request completed",
			slog.String("method", method), logger.URL(target),
			slog.Int("status", resp.StatusCode),
			logger.Attempt(attempt), logger.Duration(time.Since(start)))

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return attemptResult{resp: resp, release: release}, nil
		}

		serr := &StatusError{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Detail:     readDetail(resp.Body),
		}
		_ = resp.Body.Close()
		release()
		if retryableStatus(resp.StatusCode) {
			return attemptResult{}, serr
		}
		return attemptResult{}, backoff.Permanent(serr)
	}

	tries := uint(1)
	if idempotent {
		tries += uint(c.retries)
	}

	res, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(c.newBackOff()),
		backoff.WithMaxTries(tries),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.WarnContext(ctx, "retrying request",
				slog.String("method", method), logger.URL(target),
				logger.Attempt(attempt), slog.Duration("backoff", next), logger.Error(err))
		}),
	)
	if err != nil {
		return nil, nil, err
	}
	return res.resp, res.release, nil
}

func (c *Client) newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialInterval
	b.MaxInterval = c.maxInterval
	b.Reset()
	return b
}

// readDetail extracts the message of an error response. The backend sends
// {"detail": "..."}; anything else is returned as trimmed text.
func readDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxDetailBytes))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var body struct {
		Detail any `json:"detail"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Detail != nil {
		if s, ok := body.Detail.(string); ok {
			return s
		}
		b, _ := json.Marshal(body.Detail)
		return string(b)
	}
	return strings.TrimSpace(string(raw))
}

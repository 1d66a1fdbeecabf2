package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"spellbudex/internal/pkg/config"
	"spellbudex/internal/pkg/errs"
)

// CredentialSource is the slice of the session store the client needs: read
// the bearer credential for outbound calls, evict the record on a 401.
type CredentialSource interface {
	Token() string
	Clear()
}

// Client wraps every call to the backend. It attaches the stored credential
// as a bearer header, enforces the fixed request timeout, and reacts
// centrally to response statuses. Failures are terminal per call; retrying is
// always a new user action.
type Client struct {
	baseURL     *url.URL
	http        *http.Client
	credentials CredentialSource
	reactor     Reactor
	log         *slog.Logger
}

func NewClient(cfg config.APIConfig, credentials CredentialSource, reactor Reactor, log *slog.Logger) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, errs.Wrap(err, "invalid API base URL")
	}
	if reactor == nil {
		reactor = NopReactor{}
	}
	return &Client{
		baseURL:     base,
		http:        &http.Client{Timeout: cfg.Timeout},
		credentials: credentials,
		reactor:     reactor,
		log:         log,
	}, nil
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// Upload sends r as a multipart form file under field.
func (c *Client) Upload(ctx context.Context, path, field, filename string, r io.Reader, out any) error {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile(field, filename)
	if err != nil {
		return errs.Wrap(err, "failed to build multipart form")
	}
	if _, err := io.Copy(part, r); err != nil {
		return errs.Wrap(err, "failed to read upload payload")
	}
	if err := form.Close(); err != nil {
		return errs.Wrap(err, "failed to finalize multipart form")
	}

	return c.send(ctx, http.MethodPost, path, &buf, form.FormDataContentType(), nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, headers ...header) error {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return errs.Wrap(err, "failed to encode request body")
		}
		payload = bytes.NewReader(raw)
	}
	return c.send(ctx, method, path, payload, "application/json", headers, out)
}

type header struct {
	name  string
	value string
}

func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string, headers []header, out any) error {
	target, err := c.baseURL.Parse(path)
	if err != nil {
		return errs.Wrapf(err, "invalid request path %q", path)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return errs.Wrap(err, "failed to build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.credentials.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, h := range headers {
		req.Header.Set(h.name, h.value)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		// An abandoned call (caller navigated away) is discarded silently;
		// only genuine transport failures notify.
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn("request failed", "method", method, "path", path, "error", err.Error())
		c.reactor.Unreachable()
		return &Error{Kind: KindNetwork, err: err}
	}
	defer resp.Body.Close()

	c.logResult(method, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode >= http.StatusBadRequest {
		return c.reject(resp)
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errs.Wrap(err, "failed to decode response body")
		}
	}
	return nil
}

func (c *Client) reject(resp *http.Response) error {
	kind := Classify(resp.StatusCode)
	apiErr := &Error{
		Kind:    kind,
		Status:  resp.StatusCode,
		Message: readDetail(resp.Body),
		err:     fmt.Errorf("backend returned %s", resp.Status),
	}

	switch kind {
	case KindUnauthorized:
		c.credentials.Clear()
		c.reactor.SessionExpired()
	case KindForbidden:
		c.reactor.PermissionDenied()
	case KindServer:
		c.reactor.ServerUnavailable()
	case KindNotFound, KindValidation:
		// Caller decides presentation.
	}
	return apiErr
}

// readDetail extracts the backend's {"detail": ...} message, if any.
func readDetail(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 1<<16))
	if err != nil {
		return ""
	}
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}
	var msg string
	if err := json.Unmarshal(envelope.Detail, &msg); err == nil {
		return msg
	}
	return strings.TrimSpace(string(envelope.Detail))
}

func (c *Client) logResult(method, path string, status int, duration time.Duration) {
	level := slog.LevelInfo
	if status >= 500 {
		level = slog.LevelError
	} else if status >= 400 {
		level = slog.LevelWarn
	}
	c.log.LogAttrs(context.Background(), level, "request completed",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status_code", status),
		slog.Duration("duration", duration),
	)
}

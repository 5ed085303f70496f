// Package api is the HTTP client for the remote storefront API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storefront/config"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"go.uber.org/fx"
	"golang.org/x/time/rate"
)

const (
	headerRequestID = "X-Request-Id"
	maxResponseSize = 10 << 20
)

type client struct {
	baseURL    *url.URL
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// Params holds dependencies for the API client, injected by Fx
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewClient builds the API client from config. No request is ever retried.
func NewClient(params Params) (service.APIClient, error) {
	return New(params.Config.API, &http.Client{Timeout: params.Config.API.Timeout}, params.Logger)
}

// New builds a client around httpClient. A zero RequestsPerSecond disables throttling.
func New(cfg *config.APIConfig, httpClient *http.Client, logger *slog.Logger) (service.APIClient, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid api base url %q", cfg.BaseURL)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, errors.Errorf("api base url %q must be absolute", cfg.BaseURL)
	}

	c := &client{
		baseURL:    base,
		httpClient: httpClient,
		logger:     logger,
	}
	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)
	}

	return c, nil
}

// Do sends req and returns the body of a 2xx response.
func (c *client) Do(ctx context.Context, req *service.Request) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, domainerrors.NewTransportError(req.Method, req.Path, err)
		}
	}

	httpReq, err := c.build(ctx, req)
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	httpReq.Header.Set(headerRequestID, requestID)
	logger := c.logger.With(
		slog.String("request_id", requestID),
		slog.String("method", req.Method),
		slog.String("path", req.Path),
	)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.Warn("API request failed", slog.Any("error", err))

		return nil, domainerrors.NewTransportError(req.Method, req.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		logger.Warn("API response unreadable", slog.Any("error", err))

		return nil, domainerrors.NewTransportError(req.Method, req.Path, err)
	}

	logger.Debug("API request completed",
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := domainerrors.NewAPIError(req.Method, req.Path, resp.StatusCode, errorMessage(resp.StatusCode, body))
		logger.Warn("API request rejected", slog.Int("status", resp.StatusCode), slog.String("message", apiErr.Msg))

		return nil, apiErr
	}

	return body, nil
}

func (c *client) build(ctx context.Context, req *service.Request) (*http.Request, error) {
	target := c.baseURL.JoinPath(req.Path)
	if len(req.Query) > 0 {
		q := target.Query()
		for k, v := range req.Query {
			q.Set(k, v)
		}
		target.RawQuery = q.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)

	switch {
	case req.Fields != nil:
		buf, ct, err := encodeMultipart(req.Fields, req.File)
		if err != nil {
			return nil, err
		}
		body, contentType = buf, ct
	case req.Body != nil:
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return nil, errors.Wrap(err, "encode request body")
		}
		body, contentType = bytes.NewReader(raw), "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target.String(), body)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}

	return httpReq, nil
}

func encodeMultipart(fields map[string]string, file *service.FilePart) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", errors.Wrapf(err, "write field %s", k)
		}
	}

	if file != nil && file.Content != nil {
		part, err := w.CreateFormFile(file.Field, file.Filename)
		if err != nil {
			return nil, "", errors.Wrap(err, "create file part")
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, "", errors.Wrap(err, "copy file part")
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", errors.Wrap(err, "close multipart writer")
	}

	return buf, w.FormDataContentType(), nil
}

// errorMessage pulls a human message out of whatever error body the API sent.
func errorMessage(status int, body []byte) string {
	if gjson.ValidBytes(body) {
		for _, path := range []string{"message", "error.message", "error", "msg"} {
			if v := gjson.GetBytes(body, path); v.Type == gjson.String && v.String() != "" {
				return v.String()
			}
		}
	}

	if text := strings.TrimSpace(string(body)); text != "" && len(text) < 200 {
		return text
	}

	return http.StatusText(status)
}

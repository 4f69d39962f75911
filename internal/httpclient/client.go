package httpclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/url"

	"github.com/aleister1102/figmabot/internal/common"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
)

// HTTPClient wraps net/http.Client with default headers and bounded body reads
type HTTPClient struct {
	client *http.Client
	config HTTPClientConfig
	logger zerolog.Logger
}

// NewHTTPClient creates a new HTTP client with the given configuration using net/http
func NewHTTPClient(config HTTPClientConfig, logger zerolog.Logger) (*HTTPClient, error) {
	transport := &http.Transport{
		MaxIdleConns:          config.MaxIdleConns,
		MaxIdleConnsPerHost:   config.MaxIdleConnsPerHost,
		IdleConnTimeout:       config.IdleConnTimeout,
		TLSHandshakeTimeout:   config.TLSHandshakeTimeout,
		ExpectContinueTimeout: config.ExpectContinueTimeout,
		DialContext: (&net.Dialer{
			Timeout:   config.DialTimeout,
			KeepAlive: config.KeepAlive,
		}).DialContext,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: config.InsecureSkipVerify, //nolint:gosec // opt-in via config
		},
	}

	if config.EnableHTTP2 {
		if err := http2.ConfigureTransport(transport); err != nil {
			logger.Warn().Err(err).Msg("Failed to configure HTTP/2, falling back to HTTP/1.1")
		}
	}

	if config.Proxy != "" {
		proxyURL, err := url.Parse(config.Proxy)
		if err != nil {
			return nil, common.WrapError(err, "failed to parse proxy URL")
		}
		transport.Proxy = http.ProxyURL(proxyURL)
		logger.Info().Str("proxy", config.Proxy).Msg("HTTP client configured with proxy")
	}

	logger.Debug().
		Dur("timeout", config.Timeout).
		Bool("http2_enabled", config.EnableHTTP2).
		Int64("max_content_size", config.MaxContentSize).
		Msg("HTTP client created")

	return &HTTPClient{
		client: &http.Client{Transport: transport, Timeout: config.Timeout},
		config: config,
		logger: logger,
	}, nil
}

// Do performs an HTTP request and reads the whole body. Non-2xx statuses are
// returned as responses, not errors; callers decide what a failure is.
func (c *HTTPClient) Do(req *HTTPRequest) (*HTTPResponse, error) {
	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, req.Body)
	if err != nil {
		return nil, common.WrapError(err, "failed to create HTTP request")
	}

	for key, value := range c.config.CustomHeaders {
		httpReq.Header.Set(key, value)
	}
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}
	if c.config.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.config.UserAgent)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, common.NewNetworkError(req.URL, "request failed", err)
	}
	defer resp.Body.Close()

	body, err := c.readBody(resp.Body)
	if err != nil {
		return nil, common.WrapErrorf(err, "failed to read response body from '%s'", req.URL)
	}

	httpResp := &HTTPResponse{
		StatusCode: resp.StatusCode,
		Headers:    make(map[string]string, len(resp.Header)),
		Body:       body,
	}
	for key, values := range resp.Header {
		if len(values) > 0 {
			httpResp.Headers[key] = values[0]
		}
	}

	c.logger.Debug().
		Str("method", method).
		Str("url", req.URL).
		Int("status_code", resp.StatusCode).
		Int("content_size", len(body)).
		Msg("HTTP request completed")

	return httpResp, nil
}

// PostJSON marshals payload and posts it with a JSON content type.
func (c *HTTPClient) PostJSON(ctx context.Context, url string, payload any, headers map[string]string) (*HTTPResponse, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, common.WrapError(err, "failed to marshal JSON payload")
	}

	merged := map[string]string{"Content-Type": "application/json"}
	for k, v := range headers {
		merged[k] = v
	}

	return c.Do(&HTTPRequest{
		URL:     url,
		Method:  http.MethodPost,
		Headers: merged,
		Body:    bytes.NewReader(data),
		Context: ctx,
	})
}

// bodyPool is shared by all clients; bodies are copied out before the buffer returns.
var bodyPool = common.NewBufferPool(32 * 1024)

func (c *HTTPClient) readBody(r io.Reader) ([]byte, error) {
	buf := bodyPool.Get()
	defer bodyPool.Put(buf)

	if c.config.MaxContentSize > 0 {
		r = io.LimitReader(r, c.config.MaxContentSize+1)
	}
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, err
	}
	if c.config.MaxContentSize > 0 && int64(buf.Len()) > c.config.MaxContentSize {
		return nil, common.NewValidationError("content_size", buf.Len(), "response body exceeds configured limit")
	}
	return bytes.Clone(buf.Bytes()), nil
}

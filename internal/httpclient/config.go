package httpclient

import (
	"time"

	"github.com/aleister1102/figmabot/internal/config"
)

// HTTPClientConfig holds configuration for HTTP clients
type HTTPClientConfig struct {
	Timeout               time.Duration     // Request timeout
	InsecureSkipVerify    bool              // Skip TLS verification
	Proxy                 string            // Proxy URL
	UserAgent             string            // User-Agent sent with every request
	CustomHeaders         map[string]string // Headers added to all requests
	MaxContentSize        int64             // Max response body in bytes (0 for no limit)
	MaxIdleConns          int               // Maximum idle connections
	MaxIdleConnsPerHost   int               // Maximum idle connections per host
	IdleConnTimeout       time.Duration     // Idle connection timeout
	TLSHandshakeTimeout   time.Duration     // TLS handshake timeout
	ExpectContinueTimeout time.Duration     // Expect 100-continue timeout
	DialTimeout           time.Duration     // Connection dial timeout
	KeepAlive             time.Duration     // Keep-alive duration
	EnableHTTP2           bool              // Enable HTTP/2 support
}

// DefaultHTTPClientConfig returns the default HTTP client configuration
func DefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:               30 * time.Second,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		DialTimeout:           10 * time.Second,
		KeepAlive:             30 * time.Second,
		EnableHTTP2:           true,
		CustomHeaders: map[string]string{
			"Accept": "application/json",
		},
	}
}

// ConfigFromGlobal maps the file configuration section onto transport settings.
func ConfigFromGlobal(cfg config.HTTPClientConfig) HTTPClientConfig {
	out := DefaultHTTPClientConfig()
	if cfg.TimeoutSecs > 0 {
		out.Timeout = time.Duration(cfg.TimeoutSecs) * time.Second
	}
	if cfg.MaxIdleConns > 0 {
		out.MaxIdleConns = cfg.MaxIdleConns
	}
	if cfg.MaxIdleConnsPerHost > 0 {
		out.MaxIdleConnsPerHost = cfg.MaxIdleConnsPerHost
	}
	if cfg.MaxContentSizeMB > 0 {
		out.MaxContentSize = int64(cfg.MaxContentSizeMB) * 1024 * 1024
	}
	for k, v := range cfg.CustomHeaders {
		out.CustomHeaders[k] = v
	}
	out.EnableHTTP2 = cfg.EnableHTTP2
	out.InsecureSkipVerify = cfg.InsecureSkipVerify
	out.Proxy = cfg.Proxy
	out.UserAgent = cfg.UserAgent
	return out
}

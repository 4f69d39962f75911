package config

// HTTPClientConfig configures the outbound transport shared by the Figma
// client and the chat webhook messenger.
type HTTPClientConfig struct {
	EnableHTTP2         bool              `json:"enable_http2" yaml:"enable_http2"`
	InsecureSkipVerify  bool              `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
	MaxContentSizeMB    int               `json:"max_content_size_mb,omitempty" yaml:"max_content_size_mb,omitempty" validate:"omitempty,min=1"`
	MaxIdleConns        int               `json:"max_idle_conns,omitempty" yaml:"max_idle_conns,omitempty" validate:"omitempty,min=1"`
	MaxIdleConnsPerHost int               `json:"max_idle_conns_per_host,omitempty" yaml:"max_idle_conns_per_host,omitempty" validate:"omitempty,min=1"`
	Proxy               string            `json:"proxy,omitempty" yaml:"proxy,omitempty" validate:"omitempty,url"`
	TimeoutSecs         int               `json:"timeout_secs,omitempty" yaml:"timeout_secs,omitempty" validate:"omitempty,min=1"`
	UserAgent           string            `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	CustomHeaders       map[string]string `json:"custom_headers,omitempty" yaml:"custom_headers,omitempty"`
}

// NewDefaultHTTPClientConfig creates default HTTP client configuration
func NewDefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		EnableHTTP2:         DefaultHTTPEnableHTTP2,
		InsecureSkipVerify:  false,
		MaxContentSizeMB:    DefaultHTTPMaxContentSizeMB,
		MaxIdleConns:        DefaultHTTPMaxIdleConns,
		MaxIdleConnsPerHost: DefaultHTTPMaxIdleConnsPerHost,
		TimeoutSecs:         DefaultHTTPTimeoutSecs,
		UserAgent:           DefaultHTTPUserAgent,
		CustomHeaders:       map[string]string{},
	}
}

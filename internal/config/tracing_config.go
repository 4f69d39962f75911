package config

// TracingConfig toggles span export
type TracingConfig struct {
	Enabled     bool `json:"enabled" yaml:"enabled"`
	PrettyPrint bool `json:"pretty_print" yaml:"pretty_print"`
}

// NewDefaultTracingConfig creates default tracing configuration
func NewDefaultTracingConfig() TracingConfig {
	return TracingConfig{}
}

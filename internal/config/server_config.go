package config

// ServerConfig configures the command HTTP endpoint
type ServerConfig struct {
	CommandTimeoutSecs  int    `json:"command_timeout_secs,omitempty" yaml:"command_timeout_secs,omitempty" validate:"omitempty,min=1"`
	IdleTimeoutSecs     int    `json:"idle_timeout_secs,omitempty" yaml:"idle_timeout_secs,omitempty" validate:"omitempty,min=1"`
	ListenAddress       string `json:"listen_address,omitempty" yaml:"listen_address,omitempty" validate:"required"`
	ReadTimeoutSecs     int    `json:"read_timeout_secs,omitempty" yaml:"read_timeout_secs,omitempty" validate:"omitempty,min=1"`
	ShutdownTimeoutSecs int    `json:"shutdown_timeout_secs,omitempty" yaml:"shutdown_timeout_secs,omitempty" validate:"omitempty,min=1"`
	WriteTimeoutSecs    int    `json:"write_timeout_secs,omitempty" yaml:"write_timeout_secs,omitempty" validate:"omitempty,min=1"`
}

// NewDefaultServerConfig creates default server configuration
func NewDefaultServerConfig() ServerConfig {
	return ServerConfig{
		CommandTimeoutSecs:  DefaultServerCommandTimeoutSec,
		IdleTimeoutSecs:     DefaultServerIdleTimeoutSecs,
		ListenAddress:       DefaultServerListenAddress,
		ReadTimeoutSecs:     DefaultServerReadTimeoutSecs,
		ShutdownTimeoutSecs: DefaultServerShutdownTimeout,
		WriteTimeoutSecs:    DefaultServerWriteTimeoutSecs,
	}
}

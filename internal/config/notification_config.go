package config

// NotificationConfig defines how messages are delivered back to chat rooms
type NotificationConfig struct {
	AvatarURL   string `json:"avatar_url,omitempty" yaml:"avatar_url,omitempty" validate:"omitempty,url"`
	TimeoutSecs int    `json:"timeout_secs,omitempty" yaml:"timeout_secs,omitempty" validate:"omitempty,min=1"`
	Username    string `json:"username,omitempty" yaml:"username,omitempty"`
	WebhookURL  string `json:"webhook_url,omitempty" yaml:"webhook_url,omitempty" validate:"omitempty,url"`
}

// NewDefaultNotificationConfig creates default notification configuration
func NewDefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		TimeoutSecs: DefaultNotificationTimeoutSecs,
		Username:    DefaultNotificationUsername,
	}
}

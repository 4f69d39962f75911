package config

// FigmaConfig holds the remote design-tool endpoints.
type FigmaConfig struct {
	APIBaseURL  string `json:"api_base_url,omitempty" yaml:"api_base_url,omitempty" validate:"required,url"`
	FileBaseURL string `json:"file_base_url,omitempty" yaml:"file_base_url,omitempty" validate:"required,url"`
}

// NewDefaultFigmaConfig creates default Figma configuration
func NewDefaultFigmaConfig() FigmaConfig {
	return FigmaConfig{
		APIBaseURL:  DefaultFigmaAPIBaseURL,
		FileBaseURL: DefaultFigmaFileBaseURL,
	}
}

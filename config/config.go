package config

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mediasweep/purgarr/pkg/analyzer"
	"github.com/spf13/viper"
)

type Config struct {
	Plex       Plex                `json:"plex" yaml:"plex" mapstructure:"plex"`
	Tautulli   Tautulli            `json:"tautulli" yaml:"tautulli" mapstructure:"tautulli"`
	Radarr     Arr                 `json:"radarr" yaml:"radarr" mapstructure:"radarr"`
	Sonarr     Arr                 `json:"sonarr" yaml:"sonarr" mapstructure:"sonarr"`
	Thresholds analyzer.Thresholds `json:"thresholds" yaml:"thresholds" mapstructure:"thresholds"`
	Output     Output              `json:"output" yaml:"output" mapstructure:"output"`
	Server     Server              `json:"server" yaml:"server" mapstructure:"server"`
	Storage    Storage             `json:"storage" yaml:"storage" mapstructure:"storage"`
}

type Plex struct {
	URL               string        `json:"url" yaml:"url" mapstructure:"url" validate:"required,url"`
	Token             string        `json:"token" yaml:"token" mapstructure:"token" validate:"required"`
	ExcludedLibraries []string      `json:"excludedLibraries" yaml:"excludedLibraries" mapstructure:"excludedLibraries"`
	BaseBackoff       time.Duration `json:"backoff" yaml:"backoff" mapstructure:"backoff"`
	MaxRetries        int           `json:"maxRetries" yaml:"maxRetries" mapstructure:"maxRetries"`
}

type Tautulli struct {
	URL    string `json:"url" yaml:"url" mapstructure:"url" validate:"required,url"`
	APIKey string `json:"apiKey" yaml:"apiKey" mapstructure:"apiKey" validate:"required"`
}

// Arr points at an optional Radarr or Sonarr instance. An empty URL
// disables the integration.
type Arr struct {
	URL    string `json:"url" yaml:"url" mapstructure:"url"`
	APIKey string `json:"apiKey" yaml:"apiKey" mapstructure:"apiKey"`
}

func (a Arr) Enabled() bool {
	return a.URL != ""
}

type Output struct {
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`
}

type Server struct {
	Port int `json:"port" yaml:"port" mapstructure:"port"`
}

// Storage configuration is assumed to be for sqlite database only currently
type Storage struct {
	FilePath string `json:"filePath" yaml:"filePath" mapstructure:"filePath"`
}

// Validate checks the fields an analysis run depends on. Serving the
// run API doesn't need Plex or Tautulli, so it skips this.
func (c Config) Validate() error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(c)
}

type ConfigUnmarshaler interface {
	ReadInConfig() error
	Unmarshal(any, ...viper.DecoderConfigOption) error
	ConfigFileUsed() string
}

// New reads a new configuration
func New(cu ConfigUnmarshaler) (Config, error) {
	var c Config

	if cu.ConfigFileUsed() != "" {
		err := cu.ReadInConfig()
		if err != nil {
			return c, err
		}
	}

	err := cu.Unmarshal(&c)
	return c, err
}

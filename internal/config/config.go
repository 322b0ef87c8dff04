// internal/config/config.go
package config

import (
	_ "embed"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yml
var defaultYAML []byte

type AppConfig struct {
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	LogLevel string `yaml:"log_level" json:"log_level"`
}

type AIConfig struct {
	BaseURL        string  `yaml:"base_url" json:"base_url"`
	Model          string  `yaml:"model" json:"model"`
	MaxTokens      int     `yaml:"max_tokens" json:"max_tokens"`
	Temperature    float32 `yaml:"temperature" json:"temperature"`
	TimeoutSeconds int     `yaml:"timeout_seconds" json:"timeout_seconds"`
}

type FilterConfig struct {
	Mode              string `yaml:"mode" json:"mode"`
	TitleThreshold    int    `yaml:"title_threshold" json:"title_threshold"`
	FallbackHeuristic bool   `yaml:"fallback_heuristic" json:"fallback_heuristic"`
}

type SecretsConfig struct {
	Backend string `yaml:"backend" json:"backend"`
}

type IngestConfig struct {
	BaseURL           string  `yaml:"base_url" json:"base_url"`
	Host              string  `yaml:"host" json:"host"`
	Endpoint          string  `yaml:"endpoint" json:"endpoint"`
	TitleFilter       string  `yaml:"title_filter" json:"title_filter"`
	LocationFilter    string  `yaml:"location_filter" json:"location_filter"`
	DescriptionType   string  `yaml:"description_type" json:"description_type"`
	Order             string  `yaml:"order" json:"order"`
	Offset            int     `yaml:"offset" json:"offset"`
	Limit             int     `yaml:"limit" json:"limit"`
	Pages             int     `yaml:"pages" json:"pages"`
	ResultsDir        string  `yaml:"results_dir" json:"results_dir"`
	RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
	Burst             int     `yaml:"burst" json:"burst"`
}

type Config struct {
	App     AppConfig     `yaml:"app" json:"app"`
	AI      AIConfig      `yaml:"ai" json:"ai"`
	Filter  FilterConfig  `yaml:"filter" json:"filter"`
	Secrets SecretsConfig `yaml:"secrets" json:"secrets"`
	Ingest  IngestConfig  `yaml:"ingest" json:"ingest"`
}

// Default returns the embedded default config.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		panic("config: embedded default.yml is invalid: " + err.Error())
	}
	return cfg
}

// Load reads path over the defaults, so keys missing from an older user
// file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

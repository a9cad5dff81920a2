package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Policies for numeric cells that fail to parse and are not a known
// suppression sentinel.
const (
	MalformedMissing = "missing"
	MalformedFail    = "fail"
)

type Config struct {
	App struct {
		Addr    string `yaml:"addr"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Census struct {
		BaseURL        string  `yaml:"base_url"`
		RatePerSec     float64 `yaml:"rate_per_sec"`
		Burst          int     `yaml:"burst"`
		TimeoutSeconds int     `yaml:"timeout_seconds"`
		APIKeyAccount  string  `yaml:"api_key_account"`
	} `yaml:"census"`

	Clean struct {
		OnMalformed string `yaml:"on_malformed"` // missing | fail
	} `yaml:"clean"`

	Refresh struct {
		IntervalHours int `yaml:"interval_hours"`
	} `yaml:"refresh"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

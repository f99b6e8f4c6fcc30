package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/limaJavier/stratmps/pkg/mps"
)

const EnvPrefix = "STRATMPS_"

type Config struct {
	Naming  NamingConfig  `json:"naming"`
	Output  OutputConfig  `json:"output"`
	Logging LoggingConfig `json:"logging"`
}

type NamingConfig struct {
	Profile string `json:"profile"`
}

type OutputConfig struct {
	Extension string `json:"extension"`
	Describe  bool   `json:"describe"`
}

type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

func (c *Config) SetDefaults() {
	if c.Naming.Profile == "" {
		c.Naming.Profile = "strict"
	}
	if c.Output.Extension == "" {
		c.Output.Extension = ".mps"
	}
	if !strings.HasPrefix(c.Output.Extension, ".") {
		c.Output.Extension = "." + c.Output.Extension
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
}

func (c Config) Validate() error {
	if _, err := mps.ParseProfile(c.Naming.Profile); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unsupported logging format: %s", c.Logging.Format)
	}
	return nil
}

// Profile returns the parsed naming profile; Validate must have succeeded
func (c Config) Profile() mps.Profile {
	profile, _ := mps.ParseProfile(c.Naming.Profile)
	return profile
}

// Load reads the optional configuration file at path (JSON or YAML) and applies
// STRATMPS_* environment overrides, e.g. STRATMPS_OUTPUT__EXTENSION=.lp
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		var parser koanf.Parser
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", filepath.Ext(path))
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

package rules

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the optional per-corpus configuration file
const ConfigFileName = ".agentlint.yaml"

// Config is per-corpus rule configuration loaded from the corpus root
type Config struct {
	// BannedTerms feeds the banned-term lexical rule
	BannedTerms []string `yaml:"banned_terms"`
	// DisabledRules are rule names skipped for this corpus
	DisabledRules []string `yaml:"disabled_rules"`
}

// LoadConfig reads the corpus configuration from root. A missing file yields
// an empty config; an unreadable or unparsable file is an error since a
// half-applied configuration would silently change what gets validated.
func LoadConfig(root string) (*Config, error) {
	content, err := os.ReadFile(filepath.Join(root, ConfigFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, errors.Wrapf(err, "failed to read %s", ConfigFileName)
	}

	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", ConfigFileName)
	}
	return &cfg, nil
}

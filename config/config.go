// Package config loads and validates the slopguard configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/slopguard/slopguard/internal/checks"
	"github.com/slopguard/slopguard/internal/scoring"
)

// Config represents the application configuration.
type Config struct {
	DefaultFormat string   `yaml:"default_format,omitempty"`
	Allowlist     []string `yaml:"allowlist,omitempty"`
	AutoClose     bool     `yaml:"auto_close,omitempty"`

	Thresholds *ThresholdOverrides `yaml:"thresholds,omitempty"`
	Weights    *WeightOverrides    `yaml:"weights,omitempty"`
}

// ThresholdOverrides allows customizing the verdict cut points.
type ThresholdOverrides struct {
	Warn  *int `yaml:"warn,omitempty"`
	Flag  *int `yaml:"flag,omitempty"`
	Block *int `yaml:"block,omitempty"`
}

// WeightOverrides allows customizing per-check weights. A weight of 0
// disables the check.
type WeightOverrides struct {
	Velocity           *int `yaml:"velocity,omitempty"`
	Abandonment        *int `yaml:"abandonment,omitempty"`
	Shotgun            *int `yaml:"shotgun,omitempty"`
	NewAccount         *int `yaml:"new_account,omitempty"`
	Placeholder        *int `yaml:"placeholder,omitempty"`
	HallucinatedImport *int `yaml:"hallucinated_import,omitempty"`
	DocstringInflation *int `yaml:"docstring_inflation,omitempty"`
	CopyPaste          *int `yaml:"copy_paste,omitempty"`
	GenericDescription *int `yaml:"generic_description,omitempty"`
	OversizedDiff      *int `yaml:"oversized_diff,omitempty"`
	UnrelatedChanges   *int `yaml:"unrelated_changes,omitempty"`
	FormattingOnly     *int `yaml:"formatting_only,omitempty"`
}

// overrideEntries pairs each override field with its check for merging.
func (w *WeightOverrides) overrideEntries() map[checks.ID]*int {
	return map[checks.ID]*int{
		checks.Velocity:           w.Velocity,
		checks.Abandonment:        w.Abandonment,
		checks.Shotgun:            w.Shotgun,
		checks.NewAccount:         w.NewAccount,
		checks.Placeholder:        w.Placeholder,
		checks.HallucinatedImport: w.HallucinatedImport,
		checks.DocstringInflation: w.DocstringInflation,
		checks.CopyPaste:          w.CopyPaste,
		checks.GenericDescription: w.GenericDescription,
		checks.OversizedDiff:      w.OversizedDiff,
		checks.UnrelatedChanges:   w.UnrelatedChanges,
		checks.FormattingOnly:     w.FormattingOnly,
	}
}

// GetWeights returns the default weights with any overrides applied.
func (c *Config) GetWeights() scoring.Weights {
	weights := scoring.DefaultWeights()
	if c.Weights == nil {
		return weights
	}
	for id, override := range c.Weights.overrideEntries() {
		if override != nil {
			weights[id] = *override
		}
	}
	return weights
}

// GetThresholds returns the default thresholds with any overrides applied.
func (c *Config) GetThresholds() scoring.Thresholds {
	t := scoring.DefaultThresholds()
	if c.Thresholds == nil {
		return t
	}
	if c.Thresholds.Warn != nil {
		t.Warn = *c.Thresholds.Warn
	}
	if c.Thresholds.Flag != nil {
		t.Flag = *c.Thresholds.Flag
	}
	if c.Thresholds.Block != nil {
		t.Block = *c.Thresholds.Block
	}
	return t
}

// Validate checks weight ranges and threshold ordering. Out-of-order
// thresholds are a configuration error, not something the engine guesses
// about.
func (c *Config) Validate() error {
	for id, w := range c.GetWeights() {
		if w < 0 || w > 100 {
			return fmt.Errorf("weight for %s is %d, must be in [0,100]", id, w)
		}
	}

	t := c.GetThresholds()
	for name, v := range map[string]int{"warn": t.Warn, "flag": t.Flag, "block": t.Block} {
		if v < 0 || v > 100 {
			return fmt.Errorf("threshold %s is %d, must be in [0,100]", name, v)
		}
	}
	if t.Warn > t.Flag || t.Flag > t.Block {
		return fmt.Errorf("thresholds must be ascending: warn(%d) <= flag(%d) <= block(%d)", t.Warn, t.Flag, t.Block)
	}

	return nil
}

// defaultBotAllowlist lists well-known automation accounts that always
// bypass evaluation.
var defaultBotAllowlist = []string{
	"dependabot[bot]",
	"renovate[bot]",
	"github-actions[bot]",
	"greenkeeper[bot]",
}

// IsAllowlisted reports whether the login should skip evaluation, either
// via the configured allowlist or the fixed bot allowlist.
func (c *Config) IsAllowlisted(login string) bool {
	for _, l := range c.Allowlist {
		if l == login {
			return true
		}
	}
	for _, l := range defaultBotAllowlist {
		if l == login {
			return true
		}
	}
	return false
}

// DefaultConfigDir returns the default config directory.
func DefaultConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ".slopguard"
	}
	return filepath.Join(configDir, "slopguard")
}

// ConfigPath returns the path to the global config file.
func ConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// LocalConfigPath returns the path to the local config file in the
// current directory.
func LocalConfigPath() string {
	return ".slopguard.yaml"
}

// Load loads the configuration from disk. The global config from the XDG
// config directory is loaded first, then any local .slopguard.yaml is
// merged on top (local values take precedence).
func Load() (*Config, error) {
	cfg := &Config{
		DefaultFormat: "table",
	}

	globalPath := ConfigPath()
	if _, err := os.Stat(globalPath); err == nil {
		data, err := os.ReadFile(globalPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read global config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse global config file: %w", err)
		}
	}

	localPath := LocalConfigPath()
	if _, err := os.Stat(localPath); err == nil {
		data, err := os.ReadFile(localPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read local config file: %w", err)
		}
		var localCfg Config
		if err := yaml.Unmarshal(data, &localCfg); err != nil {
			return nil, fmt.Errorf("failed to parse local config file: %w", err)
		}
		cfg = mergeConfig(cfg, &localCfg)
	}

	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = "table"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// mergeConfig merges local config on top of global config. Local values
// take precedence; unset local values preserve global values.
func mergeConfig(global, local *Config) *Config {
	result := &Config{}

	if local.DefaultFormat != "" {
		result.DefaultFormat = local.DefaultFormat
	} else {
		result.DefaultFormat = global.DefaultFormat
	}

	if len(local.Allowlist) > 0 {
		result.Allowlist = local.Allowlist
	} else {
		result.Allowlist = global.Allowlist
	}

	result.AutoClose = global.AutoClose || local.AutoClose

	result.Thresholds = mergeThresholds(global.Thresholds, local.Thresholds)
	result.Weights = mergeWeights(global.Weights, local.Weights)

	return result
}

func mergeThresholds(global, local *ThresholdOverrides) *ThresholdOverrides {
	if global == nil && local == nil {
		return nil
	}
	result := &ThresholdOverrides{}
	if global != nil {
		*result = *global
	}
	if local != nil {
		if local.Warn != nil {
			result.Warn = local.Warn
		}
		if local.Flag != nil {
			result.Flag = local.Flag
		}
		if local.Block != nil {
			result.Block = local.Block
		}
	}
	return result
}

func mergeWeights(global, local *WeightOverrides) *WeightOverrides {
	if global == nil && local == nil {
		return nil
	}
	result := &WeightOverrides{}
	if global != nil {
		*result = *global
	}
	if local == nil {
		return result
	}

	merged := result.overrideEntries()
	for id, override := range local.overrideEntries() {
		if override != nil {
			merged[id] = override
		}
	}
	result.Velocity = merged[checks.Velocity]
	result.Abandonment = merged[checks.Abandonment]
	result.Shotgun = merged[checks.Shotgun]
	result.NewAccount = merged[checks.NewAccount]
	result.Placeholder = merged[checks.Placeholder]
	result.HallucinatedImport = merged[checks.HallucinatedImport]
	result.DocstringInflation = merged[checks.DocstringInflation]
	result.CopyPaste = merged[checks.CopyPaste]
	result.GenericDescription = merged[checks.GenericDescription]
	result.OversizedDiff = merged[checks.OversizedDiff]
	result.UnrelatedChanges = merged[checks.UnrelatedChanges]
	result.FormattingOnly = merged[checks.FormattingOnly]

	return result
}

// Save saves the configuration to the global config path.
func (c *Config) Save() error {
	configDir := DefaultConfigDir()
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetGitHubToken returns the GitHub token from the GITHUB_TOKEN
// environment variable. Tokens are only read from the environment.
func (c *Config) GetGitHubToken() string {
	return os.Getenv("GITHUB_TOKEN")
}

// DefaultConfig returns a fully populated config with all default
// values, useful for generating a complete config file template.
func DefaultConfig() *Config {
	weights := scoring.DefaultWeights()
	thresholds := scoring.DefaultThresholds()

	intp := func(v int) *int { return &v }

	return &Config{
		DefaultFormat: "table",
		Allowlist:     []string{},
		AutoClose:     false,
		Thresholds: &ThresholdOverrides{
			Warn:  intp(thresholds.Warn),
			Flag:  intp(thresholds.Flag),
			Block: intp(thresholds.Block),
		},
		Weights: &WeightOverrides{
			Velocity:           intp(weights[checks.Velocity]),
			Abandonment:        intp(weights[checks.Abandonment]),
			Shotgun:            intp(weights[checks.Shotgun]),
			NewAccount:         intp(weights[checks.NewAccount]),
			Placeholder:        intp(weights[checks.Placeholder]),
			HallucinatedImport: intp(weights[checks.HallucinatedImport]),
			DocstringInflation: intp(weights[checks.DocstringInflation]),
			CopyPaste:          intp(weights[checks.CopyPaste]),
			GenericDescription: intp(weights[checks.GenericDescription]),
			OversizedDiff:      intp(weights[checks.OversizedDiff]),
			UnrelatedChanges:   intp(weights[checks.UnrelatedChanges]),
			FormattingOnly:     intp(weights[checks.FormattingOnly]),
		},
	}
}

// ToYAML returns the config as a YAML string.
func (c *Config) ToYAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}

// MinimalConfig returns a minimal config template with comments.
func MinimalConfig() string {
	return `# slopguard configuration file
# See: slopguard config defaults  (for all available options)

# Output format: table, markdown, or json
default_format: table

# Accounts that always skip evaluation (optional)
# allowlist:
#   - trusted-maintainer

# Close PRs that score in the block band (off by default)
auto_close: false

# Override verdict thresholds (optional)
# thresholds:
#   warn: 30
#   flag: 60
#   block: 80

# Override per-check weights; 0 disables a check (optional)
# weights:
#   shotgun: 90
#   new_account: 20
`
}

// SaveTo writes content to a specific path, creating directories as
// needed.
func SaveTo(path string, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}

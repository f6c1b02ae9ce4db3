package config

import (
	"strings"
	"testing"

	"github.com/slopguard/slopguard/internal/checks"
)

func intp(v int) *int { return &v }

func TestGetWeightsDefaults(t *testing.T) {
	cfg := &Config{}
	weights := cfg.GetWeights()
	if weights[checks.Shotgun] != 90 {
		t.Errorf("expected default shotgun weight 90, got %d", weights[checks.Shotgun])
	}
	if weights[checks.NewAccount] != 20 {
		t.Errorf("expected default new_account weight 20, got %d", weights[checks.NewAccount])
	}
	if len(weights) != len(checks.All) {
		t.Errorf("expected a weight per check, got %d", len(weights))
	}
}

func TestGetWeightsOverrides(t *testing.T) {
	cfg := &Config{
		Weights: &WeightOverrides{
			Shotgun:    intp(0),
			NewAccount: intp(75),
		},
	}
	weights := cfg.GetWeights()
	if weights[checks.Shotgun] != 0 {
		t.Errorf("expected shotgun disabled, got %d", weights[checks.Shotgun])
	}
	if weights[checks.NewAccount] != 75 {
		t.Errorf("expected new_account 75, got %d", weights[checks.NewAccount])
	}
	// Untouched weights keep their defaults.
	if weights[checks.Velocity] != 80 {
		t.Errorf("expected velocity 80, got %d", weights[checks.Velocity])
	}
}

func TestGetThresholdsOverrides(t *testing.T) {
	cfg := &Config{
		Thresholds: &ThresholdOverrides{Block: intp(90)},
	}
	th := cfg.GetThresholds()
	if th.Warn != 30 || th.Flag != 60 || th.Block != 90 {
		t.Errorf("unexpected thresholds %+v", th)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"empty config", Config{}, false},
		{"valid overrides", Config{Thresholds: &ThresholdOverrides{Warn: intp(10)}}, false},
		{"weight out of range", Config{Weights: &WeightOverrides{Shotgun: intp(150)}}, true},
		{"negative weight", Config{Weights: &WeightOverrides{Velocity: intp(-5)}}, true},
		{"threshold out of range", Config{Thresholds: &ThresholdOverrides{Block: intp(120)}}, true},
		{"thresholds out of order", Config{Thresholds: &ThresholdOverrides{Warn: intp(70), Flag: intp(60)}}, true},
		{"warn above block", Config{Thresholds: &ThresholdOverrides{Warn: intp(90)}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsAllowlisted(t *testing.T) {
	cfg := &Config{Allowlist: []string{"trusted-dev"}}

	tests := []struct {
		login string
		want  bool
	}{
		{"trusted-dev", true},
		{"dependabot[bot]", true},
		{"renovate[bot]", true},
		{"github-actions[bot]", true},
		{"random-user", false},
		{"dependabot", false},
	}

	for _, tt := range tests {
		if got := cfg.IsAllowlisted(tt.login); got != tt.want {
			t.Errorf("IsAllowlisted(%q) = %v, want %v", tt.login, got, tt.want)
		}
	}
}

func TestMergeConfig(t *testing.T) {
	global := &Config{
		DefaultFormat: "table",
		Allowlist:     []string{"global-bot"},
		Thresholds:    &ThresholdOverrides{Warn: intp(20), Flag: intp(50)},
		Weights:       &WeightOverrides{Shotgun: intp(95)},
	}
	local := &Config{
		DefaultFormat: "json",
		AutoClose:     true,
		Thresholds:    &ThresholdOverrides{Flag: intp(55)},
		Weights:       &WeightOverrides{Velocity: intp(60)},
	}

	merged := mergeConfig(global, local)

	if merged.DefaultFormat != "json" {
		t.Errorf("local format should win, got %q", merged.DefaultFormat)
	}
	if !merged.AutoClose {
		t.Error("local auto_close should win")
	}
	if len(merged.Allowlist) != 1 || merged.Allowlist[0] != "global-bot" {
		t.Errorf("global allowlist should be preserved, got %v", merged.Allowlist)
	}
	if *merged.Thresholds.Warn != 20 {
		t.Errorf("global warn should survive, got %d", *merged.Thresholds.Warn)
	}
	if *merged.Thresholds.Flag != 55 {
		t.Errorf("local flag should win, got %d", *merged.Thresholds.Flag)
	}
	if *merged.Weights.Shotgun != 95 || *merged.Weights.Velocity != 60 {
		t.Error("weight overrides should merge across both configs")
	}
}

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate, got %v", err)
	}
}

func TestDefaultConfigRoundTripsYAML(t *testing.T) {
	out, err := DefaultConfig().ToYAML()
	if err != nil {
		t.Fatalf("ToYAML() error: %v", err)
	}
	for _, key := range []string{"default_format", "thresholds", "weights", "shotgun", "new_account"} {
		if !strings.Contains(out, key) {
			t.Errorf("expected %q in YAML output", key)
		}
	}
}

func TestGetGitHubTokenFromEnv(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "token-from-env")
	cfg := &Config{}
	if got := cfg.GetGitHubToken(); got != "token-from-env" {
		t.Errorf("expected env token, got %q", got)
	}
}

func TestMinimalConfigMentionsKeys(t *testing.T) {
	minimal := MinimalConfig()
	for _, key := range []string{"default_format", "auto_close", "allowlist"} {
		if !strings.Contains(minimal, key) {
			t.Errorf("expected %q in minimal config template", key)
		}
	}
}

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapa11y/pkg/core"
	"github.com/leapstack-labs/leapa11y/pkg/lint"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "leapa11y.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("report", "console", "")
	flags.Int("timeout", 30, "")
	flags.Int("workers", 1, "")
	flags.String("output-dir", "", "")
	flags.String("level", "", "")
	flags.StringSlice("disable", nil, "")
	flags.Bool("no-history", false, "")
	flags.String("state", "", "")
	flags.String("line-strategy", "", "")
	return flags
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultReport, cfg.Report)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultWorkers, cfg.Workers)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, DefaultStateFile, cfg.StatePath)
	assert.True(t, cfg.History)
	require.NotNil(t, cfg.Lint)
	assert.Equal(t, DefaultLineStrategy, cfg.Lint.LineStrategy)
	assert.Empty(t, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_File(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, `report: json
timeout: 10
workers: 4
output_dir: reports
history: false
lint:
  disabled: [TA01, li01]
  target_level: AA
  line_strategy: prefix
  track_positions: true
  rules:
    DB05:
      threshold_hours: 12
`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	base := filepath.Dir(path)
	assert.Equal(t, path, GetConfigFileUsed())
	assert.Equal(t, "json", cfg.Report)
	assert.Equal(t, 10, cfg.Timeout)
	assert.Equal(t, 4, cfg.Workers)
	assert.False(t, cfg.History)
	assert.Equal(t, filepath.Join(base, "reports"), cfg.OutputDir)
	assert.Equal(t, filepath.Join(base, DefaultStateFile), cfg.StatePath)

	lc := cfg.BuildLintConfig()
	assert.True(t, lc.IsDisabled("TA01"))
	assert.True(t, lc.IsDisabled("LI01"))
	assert.Equal(t, core.LevelAA, lc.TargetLevel)
	assert.Equal(t, lint.LinePrefix, lc.LineStrategy)
	assert.True(t, lc.TrackPositions)
	assert.NotNil(t, lc.GetRuleOptions("DB05"))
}

func TestLoadConfig_FindsFileUpward(t *testing.T) {
	ResetConfig()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "leapa11y.yml"), []byte("report: html\n"), 0600))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	t.Chdir(nested)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "html", cfg.Report)
	assert.Equal(t, "leapa11y.yml", filepath.Base(GetConfigFileUsed()))
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeConfig(t, "report: json\ntimeout: 10\nlint:\n  target_level: A\n")

	tests := []struct {
		name        string
		env         map[string]string
		setFlags    map[string]string
		wantReport  string
		wantTimeout int
		wantLevel   string
	}{
		{
			name:        "file over defaults",
			wantReport:  "json",
			wantTimeout: 10,
			wantLevel:   "A",
		},
		{
			name:        "env over file",
			env:         map[string]string{"LEAPA11Y_REPORT": "html", "LEAPA11Y_TIMEOUT": "5", "LEAPA11Y_LINT_TARGET_LEVEL": "AA"},
			wantReport:  "html",
			wantTimeout: 5,
			wantLevel:   "AA",
		},
		{
			name:        "flag over env",
			env:         map[string]string{"LEAPA11Y_REPORT": "html", "LEAPA11Y_LINT_TARGET_LEVEL": "AA"},
			setFlags:    map[string]string{"report": "markdown", "level": "AAA"},
			wantReport:  "markdown",
			wantTimeout: 10,
			wantLevel:   "AAA",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetConfig()
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			flags := newFlags()
			for k, v := range tt.setFlags {
				require.NoError(t, flags.Set(k, v))
			}

			cfg, err := LoadConfig(path, flags)
			require.NoError(t, err)
			assert.Equal(t, tt.wantReport, cfg.Report)
			assert.Equal(t, tt.wantTimeout, cfg.Timeout)
			assert.Equal(t, tt.wantLevel, cfg.Lint.TargetLevel)
		})
	}
}

func TestLoadConfig_FlagNotSetUsesFile(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, "workers: 3\n")

	cfg, err := LoadConfig(path, newFlags())
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Workers, "unchanged flag defaults must not override the file")
}

func TestLoadConfig_FlagMappings(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	flags := newFlags()
	require.NoError(t, flags.Set("disable", "TA01,ic02"))
	require.NoError(t, flags.Set("no-history", "true"))
	require.NoError(t, flags.Set("state", "custom/state.db"))
	require.NoError(t, flags.Set("output-dir", "out"))
	require.NoError(t, flags.Set("line-strategy", "prefix"))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, []string{"TA01", "IC02"}, cfg.DisabledRules())
	assert.False(t, cfg.History)
	assert.Equal(t, "custom/state.db", cfg.StatePath)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, "prefix", cfg.Lint.LineStrategy)
}

func TestLoadConfig_EnvDisabledList(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())
	t.Setenv("LEAPA11Y_LINT_DISABLED", "ta01, LI01")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"ta01", " LI01"}, cfg.Lint.Disabled, "decoded as a list")
	assert.Equal(t, []string{"TA01", "LI01"}, cfg.DisabledRules())
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		ResetConfig()
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error reading config file")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		ResetConfig()
		_, err := LoadConfig(writeConfig(t, "report: [unterminated\n"), nil)
		require.Error(t, err)
	})

	t.Run("invalid value", func(t *testing.T) {
		ResetConfig()
		_, err := LoadConfig(writeConfig(t, "report: docx\n"), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid report")
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Report:       "console",
			Timeout:      30,
			Workers:      1,
			OutputFormat: "auto",
			Lint:         &LintConfig{LineStrategy: "candidates"},
		}
	}

	tests := []struct {
		name      string
		mutate    func(c *Config)
		errSubstr string
	}{
		{"valid", func(*Config) {}, ""},
		{"nil lint", func(c *Config) { c.Lint = nil }, ""},
		{"bad report", func(c *Config) { c.Report = "docx" }, "invalid report"},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, "timeout must be positive"},
		{"zero workers", func(c *Config) { c.Workers = 0 }, "workers must be at least 1"},
		{"bad output", func(c *Config) { c.OutputFormat = "yaml" }, "invalid output format"},
		{"bad level", func(c *Config) { c.Lint.TargetLevel = "AAAA" }, "invalid lint.target_level"},
		{"bad strategy", func(c *Config) { c.Lint.LineStrategy = "fuzzy" }, "invalid lint.line_strategy"},
		{"empty rule id", func(c *Config) {
			c.Lint.Rules = map[string]map[string]any{" ": {}}
		}, "empty rule id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestBuildLintConfig_NilLint(t *testing.T) {
	cfg := (&Config{}).BuildLintConfig()
	assert.Empty(t, cfg.DisabledRules)
	assert.Equal(t, lint.LineCandidates, cfg.LineStrategy)
	assert.Empty(t, cfg.ParseOptions())
}

func TestTimeoutDuration(t *testing.T) {
	assert.Equal(t, "45s", (&Config{Timeout: 45}).TimeoutDuration().String())
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()))

	logger := GetLogger(context.Background())
	ctx := context.WithValue(context.Background(), LoggerKey(), logger)
	assert.Same(t, logger, GetLogger(ctx))
}

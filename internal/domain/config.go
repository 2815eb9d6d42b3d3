package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"path/filepath"
	"sort"
	"text/template"
)

//go:embed config_template.toml
var configTemplateContent string

// Config represents the effective gpurun configuration after merging
// defaults, the global file and the local file.
type Config struct {
	Strategies map[string]StrategyDef `toml:"strategies"` // Strategy definitions from [strategies.<name>]
	Warnings   []string               `toml:"-"`
	Launch     LaunchConfig           `toml:"launch"`
	Capture    CaptureConfig          `toml:"capture"`
	History    HistoryConfig          `toml:"history"`
}

// LaunchConfig holds launch defaults from the [launch] section.
type LaunchConfig struct {
	Strategy string `toml:"strategy,omitempty"` // Strategy used when no flag is given
	Log      string `toml:"log,omitempty"`      // Launch log path; empty disables the log
	Quiet    bool   `toml:"quiet,omitempty"`    // Suppress the pre-launch banner
	QuietSet bool   `toml:"-"`                  // True if Quiet was explicitly set in config (not exported to TOML)
}

// CaptureConfig holds output capture settings from the [capture] section.
type CaptureConfig struct {
	Dir        string `toml:"dir,omitempty"`     // Capture log directory; empty means <state>/captures
	Enabled    bool   `toml:"enabled,omitempty"` // Capture child output by default
	EnabledSet bool   `toml:"-"`                 // True if Enabled was explicitly set in config (not exported to TOML)
}

// HistoryConfig holds run history settings from the [history] section.
type HistoryConfig struct {
	Limit      int  `toml:"limit,omitempty"` // Runs kept by 'gpurun history prune'
	Enabled    bool `toml:"enabled"`         // Record runs in the history store
	EnabledSet bool `toml:"-"`               // True if Enabled was explicitly set in config (not exported to TOML)
}

// ConfigInfo describes one configuration file source.
type ConfigInfo struct {
	Path    string // File path, empty when the source could not be resolved
	Content string // Raw file content when it exists
	Exists  bool
}

// Default configuration values.
const (
	DefaultHistoryLimit = 200
)

// Directory and file names for gpurun.
const (
	AppDirName          = "gpurun"      // Directory name for config and state
	ConfigFileName      = "config.toml" // Global config file name
	LocalConfigFileName = "gpurun.toml" // Per-directory config file name
)

// GlobalConfigDir returns the global config directory path.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// GlobalConfigPath returns the global config path.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalConfigDir(configHome), ConfigFileName)
}

// LocalConfigPath returns the per-directory config path for dir.
func LocalConfigPath(dir string) string {
	return filepath.Join(dir, LocalConfigFileName)
}

// StateDir returns the gpurun state directory path. History, capture
// logs and the last-run breadcrumb live here.
// stateHome is typically XDG_STATE_HOME or ~/.local/state (resolved by caller).
func StateDir(stateHome string) string {
	return filepath.Join(stateHome, AppDirName)
}

// NewDefaultConfig returns a Config with default values and the
// built-in strategies registered.
func NewDefaultConfig() *Config {
	return &Config{
		Strategies: BuiltinStrategies(),
		Launch: LaunchConfig{
			Strategy: string(DefaultStrategy),
		},
		History: HistoryConfig{
			Enabled: true,
			Limit:   DefaultHistoryLimit,
		},
	}
}

// StrategyFor looks up name in the effective strategy set. An empty
// name falls back to the configured default, then to DefaultStrategy.
func (c *Config) StrategyFor(name string) (Strategy, StrategyDef, error) {
	if name == "" {
		name = c.Launch.Strategy
	}
	if name == "" {
		name = string(DefaultStrategy)
	}
	def, ok := c.Strategies[name]
	if !ok {
		return "", StrategyDef{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return Strategy(name), def, nil
}

// StrategyNames returns the effective strategy names sorted alphabetically.
func (c *Config) StrategyNames() []string {
	return sortedMapKeys(c.Strategies)
}

// strategyTemplateData holds data for a single strategy in the template.
type strategyTemplateData struct {
	Name        string
	Wrapper     string
	Description string
}

// templateData holds all data for rendering the config template.
type templateData struct {
	DefaultStrategy string
	HistoryLimit    int
	Strategies      []strategyTemplateData
}

// RenderConfigTemplate renders the starter config written by
// 'gpurun config init'. The registered strategies are listed as
// commented examples that users can uncomment and customize.
func RenderConfigTemplate(cfg *Config) string {
	names := sortedMapKeys(cfg.Strategies)
	strategies := make([]strategyTemplateData, 0, len(names))
	for _, name := range names {
		def := cfg.Strategies[name]
		strategies = append(strategies, strategyTemplateData{
			Name:        name,
			Wrapper:     def.Wrapper,
			Description: def.Description,
		})
	}

	data := templateData{
		DefaultStrategy: cfg.Launch.Strategy,
		HistoryLimit:    cfg.History.Limit,
		Strategies:      strategies,
	}

	tmpl, err := template.New("config").Delims("<<", ">>").Parse(configTemplateContent)
	if err != nil {
		// Should never happen with embedded template
		panic(fmt.Sprintf("failed to parse config template: %v", err))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		// Should never happen with valid data
		panic(fmt.Sprintf("failed to execute config template: %v", err))
	}

	return buf.String()
}

// sortedMapKeys returns the keys of a map sorted alphabetically.
func sortedMapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

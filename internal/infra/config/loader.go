// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/gpurun/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	localDir      string // Launch directory searched for gpurun.toml
	globalConfDir string // Path to global config directory (e.g., ~/.config/gpurun)
}

// NewLoader creates a new Loader. localDir is the launch directory; a
// gpurun.toml there overrides the global config.
func NewLoader(localDir string) *Loader {
	return &Loader{
		localDir:      localDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(localDir, globalConfDir string) *Loader {
	return &Loader{
		localDir:      localDir,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// Load returns the merged configuration (defaults + global + local).
// The local gpurun.toml takes precedence over the global config.
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.LoadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	local, err := l.LoadLocal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	// Start with default config
	base := domain.NewDefaultConfig()

	// If both don't exist, return default config
	if global == nil && local == nil {
		return base, nil
	}

	// Merge: default <- global <- local (later takes precedence)
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if local != nil {
		base = mergeConfigs(base, local)
	}

	return base, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	globalPath := filepath.Join(l.globalConfDir, domain.ConfigFileName)
	return l.loadFile(globalPath)
}

// LoadLocal returns only the launch directory configuration.
func (l *Loader) LoadLocal() (*domain.Config, error) {
	if l.localDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(domain.LocalConfigPath(l.localDir))
}

// GlobalPath returns the global config file path, or "" when the
// global directory cannot be resolved.
func (l *Loader) GlobalPath() string {
	if l.globalConfDir == "" {
		return ""
	}
	return filepath.Join(l.globalConfDir, domain.ConfigFileName)
}

// LocalPath returns the launch directory config file path.
func (l *Loader) LocalPath() string {
	if l.localDir == "" {
		return ""
	}
	return domain.LocalConfigPath(l.localDir)
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidConfig, path, err)
	}

	return convertRawToDomainConfig(raw), nil
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{
		Strategies: make(map[string]domain.StrategyDef),
	}
	var warnings []string

	for section, value := range raw {
		switch section {
		case "launch":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "strategy":
						if s, ok := v.(string); ok {
							res.Launch.Strategy = s
						}
					case "log":
						if s, ok := v.(string); ok {
							res.Launch.Log = s
						}
					case "quiet":
						if b, ok := v.(bool); ok {
							res.Launch.Quiet = b
							res.Launch.QuietSet = true
						}
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [launch]: %s", k))
					}
				}
			}
		case "capture":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "enabled":
						if b, ok := v.(bool); ok {
							res.Capture.Enabled = b
							res.Capture.EnabledSet = true
						}
					case "dir":
						if s, ok := v.(string); ok {
							res.Capture.Dir = s
						}
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [capture]: %s", k))
					}
				}
			}
		case "history":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "enabled":
						if b, ok := v.(bool); ok {
							res.History.Enabled = b
							res.History.EnabledSet = true
						}
					case "limit":
						if n, ok := v.(int64); ok {
							res.History.Limit = int(n)
						}
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [history]: %s", k))
					}
				}
			}
		case "strategies":
			if m, ok := value.(map[string]any); ok {
				sc := parseStrategiesSection(m)
				for name, def := range sc.Defs {
					res.Strategies[name] = domain.StrategyDef{
						Wrapper:     def.Wrapper,
						Description: def.Description,
						Env:         def.Env,
					}
					for k := range def.Extra {
						warnings = append(warnings, fmt.Sprintf("unknown key in [strategies.%s]: %s", name, k))
					}
				}
				for _, k := range sc.Unknowns {
					warnings = append(warnings, fmt.Sprintf("unknown key in [strategies]: %s", k))
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

// strategiesConfig holds the parsed [strategies] section.
type strategiesConfig struct {
	Defs     map[string]strategyDef // Per-strategy definitions from [strategies.<name>]
	Unknowns []string               // Non-table keys in [strategies]
}

type strategyDef struct {
	Wrapper     string
	Description string
	Env         map[string]string
	Extra       map[string]any
}

// parseStrategiesSection parses the raw strategies map into structured strategiesConfig.
func parseStrategiesSection(raw map[string]any) strategiesConfig {
	result := strategiesConfig{
		Defs: make(map[string]strategyDef),
	}

	for name, value := range raw {
		subMap, ok := value.(map[string]any)
		if !ok {
			result.Unknowns = append(result.Unknowns, name)
			continue
		}

		def := strategyDef{
			Extra: make(map[string]any),
		}
		for k, v := range subMap {
			switch k {
			case "wrapper":
				if s, ok := v.(string); ok {
					def.Wrapper = s
				}
			case "description":
				if s, ok := v.(string); ok {
					def.Description = s
				}
			case "env":
				if envMap, ok := v.(map[string]any); ok {
					def.Env = make(map[string]string)
					for ek, ev := range envMap {
						if s, ok := ev.(string); ok {
							def.Env[ek] = s
						}
					}
				}
			default:
				def.Extra[k] = v
			}
		}
		result.Defs[name] = def
	}

	return result
}

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := &domain.Config{
		Launch:     base.Launch,
		Capture:    base.Capture,
		History:    base.History,
		Strategies: make(map[string]domain.StrategyDef),
		Warnings:   append([]string{}, base.Warnings...),
	}

	// Add override warnings
	result.Warnings = append(result.Warnings, override.Warnings...)

	// Copy base strategies
	for name, def := range base.Strategies {
		result.Strategies[name] = def
	}

	// Override with override config
	if override.Launch.Strategy != "" {
		result.Launch.Strategy = override.Launch.Strategy
	}
	if override.Launch.Log != "" {
		result.Launch.Log = override.Launch.Log
	}
	if override.Launch.QuietSet {
		result.Launch.Quiet = override.Launch.Quiet
		result.Launch.QuietSet = true
	}
	if override.Capture.EnabledSet {
		result.Capture.Enabled = override.Capture.Enabled
		result.Capture.EnabledSet = true
	}
	if override.Capture.Dir != "" {
		result.Capture.Dir = override.Capture.Dir
	}
	if override.History.EnabledSet {
		result.History.Enabled = override.History.Enabled
		result.History.EnabledSet = true
	}
	if override.History.Limit != 0 {
		result.History.Limit = override.History.Limit
	}

	// Merge strategies: override individual fields, not the entire definition
	for name, overrideDef := range override.Strategies {
		baseDef := result.Strategies[name]
		if overrideDef.Wrapper != "" {
			baseDef.Wrapper = overrideDef.Wrapper
		}
		if overrideDef.Description != "" {
			baseDef.Description = overrideDef.Description
		}
		if overrideDef.Env != nil {
			baseDef.Env = overrideDef.Env
		}
		result.Strategies[name] = baseDef
	}

	return result
}

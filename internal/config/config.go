// Package config resolves Prospect settings from, in increasing
// precedence: config file, environment, CLI flags. Each resolved value
// remembers where it came from so `prospect config` style debugging
// stays possible.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ValueSource names where a resolved value came from.
type ValueSource string

const (
	SourceUnknown ValueSource = "unknown"
	SourceConfig  ValueSource = "config"
	SourceEnv     ValueSource = "env"
	SourceCLI     ValueSource = "cli"
	SourceDefault ValueSource = "default"
)

// ResolvedValue is a setting plus its provenance.
type ResolvedValue struct {
	Value  string      `json:"value"`
	Source ValueSource `json:"source"`
	From   string      `json:"from,omitempty"`
}

// ResolveOptions carries CLI-level overrides into resolution.
type ResolveOptions struct {
	ConfigPath     string
	CLIDatasetPath string
	CLIDatasetURL  string
	CLIRemoteURL   string
	CLIListenAddr  string
}

// ResolvedConfig is the fully resolved settings set.
type ResolvedConfig struct {
	ConfigPath string `json:"config_path"`

	DatasetPath ResolvedValue `json:"dataset_path"`
	DatasetURL  ResolvedValue `json:"dataset_url"`
	RemoteURL   ResolvedValue `json:"remote_url"`
	ListenAddr  ResolvedValue `json:"listen_addr"`
}

type fileConfig struct {
	Dataset struct {
		Path string `yaml:"path"`
		URL  string `yaml:"url"`
	} `yaml:"dataset"`
	Remote struct {
		URL string `yaml:"url"`
	} `yaml:"remote"`
	Server struct {
		Listen string `yaml:"listen"`
	} `yaml:"server"`
}

// DefaultListenAddr is where the HTTP API serves unless overridden.
const DefaultListenAddr = ":5001"

// DefaultConfigPath returns ~/.prospect/config.yaml.
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".prospect", "config.yaml")
}

// Resolve loads the config file (if present) and layers environment and
// CLI values over it. A missing config file is not an error.
func Resolve(opts ResolveOptions) (ResolvedConfig, error) {
	path := strings.TrimSpace(opts.ConfigPath)
	if path == "" {
		path = DefaultConfigPath()
	}

	out := ResolvedConfig{
		ConfigPath: path,
		ListenAddr: ResolvedValue{Value: DefaultListenAddr, Source: SourceDefault, From: "built-in default"},
	}

	cfg, err := loadFile(path)
	if err != nil {
		return out, err
	}
	if cfg != nil {
		apply(&out.DatasetPath, cfg.Dataset.Path, SourceConfig, path)
		apply(&out.DatasetURL, cfg.Dataset.URL, SourceConfig, path)
		apply(&out.RemoteURL, cfg.Remote.URL, SourceConfig, path)
		apply(&out.ListenAddr, cfg.Server.Listen, SourceConfig, path)
	}

	applyEnv(&out.DatasetPath, "PROSPECT_DATASET")
	applyEnv(&out.DatasetURL, "PROSPECT_DATASET_URL")
	applyEnv(&out.RemoteURL, "PROSPECT_REMOTE_URL")
	applyEnv(&out.ListenAddr, "PROSPECT_LISTEN")

	apply(&out.DatasetPath, opts.CLIDatasetPath, SourceCLI, "--dataset")
	apply(&out.DatasetURL, opts.CLIDatasetURL, SourceCLI, "--dataset-url")
	apply(&out.RemoteURL, opts.CLIRemoteURL, SourceCLI, "--remote")
	apply(&out.ListenAddr, opts.CLIListenAddr, SourceCLI, "--listen")

	if out.DatasetPath.Value != "" {
		out.DatasetPath.Value = expandUserPath(out.DatasetPath.Value)
	}

	return out, nil
}

func apply(dst *ResolvedValue, raw string, source ValueSource, from string) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return
	}
	*dst = ResolvedValue{Value: v, Source: source, From: from}
}

func applyEnv(dst *ResolvedValue, envKey string) {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		*dst = ResolvedValue{Value: v, Source: SourceEnv, From: envKey}
	}
}

func loadFile(path string) (*fileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

func expandUserPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

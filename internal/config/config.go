// Package config loads the gpmlog configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Logger kinds understood by the CLI.
const (
	KindNFAIT      = "nfait"
	KindStepsTrace = "stepstrace"
	KindNodesPrint = "nodesprint"
	KindSlog       = "slog"
)

// Sink kinds.
const (
	SinkFile   = "file"
	SinkRedis  = "redis"
	SinkMemory = "memory"
)

// Config is the content of gpmlog.yaml.
type Config struct {
	Out     string         `yaml:"out" json:"out"`
	Sink    string         `yaml:"sink" json:"sink"`
	Redis   RedisConfig    `yaml:"redis" json:"redis"`
	Log     LogConfig      `yaml:"log" json:"log"`
	Metrics MetricsConfig  `yaml:"metrics" json:"metrics"`
	Tracing TracingConfig  `yaml:"tracing" json:"tracing"`
	Loggers []LoggerConfig `yaml:"loggers" json:"loggers"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr" json:"addr"`
	Password string        `yaml:"password" json:"password"`
	DB       int           `yaml:"db" json:"db"`
	TTL      time.Duration `yaml:"ttl" json:"ttl"`
	Prefix   string        `yaml:"prefix" json:"prefix"`
}

type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

type MetricsConfig struct {
	Addr      string `yaml:"addr" json:"addr"`
	Namespace string `yaml:"namespace" json:"namespace"`
}

type TracingConfig struct {
	File string `yaml:"file" json:"file"`
}

// LoggerConfig enables one logger. Options are decoded according to Kind.
type LoggerConfig struct {
	Kind    string         `yaml:"kind" json:"kind"`
	Options map[string]any `yaml:"options" json:"options"`
}

// NFAITOptions configures the automaton logger.
type NFAITOptions struct {
	Name    string `mapstructure:"name"`
	Mermaid bool   `mapstructure:"mermaid"`
}

// StepsTraceOptions configures the path tracer.
type StepsTraceOptions struct {
	Dedup     bool   `mapstructure:"dedup"`
	Prefix    string `mapstructure:"prefix"`
	Extension string `mapstructure:"extension"`
}

// NodesPrintOptions configures the node printer.
type NodesPrintOptions struct {
	Prefix    string `mapstructure:"prefix"`
	Extension string `mapstructure:"extension"`
}

// SlogOptions configures the event log.
type SlogOptions struct {
	Level string `mapstructure:"level"`
}

// Default returns the configuration used when no file is given: an automaton
// with its Mermaid diagram and a path tracer, written to ./gpmlog_out.
func Default() *Config {
	return &Config{
		Out:  "gpmlog_out",
		Sink: SinkFile,
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Log: LogConfig{Level: "info", Format: "text"},
		Metrics: MetricsConfig{
			Namespace: "gpmlog",
		},
		Loggers: []LoggerConfig{
			{Kind: KindNFAIT, Options: map[string]any{"name": "nfait", "mermaid": true}},
			{Kind: KindStepsTrace, Options: map[string]any{"prefix": "trace", "extension": "txt"}},
		},
	}
}

// Load reads a configuration file (YAML or JSON) on top of Default.
// An empty path returns Default.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// A file listing loggers replaces the default set instead of merging into it.
	defaults := cfg.Loggers
	cfg.Loggers = nil

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config json: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config yaml: %w", err)
		}
	}

	if len(cfg.Loggers) == 0 {
		cfg.Loggers = defaults
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks sink and logger kinds and decodes every options map once.
func (c *Config) Validate() error {
	switch c.Sink {
	case SinkFile, SinkRedis, SinkMemory:
	default:
		return fmt.Errorf("unknown sink %q", c.Sink)
	}
	for i, l := range c.Loggers {
		var err error
		switch l.Kind {
		case KindNFAIT:
			_, err = l.NFAIT()
		case KindStepsTrace:
			_, err = l.StepsTrace()
		case KindNodesPrint:
			_, err = l.NodesPrint()
		case KindSlog:
			_, err = l.Slog()
		default:
			err = fmt.Errorf("unknown kind %q", l.Kind)
		}
		if err != nil {
			return fmt.Errorf("logger %d: %w", i, err)
		}
	}
	return nil
}

// NFAIT decodes the options of an nfait logger.
func (l LoggerConfig) NFAIT() (NFAITOptions, error) {
	opts := NFAITOptions{Name: "nfait"}
	err := decode(l.Options, &opts)
	return opts, err
}

// StepsTrace decodes the options of a stepstrace logger.
func (l LoggerConfig) StepsTrace() (StepsTraceOptions, error) {
	opts := StepsTraceOptions{Prefix: "trace", Extension: "txt"}
	err := decode(l.Options, &opts)
	return opts, err
}

// NodesPrint decodes the options of a nodesprint logger.
func (l LoggerConfig) NodesPrint() (NodesPrintOptions, error) {
	opts := NodesPrintOptions{Prefix: "node", Extension: "txt"}
	err := decode(l.Options, &opts)
	return opts, err
}

// Slog decodes the options of a slog event logger.
func (l LoggerConfig) Slog() (SlogOptions, error) {
	opts := SlogOptions{Level: "debug"}
	err := decode(l.Options, &opts)
	return opts, err
}

func decode(in map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(in); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

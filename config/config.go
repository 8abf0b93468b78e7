/*
Copyright 2025 Trident Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package config loads the settings of the seedurl tool from YAML or TOML
// files and the environment.
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/jplu/seedlib/weburl"
)

// Environment variables that override file settings.
const (
	EnvLogLevel  = "SEEDURL_LOG_LEVEL"
	EnvLogFormat = "SEEDURL_LOG_FORMAT"
	EnvOutput    = "SEEDURL_OUTPUT"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Log formats.
const (
	LogConsole = "console"
	LogJSON    = "json"
)

// Log holds the logger settings.
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Config is the complete tool configuration.
type Config struct {
	Log                  Log               `mapstructure:"log"`
	Output               string            `mapstructure:"output"`
	UnicodeNormalization bool              `mapstructure:"unicode_normalization"`
	Ports                map[string]uint16 `mapstructure:"ports"`
}

// fileConfig mirrors Config with ports kept wide so out of range values
// can be reported instead of silently truncated.
type fileConfig struct {
	Log                  Log            `mapstructure:"log"`
	Output               string         `mapstructure:"output"`
	UnicodeNormalization bool           `mapstructure:"unicode_normalization"`
	Ports                map[string]int `mapstructure:"ports"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Log:    Log{Level: zerolog.LevelInfoValue, Format: LogConsole},
		Output: OutputText,
		Ports:  map[string]uint16{},
	}
}

// Load reads the file at path, applies the environment overrides and
// validates the result. An empty path loads the defaults plus the environment.
func Load(path string) (*Config, error) {
	raw := map[string]any{}
	if path != "" {
		var err error
		if raw, err = readFile(path); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(raw); err != nil {
		return nil, err
	}

	cfg, err := decode(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}

	raw := map[string]any{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	default:
		return nil, errors.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	if raw == nil {
		// An empty YAML document decodes to a nil map.
		raw = map[string]any{}
	}
	return raw, nil
}

func applyEnv(raw map[string]any) error {
	overrides := []struct {
		env  string
		keys []string
	}{
		{EnvLogLevel, []string{"log", "level"}},
		{EnvLogFormat, []string{"log", "format"}},
		{EnvOutput, []string{"output"}},
	}

	for _, o := range overrides {
		value, ok := os.LookupEnv(o.env)
		if !ok {
			continue
		}
		if err := setNested(raw, o.keys, value); err != nil {
			return errors.Wrapf(err, "applying %s", o.env)
		}
	}
	return nil
}

func setNested(m map[string]any, keys []string, value string) error {
	for _, key := range keys[:len(keys)-1] {
		switch next := m[key].(type) {
		case nil:
			child := map[string]any{}
			m[key] = child
			m = child
		case map[string]any:
			m = next
		default:
			return errors.Errorf("%q is not a table", key)
		}
	}
	m[keys[len(keys)-1]] = value
	return nil
}

func decode(raw map[string]any) (*Config, error) {
	def := Default()
	fc := fileConfig{Log: def.Log, Output: def.Output}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &fc,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, err
	}

	cfg := &Config{
		Log:                  fc.Log,
		Output:               strings.ToLower(fc.Output),
		UnicodeNormalization: fc.UnicodeNormalization,
		Ports:                make(map[string]uint16, len(fc.Ports)),
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)

	for scheme, port := range fc.Ports {
		if port < 0 || port > weburl.MaxPort {
			return nil, errors.Errorf("port %d for scheme %q is out of range", port, scheme)
		}
		cfg.Ports[strings.ToLower(scheme)] = uint16(port)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "invalid log level")
	}

	switch c.Log.Format {
	case LogConsole, LogJSON:
	default:
		return errors.Errorf("invalid log format %q, want %q or %q", c.Log.Format, LogConsole, LogJSON)
	}

	switch c.Output {
	case OutputText, OutputJSON:
	default:
		return errors.Errorf("invalid output %q, want %q or %q", c.Output, OutputText, OutputJSON)
	}

	for _, scheme := range c.schemes() {
		if c.Ports[scheme] == 0 {
			return errors.Errorf("default port for scheme %q cannot be 0", scheme)
		}
	}
	return nil
}

// ParserOptions translates the configuration into URL parser options.
func (c *Config) ParserOptions() []weburl.Option {
	var opts []weburl.Option
	for _, scheme := range c.schemes() {
		opts = append(opts, weburl.WithDefaultPort(scheme, c.Ports[scheme]))
	}
	if c.UnicodeNormalization {
		opts = append(opts, weburl.WithUnicodeNormalization())
	}
	return opts
}

func (c *Config) schemes() []string {
	schemes := make([]string, 0, len(c.Ports))
	for scheme := range c.Ports {
		schemes = append(schemes, scheme)
	}
	sort.Strings(schemes)
	return schemes
}

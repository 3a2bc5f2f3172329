/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/coincord/ezrah-credential-go/component/log"
	"github.com/coincord/ezrah-credential-go/pkg/client/presentation"
	"github.com/coincord/ezrah-credential-go/pkg/crypto/dek"
	"github.com/coincord/ezrah-credential-go/pkg/doc/sdjwt/verifier"
)

const (
	cmdRoot = "EZRAH"

	// SlotLabelsPositional labels wrapped keys recipient_1..recipient_n.
	SlotLabelsPositional = "positional"
	// SlotLabelsFingerprint labels wrapped keys with the recipient did:key fingerprint.
	SlotLabelsFingerprint = "fingerprint"
)

var logger = log.New("ezrah/config")

// Config is the YAML configuration document.
type Config struct {
	Log          Log          `yaml:"log"`
	DEK          DEK          `yaml:"dek"`
	Presentation Presentation `yaml:"presentation"`
}

// Log holds log levels. Modules overrides Level per module.
type Log struct {
	Level   string            `yaml:"level"`
	Modules map[string]string `yaml:"modules"`
}

// DEK configures the multi recipient key wrapper.
type DEK struct {
	MaxConcurrency int    `yaml:"max_concurrency"`
	SlotLabels     string `yaml:"slot_labels"`
}

// Presentation configures the presentation decoder.
type Presentation struct {
	VerifyDisclosureDigests bool `yaml:"verify_disclosure_digests"`
}

type options struct {
	envPrefix string
}

// Option configures the package.
type Option func(opts *options)

// WithEnvPrefix defines the prefix for environment variable overrides.
func WithEnvPrefix(prefix string) Option {
	return func(opts *options) {
		opts.envPrefix = prefix
	}
}

// FromReader loads configuration from in.
func FromReader(in io.Reader, opts ...Option) (*Config, error) {
	if in == nil {
		return nil, errors.New("nil config reader")
	}

	cfg := &Config{}

	err := yaml.NewDecoder(in).Decode(cfg)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return finish(cfg, opts...)
}

// FromFile reads from named config file.
func FromFile(name string, opts ...Option) (*Config, error) {
	if name == "" {
		return nil, errors.New("filename is required")
	}

	f, err := os.Open(name) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("loading config file failed: %w", err)
	}

	defer func() {
		if e := f.Close(); e != nil {
			logger.Warnf("close config file %s: %s", name, e)
		}
	}()

	return FromReader(f, opts...)
}

func finish(cfg *Config, opts ...Option) (*Config, error) {
	o := options{envPrefix: cmdRoot}

	for _, option := range opts {
		option(&o)
	}

	if err := cfg.applyEnv(o.envPrefix); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv overrides scalar settings from <PREFIX>_<SECTION>_<KEY> variables.
func (c *Config) applyEnv(prefix string) error {
	lookup := func(key string) (string, bool) {
		return os.LookupEnv(strings.ToUpper(prefix + "_" + strings.ReplaceAll(key, ".", "_")))
	}

	if v, ok := lookup("log.level"); ok {
		c.Log.Level = v
	}

	if v, ok := lookup("dek.slot_labels"); ok {
		c.DEK.SlotLabels = v
	}

	if v, ok := lookup("dek.max_concurrency"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("dek.max_concurrency: invalid value '%s'", v)
		}

		c.DEK.MaxConcurrency = n
	}

	if v, ok := lookup("presentation.verify_disclosure_digests"); ok {
		switch strings.ToLower(v) {
		case "true", "1", "yes":
			c.Presentation.VerifyDisclosureDigests = true
		case "false", "0", "no", "":
			c.Presentation.VerifyDisclosureDigests = false
		default:
			return fmt.Errorf("presentation.verify_disclosure_digests: invalid value '%s'", v)
		}
	}

	return nil
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if c.Log.Level != "" {
		if _, err := log.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("log.level: %w", err)
		}
	}

	for module, level := range c.Log.Modules {
		if _, err := log.ParseLevel(level); err != nil {
			return fmt.Errorf("log.modules.%s: %w", module, err)
		}
	}

	if c.DEK.MaxConcurrency < 0 {
		return fmt.Errorf("dek.max_concurrency: must not be negative, got %d", c.DEK.MaxConcurrency)
	}

	switch c.DEK.SlotLabels {
	case "", SlotLabelsPositional, SlotLabelsFingerprint:
	default:
		return fmt.Errorf("dek.slot_labels: unknown value '%s'", c.DEK.SlotLabels)
	}

	return nil
}

// Apply sets the configured log levels.
func (c *Config) Apply() error {
	if err := c.Validate(); err != nil {
		return err
	}

	if c.Log.Level != "" {
		level, _ := log.ParseLevel(c.Log.Level) //nolint:errcheck

		log.SetLevel("", level)
	}

	for module, name := range c.Log.Modules {
		level, _ := log.ParseLevel(name) //nolint:errcheck

		log.SetLevel(module, level)
	}

	logger.Debugf("applied log level '%s' with %d module overrides", c.Log.Level, len(c.Log.Modules))

	return nil
}

// DEKOptions returns the wrapper options for the DEK section.
func (c *Config) DEKOptions() []dek.Opt {
	var opts []dek.Opt

	if c.DEK.MaxConcurrency > 0 {
		opts = append(opts, dek.WithMaxConcurrency(c.DEK.MaxConcurrency))
	}

	if c.DEK.SlotLabels == SlotLabelsFingerprint {
		opts = append(opts, dek.WithSlotLabeler(dek.FingerprintSlotLabeler))
	}

	return opts
}

// PresentationOptions returns the decoder options for the presentation section.
func (c *Config) PresentationOptions() []presentation.Opt {
	if !c.Presentation.VerifyDisclosureDigests {
		return nil
	}

	return []presentation.Opt{
		presentation.WithVerifier(verifier.New(verifier.WithDisclosureDigestCheck(true))),
	}
}

// Package configloader builds logger configurations from YAML documents,
// files, and environment variables. Values resolve on top of
// logger.DefaultConfig, so a partial document only overrides what it names.
//
// Environment keys mirror the YAML structure: nested keys join with
// underscores and get the configured prefix, so "file.max_size" reads from
// "<PREFIX>_FILE_MAX_SIZE".
package configloader

import (
	"bytes"
	"strings"

	"github.com/hyp3rd/ewrap"
	"github.com/spf13/viper"

	logger "github.com/shuliangfu/logger"
)

// defaultEnvPrefix is used when no prefix is supplied.
const defaultEnvPrefix = "LOGGER"

// FromEnv builds a configuration from environment variables carrying the
// given prefix. An empty prefix falls back to "LOGGER".
func FromEnv(prefix string) (*logger.Config, error) {
	v := viper.New()

	err := bindEnv(v, normalizePrefix(prefix))
	if err != nil {
		return nil, err
	}

	return resolve(v)
}

// FromYAML builds a configuration from an in-memory YAML document.
func FromYAML(data []byte) (*logger.Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	err := v.ReadConfig(bytes.NewReader(data))
	if err != nil {
		return nil, ewrap.Wrap(err, "failed to read YAML configuration")
	}

	return resolve(v)
}

// FromFile builds a configuration from a YAML file. Environment variables
// with the default prefix override values from the file.
func FromFile(path string) (*logger.Config, error) {
	v := viper.New()

	err := bindEnv(v, defaultEnvPrefix)
	if err != nil {
		return nil, err
	}

	v.SetConfigFile(path)

	err = v.ReadInConfig()
	if err != nil {
		return nil, ewrap.Wrap(err, "failed to read configuration file").
			WithMetadata("path", path)
	}

	return resolve(v)
}

// resolve decodes the raw document held by v and layers it over the
// defaults. Keys viper only knows through env bindings are materialized
// first; Unmarshal skips bound-but-unset keys otherwise.
func resolve(v *viper.Viper) (*logger.Config, error) {
	for _, key := range allKeys() {
		if v.IsSet(key) {
			v.Set(key, v.Get(key))
		}
	}

	var raw rawConfig

	err := v.Unmarshal(&raw)
	if err != nil {
		return nil, ewrap.Wrap(err, "failed to decode configuration")
	}

	return applyRaw(raw)
}

// bindEnv registers every known configuration key against the environment
// under the given prefix.
func bindEnv(v *viper.Viper, prefix string) error {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if prefix != "" {
		v.SetEnvPrefix(prefix)
	}

	v.AutomaticEnv()

	for _, key := range allKeys() {
		err := v.BindEnv(key)
		if err != nil {
			return ewrap.Wrap(err, "failed to bind environment key").
				WithMetadata("key", key).
				WithMetadata("prefix", prefix)
		}
	}

	return nil
}

// normalizePrefix uppercases the prefix, swaps dashes for underscores, and
// strips a trailing underscore. Blank input yields the default prefix.
func normalizePrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return defaultEnvPrefix
	}

	prefix = strings.TrimSuffix(prefix, "_")
	prefix = strings.ReplaceAll(prefix, "-", "_")

	return strings.ToUpper(prefix)
}

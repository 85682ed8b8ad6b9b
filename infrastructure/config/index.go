package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"facegate.io/infrastructure/biometric"
	"facegate.io/infrastructure/logger"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const EnvPrefix = "LIVENESS"

// Load reads the engine tunables from LIVENESS_CONFIG_FILE (optional) on top
// of the built-in defaults. Any key can be overridden from the environment,
// e.g. LIVENESS_SCORING_DEFAULT_THRESHOLD=55.
func Load() (biometric.EngineConfig, error) {
	return LoadFrom(os.Getenv("LIVENESS_CONFIG_FILE"))
}

func LoadFrom(path string) (biometric.EngineConfig, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults, err := yaml.Marshal(biometric.DefaultEngineConfig())
	if err != nil {
		return biometric.EngineConfig{}, fmt.Errorf("failed to encode default engine config: %w", err)
	}
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return biometric.EngineConfig{}, fmt.Errorf("failed to load default engine config: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return biometric.EngineConfig{}, fmt.Errorf("failed to read engine config %s: %w", path, err)
		}
		logger.Info("liveness engine config loaded", logger.LoggerOptions{
			Key:  "path",
			Data: path,
		})
	}

	var cfg biometric.EngineConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return biometric.EngineConfig{}, fmt.Errorf("failed to decode engine config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return biometric.EngineConfig{}, err
	}
	return cfg, nil
}

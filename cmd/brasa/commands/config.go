package commands

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/brasa-dev/brasa/pkg/scanner"
)

// configName is the project config file, brasa.yaml, looked up in the
// project root.
const configName = "brasa"

// loadConfig reads scanner options from brasa.yaml in dir. A missing file
// is fine; the scanner falls back to its defaults.
func loadConfig(dir string) (scanner.Config, error) {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return scanner.Config{}, nil
		}
		return scanner.Config{}, fmt.Errorf("read %s.yaml: %w", configName, err)
	}

	var cfg scanner.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return scanner.Config{}, fmt.Errorf("parse %s.yaml: %w", configName, err)
	}
	return cfg, nil
}

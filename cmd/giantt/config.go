// Config loading for the giantt CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyDataDir    = "data_dir"
	cfgKeyBackupKeep = "backup_keep"
)

// fileConfig is the on-disk shape of config.yaml.
type fileConfig struct {
	// DataDir overrides the workspace location; empty means auto-detect.
	DataDir string `yaml:"data_dir"`
	// BackupKeep is how many numbered backups to retain per file.
	BackupKeep int `yaml:"backup_keep"`
}

// loadConfig reads config.yaml from the config directory using Viper. The
// directory and a default config.yaml are created on first run; a missing
// config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackupKeep, 3)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureDefaultConfigFile writes a commented default config.yaml if none
// exists yet.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	body, err := yaml.Marshal(fileConfig{BackupKeep: 3})
	if err != nil {
		return fmt.Errorf("encode default config: %w", err)
	}
	content := "# Giantt CLI configuration\n" + string(body)
	return os.WriteFile(path, []byte(content), 0o644)
}

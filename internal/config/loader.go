package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// InitViper configures viper for gatehouse: explicit config file, standard
// search locations, and GATEHOUSE_* environment overrides
// (e.g. GATEHOUSE_SERVER_ADDR, GATEHOUSE_SESSION_DURATION).
func InitViper(configFile string) {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else if found := findConfigFile(); found != "" {
		viper.SetConfigFile(found)
	} else {
		// No config file in any standard location. Set name/type without
		// search paths so ReadInConfig returns ConfigFileNotFoundError,
		// which LoadConfig treats as "env vars only".
		viper.SetConfigName("gatehouse")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("GATEHOUSE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	bindNestedEnvKeys()
}

// findConfigFile searches standard locations for a gatehouse config file with
// an explicit YAML extension.
func findConfigFile() string {
	home, _ := os.UserHomeDir()
	dirs := []string{".", home + "/.config/gatehouse", "/etc/gatehouse"}
	for _, dir := range dirs {
		for _, name := range []string{"gatehouse.yaml", "gatehouse.yml"} {
			path := dir + "/" + name
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path
			}
		}
	}
	return ""
}

// bindNestedEnvKeys registers each nested key so AutomaticEnv picks it up
// even when the key is absent from the config file.
func bindNestedEnvKeys() {
	keys := []string{
		"server.addr",
		"server.log_level",
		"auth.type",
		"auth.excluded_paths",
		"auth.password_hasher",
		"session.cookie_name",
		"session.duration",
		"storage.path",
	}
	for _, key := range keys {
		viper.BindEnv(key)
	}
}

// LoadConfig reads the configuration file, applies environment overrides and
// defaults, and returns the Config. A missing config file is not an error.
func LoadConfig() (*Config, error) {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.SetDefaults()
	return &cfg, nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/daedaleanai/hbc/log"
	"github.com/daedaleanai/hbc/util"
)

type Config struct {
	// Mirror is a repository searched before all declared repositories.
	Mirror string `mapstructure:"mirror"`
	// BuildFile is the name of the file declaring the build configuration.
	BuildFile string `mapstructure:"buildfile"`
}

var config *Config

const configFileName = "config"

func getHbcConfigDir() (string, error) {
	if hbcConfigDir, ok := os.LookupEnv("HBC_CONFIG_DIR"); ok {
		return hbcConfigDir, nil
	}

	if xdgConfigHome, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok {
		return filepath.Join(xdgConfigHome, "hbc"), nil
	}

	homeDir, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("unable to locate the configuration directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "hbc"), nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("HBC")
	v.AutomaticEnv()
	v.SetDefault("mirror", "")
	v.SetDefault("buildfile", util.BuildFileName)
	return v
}

// Load reads the configuration from `configDir`. A missing configuration file is not an error.
func Load(configDir string) (Config, error) {
	var cfg Config

	v := newViper()
	if configDir != "" {
		v.AddConfigPath(configDir)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return cfg, fmt.Errorf("error reading configuration in '%s': %w", configDir, err)
			}
			log.Debug("No configuration file in '%s'. Using default configuration.\n", configDir)
		} else {
			log.Debug("Loaded configuration from '%s'.\n", v.ConfigFileUsed())
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	if cfg.BuildFile == "" {
		cfg.BuildFile = util.BuildFileName
	}
	return cfg, nil
}

func loadConfiguration() Config {
	configDir, err := getHbcConfigDir()
	if err != nil {
		log.Debug("%s. Using default configuration.\n", err)
	}

	cfg, err := Load(configDir)
	if err != nil {
		log.Warning("%s. Using default configuration.\n", err)
		return Config{BuildFile: util.BuildFileName}
	}
	log.Debug("Running with configuration: %+v\n", cfg)
	return cfg
}

func GetConfig() Config {
	if config == nil {
		loadedConfig := loadConfiguration()
		config = &loadedConfig
	}

	return *config
}

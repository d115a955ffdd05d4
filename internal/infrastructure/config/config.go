package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Study    StudyConfig    `mapstructure:"study"`
	Import   ImportConfig   `mapstructure:"import"`
}

// DatabaseConfig holds the local storage configuration.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// StudyConfig tunes the study-queue cache. RandomRatio is the fraction of
// batch slots drawn uniformly at random; the remainder is drawn weighted
// toward under-practised words.
type StudyConfig struct {
	BatchSize       int     `mapstructure:"batch_size"`
	RefillThreshold int     `mapstructure:"refill_threshold"`
	RefillDebounce  int     `mapstructure:"refill_debounce_ms"`
	RandomRatio     float64 `mapstructure:"random_ratio"`
}

// ImportConfig tunes the CSV import pipeline.
type ImportConfig struct {
	SampleSize int `mapstructure:"sample_size"`
}

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	viper.SetConfigName("lingocards")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	viper.SetEnvPrefix("lingocards")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("database.path", "data/lingocards.db")

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	viper.SetDefault("study.batch_size", 50)
	viper.SetDefault("study.refill_threshold", 20)
	viper.SetDefault("study.refill_debounce_ms", 500)
	viper.SetDefault("study.random_ratio", 0.6)

	viper.SetDefault("import.sample_size", 30)
}

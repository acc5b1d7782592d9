package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds everything the process needs at startup. Values come from
// defaults, then an optional YAML file, then environment overrides, in
// that order.
type Config struct {
	Port      string `yaml:"port"`
	DBPath    string `yaml:"db_path"`
	SecretKey string `yaml:"secret_key"`
	TZ        string `yaml:"tz"`

	Retrain RetrainConfig `yaml:"retrain"`
}

type RetrainConfig struct {
	Threshold     int     `yaml:"threshold"`
	AccuracyFloor float64 `yaml:"accuracy_floor"`
	SweepEnabled  bool    `yaml:"sweep_enabled"`
	SweepSchedule string  `yaml:"sweep_schedule"`
}

func Default() Config {
	return Config{
		Port:   "8080",
		DBPath: filepath.Join("data", "planher.db"),
		TZ:     "UTC",
		Retrain: RetrainConfig{
			Threshold:     10,
			AccuracyFloor: 0.7,
			SweepEnabled:  false,
			SweepSchedule: "0 3 * * *",
		},
	}
}

// Load reads the YAML file at path when it exists, then applies
// environment overrides. A missing file is fine; a malformed one is not.
func Load(path string) (Config, error) {
	config := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &config); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// fall through to env overrides
		default:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	applyEnv(&config)

	if err := config.validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func applyEnv(config *Config) {
	setString(&config.Port, "PORT")
	setString(&config.DBPath, "DB_PATH")
	setString(&config.SecretKey, "SECRET_KEY")
	setString(&config.TZ, "TZ")
	setInt(&config.Retrain.Threshold, "RETRAIN_THRESHOLD")
	setFloat(&config.Retrain.AccuracyFloor, "RETRAIN_ACCURACY_FLOOR")
	setBool(&config.Retrain.SweepEnabled, "RETRAIN_SWEEP_ENABLED")
	setString(&config.Retrain.SweepSchedule, "RETRAIN_SWEEP_SCHEDULE")
}

func (config Config) validate() error {
	if config.Retrain.Threshold < 1 {
		return fmt.Errorf("retrain threshold must be positive, got %d", config.Retrain.Threshold)
	}
	if config.Retrain.AccuracyFloor < 0 || config.Retrain.AccuracyFloor > 1 {
		return fmt.Errorf("retrain accuracy floor must be in [0, 1], got %g", config.Retrain.AccuracyFloor)
	}
	return nil
}

func setString(target *string, key string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}

func setInt(target *int, key string) {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			*target = parsed
		}
	}
}

func setFloat(target *float64, key string) {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			*target = parsed
		}
	}
}

func setBool(target *bool, key string) {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			*target = parsed
		}
	}
}

package config

import (
	"io"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
	"literature-server/internal/util"
)

// ConfigFileEnv names the environment variable holding the config file path
const ConfigFileEnv = "LITERATURE_CONFIG_FILE"

// Config provides configuration for the Literature server
type Config struct {
	loaded         bool
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	Log            struct {
		Level             string `yaml:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
	Game struct {
		// RestartRunningGame deals a new game when start-game arrives mid-game
		RestartRunningGame bool `yaml:"restartRunningGame" envconfig:"restart_running_game"`
		// EnforceTurn rejects asks from anyone but the player in turn
		EnforceTurn bool `yaml:"enforceTurn" envconfig:"enforce_turn"`
		// MessageBacklog is how many narration lines a spectator sees
		MessageBacklog int `yaml:"messageBacklog" envconfig:"message_backlog"`
	}
	CORS struct {
		AllowedOrigins []string `yaml:"allowedOrigins" envconfig:"allowed_origins"`
	} `yaml:"cors"`
}

var config Config

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() Config {
	var cfg Config
	cfg.MigrationsPath = "./sql"
	cfg.Log.Level = "info"
	cfg.Game.RestartRunningGame = true
	cfg.Game.MessageBacklog = 25
	cfg.CORS.AllowedOrigins = []string{"*"}

	return cfg
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// Defaults are overridden by the YAML file, if it exists, then by the
// environment (LITERATURE_PG_DSN, LITERATURE_GAME_ENFORCE_TURN, ...)
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv(ConfigFileEnv, "config.yaml")
	file, err := os.Open(configFile)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	if file != nil {
		defer file.Close()
		// an empty file decodes to io.EOF
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil && err != io.EOF {
			return err
		}
	}

	if err := envconfig.Process("literature", &cfg); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}

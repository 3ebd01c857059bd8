// Package config wires viper-backed configuration for the harness.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load initializes configuration from an optional file, the environment and
// defaults. Environment variables use the HUBBENCH_ prefix with dots mapped
// to underscores (HUBBENCH_BRIDGE_COMMAND overrides bridge.command).
func Load(cfgFile string) error {
	// explicit .env loading; a missing file is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("hubbench")
	}

	viper.SetEnvPrefix("HUBBENCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// a missing implicit config file is not an error; anything else is
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("iterations", 1000)
	viper.SetDefault("warmup_iterations", 100)
	viper.SetDefault("output", ".")
	viper.SetDefault("verbose", false)
	viper.SetDefault("log_file", "")

	viper.SetDefault("bridge.command", "npm")
	viper.SetDefault("bridge.dir", ".")

	viper.SetDefault("metrics.addr", "")

	viper.SetDefault("db.backend", "")
	viper.SetDefault("db.path", ".hubbench/runs.db")
	viper.SetDefault("db.dsn", "")

	slackEnabled := os.Getenv("SLACK_BOT_TOKEN") != "" || os.Getenv("SLACK_WEBHOOK_URL") != ""
	viper.SetDefault("notifications.slack.enabled", slackEnabled)
	viper.SetDefault("notifications.slack.channel", "#benchmarks")
}

package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/dayreplay/config"
	"github.com/rustyeddy/dayreplay/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "dayreplay",
	Short: "Replay historical daily bars and practice trading them",
	Long: `dayreplay picks a random stock from a local TDX data directory, hides
everything after a random day and lets you trade forward one bar at a time.

It provides tools for:
  - Playing replay sessions interactively
  - Inspecting .day files
  - Managing configuration files
  - Querying the session journal

Settings come from a YAML or JSON config file, a .env file and the
DAYREPLAY_* environment variables.`,
	SilenceUsage: true,
}

var cfgFile string

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
}

// loadConfig reads .env, the config file if one was given and the
// environment, in that order of increasing precedence.
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()

	cfg := config.Default()
	if cfgFile != "" {
		var err error
		cfg, err = config.LoadFromFile(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*logrus.Logger, error) {
	log, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return log, nil
}

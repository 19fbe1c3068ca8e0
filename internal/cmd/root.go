package cmd

import (
	"strings"

	"github.com/ddbaker/papyru2/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "papyru2",
	Short: "File-lifecycle engine for plain-text notes",
	Long: `Papyru2 manages the files behind a lightweight note editor: notes are
created under a dated directory tree from their title, renamed when the
title changes, and written atomically so a crash never leaves a
half-written note behind.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var (
	flagConfig    string
	flagPortable  bool
	flagInstalled bool
)

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "config file (default is <app home>/conf/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagPortable, "portable", false, "force the portable layout next to the executable")
	rootCmd.PersistentFlags().BoolVar(&flagInstalled, "installed", false, "force the installed layout under the user home")
	rootCmd.MarkFlagsMutuallyExclusive("portable", "installed")
}

func initConfig() {
	// A .env beside the process may carry PAPYRU2_HOME; missing is fine.
	_ = godotenv.Load()

	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if flagConfig != "" {
		viper.SetConfigFile(flagConfig)
	} else if paths, err := resolvePaths(); err == nil {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(paths.ConfDir)
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("PAPYRU2")
	// Replace dots with underscores for nested keys in env vars
	// e.g., PAPYRU2_AUTOSAVE_IDLE_SECONDS for autosave.idle_seconds
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

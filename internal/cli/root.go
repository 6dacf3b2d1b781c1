// Package cli implements the overtone command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/overtone-dev/overtone/internal/logging"
	"github.com/overtone-dev/overtone/internal/manager"
	"github.com/overtone-dev/overtone/internal/policy"
	"github.com/overtone-dev/overtone/internal/store"
	"github.com/overtone-dev/overtone/internal/theme"
	"github.com/overtone-dev/overtone/internal/tokens"
)

var (
	cfgFile string

	rootCmd = &cobra.Command{
		Use:           "overtone",
		Short:         "Layered theme override inspection and editing",
		Long:          "Overtone resolves design tokens through user overrides, app branding, the active theme, and registry defaults, and persists user personalization across restarts.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: <user config dir>/overtone/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "override database path")
	rootCmd.PersistentFlags().String("app-id", "", "application identity for persisted overrides")
	rootCmd.PersistentFlags().String("theme", "", "base theme name")
	rootCmd.PersistentFlags().String("log-level", "", "log level (trace, debug, info, warn, error)")

	viper.BindPFlag("database", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("app_id", rootCmd.PersistentFlags().Lookup("app-id"))
	viper.BindPFlag("theme", rootCmd.PersistentFlags().Lookup("theme"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if dir, err := os.UserConfigDir(); err == nil {
		viper.AddConfigPath(filepath.Join(dir, "overtone"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("OVERTONE")
	viper.AutomaticEnv()
	viper.SetDefault("theme", "dark")
	viper.SetDefault("app_id", "overtone")

	// A missing config file is fine; flags and defaults cover everything.
	_ = viper.ReadInConfig()

	logging.Setup(viper.GetString("log_level"))
}

func defaultDatabasePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("unable to determine config directory: %w", err)
	}
	return filepath.Join(dir, "overtone", "overrides.db"), nil
}

// openManager assembles the engine from configuration: registry, sqlite
// store, policy, and base theme.
func openManager(ctx context.Context) (*manager.Manager, func(), error) {
	dbPath := viper.GetString("database")
	if dbPath == "" {
		var err error
		dbPath, err = defaultDatabasePath()
		if err != nil {
			return nil, nil, err
		}
	}

	database, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, nil, err
	}
	st := store.NewSQLiteStore(database)

	themeName := viper.GetString("theme")
	base, ok := theme.Builtin[themeName]
	if !ok {
		st.Close()
		return nil, nil, fmt.Errorf("%w: %q (known: %v)", manager.ErrUnknownTheme, themeName, theme.Names())
	}

	var policyCfg policy.Config
	if err := viper.UnmarshalKey("policy", &policyCfg); err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("invalid policy configuration: %w", err)
	}

	mgr := manager.NewManager(tokens.NewRegistry(), st)
	if err := mgr.Initialize(ctx, base, viper.GetString("app_id"), policyCfg); err != nil {
		st.Close()
		return nil, nil, err
	}

	cleanup := func() { st.Close() }
	return mgr, cleanup, nil
}

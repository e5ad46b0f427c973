package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/mcqgenie/internal/config"
	"github.com/abhisek/mcqgenie/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mcqgenie",
	Short: "AI multiple-choice test generator",
	Long:  "MCQ Genie generates multiple-choice tests on any topic with an LLM, scores submissions and runs a study chat.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("env-file")
		return config.LoadDotEnv(path)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("env-file", config.DefaultEnvFile, "File of KEY=value pairs loaded before reading the environment")
	rootCmd.PersistentFlags().String("db", "", "Database DSN or SQLite file path (overrides MCQGENIE_DB_DSN)")
	rootCmd.PersistentFlags().String("db-driver", "", "Database driver: sqlite or postgres (overrides MCQGENIE_DB_DRIVER)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(expireCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDB returns the driver and DSN using the --db-driver and --db flags
// (highest priority), then cfg, then the default SQLite path.
func resolveDB(cmd *cobra.Command, cfg config.Config) (store.Driver, string, error) {
	name, _ := cmd.Flags().GetString("db-driver")
	if name == "" {
		name = cfg.DBDriver
	}
	driver, err := store.ParseDriver(name)
	if err != nil {
		return "", "", err
	}

	dsn, _ := cmd.Flags().GetString("db")
	if dsn == "" {
		dsn = cfg.DBDSN
	}
	if dsn == "" {
		if driver != store.DriverSQLite {
			return "", "", fmt.Errorf("a DSN is required for the %s driver", driver)
		}
		dsn, err = store.DefaultDBPath()
		return driver, dsn, err
	}
	if driver == store.DriverSQLite && !strings.HasPrefix(dsn, "file:") && !strings.Contains(dsn, ":memory:") {
		return driver, dsn, store.EnsureDir(dsn)
	}
	return driver, dsn, nil
}

// openStore resolves the database settings and opens the store.
func openStore(cmd *cobra.Command, cfg config.Config) (*store.Store, error) {
	driver, dsn, err := resolveDB(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database: %w", err)
	}
	s, err := store.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

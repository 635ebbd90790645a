// Root command for the satchel CLI.
package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/satchel/internal/paths"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDBPath    string
	flagJSON      bool
)

// configDBPath holds the db_path value loaded from config.yaml.
// Set by PersistentPreRunE so all subcommands can use it.
var configDBPath string

var rootCmd = &cobra.Command{
	Use:   "satchel",
	Short: "Satchel is a versioned wiki content store",
	Long: `Satchel stores bags of versioned tiddlers, recipes composed over
those bags, users, and per-container access policies in a SQLite
database.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDBPath = cfg.GetString(cfgKeyDBPath)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "database file (default: $(CWD)/.satchel.db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(bagCmd)
	rootCmd.AddCommand(recipeCmd)
	rootCmd.AddCommand(tiddlerCmd)
	rootCmd.AddCommand(userCmd)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > SATCHEL_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// resolveDBPath returns the database path following the precedence:
// --db flag > config.yaml db_path > SATCHEL_DB env > $(CWD)/.satchel.db.
func resolveDBPath() (string, error) {
	return paths.ResolveDBPath(flagDBPath, configDBPath)
}

// exitCode maps an error to the CLI exit code: expected not-found and
// validation conditions are user errors, everything else is a system error.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, types.ErrBagNotFound),
		errors.Is(err, types.ErrRecipeNotFound),
		errors.Is(err, types.ErrTiddlerNotFound),
		errors.Is(err, types.ErrUserNotFound),
		errors.Is(err, types.ErrBagRequired),
		errors.Is(err, types.ErrMalformedRecipe):
		return exitUserError
	default:
		return exitSysError
	}
}

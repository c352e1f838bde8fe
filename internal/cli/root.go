package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.store/internal/config"
	"go.store/internal/engine"
)

var rootCmd = &cobra.Command{
	Use:   "gostore <path>",
	Short: "gostore - single-file B+ tree key value store",
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("Must supply a database filename.")
		}
		return nil
	},
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := args[0]

		cfg, err := config.LoadConfig("", "")
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		passphrase := os.Getenv("GOSTORE_PASSPHRASE")
		db, err := engine.Open(dbPath, passphrase, cfg)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()

		startREPL(db)
		return nil
	},
}

// Execute runs the root command. Unlike the teacher's multi-subcommand
// tree, statements are not modeled as cobra subcommands: the REPL grammar
// (insert/select/delete, dot-commands) doesn't map onto cobra's
// flag-oriented model, so it is parsed by statement.go instead.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

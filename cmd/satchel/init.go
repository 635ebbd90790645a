// Init command for the satchel CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the satchel database",
	Long:  `Init opens the configured database, creating the schema if needed.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		dbPath, err := resolveDBPath()
		if err != nil {
			return err
		}
		fmt.Println("satchel database ready at", dbPath)
		return nil
	},
}

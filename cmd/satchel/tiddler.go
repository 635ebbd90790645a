// Tiddler commands for the satchel CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

var flagRevision int64

var tiddlerCmd = &cobra.Command{
	Use:   "tiddler",
	Short: "Manage tiddlers",
}

var tiddlerGetCmd = &cobra.Command{
	Use:   "get <bag> <title>",
	Short: "Get a tiddler at its current or requested revision",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		tiddler, err := store.TiddlerGet(args[0], args[1], flagRevision)
		if err != nil {
			return err
		}
		return printJSON(tiddler)
	},
}

var tiddlerPutCmd = &cobra.Command{
	Use:   "put [file]",
	Short: "Append a new tiddler revision from JSON (stdin or file)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var tiddler types.Tiddler
		arg := ""
		if len(args) == 1 {
			arg = args[0]
		}
		if err := readEntityJSON(arg, &tiddler); err != nil {
			return err
		}
		if tiddler.Modified == "" {
			tiddler.Modified = types.CurrentTimestamp()
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.TiddlerPut(&tiddler); err != nil {
			return err
		}
		fmt.Println("revision", tiddler.Revision)
		return nil
	},
}

var tiddlerImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import a tiddler revision, preserving its revision number",
	Long: `Import appends a revision carrying the revision number from the
input document, for re-deriving a store from exported state. A document
without a revision number behaves like put.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var tiddler types.Tiddler
		arg := ""
		if len(args) == 1 {
			arg = args[0]
		}
		if err := readEntityJSON(arg, &tiddler); err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.TiddlerImport(&tiddler); err != nil {
			return err
		}
		fmt.Println("revision", tiddler.Revision)
		return nil
	},
}

var tiddlerDeleteCmd = &cobra.Command{
	Use:   "delete <bag> <title>",
	Short: "Delete a tiddler's entire revision history",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		return store.TiddlerDelete(args[0], args[1])
	},
}

var tiddlerRevisionsCmd = &cobra.Command{
	Use:   "revisions <bag> <title>",
	Short: "List a tiddler's revision numbers, newest first",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		numbers, err := store.ListTiddlerRevisions(args[0], args[1])
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(numbers)
		}
		for _, number := range numbers {
			fmt.Println(number)
		}
		return nil
	},
}

func init() {
	tiddlerGetCmd.Flags().Int64Var(&flagRevision, "revision", 0, "revision number (default: current)")

	tiddlerCmd.AddCommand(tiddlerGetCmd)
	tiddlerCmd.AddCommand(tiddlerPutCmd)
	tiddlerCmd.AddCommand(tiddlerImportCmd)
	tiddlerCmd.AddCommand(tiddlerDeleteCmd)
	tiddlerCmd.AddCommand(tiddlerRevisionsCmd)
}

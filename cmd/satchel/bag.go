// Bag commands for the satchel CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

var bagCmd = &cobra.Command{
	Use:   "bag",
	Short: "Manage bags",
}

var bagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all bags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		bags, err := store.ListBags()
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(bags)
		}
		for _, bag := range bags {
			fmt.Println(bag.Name)
		}
		return nil
	},
}

var bagGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Get a bag by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		bag, err := store.BagGet(args[0])
		if err != nil {
			return err
		}
		return printJSON(bag)
	},
}

var bagPutCmd = &cobra.Command{
	Use:   "put [file]",
	Short: "Create or replace a bag from JSON (stdin or file)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var bag types.Bag
		arg := ""
		if len(args) == 1 {
			arg = args[0]
		}
		if err := readEntityJSON(arg, &bag); err != nil {
			return err
		}
		if bag.Name == "" {
			return fmt.Errorf("bag name must not be empty")
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		return store.BagPut(&bag)
	},
}

var bagDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a bag and all its tiddlers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		return store.BagDelete(args[0])
	},
}

var bagTiddlersCmd = &cobra.Command{
	Use:   "tiddlers <name>",
	Short: "List the current tiddlers in a bag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		tiddlers, err := store.ListBagTiddlers(args[0])
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(tiddlers)
		}
		for _, tiddler := range tiddlers {
			fmt.Println(tiddler.Title)
		}
		return nil
	},
}

func init() {
	bagCmd.AddCommand(bagListCmd)
	bagCmd.AddCommand(bagGetCmd)
	bagCmd.AddCommand(bagPutCmd)
	bagCmd.AddCommand(bagDeleteCmd)
	bagCmd.AddCommand(bagTiddlersCmd)
}

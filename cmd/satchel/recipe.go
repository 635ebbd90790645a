// Recipe commands for the satchel CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

var recipeCmd = &cobra.Command{
	Use:   "recipe",
	Short: "Manage recipes",
}

var recipeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all recipes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		recipes, err := store.ListRecipes()
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(recipes)
		}
		for _, recipe := range recipes {
			fmt.Println(recipe.Name)
		}
		return nil
	},
}

var recipeGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Get a recipe by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		recipe, err := store.RecipeGet(args[0])
		if err != nil {
			return err
		}
		return printJSON(recipe)
	},
}

var recipePutCmd = &cobra.Command{
	Use:   "put [file]",
	Short: "Create or replace a recipe from JSON (stdin or file)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var recipe types.Recipe
		arg := ""
		if len(args) == 1 {
			arg = args[0]
		}
		if err := readEntityJSON(arg, &recipe); err != nil {
			return err
		}
		if recipe.Name == "" {
			return fmt.Errorf("recipe name must not be empty")
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		return store.RecipePut(&recipe)
	},
}

var recipeDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		return store.RecipeDelete(args[0])
	},
}

func init() {
	recipeCmd.AddCommand(recipeListCmd)
	recipeCmd.AddCommand(recipeGetCmd)
	recipeCmd.AddCommand(recipePutCmd)
	recipeCmd.AddCommand(recipeDeleteCmd)
}

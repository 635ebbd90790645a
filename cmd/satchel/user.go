// User commands for the satchel CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		users, err := store.ListUsers()
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(users)
		}
		for _, user := range users {
			fmt.Println(user.Usersign)
		}
		return nil
	},
}

var userGetCmd = &cobra.Command{
	Use:   "get <usersign>",
	Short: "Get a user by usersign",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		user, err := store.UserGet(args[0])
		if err != nil {
			return err
		}
		return printJSON(user)
	},
}

var userPutCmd = &cobra.Command{
	Use:   "put [file]",
	Short: "Create or replace a user from JSON (stdin or file)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var user types.User
		arg := ""
		if len(args) == 1 {
			arg = args[0]
		}
		if err := readEntityJSON(arg, &user); err != nil {
			return err
		}
		if user.Usersign == "" {
			return fmt.Errorf("usersign must not be empty")
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		return store.UserPut(&user)
	},
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete <usersign>",
	Short: "Delete a user and its roles",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		return store.UserDelete(args[0])
	},
}

func init() {
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userGetCmd)
	userCmd.AddCommand(userPutCmd)
	userCmd.AddCommand(userDeleteCmd)
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var signoutCmd = &cobra.Command{
	Use:   "signout",
	Short: "Clear the stored session",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(cmd *cobra.Command, args []string, env *appEnv) error {
		if err := env.auth.SignOut(); err != nil {
			return err
		}
		fmt.Println("Signed out.")
		return nil
	}),
}

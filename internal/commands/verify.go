package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <email> <code>",
	Short: "Confirm a newly registered email address",
	Args:  cobra.ExactArgs(2),
	RunE: withEnv(func(cmd *cobra.Command, args []string, env *appEnv) error {
		if err := env.auth.ConfirmEmail(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Email %s confirmed. You can sign in now.\n", args[0])
		return nil
	}),
}
